package cmd

import (
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
)

// Login-specific flags
var (
	loginClientID     string
	loginClientSecret string
)

// authLoginCmd represents the auth login command
var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Exchange a universal-auth identity for an access token",
	Long: `Exchange a universal-auth machine identity for an access token.

The client ID and secret are taken from the flags when given, otherwise
from INFISICAL_CLIENT_ID and INFISICAL_CLIENT_SECRET. The token is
printed to stdout; progress messages go to stderr-friendly quiet mode.

Examples:
  infisical auth login --client-id <id> --client-secret <secret>
  infisical auth login                 # identity from the environment
  infisical auth login -q              # print only the token`,
	RunE: runAuthLogin,
}

func init() {
	// Login-specific flags (only on login subcommand)
	authLoginCmd.Flags().StringVar(&loginClientID, "client-id", "", "Universal-auth client ID")
	authLoginCmd.Flags().StringVar(&loginClientSecret, "client-secret", "", "Universal-auth client secret")
}

func runAuthLogin(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	var s *spinner.Spinner
	if !authQuiet {
		s = spinner.New(spinner.CharSets[14], 100*time.Millisecond)
		s.Suffix = " Exchanging credentials..."
		s.Start()
	}

	chain := buildChain("", loginClientID, loginClientSecret)
	creds, err := chain.Resolve(ctx)
	if s != nil {
		s.Stop()
	}
	if err != nil {
		return err
	}

	token, err := creds.GetToken(ctx)
	if err != nil {
		return err
	}

	authPrint("Authenticated to %s\n", creds.BaseURL())
	if claims, err := creds.Claims(); err == nil && !claims.ExpiresAt.IsZero() {
		authPrint("Token expires %s\n", formatExpiry(claims.ExpiresAt))
	}

	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
