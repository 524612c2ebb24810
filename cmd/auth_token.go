package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// authTokenCmd represents the auth token command
var authTokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Print the resolved access token",
	Long: `Resolve credentials through the provider chain and print the access
token to stdout.

Meant for scripting:
  curl -H "Authorization: Bearer $(infisical auth token -q)" ...`,
	RunE: runAuthToken,
}

func runAuthToken(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	creds, err := buildChain("", "", "").Resolve(ctx)
	if err != nil {
		return err
	}

	token, err := creds.GetToken(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
