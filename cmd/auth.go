package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"infisical/pkg/credentials"
)

var (
	authEndpoint string
	authInsecure bool
	authQuiet    bool
)

// authCmd represents the auth command group
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Inspect and exercise Infisical authentication",
	Long: `Inspect and exercise Infisical authentication.

The auth command group resolves credentials exactly the way SDK clients
do, walking the provider chain from explicit values through INFISICAL_*
environment variables to the local Infisical CLI session.

Examples:
  infisical auth status                  # Show where credentials come from
  infisical auth login                   # Exchange a universal-auth identity
  infisical auth token                   # Print the resolved access token`,
}

// authPrint prints output only if the --quiet flag is not set.
// Use this for progress messages and non-essential output.
func authPrint(format string, args ...interface{}) {
	if !authQuiet {
		fmt.Printf(format, args...)
	}
}

// authPrintln prints a line only if the --quiet flag is not set.
// Use this for progress messages and non-essential output.
func authPrintln(a ...interface{}) {
	if !authQuiet {
		fmt.Println(a...)
	}
}

// chainOptions translates the persistent auth flags into chain options.
func chainOptions() []credentials.Option {
	var opts []credentials.Option
	if authInsecure {
		opts = append(opts, credentials.WithTLSVerification(false))
	}
	return opts
}

// buildChain assembles the provider chain the way SDK clients do, honoring
// the --endpoint and --insecure flags.
func buildChain(token, clientID, clientSecret string) *credentials.Chain {
	return credentials.NewChain(authEndpoint, token, clientID, clientSecret, chainOptions()...)
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(authTokenCmd)

	// Common flags for auth commands (shared across subcommands)
	authCmd.PersistentFlags().StringVar(&authEndpoint, "endpoint", "", "Infisical API URL (env: INFISICAL_URL, default: https://us.infisical.com)")
	authCmd.PersistentFlags().BoolVar(&authInsecure, "insecure", false, "Skip TLS certificate verification")
	authCmd.PersistentFlags().BoolVarP(&authQuiet, "quiet", "q", false, "Suppress non-essential output")
}
