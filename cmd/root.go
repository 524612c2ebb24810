package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"infisical/pkg/credentials"
	"infisical/pkg/logging"
)

// Exit codes for CLI commands.
// These let scripts tell credential problems apart from API failures.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (command failed, invalid arguments).
	ExitCodeError = 1
	// ExitCodeNoCredentials indicates no usable credentials were found or the
	// provided material was rejected.
	ExitCodeNoCredentials = 2
	// ExitCodeAPIFailed indicates the Infisical API rejected a request.
	ExitCodeAPIFailed = 3
)

var debugLogging bool

// rootCmd represents the base command for the infisical diagnostic CLI.
// It is the entry point when the application is called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "infisical",
	Short: "Inspect Infisical credential resolution",
	Long: `infisical shows how this machine resolves Infisical credentials:
explicit values, INFISICAL_* environment variables, and the local
Infisical CLI session, in that order.`,
	// SilenceUsage prevents Cobra from printing the usage message on errors that are handled by the application.
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := logging.LevelInfo
		if debugLogging {
			level = logging.LevelDebug
		}
		logging.InitForCLI(level, cmd.ErrOrStderr())
	},
}

// SetVersion sets the version for the root command.
// This function is typically called from the main package to inject the application version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application.
// It initializes and executes the root command, which in turn handles subcommands and flags.
// This function is called by main.main().
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "infisical version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		exitCode := getExitCode(err)
		os.Exit(exitCode)
	}
}

// getExitCode determines the appropriate exit code based on the error type.
// This provides semantic exit codes for scripting and automation.
func getExitCode(err error) int {
	var credErr *credentials.CredentialsError
	if errors.As(err, &credErr) {
		return ExitCodeNoCredentials
	}

	var apiErr *credentials.APIError
	if errors.As(err, &apiErr) {
		return ExitCodeAPIFailed
	}

	// Default to general error
	return ExitCodeError
}

func init() {
	rootCmd.AddCommand(newVersionCmd())

	rootCmd.PersistentFlags().BoolVar(&debugLogging, "debug", false, "Enable debug logging")
}
