package cmd

import (
	"context"
	"errors"
	"testing"

	"github.com/spf13/cobra"

	"infisical/internal/testutil"
	"infisical/pkg/credentials"
)

func newStatusTestCmd() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	return cmd
}

func TestRunAuthStatus(t *testing.T) {
	t.Run("succeeds when the environment holds a token", func(t *testing.T) {
		isolateCredentialSources(t)
		withAuthFlags(t, "", true)
		t.Setenv(credentials.EnvToken, testutil.ValidToken(t))

		if err := runAuthStatus(newStatusTestCmd(), nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("fails when no source is configured", func(t *testing.T) {
		isolateCredentialSources(t)
		withAuthFlags(t, "", true)

		err := runAuthStatus(newStatusTestCmd(), nil)
		var credErr *credentials.CredentialsError
		if !errors.As(err, &credErr) {
			t.Fatalf("expected a CredentialsError, got %v", err)
		}
		if got := getExitCode(err); got != ExitCodeNoCredentials {
			t.Errorf("expected exit code %d, got %d", ExitCodeNoCredentials, got)
		}
	})

	t.Run("surfaces a rejected environment token", func(t *testing.T) {
		isolateCredentialSources(t)
		withAuthFlags(t, "", true)
		t.Setenv(credentials.EnvToken, testutil.ExpiredToken(t))

		err := runAuthStatus(newStatusTestCmd(), nil)
		var credErr *credentials.CredentialsError
		if !errors.As(err, &credErr) {
			t.Fatalf("expected a CredentialsError, got %v", err)
		}
		if credErr.Message != "The credentials have expired." {
			t.Errorf("unexpected message: %s", credErr.Message)
		}
	})
}
