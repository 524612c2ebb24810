package credentials

import (
	"context"
	"fmt"
	"os"
	"strings"

	"infisical/pkg/keyring"
	"infisical/pkg/logging"
)

// Provider discovers credential material from a single source and packages
// it as Credentials. A provider abstains by returning (nil, nil) when its
// source has nothing to offer, letting a Chain fall through to the next
// source; a non-nil error is fatal and stops the chain immediately.
type Provider interface {
	Load(ctx context.Context, url string) (*Credentials, error)
}

// resolveBaseURL picks the effective endpoint: the explicit url when set,
// else INFISICAL_URL, else Infisical Cloud US. Trailing slashes are
// stripped.
func resolveBaseURL(url string) string {
	if url == "" {
		url = os.Getenv(EnvURL)
	}
	if url == "" {
		url = DefaultBaseURL
	}
	return strings.TrimRight(url, "/")
}

// finalize readies freshly discovered credentials: an eager refresh (a
// no-op for plain token material, the login exchange for a universal-auth
// pair) followed by a token check. Refresh and claim-validation failures
// are fatal; credentials that end up without a token become an abstention.
func finalize(ctx context.Context, creds *Credentials) (*Credentials, error) {
	if err := creds.Refresh(ctx); err != nil {
		return nil, err
	}
	if !creds.IsValid() {
		return nil, nil
	}
	token, err := creds.GetToken(ctx)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, nil
	}
	return creds, nil
}

// ExplicitProvider serves credential material passed directly by the
// caller, typically from client construction parameters.
type ExplicitProvider struct {
	token        string
	clientID     string
	clientSecret string
	opts         []Option
}

// NewExplicitProvider creates a provider over caller-supplied material. All
// values may be empty; the provider then abstains instead of erroring.
func NewExplicitProvider(token, clientID, clientSecret string, opts ...Option) *ExplicitProvider {
	return &ExplicitProvider{
		token:        token,
		clientID:     clientID,
		clientSecret: clientSecret,
		opts:         opts,
	}
}

// Load checks the mutual exclusivity of the supplied material: either a
// token or a complete client ID/secret pair, never both and never half a
// pair. Violations are fatal misconfigurations, not abstentions, so they
// never fall through to weaker sources.
func (p *ExplicitProvider) Load(ctx context.Context, url string) (*Credentials, error) {
	if p.token == "" && p.clientID == "" && p.clientSecret == "" {
		return nil, nil
	}

	if p.token != "" && (p.clientID != "" || p.clientSecret != "") {
		return nil, &CredentialsError{Message: "You may specify either a token or a Client ID and Secret, not both."}
	}

	if p.token == "" && (p.clientID == "" || p.clientSecret == "") {
		return nil, &CredentialsError{Message: "Both Client ID and Secret must be provided."}
	}

	logging.Debug("Provider", "Using explicitly provided credentials")
	return finalize(ctx, New(resolveBaseURL(url), p.clientID, p.clientSecret, p.token, p.opts...))
}

// EnvironmentProvider reads credential material from the process
// environment: INFISICAL_CLIENT_ID plus INFISICAL_CLIENT_SECRET, or
// INFISICAL_TOKEN.
type EnvironmentProvider struct {
	opts []Option
}

// NewEnvironmentProvider creates a provider over the process environment.
func NewEnvironmentProvider(opts ...Option) *EnvironmentProvider {
	return &EnvironmentProvider{opts: opts}
}

// Load reads the environment. A complete universal-auth pair is checked
// first and silently wins over a simultaneously set token variable; a half
// pair is ignored rather than rejected, since the environment is a shared
// namespace the caller may not control.
func (p *EnvironmentProvider) Load(ctx context.Context, url string) (*Credentials, error) {
	clientID := os.Getenv(EnvClientID)
	clientSecret := os.Getenv(EnvClientSecret)
	token := ""

	switch {
	case clientID != "" && clientSecret != "":
		logging.Debug("Provider", "Using universal-auth identity from the environment")
	case os.Getenv(EnvToken) != "":
		token = os.Getenv(EnvToken)
		clientID, clientSecret = "", ""
		logging.Debug("Provider", "Using access token from the environment")
	default:
		return nil, nil
	}

	return finalize(ctx, New(resolveBaseURL(url), clientID, clientSecret, token, p.opts...))
}

// ConfigFileProvider resolves the session the Infisical CLI left on disk,
// read through the encrypted file keyring.
type ConfigFileProvider struct {
	keyring *keyring.FileKeyring
	opts    []Option
}

// NewConfigFileProvider creates a provider over the CLI's on-disk session.
// The store location follows the CLI defaults unless WithKeyring supplies a
// replacement.
func NewConfigFileProvider(opts ...Option) *ConfigFileProvider {
	o := defaultOptions().apply(opts)
	return &ConfigFileProvider{keyring: o.keyring, opts: opts}
}

// Load reads the CLI session token. The url argument is ignored: the stored
// token was issued against the domain the CLI logged in to, so the endpoint
// always comes from the config file.
func (p *ConfigFileProvider) Load(ctx context.Context, _ string) (*Credentials, error) {
	kr := p.keyring
	if kr == nil {
		var err error
		kr, err = keyring.New(keyring.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to open CLI session store: %w", err)
		}
	}

	token := kr.Token()
	if token == "" {
		return nil, nil
	}

	url, err := kr.URL()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve CLI session endpoint: %w", err)
	}

	logging.Debug("Provider", "Using CLI session credentials for %s", url)
	return finalize(ctx, New(url, "", "", token, p.opts...))
}
