package credentials

import (
	"crypto/tls"
	"net/http"
	"os"
	"strings"

	"infisical/pkg/keyring"
)

// options carries construction-time configuration shared by the provider
// chain and the credentials it mints.
type options struct {
	httpClient *http.Client
	verifyTLS  bool
	keyring    *keyring.FileKeyring
}

// Option configures credential and provider construction.
type Option func(*options)

func defaultOptions() *options {
	return &options{verifyTLS: true}
}

func (o *options) apply(opts []Option) *options {
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithHTTPClient sets the HTTP client used for the universal-auth login
// exchange. A custom client takes precedence over WithTLSVerification.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(o *options) {
		o.httpClient = httpClient
	}
}

// WithTLSVerification toggles TLS certificate verification on the default
// HTTP client. Custom CA bundles need no option at all: the Go runtime
// honors SSL_CERT_FILE and SSL_CERT_DIR whenever verification is enabled.
func WithTLSVerification(verify bool) Option {
	return func(o *options) {
		o.verifyTLS = verify
	}
}

// WithKeyring replaces the CLI session store consulted by the config-file
// provider.
func WithKeyring(kr *keyring.FileKeyring) Option {
	return func(o *options) {
		o.keyring = kr
	}
}

// DefaultTLSVerification reports whether INFISICAL_VERIFY_SSL leaves TLS
// verification enabled. The values "0", "false" and "no" disable it,
// case-insensitively; anything else, including an unset variable, enables
// it. NewChain consults this once at construction, so flipping the variable
// afterwards has no effect on an existing chain.
func DefaultTLSVerification() bool {
	switch strings.ToLower(os.Getenv(EnvVerifyTLS)) {
	case "0", "false", "no":
		return false
	default:
		return true
	}
}

// newHTTPClient builds the login HTTP client from the applied options.
func newHTTPClient(o *options) *http.Client {
	if o.httpClient != nil {
		return o.httpClient
	}

	client := &http.Client{Timeout: DefaultHTTPTimeout}
	if !o.verifyTLS {
		client.Transport = &http.Transport{
			// #nosec G402 -- verification is skipped only on explicit opt-in
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}
	return client
}
