package credentials

import (
	"context"

	"infisical/pkg/logging"
)

// Chain tries an ordered list of credential providers and returns the first
// usable credentials.
//
// The default order is most-explicit first:
//
//  1. ExplicitProvider: material passed at construction
//  2. EnvironmentProvider: INFISICAL_* variables
//  3. ConfigFileProvider: the local CLI session
//
// A provider error stops the chain on the spot; only clean abstentions fall
// through to the next source.
type Chain struct {
	providers []Provider
	baseURL   string
}

// NewChain builds the default provider chain. The explicit material goes to
// the ExplicitProvider; url overrides the endpoint for every provider
// except the config-file one, whose endpoint is pinned to the CLI session.
// TLS verification defaults from INFISICAL_VERIFY_SSL, read once here;
// WithTLSVerification overrides it.
func NewChain(url, token, clientID, clientSecret string, opts ...Option) *Chain {
	opts = append([]Option{WithTLSVerification(DefaultTLSVerification())}, opts...)

	return &Chain{
		baseURL: url,
		providers: []Provider{
			NewExplicitProvider(token, clientID, clientSecret, opts...),
			NewEnvironmentProvider(opts...),
			NewConfigFileProvider(opts...),
		},
	}
}

// AddProvider inserts a custom provider at the given position, clamped to
// the chain bounds. Index 0 puts the provider ahead of every built-in
// source, the conventional spot for custom discovery.
func (c *Chain) AddProvider(p Provider, index int) {
	if index < 0 {
		index = 0
	}
	if index > len(c.providers) {
		index = len(c.providers)
	}
	c.providers = append(c.providers[:index], append([]Provider{p}, c.providers[index:]...)...)
}

// Resolve walks the providers in order and returns the first credentials
// found. Provider errors propagate untouched. When every provider abstains,
// Resolve returns a *CredentialsError naming the exhausted chain.
func (c *Chain) Resolve(ctx context.Context) (*Credentials, error) {
	for _, p := range c.providers {
		creds, err := p.Load(ctx, c.baseURL)
		if err != nil {
			return nil, err
		}
		if creds != nil {
			logging.Debug("Chain", "Resolved credentials for %s", creds.BaseURL())
			return creds, nil
		}
	}

	return nil, &CredentialsError{Message: "No valid Infisical credentials found in the provider chain."}
}
