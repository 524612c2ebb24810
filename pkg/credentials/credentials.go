// Package credentials resolves Infisical API credentials from explicit
// values, the process environment, and the local CLI session, and manages
// the token lifecycle: claim validation, the universal-auth login exchange,
// and transparent refresh of expired tokens.
//
// Most callers build a Chain and let it pick the first usable source:
//
//	chain := credentials.NewChain(url, token, clientID, clientSecret)
//	creds, err := chain.Resolve(ctx)
//
// The resolved Credentials hand out a validated token per request via
// GetToken, or plug into an oauth2 transport via TokenSource.
package credentials

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/sync/singleflight"

	"infisical/pkg/logging"
)

const (
	// DefaultBaseURL is the Infisical Cloud US endpoint, used when neither
	// an explicit URL nor INFISICAL_URL is set.
	DefaultBaseURL = "https://us.infisical.com"

	// DefaultHTTPTimeout bounds the universal-auth login exchange.
	DefaultHTTPTimeout = 30 * time.Second

	// loginPath is the universal-auth login endpoint relative to the base URL.
	loginPath = "/api/v1/auth/universal-auth/login"
)

// Environment variables consumed by the default provider chain.
const (
	// EnvURL overrides the API base URL.
	EnvURL = "INFISICAL_URL"
	// EnvToken supplies a ready-made access token.
	EnvToken = "INFISICAL_TOKEN"
	// EnvClientID and EnvClientSecret supply a universal-auth machine
	// identity. When both are set they win over EnvToken.
	EnvClientID     = "INFISICAL_CLIENT_ID"
	EnvClientSecret = "INFISICAL_CLIENT_SECRET"
	// EnvVerifyTLS disables TLS verification when set to "0", "false" or
	// "no". See DefaultTLSVerification.
	EnvVerifyTLS = "INFISICAL_VERIFY_SSL"
)

// Credentials holds the material needed to authenticate against a single
// Infisical endpoint: a bearer token, plus the universal-auth client ID and
// secret when the token can be re-acquired.
//
// Two authentication modes are supported. Token auth carries an already
// issued token and is not refreshable, so expiry is fatal. Universal auth
// carries a client ID/secret pair that is exchanged for a token at login
// and re-exchanged whenever the token expires.
//
// Credentials are safe for concurrent use.
type Credentials struct {
	baseURL      string
	clientID     string
	clientSecret string

	httpClient *http.Client

	mu    sync.RWMutex
	token string

	// group deduplicates refreshes so callers racing near expiry share a
	// single login round trip.
	group singleflight.Group

	now func() time.Time
}

// New creates Credentials for the given endpoint. Trailing slashes are
// stripped from url. Token and pair are stored as given; Refreshable is
// derived from the pair and never changes afterwards.
func New(url, clientID, clientSecret, token string, opts ...Option) *Credentials {
	o := defaultOptions().apply(opts)

	return &Credentials{
		baseURL:      strings.TrimRight(url, "/"),
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient:   newHTTPClient(o),
		token:        token,
		now:          time.Now,
	}
}

// BaseURL returns the API endpoint these credentials authenticate against.
func (c *Credentials) BaseURL() string {
	return c.baseURL
}

// IsValid reports whether a token is present. It says nothing about
// freshness; GetToken performs the claim checks.
func (c *Credentials) IsValid() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token != ""
}

// Refreshable reports whether the credentials carry a universal-auth pair
// that can be exchanged for a fresh token.
func (c *Credentials) Refreshable() bool {
	return c.clientID != "" && c.clientSecret != ""
}

// GetToken validates the current token's time claims and returns it,
// transparently refreshing an expired token when the credentials are
// refreshable. Call it once per outbound request rather than caching the
// result.
//
// A token issued in the future is rejected as invalid regardless of
// refreshability. An expired token without a refresh path yields a
// *CredentialsError; a failed refresh yields the login error itself.
func (c *Credentials) GetToken(ctx context.Context) (string, error) {
	if err := c.checkRefresh(ctx); err != nil {
		return "", err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token, nil
}

// Refresh exchanges the client ID and secret for a fresh token at the
// universal-auth login endpoint, replacing the stored token. It is a no-op
// for non-refreshable credentials. Non-2xx responses surface as *APIError;
// the exchange is never retried.
func (c *Credentials) Refresh(ctx context.Context) error {
	if !c.Refreshable() {
		return nil
	}

	_, err, _ := c.group.Do("refresh", func() (interface{}, error) {
		return nil, c.login(ctx)
	})
	return err
}

// TokenClaims carries the time claims decoded from a token. A zero time
// means the claim was absent.
type TokenClaims struct {
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Claims decodes the current token's time claims without validating them
// and without triggering a refresh. Meant for display and diagnostics.
func (c *Credentials) Claims() (TokenClaims, error) {
	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()

	return parseClaims(token)
}

// checkRefresh enforces the token's time claims with zero leeway. The iat
// check runs before the exp check so a token from the future is reported as
// invalid, not expired. Expired refreshable tokens trigger one login
// exchange, shared across concurrent callers.
func (c *Credentials) checkRefresh(ctx context.Context) error {
	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()

	if token == "" {
		return nil
	}

	claims, err := parseClaims(token)
	if err != nil {
		logging.Debug("Credentials", "Token claims are undecodable: %v", err)
		return &CredentialsError{Message: "The provided credentials are invalid."}
	}

	now := c.now()

	// An issued-at in the future is a misconfiguration that a refresh must
	// not paper over.
	if claims.IssuedAt.After(now) {
		return &CredentialsError{Message: "The provided credentials are invalid."}
	}

	// A token expiring exactly now counts as expired. A missing exp claim
	// decodes as the zero time and has been expired since the epoch.
	if claims.ExpiresAt.After(now) {
		return nil
	}

	if !c.Refreshable() {
		return &CredentialsError{Message: "The credentials have expired."}
	}

	_, err, _ = c.group.Do("refresh", func() (interface{}, error) {
		// Another caller may have already replaced the token while this one
		// waited for the flight.
		c.mu.RLock()
		current := c.token
		c.mu.RUnlock()
		if current != token {
			return nil, nil
		}
		return nil, c.login(ctx)
	})
	return err
}

// login performs the universal-auth exchange and stores the new token.
func (c *Credentials) login(ctx context.Context) error {
	payload, err := json.Marshal(loginRequest{
		ClientID:     c.clientID,
		ClientSecret: c.clientSecret,
	})
	if err != nil {
		return fmt.Errorf("failed to encode login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+loginPath, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("login request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read login response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		logging.Debug("Credentials", "Universal-auth login failed with status %d", resp.StatusCode)
		return newAPIError(resp.StatusCode, body)
	}

	var lr loginResponse
	if err := json.Unmarshal(body, &lr); err != nil {
		return fmt.Errorf("failed to parse login response: %w", err)
	}
	if lr.AccessToken == "" {
		return fmt.Errorf("login response carries no accessToken")
	}

	c.mu.Lock()
	c.token = lr.AccessToken
	c.mu.Unlock()

	logging.Debug("Credentials", "Exchanged universal-auth identity for a token at %s", c.baseURL)
	return nil
}

// loginRequest is the universal-auth login body.
type loginRequest struct {
	ClientID     string `json:"clientId"`
	ClientSecret string `json:"clientSecret"`
}

// loginResponse is the subset of the login reply this package consumes.
type loginResponse struct {
	AccessToken string `json:"accessToken"`
}

// parseClaims decodes a token's time claims without verifying its
// signature. Verification is the API server's job; the client only needs
// iat and exp to judge freshness.
func parseClaims(token string) (TokenClaims, error) {
	if token == "" {
		return TokenClaims{}, nil
	}

	var registered jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &registered); err != nil {
		return TokenClaims{}, fmt.Errorf("failed to decode token claims: %w", err)
	}

	var claims TokenClaims
	if registered.IssuedAt != nil {
		claims.IssuedAt = registered.IssuedAt.Time
	}
	if registered.ExpiresAt != nil {
		claims.ExpiresAt = registered.ExpiresAt.Time
	}
	return claims, nil
}
