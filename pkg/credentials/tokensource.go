package credentials

import (
	"context"

	"golang.org/x/oauth2"
)

// TokenSource adapts the credentials to oauth2.TokenSource so callers can
// attach bearer headers with the standard transport:
//
//	client := oauth2.NewClient(ctx, creds.TokenSource(ctx))
//
// Every Token call runs the full claim-validation and refresh path, so the
// transport always sends a current token. The given context governs any
// login exchange a refresh needs.
func (c *Credentials) TokenSource(ctx context.Context) oauth2.TokenSource {
	return &tokenSource{ctx: ctx, creds: c}
}

type tokenSource struct {
	ctx   context.Context
	creds *Credentials
}

func (ts *tokenSource) Token() (*oauth2.Token, error) {
	token, err := ts.creds.GetToken(ts.ctx)
	if err != nil {
		return nil, err
	}

	t := &oauth2.Token{AccessToken: token, TokenType: "Bearer"}
	if claims, err := ts.creds.Claims(); err == nil && !claims.ExpiresAt.IsZero() {
		// Lets oauth2.ReuseTokenSource cache the token until the claim expiry.
		t.Expiry = claims.ExpiresAt
	}
	return t, nil
}
