// Package testutil mints the signed and encrypted fixtures the credential
// tests need: HS256 JWTs with chosen time claims, and keyring session blobs
// in the Infisical CLI's JWE envelope format.
package testutil

import (
	"encoding/json"
	"testing"
	"time"

	jose "github.com/go-jose/go-jose/v4"
	"github.com/golang-jwt/jwt/v5"
)

// signingKey signs test tokens. Claim validation never verifies signatures,
// so the key value is arbitrary.
var signingKey = []byte("test-signing-key")

// SignedToken mints an HS256-signed JWT carrying exactly the given claims.
func SignedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(signingKey)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

// ValidToken returns a token issued now and expiring well in the future.
func ValidToken(t *testing.T) string {
	now := time.Now()
	return SignedToken(t, jwt.MapClaims{
		"iat": now.Unix(),
		"exp": now.Add(2 * time.Hour).Unix(),
	})
}

// ExpiredToken returns a token whose lifetime ended at the epoch.
func ExpiredToken(t *testing.T) string {
	return SignedToken(t, jwt.MapClaims{"iat": 0, "exp": 0})
}

// NotYetValidToken returns a token issued in the future. Such a token fails
// claim validation regardless of expiry or refreshability.
func NotYetValidToken(t *testing.T) string {
	return SignedToken(t, jwt.MapClaims{
		"iat": time.Now().Add(2 * time.Hour).Unix(),
		"exp": 0,
	})
}

// SessionJWE encrypts payload the way the Infisical CLI stores keyring
// sessions: double-JSON-encoded plaintext inside a compact
// PBES2-HS256+A128KW / A256GCM envelope.
func SessionJWE(t *testing.T, passphrase string, payload map[string]string) string {
	t.Helper()

	inner, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal session payload: %v", err)
	}
	plaintext, err := json.Marshal(string(inner))
	if err != nil {
		t.Fatalf("failed to double-encode session payload: %v", err)
	}

	encrypter, err := jose.NewEncrypter(
		jose.A256GCM,
		jose.Recipient{Algorithm: jose.PBES2_HS256_A128KW, Key: []byte(passphrase)},
		nil,
	)
	if err != nil {
		t.Fatalf("failed to create encrypter: %v", err)
	}

	blob, err := encrypter.Encrypt(plaintext)
	if err != nil {
		t.Fatalf("failed to encrypt session payload: %v", err)
	}

	compact, err := blob.CompactSerialize()
	if err != nil {
		t.Fatalf("failed to serialize session blob: %v", err)
	}
	return compact
}
