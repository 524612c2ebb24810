package credentials

import (
	"net/http"
	"testing"
)

func TestAPIErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		err  *APIError
		want string
	}{
		{
			name: "client error",
			err:  &APIError{StatusCode: 400, Message: "Bad request"},
			want: "Client Error 400: Bad request",
		},
		{
			name: "client error with details",
			err:  &APIError{StatusCode: 401, Message: "Unauthorized", Details: "token revoked"},
			want: "Client Error 401: Unauthorized - token revoked",
		},
		{
			name: "upper client boundary",
			err:  &APIError{StatusCode: 499, Message: "Client closed request"},
			want: "Client Error 499: Client closed request",
		},
		{
			name: "server error",
			err:  &APIError{StatusCode: 500, Message: "Internal server error"},
			want: "Server Error 500: Internal server error",
		},
		{
			name: "anything outside the 4xx range reads as server error",
			err:  &APIError{StatusCode: 302, Message: "Found"},
			want: "Server Error 302: Found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestNewAPIError(t *testing.T) {
	t.Run("parses an Infisical error body", func(t *testing.T) {
		body := []byte(`{"message":"Invalid credentials","statusCode":401,"details":"clientSecret mismatch"}`)

		err := newAPIError(http.StatusUnauthorized, body)
		if err.StatusCode != 401 {
			t.Errorf("expected status 401, got %d", err.StatusCode)
		}
		if err.Message != "Invalid credentials" {
			t.Errorf("unexpected message: %s", err.Message)
		}
		if err.Details != "clientSecret mismatch" {
			t.Errorf("unexpected details: %s", err.Details)
		}
	})

	t.Run("keeps structured details as raw JSON", func(t *testing.T) {
		body := []byte(`{"message":"Validation failed","details":{"field":"clientId"}}`)

		err := newAPIError(http.StatusUnprocessableEntity, body)
		if err.Details != `{"field":"clientId"}` {
			t.Errorf("unexpected details: %s", err.Details)
		}
	})

	t.Run("falls back to the HTTP status text", func(t *testing.T) {
		err := newAPIError(http.StatusBadGateway, []byte("<html>nginx</html>"))
		if err.Error() != "Server Error 502: Bad Gateway" {
			t.Errorf("unexpected error string: %s", err.Error())
		}
	})

	t.Run("handles an empty body", func(t *testing.T) {
		err := newAPIError(http.StatusServiceUnavailable, nil)
		if err.Error() != "Server Error 503: Service Unavailable" {
			t.Errorf("unexpected error string: %s", err.Error())
		}
	})
}

func TestCredentialsErrorMessage(t *testing.T) {
	err := &CredentialsError{Message: "The credentials have expired."}
	if err.Error() != "The credentials have expired." {
		t.Errorf("unexpected error string: %s", err.Error())
	}
}
