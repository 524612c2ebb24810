package credentials

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// CredentialsError reports a fatal problem with the credential material
// itself: contradictory or incomplete explicit values, a token that fails
// claim validation with no refresh path, or a provider chain that found
// nothing usable. Transport failures are never wrapped in this type.
type CredentialsError struct {
	Message string
}

func (e *CredentialsError) Error() string {
	return e.Message
}

// APIError is a non-2xx response from the Infisical API. StatusCode always
// carries the HTTP status; Message and Details come from the error body when
// the server sent one.
type APIError struct {
	StatusCode int
	Message    string
	Details    string
}

func (e *APIError) Error() string {
	kind := "Server Error"
	if e.StatusCode >= http.StatusBadRequest && e.StatusCode < http.StatusInternalServerError {
		kind = "Client Error"
	}
	msg := fmt.Sprintf("%s %d: %s", kind, e.StatusCode, e.Message)
	if e.Details != "" {
		msg += " - " + e.Details
	}
	return msg
}

// newAPIError builds an APIError from a response body. Infisical error
// bodies carry message, statusCode and details fields; when the body is
// missing or not in that shape, the HTTP status text stands in.
func newAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode}

	var wire struct {
		Message    string          `json:"message"`
		StatusCode int             `json:"statusCode"`
		Details    json.RawMessage `json:"details"`
	}
	if err := json.Unmarshal(body, &wire); err == nil && wire.Message != "" {
		apiErr.Message = wire.Message
		if wire.StatusCode != 0 {
			apiErr.StatusCode = wire.StatusCode
		}
		if len(wire.Details) > 0 && string(wire.Details) != "null" {
			var detail string
			if err := json.Unmarshal(wire.Details, &detail); err == nil {
				apiErr.Details = detail
			} else {
				apiErr.Details = string(wire.Details)
			}
		}
		return apiErr
	}

	apiErr.Message = http.StatusText(statusCode)
	return apiErr
}
