package ebay

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error is returned for every failed remote call: transport failures,
// non-2xx responses, and bodies that are not the expected JSON.
// Authenticator errors are not wrapped in Error.
type Error struct {
	Method     string
	URL        string
	StatusCode int           // 0 if no response was received
	Errors     []ErrorDetail // eBay error envelope, when the body had one
	Err        error
}

// ErrorDetail is one entry of the "errors" array eBay returns with
// 4xx and 5xx responses.
type ErrorDetail struct {
	ErrorID     int    `json:"errorId"`
	Domain      string `json:"domain"`
	Category    string `json:"category"`
	Message     string `json:"message"`
	LongMessage string `json:"longMessage,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("ebay: %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is an Error for a 404 response.
func IsNotFound(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.StatusCode == http.StatusNotFound
}

type errorEnvelope struct {
	Errors []ErrorDetail `json:"errors"`
}

// statusError builds the cause for a non-2xx response.
func statusError(code int, body []byte) ([]ErrorDetail, error) {
	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err == nil && len(env.Errors) > 0 {
		return env.Errors, fmt.Errorf(
			"eBay API error (status %d): %s",
			code,
			env.Errors[0].Message,
		)
	}
	return nil, fmt.Errorf("eBay API error (status %d): %s", code, string(body))
}
