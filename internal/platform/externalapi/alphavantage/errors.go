package alphavantage

import (
	"errors"
	"fmt"
)

// ErrMalformedPayload is returned when the response body is empty or is not valid JSON.
var ErrMalformedPayload = errors.New("alphavantage: malformed payload")

// HTTPError is returned for non-2xx responses.
type HTTPError struct {
	Function   string
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("alphavantage http %d (%s)", e.StatusCode, e.Function)
}

// APIError is returned when the API answers with a Note, Information or Error Message body
// instead of data (rate limited, invalid key, unknown function).
type APIError struct {
	Function string
	Message  string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("alphavantage %s: %s", e.Function, e.Message)
}
