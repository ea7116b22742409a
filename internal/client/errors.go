package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

var (
	// ErrMalformedResponse marks a response body that is not the expected JSON
	ErrMalformedResponse = errors.New("malformed response body")
)

const (
	placeOrderFallback = "Failed to place order"
	updateMenuFallback = "Failed to update menu"
	loginFallback      = "Login failed"
)

// APIError is a non-2xx answer from the backend. Error returns the server's
// message verbatim so it can be shown to the user.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// statusError describes a non-2xx response whose body is not inspected
func statusError(status int) *APIError {
	return &APIError{
		StatusCode: status,
		Message:    fmt.Sprintf("HTTP error! status: %d", status),
	}
}

// errorBody is the backend's failure shape
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// readAPIError reads {"error": "..."} from a failed response. Bodies that are
// not JSON, or carry no error field, get the fallback message.
func readAPIError(resp *http.Response, fallback string) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode, Message: fallback}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return apiErr
	}
	var body errorBody
	if err := json.Unmarshal(data, &body); err != nil {
		return apiErr
	}
	if body.Error != "" {
		apiErr.Message = body.Error
	}
	return apiErr
}
