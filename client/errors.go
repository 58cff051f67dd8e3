package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrRequestFailed is the sentinel wrapped by every RequestError, so callers
// can match any transport failure with errors.Is.
var ErrRequestFailed = errors.New("lingua: request failed")

// RequestError reports a non-success HTTP response from the Lingua server.
// Requests are never retried automatically.
type RequestError struct {
	Message string
	Status  int
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("lingua: request failed with status %d: %s", e.Status, e.Message)
}

func (e *RequestError) Unwrap() error {
	return ErrRequestFailed
}

// maxErrorBody caps how much of an error response body is read for the message.
const maxErrorBody = 64 << 10

// newRequestError builds a RequestError from a non-success response,
// preferring the server's JSON {"message": ...} body over the status text.
func newRequestError(resp *http.Response) error {
	message := http.StatusText(resp.StatusCode)

	if data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody)); err == nil && len(data) > 0 {
		var body struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(data, &body); err == nil && body.Message != "" {
			message = body.Message
		}
	}

	return &RequestError{Status: resp.StatusCode, Message: message}
}
