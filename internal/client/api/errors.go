package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("conflict")
	ErrUnavailable  = errors.New("service unavailable")
)

// DefaultErrorMessage is used when nothing better can be resolved.
const DefaultErrorMessage = "Une erreur est survenue"

// maxErrorBody caps how much of a failed response is read for its message.
const maxErrorBody = 64 << 10

// Error is a normalized HTTP failure. Status is 0 for transport errors.
type Error struct {
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is lets sentinel errors match on status.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrConflict:
		return e.Status == http.StatusConflict
	case ErrUnavailable:
		return e.Status == 0 && e.Err != nil
	}
	return false
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// newTransportError wraps a failed round trip.
func newTransportError(err error) *Error {
	return &Error{Message: resolveMessage(0, nil, err), Err: err}
}

// newResponseError consumes and closes resp.Body.
func newResponseError(resp *http.Response) *Error {
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	_, _ = io.Copy(io.Discard, resp.Body)

	return &Error{
		Status:  resp.StatusCode,
		Message: resolveMessage(resp.StatusCode, body, nil),
	}
}

// resolveMessage picks the message in priority order: JSON "message", then
// JSON "error", then a body that is itself a string, then the transport
// error, then the status line, then DefaultErrorMessage.
func resolveMessage(status int, body []byte, transportErr error) string {
	if msg := messageFromBody(body); msg != "" {
		return msg
	}
	if transportErr != nil && transportErr.Error() != "" {
		return transportErr.Error()
	}
	if status != 0 {
		return fmt.Sprintf("Error Code: %d - %s", status, http.StatusText(status))
	}
	return DefaultErrorMessage
}

func messageFromBody(body []byte) string {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return ""
	}

	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		// not JSON: a plain text body is the message
		return string(body)
	}

	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case map[string]any:
		for _, key := range []string{"message", "error"} {
			if s, ok := t[key].(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}
