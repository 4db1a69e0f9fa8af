package api

import (
	"net/http"

	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// RequestID sets X-Request-ID on requests that lack one.
func RequestID() Interceptor {
	return func(req *http.Request, next Handler) (*http.Response, error) {
		if req.Header.Get(RequestIDHeader) == "" {
			req = req.Clone(req.Context())
			req.Header.Set(RequestIDHeader, uuid.NewString())
		}
		return next.Do(req)
	}
}
