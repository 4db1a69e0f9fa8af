package api

import "net/http"

// Handler sends a request. Implementations return a non-nil error, usually
// *Error, for transport failures and for responses with status >= 400.
type Handler interface {
	Do(req *http.Request) (*http.Response, error)
}

type HandlerFunc func(req *http.Request) (*http.Response, error)

func (f HandlerFunc) Do(req *http.Request) (*http.Response, error) {
	return f(req)
}

// Interceptor wraps the rest of the pipeline. It must not mutate req; use
// req.Clone to change headers.
type Interceptor func(req *http.Request, next Handler) (*http.Response, error)

// Chain composes interceptors around h. The first interceptor is the
// outermost: it sees the request first and the result last.
func Chain(h Handler, interceptors ...Interceptor) Handler {
	for i := len(interceptors) - 1; i >= 0; i-- {
		ic, next := interceptors[i], h
		h = HandlerFunc(func(req *http.Request) (*http.Response, error) {
			return ic(req, next)
		})
	}
	return h
}

// transport is the innermost stage.
func transport(c *http.Client) Handler {
	return HandlerFunc(func(req *http.Request) (*http.Response, error) {
		resp, err := c.Do(req)
		if err != nil {
			return nil, newTransportError(err)
		}
		if resp.StatusCode >= http.StatusBadRequest {
			return nil, newResponseError(resp)
		}
		return resp, nil
	})
}
