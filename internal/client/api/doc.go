// Package api is the HTTP client for the MDD REST backend.
//
// Every request flows through a declared-order interceptor pipeline. The
// innermost stage performs the HTTP round trip and turns transport failures
// and 4xx/5xx responses into *Error values with a resolved user-facing
// message; interceptors around it attach credentials, request ids, and react
// to failures.
package api
