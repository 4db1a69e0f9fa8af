// Package cli provides the interactive MDD forum client.
//
// It wires configuration, the session store, the HTTP API pipeline, alerts
// and the guarded router, then drives a REPL where every command opens a
// page. Pages behind authentication redirect to the login page when no
// session exists; the login and register pages send logged-in users home.
package cli
