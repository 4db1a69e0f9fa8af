// Package router resolves CLI navigation through route guards.
//
// A guard either allows navigation or denies it after asking the navigator
// for exactly one redirect. Guards hold no state and never retry.
package router

import "context"

const (
	LoginRoute = "/login"
	HomeRoute  = "/home"
)

// Navigator accepts a redirect requested by a guard.
type Navigator interface {
	Navigate(route string)
}

// LoginState reports whether a session exists. A non-nil error means the
// state is unknown.
type LoginState func(ctx context.Context) (bool, error)

// Guard decides whether navigation may proceed.
type Guard func(ctx context.Context) bool

// RequireAuth admits only logged-in users. Anyone else, including an unknown
// state, is sent to the login route.
func RequireAuth(state LoginState, nav Navigator) Guard {
	return func(ctx context.Context) bool {
		loggedIn, err := state(ctx)
		if err == nil && loggedIn {
			return true
		}
		nav.Navigate(LoginRoute)
		return false
	}
}

// RequireGuest admits only visitors without a session; logged-in users are
// sent home. An unknown state is admitted.
func RequireGuest(state LoginState, nav Navigator) Guard {
	return func(ctx context.Context) bool {
		loggedIn, err := state(ctx)
		if err != nil || !loggedIn {
			return true
		}
		nav.Navigate(HomeRoute)
		return false
	}
}
