package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn(ctx context.Context) bool
	Open(ctx context.Context, route string) error
	WhoAmI(ctx context.Context) error
	Logout(ctx context.Context) error
}

// commandRoutes maps argument-less commands to the page they open.
var commandRoutes = map[string]string{
	"login":    "/login",
	"register": "/register",
	"home":     "/home",
	"feed":     "/home",
	"themes":   "/themes",
	"articles": "/articles",
	"post":     "/post",
	"profile":  "/profile",
}

// idRoutes maps commands taking one id argument to a route format.
var idRoutes = map[string]string{
	"subscribe":   "/themes/%s/subscribe",
	"unsubscribe": "/themes/%s/unsubscribe",
	"theme":       "/themes/%s/articles",
	"article":     "/article/%s",
	"comment":     "/article/%s/comment",
}

const (
	helpGuest  = "Available commands: register, login, exit"
	helpMember = "Available commands: home, themes, theme <id>, articles, subscribe <id>, unsubscribe <id>, article <id>, comment <id>, post, profile [edit], whoami, logout, exit"
)

// runREPL reads commands from in, one per line, and opens the matching page
// on 'a'. Pages prompt through the same reader, so scripted input can carry
// their answers on the following lines. All output goes to w.
//
// Commands
//
//	Not logged in:
//	  - help                 show available commands
//	  - register             create an account
//	  - login                authenticate
//	  - exit | quit          leave the program
//
//	Logged in:
//	  - home | feed          articles of subscribed themes
//	  - themes               list themes and subscriptions
//	  - theme <id>           articles of one theme
//	  - articles             every article
//	  - subscribe <id>       subscribe to a theme
//	  - unsubscribe <id>     unsubscribe from a theme
//	  - article <id>         show an article and its comments
//	  - comment <id>         comment an article
//	  - post                 write an article
//	  - profile [edit]       show or edit the profile
//	  - whoami               identity from the stored session
//	  - logout               forget the session
//
// The loop ends at end of input or on exit. Errors returned by pages are
// ignored here; pages report their own failures.
func runREPL(ctx context.Context, a execIface, statusFn func() string, in *bufio.Reader, w io.Writer) {
	for {
		prompt := "mdd> "
		if s := statusFn(); s != "" {
			prompt = fmt.Sprintf("mdd (%s)> ", s)
		}
		fmt.Fprint(w, prompt)

		line, err := readLine(in)
		if err != nil {
			fmt.Fprintln(w)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if route, ok := commandRoutes[cmd]; ok {
			if cmd == "profile" && len(args) > 0 && args[0] == "edit" {
				route = "/profile/edit"
			}
			_ = a.Open(ctx, route)
			continue
		}

		if format, ok := idRoutes[cmd]; ok {
			if len(args) == 0 {
				fmt.Fprintf(w, "Usage: %s <id>\n", cmd)
				continue
			}
			_ = a.Open(ctx, fmt.Sprintf(format, args[0]))
			continue
		}

		switch cmd {
		case "help":
			if a.isLoggedIn(ctx) {
				fmt.Fprintln(w, helpMember)
			} else {
				fmt.Fprintln(w, helpGuest)
			}

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}
	}
}
