package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/elducche/mddcli/internal/client/api"
	"github.com/elducche/mddcli/internal/client/auth"
	"github.com/elducche/mddcli/internal/client/config"
	"github.com/elducche/mddcli/internal/client/forum"
	"github.com/elducche/mddcli/internal/client/notify"
	"github.com/elducche/mddcli/internal/client/router"
	"github.com/elducche/mddcli/internal/client/session"
	"github.com/elducche/mddcli/internal/logging"
)

// page renders one route. It reports failures to the user itself; the
// returned error only tells the caller that the page did not complete.
type page func(ctx context.Context, m *router.Match) error

type App struct {
	config  *config.Config
	log     logging.Logger
	api     *api.Client
	session session.Store
	auth    *auth.Service
	forum   *forum.Service
	alerts  *notify.Service
	display *notify.Display
	router  *router.Router
	pages   map[string]page
	reader  *bufio.Reader
	out     io.Writer

	stopDisplay func()
	closers     []func() error
}

// NewApp wires the client against stdin and stdout.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	return newApp(ctx, c, log, os.Stdin, os.Stdout)
}

func newApp(ctx context.Context, c *config.Config, log logging.Logger, in io.Reader, out io.Writer) (*App, error) {
	store, closeStore, err := openSessionStore(ctx, c, log)
	if err != nil {
		return nil, err
	}

	client := api.New(c.APIURL, nil)
	alerts := notify.NewService()
	as := auth.NewService(client, store, log)

	interceptors := []api.Interceptor{api.RequestID(), api.Authorize(as, alerts, log)}
	if c.SuccessAlerts {
		interceptors = append(interceptors, api.SuccessText(alerts))
	}
	client.Use(interceptors...)

	a := &App{
		config:  c,
		log:     log,
		api:     client,
		session: store,
		auth:    as,
		forum:   forum.NewService(client),
		alerts:  alerts,
		display: notify.NewDisplay(alerts, out, c.AlertTTL),
		router:  router.New(),
		reader:  bufio.NewReader(in),
		out:     out,
		closers: []func() error{closeStore},
	}
	a.registerPages()
	a.stopDisplay = a.display.Start()

	log.Debug(ctx, "client ready", "api", client.Endpoints().BaseURL(), "session", c.SessionBackend)
	return a, nil
}

// Run greets the user and blocks in the REPL until exit or end of input.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	fmt.Fprintln(a.out, "MDD CLI (type 'help' for commands)")
	if a.isLoggedIn(ctx) {
		_ = a.Open(ctx, router.HomeRoute)
	}

	runREPL(ctx, a, func() string { return a.status(ctx) }, a.reader, a.out)
}

// Close stops the alert display and releases the session backend.
func (a *App) Close() error {
	if a.stopDisplay != nil {
		a.stopDisplay()
		a.stopDisplay = nil
	}

	var errs []error
	for _, c := range a.closers {
		if c == nil {
			continue
		}
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	return a.auth.IsLoggedIn(ctx)
}

// status is the prompt decoration: the username of the current session.
func (a *App) status(ctx context.Context) string {
	u := a.auth.CurrentUser(ctx)
	if u == nil {
		return ""
	}
	if u.Username != "" {
		return u.Username
	}
	return u.Email
}
