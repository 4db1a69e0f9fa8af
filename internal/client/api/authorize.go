package api

import (
	"context"
	"net/http"

	"github.com/elducche/mddcli/internal/client/notify"
	"github.com/elducche/mddcli/internal/logging"
)

// SessionExpiredMessage is shown when the backend rejects the session.
const SessionExpiredMessage = "Session expirée. Veuillez vous reconnecter."

// Session is the part of the session service the pipeline depends on.
type Session interface {
	Token(ctx context.Context) (string, bool)
	Logout(ctx context.Context)
}

// Alerter receives user-facing alerts.
type Alerter interface {
	ShowAlert(a notify.Alert)
}

// Authorize attaches the bearer token when one is stored. On a 401 it logs the
// user out and raises the session-expired alert; the error still reaches the
// caller.
func Authorize(sess Session, alerts Alerter, log logging.Logger) Interceptor {
	return func(req *http.Request, next Handler) (*http.Response, error) {
		ctx := req.Context()

		if token, ok := sess.Token(ctx); ok {
			req = req.Clone(ctx)
			req.Header.Set("Authorization", "Bearer "+token)
		}

		resp, err := next.Do(req)
		if err == nil {
			return resp, nil
		}

		status := StatusOf(err)
		log.Warn(ctx, "request failed",
			"method", req.Method,
			"url", req.URL.String(),
			"status", status,
			"request_id", req.Header.Get(RequestIDHeader),
			"error", err.Error(),
		)

		if status == http.StatusUnauthorized {
			sess.Logout(ctx)
			alerts.ShowAlert(notify.Alert{Type: notify.Error, Message: SessionExpiredMessage})
		}

		return resp, err
	}
}
