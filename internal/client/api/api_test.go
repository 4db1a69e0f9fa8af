package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/elducche/mddcli/internal/client/notify"
	"github.com/elducche/mddcli/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSession struct {
	mu      sync.Mutex
	token   string
	logouts int
}

func (f *fakeSession) Token(context.Context) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token, f.token != ""
}

func (f *fakeSession) Logout(context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = ""
	f.logouts++
}

type fakeAlerts struct {
	mu     sync.Mutex
	alerts []notify.Alert
}

func (f *fakeAlerts) ShowAlert(a notify.Alert) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.alerts = append(f.alerts, a)
}

func newAuthorizedClient(t *testing.T, h http.HandlerFunc, token string) (*Client, *fakeSession, *fakeAlerts) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	sess := &fakeSession{token: token}
	alerts := &fakeAlerts{}
	c := New(srv.URL+"/", srv.Client())
	c.Use(RequestID(), Authorize(sess, alerts, logging.Nop()))
	return c, sess, alerts
}

func TestEndpoints_URL(t *testing.T) {
	e := NewEndpoints("http://localhost:8080//")
	assert.Equal(t, "http://localhost:8080", e.BaseURL())
	assert.Equal(t, "http://localhost:8080/api/auth/login", e.URL(PathLogin))
	assert.Equal(t, "http://localhost:8080/api/posts/7", e.URL("/"+PostPath(7)))
	assert.Equal(t, "http://localhost:8080/api/comments/post/3", e.URL(CommentsByPostPath(3)))
	assert.Equal(t, "http://localhost:8080/api/posts/theme/2", e.URL(PostsByThemePath(2)))
}

func TestChain_FirstIsOutermost(t *testing.T) {
	var trace []string
	mark := func(name string) Interceptor {
		return func(req *http.Request, next Handler) (*http.Response, error) {
			trace = append(trace, name+">")
			resp, err := next.Do(req)
			trace = append(trace, "<"+name)
			return resp, err
		}
	}
	inner := HandlerFunc(func(*http.Request) (*http.Response, error) {
		trace = append(trace, "send")
		return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody}, nil
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := Chain(inner, mark("a"), mark("b")).Do(req)
	require.NoError(t, err)
	assert.Equal(t, []string{"a>", "b>", "send", "<b", "<a"}, trace)
}

func TestAuthorize_AttachesBearerToClone(t *testing.T) {
	var gotAuth, gotRequestID string
	c, _, _ := newAuthorizedClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get(RequestIDHeader)
		w.WriteHeader(http.StatusOK)
	}, "abc.def.ghi")

	req, err := c.NewRequest(context.Background(), http.MethodGet, PathThemes, nil)
	require.NoError(t, err)

	resp, err := c.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "Bearer abc.def.ghi", gotAuth)
	assert.NotEmpty(t, gotRequestID)
	assert.Empty(t, req.Header.Get("Authorization"), "caller's request must not be mutated")
	assert.Empty(t, req.Header.Get(RequestIDHeader))
}

func TestAuthorize_NoTokenNoHeader(t *testing.T) {
	var sawAuth bool
	c, _, _ := newAuthorizedClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, sawAuth = r.Header["Authorization"]
	}, "")

	require.NoError(t, c.Get(context.Background(), PathThemes, nil))
	assert.False(t, sawAuth)
}

func TestAuthorize_UnauthorizedLogsOutAndAlerts(t *testing.T) {
	c, sess, alerts := newAuthorizedClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"message":"Token invalide"}`)
	}, "stale")

	err := c.Get(context.Background(), PathMe, nil)
	require.Error(t, err)

	assert.True(t, errors.Is(err, ErrUnauthorized))
	assert.Equal(t, "Token invalide", err.Error())
	assert.Equal(t, 1, sess.logouts)

	_, ok := sess.Token(context.Background())
	assert.False(t, ok)

	require.Len(t, alerts.alerts, 1)
	assert.Equal(t, notify.Alert{Type: notify.Error, Message: SessionExpiredMessage}, alerts.alerts[0])
}

func TestAuthorize_OtherErrorsDoNotLogout(t *testing.T) {
	c, sess, alerts := newAuthorizedClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = io.WriteString(w, `{"message":"Email déjà utilisé"}`)
	}, "tok")

	err := c.Post(context.Background(), PathRegister, map[string]string{"email": "a@b.c"}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConflict))
	assert.Equal(t, http.StatusConflict, StatusOf(err))
	assert.Zero(t, sess.logouts)
	assert.Empty(t, alerts.alerts)
}

func TestErrorMessageResolution(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		contentType string
		body        string
		want        string
	}{
		{"json message", 400, "application/json", `{"message":"Champ requis","error":"Bad Request"}`, "Champ requis"},
		{"json error field", 400, "application/json", `{"error":"Bad Request"}`, "Bad Request"},
		{"json string body", 409, "application/json", `"Email déjà utilisé"`, "Email déjà utilisé"},
		{"plain text body", 401, "text/plain", "Identifiants invalides", "Identifiants invalides"},
		{"empty body", 500, "", "", "Error Code: 500 - Internal Server Error"},
		{"object without message", 404, "application/json", `{"path":"/x"}`, "Error Code: 404 - Not Found"},
		{"empty message falls through", 403, "application/json", `{"message":""}`, "Error Code: 403 - Forbidden"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.contentType != "" {
					w.Header().Set("Content-Type", tt.contentType)
				}
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			err := New(srv.URL, srv.Client()).Get(context.Background(), PathPosts, nil)

			var apiErr *Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.want, apiErr.Message)
		})
	}
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	err := New(url, nil).Get(context.Background(), PathThemes, nil)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Zero(t, apiErr.Status)
	assert.NotEmpty(t, apiErr.Message)
	assert.True(t, errors.Is(err, ErrUnavailable))
	assert.False(t, errors.Is(err, ErrUnauthorized))
}

func TestResolveMessage_Fallback(t *testing.T) {
	assert.Equal(t, DefaultErrorMessage, resolveMessage(0, nil, nil))
	assert.Equal(t, "dial failed", resolveMessage(0, []byte("  "), errors.New("dial failed")))
}

func TestRequestID_KeepsExisting(t *testing.T) {
	var got string
	inner := HandlerFunc(func(r *http.Request) (*http.Response, error) {
		got = r.Header.Get(RequestIDHeader)
		return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody}, nil
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "fixed")
	_, err := Chain(inner, RequestID()).Do(req)
	require.NoError(t, err)
	assert.Equal(t, "fixed", got)
}

func TestSuccessText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/posts":
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_, _ = io.WriteString(w, `{"id":4,"text":"Article créé"}`)
		default:
			w.Header().Set("Content-Type", "text/plain")
			_, _ = io.WriteString(w, `{"text":"ignored"}`)
		}
	}))
	defer srv.Close()

	alerts := &fakeAlerts{}
	c := New(srv.URL, srv.Client())
	c.Use(SuccessText(alerts))

	var out struct {
		ID   int64  `json:"id"`
		Text string `json:"text"`
	}
	require.NoError(t, c.Post(context.Background(), PathPosts, map[string]string{"title": "t"}, &out))
	assert.Equal(t, int64(4), out.ID, "body must still reach the caller")

	text, err := c.Text(context.Background(), http.MethodGet, PathThemes, nil)
	require.NoError(t, err)
	assert.Equal(t, `{"text":"ignored"}`, text)

	require.Len(t, alerts.alerts, 1)
	assert.Equal(t, notify.Alert{Type: notify.Success, Message: "Article créé"}, alerts.alerts[0])
}

func TestClient_DecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "not json")
	}))
	defer srv.Close()

	var out []int
	err := New(srv.URL, srv.Client()).Get(context.Background(), PathThemes, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}
