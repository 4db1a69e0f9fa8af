package auth

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/elducche/mddcli/internal/client/api"
	"github.com/elducche/mddcli/internal/client/session"
	"github.com/elducche/mddcli/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend records calls and returns preset results.
type fakeBackend struct {
	lastPath string
	lastIn   any

	loginResp LoginResponse
	postErr   error

	text    string
	textErr error
}

func (f *fakeBackend) Post(_ context.Context, path string, in, out any) error {
	f.lastPath, f.lastIn = path, in
	if f.postErr != nil {
		return f.postErr
	}
	if r, ok := out.(*LoginResponse); ok {
		*r = f.loginResp
	}
	return nil
}

func (f *fakeBackend) Text(_ context.Context, _ string, path string, in any) (string, error) {
	f.lastPath, f.lastIn = path, in
	return f.text, f.textErr
}

// failingStore fails every operation.
type failingStore struct{}

var errStore = errors.New("store down")

func (failingStore) Load(context.Context) (string, bool, error) { return "", false, errStore }
func (failingStore) Save(context.Context, string) error          { return errStore }
func (failingStore) Clear(context.Context) error                 { return errStore }

func newService(t *testing.T, b Backend) (*Service, *session.MemoryStore) {
	t.Helper()
	store := session.NewMemoryStore()
	return NewService(b, store, logging.Nop()), store
}

// token builds header.payload.signature with a base64url payload.
func token(payload string) string {
	return "h." + base64.RawURLEncoding.EncodeToString([]byte(payload)) + ".s"
}

func TestLogin_StoresToken(t *testing.T) {
	b := &fakeBackend{loginResp: LoginResponse{Token: "T1", Message: "Connexion réussie"}}
	svc, store := newService(t, b)
	ctx := context.Background()

	resp, err := svc.Login(ctx, Credentials{Email: "a@b.c", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "T1", resp.Token)
	assert.Equal(t, api.PathLogin, b.lastPath)
	assert.Equal(t, Credentials{Email: "a@b.c", Password: "pw"}, b.lastIn)

	got, ok, err := store.Load(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "T1", got)
	assert.True(t, svc.IsLoggedIn(ctx))
}

func TestLogin_NoToken(t *testing.T) {
	tests := []struct {
		name    string
		resp    LoginResponse
		wantMsg string
	}{
		{name: "backend message", resp: LoginResponse{Message: "Compte bloqué"}, wantMsg: "Compte bloqué"},
		{name: "default message", resp: LoginResponse{}, wantMsg: DefaultLoginError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newService(t, &fakeBackend{loginResp: tt.resp})

			_, err := svc.Login(context.Background(), Credentials{Email: "a@b.c"})
			var le *LoginError
			require.ErrorAs(t, err, &le)
			assert.Equal(t, tt.wantMsg, err.Error())
			assert.False(t, svc.IsLoggedIn(context.Background()))
		})
	}
}

func TestLogin_PropagatesHTTPError(t *testing.T) {
	httpErr := &api.Error{Status: 401, Message: "Identifiants invalides"}
	svc, _ := newService(t, &fakeBackend{postErr: httpErr})

	_, err := svc.Login(context.Background(), Credentials{})
	require.ErrorIs(t, err, api.ErrUnauthorized)
	assert.Equal(t, "Identifiants invalides", err.Error())
}

func TestRegister(t *testing.T) {
	b := &fakeBackend{text: `{"token":"x","message":"Inscription réussie"}`}
	svc, _ := newService(t, b)

	req := RegisterRequest{Username: "bob", Email: "bob@x.io", Password: "secret1"}
	out, err := svc.Register(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, b.text, out)
	assert.Equal(t, api.PathRegister, b.lastPath)
	assert.Equal(t, req, b.lastIn)
	assert.False(t, svc.IsLoggedIn(context.Background()), "registering does not log in")

	b.textErr = &api.Error{Status: 409, Message: "Un compte avec cet email existe déjà"}
	_, err = svc.Register(context.Background(), req)
	assert.Equal(t, 409, api.StatusOf(err))
}

func TestLogout(t *testing.T) {
	svc, store := newService(t, &fakeBackend{})
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "T"))

	svc.Logout(ctx)

	_, ok := svc.Token(ctx)
	assert.False(t, ok)
	assert.Nil(t, svc.CurrentUser(ctx))

	svc.Logout(ctx)
	assert.False(t, svc.IsLoggedIn(ctx))
}

func TestToken_EmptyStringIsStillASession(t *testing.T) {
	svc, store := newService(t, &fakeBackend{})
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, ""))

	token, ok := svc.Token(ctx)
	assert.True(t, ok)
	assert.Empty(t, token)
	assert.True(t, svc.IsLoggedIn(ctx))

	loggedIn, err := svc.LoginState(ctx)
	require.NoError(t, err)
	assert.True(t, loggedIn)

	assert.Nil(t, svc.CurrentUser(ctx))

	svc.Logout(ctx)
	assert.False(t, svc.IsLoggedIn(ctx))
}

func TestStoreFailures(t *testing.T) {
	svc := NewService(&fakeBackend{loginResp: LoginResponse{Token: "T"}}, failingStore{}, logging.Nop())
	ctx := context.Background()

	assert.False(t, svc.IsLoggedIn(ctx))
	assert.Nil(t, svc.CurrentUser(ctx))

	_, err := svc.LoginState(ctx)
	require.ErrorIs(t, err, errStore)

	_, err = svc.Login(ctx, Credentials{})
	require.ErrorIs(t, err, errStore)

	assert.NotPanics(t, func() { svc.Logout(ctx) })
}

func TestCurrentUser_Decodes(t *testing.T) {
	svc, store := newService(t, &fakeBackend{})
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, token(`{"userId":7,"username":"alice","sub":"alice@x.io"}`)))

	u := svc.CurrentUser(ctx)
	require.NotNil(t, u)
	assert.Equal(t, CurrentUser{UserID: 7, Username: "alice", Email: "alice@x.io"}, *u)

	id, ok := svc.CurrentUserID(ctx)
	assert.True(t, ok)
	assert.Equal(t, int64(7), id)
}

func TestCurrentUser_IgnoresRegisteredClaimTypes(t *testing.T) {
	for name, payload := range map[string]string{
		"string exp":  `{"userId":7,"username":"bob","sub":"b@x.com","exp":"never"}`,
		"numeric aud": `{"userId":7,"username":"bob","sub":"b@x.com","aud":5}`,
		"expired":     `{"userId":7,"username":"bob","sub":"b@x.com","exp":1}`,
		"object iat":  `{"userId":7,"username":"bob","sub":"b@x.com","iat":{"x":1}}`,
	} {
		t.Run(name, func(t *testing.T) {
			svc, store := newService(t, &fakeBackend{})
			ctx := context.Background()
			require.NoError(t, store.Save(ctx, token(payload)))

			u := svc.CurrentUser(ctx)
			require.NotNil(t, u)
			assert.Equal(t, CurrentUser{UserID: 7, Username: "bob", Email: "b@x.com"}, *u)
		})
	}
}

func TestCurrentUser_Alphabets(t *testing.T) {
	// "?>" forces '+'/'/' in standard base64 and '-'/'_' in base64url.
	payload := `{"userId":3,"username":"?>?>","sub":"x@y.z"}`

	for name, seg := range map[string]string{
		"raw url":      base64.RawURLEncoding.EncodeToString([]byte(payload)),
		"padded url":   base64.URLEncoding.EncodeToString([]byte(payload)),
		"raw standard": base64.RawStdEncoding.EncodeToString([]byte(payload)),
		"padded std":   base64.StdEncoding.EncodeToString([]byte(payload)),
	} {
		t.Run(name, func(t *testing.T) {
			svc, store := newService(t, &fakeBackend{})
			ctx := context.Background()
			require.NoError(t, store.Save(ctx, "h."+seg+".s"))

			u := svc.CurrentUser(ctx)
			require.NotNil(t, u)
			assert.Equal(t, "?>?>", u.Username)
		})
	}
}

func TestCurrentUser_Malformed(t *testing.T) {
	tests := map[string]string{
		"no dots":        "garbage",
		"empty payload":  "h..s",
		"bad base64":     "h.!!!.s",
		"not json":       "h." + base64.RawURLEncoding.EncodeToString([]byte("hello")) + ".s",
		"wrong type":     token(`{"userId":"seven"}`),
		"json array":     token(`[1,2]`),
		"only separator": ".",
	}

	for name, tok := range tests {
		t.Run(name, func(t *testing.T) {
			svc, store := newService(t, &fakeBackend{})
			ctx := context.Background()
			require.NoError(t, store.Save(ctx, tok))

			require.NotPanics(t, func() {
				assert.Nil(t, svc.CurrentUser(ctx))
			})
			_, ok := svc.CurrentUserID(ctx)
			assert.False(t, ok)
			assert.True(t, svc.IsLoggedIn(ctx), "an undecodable token still counts as a session")
		})
	}
}

func TestCurrentUserID_ZeroIsAbsent(t *testing.T) {
	svc, store := newService(t, &fakeBackend{})
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, token(`{"userId":0,"username":"ghost","sub":"g@x.io"}`)))

	require.NotNil(t, svc.CurrentUser(ctx))
	_, ok := svc.CurrentUserID(ctx)
	assert.False(t, ok)
}

func TestCurrentUser_NotCached(t *testing.T) {
	svc, store := newService(t, &fakeBackend{})
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, token(`{"userId":1,"username":"a","sub":"a@x"}`)))
	assert.Equal(t, "a", svc.CurrentUser(ctx).Username)

	require.NoError(t, store.Save(ctx, token(`{"userId":2,"username":"b","sub":"b@x"}`)))
	assert.Equal(t, "b", svc.CurrentUser(ctx).Username)
}

func TestDecodeClaims_IgnoresSignature(t *testing.T) {
	c, err := decodeClaims(strings.Join([]string{"not-a-header", base64.RawURLEncoding.EncodeToString([]byte(`{"userId":9}`))}, "."))
	require.NoError(t, err)
	assert.Equal(t, int64(9), c.UserID)
}
