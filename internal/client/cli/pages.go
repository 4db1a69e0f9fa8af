package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/elducche/mddcli/internal/client/api"
	"github.com/elducche/mddcli/internal/client/auth"
	"github.com/elducche/mddcli/internal/client/notify"
	"github.com/elducche/mddcli/internal/client/router"
)

// getSimpleText, getPassword and getMultiline are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
)

const (
	msgRegistered      = "Compte créé avec succès ! Redirection vers la connexion..."
	msgRegisterFailed  = "Erreur lors de la création du compte"
	msgProfileLoad     = "Impossible de charger le profil utilisateur"
	msgSubsLoad        = "Erreur lors du chargement de vos abonnements"
	msgProfileUpdated  = "Profil mis à jour avec succès. Vous allez être déconnecté pour actualiser votre session."
	msgProfileFailed   = "Erreur lors de la mise à jour du profil"
	msgInvalidForm     = "Veuillez corriger les erreurs du formulaire"
	msgThemesLoad      = "Erreur lors du chargement des thèmes"
	msgPostCreated     = "Article créé avec succès !"
	msgPostFailed      = "Erreur lors de la création de l'article"
	msgPostLoad        = "Erreur lors du chargement de l'article"
	msgPostsLoad       = "Erreur lors du chargement des articles"
	msgCommentFailed   = "Erreur lors de la création du commentaire"
	msgSubscribed      = "Vous êtes abonné à \"%s\""
	msgSubscribeFailed = "Erreur lors de l'abonnement"
	msgUnsubscribed    = "Vous vous êtes désabonné de \"%s\""
	msgUnsubFailed     = "Erreur lors du désabonnement"
	msgSubNotFound     = "Abonnement introuvable"
	msgLoggedOut       = "Déconnecté"
)

var errInvalidInput = errors.New("invalid input")

// registerPages binds every route to its guards and page.
func (a *App) registerPages() {
	guest := router.RequireGuest(a.auth.LoginState, a.router)
	authed := router.RequireAuth(a.auth.LoginState, a.router)

	a.pages = map[string]page{}
	a.handle("/login", a.loginPage, guest)
	a.handle("/register", a.registerPage, guest)
	a.handle(router.HomeRoute, a.homePage, authed)
	a.handle("/themes", a.themesPage, authed)
	a.handle("/themes/{id}/articles", a.themeArticlesPage, authed)
	a.handle("/themes/{id}/subscribe", a.subscribePage, authed)
	a.handle("/themes/{id}/unsubscribe", a.unsubscribePage, authed)
	a.handle("/articles", a.articlesPage, authed)
	a.handle("/article/{id}", a.articlePage, authed)
	a.handle("/article/{id}/comment", a.commentPage, authed)
	a.handle("/post", a.createPostPage, authed)
	a.handle("/profile", a.profilePage, authed)
	a.handle("/profile/edit", a.editProfilePage, authed)
}

func (a *App) handle(pattern string, p page, guards ...router.Guard) {
	a.router.Handle(pattern, guards...)
	a.pages[pattern] = p
}

// Open navigates to route through the guards and renders the page finally
// admitted.
func (a *App) Open(ctx context.Context, route string) error {
	m, err := a.router.Go(ctx, route)
	switch {
	case errors.Is(err, router.ErrNotFound):
		fmt.Fprintln(a.out, "Page inconnue:", route)
		return err
	case err != nil:
		a.log.Warn(ctx, "navigation failed", "route", route, "error", err)
		fmt.Fprintln(a.out, "Navigation impossible:", route)
		return err
	}

	if m.Path != route {
		a.log.Debug(ctx, "redirected", "from", route, "to", m.Path)
		fmt.Fprintln(a.out, "Redirection vers", m.Path)
	}
	return a.pages[m.Pattern](ctx, m)
}

// WhoAmI prints the identity decoded from the stored token.
func (a *App) WhoAmI(ctx context.Context) error {
	u := a.auth.CurrentUser(ctx)
	if u == nil {
		fmt.Fprintln(a.out, "Non connecté")
		return nil
	}
	fmt.Fprintf(a.out, "#%d %s <%s>\n", u.UserID, u.Username, u.Email)
	return nil
}

// Logout forgets the session. It makes no network call.
func (a *App) Logout(ctx context.Context) error {
	a.auth.Logout(ctx)
	fmt.Fprintln(a.out, msgLoggedOut)
	return nil
}

func (a *App) loginPage(ctx context.Context, _ *router.Match) error {
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	resp, err := a.auth.Login(ctx, auth.Credentials{Email: email, Password: string(password)})
	if err != nil {
		fmt.Fprintln(a.out, messageOf(err, auth.DefaultLoginError))
		return err
	}

	if resp.Message != "" {
		fmt.Fprintln(a.out, resp.Message)
	}
	return a.Open(ctx, router.HomeRoute)
}

func (a *App) registerPage(ctx context.Context, _ *router.Match) error {
	username, err := getSimpleText(a.reader, "Nom d'utilisateur", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	if username == "" || email == "" || len(password) == 0 {
		fmt.Fprintln(a.out, msgInvalidForm)
		return errInvalidInput
	}

	req := auth.RegisterRequest{Username: username, Email: email, Password: string(password)}
	if _, err := a.auth.Register(ctx, req); err != nil {
		fmt.Fprintln(a.out, messageOf(err, msgRegisterFailed))
		return err
	}

	fmt.Fprintln(a.out, msgRegistered)
	return a.Open(ctx, "/login")
}

// messageOf picks the text shown for a failed call: the backend's message
// when there is one, fallback otherwise.
func messageOf(err error, fallback string) string {
	var loginErr *auth.LoginError
	if errors.As(err, &loginErr) && loginErr.Message != "" {
		return loginErr.Message
	}
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// fail raises an error alert for a failed page. A 401 already produced the
// session-expired alert and is not reported twice.
func (a *App) fail(ctx context.Context, err error, message string) error {
	a.log.Debug(ctx, "page failed", "route", a.router.Current(), "error", err)
	if !errors.Is(err, api.ErrUnauthorized) {
		a.alerts.ShowAlert(notifyError(message))
	}
	return err
}

func (a *App) succeed(message string) {
	a.alerts.ShowAlert(notify.Alert{Type: notify.Success, Message: message})
}

// idParam reads a numeric path parameter.
func (a *App) idParam(m *router.Match, name string) (int64, error) {
	raw := m.Params[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		fmt.Fprintln(a.out, "Identifiant invalide:", raw)
		return 0, errInvalidInput
	}
	return id, nil
}

func notifyError(message string) notify.Alert {
	return notify.Alert{Type: notify.Error, Message: message}
}
