package cli

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/elducche/mddcli/internal/client/forum"
	"github.com/elducche/mddcli/internal/client/models"
	"github.com/elducche/mddcli/internal/client/router"
	"github.com/elducche/mddcli/internal/timex"
)

const dateLayout = "02/01/2006"

func formatDate(t timex.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(dateLayout)
}

func (a *App) printPosts(posts []models.Post) {
	if len(posts) == 0 {
		fmt.Fprintln(a.out, "Aucun article.")
		return
	}
	for _, p := range posts {
		fmt.Fprintf(a.out, "#%d %s\n    %s | %s | %s\n", p.ID, p.Title, p.Theme.Title, p.Author.Username, formatDate(p.CreatedAt))
	}
}

func (a *App) homePage(ctx context.Context, _ *router.Match) error {
	posts, err := a.forum.SubscribedPosts(ctx)
	if err != nil {
		return a.fail(ctx, err, msgPostsLoad)
	}
	fmt.Fprintln(a.out, "Fil d'actualité")
	a.printPosts(posts)
	return nil
}

func (a *App) articlesPage(ctx context.Context, _ *router.Match) error {
	posts, err := a.forum.Posts(ctx)
	if err != nil {
		return a.fail(ctx, err, msgPostsLoad)
	}
	a.printPosts(posts)
	return nil
}

func (a *App) themeArticlesPage(ctx context.Context, m *router.Match) error {
	id, err := a.idParam(m, "id")
	if err != nil {
		return err
	}
	theme, err := a.forum.Theme(ctx, id)
	if err != nil {
		return a.fail(ctx, err, msgThemesLoad)
	}
	posts, err := a.forum.PostsByTheme(ctx, id)
	if err != nil {
		return a.fail(ctx, err, msgPostsLoad)
	}
	fmt.Fprintf(a.out, "%s: %s\n", theme.Title, theme.Description)
	a.printPosts(posts)
	return nil
}

func (a *App) themesPage(ctx context.Context, _ *router.Match) error {
	themes, err := a.forum.Themes(ctx)
	if err != nil {
		return a.fail(ctx, err, msgThemesLoad)
	}
	subs, err := a.forum.Subscriptions(ctx)
	if err != nil {
		return a.fail(ctx, err, msgSubsLoad)
	}

	for _, t := range themes {
		mark := "[ ]"
		if forum.IsSubscribed(t.ID, subs) {
			mark = "[x]"
		}
		fmt.Fprintf(a.out, "%s #%d %s: %s\n", mark, t.ID, t.Title, t.Description)
	}
	return nil
}

func (a *App) subscribePage(ctx context.Context, m *router.Match) error {
	id, err := a.idParam(m, "id")
	if err != nil {
		return err
	}
	sub, err := a.forum.Subscribe(ctx, id)
	if err != nil {
		return a.fail(ctx, err, messageOf(err, msgSubscribeFailed))
	}
	a.succeed(fmt.Sprintf(msgSubscribed, sub.Theme.Title))
	return nil
}

func (a *App) unsubscribePage(ctx context.Context, m *router.Match) error {
	id, err := a.idParam(m, "id")
	if err != nil {
		return err
	}
	subs, err := a.forum.Subscriptions(ctx)
	if err != nil {
		return a.fail(ctx, err, msgSubsLoad)
	}

	sub := forum.FindSubscription(id, subs)
	if sub == nil {
		a.alerts.ShowAlert(notifyError(msgSubNotFound))
		return errInvalidInput
	}
	if err := a.forum.Unsubscribe(ctx, sub.Theme.ID); err != nil {
		return a.fail(ctx, err, msgUnsubFailed)
	}
	a.succeed(fmt.Sprintf(msgUnsubscribed, sub.Theme.Title))
	return nil
}

func (a *App) articlePage(ctx context.Context, m *router.Match) error {
	id, err := a.idParam(m, "id")
	if err != nil {
		return err
	}
	post, err := a.forum.Post(ctx, id)
	if err != nil {
		return a.fail(ctx, err, msgPostLoad)
	}

	fmt.Fprintf(a.out, "%s\n%s | %s | %s\n\n%s\n", post.Title, post.Theme.Title, post.Author.Username, formatDate(post.CreatedAt), post.Content)

	comments, err := a.forum.Comments(ctx, id)
	if err != nil {
		// The article is still shown without its comments.
		a.log.Warn(ctx, "failed to load comments", "post", id, "error", err)
		return nil
	}
	sortNewestFirst(comments)

	fmt.Fprintf(a.out, "\nCommentaires (%d)\n", len(comments))
	for _, c := range comments {
		fmt.Fprintf(a.out, "  %s, %s: %s\n", c.Author.Username, formatDate(c.CreatedAt), c.Content)
	}
	return nil
}

func sortNewestFirst(comments []models.Comment) {
	slices.SortStableFunc(comments, func(x, y models.Comment) int {
		return y.CreatedAt.Compare(x.CreatedAt.Time)
	})
}

func (a *App) commentPage(ctx context.Context, m *router.Match) error {
	id, err := a.idParam(m, "id")
	if err != nil {
		return err
	}
	content, err := getMultiline(a.reader, "Commentaire", a.out)
	if err != nil {
		return err
	}
	if content == "" {
		return nil
	}

	if _, err := a.forum.AddComment(ctx, models.CreateCommentRequest{PostID: id, Content: content}); err != nil {
		return a.fail(ctx, err, msgCommentFailed)
	}
	return a.Open(ctx, "/article/"+strconv.FormatInt(id, 10))
}

func (a *App) createPostPage(ctx context.Context, _ *router.Match) error {
	themes, err := a.forum.Themes(ctx)
	if err != nil {
		return a.fail(ctx, err, msgThemesLoad)
	}
	slices.SortFunc(themes, func(x, y models.Theme) int { return cmp.Compare(x.ID, y.ID) })
	for _, t := range themes {
		fmt.Fprintf(a.out, "#%d %s\n", t.ID, t.Title)
	}

	rawTheme, err := getSimpleText(a.reader, "Thème (id)", a.out)
	if err != nil {
		return err
	}
	title, err := getSimpleText(a.reader, "Titre", a.out)
	if err != nil {
		return err
	}
	content, err := getMultiline(a.reader, "Contenu", a.out)
	if err != nil {
		return err
	}

	themeID, perr := strconv.ParseInt(strings.TrimSpace(rawTheme), 10, 64)
	if perr != nil || themeID <= 0 || title == "" || content == "" {
		a.alerts.ShowAlert(notifyError(msgInvalidForm))
		return errInvalidInput
	}

	req := models.CreatePostRequest{Title: title, Content: content, ThemeID: themeID}
	if _, err := a.forum.CreatePost(ctx, req); err != nil {
		return a.fail(ctx, err, msgPostFailed)
	}
	a.succeed(msgPostCreated)
	return a.Open(ctx, router.HomeRoute)
}

func (a *App) profilePage(ctx context.Context, _ *router.Match) error {
	me, err := a.forum.Me(ctx)
	if err != nil {
		return a.fail(ctx, err, msgProfileLoad)
	}
	fmt.Fprintf(a.out, "Profil\n  Nom d'utilisateur: %s\n  Email: %s\n", me.Username, me.Email)

	subs, err := a.forum.Subscriptions(ctx)
	if err != nil {
		return a.fail(ctx, err, msgSubsLoad)
	}
	fmt.Fprintln(a.out, "Abonnements")
	if len(subs) == 0 {
		fmt.Fprintln(a.out, "  Aucun abonnement.")
	}
	for _, s := range subs {
		fmt.Fprintf(a.out, "  #%d %s\n", s.Theme.ID, s.Theme.Title)
	}
	return nil
}

// editProfilePage updates the profile, then ends the session: the token
// still carries the old identity.
func (a *App) editProfilePage(ctx context.Context, _ *router.Match) error {
	me, err := a.forum.Me(ctx)
	if err != nil {
		return a.fail(ctx, err, msgProfileLoad)
	}

	username, err := getSimpleText(a.reader, fmt.Sprintf("Nom d'utilisateur [%s]", me.Username), a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, fmt.Sprintf("Email [%s]", me.Email), a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	req := models.UpdateUserRequest{
		Username: cmp.Or(username, me.Username),
		Email:    cmp.Or(email, me.Email),
		Password: strings.TrimSpace(string(password)),
	}
	if _, err := a.forum.UpdateMe(ctx, req); err != nil {
		return a.fail(ctx, err, msgProfileFailed)
	}

	a.succeed(msgProfileUpdated)
	a.auth.Logout(ctx)
	return nil
}
