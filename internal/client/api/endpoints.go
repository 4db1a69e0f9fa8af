package api

import (
	"fmt"
	"strings"
)

const (
	PathLogin           = "auth/login"
	PathRegister        = "auth/register"
	PathMe              = "users/me"
	PathThemes          = "themes"
	PathSubscriptions   = "subscriptions"
	PathPosts           = "posts"
	PathSubscribedPosts = "posts/subscribed"
	PathComments        = "comments"
)

func ThemePath(id int64) string        { return fmt.Sprintf("themes/%d", id) }
func SubscriptionPath(id int64) string { return fmt.Sprintf("subscriptions/%d", id) }
func PostPath(id int64) string         { return fmt.Sprintf("posts/%d", id) }
func PostsByThemePath(id int64) string { return fmt.Sprintf("posts/theme/%d", id) }
func CommentsByPostPath(id int64) string {
	return fmt.Sprintf("comments/post/%d", id)
}

// Endpoints builds absolute API URLs from a base URL.
type Endpoints struct {
	base string
}

// NewEndpoints trims trailing slashes from baseURL.
func NewEndpoints(baseURL string) Endpoints {
	return Endpoints{base: strings.TrimRight(strings.TrimSpace(baseURL), "/")}
}

func (e Endpoints) BaseURL() string {
	return e.base
}

// URL returns {base}/api/{path}; a leading slash on path is ignored.
func (e Endpoints) URL(path string) string {
	return e.base + "/api/" + strings.TrimLeft(path, "/")
}
