// Package models defines the forum resources exchanged with the backend.
package models

import "github.com/elducche/mddcli/internal/timex"

// User is the account returned by the profile endpoint.
type User struct {
	ID        int64      `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	CreatedAt timex.Time `json:"createdAt"`
	UpdatedAt timex.Time `json:"updatedAt"`
}

// UpdateUserRequest changes the profile; empty fields are left as they are.
type UpdateUserRequest struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
}

// Theme is a subject users subscribe to.
type Theme struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	CreatedAt   timex.Time `json:"createdAt"`
	UpdatedAt   timex.Time `json:"updatedAt"`
}

// Author is the embedded user summary on posts and comments.
type Author struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// ThemeRef is the embedded theme summary on posts and subscriptions.
type ThemeRef struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Post is an article published under a theme.
type Post struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Author    Author     `json:"author"`
	Theme     ThemeRef   `json:"theme"`
	CreatedAt timex.Time `json:"createdAt"`
	UpdatedAt timex.Time `json:"updatedAt"`
}

type CreatePostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	ThemeID int64  `json:"themeId"`
}

type PostRef struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

type Comment struct {
	ID        int64      `json:"id"`
	Content   string     `json:"content"`
	Author    Author     `json:"author"`
	Post      PostRef    `json:"post"`
	CreatedAt timex.Time `json:"createdAt"`
	UpdatedAt timex.Time `json:"updatedAt"`
}

type CreateCommentRequest struct {
	PostID  int64  `json:"postId"`
	Content string `json:"content"`
}

// Subscription links the current user to a theme. The backend keys it by
// theme: unsubscribing uses Theme.ID.
type Subscription struct {
	UserID       int64      `json:"userId"`
	ThemeID      int64      `json:"themeId"`
	SubscribedAt timex.Time `json:"subscribedAt"`
	User         Author     `json:"user"`
	Theme        ThemeRef   `json:"theme"`
}

type SubscribeRequest struct {
	ThemeID int64 `json:"themeId"`
}
