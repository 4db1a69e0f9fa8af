// Package forum wraps the backend's resource endpoints: themes,
// subscriptions, posts, comments and the profile.
package forum

import (
	"context"
	"fmt"

	"github.com/elducche/mddcli/internal/client/api"
	"github.com/elducche/mddcli/internal/client/models"
)

// Backend is the JSON transport the service uses.
type Backend interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, in, out any) error
	Put(ctx context.Context, path string, in, out any) error
	Delete(ctx context.Context, path string) error
}

type Service struct {
	backend Backend
}

func NewService(backend Backend) *Service {
	return &Service{backend: backend}
}

func (s *Service) Themes(ctx context.Context) ([]models.Theme, error) {
	var out []models.Theme
	if err := s.backend.Get(ctx, api.PathThemes, &out); err != nil {
		return nil, fmt.Errorf("list themes: %w", err)
	}
	return out, nil
}

func (s *Service) Theme(ctx context.Context, id int64) (*models.Theme, error) {
	var out models.Theme
	if err := s.backend.Get(ctx, api.ThemePath(id), &out); err != nil {
		return nil, fmt.Errorf("get theme %d: %w", id, err)
	}
	return &out, nil
}

func (s *Service) Subscriptions(ctx context.Context) ([]models.Subscription, error) {
	var out []models.Subscription
	if err := s.backend.Get(ctx, api.PathSubscriptions, &out); err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	return out, nil
}

func (s *Service) Subscribe(ctx context.Context, themeID int64) (*models.Subscription, error) {
	var out models.Subscription
	if err := s.backend.Post(ctx, api.PathSubscriptions, models.SubscribeRequest{ThemeID: themeID}, &out); err != nil {
		return nil, fmt.Errorf("subscribe to theme %d: %w", themeID, err)
	}
	return &out, nil
}

// Unsubscribe removes a subscription. The backend identifies it by theme id.
func (s *Service) Unsubscribe(ctx context.Context, subscriptionID int64) error {
	if err := s.backend.Delete(ctx, api.SubscriptionPath(subscriptionID)); err != nil {
		return fmt.Errorf("unsubscribe %d: %w", subscriptionID, err)
	}
	return nil
}

// IsSubscribed reports whether subs contains the theme.
func IsSubscribed(themeID int64, subs []models.Subscription) bool {
	return FindSubscription(themeID, subs) != nil
}

// FindSubscription returns the subscription for the theme, or nil.
func FindSubscription(themeID int64, subs []models.Subscription) *models.Subscription {
	for i := range subs {
		if subs[i].Theme.ID == themeID {
			return &subs[i]
		}
	}
	return nil
}

func (s *Service) Posts(ctx context.Context) ([]models.Post, error) {
	var out []models.Post
	if err := s.backend.Get(ctx, api.PathPosts, &out); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return out, nil
}

// SubscribedPosts is the feed of posts from the user's subscribed themes.
func (s *Service) SubscribedPosts(ctx context.Context) ([]models.Post, error) {
	var out []models.Post
	if err := s.backend.Get(ctx, api.PathSubscribedPosts, &out); err != nil {
		return nil, fmt.Errorf("list subscribed posts: %w", err)
	}
	return out, nil
}

func (s *Service) PostsByTheme(ctx context.Context, themeID int64) ([]models.Post, error) {
	var out []models.Post
	if err := s.backend.Get(ctx, api.PostsByThemePath(themeID), &out); err != nil {
		return nil, fmt.Errorf("list posts of theme %d: %w", themeID, err)
	}
	return out, nil
}

func (s *Service) Post(ctx context.Context, id int64) (*models.Post, error) {
	var out models.Post
	if err := s.backend.Get(ctx, api.PostPath(id), &out); err != nil {
		return nil, fmt.Errorf("get post %d: %w", id, err)
	}
	return &out, nil
}

// CreatePost publishes an article. The author is taken from the token by the backend.
func (s *Service) CreatePost(ctx context.Context, req models.CreatePostRequest) (*models.Post, error) {
	var out models.Post
	if err := s.backend.Post(ctx, api.PathPosts, req, &out); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return &out, nil
}

func (s *Service) Comments(ctx context.Context, postID int64) ([]models.Comment, error) {
	var out []models.Comment
	if err := s.backend.Get(ctx, api.CommentsByPostPath(postID), &out); err != nil {
		return nil, fmt.Errorf("list comments of post %d: %w", postID, err)
	}
	return out, nil
}

func (s *Service) AddComment(ctx context.Context, req models.CreateCommentRequest) (*models.Comment, error) {
	var out models.Comment
	if err := s.backend.Post(ctx, api.PathComments, req, &out); err != nil {
		return nil, fmt.Errorf("add comment: %w", err)
	}
	return &out, nil
}

func (s *Service) Me(ctx context.Context) (*models.User, error) {
	var out models.User
	if err := s.backend.Get(ctx, api.PathMe, &out); err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &out, nil
}

func (s *Service) UpdateMe(ctx context.Context, req models.UpdateUserRequest) (*models.User, error) {
	var out models.User
	if err := s.backend.Put(ctx, api.PathMe, req, &out); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return &out, nil
}
