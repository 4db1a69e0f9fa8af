package devserver

import (
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/elducche/mddcli/internal/client/models"
	"github.com/elducche/mddcli/internal/timex"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("not found")
)

// User is an account held by the development backend.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash []byte
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u User) model() models.User {
	return models.User{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: timex.Time{Time: u.CreatedAt},
		UpdatedAt: timex.Time{Time: u.UpdatedAt},
	}
}

func (u User) author() models.Author {
	return models.Author{ID: u.ID, Username: u.Username, Email: u.Email}
}

// DefaultThemes seeds a fresh store.
var DefaultThemes = []models.ThemeRef{
	{Title: "Java", Description: "Langage et écosystème Java"},
	{Title: "Angular", Description: "Framework front-end Angular"},
	{Title: "Go", Description: "Le langage Go et son outillage"},
	{Title: "DevOps", Description: "Intégration et déploiement continus"},
}

// Store is the in-memory state of the development backend.
type Store struct {
	mu sync.RWMutex

	users    map[int64]*User
	byEmail  map[string]int64
	themes   []models.Theme
	subs     map[int64]map[int64]time.Time
	posts    []models.Post
	comments []models.Comment

	nextUserID    int64
	nextPostID    int64
	nextCommentID int64

	bcryptCost int
	now        func() time.Time
}

func NewStore(themes []models.ThemeRef) *Store {
	s := &Store{
		users:      make(map[int64]*User),
		byEmail:    make(map[string]int64),
		subs:       make(map[int64]map[int64]time.Time),
		bcryptCost: bcrypt.DefaultCost,
		now:        func() time.Time { return time.Now().UTC() },
	}

	created := timex.Time{Time: s.now()}
	for i, t := range themes {
		s.themes = append(s.themes, models.Theme{
			ID:          int64(i + 1),
			Title:       t.Title,
			Description: t.Description,
			CreatedAt:   created,
			UpdatedAt:   created,
		})
	}
	return s
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Store) CreateUser(username, email, password string) (User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := normalizeEmail(email)
	if _, ok := s.byEmail[key]; ok {
		return User{}, ErrEmailTaken
	}
	for _, u := range s.users {
		if strings.EqualFold(u.Username, username) {
			return User{}, ErrUsernameTaken
		}
	}

	s.nextUserID++
	now := s.now()
	u := &User{
		ID:           s.nextUserID,
		Username:     username,
		Email:        strings.TrimSpace(email),
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.users[u.ID] = u
	s.byEmail[key] = u.ID
	return *u, nil
}

func (s *Store) Authenticate(email, password string) (User, error) {
	s.mu.RLock()
	id, ok := s.byEmail[normalizeEmail(email)]
	var u User
	if ok {
		u = *s.users[id]
	}
	s.mu.RUnlock()

	if !ok {
		return User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

func (s *Store) User(id int64) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return *u, nil
}

// UpdateUser applies the non-empty fields of req.
func (s *Store) UpdateUser(id int64, req models.UpdateUserRequest) (User, error) {
	var hash []byte
	if req.Password != "" {
		var err error
		if hash, err = bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost); err != nil {
			return User{}, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return User{}, ErrNotFound
	}

	if req.Email != "" {
		key := normalizeEmail(req.Email)
		if other, taken := s.byEmail[key]; taken && other != id {
			return User{}, ErrEmailTaken
		}
		delete(s.byEmail, normalizeEmail(u.Email))
		s.byEmail[key] = id
		u.Email = strings.TrimSpace(req.Email)
	}
	if req.Username != "" {
		for _, other := range s.users {
			if other.ID != id && strings.EqualFold(other.Username, req.Username) {
				return User{}, ErrUsernameTaken
			}
		}
		u.Username = req.Username
	}
	if hash != nil {
		u.PasswordHash = hash
	}
	u.UpdatedAt = s.now()
	return *u, nil
}

func (s *Store) Themes() []models.Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.themes)
}

func (s *Store) theme(id int64) (models.Theme, bool) {
	for _, t := range s.themes {
		if t.ID == id {
			return t, true
		}
	}
	return models.Theme{}, false
}

func (s *Store) Theme(id int64) (models.Theme, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.theme(id)
	if !ok {
		return models.Theme{}, ErrNotFound
	}
	return t, nil
}

func themeRef(t models.Theme) models.ThemeRef {
	return models.ThemeRef{ID: t.ID, Title: t.Title, Description: t.Description}
}

// Subscribe is idempotent: subscribing twice keeps the first date.
func (s *Store) Subscribe(userID, themeID int64) (models.Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.theme(themeID)
	if !ok {
		return models.Subscription{}, ErrNotFound
	}
	u, ok := s.users[userID]
	if !ok {
		return models.Subscription{}, ErrNotFound
	}

	if s.subs[userID] == nil {
		s.subs[userID] = make(map[int64]time.Time)
	}
	at, exists := s.subs[userID][themeID]
	if !exists {
		at = s.now()
		s.subs[userID][themeID] = at
	}

	return models.Subscription{
		UserID:       userID,
		ThemeID:      themeID,
		SubscribedAt: timex.Time{Time: at},
		User:         u.author(),
		Theme:        themeRef(t),
	}, nil
}

func (s *Store) Unsubscribe(userID, themeID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.subs[userID][themeID]; !ok {
		return ErrNotFound
	}
	delete(s.subs[userID], themeID)
	return nil
}

// Subscriptions are ordered by theme id.
func (s *Store) Subscriptions(userID int64) []models.Subscription {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[userID]
	if !ok {
		return []models.Subscription{}
	}

	out := []models.Subscription{}
	for _, t := range s.themes {
		at, ok := s.subs[userID][t.ID]
		if !ok {
			continue
		}
		out = append(out, models.Subscription{
			UserID:       userID,
			ThemeID:      t.ID,
			SubscribedAt: timex.Time{Time: at},
			User:         u.author(),
			Theme:        themeRef(t),
		})
	}
	return out
}

func (s *Store) CreatePost(authorID int64, req models.CreatePostRequest) (models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.theme(req.ThemeID)
	if !ok {
		return models.Post{}, ErrNotFound
	}
	u, ok := s.users[authorID]
	if !ok {
		return models.Post{}, ErrNotFound
	}

	s.nextPostID++
	now := timex.Time{Time: s.now()}
	p := models.Post{
		ID:        s.nextPostID,
		Title:     req.Title,
		Content:   req.Content,
		Author:    u.author(),
		Theme:     themeRef(t),
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.posts = append(s.posts, p)
	return p, nil
}

// Posts returns matching posts, newest first.
func (s *Store) Posts(match func(models.Post) bool) []models.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Post{}
	for i := len(s.posts) - 1; i >= 0; i-- {
		if match == nil || match(s.posts[i]) {
			out = append(out, s.posts[i])
		}
	}
	return out
}

func (s *Store) SubscribedPosts(userID int64) []models.Post {
	s.mu.RLock()
	themes := make(map[int64]bool, len(s.subs[userID]))
	for id := range s.subs[userID] {
		themes[id] = true
	}
	s.mu.RUnlock()

	return s.Posts(func(p models.Post) bool { return themes[p.Theme.ID] })
}

func (s *Store) Post(id int64) (models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.posts {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Post{}, ErrNotFound
}

func (s *Store) AddComment(authorID int64, req models.CreateCommentRequest) (models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[authorID]
	if !ok {
		return models.Comment{}, ErrNotFound
	}
	idx := slices.IndexFunc(s.posts, func(p models.Post) bool { return p.ID == req.PostID })
	if idx < 0 {
		return models.Comment{}, ErrNotFound
	}
	p := s.posts[idx]

	s.nextCommentID++
	now := timex.Time{Time: s.now()}
	c := models.Comment{
		ID:        s.nextCommentID,
		Content:   req.Content,
		Author:    u.author(),
		Post:      models.PostRef{ID: p.ID, Title: p.Title},
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.comments = append(s.comments, c)
	return c, nil
}

// Comments of a post, oldest first.
func (s *Store) Comments(postID int64) ([]models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !slices.ContainsFunc(s.posts, func(p models.Post) bool { return p.ID == postID }) {
		return nil, ErrNotFound
	}

	out := []models.Comment{}
	for _, c := range s.comments {
		if c.Post.ID == postID {
			out = append(out, c)
		}
	}
	return out, nil
}
