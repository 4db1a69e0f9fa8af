// Package devserver is an in-memory implementation of the MDD REST backend
// used for end-to-end tests and local runs of the CLI.
package devserver

import (
	"net/http"
	"time"

	"github.com/elducche/mddcli/internal/logging"
	"github.com/gin-gonic/gin"
)

type Server struct {
	store    *Store
	secret   []byte
	tokenTTL time.Duration
	log      logging.Logger
	engine   *gin.Engine
}

func New(store *Store, secret []byte, tokenTTL time.Duration, log logging.Logger) *Server {
	s := &Server{store: store, secret: secret, tokenTTL: tokenTTL, log: log}
	s.engine = s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) Store() *Store {
	return s.store
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s.log))

	api := r.Group("/api")
	api.GET("/health", s.health)
	api.POST("/auth/register", s.register)
	api.POST("/auth/login", s.login)

	authed := api.Group("", s.requireAuth())

	authed.GET("/users/me", s.me)
	authed.PUT("/users/me", s.updateMe)

	authed.GET("/themes", s.themes)
	authed.GET("/themes/:id", s.theme)

	authed.GET("/subscriptions", s.subscriptions)
	authed.POST("/subscriptions", s.subscribe)
	authed.DELETE("/subscriptions/:id", s.unsubscribe)

	authed.GET("/posts", s.posts)
	authed.POST("/posts", s.createPost)
	authed.GET("/posts/subscribed", s.subscribedPosts)
	authed.GET("/posts/theme/:themeId", s.postsByTheme)
	authed.GET("/posts/:id", s.post)

	authed.GET("/comments/post/:postId", s.comments)
	authed.POST("/comments", s.addComment)

	return r
}
