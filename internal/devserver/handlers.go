package devserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/elducche/mddcli/internal/client/models"
	"github.com/gin-gonic/gin"
)

const (
	msgRegistered          = "Inscription réussie"
	msgLoggedIn            = "Connexion réussie"
	msgInvalidCredentials  = "Identifiants invalides"
	msgInvalidRegistration = "Données d'inscription invalides"
	msgEmailTaken          = "Un compte avec cet email existe déjà"
	msgUsernameTaken       = "Ce nom d'utilisateur est déjà pris"
	msgMissingToken        = "Token manquant ou invalide"
	msgInvalidToken        = "Token invalide ou expiré"
	msgBadRequest          = "Requête invalide"
	msgNotFound            = "Ressource introuvable"
	msgInternal            = "Erreur interne du serveur"
)

type registerRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}

func (s *Server) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, msgInvalidRegistration)
		return
	}

	u, err := s.store.CreateUser(req.Username, req.Email, req.Password)
	switch {
	case errors.Is(err, ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"message": msgEmailTaken})
		return
	case errors.Is(err, ErrUsernameTaken):
		c.JSON(http.StatusConflict, gin.H{"message": msgUsernameTaken})
		return
	case err != nil:
		s.internalError(c, err)
		return
	}

	token, err := GenerateToken(u, s.secret, s.tokenTTL)
	if err != nil {
		s.internalError(c, err)
		return
	}

	s.log.Info(c.Request.Context(), "user registered", "user_id", u.ID, "email", u.Email)
	c.JSON(http.StatusCreated, loginResponse{Token: token, Message: msgRegistered})
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, msgBadRequest)
		return
	}

	u, err := s.store.Authenticate(req.Email, req.Password)
	if err != nil {
		c.String(http.StatusUnauthorized, msgInvalidCredentials)
		return
	}

	token, err := GenerateToken(u, s.secret, s.tokenTTL)
	if err != nil {
		s.internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, loginResponse{Token: token, Message: msgLoggedIn})
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "UP"})
}

func (s *Server) me(c *gin.Context) {
	u, err := s.store.User(currentUserID(c))
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, u.model())
}

func (s *Server) updateMe(c *gin.Context) {
	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgBadRequest})
		return
	}

	u, err := s.store.UpdateUser(currentUserID(c), req)
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, u.model())
}

func (s *Server) themes(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.Themes())
}

func (s *Server) theme(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	t, err := s.store.Theme(id)
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (s *Server) subscriptions(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.Subscriptions(currentUserID(c)))
}

func (s *Server) subscribe(c *gin.Context) {
	var req models.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ThemeID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgBadRequest})
		return
	}

	sub, err := s.store.Subscribe(currentUserID(c), req.ThemeID)
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sub)
}

func (s *Server) unsubscribe(c *gin.Context) {
	themeID, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := s.store.Unsubscribe(currentUserID(c), themeID); err != nil {
		s.storeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) posts(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.Posts(nil))
}

func (s *Server) subscribedPosts(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.SubscribedPosts(currentUserID(c)))
}

func (s *Server) postsByTheme(c *gin.Context) {
	themeID, ok := idParam(c, "themeId")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.store.Posts(func(p models.Post) bool { return p.Theme.ID == themeID }))
}

func (s *Server) post(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	p, err := s.store.Post(id)
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) createPost(c *gin.Context) {
	var req models.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Title == "" || req.Content == "" || req.ThemeID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgBadRequest})
		return
	}

	p, err := s.store.CreatePost(currentUserID(c), req)
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (s *Server) comments(c *gin.Context) {
	postID, ok := idParam(c, "postId")
	if !ok {
		return
	}
	out, err := s.store.Comments(postID)
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) addComment(c *gin.Context) {
	var req models.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Content == "" || req.PostID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgBadRequest})
		return
	}

	out, err := s.store.AddComment(currentUserID(c), req)
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgBadRequest})
		return 0, false
	}
	return id, true
}

func (s *Server) storeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": msgNotFound})
	case errors.Is(err, ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"message": msgEmailTaken})
	case errors.Is(err, ErrUsernameTaken):
		c.JSON(http.StatusConflict, gin.H{"message": msgUsernameTaken})
	default:
		s.internalError(c, err)
	}
}

func (s *Server) internalError(c *gin.Context, err error) {
	s.log.Error(c.Request.Context(), "request failed", "path", c.Request.URL.Path, "error", err)
	c.String(http.StatusInternalServerError, msgInternal)
}
