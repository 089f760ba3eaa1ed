package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"live-foto-event-back/internal/model"
	"live-foto-event-back/internal/realtime"
	"live-foto-event-back/internal/service"
)

type Handler struct {
	users   *service.UserService
	events  *service.EventService
	uploads *service.UploadService
	oauth   *service.YandexOAuthService
	hub     *realtime.Hub
}

func NewHandler(
	users *service.UserService,
	events *service.EventService,
	uploads *service.UploadService,
	oauth *service.YandexOAuthService,
	hub *realtime.Hub,
) *Handler {
	return &Handler{
		users:   users,
		events:  events,
		uploads: uploads,
		oauth:   oauth,
		hub:     hub,
	}
}

func (h *Handler) Register(c *gin.Context) {
	var input model.RegisterRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	access, refresh, err := h.users.Register(c.Request.Context(), input.UserName, input.Email, input.Password)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "User already exists"})
		return
	}
	c.JSON(http.StatusCreated, model.TokenResponse{AccessToken: access, RefreshToken: refresh})
}

func (h *Handler) Login(c *gin.Context) {
	var input model.LoginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	access, refresh, err := h.users.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	c.JSON(http.StatusOK, model.TokenResponse{AccessToken: access, RefreshToken: refresh})
}

func (h *Handler) Refresh(c *gin.Context) {
	var input model.RefreshRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	access, err := h.users.Refresh(c.Request.Context(), input.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token"})
		return
	}
	c.JSON(http.StatusOK, model.RefreshResponse{AccessToken: access})
}

func (h *Handler) GetProfile(c *gin.Context) {
	userID := currentUserID(c)
	user, err := h.users.GetProfile(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, model.ProfileResponse{ID: user.ID.String(), Email: user.Email})
}

func (h *Handler) YandexLogin(c *gin.Context) {
	state := uuid.New().String()
	c.JSON(http.StatusOK, model.YandexLoginResponse{URL: h.oauth.GetAuthURL(state)})
}

func (h *Handler) YandexCallback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing code"})
		return
	}
	token, err := h.oauth.ExchangeCodeForToken(c.Request.Context(), code)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid code"})
		return
	}
	info, err := h.oauth.GetUserInfo(c.Request.Context(), token)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to get user info"})
		return
	}
	_, access, refresh, err := h.oauth.AuthenticateOrCreateUser(c.Request.Context(), info)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to authenticate"})
		return
	}
	c.JSON(http.StatusOK, model.TokenResponse{AccessToken: access, RefreshToken: refresh})
}

func (h *Handler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing token"})
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")
		userID, err := service.ParseToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}
		c.Set("user_id", userID)
		c.Next()
	}
}

func currentUserID(c *gin.Context) uuid.UUID {
	if v, ok := c.Get("user_id"); ok {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}
