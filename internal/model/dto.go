package model

import "mime/multipart"

// ErrorMessage представляет сообщение об ошибке
// @Description Структура для сообщений об ошибках API
type ErrorMessage struct {
	Error string `json:"error" example:"Invalid credentials"`
}

// YandexLoginResponse представляет ответ с URL для перенаправления на Яндекс OAuth
type YandexLoginResponse struct {
	URL string `json:"url"`
}

// RefreshRequest содержит refresh токен для обновления access токена
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// RefreshResponse представляет ответ с обновленным access токеном
type RefreshResponse struct {
	AccessToken string `json:"access_token"`
}

// RegisterRequest содержит данные для регистрации нового пользователя
type RegisterRequest struct {
	UserName string `json:"username" example:"user1"`
	Email    string `json:"email" example:"user1@example.com"`
	Password string `json:"password" example:"password123"`
}

// TokenResponse представляет ответ с access и refresh токенами
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// LoginRequest содержит данные для аутентификации пользователя
type LoginRequest struct {
	Email    string `json:"email" example:"user1@example.com"`
	Password string `json:"password" example:"password123"`
}

type ProfileResponse struct {
	ID    string `json:"id" example:"06301788-e325-488f-94b5-1711e211b82a"`
	Email string `json:"email" example:"user1@example.com"`
}

type CreateEventRequest struct {
	Name      string `json:"name" example:"Свадьба Кати и Димы"`
	Date      string `json:"date" example:"2025-07-28T00:00:00Z"`
	MaxImages int    `json:"max_images" example:"200"`
}

type CreateEventResponse struct {
	ID   string `json:"id" example:"06301788-e325-488f-94b5-1711e211b82a"`
	Slug string `json:"slug" example:"e325488f"`
}

type EventInfoResponse struct {
	ID                string `json:"id"`
	UserID            string `json:"user_id"`
	Slug              string `json:"slug"`
	Name              string `json:"name"`
	Date              string `json:"date"`
	CreatedAt         string `json:"created_at"`
	MaxImages         int    `json:"max_images"`
	CoverURL          string `json:"cover_url"`
	CoverThumbnailURL string `json:"cover_thumbnail_url"`
	UserName          string `json:"username"`
	IsPublished       bool   `json:"is_published"`
	CountPhotos       uint   `json:"count_photos"`
}

type EventsListResponse struct {
	Events []EventInfoResponse `json:"events"`
}

type BooleanResponse struct {
	Success bool `json:"success" example:"true"`
}

type UploadFilesRequest struct {
	EventSlug string                  `form:"event_slug"`
	Files     []*multipart.FileHeader `form:"files"`
	Caption   string                  `form:"caption"`
}

type UploadFilesResponse struct {
	Photos       []PhotoRecord `json:"photos"`
	SuccessCount int           `json:"success_count"`
	ErrorCount   int           `json:"error_count"`
}

type EventPhotosResponse struct {
	Photos []PhotoRecord `json:"photos"`
	Sort   string        `json:"sort" example:"uploaded_new"`
}

type UpdateEventCoverRequest struct {
	PhotoID string `json:"photo_id" example:"06301788-e325-488f-94b5-1711e211b82a"`
}

type PresenceResponse struct {
	EventSlug     string `json:"event_slug"`
	ActiveViewers int    `json:"active_viewers"`
}

type PublishEventResponse struct {
	Link string `json:"link" example:"https://foto.live/e/e325488f"`
}
