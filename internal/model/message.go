package model

import "time"

// Типы сообщений realtime-канала события
const (
	MsgImageUploaded = "image_uploaded"
	MsgImageDeleted  = "image_deleted"
	MsgViewerJoined  = "viewer_joined"
	MsgViewerLeft    = "viewer_left"
)

// Message — одно сообщение в канале события.
// Канал используется только как шина уведомлений: порядок доставки
// между зрителями не гарантируется, история при реконнекте не проигрывается.
type Message struct {
	Type      string       `json:"type"`
	EventSlug string       `json:"event_slug,omitempty"`
	Image     *PhotoRecord `json:"image,omitempty"`
	ImageID   string       `json:"image_id,omitempty"`
	ViewerID  string       `json:"viewer_id,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}
