package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Префикс временного id, который клиент присваивает фотографии
// до подтверждения бэкендом
const TempIDPrefix = "temp-"

// PhotoRecord — одна загруженная фотография, привязанная к событию.
// До подтверждения бэкендом запись живёт с временным id,
// после подтверждения временная запись заменяется постоянной.
type PhotoRecord struct {
	ID           string    `json:"id"`
	EventID      uuid.UUID `json:"event_id"`
	UploaderID   uuid.UUID `json:"uploader_id"`
	ImageURL     string    `json:"image_url"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	Caption      string    `json:"caption,omitempty"`
	FileName     string    `json:"file_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewTempID генерирует временный клиентский id
func NewTempID() string {
	return TempIDPrefix + uuid.New().String()
}

// IsTemp сообщает, подтверждена ли запись бэкендом
func (p PhotoRecord) IsTemp() bool {
	return strings.HasPrefix(p.ID, TempIDPrefix)
}
