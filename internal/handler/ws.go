package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"live-foto-event-back/internal/model"
	"live-foto-event-back/internal/realtime"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// CORS для websocket проверяется на уровне reverse proxy
	CheckOrigin: func(r *http.Request) bool { return true },
}

// JoinEvent подключает зрителя к realtime-каналу события.
// Хаб сам анонсирует подключение комнате и проигрывает новичку
// текущий состав зрителей.
func (h *Handler) JoinEvent(c *gin.Context) {
	slug := c.Param("slug")
	if _, err := h.events.GetEventBySlug(c.Request.Context(), slug); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	viewerID := c.Query("viewer_id")
	if viewerID == "" {
		viewerID = uuid.New().String()
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade: %v", err)
		return
	}

	client := realtime.NewClient(h.hub, conn, slug, viewerID)
	client.Register()
	go client.WritePump()
	go client.ReadPump()
}

// GetPresence возвращает текущее число зрителей события
func (h *Handler) GetPresence(c *gin.Context) {
	slug := c.Param("slug")
	c.JSON(http.StatusOK, model.PresenceResponse{
		EventSlug:     slug,
		ActiveViewers: h.hub.CountViewers(slug),
	})
}
