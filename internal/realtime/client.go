package realtime

import (
	"log"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// Client — одно websocket-подключение зрителя к комнате события.
// Канал односторонний: сервер рассылает уведомления, клиент только
// слушает; мутации идут через обычное HTTP API.
type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	EventSlug string
	ViewerID  string
}

func NewClient(hub *Hub, conn *websocket.Conn, eventSlug, viewerID string) *Client {
	return &Client{
		hub:       hub,
		conn:      conn,
		send:      make(chan []byte, 64),
		EventSlug: eventSlug,
		ViewerID:  viewerID,
	}
}

// Register ставит клиента в комнату события
func (c *Client) Register() {
	c.hub.register <- c
}

func (c *Client) enqueue(data []byte) {
	select {
	case c.send <- data:
	default:
	}
}

// ReadPump держит соединение: читает до ошибки или закрытия.
// Входящие кадры отбрасываются — канал не принимает мутации.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("websocket error: %v", err)
			}
			break
		}
	}
}

// WritePump переливает сообщения из очереди в соединение и пингует
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
