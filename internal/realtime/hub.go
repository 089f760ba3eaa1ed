package realtime

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"live-foto-event-back/internal/model"
)

// Hub держит активные websocket-подключения, сгруппированные по
// slug события, и рассылает сообщения внутри комнаты события
type Hub struct {
	clients    map[string]map[*Client]bool // event slug -> клиенты
	broadcast  chan *model.Message
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		broadcast:  make(chan *model.Message, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run — цикл обработки подключений и рассылки
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			room := h.clients[client.EventSlug]
			if room == nil {
				room = make(map[*Client]bool)
				h.clients[client.EventSlug] = room
			}
			// Новичку проигрываем текущий состав комнаты, чтобы его
			// счётчик зрителей стартовал с актуального снимка
			for existing := range room {
				client.enqueue(marshalMessage(&model.Message{
					Type:      model.MsgViewerJoined,
					EventSlug: client.EventSlug,
					ViewerID:  existing.ViewerID,
					Timestamp: time.Now(),
				}))
			}
			room[client] = true
			h.mu.Unlock()

			// Рассылаем мимо очереди: Run не должен писать в канал,
			// который сам же читает — при полном буфере это взаимоблокировка
			h.deliver(&model.Message{
				Type:      model.MsgViewerJoined,
				EventSlug: client.EventSlug,
				ViewerID:  client.ViewerID,
			})

		case client := <-h.unregister:
			h.mu.Lock()
			removed := false
			if room, ok := h.clients[client.EventSlug]; ok {
				if _, ok := room[client]; ok {
					delete(room, client)
					close(client.send)
					removed = true
					if len(room) == 0 {
						delete(h.clients, client.EventSlug)
					}
				}
			}
			h.mu.Unlock()

			if removed {
				h.deliver(&model.Message{
					Type:      model.MsgViewerLeft,
					EventSlug: client.EventSlug,
					ViewerID:  client.ViewerID,
				})
			}

		case msg := <-h.broadcast:
			h.deliver(msg)
		}
	}
}

// deliver рассылает сообщение комнате события сразу, минуя очередь
func (h *Hub) deliver(msg *model.Message) {
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}
	data := marshalMessage(msg)

	h.mu.RLock()
	targets := make([]*Client, 0, len(h.clients[msg.EventSlug]))
	for client := range h.clients[msg.EventSlug] {
		targets = append(targets, client)
	}
	h.mu.RUnlock()

	for _, client := range targets {
		select {
		case client.send <- data:
		default:
			// Переполненный клиент отстаёт; соединение
			// добьёт ping в WritePump
		}
	}
}

// Broadcast ставит сообщение в очередь рассылки комнате события
func (h *Hub) Broadcast(msg *model.Message) {
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}
	h.broadcast <- msg
}

// CountViewers возвращает число подключённых зрителей события
func (h *Hub) CountViewers(eventSlug string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[eventSlug])
}

func marshalMessage(msg *model.Message) []byte {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("failed to marshal message: %v", err)
		return []byte("{}")
	}
	return data
}
