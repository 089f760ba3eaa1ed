package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/gorilla/websocket"

	"live-foto-event-back/internal/model"
)

// Subscriber — клиентская сторона канала: подключается к websocket
// комнаты события и отдаёт входящие сообщения в канал, который
// скармливается Reconciler.Run.
type Subscriber struct {
	conn     *websocket.Conn
	messages chan model.Message
}

// Subscribe подключается к каналу события по ws-адресу
func Subscribe(ctx context.Context, url string) (*Subscriber, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial event channel: %w", err)
	}
	return &Subscriber{
		conn:     conn,
		messages: make(chan model.Message, 64),
	}, nil
}

// Messages возвращает канал входящих сообщений.
// Закрывается при обрыве соединения.
func (s *Subscriber) Messages() <-chan model.Message {
	return s.messages
}

// Run читает кадры из соединения до обрыва. Обрыв — это просто окно
// устаревания: ошибка не отдаётся пользователю, история при
// переподключении не восстанавливается.
func (s *Subscriber) Run(ctx context.Context) {
	defer close(s.messages)
	defer s.conn.Close()

	go func() {
		<-ctx.Done()
		s.conn.Close()
	}()

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if ctx.Err() == nil {
				log.Printf("event channel closed: %v", err)
			}
			return
		}
		var msg model.Message
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("invalid channel message: %v", err)
			continue
		}
		select {
		case s.messages <- msg:
		case <-ctx.Done():
			return
		}
	}
}
