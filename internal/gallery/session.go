package gallery

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"live-foto-event-back/internal/model"
)

// Persistence — бэкенд, подтверждающий записи о фотографиях
type Persistence interface {
	CreatePhotoRecord(ctx context.Context, eventSlug, reference, caption string) (model.PhotoRecord, error)
	DeletePhotoRecord(ctx context.Context, id string) error
}

// Session связывает стор активного события с бэкендом.
// Живёт одну сессию просмотра: создаётся при входе на страницу
// события, сносится при выходе.
type Session struct {
	Store      *Store
	Backend    Persistence
	EventSlug  string
	EventID    uuid.UUID
	UploaderID uuid.UUID
}

func NewSession(store *Store, backend Persistence, eventSlug string, eventID, uploaderID uuid.UUID) *Session {
	return &Session{
		Store:      store,
		Backend:    backend,
		EventSlug:  eventSlug,
		EventID:    eventID,
		UploaderID: uploaderID,
	}
}

// AddPhoto оптимистично вставляет фото с временным id и подтверждает
// его бэкендом. Подтверждённая запись атомарно замещает временную.
// При отказе бэкенда временная запись откатывается; блоб в объектном
// хранилище при этом может остаться — осознанный компромисс в пользу
// отсутствия фантомных записей в галерее.
func (s *Session) AddPhoto(ctx context.Context, reference, caption string) (model.PhotoRecord, error) {
	temp := model.PhotoRecord{
		ID:         model.NewTempID(),
		EventID:    s.EventID,
		UploaderID: s.UploaderID,
		ImageURL:   reference,
		Caption:    caption,
		CreatedAt:  time.Now(),
	}
	s.Store.Add(temp)

	rec, err := s.Backend.CreatePhotoRecord(ctx, s.EventSlug, reference, caption)
	if err != nil {
		s.Store.Remove(temp.ID)
		return model.PhotoRecord{}, fmt.Errorf("create photo record: %w", err)
	}

	s.Store.Replace(temp.ID, rec)
	return rec, nil
}

// DeletePhoto оптимистично убирает фото и подтверждает удаление
// бэкендом. При отказе запись возвращается на место, ошибка уходит
// наверх для показа пользователю.
func (s *Session) DeletePhoto(ctx context.Context, id string) error {
	rec, ok := s.Store.Get(id)
	if !ok {
		return nil
	}
	s.Store.Remove(id)

	if err := s.Backend.DeletePhotoRecord(ctx, id); err != nil {
		s.Store.Restore(rec)
		return fmt.Errorf("delete photo record: %w", err)
	}
	return nil
}
