package service

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"live-foto-event-back/internal/model"
	"live-foto-event-back/internal/shared"
	"live-foto-event-back/internal/storage/postgres"
)

type EventService struct {
	Storage *postgres.Storage
}

func NewEventService(s *postgres.Storage) *EventService {
	return &EventService{Storage: s}
}

func (s *EventService) CreateEvent(ctx context.Context, userID uuid.UUID, name string, date time.Time, maxImages int) (
	*model.Event, error) {
	defaultCoverURL := os.Getenv("DEFAULT_EVENT_COVER_URL")
	defaultCoverThumbnailURL := os.Getenv("DEFAULT_EVENT_COVER_THUMB_URL")

	event := model.Event{
		UserID:            userID,
		Slug:              newSlug(),
		Name:              name,
		Date:              date,
		MaxImages:         maxImages,
		CoverURL:          defaultCoverURL,
		CoverThumbnailURL: defaultCoverThumbnailURL,
	}
	return s.Storage.CreateEvent(ctx, event)
}

func (s *EventService) GetEventBySlug(ctx context.Context, slug string) (*model.Event, error) {
	return s.Storage.GetEventBySlug(ctx, slug)
}

func (s *EventService) GetEvents(ctx context.Context, userID uuid.UUID, searchParam string) (
	[]model.Event, error) {
	return s.Storage.GetEvents(ctx, userID, searchParam)
}

func (s *EventService) DeleteEvent(ctx context.Context, userID uuid.UUID, eventID uuid.UUID) error {
	return s.Storage.DeleteEvent(ctx, userID, eventID)
}

func (s *EventService) PublishEvent(ctx context.Context, userID uuid.UUID, eventID uuid.UUID) (string, error) {
	if err := s.Storage.PublishEvent(ctx, userID, eventID); err != nil {
		return "", err
	}
	event, err := s.Storage.GetEventByID(ctx, eventID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/e/%s", os.Getenv("PUBLIC_BASE_URL"), event.Slug), nil
}

func (s *EventService) GetEventPhotos(ctx context.Context, eventID uuid.UUID, sortParam string) (
	[]model.PhotoRecord, string, error) {
	// Выбираем параметр сортировки
	sort := shared.NormalizeSort(sortParam)
	// Получаем содержимое события из БД
	photos, err := s.Storage.GetEventPhotos(ctx, eventID, sort)
	if err != nil {
		log.Printf("Storage ERROR: %v\n", err)
		return []model.PhotoRecord{}, "", err
	}
	return photos, string(sort), err
}

// RemainingQuota считает остаток квоты загрузки для пользователя.
// Ядро пайплайна квоту само не пересчитывает — значение отдаётся
// ему при старте пачки.
func (s *EventService) RemainingQuota(ctx context.Context, event *model.Event, uploaderID uuid.UUID) (int, error) {
	used, err := s.Storage.CountUploaderPhotos(ctx, event.ID, uploaderID)
	if err != nil {
		return 0, err
	}
	remaining := event.MaxImages - used
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

func (s *EventService) UpdateEventCover(
	ctx context.Context, userID uuid.UUID, eventID uuid.UUID, photoID uuid.UUID) error {
	return s.Storage.UpdateEventCover(ctx, userID, eventID, photoID)
}

// newSlug — короткий публичный идентификатор события
func newSlug() string {
	return strings.Split(uuid.New().String(), "-")[0]
}
