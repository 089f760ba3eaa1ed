package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"sync"

	"github.com/google/uuid"

	"live-foto-event-back/internal/model"
	"live-foto-event-back/internal/realtime"
	"live-foto-event-back/internal/storage/postgres"
	"live-foto-event-back/internal/storage/s3"
	"live-foto-event-back/internal/uploader"
)

type UploadService struct {
	Storage *postgres.Storage
	S3      *s3.S3Storage
	Hub     *realtime.Hub
}

func NewUploadService(s *postgres.Storage, s3 *s3.S3Storage, hub *realtime.Hub) *UploadService {
	return &UploadService{
		Storage: s,
		S3:      s3,
		Hub:     hub,
	}
}

// UploadFiles прогоняет пачку через пайплайн: валидация, сжатие,
// строго последовательная загрузка. Ошибка одного файла пачку не
// останавливает — она попадает в error_count. Каждая успешная запись
// рассылается в комнату события как image_uploaded: загрузивший
// получит собственное эхо и погасит его идемпотентным Add.
func (s *UploadService) UploadFiles(
	ctx context.Context, uploaderID uuid.UUID, event *model.Event, remaining int,
	fileHeaders []*multipart.FileHeader, caption string) (*model.UploadFilesResponse, error) {

	files, err := readFiles(fileHeaders)
	if err != nil {
		return nil, err
	}

	objects := &thumbnailingStore{s3: s.S3, thumbs: make(map[string]string)}

	pipe := &uploader.Pipeline{
		EventSlug: event.Slug,
		MaxImages: remaining,
		Dest:      s.S3,
		Objects:   objects,
		OnUpload: func(ctx context.Context, reference, filename, caption string) (model.PhotoRecord, error) {
			rec, err := s.Storage.SavePhoto(ctx, &model.PhotoRecord{
				EventID:      event.ID,
				UploaderID:   uploaderID,
				ImageURL:     reference,
				ThumbnailURL: objects.thumbnail(reference),
				Caption:      caption,
				FileName:     filename,
			})
			if err != nil {
				return model.PhotoRecord{}, fmt.Errorf("save photo: %w", err)
			}
			s.Hub.Broadcast(&model.Message{
				Type:      model.MsgImageUploaded,
				EventSlug: event.Slug,
				Image:     rec,
			})
			return *rec, nil
		},
	}

	accepted, errs := pipe.AddFiles(files...)
	for _, e := range errs {
		log.Printf("upload validation: %v", e)
	}
	if accepted == 0 && len(errs) > 0 {
		return nil, errs[0]
	}
	for i := 0; i < accepted; i++ {
		pipe.SetCaption(i, caption)
	}

	res := pipe.Run(ctx)
	res.ErrorCount += len(errs)

	return &model.UploadFilesResponse{
		Photos:       res.Photos,
		SuccessCount: res.SuccessCount,
		ErrorCount:   res.ErrorCount,
	}, nil
}

// DeletePhoto удаляет подтверждённое фото и оповещает комнату события
func (s *UploadService) DeletePhoto(ctx context.Context, uploaderID uuid.UUID, photoID uuid.UUID) error {
	photo, err := s.Storage.GetPhoto(ctx, photoID)
	if err != nil {
		return err
	}
	if err := s.Storage.DeletePhoto(ctx, uploaderID, photoID); err != nil {
		return err
	}

	// Блобы чистим по возможности; запись в БД уже удалена
	if err := s.S3.DeleteFile(ctx, s.S3.KeyFromURL(photo.ImageURL)); err != nil {
		log.Printf("failed to delete original: %v", err)
	}
	if photo.ThumbnailURL != "" {
		if err := s.S3.DeleteFile(ctx, s.S3.KeyFromURL(photo.ThumbnailURL)); err != nil {
			log.Printf("failed to delete thumbnail: %v", err)
		}
	}

	event, err := s.Storage.GetEventByID(ctx, photo.EventID)
	if err == nil {
		s.Hub.Broadcast(&model.Message{
			Type:      model.MsgImageDeleted,
			EventSlug: event.Slug,
			ImageID:   photo.ID,
		})
	}
	return nil
}

// readFiles переливает multipart-файлы в память для пайплайна
func readFiles(fileHeaders []*multipart.FileHeader) ([]uploader.SourceFile, error) {
	var files []uploader.SourceFile
	for _, fh := range fileHeaders {
		src, err := fh.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			return nil, err
		}
		files = append(files, uploader.SourceFile{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
	}
	return files, nil
}

// thumbnailingStore оборачивает S3: вместе с оригиналом кладёт
// миниатюру. Ошибка миниатюры загрузку не валит.
type thumbnailingStore struct {
	s3     *s3.S3Storage
	mu     sync.Mutex
	thumbs map[string]string // reference -> thumbnail URL
}

func (t *thumbnailingStore) Put(ctx context.Context, dest uploader.UploadDestination, data []byte, contentType string) (
	string, error) {

	ref, err := t.s3.Put(ctx, dest, data, contentType)
	if err != nil {
		return "", err
	}
	thumbURL, err := t.s3.UploadThumbnail(ctx, dest, data)
	if err != nil {
		log.Printf("failed to upload thumbnail: %v", err)
		return ref, nil
	}
	t.mu.Lock()
	t.thumbs[ref] = thumbURL
	t.mu.Unlock()
	return ref, nil
}

func (t *thumbnailingStore) thumbnail(reference string) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.thumbs[reference]
}
