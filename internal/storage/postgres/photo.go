package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"live-foto-event-back/internal/model"
	"live-foto-event-back/internal/shared"
)

func (s *Storage) SavePhoto(ctx context.Context, photo *model.PhotoRecord) (*model.PhotoRecord, error) {
	row := s.DB.QueryRow(ctx,
		`INSERT INTO photos
		 (event_id, uploader_id, image_url, thumbnail_url, caption, file_name)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		photo.EventID, photo.UploaderID, photo.ImageURL, photo.ThumbnailURL,
		photo.Caption, photo.FileName,
	)
	var id uuid.UUID
	if err := row.Scan(&id, &photo.CreatedAt); err != nil {
		return nil, err
	}
	photo.ID = id.String()
	return photo, nil
}

func (s *Storage) GetPhoto(ctx context.Context, photoID uuid.UUID) (*model.PhotoRecord, error) {
	var p model.PhotoRecord
	var id uuid.UUID
	err := s.DB.QueryRow(ctx,
		`SELECT id, event_id, uploader_id, image_url, thumbnail_url, caption, file_name, created_at
		 FROM photos WHERE id = $1`, photoID,
	).Scan(&id, &p.EventID, &p.UploaderID, &p.ImageURL, &p.ThumbnailURL,
		&p.Caption, &p.FileName, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	p.ID = id.String()
	return &p, nil
}

func (s *Storage) DeletePhoto(ctx context.Context, uploaderID uuid.UUID, photoID uuid.UUID) error {
	res, err := s.DB.Exec(ctx,
		"DELETE FROM photos WHERE uploader_id = $1 AND id = $2",
		uploaderID, photoID,
	)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// CountUploaderPhotos считает фотографии пользователя в событии —
// из этого числа выводится остаток квоты max_images
func (s *Storage) CountUploaderPhotos(ctx context.Context, eventID uuid.UUID, uploaderID uuid.UUID) (int, error) {
	var count int
	err := s.DB.QueryRow(ctx,
		"SELECT COUNT(*) FROM photos WHERE event_id = $1 AND uploader_id = $2",
		eventID, uploaderID,
	).Scan(&count)
	return count, err
}

func (s *Storage) GetEventPhotos(ctx context.Context, eventID uuid.UUID, sort shared.SortOption) (
	[]model.PhotoRecord, error) {

	orderBy := "created_at DESC"
	switch sort {
	case shared.SortUploadedOld:
		orderBy = "created_at ASC"
	case shared.SortNameAZ:
		orderBy = "file_name ASC"
	case shared.SortNameZA:
		orderBy = "file_name DESC"
	case shared.SortRandom:
		orderBy = "RANDOM()"
	}

	rows, err := s.DB.Query(ctx, `
		SELECT id, event_id, uploader_id, image_url, thumbnail_url, caption, file_name, created_at
		FROM photos
		WHERE event_id = $1
		ORDER BY `+orderBy,
		eventID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var photos []model.PhotoRecord
	for rows.Next() {
		var p model.PhotoRecord
		var id uuid.UUID
		err := rows.Scan(&id, &p.EventID, &p.UploaderID, &p.ImageURL, &p.ThumbnailURL,
			&p.Caption, &p.FileName, &p.CreatedAt)
		if err != nil {
			return nil, err
		}
		p.ID = id.String()
		photos = append(photos, p)
	}
	return photos, rows.Err()
}
