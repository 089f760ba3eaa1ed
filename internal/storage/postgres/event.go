package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"live-foto-event-back/internal/model"
)

func (s *Storage) CreateEvent(ctx context.Context, ev model.Event) (*model.Event, error) {
	row := s.DB.QueryRow(ctx,
		`INSERT INTO events (user_id, slug, name, date, max_images, cover_url, cover_thumbnail_url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		ev.UserID, ev.Slug, ev.Name, ev.Date, ev.MaxImages, ev.CoverURL, ev.CoverThumbnailURL,
	)
	var id uuid.UUID
	if err := row.Scan(&id); err != nil {
		return nil, err
	}
	ev.ID = id
	return &ev, nil
}

func (s *Storage) GetEventBySlug(ctx context.Context, slug string) (*model.Event, error) {
	row := s.DB.QueryRow(ctx, `
		SELECT e.id, e.user_id, e.slug, e.name, e.date, e.max_images, e.created_at,
			   e.cover_url, e.cover_thumbnail_url, u.username, e.is_published,
		(SELECT COUNT(*) FROM photos WHERE event_id = e.id) AS count_photos
		FROM events e
		JOIN users u ON e.user_id = u.id
		WHERE e.slug = $1
		`, slug,
	)
	var ev model.Event
	if err := row.Scan(
		&ev.ID, &ev.UserID, &ev.Slug, &ev.Name, &ev.Date, &ev.MaxImages, &ev.CreatedAt,
		&ev.CoverURL, &ev.CoverThumbnailURL, &ev.UserName, &ev.IsPublished, &ev.CountPhotos); err != nil {
		return nil, err
	}
	return &ev, nil
}

func (s *Storage) GetEventByID(ctx context.Context, id uuid.UUID) (*model.Event, error) {
	var ev model.Event
	err := s.DB.QueryRow(ctx,
		`SELECT id, user_id, slug, name, date, max_images, created_at,
			cover_url, cover_thumbnail_url, is_published
		 FROM events WHERE id = $1`, id,
	).Scan(&ev.ID, &ev.UserID, &ev.Slug, &ev.Name, &ev.Date, &ev.MaxImages,
		&ev.CreatedAt, &ev.CoverURL, &ev.CoverThumbnailURL, &ev.IsPublished)
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

func (s *Storage) GetEvents(ctx context.Context, userID uuid.UUID, searchParam string) ([]model.Event, error) {
	rows, err := s.DB.Query(ctx, `
		SELECT e.id, e.user_id, e.slug, e.name, e.date, e.max_images, e.created_at,
			   e.cover_url, e.cover_thumbnail_url, u.username, e.is_published,
		(SELECT COUNT(*) FROM photos WHERE event_id = e.id) AS count_photos
		FROM events e
		JOIN users u ON e.user_id = u.id
		WHERE e.user_id = $1 AND ($2 = '' OR e.name ILIKE $3)
		ORDER BY
			CASE
				WHEN $2 = '' THEN 1
				WHEN e.name ILIKE $4 THEN 1  -- совпадение в начале
				ELSE 2                       -- совпадение в любом месте
			END,
			e.date DESC
		`, userID, searchParam, "%"+searchParam+"%", searchParam+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		var ev model.Event
		err := rows.Scan(
			&ev.ID, &ev.UserID, &ev.Slug, &ev.Name, &ev.Date, &ev.MaxImages, &ev.CreatedAt,
			&ev.CoverURL, &ev.CoverThumbnailURL, &ev.UserName, &ev.IsPublished, &ev.CountPhotos)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

func (s *Storage) DeleteEvent(ctx context.Context, userID uuid.UUID, eventID uuid.UUID) error {
	res, err := s.DB.Exec(ctx, "DELETE FROM events WHERE user_id = $1 AND id = $2", userID, eventID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (s *Storage) PublishEvent(ctx context.Context, userID uuid.UUID, eventID uuid.UUID) error {
	res, err := s.DB.Exec(ctx,
		`UPDATE events SET is_published = TRUE WHERE user_id = $1 AND id = $2`,
		userID, eventID,
	)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (s *Storage) UpdateEventCover(
	ctx context.Context, userID uuid.UUID, eventID uuid.UUID, photoID uuid.UUID) error {

	// Сначала проверяем, что фото принадлежит событию и пользователю
	var originalURL, thumbnailURL string
	err := s.DB.QueryRow(ctx,
		`SELECT image_url, thumbnail_url
		 FROM photos
		 WHERE uploader_id = $1 AND event_id = $2 AND id = $3`,
		userID, eventID, photoID,
	).Scan(&originalURL, &thumbnailURL)
	if err != nil {
		return err
	}

	// Обновляем обложку события
	res, err := s.DB.Exec(ctx,
		`UPDATE events
		 SET cover_url = $1, cover_thumbnail_url = $2
		 WHERE user_id = $3 AND id = $4`,
		originalURL, thumbnailURL, userID, eventID,
	)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return sql.ErrNoRows
	}
	return nil
}
