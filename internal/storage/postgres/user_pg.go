package postgres

import (
	"context"

	"github.com/google/uuid"

	"live-foto-event-back/internal/model"
)

func (s *Storage) CreateUser(ctx context.Context, u model.User) error {
	_, err := s.DB.Exec(ctx,
		`INSERT INTO users (username, email, password, refresh_token)
		 VALUES ($1, $2, $3, $4)`,
		u.UserName, u.Email, u.Password, u.RefreshToken,
	)
	return err
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	err := s.DB.QueryRow(ctx,
		`SELECT id, username, email, password, refresh_token
		 FROM users WHERE email = $1`, email,
	).Scan(&u.ID, &u.UserName, &u.Email, &u.Password, &u.RefreshToken)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Storage) GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var u model.User
	err := s.DB.QueryRow(ctx,
		`SELECT id, username, email, password, refresh_token
		 FROM users WHERE id = $1`, id,
	).Scan(&u.ID, &u.UserName, &u.Email, &u.Password, &u.RefreshToken)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Storage) GetUserByRefresh(ctx context.Context, refreshToken string) (*model.User, error) {
	var u model.User
	err := s.DB.QueryRow(ctx,
		`SELECT id, username, email, password, refresh_token
		 FROM users WHERE refresh_token = $1`, refreshToken,
	).Scan(&u.ID, &u.UserName, &u.Email, &u.Password, &u.RefreshToken)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Storage) UpdateRefreshToken(ctx context.Context, userID uuid.UUID, refreshToken string) error {
	_, err := s.DB.Exec(ctx,
		`UPDATE users SET refresh_token = $1 WHERE id = $2`,
		refreshToken, userID,
	)
	return err
}
