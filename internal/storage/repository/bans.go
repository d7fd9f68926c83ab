package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mrxception/ofmreddit/internal/models"
)

// UpsertBan создаёт запись о блокировке пользователя либо обновляет
// причину и время существующей.
func (s *Storage) UpsertBan(ctx context.Context, userUID, reason string) error {
	const op = "storage.UpsertBan"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO banned_users (user_uid, reason, banned_at)
			  VALUES ($1, $2, now())
			  ON CONFLICT (user_uid)
			  DO UPDATE SET reason = EXCLUDED.reason, banned_at = EXCLUDED.banned_at`
	_, err := s.DB.ExecContext(ctx, query, userUID, reason)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// RemoveBan снимает блокировку и возвращает количество удалённых строк.
func (s *Storage) RemoveBan(ctx context.Context, userUID string) (int, error) {
	const op = "storage.RemoveBan"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM banned_users WHERE user_uid = $1`
	result, err := s.DB.ExecContext(ctx, query, userUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// GetBan возвращает запись о блокировке пользователя или ErrNotFound.
func (s *Storage) GetBan(ctx context.Context, userUID string) (*models.BannedUser, error) {
	const op = "storage.GetBan"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT user_uid, reason, banned_at FROM banned_users WHERE user_uid = $1`
	var b models.BannedUser
	row := s.DB.QueryRowContext(ctx, query, userUID)
	if err := row.Scan(&b.UserUID, &b.Reason, &b.BannedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &b, nil
}
