package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mrxception/ofmreddit/internal/models"
)

// UpsertVerificationCode сохраняет код подтверждения почты пользователя,
// заменяя предыдущий.
func (s *Storage) UpsertVerificationCode(ctx context.Context, vc models.VerificationCode) error {
	const op = "storage.UpsertVerificationCode"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO verification_codes (user_uid, code, expires_at)
			  VALUES ($1, $2, $3)
			  ON CONFLICT (user_uid)
			  DO UPDATE SET code = EXCLUDED.code, expires_at = EXCLUDED.expires_at`
	_, err := s.DB.ExecContext(ctx, query, vc.UserUID, vc.Code, vc.ExpiresAt)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetVerificationCode возвращает код подтверждения пользователя или ErrNotFound.
func (s *Storage) GetVerificationCode(ctx context.Context, userUID string) (*models.VerificationCode, error) {
	const op = "storage.GetVerificationCode"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var vc models.VerificationCode
	row := s.DB.QueryRowContext(ctx,
		`SELECT user_uid, code, expires_at FROM verification_codes WHERE user_uid = $1`, userUID)
	if err := row.Scan(&vc.UserUID, &vc.Code, &vc.ExpiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &vc, nil
}

// DeleteVerificationCode удаляет использованный код подтверждения.
func (s *Storage) DeleteVerificationCode(ctx context.Context, userUID string) error {
	const op = "storage.DeleteVerificationCode"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	_, err := s.DB.ExecContext(ctx,
		`DELETE FROM verification_codes WHERE user_uid = $1`, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
