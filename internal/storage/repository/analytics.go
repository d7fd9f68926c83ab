package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/mrxception/ofmreddit/internal/models"
)

// InsertCopiedCaption сохраняет событие копирования подписи и возвращает его ID.
func (s *Storage) InsertCopiedCaption(ctx context.Context, c models.CopiedCaption) (int, error) {
	const op = "storage.InsertCopiedCaption"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO copied_captions (user_uid, caption, subreddit, copied_at)
			  VALUES ($1, $2, $3, now())
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query, c.UserUID, c.Caption, c.Subreddit).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// InsertFeatureUsage сохраняет событие использования функции.
func (s *Storage) InsertFeatureUsage(ctx context.Context, userUID, feature string) error {
	const op = "storage.InsertFeatureUsage"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO feature_usage (user_uid, feature, used_at) VALUES ($1, $2, now())`
	_, err := s.DB.ExecContext(ctx, query, userUID, feature)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// CountFeatureUsageSince возвращает количество использований функции
// пользователем начиная с указанного момента.
func (s *Storage) CountFeatureUsageSince(ctx context.Context, userUID, feature string, since time.Time) (int, error) {
	const op = "storage.CountFeatureUsageSince"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var count int
	err := s.DB.QueryRowContext(ctx,
		`SELECT count(*) FROM feature_usage
		 WHERE user_uid = $1 AND feature = $2 AND used_at >= $3`,
		userUID, feature, since).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// ListCopiedCaptions возвращает события копирования подписей с пагинацией.
func (s *Storage) ListCopiedCaptions(ctx context.Context, limit, offset int) ([]*models.CopiedCaption, error) {
	const op = "storage.ListCopiedCaptions"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, caption, subreddit, copied_at
			  FROM copied_captions
			  ORDER BY copied_at DESC
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.CopiedCaption
	for rows.Next() {
		var item models.CopiedCaption
		if err := rows.Scan(&item.ID, &item.UserUID, &item.Caption,
			&item.Subreddit, &item.CopiedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListFeatureUsage возвращает события использования функций с пагинацией.
func (s *Storage) ListFeatureUsage(ctx context.Context, limit, offset int) ([]*models.FeatureUsage, error) {
	const op = "storage.ListFeatureUsage"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, feature, used_at
			  FROM feature_usage
			  ORDER BY used_at DESC
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.FeatureUsage
	for rows.Next() {
		var item models.FeatureUsage
		if err := rows.Scan(&item.ID, &item.UserUID, &item.Feature, &item.UsedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
