package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mrxception/ofmreddit/internal/models"
)

// ListTiers возвращает все тарифные планы.
func (s *Storage) ListTiers(ctx context.Context) ([]*models.SubscriptionTier, error) {
	const op = "storage.ListTiers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, price, weekly_caption_limit, weekly_scrape_limit,
				  weekly_export_limit, weekly_upload_limit, is_active
			  FROM subscription_tiers
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.SubscriptionTier
	for rows.Next() {
		var item models.SubscriptionTier
		var price sql.NullFloat64
		if err := rows.Scan(&item.ID, &item.Name, &price, &item.WeeklyCaptionLimit,
			&item.WeeklyScrapeLimit, &item.WeeklyExportLimit, &item.WeeklyUploadLimit,
			&item.IsActive); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if price.Valid {
			item.Price = &price.Float64
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetTier возвращает тарифный план по ID.
func (s *Storage) GetTier(ctx context.Context, id int) (*models.SubscriptionTier, error) {
	const op = "storage.GetTier"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, price, weekly_caption_limit, weekly_scrape_limit,
				  weekly_export_limit, weekly_upload_limit, is_active
			  FROM subscription_tiers
			  WHERE id = $1`
	var item models.SubscriptionTier
	var price sql.NullFloat64
	row := s.DB.QueryRowContext(ctx, query, id)
	if err := row.Scan(&item.ID, &item.Name, &price, &item.WeeklyCaptionLimit,
		&item.WeeklyScrapeLimit, &item.WeeklyExportLimit, &item.WeeklyUploadLimit,
		&item.IsActive); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if price.Valid {
		item.Price = &price.Float64
	}
	return &item, nil
}

// UpdateTier обновляет тарифный план и возвращает количество изменённых строк.
func (s *Storage) UpdateTier(ctx context.Context, tier models.SubscriptionTier) (int, error) {
	const op = "storage.UpdateTier"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE subscription_tiers
			  SET name = $1, price = $2, weekly_caption_limit = $3, weekly_scrape_limit = $4,
				  weekly_export_limit = $5, weekly_upload_limit = $6, is_active = $7
			  WHERE id = $8`
	result, err := s.DB.ExecContext(ctx, query,
		tier.Name, tier.Price, tier.WeeklyCaptionLimit, tier.WeeklyScrapeLimit,
		tier.WeeklyExportLimit, tier.WeeklyUploadLimit, tier.IsActive, tier.ID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// UpsertLatestEntry выполняет апсерт подписки пользователя: обновляет
// последнюю по starts_at запись, если она есть, иначе вставляет новую.
// Чтение и запись выполняются в одной транзакции, последняя запись
// блокируется через SELECT ... FOR UPDATE, чтобы конкурентные апсерты
// одного пользователя не теряли обновления. Тай-брейк при равных
// starts_at — наибольший id.
func (s *Storage) UpsertLatestEntry(ctx context.Context, entry models.UserSubscription) error {
	const op = "storage.UpsertLatestEntry"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var latestID int
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM user_subscriptions
		 WHERE user_uid = $1
		 ORDER BY starts_at DESC, id DESC
		 LIMIT 1
		 FOR UPDATE`, entry.UserUID).Scan(&latestID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = tx.ExecContext(ctx,
			`INSERT INTO user_subscriptions (user_uid, tier_id, starts_at, ends_at, cooldown)
			 VALUES ($1, $2, $3, $4, $5)`,
			entry.UserUID, entry.TierID, entry.StartsAt, entry.EndsAt, entry.Cooldown)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	case err != nil:
		return fmt.Errorf("%s: %w", op, err)
	default:
		_, err = tx.ExecContext(ctx,
			`UPDATE user_subscriptions
			 SET tier_id = $1, starts_at = $2, ends_at = $3, cooldown = $4
			 WHERE id = $5`,
			entry.TierID, entry.StartsAt, entry.EndsAt, entry.Cooldown, latestID)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// InsertEntry вставляет запись подписки напрямую. Если cooldown пуст,
// он берётся из default_cooldown настроек сайта на момент вставки —
// это заменяет прежнее изменение default колонки через ALTER TABLE.
func (s *Storage) InsertEntry(ctx context.Context, entry models.UserSubscription) (int, error) {
	const op = "storage.InsertEntry"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO user_subscriptions (user_uid, tier_id, starts_at, ends_at, cooldown)
			  VALUES ($1, $2, $3, $4,
				  CASE WHEN $5 = ''
					  THEN COALESCE((SELECT default_cooldown FROM site_controls WHERE id = 1), '30')
					  ELSE $5
				  END)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		entry.UserUID, entry.TierID, entry.StartsAt, entry.EndsAt, entry.Cooldown).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetCurrentSubscription возвращает текущую (последнюю по starts_at)
// подписку пользователя вместе с именем тарифа и почтой.
func (s *Storage) GetCurrentSubscription(ctx context.Context, userUID string) (*models.SubscriptionView, error) {
	const op = "storage.GetCurrentSubscription"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT us.id, us.user_uid, us.tier_id, us.starts_at, us.ends_at, us.cooldown,
				  t.name, u.email
			  FROM user_subscriptions us
			  JOIN subscription_tiers t ON t.id = us.tier_id
			  JOIN users u ON u.uid = us.user_uid
			  WHERE us.user_uid = $1
			  ORDER BY us.starts_at DESC, us.id DESC
			  LIMIT 1`
	var v models.SubscriptionView
	var endsAt sql.NullTime
	row := s.DB.QueryRowContext(ctx, query, userUID)
	if err := row.Scan(&v.ID, &v.UserUID, &v.TierID, &v.StartsAt, &endsAt,
		&v.Cooldown, &v.TierName, &v.Email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if endsAt.Valid {
		v.EndsAt = &endsAt.Time
	}
	return &v, nil
}

// ListCurrentSubscriptions возвращает текущую подписку каждого пользователя.
func (s *Storage) ListCurrentSubscriptions(ctx context.Context, limit, offset int) ([]*models.SubscriptionView, error) {
	const op = "storage.ListCurrentSubscriptions"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT DISTINCT ON (us.user_uid)
				  us.id, us.user_uid, us.tier_id, us.starts_at, us.ends_at, us.cooldown,
				  t.name, u.email
			  FROM user_subscriptions us
			  JOIN subscription_tiers t ON t.id = us.tier_id
			  JOIN users u ON u.uid = us.user_uid
			  ORDER BY us.user_uid, us.starts_at DESC, us.id DESC
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.SubscriptionView
	for rows.Next() {
		var v models.SubscriptionView
		var endsAt sql.NullTime
		if err := rows.Scan(&v.ID, &v.UserUID, &v.TierID, &v.StartsAt, &endsAt,
			&v.Cooldown, &v.TierName, &v.Email); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if endsAt.Valid {
			v.EndsAt = &endsAt.Time
		}
		result = append(result, &v)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountEntriesForUser возвращает количество записей подписок пользователя.
func (s *Storage) CountEntriesForUser(ctx context.Context, userUID string) (int, error) {
	const op = "storage.CountEntriesForUser"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var count int
	err := s.DB.QueryRowContext(ctx,
		`SELECT count(*) FROM user_subscriptions WHERE user_uid = $1`, userUID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
