package repository

import (
	"context"
	"fmt"

	"github.com/mrxception/ofmreddit/internal/models"
)

// Значения настроек сайта по умолчанию при ленивом создании строки.
const (
	defaultShowSub  = 1
	defaultCooldown = "30"
)

// GetSiteControls возвращает единственную строку настроек сайта,
// лениво создавая её со значениями по умолчанию. Вставка идемпотентна
// при конкурентном первом обращении за счёт ON CONFLICT DO NOTHING.
func (s *Storage) GetSiteControls(ctx context.Context) (*models.SiteControls, error) {
	const op = "storage.GetSiteControls"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO site_controls (id, show_sub, default_cooldown, revision)
		 VALUES (1, $1, $2, 1)
		 ON CONFLICT (id) DO NOTHING`, defaultShowSub, defaultCooldown)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var sc models.SiteControls
	row := s.DB.QueryRowContext(ctx,
		`SELECT id, show_sub, default_cooldown, revision FROM site_controls WHERE id = 1`)
	if err := row.Scan(&sc.ID, &sc.ShowSub, &sc.DefaultCooldown, &sc.Revision); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &sc, nil
}

// UpdateSiteControls применяет частичное обновление настроек и
// увеличивает revision. Поля с nil не трогаются.
func (s *Storage) UpdateSiteControls(ctx context.Context, showSub *int, cooldown *string) error {
	const op = "storage.UpdateSiteControls"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE site_controls
			  SET show_sub = COALESCE($1, show_sub),
				  default_cooldown = COALESCE($2, default_cooldown),
				  revision = revision + 1
			  WHERE id = 1`
	_, err := s.DB.ExecContext(ctx, query, showSub, cooldown)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// DefaultCooldown возвращает текущий default_cooldown настроек сайта.
// Если строка ещё не создана, возвращает значение по умолчанию.
func (s *Storage) DefaultCooldown(ctx context.Context) (string, error) {
	const op = "storage.DefaultCooldown"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var cooldown string
	err := s.DB.QueryRowContext(ctx,
		`SELECT COALESCE((SELECT default_cooldown FROM site_controls WHERE id = 1), $1)`,
		defaultCooldown).Scan(&cooldown)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return cooldown, nil
}
