// Package services содержит бизнес-логику глобальных настроек сайта.
package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/mrxception/ofmreddit/internal/models"
)

// ErrEmptyUpdate возвращается, когда запрос обновления не содержит
// ни одного распознанного поля.
var ErrEmptyUpdate = errors.New("no recognized fields to update")

const cacheKey = "site_controls"

// SiteControlsRepository определяет методы хранилища настроек сайта.
type SiteControlsRepository interface {
	// GetSiteControls возвращает строку настроек, лениво создавая её.
	GetSiteControls(ctx context.Context) (*models.SiteControls, error)
	// UpdateSiteControls применяет частичное обновление.
	UpdateSiteControls(ctx context.Context, showSub *int, cooldown *string) error
	// DefaultCooldown возвращает действующий default_cooldown.
	DefaultCooldown(ctx context.Context) (string, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// SiteControlsService реализует чтение и частичное обновление настроек сайта.
type SiteControlsService struct {
	repo  SiteControlsRepository
	cache Cache
	log   *slog.Logger
}

// NewSiteControlsService создает новый экземпляр SiteControlsService.
func NewSiteControlsService(repo SiteControlsRepository, cache Cache, log *slog.Logger) *SiteControlsService {
	return &SiteControlsService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Get возвращает настройки сайта, используя кеш или хранилище.
func (s *SiteControlsService) Get(ctx context.Context) (*models.SiteControls, error) {
	var cached *models.SiteControls
	found, err := s.cache.Get(cacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read site controls from cache", slog.Any("err", err))
	}
	if found {
		return cached, nil
	}

	sc, err := s.repo.GetSiteControls(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKey, sc, time.Minute); err != nil {
		s.log.Warn("failed to cache site controls", slog.Any("err", err))
	}
	return sc, nil
}

// Update применяет частичное обновление настроек. Возвращает ErrEmptyUpdate,
// если не передано ни одного поля, иначе — обновлённую строку.
func (s *SiteControlsService) Update(ctx context.Context, req models.DummyUpdateSiteControls) (*models.SiteControls, error) {
	if req.ShowSub == nil && req.DefaultCooldown == nil {
		return nil, ErrEmptyUpdate
	}

	// Строка создаётся лениво, обновление по несуществующей строке молча
	// ничего не изменит.
	if _, err := s.repo.GetSiteControls(ctx); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateSiteControls(ctx, req.ShowSub, req.DefaultCooldown); err != nil {
		return nil, err
	}
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate site controls cache", slog.Any("err", err))
	}

	sc, err := s.repo.GetSiteControls(ctx)
	if err != nil {
		return nil, err
	}
	s.log.Info("site controls updated", slog.Int("revision", sc.Revision))
	return sc, nil
}

// DefaultCooldown возвращает действующий default_cooldown. Новые записи
// подписок без явного cooldown наследуют его на момент вставки.
func (s *SiteControlsService) DefaultCooldown(ctx context.Context) (string, error) {
	return s.repo.DefaultCooldown(ctx)
}
