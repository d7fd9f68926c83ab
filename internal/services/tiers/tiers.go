// Package services содержит бизнес-логику тарифных планов.
package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mrxception/ofmreddit/internal/models"
)

// ErrNoSuchTier возвращается при обновлении несуществующего тарифа.
var ErrNoSuchTier = errors.New("no such tier")

// TierRepository определяет методы хранилища тарифов.
type TierRepository interface {
	ListTiers(ctx context.Context) ([]*models.SubscriptionTier, error)
	UpdateTier(ctx context.Context, tier models.SubscriptionTier) (int, error)
}

// TierService реализует чтение и обновление тарифных планов.
type TierService struct {
	repo TierRepository
	log  *slog.Logger
}

// NewTierService создает новый экземпляр TierService.
func NewTierService(repo TierRepository, log *slog.Logger) *TierService {
	return &TierService{
		repo: repo,
		log:  log,
	}
}

// List возвращает все тарифные планы.
func (s *TierService) List(ctx context.Context) ([]*models.SubscriptionTier, error) {
	return s.repo.ListTiers(ctx)
}

// Update обновляет тарифный план. Тарифы не удаляются, только меняются.
func (s *TierService) Update(ctx context.Context, req models.DummyUpdateTier) error {
	tier := models.SubscriptionTier{
		ID:                 req.ID,
		Name:               req.Name,
		Price:              req.Price,
		WeeklyCaptionLimit: req.WeeklyCaptionLimit,
		WeeklyScrapeLimit:  req.WeeklyScrapeLimit,
		WeeklyExportLimit:  req.WeeklyExportLimit,
		WeeklyUploadLimit:  req.WeeklyUploadLimit,
		IsActive:           req.IsActive,
	}
	count, err := s.repo.UpdateTier(ctx, tier)
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrNoSuchTier
	}
	s.log.Info("tier updated", slog.Int("id", req.ID))
	return nil
}
