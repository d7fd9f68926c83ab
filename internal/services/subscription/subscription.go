// Package services содержит бизнес-логику сверки подписок пользователей.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mrxception/ofmreddit/internal/models"
)

// ErrUnknownCooldown возвращается при значении cooldown вне допустимого набора.
var ErrUnknownCooldown = errors.New("unknown cooldown value")

// SubscriptionRepository определяет методы хранилища подписок.
type SubscriptionRepository interface {
	// UpsertLatestEntry обновляет последнюю запись подписки пользователя
	// либо вставляет новую, атомарно.
	UpsertLatestEntry(ctx context.Context, entry models.UserSubscription) error
	// GetCurrentSubscription возвращает текущую подписку пользователя
	// вместе с именем тарифа и почтой.
	GetCurrentSubscription(ctx context.Context, userUID string) (*models.SubscriptionView, error)
	// ListCurrentSubscriptions возвращает текущие подписки всех пользователей.
	ListCurrentSubscriptions(ctx context.Context, limit, offset int) ([]*models.SubscriptionView, error)
}

// SubscriptionService реализует апсерт текущей подписки пользователя:
// обновляется последняя по starts_at запись, история не накапливается.
type SubscriptionService struct {
	repo SubscriptionRepository
	log  *slog.Logger
}

// NewSubscriptionService создает новый экземпляр SubscriptionService.
func NewSubscriptionService(repo SubscriptionRepository, log *slog.Logger) *SubscriptionService {
	return &SubscriptionService{
		repo: repo,
		log:  log,
	}
}

// Upsert выполняет апсерт подписки пользователя и возвращает получившуюся
// текущую подписку. Cooldown по умолчанию "0".
func (s *SubscriptionService) Upsert(ctx context.Context, req models.DummyUpsertSubscription) (*models.SubscriptionView, error) {
	startsAt, err := time.Parse(time.RFC3339, req.StartsAt)
	if err != nil {
		return nil, fmt.Errorf("invalid starts_at: %w", err)
	}

	var endsAt *time.Time
	if req.EndsAt != nil {
		parsed, err := time.Parse(time.RFC3339, *req.EndsAt)
		if err != nil {
			return nil, fmt.Errorf("invalid ends_at: %w", err)
		}
		endsAt = &parsed
	}

	cooldown := "0"
	if req.Cooldown != nil {
		cooldown = *req.Cooldown
	}
	if _, ok := models.Cooldowns[cooldown]; !ok {
		return nil, ErrUnknownCooldown
	}

	entry := models.UserSubscription{
		UserUID:  req.UserUID,
		TierID:   req.TierID,
		StartsAt: startsAt,
		EndsAt:   endsAt,
		Cooldown: cooldown,
	}
	if err := s.repo.UpsertLatestEntry(ctx, entry); err != nil {
		return nil, err
	}
	s.log.Info("subscription upserted",
		slog.String("user_uid", req.UserUID), slog.Int("tier_id", req.TierID))

	return s.repo.GetCurrentSubscription(ctx, req.UserUID)
}

// ListAll возвращает текущую подписку каждого пользователя с пагинацией.
func (s *SubscriptionService) ListAll(ctx context.Context, limit, offset int) ([]*models.SubscriptionView, error) {
	return s.repo.ListCurrentSubscriptions(ctx, limit, offset)
}
