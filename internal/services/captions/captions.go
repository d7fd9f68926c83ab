// Package services содержит бизнес-логику генерации подписей.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mrxception/ofmreddit/internal/models"
	"github.com/mrxception/ofmreddit/internal/storage/repository"
)

// Ошибки генерации подписей.
var (
	ErrWeeklyLimitReached = errors.New("weekly caption limit reached")
	ErrNoActiveTier       = errors.New("no active subscription tier")
)

// promptKey ключ промпта генерации подписей в хранилище.
const promptKey = "caption_generation"

// CaptionRepository определяет методы хранилища, нужные генерации подписей.
type CaptionRepository interface {
	GetCurrentSubscription(ctx context.Context, userUID string) (*models.SubscriptionView, error)
	GetTier(ctx context.Context, id int) (*models.SubscriptionTier, error)
	CountFeatureUsageSince(ctx context.Context, userUID, feature string, since time.Time) (int, error)
	InsertFeatureUsage(ctx context.Context, userUID, feature string) error
}

// PromptReader отдаёт промпт генерации (с учётом кеша).
type PromptReader interface {
	Get(ctx context.Context, key string) (*models.Prompt, error)
}

// Generator клиент генеративного API.
type Generator interface {
	GenerateCaptions(ctx context.Context, prompt string, count int) ([]string, error)
}

// CaptionService генерирует подписи через внешний API с учётом
// недельного лимита тарифа пользователя.
type CaptionService struct {
	repo      CaptionRepository
	prompts   PromptReader
	generator Generator
	log       *slog.Logger
}

// NewCaptionService создает новый экземпляр CaptionService.
func NewCaptionService(repo CaptionRepository, prompts PromptReader, generator Generator, log *slog.Logger) *CaptionService {
	return &CaptionService{
		repo:      repo,
		prompts:   prompts,
		generator: generator,
		log:       log,
	}
}

// Generate проверяет недельный лимит тарифа, собирает промпт и вызывает
// генеративный API. Каждая генерация учитывается в feature_usage.
func (s *CaptionService) Generate(ctx context.Context, userUID string, req models.DummyGenerateCaption) ([]string, error) {
	tier, err := s.currentTier(ctx, userUID)
	if err != nil {
		return nil, err
	}

	weekAgo := time.Now().AddDate(0, 0, -7)
	used, err := s.repo.CountFeatureUsageSince(ctx, userUID, models.FeatureCaptionGenerate, weekAgo)
	if err != nil {
		return nil, err
	}
	if used+req.Count > tier.WeeklyCaptionLimit {
		return nil, ErrWeeklyLimitReached
	}

	prompt, err := s.prompts.Get(ctx, promptKey)
	if err != nil {
		return nil, err
	}
	fullPrompt := buildPrompt(prompt.Content, req)

	captions, err := s.generator.GenerateCaptions(ctx, fullPrompt, req.Count)
	if err != nil {
		return nil, err
	}

	for range captions {
		if err := s.repo.InsertFeatureUsage(ctx, userUID, models.FeatureCaptionGenerate); err != nil {
			s.log.Warn("failed to record caption usage", slog.Any("err", err))
			break
		}
	}
	s.log.Info("captions generated",
		slog.String("user_uid", userUID), slog.Int("count", len(captions)))
	return captions, nil
}

func (s *CaptionService) currentTier(ctx context.Context, userUID string) (*models.SubscriptionTier, error) {
	sub, err := s.repo.GetCurrentSubscription(ctx, userUID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoActiveTier
		}
		return nil, err
	}
	tier, err := s.repo.GetTier(ctx, sub.TierID)
	if err != nil {
		return nil, err
	}
	if !tier.IsActive {
		return nil, ErrNoActiveTier
	}
	return tier, nil
}

func buildPrompt(template string, req models.DummyGenerateCaption) string {
	replacer := strings.NewReplacer(
		"{subreddit}", req.Subreddit,
		"{topic}", req.Topic,
	)
	out := replacer.Replace(template)
	return fmt.Sprintf("%s\n\nGenerate %d caption variants.", out, req.Count)
}
