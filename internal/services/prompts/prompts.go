// Package services содержит бизнес-логику промптов генерации подписей.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mrxception/ofmreddit/internal/models"
)

// PromptRepository определяет методы хранилища промптов.
type PromptRepository interface {
	GetPrompt(ctx context.Context, key string) (*models.Prompt, error)
	UpsertPrompt(ctx context.Context, key, content string, docs []models.PromptDocument) error
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// PromptService реализует чтение и обновление промптов с кешированием.
type PromptService struct {
	repo  PromptRepository
	cache Cache
	log   *slog.Logger
}

// NewPromptService создает новый экземпляр PromptService.
func NewPromptService(repo PromptRepository, cache Cache, log *slog.Logger) *PromptService {
	return &PromptService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Get возвращает промпт по ключу, используя кеш или хранилище.
func (s *PromptService) Get(ctx context.Context, key string) (*models.Prompt, error) {
	cacheKey := fmt.Sprintf("prompt:%s", key)
	var cached *models.Prompt
	found, err := s.cache.Get(cacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read prompt from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found {
		return cached, nil
	}

	p, err := s.repo.GetPrompt(ctx, key)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKey, p, time.Hour); err != nil {
		s.log.Warn("failed to cache prompt", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return p, nil
}

// Update сохраняет промпт, заменяет документы и инвалидирует кеш.
func (s *PromptService) Update(ctx context.Context, key string, req models.DummyUpdatePrompt) (*models.Prompt, error) {
	docs := make([]models.PromptDocument, 0, len(req.Documents))
	for _, d := range req.Documents {
		docs = append(docs, models.PromptDocument{Name: d.Name, URL: d.URL})
	}
	if err := s.repo.UpsertPrompt(ctx, key, req.Content, docs); err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("prompt:%s", key)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate prompt cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	s.log.Info("prompt updated", slog.String("key", key))

	return s.repo.GetPrompt(ctx, key)
}
