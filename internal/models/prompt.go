package models

import "time"

// Prompt представляет шаблон промпта для генерации подписей.
type Prompt struct {
	Key       string           `json:"key"`
	Content   string           `json:"content"`
	UpdatedAt time.Time        `json:"updated_at"`
	Documents []PromptDocument `json:"documents"`
}

// PromptDocument документ, прикреплённый к промпту (хранится у внешнего
// провайдера, здесь только имя и ссылка).
type PromptDocument struct {
	ID        int    `json:"id"`
	PromptKey string `json:"prompt_key"`
	Name      string `json:"name"`
	URL       string `json:"url"`
}

// DummyUpdatePrompt используется для обновления промпта администратором.
// Список документов полностью заменяет прикреплённый набор.
type DummyUpdatePrompt struct {
	Content   string                `json:"content" validate:"required"`
	Documents []DummyPromptDocument `json:"documents" validate:"dive"`
}

// DummyPromptDocument документ в запросе обновления промпта.
type DummyPromptDocument struct {
	Name string `json:"name" validate:"required"`
	URL  string `json:"url" validate:"required,url"`
}
