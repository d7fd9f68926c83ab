package models

import "time"

// ScrapeResult строка результата скрейпинга сабреддита.
// Raw хранит исходный ответ источника как есть.
type ScrapeResult struct {
	ID        int       `json:"id"`
	Subreddit string    `json:"subreddit"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Score     int       `json:"score"`
	Comments  int       `json:"comments"`
	URL       string    `json:"url"`
	PostedAt  time.Time `json:"posted_at"`
	Raw       []byte    `json:"-"`
}

// DummyExport используется для приёма запроса выгрузки в xlsx.
// Kind определяет форму выгрузки: "data" — сводные колонки,
// "raw" — все колонки вместе с исходным JSON.
type DummyExport struct {
	Kind      string `json:"kind" validate:"required,oneof=data raw"`
	Subreddit string `json:"subreddit,omitempty"`
	Limit     int    `json:"limit,omitempty" validate:"omitempty,gt=0"`
}
