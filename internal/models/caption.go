package models

import "time"

// CopiedCaption запись о скопированной пользователем подписи.
type CopiedCaption struct {
	ID        int       `json:"id"`
	UserUID   string    `json:"user_uid"`
	Caption   string    `json:"caption"`
	Subreddit string    `json:"subreddit"`
	CopiedAt  time.Time `json:"copied_at"`
}

// FeatureUsage запись об использовании функции сервиса.
type FeatureUsage struct {
	ID      int       `json:"id"`
	UserUID string    `json:"user_uid"`
	Feature string    `json:"feature"`
	UsedAt  time.Time `json:"used_at"`
}

// Названия функций, учитываемых в feature_usage.
const (
	FeatureCaptionGenerate = "caption_generate"
	FeatureCaptionCopy     = "caption_copy"
	FeatureExport          = "export"
)

// DummyTrackCopy используется для приёма события копирования подписи.
type DummyTrackCopy struct {
	Caption   string `json:"caption" validate:"required"`
	Subreddit string `json:"subreddit" validate:"required"`
}

// DummyGenerateCaption используется для приёма запроса генерации подписей.
type DummyGenerateCaption struct {
	Subreddit string `json:"subreddit" validate:"required"`
	Topic     string `json:"topic" validate:"required"`
	Count     int    `json:"count" validate:"required,gt=0,lte=10"`
}
