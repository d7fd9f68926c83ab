package models

import "time"

// Cooldown допустимые значения периода охлаждения подписки.
// Хранится строкой, как приходит из админки.
var Cooldowns = map[string]struct{}{
	"0":  {},
	"10": {},
	"30": {},
}

// SubscriptionTier представляет тарифный план с недельными лимитами.
type SubscriptionTier struct {
	ID                 int      `json:"id"`
	Name               string   `json:"name"`
	Price              *float64 `json:"price"` // nil — тариф без цены
	WeeklyCaptionLimit int      `json:"weekly_caption_limit"`
	WeeklyScrapeLimit  int      `json:"weekly_scrape_limit"`
	WeeklyExportLimit  int      `json:"weekly_export_limit"`
	WeeklyUploadLimit  int      `json:"weekly_upload_limit"`
	IsActive           bool     `json:"is_active"`
}

// UserSubscription представляет запись подписки пользователя на тариф.
// EndsAt может быть nil — подписка бессрочная.
type UserSubscription struct {
	ID       int        `json:"id"`
	UserUID  string     `json:"user_uid"`
	TierID   int        `json:"tier_id"`
	StartsAt time.Time  `json:"starts_at"`
	EndsAt   *time.Time `json:"ends_at,omitempty"`
	Cooldown string     `json:"cooldown"`
}

// SubscriptionView текущая подписка пользователя вместе с именем тарифа
// и почтой пользователя, как её отдаёт админка.
type SubscriptionView struct {
	UserSubscription
	TierName string `json:"tier_name"`
	Email    string `json:"email"`
}

// DummyUpsertSubscription используется для приёма данных апсерта подписки
// из JSON-запроса. Даты приходят строками в формате RFC3339.
type DummyUpsertSubscription struct {
	UserUID  string  `json:"user_uid" validate:"required,uuid"`
	TierID   int     `json:"tier_id" validate:"required,gt=0"`
	StartsAt string  `json:"starts_at" validate:"required"`
	EndsAt   *string `json:"ends_at,omitempty"`
	Cooldown *string `json:"cooldown,omitempty"`
}

// DummyUpdateTier используется для обновления тарифа администратором.
type DummyUpdateTier struct {
	ID                 int      `json:"id" validate:"required,gt=0"`
	Name               string   `json:"name" validate:"required"`
	Price              *float64 `json:"price"`
	WeeklyCaptionLimit int      `json:"weekly_caption_limit" validate:"gte=0"`
	WeeklyScrapeLimit  int      `json:"weekly_scrape_limit" validate:"gte=0"`
	WeeklyExportLimit  int      `json:"weekly_export_limit" validate:"gte=0"`
	WeeklyUploadLimit  int      `json:"weekly_upload_limit" validate:"gte=0"`
	IsActive           bool     `json:"is_active"`
}
