package models

// SiteControls единственная строка глобальных настроек сайта (id всегда 1).
// Revision увеличивается при каждом обновлении и служит для
// оптимистичного контроля конкурентных изменений.
type SiteControls struct {
	ID              int    `json:"id"`
	ShowSub         int    `json:"show_sub"`         // Показывать ли баннер подписки, 0 или 1
	DefaultCooldown string `json:"default_cooldown"` // Период охлаждения по умолчанию: "0", "10", "30"
	Revision        int    `json:"revision"`
}

// DummyUpdateSiteControls используется для частичного обновления настроек.
// Оба поля опциональны, но хотя бы одно должно присутствовать.
type DummyUpdateSiteControls struct {
	ShowSub         *int    `json:"show_sub,omitempty" validate:"omitempty,oneof=0 1"`
	DefaultCooldown *string `json:"default_cooldown,omitempty" validate:"omitempty,oneof=0 10 30"`
}
