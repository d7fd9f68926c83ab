// Package models содержит доменные структуры приложения,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
type User struct {
	UID           string    // Уникальный идентификатор пользователя
	Email         string    // Электронная почта
	Username      string    // Имя пользователя (уникальное)
	PasswordHash  string    // Хэш пароля пользователя
	IsAdmin       bool      // Признак администратора
	EmailVerified bool      // Подтверждена ли электронная почта
	CreatedAt     time.Time // Дата регистрации
}

// BannedUser представляет запись о блокировке пользователя.
// Наличие записи означает, что пользователь заблокирован.
type BannedUser struct {
	UserUID  string    // Идентификатор заблокированного пользователя
	Reason   string    // Причина блокировки
	BannedAt time.Time // Время блокировки
}

// UserInfo агрегированное представление пользователя для админки:
// данные учётной записи вместе с блокировкой и текущим тарифом.
type UserInfo struct {
	User
	Banned    bool    `json:"banned"`
	BanReason *string `json:"ban_reason,omitempty"`
	TierName  *string `json:"tier_name,omitempty"`
}

// DummyRegister используется для приёма данных регистрации из JSON-запроса.
type DummyRegister struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,alphanum"`
	Password string `json:"password" validate:"required,min=8"`
}

// DummyLogin используется для приёма данных авторизации из JSON-запроса.
type DummyLogin struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// DummyVerifyOTP используется для приёма кода подтверждения почты.
type DummyVerifyOTP struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,numeric,len=6"`
}

// DummyResend используется для повторной отправки письма подтверждения.
type DummyResend struct {
	Email string `json:"email" validate:"required,email"`
}

// DummyRename используется для смены имени пользователя администратором.
type DummyRename struct {
	Username string `json:"username" validate:"required,alphanum"`
}

// DummyBan используется для приёма причины блокировки.
type DummyBan struct {
	Reason string `json:"reason" validate:"required"`
}

// VerificationCode представляет одноразовый код подтверждения почты.
type VerificationCode struct {
	UserUID   string
	Code      string
	ExpiresAt time.Time
}

// VerificationEmail сообщение для очереди отправки писем подтверждения.
type VerificationEmail struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Code     string `json:"code"`
}
