// Package services содержит логику бизнес-уровня для работы с пользователями и аутентификацией.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mrxception/ofmreddit/internal/lib/jwt"
	"github.com/mrxception/ofmreddit/internal/lib/otp"
	"github.com/mrxception/ofmreddit/internal/lib/password"
	"github.com/mrxception/ofmreddit/internal/models"
	"github.com/mrxception/ofmreddit/internal/storage/repository"
)

// Ошибки аутентификации, различаемые на границе HTTP.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotVerified        = errors.New("email is not verified")
	ErrBanned             = errors.New("user is banned")
	ErrCodeMismatch       = errors.New("verification code mismatch")
	ErrCodeExpired        = errors.New("verification code expired")
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его UID.
	RegisterUser(ctx context.Context, user models.User) (string, error)
	// GetUserByUsername возвращает пользователя по имени или ошибку, если не найден.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	// GetUserByEmail возвращает пользователя по почте или ошибку, если не найден.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// SetEmailVerified помечает почту подтверждённой.
	SetEmailVerified(ctx context.Context, userUID string) error
	// GetBan возвращает блокировку пользователя или repository.ErrNotFound.
	GetBan(ctx context.Context, userUID string) (*models.BannedUser, error)
	// UpsertVerificationCode сохраняет код подтверждения, заменяя предыдущий.
	UpsertVerificationCode(ctx context.Context, vc models.VerificationCode) error
	// GetVerificationCode возвращает код подтверждения пользователя.
	GetVerificationCode(ctx context.Context, userUID string) (*models.VerificationCode, error)
	// DeleteVerificationCode удаляет использованный код.
	DeleteVerificationCode(ctx context.Context, userUID string) error
}

// MailPublisher публикует письмо подтверждения в очередь отправки.
type MailPublisher interface {
	PublishVerificationEmail(msg models.VerificationEmail) error
}

// AuthService отвечает за регистрацию, авторизацию и подтверждение почты.
type AuthService struct {
	users     UserRepository
	jwtMaker  jwt.Maker
	publisher MailPublisher
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker, publisher MailPublisher) *AuthService {
	return &AuthService{
		users:     users,
		jwtMaker:  jwtMaker,
		publisher: publisher,
	}
}

// Register создает нового пользователя с хэшированием пароля и отправляет
// код подтверждения почты через очередь.
func (s *AuthService) Register(ctx context.Context, req models.DummyRegister) (string, error) {
	hashed, err := password.GetHash(req.Password)
	if err != nil {
		return "", err
	}
	user := models.User{
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: hashed,
	}
	uid, err := s.users.RegisterUser(ctx, user)
	if err != nil {
		return "", err
	}

	if err := s.issueVerification(ctx, uid, req.Email, req.Username); err != nil {
		return "", err
	}
	return uid, nil
}

// Login проверяет пароль, подтверждение почты и отсутствие блокировки,
// затем генерирует JWT.
func (s *AuthService) Login(ctx context.Context, username, rawPassword string) (string, *models.User, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if !user.EmailVerified {
		return "", nil, ErrNotVerified
	}
	if ban, err := s.users.GetBan(ctx, user.UID); err == nil {
		return "", nil, fmt.Errorf("%w: %s", ErrBanned, ban.Reason)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return "", nil, err
	}

	token, err := s.jwtMaker.GenerateToken(user.UID, user.Username, user.IsAdmin)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// VerifyOTP сверяет код подтверждения и помечает почту подтверждённой.
func (s *AuthService) VerifyOTP(ctx context.Context, email, code string) error {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	vc, err := s.users.GetVerificationCode(ctx, user.UID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCodeMismatch
		}
		return err
	}
	if time.Now().After(vc.ExpiresAt) {
		return ErrCodeExpired
	}
	if vc.Code != code {
		return ErrCodeMismatch
	}
	if err := s.users.SetEmailVerified(ctx, user.UID); err != nil {
		return err
	}
	return s.users.DeleteVerificationCode(ctx, user.UID)
}

// VerifyCallback подтверждает почту по ссылке из письма: тот же код,
// что и в OTP-потоке, но переданный в query-параметрах.
func (s *AuthService) VerifyCallback(ctx context.Context, email, code string) error {
	return s.VerifyOTP(ctx, email, code)
}

// ResendVerification выпускает новый код и публикует письмо повторно.
func (s *AuthService) ResendVerification(ctx context.Context, email string) error {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user.EmailVerified {
		return nil
	}
	return s.issueVerification(ctx, user.UID, user.Email, user.Username)
}

// ValidateToken проверяет JWT и возвращает данные пользователя из claims.
func (s *AuthService) ValidateToken(_ context.Context, token string) (*jwt.CustomClaims, error) {
	return s.jwtMaker.ParseToken(token)
}

func (s *AuthService) issueVerification(ctx context.Context, uid, email, username string) error {
	code, err := otp.NewCode()
	if err != nil {
		return err
	}
	vc := models.VerificationCode{
		UserUID:   uid,
		Code:      code,
		ExpiresAt: time.Now().Add(otp.TTL),
	}
	if err := s.users.UpsertVerificationCode(ctx, vc); err != nil {
		return err
	}
	return s.publisher.PublishVerificationEmail(models.VerificationEmail{
		Email:    email,
		Username: username,
		Code:     code,
	})
}
