package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	customjwt "github.com/mrxception/ofmreddit/internal/lib/jwt"
	"github.com/mrxception/ofmreddit/internal/lib/password"
	"github.com/mrxception/ofmreddit/internal/models"
	services "github.com/mrxception/ofmreddit/internal/services/auth"
	"github.com/mrxception/ofmreddit/internal/storage/repository"
)

// Мок для UserRepository
type UserRepoMock struct {
	mock.Mock
}

func (m *UserRepoMock) RegisterUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *UserRepoMock) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepoMock) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepoMock) SetEmailVerified(ctx context.Context, userUID string) error {
	args := m.Called(ctx, userUID)
	return args.Error(0)
}

func (m *UserRepoMock) GetBan(ctx context.Context, userUID string) (*models.BannedUser, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BannedUser), args.Error(1)
}

func (m *UserRepoMock) UpsertVerificationCode(ctx context.Context, vc models.VerificationCode) error {
	args := m.Called(ctx, vc)
	return args.Error(0)
}

func (m *UserRepoMock) GetVerificationCode(ctx context.Context, userUID string) (*models.VerificationCode, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VerificationCode), args.Error(1)
}

func (m *UserRepoMock) DeleteVerificationCode(ctx context.Context, userUID string) error {
	args := m.Called(ctx, userUID)
	return args.Error(0)
}

// Мок для jwt.Maker
type JwtMakerMock struct {
	mock.Mock
}

func (m *JwtMakerMock) GenerateToken(userUID, username string, isAdmin bool) (string, error) {
	args := m.Called(userUID, username, isAdmin)
	return args.String(0), args.Error(1)
}

func (m *JwtMakerMock) ParseToken(token string) (*customjwt.CustomClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customjwt.CustomClaims), args.Error(1)
}

// Мок для MailPublisher
type MailPublisherMock struct {
	mock.Mock
}

func (m *MailPublisherMock) PublishVerificationEmail(msg models.VerificationEmail) error {
	args := m.Called(msg)
	return args.Error(0)
}

func TestAuthService_Register(t *testing.T) {
	repo := new(UserRepoMock)
	maker := new(JwtMakerMock)
	publisher := new(MailPublisherMock)

	repo.On("RegisterUser", mock.Anything, mock.MatchedBy(func(user models.User) bool {
		return user.Email == "test@example.com" &&
			user.Username == "testuser" &&
			user.PasswordHash != "" &&
			user.PasswordHash != "password123"
	})).Return("some-uuid-string", nil).Once()
	repo.On("UpsertVerificationCode", mock.Anything, mock.MatchedBy(func(vc models.VerificationCode) bool {
		return vc.UserUID == "some-uuid-string" && len(vc.Code) == 6 && vc.ExpiresAt.After(time.Now())
	})).Return(nil).Once()
	publisher.On("PublishVerificationEmail", mock.MatchedBy(func(msg models.VerificationEmail) bool {
		return msg.Email == "test@example.com" && msg.Username == "testuser" && len(msg.Code) == 6
	})).Return(nil).Once()

	svc := services.NewAuthService(repo, maker, publisher)
	uid, err := svc.Register(context.Background(), models.DummyRegister{
		Email:    "test@example.com",
		Username: "testuser",
		Password: "password123",
	})

	require.NoError(t, err)
	assert.Equal(t, "some-uuid-string", uid)
	repo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestAuthService_Login(t *testing.T) {
	hash, err := password.GetHash("password123")
	require.NoError(t, err)

	verifiedUser := &models.User{
		UID:           "user-uid",
		Username:      "testuser",
		PasswordHash:  hash,
		EmailVerified: true,
	}

	tests := []struct {
		name       string
		password   string
		setupMocks func(r *UserRepoMock, j *JwtMakerMock)
		wantErr    error
		wantToken  string
	}{
		{
			name:     "неизвестный пользователь",
			password: "password123",
			setupMocks: func(r *UserRepoMock, _ *JwtMakerMock) {
				r.On("GetUserByUsername", mock.Anything, "testuser").
					Return(nil, repository.ErrNotFound).Once()
			},
			wantErr: services.ErrInvalidCredentials,
		},
		{
			name:     "неверный пароль",
			password: "wrongpassword",
			setupMocks: func(r *UserRepoMock, _ *JwtMakerMock) {
				r.On("GetUserByUsername", mock.Anything, "testuser").
					Return(verifiedUser, nil).Once()
			},
			wantErr: services.ErrInvalidCredentials,
		},
		{
			name:     "почта не подтверждена",
			password: "password123",
			setupMocks: func(r *UserRepoMock, _ *JwtMakerMock) {
				unverified := *verifiedUser
				unverified.EmailVerified = false
				r.On("GetUserByUsername", mock.Anything, "testuser").
					Return(&unverified, nil).Once()
			},
			wantErr: services.ErrNotVerified,
		},
		{
			name:     "заблокированный пользователь",
			password: "password123",
			setupMocks: func(r *UserRepoMock, _ *JwtMakerMock) {
				r.On("GetUserByUsername", mock.Anything, "testuser").
					Return(verifiedUser, nil).Once()
				r.On("GetBan", mock.Anything, "user-uid").
					Return(&models.BannedUser{UserUID: "user-uid", Reason: "spam"}, nil).Once()
			},
			wantErr: services.ErrBanned,
		},
		{
			name:     "успешный вход",
			password: "password123",
			setupMocks: func(r *UserRepoMock, j *JwtMakerMock) {
				r.On("GetUserByUsername", mock.Anything, "testuser").
					Return(verifiedUser, nil).Once()
				r.On("GetBan", mock.Anything, "user-uid").
					Return(nil, repository.ErrNotFound).Once()
				j.On("GenerateToken", "user-uid", "testuser", false).
					Return("jwt-token", nil).Once()
			},
			wantToken: "jwt-token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			maker := new(JwtMakerMock)
			tt.setupMocks(repo, maker)

			svc := services.NewAuthService(repo, maker, new(MailPublisherMock))
			token, user, err := svc.Login(context.Background(), "testuser", tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, token)
			assert.Equal(t, "user-uid", user.UID)
			repo.AssertExpectations(t)
			maker.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login_BannedReason(t *testing.T) {
	hash, err := password.GetHash("password123")
	require.NoError(t, err)

	repo := new(UserRepoMock)
	repo.On("GetUserByUsername", mock.Anything, "testuser").
		Return(&models.User{UID: "user-uid", Username: "testuser", PasswordHash: hash, EmailVerified: true}, nil).Once()
	repo.On("GetBan", mock.Anything, "user-uid").
		Return(&models.BannedUser{UserUID: "user-uid", Reason: "repeated abuse"}, nil).Once()

	svc := services.NewAuthService(repo, new(JwtMakerMock), new(MailPublisherMock))
	_, _, err = svc.Login(context.Background(), "testuser", "password123")

	require.Error(t, err)
	assert.ErrorIs(t, err, services.ErrBanned)
	assert.Contains(t, err.Error(), "repeated abuse")
}

func TestAuthService_VerifyOTP(t *testing.T) {
	user := &models.User{UID: "user-uid", Email: "test@example.com"}

	tests := []struct {
		name       string
		code       string
		setupMocks func(r *UserRepoMock)
		wantErr    error
	}{
		{
			name: "код не выпускался",
			code: "123456",
			setupMocks: func(r *UserRepoMock) {
				r.On("GetUserByEmail", mock.Anything, "test@example.com").Return(user, nil).Once()
				r.On("GetVerificationCode", mock.Anything, "user-uid").
					Return(nil, repository.ErrNotFound).Once()
			},
			wantErr: services.ErrCodeMismatch,
		},
		{
			name: "просроченный код",
			code: "123456",
			setupMocks: func(r *UserRepoMock) {
				r.On("GetUserByEmail", mock.Anything, "test@example.com").Return(user, nil).Once()
				r.On("GetVerificationCode", mock.Anything, "user-uid").
					Return(&models.VerificationCode{
						UserUID:   "user-uid",
						Code:      "123456",
						ExpiresAt: time.Now().Add(-time.Minute),
					}, nil).Once()
			},
			wantErr: services.ErrCodeExpired,
		},
		{
			name: "неверный код",
			code: "000000",
			setupMocks: func(r *UserRepoMock) {
				r.On("GetUserByEmail", mock.Anything, "test@example.com").Return(user, nil).Once()
				r.On("GetVerificationCode", mock.Anything, "user-uid").
					Return(&models.VerificationCode{
						UserUID:   "user-uid",
						Code:      "123456",
						ExpiresAt: time.Now().Add(10 * time.Minute),
					}, nil).Once()
			},
			wantErr: services.ErrCodeMismatch,
		},
		{
			name: "успешное подтверждение",
			code: "123456",
			setupMocks: func(r *UserRepoMock) {
				r.On("GetUserByEmail", mock.Anything, "test@example.com").Return(user, nil).Once()
				r.On("GetVerificationCode", mock.Anything, "user-uid").
					Return(&models.VerificationCode{
						UserUID:   "user-uid",
						Code:      "123456",
						ExpiresAt: time.Now().Add(10 * time.Minute),
					}, nil).Once()
				r.On("SetEmailVerified", mock.Anything, "user-uid").Return(nil).Once()
				r.On("DeleteVerificationCode", mock.Anything, "user-uid").Return(nil).Once()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			tt.setupMocks(repo)

			svc := services.NewAuthService(repo, new(JwtMakerMock), new(MailPublisherMock))
			err := svc.VerifyOTP(context.Background(), "test@example.com", tt.code)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestAuthService_ResendVerification(t *testing.T) {
	t.Run("подтверждённая почта не переотправляется", func(t *testing.T) {
		repo := new(UserRepoMock)
		publisher := new(MailPublisherMock)
		repo.On("GetUserByEmail", mock.Anything, "test@example.com").
			Return(&models.User{UID: "user-uid", Email: "test@example.com", EmailVerified: true}, nil).Once()

		svc := services.NewAuthService(repo, new(JwtMakerMock), publisher)
		err := svc.ResendVerification(context.Background(), "test@example.com")

		require.NoError(t, err)
		publisher.AssertNotCalled(t, "PublishVerificationEmail", mock.Anything)
	})

	t.Run("новый код выпускается и публикуется", func(t *testing.T) {
		repo := new(UserRepoMock)
		publisher := new(MailPublisherMock)
		repo.On("GetUserByEmail", mock.Anything, "test@example.com").
			Return(&models.User{UID: "user-uid", Email: "test@example.com", Username: "testuser"}, nil).Once()
		repo.On("UpsertVerificationCode", mock.Anything, mock.Anything).Return(nil).Once()
		publisher.On("PublishVerificationEmail", mock.Anything).Return(nil).Once()

		svc := services.NewAuthService(repo, new(JwtMakerMock), publisher)
		err := svc.ResendVerification(context.Background(), "test@example.com")

		require.NoError(t, err)
		repo.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})
}
