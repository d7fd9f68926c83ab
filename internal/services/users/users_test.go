package services_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mrxception/ofmreddit/internal/models"
	services "github.com/mrxception/ofmreddit/internal/services/users"
)

type UserRepoMock struct {
	mock.Mock
}

func (m *UserRepoMock) ListUsers(ctx context.Context, limit, offset int) ([]*models.UserInfo, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.UserInfo), args.Error(1)
}

func (m *UserRepoMock) RenameUser(ctx context.Context, userUID, username string) (int, error) {
	args := m.Called(ctx, userUID, username)
	return args.Int(0), args.Error(1)
}

func (m *UserRepoMock) DeleteUser(ctx context.Context, userUID string) (int, error) {
	args := m.Called(ctx, userUID)
	return args.Int(0), args.Error(1)
}

func (m *UserRepoMock) UpsertBan(ctx context.Context, userUID, reason string) error {
	args := m.Called(ctx, userUID, reason)
	return args.Error(0)
}

func (m *UserRepoMock) RemoveBan(ctx context.Context, userUID string) (int, error) {
	args := m.Called(ctx, userUID)
	return args.Int(0), args.Error(1)
}

func makeLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestUserAdminService_Ban(t *testing.T) {
	tests := []struct {
		name       string
		adminUID   string
		userUID    string
		setupMocks func(r *UserRepoMock)
		wantErr    error
		wantAnyErr bool
	}{
		{
			name:       "самоблокировка запрещена",
			adminUID:   "admin-uid",
			userUID:    "admin-uid",
			setupMocks: func(_ *UserRepoMock) {},
			wantErr:    services.ErrSelfAction,
		},
		{
			name:     "успешная блокировка",
			adminUID: "admin-uid",
			userUID:  "user-uid",
			setupMocks: func(r *UserRepoMock) {
				r.On("UpsertBan", mock.Anything, "user-uid", "spam").Return(nil).Once()
			},
		},
		{
			name:     "ошибка хранилища пробрасывается",
			adminUID: "admin-uid",
			userUID:  "user-uid",
			setupMocks: func(r *UserRepoMock) {
				r.On("UpsertBan", mock.Anything, "user-uid", "spam").
					Return(errors.New("db error")).Once()
			},
			wantAnyErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			tt.setupMocks(repo)

			svc := services.NewUserAdminService(repo, makeLogger())
			err := svc.Ban(context.Background(), tt.adminUID, tt.userUID, "spam")

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantAnyErr:
				assert.Error(t, err)
			default:
				assert.NoError(t, err)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestUserAdminService_Unban(t *testing.T) {
	t.Run("снятие несуществующей блокировки", func(t *testing.T) {
		repo := new(UserRepoMock)
		repo.On("RemoveBan", mock.Anything, "user-uid").Return(0, nil).Once()

		svc := services.NewUserAdminService(repo, makeLogger())
		err := svc.Unban(context.Background(), "user-uid")

		assert.ErrorIs(t, err, services.ErrNoSuchUser)
	})

	t.Run("успешное снятие", func(t *testing.T) {
		repo := new(UserRepoMock)
		repo.On("RemoveBan", mock.Anything, "user-uid").Return(1, nil).Once()

		svc := services.NewUserAdminService(repo, makeLogger())
		err := svc.Unban(context.Background(), "user-uid")

		assert.NoError(t, err)
	})
}

func TestUserAdminService_Delete(t *testing.T) {
	t.Run("самоудаление запрещено", func(t *testing.T) {
		repo := new(UserRepoMock)

		svc := services.NewUserAdminService(repo, makeLogger())
		err := svc.Delete(context.Background(), "admin-uid", "admin-uid")

		assert.ErrorIs(t, err, services.ErrSelfAction)
	})

	t.Run("удаление несуществующего пользователя", func(t *testing.T) {
		repo := new(UserRepoMock)
		repo.On("DeleteUser", mock.Anything, "missing-uid").Return(0, nil).Once()

		svc := services.NewUserAdminService(repo, makeLogger())
		err := svc.Delete(context.Background(), "admin-uid", "missing-uid")

		assert.ErrorIs(t, err, services.ErrNoSuchUser)
	})

	t.Run("успешное удаление", func(t *testing.T) {
		repo := new(UserRepoMock)
		repo.On("DeleteUser", mock.Anything, "user-uid").Return(1, nil).Once()

		svc := services.NewUserAdminService(repo, makeLogger())
		err := svc.Delete(context.Background(), "admin-uid", "user-uid")

		assert.NoError(t, err)
	})
}

func TestUserAdminService_Rename(t *testing.T) {
	t.Run("нет такого пользователя", func(t *testing.T) {
		repo := new(UserRepoMock)
		repo.On("RenameUser", mock.Anything, "missing-uid", "newname").Return(0, nil).Once()

		svc := services.NewUserAdminService(repo, makeLogger())
		err := svc.Rename(context.Background(), "missing-uid", "newname")

		assert.ErrorIs(t, err, services.ErrNoSuchUser)
	})

	t.Run("успешное переименование", func(t *testing.T) {
		repo := new(UserRepoMock)
		repo.On("RenameUser", mock.Anything, "user-uid", "newname").Return(1, nil).Once()

		svc := services.NewUserAdminService(repo, makeLogger())
		err := svc.Rename(context.Background(), "user-uid", "newname")

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})
}
