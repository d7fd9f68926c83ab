package services_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mrxception/ofmreddit/internal/models"
	services "github.com/mrxception/ofmreddit/internal/services/subscription"
)

type SubRepoMock struct {
	mock.Mock
}

func (m *SubRepoMock) UpsertLatestEntry(ctx context.Context, entry models.UserSubscription) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *SubRepoMock) GetCurrentSubscription(ctx context.Context, userUID string) (*models.SubscriptionView, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SubscriptionView), args.Error(1)
}

func (m *SubRepoMock) ListCurrentSubscriptions(ctx context.Context, limit, offset int) ([]*models.SubscriptionView, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.SubscriptionView), args.Error(1)
}

func makeLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestSubscriptionService_Upsert(t *testing.T) {
	const userUID = "3f6f6c2a-9f1e-4c6b-8f5f-2d3e4a5b6c7d"
	badCooldown := "15"
	goodCooldown := "10"

	tests := []struct {
		name         string
		req          models.DummyUpsertSubscription
		setupMocks   func(r *SubRepoMock)
		wantErr      error
		wantErrMsg   string
		wantCooldown string
	}{
		{
			name: "некорректный starts_at",
			req: models.DummyUpsertSubscription{
				UserUID:  userUID,
				TierID:   1,
				StartsAt: "not-a-date",
			},
			setupMocks: func(_ *SubRepoMock) {},
			wantErrMsg: "invalid starts_at",
		},
		{
			name: "cooldown вне допустимого набора",
			req: models.DummyUpsertSubscription{
				UserUID:  userUID,
				TierID:   1,
				StartsAt: "2025-01-01T00:00:00Z",
				Cooldown: &badCooldown,
			},
			setupMocks: func(_ *SubRepoMock) {},
			wantErr:    services.ErrUnknownCooldown,
		},
		{
			name: "без cooldown используется 0",
			req: models.DummyUpsertSubscription{
				UserUID:  userUID,
				TierID:   2,
				StartsAt: "2025-01-01T00:00:00Z",
			},
			setupMocks: func(r *SubRepoMock) {
				r.On("UpsertLatestEntry", mock.Anything, mock.MatchedBy(func(e models.UserSubscription) bool {
					return e.Cooldown == "0" && e.TierID == 2 && e.EndsAt == nil
				})).Return(nil).Once()
				r.On("GetCurrentSubscription", mock.Anything, userUID).
					Return(&models.SubscriptionView{
						UserSubscription: models.UserSubscription{UserUID: userUID, TierID: 2, Cooldown: "0"},
						TierName:         "Creator",
					}, nil).Once()
			},
			wantCooldown: "0",
		},
		{
			name: "явный cooldown сохраняется",
			req: models.DummyUpsertSubscription{
				UserUID:  userUID,
				TierID:   3,
				StartsAt: "2025-01-01T00:00:00Z",
				Cooldown: &goodCooldown,
			},
			setupMocks: func(r *SubRepoMock) {
				r.On("UpsertLatestEntry", mock.Anything, mock.MatchedBy(func(e models.UserSubscription) bool {
					return e.Cooldown == "10"
				})).Return(nil).Once()
				r.On("GetCurrentSubscription", mock.Anything, userUID).
					Return(&models.SubscriptionView{
						UserSubscription: models.UserSubscription{UserUID: userUID, TierID: 3, Cooldown: "10"},
						TierName:         "Agency",
					}, nil).Once()
			},
			wantCooldown: "10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(SubRepoMock)
			tt.setupMocks(repo)

			svc := services.NewSubscriptionService(repo, makeLogger())
			got, err := svc.Upsert(context.Background(), tt.req)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantErrMsg != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.wantCooldown, got.Cooldown)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestSubscriptionService_ListAll(t *testing.T) {
	repo := new(SubRepoMock)
	repo.On("ListCurrentSubscriptions", mock.Anything, 50, 0).
		Return([]*models.SubscriptionView{
			{TierName: "Free"},
			{TierName: "Creator"},
		}, nil).Once()

	svc := services.NewSubscriptionService(repo, makeLogger())
	got, err := svc.ListAll(context.Background(), 50, 0)

	require.NoError(t, err)
	assert.Len(t, got, 2)
	repo.AssertExpectations(t)
}
