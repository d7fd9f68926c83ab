package upsert

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/mrxception/ofmreddit/internal/models"
	subservice "github.com/mrxception/ofmreddit/internal/services/subscription"
)

type SubscriptionServiceMock struct {
	mock.Mock
}

func (m *SubscriptionServiceMock) Upsert(ctx context.Context, req models.DummyUpsertSubscription) (*models.SubscriptionView, error) {
	args := m.Called(ctx, req)
	view, _ := args.Get(0).(*models.SubscriptionView)
	return view, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestUpsertHandler_ServeHTTP(t *testing.T) {
	serviceMock := new(SubscriptionServiceMock)
	logger := newNoopLogger()

	handler := New(logger, serviceMock)

	const userUID = "3f6f6c2a-9f1e-4c6b-8f5f-2d3e4a5b6c7d"
	validReq := models.DummyUpsertSubscription{
		UserUID:  userUID,
		TierID:   2,
		StartsAt: "2025-01-01T00:00:00Z",
	}

	tests := []struct {
		name           string
		requestBody    interface{}
		mockView       *models.SubscriptionView
		mockErr        error
		wantStatusCode int
		wantError      string
		wantStatus     string
	}{
		{
			name:        "valid upsert",
			requestBody: validReq,
			mockView: &models.SubscriptionView{
				UserSubscription: models.UserSubscription{UserUID: userUID, TierID: 2, Cooldown: "0"},
				TierName:         "Creator",
			},
			wantStatusCode: http.StatusOK,
			wantStatus:     "OK",
		},
		{
			name:           "invalid json body",
			requestBody:    "not a json",
			wantStatusCode: http.StatusBadRequest,
			wantError:      "invalid request body",
			wantStatus:     "Error",
		},
		{
			name: "validation error - not a uuid",
			requestBody: models.DummyUpsertSubscription{
				UserUID:  "not-a-uuid",
				TierID:   2,
				StartsAt: "2025-01-01T00:00:00Z",
			},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      "field UserUID can contain only uuid",
			wantStatus:     "Error",
		},
		{
			name:           "unknown cooldown",
			requestBody:    validReq,
			mockErr:        subservice.ErrUnknownCooldown,
			wantStatusCode: http.StatusBadRequest,
			wantError:      "unknown cooldown value",
			wantStatus:     "Error",
		},
		{
			name:           "service error",
			requestBody:    validReq,
			mockErr:        errors.New("invalid starts_at"),
			wantStatusCode: http.StatusBadRequest,
			wantError:      "could not upsert subscription: invalid starts_at",
			wantStatus:     "Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock.ExpectedCalls = nil
			serviceMock.Calls = nil

			if tt.mockView != nil || tt.mockErr != nil {
				serviceMock.On("Upsert", mock.Anything, tt.requestBody.(models.DummyUpsertSubscription)).
					Return(tt.mockView, tt.mockErr).Once()
			}

			var bodyBytes []byte
			var err error
			switch v := tt.requestBody.(type) {
			case string:
				bodyBytes = []byte(v)
			default:
				bodyBytes, err = json.Marshal(tt.requestBody)
				if err != nil {
					t.Fatal(err)
				}
			}

			req := httptest.NewRequest(http.MethodPut, "/admin/subscriptions", bytes.NewReader(bodyBytes))
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))

			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			err = json.NewDecoder(rec.Body).Decode(&got)
			assert.NoError(t, err)

			assert.Equal(t, tt.wantStatus, got["status"])

			if tt.wantError != "" {
				errStr, ok := got["error"].(string)
				assert.True(t, ok)
				assert.Equal(t, tt.wantError, errStr)
			} else {
				assert.Nil(t, got["error"])
				data, ok := got["data"].(map[string]any)
				assert.True(t, ok)
				assert.Equal(t, userUID, data["user_uid"])
				assert.Equal(t, "Creator", data["tier_name"])
			}

			if tt.mockView != nil || tt.mockErr != nil {
				serviceMock.AssertExpectations(t)
			}
		})
	}
}
