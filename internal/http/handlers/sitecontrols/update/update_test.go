package update

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
	controlsservice "github.com/mrxception/ofmreddit/internal/services/sitecontrols"
)

type ControlsServiceMock struct {
	mock.Mock
}

func (m *ControlsServiceMock) Update(ctx context.Context, req models.DummyUpdateSiteControls) (*models.SiteControls, error) {
	args := m.Called(ctx, req)
	controls, _ := args.Get(0).(*models.SiteControls)
	return controls, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestUpdateHandler_ServeHTTP(t *testing.T) {
	serviceMock := new(ControlsServiceMock)
	logger := newNoopLogger()

	handler := New(logger, serviceMock)

	cooldown := "10"
	badCooldown := "15"
	showSub := 0

	tests := []struct {
		name           string
		requestBody    interface{}
		mockControls   *models.SiteControls
		mockErr        error
		wantStatusCode int
		wantError      string
		wantStatus     string
	}{
		{
			name:        "valid partial update",
			requestBody: models.DummyUpdateSiteControls{DefaultCooldown: &cooldown},
			mockControls: &models.SiteControls{
				ID:              1,
				ShowSub:         1,
				DefaultCooldown: "10",
				Revision:        2,
			},
			wantStatusCode: http.StatusOK,
			wantStatus:     "OK",
		},
		{
			name:        "valid full update",
			requestBody: models.DummyUpdateSiteControls{ShowSub: &showSub, DefaultCooldown: &cooldown},
			mockControls: &models.SiteControls{
				ID:              1,
				ShowSub:         0,
				DefaultCooldown: "10",
				Revision:        3,
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
			name:           "validation error - cooldown outside set",
			requestBody:    models.DummyUpdateSiteControls{DefaultCooldown: &badCooldown},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      "field DefaultCooldown has a value outside the allowed set",
			wantStatus:     "Error",
		},
		{
			name:           "empty update",
			requestBody:    models.DummyUpdateSiteControls{},
			mockErr:        controlsservice.ErrEmptyUpdate,
			wantStatusCode: http.StatusBadRequest,
			wantError:      "no recognized fields to update",
			wantStatus:     "Error",
		},
		{
			name:           "service error",
			requestBody:    models.DummyUpdateSiteControls{DefaultCooldown: &cooldown},
			mockErr:        errors.New("db error"),
			wantStatusCode: http.StatusInternalServerError,
			wantError:      "could not update site controls",
			wantStatus:     "Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock.ExpectedCalls = nil
			serviceMock.Calls = nil

			if tt.mockControls != nil || tt.mockErr != nil {
				serviceMock.On("Update", mock.Anything, tt.requestBody.(models.DummyUpdateSiteControls)).
					Return(tt.mockControls, tt.mockErr).Once()
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

			req := httptest.NewRequest(http.MethodPut, "/admin/site-controls", bytes.NewReader(bodyBytes))
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
				data, ok := got["data"].(map[string]any)
				assert.True(t, ok)
				assert.Equal(t, tt.mockControls.DefaultCooldown, data["default_cooldown"])
				assert.Equal(t, float64(tt.mockControls.Revision), data["revision"])
			}

			if tt.mockControls != nil || tt.mockErr != nil {
				serviceMock.AssertExpectations(t)
			}
		})
	}
}
