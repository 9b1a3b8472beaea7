package update_salon_settings

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/salon"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/salon/models"
)

type mockService struct{ mock.Mock }

func (m *mockService) UpdateSettings(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SettingsResponse), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func put(svc *mockService, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.Use(middleware.Auth)
	router.HandleFunc("/api/v1/salons/{salonId}/settings", NewHandler(svc, nopLogger{}).Handle)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/salons/3/settings", strings.NewReader(body))
	req.Header.Set(middleware.UserIDHeader, "500")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandle_PartialUpdate(t *testing.T) {
	svc := &mockService{}
	svc.On("UpdateSettings", mock.Anything, mock.MatchedBy(func(req *models.UpdateSettingsRequest) bool {
		return req.UserID == 500 && req.SalonID == 3 &&
			req.BufferMinutes != nil && *req.BufferMinutes == 10 &&
			req.ScheduleMode == nil && req.Timezone == nil
	})).Return(&models.SettingsResponse{SalonID: 3, BufferMinutes: 10}, nil)

	rec := put(svc, `{"bufferMinutes":10}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"bufferMinutes":10`)
	svc.AssertExpectations(t)
}

func TestHandle_RejectsUnknownField(t *testing.T) {
	svc := &mockService{}
	rec := put(svc, `{"salonId":4}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "UpdateSettings", mock.Anything, mock.Anything)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{err: salon.ErrAccessDenied, status: http.StatusForbidden},
		{err: salon.ErrSalonNotFound, status: http.StatusNotFound},
		{err: fmt.Errorf("%w: slotIntervalMinutes must be in 5..240", salon.ErrInvalidInput), status: http.StatusBadRequest},
		{err: salon.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			svc := &mockService{}
			svc.On("UpdateSettings", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := put(svc, `{"slotIntervalMinutes":1}`)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
