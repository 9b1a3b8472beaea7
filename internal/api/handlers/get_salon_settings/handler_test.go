package get_salon_settings

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-SalonBookingService/internal/service/salon/models"
)

type mockService struct{ mock.Mock }

func (m *mockService) GetSettings(ctx context.Context, salonID int64) (*models.SettingsResponse, error) {
	args := m.Called(ctx, salonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SettingsResponse), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func get(svc *mockService, path string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/salons/{salonId}/settings", NewHandler(svc, nopLogger{}).Handle)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHandle_PublicDefaults(t *testing.T) {
	svc := &mockService{}
	svc.On("GetSettings", mock.Anything, int64(3)).Return(&models.SettingsResponse{
		SalonID:             3,
		ScheduleMode:        "weekly",
		SlotIntervalMinutes: 30,
		Timezone:            "Europe/Moscow",
		IsDefault:           true,
	}, nil)

	rec := get(svc, "/api/v1/salons/3/settings")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"isDefault":true`)
	assert.Contains(t, rec.Body.String(), `"slotIntervalMinutes":30`)
	assert.NotContains(t, rec.Body.String(), "updatedAt")
	svc.AssertExpectations(t)
}

func TestHandle_Errors(t *testing.T) {
	t.Run("invalid salon id", func(t *testing.T) {
		svc := &mockService{}
		rec := get(svc, "/api/v1/salons/x/settings")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("storage failure", func(t *testing.T) {
		svc := &mockService{}
		svc.On("GetSettings", mock.Anything, int64(3)).Return(nil, errors.New("db down"))
		rec := get(svc, "/api/v1/salons/3/settings")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "db down")
	})
}
