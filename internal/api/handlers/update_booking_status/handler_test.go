package update_booking_status

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/bookings/models"
)

type mockService struct{ mock.Mock }

func (m *mockService) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) error {
	return m.Called(ctx, bookingID, req).Error(0)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func patch(svc *mockService, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.Use(middleware.Auth)
	router.HandleFunc("/api/v1/bookings/{bookingId}/status", NewHandler(svc, nopLogger{}).Handle)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/5/status", strings.NewReader(body))
	req.Header.Set(middleware.UserIDHeader, "201")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Accept(t *testing.T) {
	svc := &mockService{}
	svc.On("UpdateStatus", mock.Anything, int64(5), &models.UpdateStatusRequest{UserID: 201, Status: "confirmed"}).Return(nil)

	rec := patch(svc, `{"status":"confirmed"}`)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	svc.AssertExpectations(t)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{err: bookings.ErrBookingNotFound, status: http.StatusNotFound},
		{err: bookings.ErrAccessDenied, status: http.StatusForbidden},
		{err: bookings.ErrInvalidInput, status: http.StatusBadRequest},
		{err: bookings.ErrInvalidTransition, status: http.StatusConflict},
		{err: bookings.ErrSlotTaken, status: http.StatusConflict},
		{err: bookings.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			svc := &mockService{}
			svc.On("UpdateStatus", mock.Anything, int64(5), mock.Anything).Return(tt.err)

			rec := patch(svc, `{"status":"completed"}`)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
