package get_user_bookings

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-SalonBookingService/pkg/ptr"
)

type mockService struct{ mock.Mock }

func (m *mockService) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingListResponse), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func get(svc *mockService, path string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.Use(middleware.Auth)
	router.HandleFunc("/api/v1/users/{userId}/bookings", NewHandler(svc, nopLogger{}).Handle)

	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set(middleware.UserIDHeader, "100")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandle_ReturnsList(t *testing.T) {
	svc := &mockService{}
	svc.On("GetUserBookings", mock.Anything, &models.GetUserBookingsRequest{
		RequesterID: 100,
		UserID:      100,
		Status:      ptr.Ptr("confirmed"),
	}).Return(&models.BookingListResponse{Bookings: []models.BookingResponse{
		{ID: 1, Status: "confirmed"},
		{ID: 2, Status: "confirmed"},
	}}, nil)

	rec := get(svc, "/api/v1/users/100/bookings?status=confirmed")

	require.Equal(t, http.StatusOK, rec.Code)
	var body []models.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 2)
	assert.Equal(t, int64(2), body[1].ID)
	svc.AssertExpectations(t)
}

func TestHandle_InvalidUserID(t *testing.T) {
	svc := &mockService{}
	rec := get(svc, "/api/v1/users/me/bookings")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "GetUserBookings", mock.Anything, mock.Anything)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{err: bookings.ErrAccessDenied, status: http.StatusForbidden},
		{err: bookings.ErrInvalidInput, status: http.StatusBadRequest},
		{err: bookings.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			svc := &mockService{}
			svc.On("GetUserBookings", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := get(svc, "/api/v1/users/200/bookings")

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
