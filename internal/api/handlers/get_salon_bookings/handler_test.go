package get_salon_bookings

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/bookings/models"
)

type mockService struct{ mock.Mock }

func (m *mockService) GetSalonBookings(ctx context.Context, req *models.GetSalonBookingsRequest) (*models.BookingListResponse, error) {
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
	router.HandleFunc("/api/v1/salons/{salonId}/bookings", NewHandler(svc, nopLogger{}).Handle)

	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set(middleware.UserIDHeader, "500")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestToServiceRequest(t *testing.T) {
	t.Run("single date wins over period", func(t *testing.T) {
		req, err := ToServiceRequest(1, 500, url.Values{
			"date":      {"2025-10-13"},
			"startDate": {"2025-10-01"},
			"masterId":  {"11"},
			"status":    {"pending"},
		})
		require.NoError(t, err)

		day := time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, day, *req.StartDate)
		assert.Equal(t, day, *req.EndDate)
		assert.Equal(t, int64(11), *req.MasterID)
		assert.Equal(t, "pending", *req.Status)
		assert.False(t, req.IncludeInactive)
	})

	t.Run("open period", func(t *testing.T) {
		req, err := ToServiceRequest(1, 500, url.Values{
			"startDate":       {"2025-10-01"},
			"includeInactive": {"true"},
		})
		require.NoError(t, err)

		assert.Equal(t, time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC), *req.StartDate)
		assert.Nil(t, req.EndDate)
		assert.True(t, req.IncludeInactive)
	})

	t.Run("invalid values", func(t *testing.T) {
		for _, q := range []url.Values{
			{"masterId": {"x"}},
			{"date": {"13.10.2025"}},
			{"endDate": {"2025-13-01"}},
			{"includeInactive": {"maybe"}},
		} {
			_, err := ToServiceRequest(1, 500, q)
			assert.Error(t, err, q.Encode())
		}
	})
}

func TestHandle_Success(t *testing.T) {
	svc := &mockService{}
	svc.On("GetSalonBookings", mock.Anything, mock.MatchedBy(func(req *models.GetSalonBookingsRequest) bool {
		return req.SalonID == 1 && req.UserID == 500 && req.StartDate != nil
	})).Return(&models.BookingListResponse{Bookings: []models.BookingResponse{{ID: 3}}}, nil)

	rec := get(svc, "/api/v1/salons/1/bookings?date=2025-10-13")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":3`)
	svc.AssertExpectations(t)
}

func TestHandle_BadQuery(t *testing.T) {
	svc := &mockService{}
	rec := get(svc, "/api/v1/salons/1/bookings?date=tomorrow")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "GetSalonBookings", mock.Anything, mock.Anything)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{err: bookings.ErrAccessDenied, status: http.StatusForbidden},
		{err: bookings.ErrSalonNotFound, status: http.StatusNotFound},
		{err: bookings.ErrInvalidInput, status: http.StatusBadRequest},
		{err: bookings.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			svc := &mockService{}
			svc.On("GetSalonBookings", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := get(svc, "/api/v1/salons/1/bookings")

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
