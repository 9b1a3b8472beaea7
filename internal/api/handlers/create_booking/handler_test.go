package create_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBookingService/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-SalonBookingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-SalonBookingService/pkg/ptr"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

type mockUseCase struct{ mock.Mock }

func (m *mockUseCase) Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	args := m.Called(ctx, req)
	if v := args.Get(0); v != nil {
		return v.(*createBooking.Response), args.Error(1)
	}
	return nil, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const validBody = `{
	"salonId": 1,
	"serviceIds": [10, 11],
	"bookingDate": "2025-10-13",
	"startTime": "10:00",
	"clientPhone": "+7 (900) 000-00-01",
	"clientName": "Анна"
}`

func post(uc *mockUseCase, body string, userID int64) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	if userID != 0 {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	rec := httptest.NewRecorder()
	NewHandler(uc, nopLogger{}).Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	uc := &mockUseCase{}
	created := time.Date(2025, 10, 12, 9, 0, 0, 0, time.UTC)
	uc.On("Execute", mock.Anything, &createBooking.Request{
		UserID:      500,
		SalonID:     1,
		ServiceIDs:  []int64{10, 11},
		Date:        time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC),
		StartTime:   types.MustTimeOfDay("10:00"),
		ClientPhone: "+7 (900) 000-00-01",
		ClientName:  "Анна",
	}).Return(&createBooking.Response{
		ID:            77,
		SalonID:       1,
		UserID:        500,
		ClientPhone:   "79000000001",
		ClientName:    "Анна",
		BookingDate:   time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC),
		StartTime:     types.MustTimeOfDay("10:00"),
		ServiceIDs:    []int64{10, 11},
		TotalDuration: 90,
		MasterID:      ptr.Ptr(int64(2)),
		MasterName:    ptr.Ptr("Ольга"),
		Assignment:    createBooking.AssignmentRoundRobin,
		Status:        "pending",
		Services: []createBooking.ServiceItem{
			{ID: 10, Name: "Стрижка", Price: 1500, DurationMinutes: 60},
			{ID: 11, Name: "Укладка", Price: 800, DurationMinutes: 30},
		},
		TotalPrice: 2300,
		CreatedAt:  created,
		UpdatedAt:  created,
	}, nil)

	rec := post(uc, validBody, 500)

	require.Equal(t, http.StatusCreated, rec.Code)
	var body BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(77), body.ID)
	assert.Equal(t, "11:30", body.EndTime)
	assert.Equal(t, "round_robin", body.Assignment)
	assert.Equal(t, 2300.0, body.TotalPrice)
	assert.Len(t, body.Services, 2)
	uc.AssertExpectations(t)
}

func TestHandle_RequestErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		userID int64
		status int
	}{
		{name: "no user", body: validBody, status: http.StatusUnauthorized},
		{name: "malformed json", body: `{"salonId":`, userID: 500, status: http.StatusBadRequest},
		{name: "unknown field", body: `{"salonId":1,"carId":3}`, userID: 500, status: http.StatusBadRequest},
		{name: "bad date", body: `{"salonId":1,"bookingDate":"13.10.2025","startTime":"10:00"}`, userID: 500, status: http.StatusBadRequest},
		{name: "bad time", body: `{"salonId":1,"bookingDate":"2025-10-13","startTime":"25:00"}`, userID: 500, status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			rec := post(uc, tt.body, tt.userID)
			assert.Equal(t, tt.status, rec.Code)
			uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
		})
	}
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{err: createBooking.ErrSlotTaken, status: http.StatusConflict},
		{err: createBooking.ErrSlotNotAvailable, status: http.StatusConflict},
		{err: createBooking.ErrNoMasterAvailable, status: http.StatusConflict},
		{err: createBooking.ErrClientBookingLimitExceeded, status: http.StatusUnprocessableEntity},
		{err: createBooking.ErrSalonNotFound, status: http.StatusNotFound},
		{err: createBooking.ErrServiceNotFound, status: http.StatusNotFound},
		{err: createBooking.ErrMasterNotFound, status: http.StatusNotFound},
		{err: createBooking.ErrSalonClosed, status: http.StatusBadRequest},
		{err: createBooking.ErrInvalidDate, status: http.StatusBadRequest},
		{err: createBooking.ErrDateTooFarInFuture, status: http.StatusBadRequest},
		{err: createBooking.ErrInvalidInput, status: http.StatusBadRequest},
		{err: createBooking.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			uc := &mockUseCase{}
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := post(uc, validBody, 500)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestHandle_ClientLimitMessage(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.Anything).Return(nil,
		fmt.Errorf("%w: you already have 3 upcoming bookings in this salon", createBooking.ErrClientBookingLimitExceeded))

	rec := post(uc, validBody, 500)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var body handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "you already have 3 upcoming bookings in this salon", body.Message)
}
