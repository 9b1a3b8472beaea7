package get_salon_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/bookings"
)

const (
	msgInvalidSalonID = "некорректный ID салона"
	msgMissingUserID  = "отсутствует ID пользователя"
	msgInvalidParams  = "некорректные параметры запроса"
	msgSalonNotFound  = "салон не найден"
	msgForbidden      = "записи салона доступны только персоналу салона"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/salons/{salonId}/bookings
// Query params: masterId, status, date | startDate+endDate, includeInactive (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	salonID, err := strconv.ParseInt(mux.Vars(r)["salonId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /salons/{id}/bookings - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	serviceReq, err := ToServiceRequest(salonID, userID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /salons/{id}/bookings - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	// Мастер видит только свои и неназначенные записи, менеджер - все
	result, err := h.service.GetSalonBookings(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /salons/{id}/bookings - Access denied: salon_id=%d, user_id=%d", salonID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrSalonNotFound):
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /salons/{id}/bookings - Failed to get bookings: salon_id=%d, error=%v", salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /salons/{id}/bookings - Bookings retrieved: salon_id=%d, count=%d", salonID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}
