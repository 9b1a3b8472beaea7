package update_booking_status

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/bookings/models"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "бронирование не найдено"
	msgSalonNotFound      = "салон не найден"
	msgForbidden          = "менять статус записи может только персонал салона"
	msgInvalidStatus      = "некорректный статус, для отмены используйте /cancel"
	msgInvalidTransition  = "недопустимый переход статуса"
	msgSlotTaken          = "время записи пересекается с другой записью мастера"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string `json:"status"` // confirmed | in_progress | completed
}

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

// Handle PATCH /api/v1/bookings/{bookingId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/status - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	err = h.service.UpdateStatus(r.Context(), bookingID, &models.UpdateStatusRequest{
		UserID: userID,
		Status: req.Status,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrSalonNotFound):
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("PATCH /bookings/{id}/status - Access denied: booking_id=%d, user_id=%d", bookingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, bookings.ErrInvalidTransition):
			h.logger.Warn("PATCH /bookings/{id}/status - Invalid transition: booking_id=%d, %v", bookingID, err)
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, bookings.ErrSlotTaken):
			h.logger.Warn("PATCH /bookings/{id}/status - Slot taken on accept: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgSlotTaken)

		default:
			h.logger.Error("PATCH /bookings/{id}/status - Failed to update status: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/status - Status updated: booking_id=%d, status=%s, user_id=%d",
		bookingID, req.Status, userID)
	handlers.RespondNoContent(w)
}
