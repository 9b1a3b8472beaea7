package reschedule_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	rescheduleBooking "github.com/m04kA/SMC-SalonBookingService/internal/usecase/reschedule_booking"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени начала, ожидается HH:MM"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "доступ запрещен"
	msgCannotReschedule   = "перенести можно только ожидающую или подтвержденную запись"
	msgMasterNotFound     = "мастер не найден"
	msgPastDate           = "нельзя перенести запись на прошедшую дату"
	msgDateTooFar         = "дата слишком далеко в будущем"
	msgSalonClosed        = "салон закрыт в выбранную дату"
	msgSlotNotAvailable   = "выбранный временной слот недоступен"
	msgSlotTaken          = "выбранное время уже занято"
	msgInvalidInput       = "некорректные данные переноса"
)

type Handler struct {
	useCase RescheduleBookingUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/reschedule - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req RescheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID, bookingID)
	if err != nil {
		if errors.Is(err, errInvalidTime) {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, rescheduleBooking.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rescheduleBooking.ErrAccessDenied):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Access denied: booking_id=%d, user_id=%d", bookingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, rescheduleBooking.ErrCannotReschedule):
			handlers.RespondConflict(w, msgCannotReschedule)

		case errors.Is(err, rescheduleBooking.ErrMasterNotFound):
			handlers.RespondNotFound(w, msgMasterNotFound)

		case errors.Is(err, rescheduleBooking.ErrSlotTaken):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Slot taken: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.Is(err, rescheduleBooking.ErrSlotNotAvailable):
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, rescheduleBooking.ErrSalonClosed):
			handlers.RespondBadRequest(w, msgSalonClosed)

		case errors.Is(err, rescheduleBooking.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, rescheduleBooking.ErrDateTooFarInFuture):
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, rescheduleBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /bookings/{id}/reschedule - Failed to reschedule: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/reschedule - Booking moved: booking_id=%d, %s %s -> %s %s",
		bookingID, result.PreviousDate.Format(domain.DateFormat), result.PreviousStart,
		req.BookingDate, req.StartTime)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
