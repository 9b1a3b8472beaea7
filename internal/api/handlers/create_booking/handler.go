package create_booking

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBookingService/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-SalonBookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidDate        = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени начала, ожидается HH:MM"
	msgSlotNotAvailable   = "выбранный временной слот недоступен"
	msgSlotTaken          = "выбранное время уже занято, выберите другой слот"
	msgNoMasterAvailable  = "нет свободных мастеров"
	msgSalonNotFound      = "салон не найден"
	msgServiceNotFound    = "услуга не найдена"
	msgMasterNotFound     = "мастер не найден"
	msgSalonClosed        = "салон закрыт в выбранную дату"
	msgInvalidBookingDate = "нельзя записаться на прошедшую дату"
	msgDateTooFar         = "дата бронирования слишком далеко в будущем"
	msgInvalidInput       = "некорректные данные бронирования"
)

var (
	errInvalidDate = errors.New("invalid booking date")
	errInvalidTime = errors.New("invalid start time")
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(userID, handlers.Language(r))
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
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
		case errors.Is(err, createBooking.ErrSlotTaken):
			h.logger.Warn("POST /bookings - Slot taken: user_id=%d, salon_id=%d", userID, req.SalonID)
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: user_id=%d, salon_id=%d", userID, req.SalonID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrNoMasterAvailable):
			h.logger.Warn("POST /bookings - No master available: salon_id=%d", req.SalonID)
			handlers.RespondConflict(w, msgNoMasterAvailable)

		case errors.Is(err, createBooking.ErrClientBookingLimitExceeded):
			h.logger.Warn("POST /bookings - Client booking limit exceeded: user_id=%d, salon_id=%d", userID, req.SalonID)
			handlers.RespondUnprocessable(w, clientLimitMessage(err))

		case errors.Is(err, createBooking.ErrSalonNotFound):
			h.logger.Warn("POST /bookings - Salon not found: salon_id=%d", req.SalonID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: salon_id=%d, service_ids=%v", req.SalonID, req.ServiceIDs)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrMasterNotFound):
			h.logger.Warn("POST /bookings - Master not found: salon_id=%d", req.SalonID)
			handlers.RespondNotFound(w, msgMasterNotFound)

		case errors.Is(err, createBooking.ErrSalonClosed):
			h.logger.Warn("POST /bookings - Salon closed: salon_id=%d, date=%s", req.SalonID, req.BookingDate)
			handlers.RespondBadRequest(w, msgSalonClosed)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Date in the past: salon_id=%d, date=%s", req.SalonID, req.BookingDate)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrDateTooFarInFuture):
			h.logger.Warn("POST /bookings - Date too far in future: salon_id=%d, date=%s", req.SalonID, req.BookingDate)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, salon_id=%d, error=%v",
				userID, req.SalonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%d, user_id=%d, salon_id=%d, assignment=%s",
		result.ID, userID, req.SalonID, result.Assignment)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

// clientLimitMessage отдает клиенту текст ошибки лимита без префикса пакета
func clientLimitMessage(err error) string {
	prefix := createBooking.ErrClientBookingLimitExceeded.Error() + ": "
	if msg := strings.TrimPrefix(err.Error(), prefix); msg != err.Error() && msg != "" {
		return msg
	}
	return "превышен лимит активных записей в салоне"
}
