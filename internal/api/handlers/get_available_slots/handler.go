package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBookingService/internal/api/middleware"
	getAvailableSlots "github.com/m04kA/SMC-SalonBookingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidSalonID   = "некорректный ID салона"
	msgInvalidServiceID = "некорректный список услуг, ожидается serviceIds=1,2"
	msgMissingDate      = "дата обязательна"
	msgInvalidParams    = "некорректный формат даты (YYYY-MM-DD) или ID мастера"
	msgInvalidInput     = "некорректные параметры запроса"
	msgSalonNotFound    = "салон не найден"
	msgServiceNotFound  = "услуга не найдена"
	msgMasterNotFound   = "мастер не найден"
	msgDateTooFar       = "дата слишком далеко в будущем"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/salons/{salonId}/available-slots
// Query params: serviceIds (required, "1,2"), date (required, YYYY-MM-DD), masterId, lang (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	salonID, err := strconv.ParseInt(mux.Vars(r)["salonId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /salons/{id}/available-slots - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	query := r.URL.Query()

	serviceIDs, err := handlers.ParseIDList(query.Get("serviceIds"))
	if err != nil {
		h.logger.Warn("GET /salons/{id}/available-slots - Invalid service IDs: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /salons/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Эндпоинт публичный: пользователь может быть не авторизован
	userID, _ := middleware.GetUserID(r.Context())

	useCaseReq, err := ToUseCaseRequest(userID, salonID, serviceIDs, query.Get("masterId"), dateStr, handlers.Language(r))
	if err != nil {
		h.logger.Warn("GET /salons/{id}/available-slots - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrSalonNotFound):
			h.logger.Warn("GET /salons/{id}/available-slots - Salon not found: salon_id=%d", salonID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /salons/{id}/available-slots - Service not found: salon_id=%d, service_ids=%v", salonID, serviceIDs)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrMasterNotFound):
			h.logger.Warn("GET /salons/{id}/available-slots - Master not found: salon_id=%d", salonID)
			handlers.RespondNotFound(w, msgMasterNotFound)

		case errors.Is(err, getAvailableSlots.ErrDateTooFarInFuture):
			h.logger.Warn("GET /salons/{id}/available-slots - Date too far: salon_id=%d, date=%s", salonID, dateStr)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /salons/{id}/available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /salons/{id}/available-slots - Failed to get slots: salon_id=%d, error=%v", salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /salons/{id}/available-slots - Slots retrieved: salon_id=%d, date=%s, outcome=%s, slots_count=%d",
		salonID, dateStr, result.Outcome, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
