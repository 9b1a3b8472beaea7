package schedule_overrides

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/salon"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/salon/models"
)

const (
	msgInvalidSalonID     = "некорректный ID салона"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgMissingPeriod      = "параметры from и to обязательны"
	msgSalonNotFound      = "салон не найден"
	msgOverrideNotFound   = "исключение расписания на эту дату не найдено"
	msgForbidden          = "изменять расписание может только менеджер салона"
)

// Handler обработчики исключений расписания салона
type Handler struct {
	service SalonService
	logger  Logger
}

func NewHandler(service SalonService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/salons/{salonId}/overrides?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	salonID, ok := h.salonID(w, r, "GET /salons/{id}/overrides")
	if !ok {
		return
	}

	from, to := r.URL.Query().Get("from"), r.URL.Query().Get("to")
	if from == "" || to == "" {
		handlers.RespondBadRequest(w, msgMissingPeriod)
		return
	}

	result, err := h.service.ListOverrides(r.Context(), salonID, from, to)
	if err != nil {
		h.respondError(w, "GET /salons/{id}/overrides", salonID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Set PUT /api/v1/salons/{salonId}/overrides
func (h *Handler) Set(w http.ResponseWriter, r *http.Request) {
	const op = "PUT /salons/{id}/overrides"

	salonID, ok := h.salonID(w, r, op)
	if !ok {
		return
	}
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req models.SetOverridesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID
	req.SalonID = salonID

	result, err := h.service.SetOverrides(r.Context(), &req)
	if err != nil {
		h.respondError(w, op, salonID, err)
		return
	}

	h.logger.Info("%s - Overrides saved: salon_id=%d, count=%d", op, salonID, len(result.Overrides))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Delete DELETE /api/v1/salons/{salonId}/overrides/{date}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	const op = "DELETE /salons/{id}/overrides/{date}"

	salonID, ok := h.salonID(w, r, op)
	if !ok {
		return
	}
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	date := mux.Vars(r)["date"]
	if err := h.service.DeleteOverride(r.Context(), salonID, userID, date); err != nil {
		h.respondError(w, op, salonID, err)
		return
	}

	h.logger.Info("%s - Override deleted: salon_id=%d, date=%s", op, salonID, date)
	handlers.RespondNoContent(w)
}

// ApplyShiftPattern POST /api/v1/salons/{salonId}/overrides/shift-pattern
func (h *Handler) ApplyShiftPattern(w http.ResponseWriter, r *http.Request) {
	const op = "POST /salons/{id}/overrides/shift-pattern"

	salonID, ok := h.salonID(w, r, op)
	if !ok {
		return
	}
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req models.ShiftPatternRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID
	req.SalonID = salonID

	result, err := h.service.ApplyShiftPattern(r.Context(), &req)
	if err != nil {
		h.respondError(w, op, salonID, err)
		return
	}

	h.logger.Info("%s - Shift pattern applied: salon_id=%d, days=%d", op, salonID, len(result.Overrides))
	handlers.RespondJSON(w, http.StatusCreated, result)
}

func (h *Handler) salonID(w http.ResponseWriter, r *http.Request, op string) (int64, bool) {
	salonID, err := strconv.ParseInt(mux.Vars(r)["salonId"], 10, 64)
	if err != nil {
		h.logger.Warn("%s - Invalid salon ID: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return 0, false
	}
	return salonID, true
}

func (h *Handler) userID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
	}
	return userID, ok
}

func (h *Handler) respondError(w http.ResponseWriter, op string, salonID int64, err error) {
	switch {
	case errors.Is(err, salon.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: salon_id=%d, %v", op, salonID, err)
		handlers.RespondBadRequest(w, err.Error())

	case errors.Is(err, salon.ErrAccessDenied):
		h.logger.Warn("%s - Access denied: salon_id=%d", op, salonID)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, salon.ErrSalonNotFound):
		handlers.RespondNotFound(w, msgSalonNotFound)

	case errors.Is(err, salon.ErrOverrideNotFound):
		handlers.RespondNotFound(w, msgOverrideNotFound)

	default:
		h.logger.Error("%s - Failed: salon_id=%d, error=%v", op, salonID, err)
		handlers.RespondInternalError(w)
	}
}
