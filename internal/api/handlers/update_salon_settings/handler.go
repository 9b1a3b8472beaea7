package update_salon_settings

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
	msgSalonNotFound      = "салон не найден"
	msgForbidden          = "изменять настройки может только менеджер салона"
)

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

// Handle PUT /api/v1/salons/{salonId}/settings
// Частичное обновление: передаются только изменяемые поля
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	salonID, err := strconv.ParseInt(mux.Vars(r)["salonId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /salons/{id}/settings - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.UpdateSettingsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /salons/{id}/settings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID
	req.SalonID = salonID

	result, err := h.service.UpdateSettings(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, salon.ErrAccessDenied):
			h.logger.Warn("PUT /salons/{id}/settings - Access denied: salon_id=%d, user_id=%d", salonID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, salon.ErrSalonNotFound):
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, salon.ErrInvalidInput):
			// текст ошибки валидации указывает на конкретное поле
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /salons/{id}/settings - Failed to update settings: salon_id=%d, error=%v", salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /salons/{id}/settings - Settings updated: salon_id=%d, user_id=%d", salonID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
