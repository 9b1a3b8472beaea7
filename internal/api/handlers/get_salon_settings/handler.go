package get_salon_settings

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
)

const msgInvalidSalonID = "некорректный ID салона"

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

// Handle GET /api/v1/salons/{salonId}/settings
// Публичный эндпоинт: если салон еще не сохранял настройки, возвращаются значения по умолчанию
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	salonID, err := strconv.ParseInt(mux.Vars(r)["salonId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /salons/{id}/settings - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	settings, err := h.service.GetSettings(r.Context(), salonID)
	if err != nil {
		h.logger.Error("GET /salons/{id}/settings - Failed to get settings: salon_id=%d, error=%v", salonID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, settings)
}
