package get_upcoming_reservations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	schedulesSvc "github.com/m04kA/SMC-ScheduleService/internal/service/schedules"
)

const (
	msgInvalidProviderID = "некорректный идентификатор провайдера"
	msgInvalidLimit      = "некорректный параметр limit"
	msgInvalidInput      = "некорректные входные данные"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/providers/{providerId}/reservations/upcoming?limit=20
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID, err := strconv.ParseInt(mux.Vars(r)["providerId"], 10, 64)
	if err != nil || providerID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	var limit uint64
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.ParseUint(raw, 10, 64)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidLimit)
			return
		}
	}

	result, err := h.service.GetUpcoming(r.Context(), providerID, limit)
	if err != nil {
		switch {
		case errors.Is(err, schedulesSvc.ErrInvalidInput):
			h.logger.Warn("GET /providers/%d/reservations/upcoming - Invalid input: %v", providerID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /providers/%d/reservations/upcoming - Failed to fetch: %v", providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /providers/%d/reservations/upcoming - Found %d reservation(s)", providerID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
