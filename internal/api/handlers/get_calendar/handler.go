package get_calendar

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	availabilitySvc "github.com/m04kA/SMC-ScheduleService/internal/service/availability"
	"github.com/m04kA/SMC-ScheduleService/internal/service/availability/models"
)

const (
	msgInvalidProviderID = "некорректный идентификатор провайдера"
	msgInvalidRange      = "некорректные параметры start/end, ожидается RFC3339"
	msgInvalidViewType   = "некорректный тип представления, ожидается day, week или month"
	msgInvalidInput      = "некорректные входные данные"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/providers/{providerId}/calendar?start=...&end=...&view=week
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID, err := strconv.ParseInt(mux.Vars(r)["providerId"], 10, 64)
	if err != nil || providerID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	query := r.URL.Query()

	start, err := time.Parse(time.RFC3339, query.Get("start"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidRange)
		return
	}
	end, err := time.Parse(time.RFC3339, query.Get("end"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidRange)
		return
	}

	viewType := domain.CalendarViewType(query.Get("view"))
	if viewType == "" {
		viewType = domain.CalendarViewWeek
	}
	if !viewType.IsValid() {
		handlers.RespondBadRequest(w, msgInvalidViewType)
		return
	}

	result, err := h.service.GetCalendarView(r.Context(), &models.GetCalendarViewRequest{
		ProviderID: providerID,
		ViewType:   viewType,
		Start:      start,
		End:        end,
	})
	if err != nil {
		switch {
		case errors.Is(err, availabilitySvc.ErrInvalidInput):
			h.logger.Warn("GET /providers/%d/calendar - Invalid input: %v", providerID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /providers/%d/calendar - Failed to compose view: %v", providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /providers/%d/calendar - View composed: blocks=%d, reservations=%d",
		providerID, len(result.Blocks), len(result.Reservations))
	handlers.RespondJSON(w, http.StatusOK, result)
}
