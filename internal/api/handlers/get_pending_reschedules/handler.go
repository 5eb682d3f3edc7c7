package get_pending_reschedules

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	reschedulesSvc "github.com/m04kA/SMC-ScheduleService/internal/service/reschedules"
)

const (
	msgInvalidUserID = "некорректный идентификатор пользователя"
	msgAccessDenied  = "доступ запрещен"
	msgUnauthorized  = "требуется аутентификация"
)

type Handler struct {
	service RescheduleService
	logger  Logger
}

func NewHandler(service RescheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/users/{userId}/reschedule-requests/pending
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	userID, err := strconv.ParseInt(mux.Vars(r)["userId"], 10, 64)
	if err != nil || userID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	// Пользователь видит только собственную очередь запросов
	if userID != actorID {
		h.logger.Warn("GET /users/%d/reschedule-requests/pending - Access denied: user_id=%d", userID, actorID)
		handlers.RespondForbidden(w, msgAccessDenied)
		return
	}

	result, err := h.service.GetPendingFor(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, reschedulesSvc.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidUserID)

		default:
			h.logger.Error("GET /users/%d/reschedule-requests/pending - Failed to fetch: %v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /users/%d/reschedule-requests/pending - Found %d request(s)", userID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
