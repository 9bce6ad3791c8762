package stop_session

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	stopSession "github.com/m04kA/SMC-ReservationService/internal/usecase/stop_session"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidReservationID = "некорректный ID бронирования"
	msgReservationNotFound  = "бронирование не найдено"
	msgSessionNotLive       = "сессия не идет прямо сейчас"
)

type Handler struct {
	useCase StopSessionUseCase
	logger  Logger
}

func NewHandler(useCase StopSessionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations/{reservationId}/stop
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /reservations/{id}/stop - Invalid reservation id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	var req StopSessionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations/%d/stop - Invalid request body: %v", id, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(id))
	if err != nil {
		switch {
		case errors.Is(err, stopSession.ErrReservationNotFound):
			h.logger.Warn("POST /reservations/%d/stop - Reservation not found", id)
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, stopSession.ErrSessionNotLive):
			h.logger.Warn("POST /reservations/%d/stop - Session not live", id)
			handlers.RespondBadRequest(w, msgSessionNotLive)

		case errors.Is(err, stopSession.ErrInvalidInput):
			h.logger.Warn("POST /reservations/%d/stop - Validation failed: %v", id, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /reservations/%d/stop - Failed to stop session: %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations/%d/stop - Stopped %d session(s)", id, len(result.GroupMembers))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
