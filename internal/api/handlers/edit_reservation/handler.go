package edit_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	editReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/edit_reservation"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidReservationID = "некорректный ID бронирования"
	msgInvalidTimestamps    = "некорректный формат времени, ожидается RFC3339"
	msgStationsUnavailable  = "новый интервал конфликтует с другими бронированиями"
	msgReservationNotFound  = "бронирование не найдено"
	msgReservationCancelled = "бронирование отменено и не может быть изменено"
)

type Handler struct {
	useCase EditReservationUseCase
	logger  Logger
}

func NewHandler(useCase EditReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reservations/{reservationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id} - Invalid reservation id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	var req EditReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reservations/%d - Invalid request body: %v", id, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(id)
	if err != nil {
		h.logger.Warn("PATCH /reservations/%d - Failed to parse timestamps: %v", id, err)
		handlers.RespondBadRequest(w, msgInvalidTimestamps)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var unavailable *editReservation.StationsUnavailableError
		switch {
		case errors.As(err, &unavailable):
			h.logger.Warn("PATCH /reservations/%d - Stations unavailable: %v", id, unavailable.StationIDs)
			handlers.RespondJSON(w, http.StatusConflict, ConflictResponse{
				Error:     msgStationsUnavailable,
				Conflicts: unavailable.StationIDs,
			})

		case errors.Is(err, editReservation.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/%d - Reservation not found", id)
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, editReservation.ErrReservationCancelled):
			h.logger.Warn("PATCH /reservations/%d - Reservation cancelled", id)
			handlers.RespondBadRequest(w, msgReservationCancelled)

		case errors.Is(err, editReservation.ErrInvalidInput):
			h.logger.Warn("PATCH /reservations/%d - Validation failed: %v", id, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PATCH /reservations/%d - Failed to edit reservation: %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/%d - Updated %d reservation(s)", id, len(result.GroupMembers))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
