package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	createReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidTimestamps   = "некорректный формат времени, ожидается RFC3339"
	msgStationsUnavailable = "выбранные станции заняты на этот интервал"
	msgStationNotFound     = "станция не найдена"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse timestamps: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTimestamps)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var unavailable *createReservation.StationsUnavailableError
		switch {
		case errors.As(err, &unavailable):
			h.logger.Warn("POST /reservations - Stations unavailable: %v", unavailable.StationIDs)
			handlers.RespondJSON(w, http.StatusConflict, ConflictResponse{
				Error:     msgStationsUnavailable,
				Conflicts: unavailable.StationIDs,
			})

		case errors.Is(err, createReservation.ErrStationNotFound):
			h.logger.Warn("POST /reservations - Station not found: stations=%v", req.StationIDs)
			handlers.RespondNotFound(w, msgStationNotFound)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Validation failed: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Created %d reservation(s)", len(result.Reservations))
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
