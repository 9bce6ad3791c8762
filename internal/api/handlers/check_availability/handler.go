package check_availability

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	checkAvailability "github.com/m04kA/SMC-ReservationService/internal/usecase/check_availability"
)

const (
	msgInvalidQuery    = "некорректные параметры запроса: ожидаются stations, from, to"
	msgInvalidInterval = "некорректный интервал: ожидается RFC3339, to позже from"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability?stations=pro-1,pro-2&from=...&to=...[&exclude=ID]
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var stationIDs []string
	if raw := query.Get("stations"); raw != "" {
		stationIDs = strings.Split(raw, ",")
	}

	from, errFrom := time.Parse(time.RFC3339, query.Get("from"))
	to, errTo := time.Parse(time.RFC3339, query.Get("to"))
	if errFrom != nil || errTo != nil {
		h.logger.Warn("GET /availability - Invalid interval: from=%q, to=%q", query.Get("from"), query.Get("to"))
		handlers.RespondBadRequest(w, msgInvalidInterval)
		return
	}

	var excludeID *int64
	if raw := query.Get("exclude"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.logger.Warn("GET /availability - Invalid exclude id: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidQuery)
			return
		}
		excludeID = &id
	}

	result, err := h.useCase.Execute(r.Context(), &checkAvailability.Request{
		StationIDs:           stationIDs,
		StartAt:              from,
		EndAt:                to,
		ExcludeReservationID: excludeID,
	})
	if err != nil {
		if errors.Is(err, checkAvailability.ErrInvalidInput) {
			h.logger.Warn("GET /availability - Validation failed: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInterval)
			return
		}
		h.logger.Error("GET /availability - Failed to check availability: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, AvailabilityResponse{Unavailable: result.Unavailable})
}
