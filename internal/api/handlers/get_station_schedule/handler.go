package get_station_schedule

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations"
)

const (
	msgInvalidDate     = "некорректная дата, ожидается формат YYYY-MM-DD"
	msgStationNotFound = "станция не найдена"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/stations/{stationId}/reservations?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	stationID := mux.Vars(r)["stationId"]

	date, err := parseDate(r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /stations/%s/reservations - Invalid date: %v", stationID, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	schedule, err := h.service.GetStationSchedule(r.Context(), stationID, date)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrStationNotFound):
			h.logger.Warn("GET /stations/%s/reservations - Station not found", stationID)
			handlers.RespondNotFound(w, msgStationNotFound)

		default:
			h.logger.Error("GET /stations/%s/reservations - Failed to get schedule: %v", stationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /stations/%s/reservations - Fetched %d reservations for %s",
		stationID, schedule.Total, date.Format(domain.DateFormat))
	handlers.RespondJSON(w, http.StatusOK, fromServiceSchedule(stationID, date, schedule))
}

// parseDate парсит дату расписания; пустое значение означает сегодня
func parseDate(raw string) (time.Time, error) {
	if raw == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), nil
	}
	return time.Parse(domain.DateFormat, raw)
}
