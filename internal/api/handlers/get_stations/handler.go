package get_stations

import (
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
)

type Handler struct {
	service StationService
	logger  Logger
}

func NewHandler(service StationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/stations?branch=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	branch := r.URL.Query().Get("branch")

	stations, err := h.service.GetStations(r.Context(), branch)
	if err != nil {
		h.logger.Error("GET /stations - Failed to get stations: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /stations - Fetched %d stations (branch=%q)", stations.Total, branch)
	handlers.RespondJSON(w, http.StatusOK, fromServiceStationList(stations))
}
