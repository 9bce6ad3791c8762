package get_stations

import (
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
)

// StationResponse HTTP response model
type StationResponse struct {
	ID     string `json:"id"`
	Type   string `json:"type"`
	Branch string `json:"branch"`
	Name   string `json:"name"`
}

// StationListResponse HTTP response model со списком станций
type StationListResponse struct {
	Stations []*StationResponse `json:"stations"`
	Total    int                `json:"total"`
}

func fromServiceStationList(list *models.StationListResponse) *StationListResponse {
	result := make([]*StationResponse, len(list.Stations))
	for i, st := range list.Stations {
		result[i] = &StationResponse{
			ID:     st.ID,
			Type:   st.Type,
			Branch: st.Branch,
			Name:   st.Name,
		}
	}
	return &StationListResponse{Stations: result, Total: list.Total}
}
