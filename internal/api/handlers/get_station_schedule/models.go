package get_station_schedule

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
)

// ScheduleEntryResponse запись расписания станции
type ScheduleEntryResponse struct {
	ID            int64   `json:"id"`
	GroupID       *string `json:"groupId,omitempty"`
	StartAt       string  `json:"startAt"`
	EndAt         string  `json:"endAt"`
	Status        string  `json:"status"`
	PaymentStatus string  `json:"paymentStatus"`
	CustomerName  string  `json:"customerName"`
	CustomerPhone string  `json:"customerPhone"`
	TotalPrice    float64 `json:"totalPrice"`
}

// StationScheduleResponse HTTP response model: расписание станции на сутки
type StationScheduleResponse struct {
	StationID    string                   `json:"stationId"`
	Date         string                   `json:"date"`
	Reservations []*ScheduleEntryResponse `json:"reservations"`
	Total        int                      `json:"total"`
}

func fromServiceSchedule(stationID string, date time.Time, list *models.ReservationListResponse) *StationScheduleResponse {
	entries := make([]*ScheduleEntryResponse, len(list.Reservations))
	for i, rsv := range list.Reservations {
		entries[i] = &ScheduleEntryResponse{
			ID:            rsv.ID,
			GroupID:       rsv.GroupID,
			StartAt:       rsv.StartAt.Format(time.RFC3339),
			EndAt:         rsv.EndAt.Format(time.RFC3339),
			Status:        rsv.Status,
			PaymentStatus: rsv.PaymentStatus,
			CustomerName:  rsv.CustomerName,
			CustomerPhone: rsv.CustomerPhone,
			TotalPrice:    rsv.TotalPrice,
		}
	}
	return &StationScheduleResponse{
		StationID:    stationID,
		Date:         date.Format(domain.DateFormat),
		Reservations: entries,
		Total:        list.Total,
	}
}
