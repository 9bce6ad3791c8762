package get_reservation

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
)

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID            int64   `json:"id"`
	StationID     string  `json:"stationId"`
	GroupID       *string `json:"groupId,omitempty"`
	StartAt       string  `json:"startAt"`
	EndAt         string  `json:"endAt"`
	Status        string  `json:"status"`
	PaymentStatus string  `json:"paymentStatus"`
	CustomerName  string  `json:"customerName"`
	CustomerPhone string  `json:"customerPhone"`
	CustomerEmail *string `json:"customerEmail,omitempty"`
	TotalPrice    float64 `json:"totalPrice"`
	Notes         *string `json:"notes,omitempty"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

// GetReservationResponse бронирование вместе с остальными участниками его группы
type GetReservationResponse struct {
	Reservation *ReservationResponse   `json:"reservation"`
	Group       []*ReservationResponse `json:"group,omitempty"`
}

func fromServiceReservation(rsv *models.ReservationResponse) *ReservationResponse {
	return &ReservationResponse{
		ID:            rsv.ID,
		StationID:     rsv.StationID,
		GroupID:       rsv.GroupID,
		StartAt:       rsv.StartAt.Format(time.RFC3339),
		EndAt:         rsv.EndAt.Format(time.RFC3339),
		Status:        rsv.Status,
		PaymentStatus: rsv.PaymentStatus,
		CustomerName:  rsv.CustomerName,
		CustomerPhone: rsv.CustomerPhone,
		CustomerEmail: rsv.CustomerEmail,
		TotalPrice:    rsv.TotalPrice,
		Notes:         rsv.Notes,
		CreatedAt:     rsv.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     rsv.UpdatedAt.Format(time.RFC3339),
	}
}

func toResponse(rsv *models.ReservationResponse, group *models.ReservationListResponse) *GetReservationResponse {
	members := make([]*ReservationResponse, 0, len(group.Reservations))
	for _, m := range group.Reservations {
		if m.ID == rsv.ID {
			continue
		}
		members = append(members, fromServiceReservation(m))
	}
	return &GetReservationResponse{
		Reservation: fromServiceReservation(rsv),
		Group:       members,
	}
}
