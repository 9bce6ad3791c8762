package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	createReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/create_reservation"
)

// PriceOptionsRequest опции, влияющие на цену
type PriceOptionsRequest struct {
	Guests      int `json:"guests,omitempty"`
	Controllers int `json:"controllers,omitempty"`
}

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	StationIDs    []string             `json:"stationIds"`
	StartAt       string               `json:"startAt"` // RFC3339
	EndAt         string               `json:"endAt"`   // RFC3339
	CustomerName  string               `json:"customerName"`
	CustomerPhone string               `json:"customerPhone"`
	CustomerEmail *string              `json:"customerEmail,omitempty"`
	Notes         *string              `json:"notes,omitempty"`
	PriceOptions  *PriceOptionsRequest `json:"priceOptions,omitempty"`
}

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

// CreateReservationResponse HTTP response model со списком созданных бронирований
type CreateReservationResponse struct {
	Reservations []*ReservationResponse `json:"reservations"`
}

// ConflictResponse HTTP response model для 409: всегда перечисляет,
// какие именно станции заняты (групповой заявке нужен пер-станционный фидбек)
type ConflictResponse struct {
	Error     string   `json:"error"`
	Conflicts []string `json:"conflicts"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest() (*createReservation.Request, error) {
	startAt, err := time.Parse(time.RFC3339, r.StartAt)
	if err != nil {
		return nil, err
	}

	endAt, err := time.Parse(time.RFC3339, r.EndAt)
	if err != nil {
		return nil, err
	}

	var opts domain.PriceOptions
	if r.PriceOptions != nil {
		opts = domain.PriceOptions{
			Guests:      r.PriceOptions.Guests,
			Controllers: r.PriceOptions.Controllers,
		}
	}

	return &createReservation.Request{
		StationIDs:    r.StationIDs,
		StartAt:       startAt,
		EndAt:         endAt,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		CustomerEmail: r.CustomerEmail,
		Notes:         r.Notes,
		PriceOptions:  opts,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *CreateReservationResponse {
	result := make([]*ReservationResponse, len(resp.Reservations))
	for i, rsv := range resp.Reservations {
		result[i] = &ReservationResponse{
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
	return &CreateReservationResponse{Reservations: result}
}
