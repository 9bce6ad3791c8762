package edit_reservation

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	editReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/edit_reservation"
)

// PriceOptionsRequest опции, влияющие на цену
type PriceOptionsRequest struct {
	Guests      int `json:"guests,omitempty"`
	Controllers int `json:"controllers,omitempty"`
}

// EditReservationRequest HTTP request model
// Отсутствующее поле означает "не менять"
type EditReservationRequest struct {
	StartAt          *string              `json:"startAt,omitempty"` // RFC3339
	EndAt            *string              `json:"endAt,omitempty"`   // RFC3339
	CustomerName     *string              `json:"customerName,omitempty"`
	CustomerPhone    *string              `json:"customerPhone,omitempty"`
	CustomerEmail    *string              `json:"customerEmail,omitempty"`
	Notes            *string              `json:"notes,omitempty"`
	PaymentStatus    *string              `json:"paymentStatus,omitempty"`
	CustomTotalPrice *float64             `json:"customTotalPrice,omitempty"`
	PriceOptions     *PriceOptionsRequest `json:"priceOptions,omitempty"`
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

// EditReservationResponse HTTP response model
type EditReservationResponse struct {
	Reservation  *ReservationResponse   `json:"reservation"`
	GroupMembers []*ReservationResponse `json:"groupMembers"`
}

// ConflictResponse HTTP response model для 409
type ConflictResponse struct {
	Error     string   `json:"error"`
	Conflicts []string `json:"conflicts"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *EditReservationRequest) ToUseCaseRequest(id int64) (*editReservation.Request, error) {
	var startAt, endAt *time.Time

	if r.StartAt != nil {
		t, err := time.Parse(time.RFC3339, *r.StartAt)
		if err != nil {
			return nil, err
		}
		startAt = &t
	}
	if r.EndAt != nil {
		t, err := time.Parse(time.RFC3339, *r.EndAt)
		if err != nil {
			return nil, err
		}
		endAt = &t
	}

	var opts domain.PriceOptions
	if r.PriceOptions != nil {
		opts = domain.PriceOptions{
			Guests:      r.PriceOptions.Guests,
			Controllers: r.PriceOptions.Controllers,
		}
	}

	return &editReservation.Request{
		ID:               id,
		StartAt:          startAt,
		EndAt:            endAt,
		CustomerName:     r.CustomerName,
		CustomerPhone:    r.CustomerPhone,
		CustomerEmail:    r.CustomerEmail,
		Notes:            r.Notes,
		PaymentStatus:    r.PaymentStatus,
		CustomTotalPrice: r.CustomTotalPrice,
		PriceOptions:     opts,
	}, nil
}

// fromData конвертирует данные use case в HTTP модель
func fromData(rsv *editReservation.ReservationData) *ReservationResponse {
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

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *editReservation.Response) *EditReservationResponse {
	members := make([]*ReservationResponse, len(resp.GroupMembers))
	for i, m := range resp.GroupMembers {
		members[i] = fromData(m)
	}
	return &EditReservationResponse{
		Reservation:  fromData(resp.Reservation),
		GroupMembers: members,
	}
}
