package stop_session

import (
	"time"

	stopSession "github.com/m04kA/SMC-ReservationService/internal/usecase/stop_session"
)

// StopSessionRequest HTTP request model
type StopSessionRequest struct {
	Mode         string   `json:"mode"` // ACTUAL | RESERVED | CUSTOM
	CustomAmount *float64 `json:"customAmount,omitempty"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID             int64   `json:"id"`
	StationID      string  `json:"stationId"`
	GroupID        *string `json:"groupId,omitempty"`
	StartAt        string  `json:"startAt"`
	EndAt          string  `json:"endAt"`
	Status         string  `json:"status"`
	PaymentStatus  string  `json:"paymentStatus"`
	CustomerName   string  `json:"customerName"`
	CustomerPhone  string  `json:"customerPhone"`
	TotalPrice     float64 `json:"totalPrice"`
	Notes          *string `json:"notes,omitempty"`
	ElapsedMinutes int     `json:"elapsedMinutes"`
	UpdatedAt      string  `json:"updatedAt"`
}

// StopSessionResponse HTTP response model
type StopSessionResponse struct {
	Reservation  *ReservationResponse   `json:"reservation"`
	GroupMembers []*ReservationResponse `json:"groupMembers"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *StopSessionRequest) ToUseCaseRequest(id int64) *stopSession.Request {
	return &stopSession.Request{
		ID:           id,
		Mode:         stopSession.ChargeMode(r.Mode),
		CustomAmount: r.CustomAmount,
	}
}

// fromData конвертирует данные use case в HTTP модель
func fromData(rsv *stopSession.ReservationData) *ReservationResponse {
	return &ReservationResponse{
		ID:             rsv.ID,
		StationID:      rsv.StationID,
		GroupID:        rsv.GroupID,
		StartAt:        rsv.StartAt.Format(time.RFC3339),
		EndAt:          rsv.EndAt.Format(time.RFC3339),
		Status:         rsv.Status,
		PaymentStatus:  rsv.PaymentStatus,
		CustomerName:   rsv.CustomerName,
		CustomerPhone:  rsv.CustomerPhone,
		TotalPrice:     rsv.TotalPrice,
		Notes:          rsv.Notes,
		ElapsedMinutes: rsv.ElapsedMinutes,
		UpdatedAt:      rsv.UpdatedAt.Format(time.RFC3339),
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *stopSession.Response) *StopSessionResponse {
	members := make([]*ReservationResponse, len(resp.GroupMembers))
	for i, m := range resp.GroupMembers {
		members[i] = fromData(m)
	}
	return &StopSessionResponse{
		Reservation:  fromData(resp.Reservation),
		GroupMembers: members,
	}
}
