package models

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
)

// ReservationResponse модель бронирования для вызывающего кода
type ReservationResponse struct {
	ID            int64
	StationID     string
	GroupID       *string
	StartAt       time.Time
	EndAt         time.Time
	Status        string
	PaymentStatus string
	CustomerName  string
	CustomerPhone string
	CustomerEmail *string
	TotalPrice    float64
	Notes         *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ReservationListResponse список бронирований
type ReservationListResponse struct {
	Reservations []*ReservationResponse
	Total        int
}

// StationResponse модель станции для вызывающего кода
type StationResponse struct {
	ID     string
	Type   string
	Branch string
	Name   string
}

// StationListResponse список станций
type StationListResponse struct {
	Stations []*StationResponse
	Total    int
}

// CancelReservationRequest запрос на отмену бронирования
type CancelReservationRequest struct {
	RequesterPhone string // Телефон клиента для проверки владельца
}

// FromDomainReservation конвертирует domain.Reservation в response-модель
func FromDomainReservation(rsv *domain.Reservation) *ReservationResponse {
	var groupID *string
	if rsv.GroupID != nil {
		groupID = ptr.Ptr(rsv.GroupID.String())
	}

	return &ReservationResponse{
		ID:            rsv.ID,
		StationID:     rsv.StationID,
		GroupID:       groupID,
		StartAt:       rsv.StartAt,
		EndAt:         rsv.EndAt,
		Status:        string(rsv.Status),
		PaymentStatus: string(rsv.PaymentStatus),
		CustomerName:  rsv.CustomerName,
		CustomerPhone: rsv.CustomerPhone,
		CustomerEmail: rsv.CustomerEmail,
		TotalPrice:    rsv.TotalPrice,
		Notes:         rsv.Notes,
		CreatedAt:     rsv.CreatedAt,
		UpdatedAt:     rsv.UpdatedAt,
	}
}

// FromDomainReservationList конвертирует список бронирований
func FromDomainReservationList(list []*domain.Reservation) *ReservationListResponse {
	result := make([]*ReservationResponse, len(list))
	for i, rsv := range list {
		result[i] = FromDomainReservation(rsv)
	}
	return &ReservationListResponse{Reservations: result, Total: len(result)}
}

// FromDomainStation конвертирует domain.Station в response-модель
func FromDomainStation(st *domain.Station) *StationResponse {
	return &StationResponse{
		ID:     st.ID,
		Type:   string(st.Type),
		Branch: st.Branch,
		Name:   st.Name,
	}
}

// FromDomainStationList конвертирует список станций
func FromDomainStationList(list []*domain.Station) *StationListResponse {
	result := make([]*StationResponse, len(list))
	for i, st := range list {
		result[i] = FromDomainStation(st)
	}
	return &StationListResponse{Stations: result, Total: len(result)}
}
