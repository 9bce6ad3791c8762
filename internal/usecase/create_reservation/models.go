package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
)

// Request модель запроса на создание бронирования
// Несколько станций в одном запросе — групповая заявка: все участники
// создаются атомарно и получают общий group_id
type Request struct {
	StationIDs    []string            // Станции (одна или несколько)
	StartAt       time.Time           // Начало интервала
	EndAt         time.Time           // Конец интервала (не включается)
	CustomerName  string              // Имя клиента
	CustomerPhone string              // Телефон клиента
	CustomerEmail *string             // Email клиента (опционально)
	Notes         *string             // Заметки (опционально)
	PriceOptions  domain.PriceOptions // Опции, влияющие на цену (гости, геймпады)
}

// ReservationData созданное бронирование в ответе
type ReservationData struct {
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

// Response модель ответа с созданными бронированиями
type Response struct {
	Reservations []*ReservationData
}

// fromDomain конвертирует domain.Reservation в ответ usecase
func fromDomain(rsv *domain.Reservation) *ReservationData {
	var groupID *string
	if rsv.GroupID != nil {
		groupID = ptr.Ptr(rsv.GroupID.String())
	}

	return &ReservationData{
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
