package edit_reservation

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
)

// Request модель запроса на редактирование бронирования
// nil-поле означает "не менять". Изменение времени или телефона у участника
// группы применяется ко ВСЕЙ группе атомарно: тихий "выход" одного участника
// из группы при редактировании запрещен
type Request struct {
	ID int64 // ID редактируемого бронирования

	StartAt *time.Time // Новое начало интервала
	EndAt   *time.Time // Новый конец интервала

	CustomerName  *string // Новое имя клиента
	CustomerPhone *string // Новый телефон клиента (меняется у всей группы)
	CustomerEmail *string // Новый email клиента
	Notes         *string // Новые заметки

	PaymentStatus *string // Новый статус оплаты ("paid" / "unpaid")

	// CustomTotalPrice ручная цена для редактируемого бронирования.
	// Если не задана, при изменении интервала цена пересчитывается
	// по тарифу станции (у каждого участника группы — по своему тарифу)
	CustomTotalPrice *float64

	// PriceOptions опции для пересчета цены (гости, геймпады)
	PriceOptions domain.PriceOptions
}

// ReservationData обновленное бронирование в ответе
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

// Response модель ответа: отредактированное бронирование и все участники его группы
type Response struct {
	Reservation  *ReservationData
	GroupMembers []*ReservationData
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
