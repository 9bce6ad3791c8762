package stop_session

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
)

// ChargeMode режим тарификации при досрочной остановке сессии
type ChargeMode string

const (
	// ModeActual тарификация по фактически отыгранному времени
	ModeActual ChargeMode = "ACTUAL"
	// ModeReserved тарификация по полному забронированному времени
	ModeReserved ChargeMode = "RESERVED"
	// ModeCustom произвольная сумма, заданная администратором
	ModeCustom ChargeMode = "CUSTOM"
)

// Request модель запроса на остановку сессии
type Request struct {
	ID   int64      // ID бронирования
	Mode ChargeMode // Режим тарификации

	// CustomAmount сумма для режима CUSTOM (неотрицательная).
	// Для группы делится поровну между участниками
	CustomAmount *float64
}

// ReservationData остановленное бронирование в ответе
type ReservationData struct {
	ID             int64
	StationID      string
	GroupID        *string
	StartAt        time.Time
	EndAt          time.Time
	Status         string
	PaymentStatus  string
	CustomerName   string
	CustomerPhone  string
	TotalPrice     float64
	Notes          *string
	ElapsedMinutes int
	UpdatedAt      time.Time
}

// Response модель ответа: остановленное бронирование и все участники его группы
type Response struct {
	Reservation  *ReservationData
	GroupMembers []*ReservationData
}

// fromDomain конвертирует domain.Reservation в ответ usecase
func fromDomain(rsv *domain.Reservation, elapsedMinutes int) *ReservationData {
	var groupID *string
	if rsv.GroupID != nil {
		groupID = ptr.Ptr(rsv.GroupID.String())
	}

	return &ReservationData{
		ID:             rsv.ID,
		StationID:      rsv.StationID,
		GroupID:        groupID,
		StartAt:        rsv.StartAt,
		EndAt:          rsv.EndAt,
		Status:         string(rsv.Status),
		PaymentStatus:  string(rsv.PaymentStatus),
		CustomerName:   rsv.CustomerName,
		CustomerPhone:  rsv.CustomerPhone,
		TotalPrice:     rsv.TotalPrice,
		Notes:          rsv.Notes,
		ElapsedMinutes: elapsedMinutes,
		UpdatedAt:      rsv.UpdatedAt,
	}
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ID <= 0 {
		return errInvalidf("reservation id must be positive")
	}

	switch req.Mode {
	case ModeActual, ModeReserved:
		if req.CustomAmount != nil {
			return errInvalidf("custom amount is only allowed in CUSTOM mode")
		}
	case ModeCustom:
		if req.CustomAmount == nil {
			return errInvalidf("custom amount is required in CUSTOM mode")
		}
		if *req.CustomAmount < 0 {
			return errInvalidf("custom amount must be non-negative")
		}
	default:
		return errInvalidf("unknown charge mode %q", string(req.Mode))
	}

	return nil
}

// errInvalidf оборачивает сообщение в ErrInvalidInput
func errInvalidf(format string, v ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrInvalidInput}, v...)...)
}
