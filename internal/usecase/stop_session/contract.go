package stop_session

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	GetGroupMembers(ctx context.Context, rsv *domain.Reservation) ([]*domain.Reservation, error)
	Update(ctx context.Context, rsv *domain.Reservation) error
}

// StationRepository интерфейс репозитория каталога станций
type StationRepository interface {
	GetByIDs(ctx context.Context, ids []string) ([]*domain.Station, error)
}

// PriceCalculator интерфейс движка ценообразования
type PriceCalculator interface {
	CalculatePrice(stationType domain.StationType, durationHours float64, opts domain.PriceOptions) float64
	SplitCustomAmount(amount float64, members int) float64
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
