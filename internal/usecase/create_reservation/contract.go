package create_reservation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, rsv *domain.Reservation) (*domain.Reservation, error)
	FindConflictingStationIDs(ctx context.Context, stationIDs []string, start, end time.Time, excludeIDs []int64) ([]string, error)
}

// StationRepository интерфейс репозитория каталога станций
type StationRepository interface {
	GetByIDs(ctx context.Context, ids []string) ([]*domain.Station, error)
}

// PriceCalculator интерфейс движка ценообразования
type PriceCalculator interface {
	CalculatePrice(stationType domain.StationType, durationHours float64, opts domain.PriceOptions) float64
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
