package reservations

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	GetGroupMembers(ctx context.Context, rsv *domain.Reservation) ([]*domain.Reservation, error)
	GetByStationAndDate(ctx context.Context, stationID string, date time.Time) ([]*domain.Reservation, error)
	Cancel(ctx context.Context, id int64) error
}

// StationRepository интерфейс репозитория каталога станций
type StationRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Station, error)
	GetByBranch(ctx context.Context, branch string) ([]*domain.Station, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
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
