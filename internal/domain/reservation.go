package domain

import (
	"time"

	"github.com/google/uuid"
)

// ReservationStatus статус бронирования
type ReservationStatus string

const (
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
)

// PaymentStatus статус оплаты бронирования
type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "unpaid"
	PaymentPaid   PaymentStatus = "paid"
)

// Reservation бронирование станции на интервал времени
type Reservation struct {
	ID        int64
	StationID string

	// GroupID объединяет бронирования, созданные одной групповой заявкой.
	// nil для одиночных бронирований
	GroupID *uuid.UUID

	StartAt time.Time
	EndAt   time.Time

	Status        ReservationStatus
	PaymentStatus PaymentStatus

	CustomerName  string
	CustomerPhone string
	CustomerEmail *string

	TotalPrice float64
	Notes      *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive возвращает true, если бронирование не отменено
func (r *Reservation) IsActive() bool {
	return r.Status == StatusConfirmed
}

// IsCancelled возвращает true, если бронирование отменено
func (r *Reservation) IsCancelled() bool {
	return r.Status == StatusCancelled
}

// IsLive возвращает true, если сессия идет прямо сейчас
func (r *Reservation) IsLive(now time.Time) bool {
	return r.Status == StatusConfirmed && r.StartAt.Before(now) && r.EndAt.After(now)
}

// Duration возвращает длительность бронирования
func (r *Reservation) Duration() time.Duration {
	return r.EndAt.Sub(r.StartAt)
}

// DurationHours возвращает длительность бронирования в часах (дробное значение)
func (r *Reservation) DurationHours() float64 {
	return r.Duration().Hours()
}

// IsGrouped возвращает true, если бронирование входит в групповую заявку
func (r *Reservation) IsGrouped() bool {
	return r.GroupID != nil
}

// Overlaps проверяет пересечение интервала бронирования с [start, end)
// Строгие неравенства: соседние интервалы (конец одного равен началу
// другого) пересечением НЕ считаются
func (r *Reservation) Overlaps(start, end time.Time) bool {
	return r.StartAt.Before(end) && r.EndAt.After(start)
}
