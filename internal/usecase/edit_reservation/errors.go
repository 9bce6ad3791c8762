package edit_reservation

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("edit_reservation: invalid input data")

	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("edit_reservation: reservation not found")

	// ErrReservationCancelled возвращается при попытке редактировать отмененное бронирование
	ErrReservationCancelled = errors.New("edit_reservation: reservation is cancelled")

	// ErrStationsUnavailable возвращается, когда новый интервал конфликтует
	// с чужими бронированиями хотя бы на одной станции группы
	ErrStationsUnavailable = errors.New("edit_reservation: stations unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("edit_reservation: internal error")
)

// StationsUnavailableError ошибка конфликта с перечнем занятых станций
type StationsUnavailableError struct {
	StationIDs []string
}

// Error реализует error
func (e *StationsUnavailableError) Error() string {
	return fmt.Sprintf("edit_reservation: stations unavailable: %s", strings.Join(e.StationIDs, ", "))
}

// Is поддерживает errors.Is(err, ErrStationsUnavailable)
func (e *StationsUnavailableError) Is(target error) bool {
	return target == ErrStationsUnavailable
}
