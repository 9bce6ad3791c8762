package create_reservation

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrStationNotFound возвращается, когда запрошенная станция не существует
	ErrStationNotFound = errors.New("create_reservation: station not found")

	// ErrStationsUnavailable возвращается, когда хотя бы одна станция занята
	// на запрошенный интервал. Групповая заявка атомарна: не создается ничего
	ErrStationsUnavailable = errors.New("create_reservation: stations unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)

// StationsUnavailableError ошибка конфликта с перечнем занятых станций
// Вызывающий код обязан показать клиенту, какие именно станции заняты,
// а не общее "бронирование не удалось"
type StationsUnavailableError struct {
	StationIDs []string
}

// Error реализует error
func (e *StationsUnavailableError) Error() string {
	return fmt.Sprintf("create_reservation: stations unavailable: %s", strings.Join(e.StationIDs, ", "))
}

// Is поддерживает errors.Is(err, ErrStationsUnavailable)
func (e *StationsUnavailableError) Is(target error) bool {
	return target == ErrStationsUnavailable
}
