package reservations

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrStationNotFound возвращается, когда станция не найдена
	ErrStationNotFound = errors.New("station not found")

	// ErrAccessDenied возвращается при несовпадении телефона клиента
	ErrAccessDenied = errors.New("access denied: phone does not match reservation owner")

	// ErrAlreadyCancelled возвращается при повторной отмене бронирования
	ErrAlreadyCancelled = errors.New("reservation is already cancelled")

	// ErrTooLateToCancel возвращается, когда до начала осталось меньше допустимого
	ErrTooLateToCancel = errors.New("too late to cancel this reservation")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
