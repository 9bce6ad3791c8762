package stop_session

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("stop_session: invalid input data")

	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("stop_session: reservation not found")

	// ErrSessionNotLive возвращается, когда сессия не идет прямо сейчас
	// (еще не началась, уже закончилась или бронирование отменено).
	// Повторная остановка уже остановленной сессии дает эту же ошибку —
	// операция безопасна к ретраям
	ErrSessionNotLive = errors.New("stop_session: session is not live")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("stop_session: internal error")
)
