package check_availability

import "time"

// Request модель запроса проверки доступности станций
type Request struct {
	StationIDs []string  // Станции, которые хочет занять клиент
	StartAt    time.Time // Начало интервала
	EndAt      time.Time // Конец интервала (не включается)

	// ExcludeReservationID — бронирование, которое нужно игнорировать.
	// Обязателен при проверке во время редактирования, чтобы бронирование
	// не конфликтовало со своей же предыдущей версией
	ExcludeReservationID *int64
}

// Response модель ответа проверки доступности
type Response struct {
	Unavailable []string // Станции, у которых есть конфликтующие бронирования
}
