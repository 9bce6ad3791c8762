package check_availability

import (
	"context"
	"fmt"
)

// UseCase use case проверки доступности станций на интервал
//
// Проверка advisory: авторитетный отказ при создании дает exclusion
// constraint в БД. Этот usecase нужен для быстрого UX-ответа
// "какие станции заняты" без открытия транзакции
type UseCase struct {
	reservationRepo ReservationRepository
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(reservationRepo ReservationRepository, logger Logger) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		logger:          logger,
	}
}

// Execute возвращает подмножество запрошенных станций, занятых на интервал
//
// Пересечение строгое: бронирование, заканчивающееся ровно в начале
// запрошенного интервала, конфликтом не считается (соседние сессии
// стыкуются впритык и станция используется максимально плотно)
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckAvailability: stations=%v, interval=[%s, %s)",
		req.StationIDs, req.StartAt, req.EndAt)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}

	// Пустой набор станций — тривиально пустой ответ
	if len(req.StationIDs) == 0 {
		return &Response{Unavailable: []string{}}, nil
	}

	var excludeIDs []int64
	if req.ExcludeReservationID != nil {
		excludeIDs = []int64{*req.ExcludeReservationID}
	}

	unavailable, err := uc.reservationRepo.FindConflictingStationIDs(ctx, req.StationIDs, req.StartAt, req.EndAt, excludeIDs)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to find conflicts: %v", err)
		return nil, fmt.Errorf("%w: failed to find conflicts: %w", ErrInternal, err)
	}

	uc.logger.Info("CheckAvailability: %d of %d stations unavailable", len(unavailable), len(req.StationIDs))
	return &Response{Unavailable: unavailable}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.StartAt.IsZero() || req.EndAt.IsZero() {
		return fmt.Errorf("%w: startAt and endAt are required", ErrInvalidInput)
	}

	if !req.EndAt.After(req.StartAt) {
		return fmt.Errorf("%w: endAt must be after startAt", ErrInvalidInput)
	}

	for _, id := range req.StationIDs {
		if id == "" {
			return fmt.Errorf("%w: station id must not be empty", ErrInvalidInput)
		}
	}

	return nil
}
