package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	rsvRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	stationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/station"
)

// UseCase use case создания бронирования (одиночного или группового)
//
// Защита от double-booking двухслойная:
//  1. Сериализуемая транзакция: проверка конфликтов и вставка выполняются
//     в одном изоляционном скоупе, конкурентные заявки не чередуются
//     (serialization failure повторяется в txmanager)
//  2. Exclusion constraint в БД по (station_id, tsrange(start_at, end_at))
//     для подтвержденных строк — авторитетная точка сериализации даже при
//     ошибке в слое приложения
//
// Наивный паттерн "проверили доступность, потом вставили" без общего
// транзакционного скоупа здесь запрещен: между проверкой и вставкой
// конкурентная заявка успевает занять станцию
type UseCase struct {
	reservationRepo ReservationRepository
	stationRepo     StationRepository
	priceCalc       PriceCalculator
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	stationRepo StationRepository,
	priceCalc PriceCalculator,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		stationRepo:     stationRepo,
		priceCalc:       priceCalc,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет провайдер времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: stations=%v, interval=[%s, %s), phone=%s",
		req.StationIDs, req.StartAt, req.EndAt, req.CustomerPhone)

	// 1. Валидация входных данных
	now := uc.timeProvider.Now()
	if err := validateRequest(req, now); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	var created []*domain.Reservation

	// 2. Все операции с БД — в одной сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		created = nil

		// 2.1. Загружаем станции: валидирует существование и дает тариф для расчета цены
		stations, err := uc.stationRepo.GetByIDs(txCtx, req.StationIDs)
		if err != nil {
			if errors.Is(err, stationRepo.ErrStationNotFound) {
				return ErrStationNotFound
			}
			return fmt.Errorf("%w: failed to get stations: %w", ErrInternal, err)
		}

		// 2.2. Проверяем конфликты по всем станциям группы с блокировкой строк
		conflicting, err := uc.reservationRepo.FindConflictingStationIDs(txCtx, req.StationIDs, req.StartAt, req.EndAt, nil)
		if err != nil {
			return fmt.Errorf("%w: failed to find conflicts: %w", ErrInternal, err)
		}

		// Групповая заявка атомарна: конфликт хотя бы одной станции отклоняет всё
		if len(conflicting) > 0 {
			return &StationsUnavailableError{StationIDs: conflicting}
		}

		// 2.3. Групповая заявка получает общий group_id
		var groupID *uuid.UUID
		if len(stations) > 1 {
			id := uuid.New()
			groupID = &id
		}

		durationHours := req.EndAt.Sub(req.StartAt).Hours()

		// 2.4. Создаем бронирование на каждую станцию, цена — по тарифу станции
		for _, st := range stations {
			reservation := &domain.Reservation{
				StationID:     st.ID,
				GroupID:       groupID,
				StartAt:       req.StartAt,
				EndAt:         req.EndAt,
				Status:        domain.StatusConfirmed,
				PaymentStatus: domain.PaymentUnpaid,
				CustomerName:  req.CustomerName,
				CustomerPhone: req.CustomerPhone,
				CustomerEmail: req.CustomerEmail,
				TotalPrice:    uc.priceCalc.CalculatePrice(st.Type, durationHours, req.PriceOptions),
				Notes:         req.Notes,
			}

			saved, err := uc.reservationRepo.Create(txCtx, reservation)
			if err != nil {
				// Exclusion constraint сработал несмотря на пре-проверку —
				// конкурентная вставка, отдаем как обычный конфликт
				if errors.Is(err, rsvRepo.ErrStationConflict) {
					return &StationsUnavailableError{StationIDs: []string{st.ID}}
				}
				return fmt.Errorf("%w: failed to create reservation: %w", ErrInternal, err)
			}

			created = append(created, saved)
		}

		return nil
	})

	if err != nil {
		var unavailable *StationsUnavailableError
		switch {
		case errors.As(err, &unavailable):
			uc.logger.Warn("CreateReservation: stations unavailable: %v", unavailable.StationIDs)
		case errors.Is(err, ErrStationNotFound):
			uc.logger.Warn("CreateReservation: station not found: %v", req.StationIDs)
		default:
			uc.logger.Error("CreateReservation: %v", err)
		}
		return nil, err
	}

	uc.logger.Info("CreateReservation: successfully created %d reservation(s)", len(created))

	result := make([]*ReservationData, len(created))
	for i, rsv := range created {
		result[i] = fromDomain(rsv)
	}
	return &Response{Reservations: result}, nil
}
