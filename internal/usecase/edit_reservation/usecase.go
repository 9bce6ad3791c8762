package edit_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	rsvRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
)

// UseCase use case редактирования бронирования
//
// Редактирование участника группы синхронизирует всю группу: время,
// телефон, имя и статус оплаты применяются к каждому участнику в одной
// сериализуемой транзакции (все или никто). При смене интервала
// доступность перепроверяется для всех станций группы, причем сами
// участники группы из проверки исключаются — бронирование не должно
// конфликтовать со своей же предыдущей версией
type UseCase struct {
	reservationRepo ReservationRepository
	stationRepo     StationRepository
	priceCalc       PriceCalculator
	txManager       TransactionManager
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
		logger:          logger,
	}
}

// Execute выполняет use case редактирования бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("EditReservation: id=%d", req.ID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("EditReservation: validation failed: %v", err)
		return nil, err
	}

	var (
		updatedTarget  *domain.Reservation
		updatedMembers []*domain.Reservation
	)

	// 2. Все операции с БД — в одной сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		updatedTarget, updatedMembers = nil, nil

		// 2.1. Загружаем бронирование с блокировкой
		target, err := uc.reservationRepo.GetByID(txCtx, req.ID)
		if err != nil {
			if errors.Is(err, rsvRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: failed to get reservation: %w", ErrInternal, err)
		}

		if target.IsCancelled() {
			return ErrReservationCancelled
		}

		// 2.2. Загружаем всех участников группы (для одиночного — он сам)
		members, err := uc.reservationRepo.GetGroupMembers(txCtx, target)
		if err != nil {
			return fmt.Errorf("%w: failed to expand group: %w", ErrInternal, err)
		}

		timeChanged := req.StartAt != nil
		newStart, newEnd := target.StartAt, target.EndAt
		if timeChanged {
			newStart, newEnd = *req.StartAt, *req.EndAt
		}

		memberIDs := make([]int64, len(members))
		stationIDs := make([]string, len(members))
		for i, m := range members {
			memberIDs[i] = m.ID
			stationIDs[i] = m.StationID
		}

		// 2.3. Перепроверяем доступность нового интервала, исключая группу
		if timeChanged {
			conflicting, err := uc.reservationRepo.FindConflictingStationIDs(txCtx, stationIDs, newStart, newEnd, memberIDs)
			if err != nil {
				return fmt.Errorf("%w: failed to find conflicts: %w", ErrInternal, err)
			}
			if len(conflicting) > 0 {
				return &StationsUnavailableError{StationIDs: conflicting}
			}
		}

		// 2.4. Тарифы станций нужны для пересчета цены при смене интервала
		var typeByStation map[string]domain.StationType
		if timeChanged {
			stations, err := uc.stationRepo.GetByIDs(txCtx, stationIDs)
			if err != nil {
				return fmt.Errorf("%w: failed to get stations: %w", ErrInternal, err)
			}
			typeByStation = make(map[string]domain.StationType, len(stations))
			for _, st := range stations {
				typeByStation[st.ID] = st.Type
			}
		}

		// 2.5. Применяем изменения ко всем участникам группы
		newDurationHours := newEnd.Sub(newStart).Hours()

		for _, member := range members {
			member.StartAt = newStart
			member.EndAt = newEnd

			if req.CustomerName != nil {
				member.CustomerName = *req.CustomerName
			}
			if req.CustomerPhone != nil {
				member.CustomerPhone = *req.CustomerPhone
			}
			if req.CustomerEmail != nil {
				member.CustomerEmail = req.CustomerEmail
			}
			if req.PaymentStatus != nil {
				member.PaymentStatus = domain.PaymentStatus(*req.PaymentStatus)
			}

			// Заметки — свободный текст конкретного бронирования
			if req.Notes != nil && member.ID == target.ID {
				member.Notes = req.Notes
			}

			switch {
			case req.CustomTotalPrice != nil && member.ID == target.ID:
				member.TotalPrice = *req.CustomTotalPrice
			case timeChanged:
				member.TotalPrice = uc.priceCalc.CalculatePrice(typeByStation[member.StationID], newDurationHours, req.PriceOptions)
			}

			if err := uc.reservationRepo.Update(txCtx, member); err != nil {
				if errors.Is(err, rsvRepo.ErrStationConflict) {
					return &StationsUnavailableError{StationIDs: []string{member.StationID}}
				}
				return fmt.Errorf("%w: failed to update reservation id=%d: %w", ErrInternal, member.ID, err)
			}

			if member.ID == target.ID {
				updatedTarget = member
			}
		}

		updatedMembers = members
		return nil
	})

	if err != nil {
		var unavailable *StationsUnavailableError
		switch {
		case errors.As(err, &unavailable):
			uc.logger.Warn("EditReservation: id=%d stations unavailable: %v", req.ID, unavailable.StationIDs)
		case errors.Is(err, ErrReservationNotFound), errors.Is(err, ErrReservationCancelled):
			uc.logger.Warn("EditReservation: id=%d: %v", req.ID, err)
		default:
			uc.logger.Error("EditReservation: id=%d: %v", req.ID, err)
		}
		return nil, err
	}

	uc.logger.Info("EditReservation: successfully updated %d reservation(s) in group of id=%d", len(updatedMembers), req.ID)

	memberData := make([]*ReservationData, len(updatedMembers))
	for i, m := range updatedMembers {
		memberData[i] = fromDomain(m)
	}

	return &Response{
		Reservation:  fromDomain(updatedTarget),
		GroupMembers: memberData,
	}, nil
}
