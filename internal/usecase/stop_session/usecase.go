package stop_session

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	rsvRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
)

// UseCase use case досрочной остановки сессии с перерасчетом
//
// Состояния: остановить можно только живую сессию (подтвержденную,
// start < now < end). Остановка терминальна для сессии, но строка
// бронирования остается как исторический факт; после обновления end
// сессия перестает считаться живой и интервал после now освобождается.
//
// Для группы остановка применяется ко всем участникам атомарно:
// у каждого участника end = now, payment_status = paid, цена — по
// выбранному режиму (CUSTOM делится поровну между участниками)
type UseCase struct {
	reservationRepo  ReservationRepository
	stationRepo      StationRepository
	priceCalc        PriceCalculator
	txManager        TransactionManager
	timeProvider     TimeProvider
	minChargeMinutes int
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	stationRepo StationRepository,
	priceCalc PriceCalculator,
	txManager TransactionManager,
	minChargeMinutes int,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo:  reservationRepo,
		stationRepo:      stationRepo,
		priceCalc:        priceCalc,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		minChargeMinutes: minChargeMinutes,
		logger:           logger,
	}
}

// WithTimeProvider подменяет провайдер времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case остановки сессии
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("StopSession: id=%d, mode=%s", req.ID, req.Mode)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("StopSession: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	var (
		updatedTarget  *domain.Reservation
		updatedMembers []*domain.Reservation
		elapsedMinutes int
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

		// Повторная остановка уже остановленной или отмененной сессии
		// возвращает стабильную ошибку, состояние не меняется
		if !target.IsLive(now) {
			return ErrSessionNotLive
		}

		// 2.2. Загружаем всех участников группы
		members, err := uc.reservationRepo.GetGroupMembers(txCtx, target)
		if err != nil {
			return fmt.Errorf("%w: failed to expand group: %w", ErrInternal, err)
		}

		// 2.3. Фактическое и забронированное время в минутах
		// Минимум одна тарифицируемая минута даже при мгновенной остановке
		elapsedMinutes = int(math.Round(now.Sub(target.StartAt).Minutes()))
		if elapsedMinutes < uc.minChargeMinutes {
			elapsedMinutes = uc.minChargeMinutes
		}
		reservedMinutes := int(math.Round(target.EndAt.Sub(target.StartAt).Minutes()))

		// 2.4. Тарифы станций нужны для режимов ACTUAL и RESERVED
		typeByStation, err := uc.stationTypes(txCtx, members)
		if err != nil {
			return err
		}

		// 2.5. Применяем остановку ко всем участникам
		for _, member := range members {
			var amount float64
			switch req.Mode {
			case ModeActual:
				amount = uc.priceCalc.CalculatePrice(typeByStation[member.StationID], float64(elapsedMinutes)/60, domain.PriceOptions{})
			case ModeReserved:
				amount = uc.priceCalc.CalculatePrice(typeByStation[member.StationID], float64(reservedMinutes)/60, domain.PriceOptions{})
			case ModeCustom:
				amount = uc.priceCalc.SplitCustomAmount(*req.CustomAmount, len(members))
			}

			member.EndAt = now
			member.TotalPrice = amount
			member.PaymentStatus = domain.PaymentPaid
			member.Notes = appendAuditNote(member.Notes, elapsedMinutes, amount, now)

			if err := uc.reservationRepo.Update(txCtx, member); err != nil {
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
		switch {
		case errors.Is(err, ErrReservationNotFound), errors.Is(err, ErrSessionNotLive):
			uc.logger.Warn("StopSession: id=%d: %v", req.ID, err)
		default:
			uc.logger.Error("StopSession: id=%d: %v", req.ID, err)
		}
		return nil, err
	}

	uc.logger.Info("StopSession: stopped %d session(s) in group of id=%d, elapsed=%d min",
		len(updatedMembers), req.ID, elapsedMinutes)

	memberData := make([]*ReservationData, len(updatedMembers))
	for i, m := range updatedMembers {
		memberData[i] = fromDomain(m, elapsedMinutes)
	}

	return &Response{
		Reservation:  fromDomain(updatedTarget, elapsedMinutes),
		GroupMembers: memberData,
	}, nil
}

// stationTypes возвращает отображение станция -> тариф для участников группы
func (uc *UseCase) stationTypes(ctx context.Context, members []*domain.Reservation) (map[string]domain.StationType, error) {
	stationIDs := make([]string, len(members))
	for i, m := range members {
		stationIDs[i] = m.StationID
	}

	stations, err := uc.stationRepo.GetByIDs(ctx, stationIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get stations: %w", ErrInternal, err)
	}

	result := make(map[string]domain.StationType, len(stations))
	for _, st := range stations {
		result[st.ID] = st.Type
	}
	return result, nil
}

// appendAuditNote дописывает в заметки аудит-запись об остановке сессии
func appendAuditNote(notes *string, elapsedMinutes int, amount float64, now time.Time) *string {
	entry := fmt.Sprintf("[stop %s] elapsed %d min, charged %.2f",
		now.Format("2006-01-02 15:04"), elapsedMinutes, amount)

	if notes == nil || *notes == "" {
		return &entry
	}

	combined := *notes + "\n" + entry
	return &combined
}
