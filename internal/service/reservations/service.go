package reservations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	rsvRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	stationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/station"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
)

// Service сервис чтения бронирований и каталога станций + отмена
// Путь создания/редактирования/остановки живет в отдельных usecase'ах
type Service struct {
	reservationRepo ReservationRepository
	stationRepo     StationRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	cancelMinNotice time.Duration
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	stationRepo StationRepository,
	txManager TransactionManager,
	cancelMinNoticeMinutes int,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		stationRepo:     stationRepo,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		cancelMinNotice: time.Duration(cancelMinNoticeMinutes) * time.Minute,
		logger:          logger,
	}
}

// WithTimeProvider подменяет провайдер времени (для тестов)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// GetByID получает бронирование по ID вместе со всеми участниками его группы
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ReservationResponse, *models.ReservationListResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d", id)

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, rsvRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, nil, fmt.Errorf("%w: GetByID - repository error: %w", ErrInternal, err)
	}

	members, err := s.reservationRepo.GetGroupMembers(ctx, reservation)
	if err != nil {
		s.logger.Error("GetByID: failed to expand group for reservation id=%d: %v", id, err)
		return nil, nil, fmt.Errorf("%w: GetByID - expand group: %w", ErrInternal, err)
	}

	s.logger.Info("GetByID: successfully fetched reservation id=%d (group size=%d)", id, len(members))
	return models.FromDomainReservation(reservation), models.FromDomainReservationList(members), nil
}

// GetStationSchedule получает подтвержденные бронирования станции на указанные сутки
// Используется админкой для отображения расписания
func (s *Service) GetStationSchedule(ctx context.Context, stationID string, date time.Time) (*models.ReservationListResponse, error) {
	s.logger.Info("GetStationSchedule: station=%s, date=%s", stationID, date.Format(domain.DateFormat))

	if _, err := s.stationRepo.GetByID(ctx, stationID); err != nil {
		if errors.Is(err, stationRepo.ErrStationNotFound) {
			s.logger.Warn("GetStationSchedule: station %s not found", stationID)
			return nil, ErrStationNotFound
		}
		s.logger.Error("GetStationSchedule: failed to get station %s: %v", stationID, err)
		return nil, fmt.Errorf("%w: GetStationSchedule - get station: %w", ErrInternal, err)
	}

	reservations, err := s.reservationRepo.GetByStationAndDate(ctx, stationID, date)
	if err != nil {
		s.logger.Error("GetStationSchedule: repository error for station=%s: %v", stationID, err)
		return nil, fmt.Errorf("%w: GetStationSchedule - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("GetStationSchedule: successfully fetched %d reservations for station=%s", len(reservations), stationID)
	return models.FromDomainReservationList(reservations), nil
}

// GetStations получает каталог станций, опционально отфильтрованный по филиалу
func (s *Service) GetStations(ctx context.Context, branch string) (*models.StationListResponse, error) {
	s.logger.Info("GetStations: fetching stations, branch=%q", branch)

	stations, err := s.stationRepo.GetByBranch(ctx, branch)
	if err != nil {
		s.logger.Error("GetStations: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetStations - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("GetStations: successfully fetched %d stations", len(stations))
	return models.FromDomainStationList(stations), nil
}

// Cancel отменяет бронирование по запросу клиента
//
// Проверки:
//   - владелец: последние 9 цифр сохраненного телефона должны совпасть
//     с последними 9 цифрами телефона из запроса (код страны и форматирование
//     не учитываются)
//   - тайминг: до начала должно оставаться не меньше cancelMinNotice;
//     ровно на границе (например, 30:00 до начала) отмена еще разрешена
//
// Отмена групповой заявки отменяет всех участников группы атомарно
func (s *Service) Cancel(ctx context.Context, reservationID int64, req *models.CancelReservationRequest) error {
	s.logger.Info("Cancel: cancelling reservation id=%d", reservationID)

	if req.RequesterPhone == "" {
		return fmt.Errorf("%w: requester phone is required", ErrInvalidInput)
	}

	now := s.timeProvider.Now()

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		reservation, err := s.reservationRepo.GetByID(txCtx, reservationID)
		if err != nil {
			if errors.Is(err, rsvRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: Cancel - repository error: %w", ErrInternal, err)
		}

		if reservation.IsCancelled() {
			return ErrAlreadyCancelled
		}

		if !phoneSuffixMatches(reservation.CustomerPhone, req.RequesterPhone) {
			return ErrAccessDenied
		}

		// Граница включительная: ровно за cancelMinNotice до начала отмена разрешена
		if reservation.StartAt.Sub(now) < s.cancelMinNotice {
			return ErrTooLateToCancel
		}

		members, err := s.reservationRepo.GetGroupMembers(txCtx, reservation)
		if err != nil {
			return fmt.Errorf("%w: Cancel - expand group: %w", ErrInternal, err)
		}

		for _, member := range members {
			if err := s.reservationRepo.Cancel(txCtx, member.ID); err != nil {
				return fmt.Errorf("%w: Cancel - cancel member id=%d: %w", ErrInternal, member.ID, err)
			}
		}

		s.logger.Info("Cancel: cancelled %d reservation(s) in group of id=%d", len(members), reservationID)
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrReservationNotFound),
			errors.Is(err, ErrAlreadyCancelled),
			errors.Is(err, ErrAccessDenied),
			errors.Is(err, ErrTooLateToCancel):
			s.logger.Warn("Cancel: reservation id=%d: %v", reservationID, err)
		default:
			s.logger.Error("Cancel: reservation id=%d: %v", reservationID, err)
		}
		return err
	}

	s.logger.Info("Cancel: successfully cancelled reservation id=%d", reservationID)
	return nil
}

// phoneSuffixMatches сравнивает последние домен.PhoneSuffixLength цифр двух телефонов
// Терпимо к коду страны и форматированию ("+995 555 123456" == "555123456")
func phoneSuffixMatches(stored, supplied string) bool {
	a := phoneDigitsSuffix(stored)
	b := phoneDigitsSuffix(supplied)
	return a != "" && a == b
}

// phoneDigitsSuffix оставляет только цифры и возвращает последние PhoneSuffixLength из них
func phoneDigitsSuffix(phone string) string {
	digits := make([]rune, 0, len(phone))
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}
	if len(digits) > domain.PhoneSuffixLength {
		digits = digits[len(digits)-domain.PhoneSuffixLength:]
	}
	return string(digits)
}
