package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	rsvRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	stationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/station"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
)

type fakeReservationRepo struct {
	byID      map[int64]*domain.Reservation
	cancelled []int64
}

func (f *fakeReservationRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	rsv, ok := f.byID[id]
	if !ok {
		return nil, rsvRepo.ErrReservationNotFound
	}
	copied := *rsv
	return &copied, nil
}

func (f *fakeReservationRepo) GetGroupMembers(_ context.Context, target *domain.Reservation) ([]*domain.Reservation, error) {
	if target.GroupID == nil {
		copied := *target
		return []*domain.Reservation{&copied}, nil
	}

	var members []*domain.Reservation
	for id := int64(1); id <= int64(len(f.byID))+10; id++ {
		rsv, ok := f.byID[id]
		if !ok {
			continue
		}
		sameGroup := rsv.GroupID != nil && *rsv.GroupID == *target.GroupID
		if sameGroup && (rsv.IsActive() || rsv.ID == target.ID) {
			copied := *rsv
			members = append(members, &copied)
		}
	}
	return members, nil
}

func (f *fakeReservationRepo) GetByStationAndDate(_ context.Context, stationID string, date time.Time) ([]*domain.Reservation, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	var result []*domain.Reservation
	for id := int64(1); id <= int64(len(f.byID))+10; id++ {
		rsv, ok := f.byID[id]
		if !ok {
			continue
		}
		if rsv.StationID == stationID && rsv.IsActive() && rsv.Overlaps(dayStart, dayEnd) {
			copied := *rsv
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (f *fakeReservationRepo) Cancel(_ context.Context, id int64) error {
	rsv, ok := f.byID[id]
	if !ok {
		return rsvRepo.ErrReservationNotFound
	}
	rsv.Status = domain.StatusCancelled
	f.cancelled = append(f.cancelled, id)
	return nil
}

type fakeStationRepo struct {
	stations map[string]*domain.Station
}

func (f *fakeStationRepo) GetByID(_ context.Context, id string) (*domain.Station, error) {
	st, ok := f.stations[id]
	if !ok {
		return nil, stationRepo.ErrStationNotFound
	}
	return st, nil
}

func (f *fakeStationRepo) GetByBranch(_ context.Context, branch string) ([]*domain.Station, error) {
	var result []*domain.Station
	for _, st := range f.stations {
		if branch == "" || st.Branch == branch {
			result = append(result, st)
		}
	}
	return result, nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func confirmedReservation(id int64, stationID, phone string, start time.Time) *domain.Reservation {
	return &domain.Reservation{
		ID:            id,
		StationID:     stationID,
		StartAt:       start,
		EndAt:         start.Add(3 * time.Hour),
		Status:        domain.StatusConfirmed,
		PaymentStatus: domain.PaymentUnpaid,
		CustomerName:  "Giorgi",
		CustomerPhone: phone,
		TotalPrice:    22,
	}
}

func newTestService(repo *fakeReservationRepo, now time.Time) *Service {
	stations := map[string]*domain.Station{
		"pro-1":  {ID: "pro-1", Type: domain.TypePro, Branch: "center", Name: "PRO #1"},
		"prem-1": {ID: "prem-1", Type: domain.TypePremium, Branch: "mall", Name: "PREMIUM #1"},
	}
	svc := NewService(repo, &fakeStationRepo{stations: stations}, fakeTxManager{}, domain.DefaultCancelMinNoticeMinutes, noopLogger{})
	return svc.WithTimeProvider(fixedClock{now: now})
}

func TestCancel_OwnerPhoneToleratesFormatting(t *testing.T) {
	// Сохранен телефон с кодом страны, клиент прислал без кода и с пробелами
	repo := &fakeReservationRepo{byID: map[int64]*domain.Reservation{
		1: confirmedReservation(1, "pro-1", "+995555123456", testNow.Add(2*time.Hour)),
	}}
	svc := newTestService(repo, testNow)

	err := svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{
		RequesterPhone: "555 123 456",
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, repo.cancelled)
}

func TestCancel_WrongPhoneDenied(t *testing.T) {
	repo := &fakeReservationRepo{byID: map[int64]*domain.Reservation{
		1: confirmedReservation(1, "pro-1", "+995555123456", testNow.Add(2*time.Hour)),
	}}
	svc := newTestService(repo, testNow)

	err := svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{
		RequesterPhone: "+995555999999",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Empty(t, repo.cancelled)
}

func TestCancel_ThirtyMinuteBoundary(t *testing.T) {
	phone := "+995555123456"

	tests := []struct {
		name    string
		startIn time.Duration
		wantErr error
	}{
		{"well before the deadline", 2 * time.Hour, nil},
		{"exactly at the boundary is allowed", 30 * time.Minute, nil},
		{"one minute past the boundary", 29 * time.Minute, ErrTooLateToCancel},
		{"session already started", -10 * time.Minute, ErrTooLateToCancel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeReservationRepo{byID: map[int64]*domain.Reservation{
				1: confirmedReservation(1, "pro-1", phone, testNow.Add(tt.startIn)),
			}}
			svc := newTestService(repo, testNow)

			err := svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{RequesterPhone: phone})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, repo.cancelled)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	rsv := confirmedReservation(1, "pro-1", "+995555123456", testNow.Add(2*time.Hour))
	rsv.Status = domain.StatusCancelled
	repo := &fakeReservationRepo{byID: map[int64]*domain.Reservation{1: rsv}}
	svc := newTestService(repo, testNow)

	// Повторная отмена возвращает стабильную ошибку, состояние не меняется
	err := svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{RequesterPhone: "+995555123456"})
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
	assert.Empty(t, repo.cancelled)
}

func TestCancel_FansOutToGroup(t *testing.T) {
	groupID := uuid.New()
	phone := "+995555123456"
	start := testNow.Add(2 * time.Hour)

	member := func(id int64, stationID string) *domain.Reservation {
		rsv := confirmedReservation(id, stationID, phone, start)
		rsv.GroupID = &groupID
		return rsv
	}
	repo := &fakeReservationRepo{byID: map[int64]*domain.Reservation{
		1: member(1, "pro-1"),
		2: member(2, "prem-1"),
	}}
	svc := newTestService(repo, testNow)

	err := svc.Cancel(context.Background(), 2, &models.CancelReservationRequest{RequesterPhone: phone})
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{1, 2}, repo.cancelled)
}

func TestCancel_NotFound(t *testing.T) {
	svc := newTestService(&fakeReservationRepo{byID: map[int64]*domain.Reservation{}}, testNow)

	err := svc.Cancel(context.Background(), 404, &models.CancelReservationRequest{RequesterPhone: "+995555123456"})
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestCancel_EmptyPhoneRejected(t *testing.T) {
	svc := newTestService(&fakeReservationRepo{byID: map[int64]*domain.Reservation{}}, testNow)

	err := svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetByID_ReturnsGroup(t *testing.T) {
	groupID := uuid.New()
	phone := "+995555123456"
	start := testNow.Add(2 * time.Hour)

	member := func(id int64, stationID string) *domain.Reservation {
		rsv := confirmedReservation(id, stationID, phone, start)
		rsv.GroupID = &groupID
		return rsv
	}
	repo := &fakeReservationRepo{byID: map[int64]*domain.Reservation{
		1: member(1, "pro-1"),
		2: member(2, "prem-1"),
	}}
	svc := newTestService(repo, testNow)

	rsv, group, err := svc.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rsv.ID)
	assert.Equal(t, 2, group.Total)
}

func TestGetByID_CancelledReservationKeepsItsGroup(t *testing.T) {
	groupID := uuid.New()
	phone := "+995555123456"
	start := testNow.Add(2 * time.Hour)

	member := func(id int64, stationID string) *domain.Reservation {
		rsv := confirmedReservation(id, stationID, phone, start)
		rsv.GroupID = &groupID
		return rsv
	}
	cancelled := member(2, "prem-1")
	cancelled.Status = domain.StatusCancelled
	repo := &fakeReservationRepo{byID: map[int64]*domain.Reservation{
		1: member(1, "pro-1"),
		2: cancelled,
	}}
	svc := newTestService(repo, testNow)

	// Отмененное бронирование читается вместе со своей группой:
	// сама запрошенная строка не выпадает из списка из-за статуса
	rsv, group, err := svc.GetByID(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), rsv.Status)
	require.Equal(t, 2, group.Total)

	ids := []int64{group.Reservations[0].ID, group.Reservations[1].ID}
	assert.ElementsMatch(t, []int64{1, 2}, ids)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := newTestService(&fakeReservationRepo{byID: map[int64]*domain.Reservation{}}, testNow)

	_, _, err := svc.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestGetStations_FiltersByBranch(t *testing.T) {
	svc := newTestService(&fakeReservationRepo{byID: map[int64]*domain.Reservation{}}, testNow)

	all, err := svc.GetStations(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 2, all.Total)

	center, err := svc.GetStations(context.Background(), "center")
	require.NoError(t, err)
	require.Equal(t, 1, center.Total)
	assert.Equal(t, "pro-1", center.Stations[0].ID)
}

func TestGetStationSchedule(t *testing.T) {
	repo := &fakeReservationRepo{byID: map[int64]*domain.Reservation{
		1: confirmedReservation(1, "pro-1", "+995555123456", testNow.Add(2*time.Hour)),
		2: confirmedReservation(2, "pro-1", "+995555999999", testNow.Add(24*time.Hour)),
	}}
	svc := newTestService(repo, testNow)

	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	schedule, err := svc.GetStationSchedule(context.Background(), "pro-1", day)
	require.NoError(t, err)
	require.Equal(t, 1, schedule.Total)
	assert.Equal(t, int64(1), schedule.Reservations[0].ID)
}

func TestGetStationSchedule_UnknownStation(t *testing.T) {
	svc := newTestService(&fakeReservationRepo{byID: map[int64]*domain.Reservation{}}, testNow)

	_, err := svc.GetStationSchedule(context.Background(), "ghost-1", testNow)
	assert.ErrorIs(t, err, ErrStationNotFound)
}
