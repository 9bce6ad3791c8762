package create_reservation

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	stationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/station"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
)

type fakeReservationRepo struct {
	reservations []*domain.Reservation
	nextID       int64
	createErr    error
}

func (f *fakeReservationRepo) Create(_ context.Context, rsv *domain.Reservation) (*domain.Reservation, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	saved := *rsv
	saved.ID = f.nextID
	f.reservations = append(f.reservations, &saved)
	return &saved, nil
}

func (f *fakeReservationRepo) FindConflictingStationIDs(_ context.Context, stationIDs []string, start, end time.Time, excludeIDs []int64) ([]string, error) {
	requested := make(map[string]struct{}, len(stationIDs))
	for _, id := range stationIDs {
		requested[id] = struct{}{}
	}
	excluded := make(map[int64]struct{}, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = struct{}{}
	}

	var conflicting []string
	seen := make(map[string]struct{})
	for _, rsv := range f.reservations {
		if _, ok := requested[rsv.StationID]; !ok {
			continue
		}
		if _, ok := excluded[rsv.ID]; ok {
			continue
		}
		if !rsv.IsActive() || !rsv.Overlaps(start, end) {
			continue
		}
		if _, ok := seen[rsv.StationID]; !ok {
			seen[rsv.StationID] = struct{}{}
			conflicting = append(conflicting, rsv.StationID)
		}
	}
	return conflicting, nil
}

type fakeStationRepo struct {
	stations map[string]*domain.Station
}

func (f *fakeStationRepo) GetByIDs(_ context.Context, ids []string) ([]*domain.Station, error) {
	result := make([]*domain.Station, 0, len(ids))
	for _, id := range ids {
		st, ok := f.stations[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", stationRepo.ErrStationNotFound, id)
		}
		result = append(result, st)
	}
	return result, nil
}

type fakePriceCalc struct{}

func (fakePriceCalc) CalculatePrice(stationType domain.StationType, durationHours float64, opts domain.PriceOptions) float64 {
	// Узнаваемые цены по тарифу, чтобы различать участников группы
	rates := map[domain.StationType]float64{
		domain.TypePro:     8,
		domain.TypePremium: 10,
	}
	return rates[stationType] * durationHours
}

type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
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

func testStations() map[string]*domain.Station {
	return map[string]*domain.Station{
		"pro-1":  {ID: "pro-1", Type: domain.TypePro, Branch: "center", Name: "PRO #1"},
		"pro-2":  {ID: "pro-2", Type: domain.TypePro, Branch: "center", Name: "PRO #2"},
		"prem-1": {ID: "prem-1", Type: domain.TypePremium, Branch: "center", Name: "PREMIUM #1"},
	}
}

func newTestUseCase(rsvRepo *fakeReservationRepo, now time.Time) *UseCase {
	return NewUseCase(
		rsvRepo,
		&fakeStationRepo{stations: testStations()},
		fakePriceCalc{},
		&fakeTxManager{},
		noopLogger{},
	).WithTimeProvider(fixedClock{now: now})
}

func validRequest(now time.Time) *Request {
	return &Request{
		StationIDs:    []string{"pro-1"},
		StartAt:       now.Add(time.Hour),
		EndAt:         now.Add(4 * time.Hour),
		CustomerName:  "Giorgi",
		CustomerPhone: "+995555123456",
	}
}

func TestExecute_CreatesSingleReservation(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := &fakeReservationRepo{}
	uc := newTestUseCase(repo, now)

	resp, err := uc.Execute(context.Background(), validRequest(now))
	require.NoError(t, err)
	require.Len(t, resp.Reservations, 1)

	created := resp.Reservations[0]
	assert.Equal(t, "pro-1", created.StationID)
	assert.Equal(t, string(domain.StatusConfirmed), created.Status)
	assert.Equal(t, string(domain.PaymentUnpaid), created.PaymentStatus)
	assert.Equal(t, float64(24), created.TotalPrice) // PRO, 3 часа
	assert.Nil(t, created.GroupID)                   // одиночное бронирование — без группы
}

func TestExecute_GroupGetsSharedGroupID(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := &fakeReservationRepo{}
	uc := newTestUseCase(repo, now)

	req := validRequest(now)
	req.StationIDs = []string{"pro-1", "pro-2", "prem-1"}

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, resp.Reservations, 3)

	// Все участники группы получают один и тот же group_id
	first := resp.Reservations[0].GroupID
	require.NotNil(t, first)
	for _, rsv := range resp.Reservations {
		require.NotNil(t, rsv.GroupID)
		assert.Equal(t, *first, *rsv.GroupID)
	}

	// Цена считается по тарифу каждой станции
	priceByStation := make(map[string]float64, 3)
	for _, rsv := range resp.Reservations {
		priceByStation[rsv.StationID] = rsv.TotalPrice
	}
	assert.Equal(t, float64(24), priceByStation["pro-1"])
	assert.Equal(t, float64(24), priceByStation["pro-2"])
	assert.Equal(t, float64(30), priceByStation["prem-1"])
}

func TestExecute_ConflictRejectsWholeGroup(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := &fakeReservationRepo{
		reservations: []*domain.Reservation{
			{
				ID:        100,
				StationID: "pro-2",
				StartAt:   now.Add(2 * time.Hour),
				EndAt:     now.Add(5 * time.Hour),
				Status:    domain.StatusConfirmed,
			},
		},
		nextID: 100,
	}
	uc := newTestUseCase(repo, now)

	req := validRequest(now)
	req.StationIDs = []string{"pro-1", "pro-2"}

	resp, err := uc.Execute(context.Background(), req)
	require.Error(t, err)
	assert.Nil(t, resp)

	// Ошибка перечисляет именно занятые станции
	assert.ErrorIs(t, err, ErrStationsUnavailable)
	var unavailable *StationsUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, []string{"pro-2"}, unavailable.StationIDs)

	// Группа атомарна: не создалось ничего, даже на свободной станции
	assert.Len(t, repo.reservations, 1)
}

func TestExecute_AdjacentIntervalIsNotConflict(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := &fakeReservationRepo{
		reservations: []*domain.Reservation{
			{
				ID:        100,
				StationID: "pro-1",
				StartAt:   time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC),
				EndAt:     time.Date(2026, 3, 1, 17, 0, 0, 0, time.UTC),
				Status:    domain.StatusConfirmed,
			},
		},
		nextID: 100,
	}
	uc := newTestUseCase(repo, now)

	// Стык впритык к существующему бронированию
	req := validRequest(now)
	req.StartAt = time.Date(2026, 3, 1, 17, 0, 0, 0, time.UTC)
	req.EndAt = time.Date(2026, 3, 1, 19, 0, 0, 0, time.UTC)

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, resp.Reservations, 1)
}

func TestExecute_CancelledReservationDoesNotBlock(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := &fakeReservationRepo{
		reservations: []*domain.Reservation{
			{
				ID:        100,
				StationID: "pro-1",
				StartAt:   now.Add(time.Hour),
				EndAt:     now.Add(4 * time.Hour),
				Status:    domain.StatusCancelled,
			},
		},
		nextID: 100,
	}
	uc := newTestUseCase(repo, now)

	resp, err := uc.Execute(context.Background(), validRequest(now))
	require.NoError(t, err)
	assert.Len(t, resp.Reservations, 1)
}

func TestExecute_StationNotFound(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeReservationRepo{}, now)

	req := validRequest(now)
	req.StationIDs = []string{"ghost-1"}

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrStationNotFound)
}

func TestExecute_Validation(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		mutate func(req *Request)
	}{
		{"no stations", func(req *Request) { req.StationIDs = nil }},
		{"empty station id", func(req *Request) { req.StationIDs = []string{""} }},
		{"duplicate station ids", func(req *Request) { req.StationIDs = []string{"pro-1", "pro-1"} }},
		{"zero duration", func(req *Request) { req.EndAt = req.StartAt }},
		{"negative duration", func(req *Request) { req.EndAt = req.StartAt.Add(-time.Hour) }},
		{"entirely in the past", func(req *Request) {
			req.StartAt = now.Add(-4 * time.Hour)
			req.EndAt = now.Add(-time.Hour)
		}},
		{"no customer name", func(req *Request) { req.CustomerName = "" }},
		{"no customer phone", func(req *Request) { req.CustomerPhone = "" }},
		{"negative price options", func(req *Request) { req.PriceOptions = domain.PriceOptions{Guests: -1} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeReservationRepo{}
			uc := newTestUseCase(repo, now)

			req := validRequest(now)
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Empty(t, repo.reservations)
		})
	}
}

func TestExecute_WalkInStartInPastAllowed(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeReservationRepo{}, now)

	// Сессия, начавшаяся "только что": начало в прошлом, конец в будущем
	req := validRequest(now)
	req.StartAt = now.Add(-10 * time.Minute)
	req.EndAt = now.Add(2 * time.Hour)

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, resp.Reservations, 1)
}

func TestExecute_NotesPassedThrough(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeReservationRepo{}, now)

	req := validRequest(now)
	req.Notes = ptr.Ptr("birthday party")

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, resp.Reservations[0].Notes)
	assert.Equal(t, "birthday party", *resp.Reservations[0].Notes)
}
