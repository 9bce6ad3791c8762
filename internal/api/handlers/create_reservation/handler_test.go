package create_reservation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	createReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/create_reservation"
)

type fakeUseCase struct {
	resp    *createReservation.Response
	err     error
	lastReq *createReservation.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *createReservation.Request) (*createReservation.Response, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

const validBody = `{
	"stationIds": ["pro-1", "pro-2"],
	"startAt": "2026-03-01T14:00:00Z",
	"endAt": "2026-03-01T17:00:00Z",
	"customerName": "Giorgi",
	"customerPhone": "+995555123456"
}`

func doRequest(t *testing.T, uc *fakeUseCase, body string) *httptest.ResponseRecorder {
	t.Helper()
	h := NewHandler(uc, noopLogger{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	uc := &fakeUseCase{
		resp: &createReservation.Response{
			Reservations: []*createReservation.ReservationData{
				{
					ID:        1,
					StationID: "pro-1",
					StartAt:   time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC),
					EndAt:     time.Date(2026, 3, 1, 17, 0, 0, 0, time.UTC),
					Status:    "confirmed",
				},
			},
		},
	}

	rec := doRequest(t, uc, validBody)
	assert.Equal(t, http.StatusCreated, rec.Code)

	require.NotNil(t, uc.lastReq)
	assert.Equal(t, []string{"pro-1", "pro-2"}, uc.lastReq.StationIDs)
	assert.Equal(t, time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC), uc.lastReq.StartAt)

	var resp CreateReservationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Reservations, 1)
	assert.Equal(t, "pro-1", resp.Reservations[0].StationID)
	assert.Equal(t, "2026-03-01T14:00:00Z", resp.Reservations[0].StartAt)
}

func TestHandle_ConflictEnumeratesStations(t *testing.T) {
	uc := &fakeUseCase{
		err: &createReservation.StationsUnavailableError{StationIDs: []string{"pro-2"}},
	}

	rec := doRequest(t, uc, validBody)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// 409 всегда перечисляет занятые станции, не общее "не удалось"
	var resp ConflictResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"pro-2"}, resp.Conflicts)
	assert.NotEmpty(t, resp.Error)
}

func TestHandle_StationNotFound(t *testing.T) {
	uc := &fakeUseCase{err: createReservation.ErrStationNotFound}

	rec := doRequest(t, uc, validBody)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandle_ValidationError(t *testing.T) {
	uc := &fakeUseCase{err: createReservation.ErrInvalidInput}

	rec := doRequest(t, uc, validBody)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_MalformedBody(t *testing.T) {
	uc := &fakeUseCase{}

	rec := doRequest(t, uc, `{"stationIds": [`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, uc.lastReq)
}

func TestHandle_BadTimestamps(t *testing.T) {
	uc := &fakeUseCase{}

	body := strings.Replace(validBody, "2026-03-01T14:00:00Z", "tomorrow at noon", 1)
	rec := doRequest(t, uc, body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, uc.lastReq)
}

func TestHandle_InternalError(t *testing.T) {
	uc := &fakeUseCase{err: createReservation.ErrInternal}

	rec := doRequest(t, uc, validBody)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
