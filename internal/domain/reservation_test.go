package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("parse time %q: %v", value, err)
	}
	return parsed
}

func TestReservation_Overlaps(t *testing.T) {
	booked := &Reservation{
		StartAt: mustTime(t, "2026-03-01T14:00:00Z"),
		EndAt:   mustTime(t, "2026-03-01T17:00:00Z"),
	}

	tests := []struct {
		name  string
		start string
		end   string
		want  bool
	}{
		{"partial overlap at tail", "2026-03-01T16:00:00Z", "2026-03-01T19:00:00Z", true},
		{"partial overlap at head", "2026-03-01T12:00:00Z", "2026-03-01T15:00:00Z", true},
		{"fully contained", "2026-03-01T15:00:00Z", "2026-03-01T16:00:00Z", true},
		{"fully containing", "2026-03-01T13:00:00Z", "2026-03-01T18:00:00Z", true},
		{"adjacent after is not overlap", "2026-03-01T17:00:00Z", "2026-03-01T19:00:00Z", false},
		{"adjacent before is not overlap", "2026-03-01T12:00:00Z", "2026-03-01T14:00:00Z", false},
		{"disjoint", "2026-03-01T18:00:00Z", "2026-03-01T20:00:00Z", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := mustTime(t, tt.start), mustTime(t, tt.end)
			assert.Equal(t, tt.want, booked.Overlaps(start, end))

			// Симметрия: перестановка ролей интервалов дает тот же ответ
			other := &Reservation{StartAt: start, EndAt: end}
			assert.Equal(t, tt.want, other.Overlaps(booked.StartAt, booked.EndAt))
		})
	}
}

func TestReservation_IsLive(t *testing.T) {
	rsv := &Reservation{
		StartAt: mustTime(t, "2026-03-01T14:00:00Z"),
		EndAt:   mustTime(t, "2026-03-01T17:00:00Z"),
		Status:  StatusConfirmed,
	}

	assert.True(t, rsv.IsLive(mustTime(t, "2026-03-01T15:30:00Z")))
	assert.False(t, rsv.IsLive(mustTime(t, "2026-03-01T13:00:00Z")))
	assert.False(t, rsv.IsLive(mustTime(t, "2026-03-01T17:00:00Z")))
	assert.False(t, rsv.IsLive(mustTime(t, "2026-03-01T14:00:00Z")))

	cancelled := &Reservation{
		StartAt: rsv.StartAt,
		EndAt:   rsv.EndAt,
		Status:  StatusCancelled,
	}
	assert.False(t, cancelled.IsLive(mustTime(t, "2026-03-01T15:30:00Z")))
}

func TestGroupKey(t *testing.T) {
	start := mustTime(t, "2026-03-01T14:00:00Z")
	end := mustTime(t, "2026-03-01T17:00:00Z")

	a := &Reservation{CustomerPhone: "+995555123456", StartAt: start, EndAt: end}
	b := &Reservation{CustomerPhone: "+995555123456", StartAt: start, EndAt: end}
	c := &Reservation{CustomerPhone: "+995555123456", StartAt: start, EndAt: end.Add(time.Hour)}
	d := &Reservation{CustomerPhone: "+995555000000", StartAt: start, EndAt: end}

	assert.True(t, SameGroupTuple(a, b))
	assert.False(t, SameGroupTuple(a, c))
	assert.False(t, SameGroupTuple(a, d))
}
