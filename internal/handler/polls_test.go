package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	h, err := NewHandler(nil, nil, nil, nil)
	require.NoError(t, err)
	return h
}

func TestBuildScheduleNormalizes(t *testing.T) {
	h := newTestHandler(t)

	dates, times, err := h.buildSchedule(&pollRequest{
		Dates: []string{"2025-06-02", "2025-06-01", "2025-06-03"},
		TimeSlots: map[string][]string{
			"2025-06-01": {"20:00", "18:00"},
			"2025-06-02": {"19:00"},
			// 2025-06-03 has no selected times and must be dropped
		},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"2025-06-01", "2025-06-02"}, dates)
	assert.Equal(t, []string{"18:00", "20:00"}, times["2025-06-01"])
	assert.Equal(t, []string{"19:00"}, times["2025-06-02"])
	assert.NotContains(t, times, "2025-06-03")
}

func TestBuildScheduleExpandsLegacyTimeRange(t *testing.T) {
	h := newTestHandler(t)

	dates, times, err := h.buildSchedule(&pollRequest{
		Dates:     []string{"2025-06-01", "2025-06-02"},
		TimeRange: []string{"18:00", "19:00"},
	})
	require.NoError(t, err)

	require.Equal(t, []string{"2025-06-01", "2025-06-02"}, dates)
	for _, date := range dates {
		assert.Equal(t, []string{"18:00", "19:00"}, times[date])
	}
}

func TestBuildScheduleRejectsEmptySelections(t *testing.T) {
	h := newTestHandler(t)

	_, _, err := h.buildSchedule(&pollRequest{Dates: []string{}})
	assert.Error(t, err)

	_, _, err = h.buildSchedule(&pollRequest{Dates: []string{"2025-06-01"}})
	assert.Error(t, err, "a poll needs at least one selected time slot")

	_, _, err = h.buildSchedule(&pollRequest{
		Dates:     []string{"2025-06-01"},
		TimeSlots: map[string][]string{"2025-06-01": {"25:99"}},
	})
	assert.Error(t, err)
}
