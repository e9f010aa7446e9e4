package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleAffectsOnlyOneDate(t *testing.T) {
	b, err := NewBuilder([]string{"2025-06-01", "2025-06-02"})
	require.NoError(t, err)

	require.NoError(t, b.Toggle("2025-06-01", "18:00"))
	require.NoError(t, b.Toggle("2025-06-01", "19:00"))

	assert.Equal(t, []string{"18:00", "19:00"}, b.Times("2025-06-01"))
	assert.Empty(t, b.Times("2025-06-02"))

	// toggling again removes
	require.NoError(t, b.Toggle("2025-06-01", "18:00"))
	assert.Equal(t, []string{"19:00"}, b.Times("2025-06-01"))
}

func TestToggleRejectsUnknownDateAndBadTime(t *testing.T) {
	b, err := NewBuilder([]string{"2025-06-01"})
	require.NoError(t, err)

	assert.Error(t, b.Toggle("2025-06-03", "18:00"))
	assert.Error(t, b.Toggle("2025-06-01", "6pm"))
}

func TestCopyFirstToAllReplacesNotMerges(t *testing.T) {
	b, err := NewBuilder([]string{"2025-06-01", "2025-06-02", "2025-06-03"})
	require.NoError(t, err)

	require.NoError(t, b.Toggle("2025-06-01", "18:00"))
	require.NoError(t, b.Toggle("2025-06-01", "19:00"))
	require.NoError(t, b.Toggle("2025-06-02", "20:00"))

	require.NoError(t, b.CopyFirstToAll())

	assert.Equal(t, []string{"18:00", "19:00"}, b.Times("2025-06-02"), "previous selection must be replaced")
	assert.Equal(t, []string{"18:00", "19:00"}, b.Times("2025-06-03"))
}

func TestCopyFirstToAllRequiresFirstDateTimes(t *testing.T) {
	b, err := NewBuilder([]string{"2025-06-01", "2025-06-02"})
	require.NoError(t, err)
	require.NoError(t, b.Toggle("2025-06-02", "20:00"))

	assert.ErrorIs(t, b.CopyFirstToAll(), ErrFirstDateEmpty)
	// rejected operation must not mutate anything
	assert.Equal(t, []string{"20:00"}, b.Times("2025-06-02"))
}

func TestSetDatesPrunesAndInitializes(t *testing.T) {
	b, err := NewBuilder([]string{"2025-06-01", "2025-06-02"})
	require.NoError(t, err)
	require.NoError(t, b.Toggle("2025-06-02", "20:00"))

	require.NoError(t, b.SetDates([]string{"2025-06-01", "2025-06-05"}))

	assert.Empty(t, b.Times("2025-06-02"), "dropped date keeps no orphaned entry")
	assert.Empty(t, b.Times("2025-06-05"), "added date starts empty")

	dates, times := b.TimeSlots()
	assert.Empty(t, dates)
	assert.Empty(t, times)
}

func TestValidate(t *testing.T) {
	b, err := NewBuilder(nil)
	require.NoError(t, err)
	assert.ErrorIs(t, b.Validate(), ErrNoDates)

	require.NoError(t, b.SetDates([]string{"2025-06-01", "2025-06-02"}))
	assert.ErrorIs(t, b.Validate(), ErrNoTimeSelected)

	require.NoError(t, b.Toggle("2025-06-02", "18:00"))
	assert.NoError(t, b.Validate())
}

func TestTimeSlotsDropsEmptyDates(t *testing.T) {
	b, err := NewBuilder([]string{"2025-06-01", "2025-06-02"})
	require.NoError(t, err)
	require.NoError(t, b.Toggle("2025-06-01", "18:00"))

	dates, times := b.TimeSlots()
	assert.Equal(t, []string{"2025-06-01"}, dates)
	assert.Equal(t, map[string][]string{"2025-06-01": {"18:00"}}, times)
}
