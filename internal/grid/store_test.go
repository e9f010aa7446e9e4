package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/digennarot/dndScheduler/internal/domain"
	"github.com/digennarot/dndScheduler/internal/slot"
)

// 2025-06-01 is a Sunday, 2025-06-02 a Monday.
var weekKeys = []slot.Key{
	{Date: "2025-06-01", Time: "18:00"},
	{Date: "2025-06-01", Time: "19:00"},
	{Date: "2025-06-02", Time: "18:00"},
	{Date: "2025-06-02", Time: "19:00"},
	{Date: "2025-06-07", Time: "18:00"}, // Saturday
}

func TestSetEmptyAndBusyClearTheEntry(t *testing.T) {
	st := NewStore()
	k := weekKeys[0]

	st.Set(k, domain.StatusAvailable)
	assert.Equal(t, 1, st.Len())

	st.Set(k, domain.StatusEmpty)
	assert.Zero(t, st.Len())

	st.Set(k, domain.StatusTentative)
	st.Set(k, domain.StatusBusy)
	assert.Zero(t, st.Len(), "busy is equivalent to absence")
}

func TestBulkActions(t *testing.T) {
	st := NewStore()

	st.MarkAllAvailable(weekKeys)
	assert.Equal(t, len(weekKeys), st.Len())
	for _, k := range weekKeys {
		assert.Equal(t, domain.StatusAvailable, st.Get(k))
	}

	st.MarkWeekends(weekKeys)
	assert.Equal(t, 3, st.Len())
	assert.Equal(t, domain.StatusAvailable, st.Get(weekKeys[0]))
	assert.Equal(t, domain.StatusAvailable, st.Get(weekKeys[4]))
	assert.Equal(t, domain.StatusEmpty, st.Get(weekKeys[2]), "weekday cleared, not kept")

	st.MarkWeekdays(weekKeys)
	assert.Equal(t, 2, st.Len())
	assert.Equal(t, domain.StatusAvailable, st.Get(weekKeys[2]))
	assert.Equal(t, domain.StatusEmpty, st.Get(weekKeys[0]))

	st.Clear()
	assert.Zero(t, st.Len())
}

func TestBulkActionRefreshesGridInOnePass(t *testing.T) {
	st := NewStore()
	g, err := New(Config{
		Dates: []string{"2025-06-01", "2025-06-02"},
		TimeSlots: map[string][]string{
			"2025-06-01": {"18:00"},
			"2025-06-02": {"18:00"},
		},
	})
	require.NoError(t, err)

	st.MarkAllAvailable(g.EnabledKeys())
	g.RefreshFromStore(st)

	for _, k := range g.EnabledKeys() {
		cell, ok := g.Cell(k)
		require.True(t, ok)
		assert.Equal(t, domain.StatusAvailable, cell.Status)
	}
}

func TestSubmissionGuardAndOrdering(t *testing.T) {
	st := NewStore()

	_, err := st.Submission()
	assert.ErrorIs(t, err, ErrNothingMarked)

	st.Set(slot.Key{Date: "2025-06-02", Time: "19:00"}, domain.StatusTentative)
	st.Set(slot.Key{Date: "2025-06-01", Time: "18:00"}, domain.StatusAvailable)
	st.Set(slot.Key{Date: "2025-06-02", Time: "18:00"}, domain.StatusAvailable)

	entries, err := st.Submission()
	require.NoError(t, err)
	assert.Equal(t, []Entry{
		{Date: "2025-06-01", TimeSlot: "18:00", Status: domain.StatusAvailable},
		{Date: "2025-06-02", TimeSlot: "18:00", Status: domain.StatusAvailable},
		{Date: "2025-06-02", TimeSlot: "19:00", Status: domain.StatusTentative},
	}, entries)

	// a failed submission leaves the store untouched for retry; nothing
	// in Submission mutates it
	assert.Equal(t, 3, st.Len())
}

func TestSeedFromPreviousRecords(t *testing.T) {
	st := NewStore()
	st.Set(slot.Key{Date: "2025-06-01", Time: "18:00"}, domain.StatusTentative)

	st.Seed([]*domain.AvailabilityRecord{
		{Date: "2025-06-02", TimeSlot: "19:00", Status: domain.StatusAvailable},
		{Date: "2025-06-02", TimeSlot: "20:00", Status: domain.StatusBusy},
	})

	assert.Equal(t, 1, st.Len(), "seed replaces prior content; busy records are absence")
	assert.Equal(t, domain.StatusAvailable, st.Get(slot.Key{Date: "2025-06-02", Time: "19:00"}))
}

func TestResetRestoresSeededState(t *testing.T) {
	st := NewStore()
	st.Seed([]*domain.AvailabilityRecord{
		{Date: "2025-06-02", TimeSlot: "19:00", Status: domain.StatusAvailable},
	})

	st.Set(slot.Key{Date: "2025-06-01", Time: "18:00"}, domain.StatusTentative)
	st.Set(slot.Key{Date: "2025-06-02", Time: "19:00"}, domain.StatusEmpty)
	require.Zero(t, st.Get(slot.Key{Date: "2025-06-02", Time: "19:00"}))

	st.Reset()

	assert.Equal(t, 1, st.Len())
	assert.Equal(t, domain.StatusAvailable, st.Get(slot.Key{Date: "2025-06-02", Time: "19:00"}))

	// a never-seeded store resets to empty
	st2 := NewStore()
	st2.Set(slot.Key{Date: "2025-06-01", Time: "18:00"}, domain.StatusAvailable)
	st2.Reset()
	assert.Zero(t, st2.Len())
}
