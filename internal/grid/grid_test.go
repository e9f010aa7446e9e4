package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/digennarot/dndScheduler/internal/domain"
	"github.com/digennarot/dndScheduler/internal/slot"
)

func editGrid(t *testing.T, st *Store) *Grid {
	t.Helper()
	g, err := New(Config{
		Dates: []string{"2025-06-01", "2025-06-02"},
		TimeSlots: map[string][]string{
			"2025-06-01": {"18:00", "19:00"},
			"2025-06-02": {"18:00", "19:00"},
		},
		Mode: ModeEdit,
		OnSlotChange: func(date, timeOfDay string, status domain.AvailabilityStatus) {
			st.Set(slot.Key{Date: date, Time: timeOfDay}, status)
		},
	})
	require.NoError(t, err)
	return g
}

func TestNewRejectsBadConfigurations(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err, "zero dates is a configuration error")

	_, err = New(Config{
		Dates:     []string{"2025-06-01"},
		TimeSlots: map[string][]string{},
	})
	assert.Error(t, err, "a date with zero time slots is a configuration error")

	_, err = New(Config{
		Dates:     []string{"2025-06-01"},
		TimeSlots: map[string][]string{"2025-06-01": {"6pm"}},
	})
	assert.Error(t, err)
}

func TestLayoutDisablesUnconfiguredPairs(t *testing.T) {
	g, err := New(Config{
		Dates: []string{"2025-06-01", "2025-06-02"},
		TimeSlots: map[string][]string{
			"2025-06-01": {"18:00", "19:00"},
			"2025-06-02": {"20:00"},
		},
	})
	require.NoError(t, err)

	// uniform time axis is the sorted union
	assert.Equal(t, []string{"18:00", "19:00", "20:00"}, g.Rows())

	cell, ok := g.Cell(slot.Key{Date: "2025-06-02", Time: "18:00"})
	require.True(t, ok)
	assert.False(t, cell.Enabled, "pair outside the date's set must be disabled")

	cell, ok = g.Cell(slot.Key{Date: "2025-06-02", Time: "20:00"})
	require.True(t, ok)
	assert.True(t, cell.Enabled)

	// disabled cells never accept paint
	assert.False(t, g.PointerDown(slot.Key{Date: "2025-06-02", Time: "18:00"}))
	assert.False(t, g.Dragging())
}

func TestClickCycleReturnsToEmptyAfterThree(t *testing.T) {
	st := NewStore()
	g := editGrid(t, st)
	k := slot.Key{Date: "2025-06-01", Time: "18:00"}

	click := func() {
		require.True(t, g.PointerDown(k))
		g.PointerUp()
	}

	click()
	assert.Equal(t, domain.StatusAvailable, st.Get(k))
	click()
	assert.Equal(t, domain.StatusTentative, st.Get(k))
	click()
	assert.Equal(t, domain.StatusEmpty, st.Get(k))
	assert.Zero(t, st.Len())
}

func TestDragPaintsTargetAcrossCells(t *testing.T) {
	st := NewStore()
	g := editGrid(t, st)

	k1 := slot.Key{Date: "2025-06-01", Time: "18:00"}
	k2 := slot.Key{Date: "2025-06-01", Time: "19:00"}
	k3 := slot.Key{Date: "2025-06-02", Time: "18:00"}

	// pre-paint k2 to tentative so the drag has something to overwrite
	st.Set(k2, domain.StatusTentative)
	g.RefreshFromStore(st)

	// drag starting on an empty cell paints everything available
	require.True(t, g.PointerDown(k1))
	assert.True(t, g.Dragging())
	require.True(t, g.PointerEnter(k2))
	require.True(t, g.PointerEnter(k3))
	g.PointerUp()

	for _, k := range []slot.Key{k1, k2, k3} {
		assert.Equal(t, domain.StatusAvailable, st.Get(k), "slot %s", k)
	}
	assert.False(t, g.Dragging())
}

func TestDragPaintsEachCellAtMostOnce(t *testing.T) {
	st := NewStore()
	g := editGrid(t, st)

	var calls int
	g.cfg.OnSlotChange = func(date, timeOfDay string, status domain.AvailabilityStatus) {
		calls++
		st.Set(slot.Key{Date: date, Time: timeOfDay}, status)
	}

	k1 := slot.Key{Date: "2025-06-01", Time: "18:00"}
	k2 := slot.Key{Date: "2025-06-01", Time: "19:00"}

	require.True(t, g.PointerDown(k1))
	require.True(t, g.PointerEnter(k2))
	// re-entering an already painted cell is a no-op
	assert.False(t, g.PointerEnter(k2))
	assert.False(t, g.PointerEnter(k1))
	g.PointerUp()

	assert.Equal(t, 2, calls)
}

func TestEnterWithoutDragIsNoop(t *testing.T) {
	st := NewStore()
	g := editGrid(t, st)

	assert.False(t, g.PointerEnter(slot.Key{Date: "2025-06-01", Time: "18:00"}))
	assert.Zero(t, st.Len())
}

func TestPointerCancelAlwaysReturnsToIdle(t *testing.T) {
	st := NewStore()
	g := editGrid(t, st)

	require.True(t, g.PointerDown(slot.Key{Date: "2025-06-01", Time: "18:00"}))
	g.PointerCancel()
	assert.False(t, g.Dragging())

	// the next gesture starts a fresh cycle from the cell's own state
	require.True(t, g.PointerDown(slot.Key{Date: "2025-06-01", Time: "18:00"}))
	g.PointerUp()
	assert.Equal(t, domain.StatusTentative, st.Get(slot.Key{Date: "2025-06-01", Time: "18:00"}))
}

func TestHitTest(t *testing.T) {
	st := NewStore()
	g := editGrid(t, st)
	m := DefaultMetrics

	// header row and label column are not cells
	_, ok := g.HitTest(m.LabelWidth+1, m.HeaderHeight-1)
	assert.False(t, ok)
	_, ok = g.HitTest(m.LabelWidth-1, m.HeaderHeight+1)
	assert.False(t, ok)

	// first cell
	k, ok := g.HitTest(m.LabelWidth+1, m.HeaderHeight+1)
	require.True(t, ok)
	assert.Equal(t, slot.Key{Date: "2025-06-01", Time: "18:00"}, k)

	// second column, second row
	k, ok = g.HitTest(m.LabelWidth+m.CellWidth+1, m.HeaderHeight+m.CellHeight+1)
	require.True(t, ok)
	assert.Equal(t, slot.Key{Date: "2025-06-02", Time: "19:00"}, k)

	// beyond the last column
	_, ok = g.HitTest(m.LabelWidth+m.CellWidth*5, m.HeaderHeight+1)
	assert.False(t, ok)
}

func TestTouchPaintViaHitTesting(t *testing.T) {
	st := NewStore()
	g := editGrid(t, st)
	m := DefaultMetrics

	require.True(t, g.PointerDownAt(m.LabelWidth+1, m.HeaderHeight+1))
	require.True(t, g.PointerMoveAt(m.LabelWidth+m.CellWidth+1, m.HeaderHeight+1))
	// moving over the header mid-drag is a no-op, not a fault
	assert.False(t, g.PointerMoveAt(m.LabelWidth+1, 0))
	g.PointerUp()

	assert.Equal(t, domain.StatusAvailable, st.Get(slot.Key{Date: "2025-06-01", Time: "18:00"}))
	assert.Equal(t, domain.StatusAvailable, st.Get(slot.Key{Date: "2025-06-02", Time: "18:00"}))
}

func TestVisualStateMatchesStoreAfterAnyGesture(t *testing.T) {
	st := NewStore()
	g := editGrid(t, st)

	gestures := [][]slot.Key{
		{{Date: "2025-06-01", Time: "18:00"}},
		{{Date: "2025-06-01", Time: "18:00"}, {Date: "2025-06-02", Time: "19:00"}},
		{{Date: "2025-06-02", Time: "19:00"}, {Date: "2025-06-01", Time: "19:00"}, {Date: "2025-06-01", Time: "18:00"}},
	}

	for _, gesture := range gestures {
		require.True(t, g.PointerDown(gesture[0]))
		for _, k := range gesture[1:] {
			g.PointerEnter(k)
		}
		g.PointerUp()

		for _, k := range g.EnabledKeys() {
			cell, ok := g.Cell(k)
			require.True(t, ok)
			assert.Equal(t, st.Get(k), cell.Status, "cell %s out of sync after gesture", k)
		}
	}
}

func TestHeatmapMode(t *testing.T) {
	heat := map[slot.Key]HeatmapEntry{
		{Date: "2025-06-01", Time: "18:00"}: {Count: 3, Voters: []string{"Anna", "Bruno", "Carla"}},
		{Date: "2025-06-01", Time: "19:00"}: {Count: 7, Voters: []string{"a", "b", "c", "d", "e", "f", "g"}},
	}

	g, err := New(Config{
		Dates: []string{"2025-06-01"},
		TimeSlots: map[string][]string{
			"2025-06-01": {"18:00", "19:00"},
		},
		Mode:    ModeHeatmap,
		Heatmap: heat,
	})
	require.NoError(t, err)

	cell, _ := g.Cell(slot.Key{Date: "2025-06-01", Time: "18:00"})
	assert.Equal(t, 3, cell.Heat)
	assert.Equal(t, 3, cell.Count)

	// intensity saturates at 5
	cell, _ = g.Cell(slot.Key{Date: "2025-06-01", Time: "19:00"})
	assert.Equal(t, 5, cell.Heat)
	assert.Equal(t, 7, cell.Count)

	// heatmap cells are non-interactive
	assert.False(t, g.PointerDown(slot.Key{Date: "2025-06-01", Time: "18:00"}))

	// tooltip near the pointer
	m := DefaultMetrics
	tip, ok := g.Inspect(m.LabelWidth+1, m.HeaderHeight+1)
	require.True(t, ok)
	assert.Equal(t, 3, tip.Count)
	assert.Equal(t, []string{"Anna", "Bruno", "Carla"}, tip.Voters)
	assert.Equal(t, m.LabelWidth+11, tip.X)

	// cells without votes expose nothing
	_, ok = g.Inspect(m.LabelWidth+1, m.HeaderHeight+m.CellHeight*3)
	assert.False(t, ok)
}

func TestModeSwitchReconstructsFromStore(t *testing.T) {
	st := NewStore()
	g := editGrid(t, st)
	k := slot.Key{Date: "2025-06-01", Time: "18:00"}

	require.True(t, g.PointerDown(k))
	g.PointerUp()
	require.Equal(t, domain.StatusAvailable, st.Get(k))

	g.SetMode(ModeHeatmap, st)
	cell, _ := g.Cell(k)
	assert.Equal(t, domain.StatusEmpty, cell.Status, "heatmap render discards edit visuals")

	g.SetMode(ModeEdit, st)
	cell, _ = g.Cell(k)
	assert.Equal(t, domain.StatusAvailable, cell.Status, "edit visuals rebuilt from the store")
}

func TestHeatLevel(t *testing.T) {
	cases := map[int]int{-1: 0, 0: 0, 1: 1, 4: 4, 5: 5, 6: 5, 40: 5}
	for count, want := range cases {
		assert.Equal(t, want, HeatLevel(count), "count %d", count)
	}
}
