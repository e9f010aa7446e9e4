package overlap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/digennarot/dndScheduler/internal/slot"
)

func aggSlot(date, t string, count int) *AggregatedSlot {
	return &AggregatedSlot{Slot: slot.Key{Date: date, Time: t}, Count: count}
}

func TestRankTopKAndPercentage(t *testing.T) {
	slots := []*AggregatedSlot{
		aggSlot("2025-06-01", "18:00", 5),
		aggSlot("2025-06-01", "19:00", 5),
		aggSlot("2025-06-02", "18:00", 3),
		aggSlot("2025-06-02", "19:00", 0),
	}

	ranked := Rank(slots, 5, 2)
	require.Len(t, ranked, 2)

	// ties keep input order
	assert.Equal(t, RankedSlot{Date: "2025-06-01", TimeOfDay: "18:00", AttendeeCount: 5, Percentage: 100}, ranked[0])
	assert.Equal(t, RankedSlot{Date: "2025-06-01", TimeOfDay: "19:00", AttendeeCount: 5, Percentage: 100}, ranked[1])
}

func TestRankIsDeterministic(t *testing.T) {
	slots := []*AggregatedSlot{
		aggSlot("2025-06-01", "18:00", 2),
		aggSlot("2025-06-01", "19:00", 4),
		aggSlot("2025-06-02", "18:00", 2),
		aggSlot("2025-06-02", "19:00", 1),
	}

	want := Rank(slots, 4, 3)
	for i := 0; i < 10; i++ {
		assert.Equal(t, want, Rank(slots, 4, 3))
	}
	assert.Equal(t, "19:00", want[0].TimeOfDay)
	// the two count-2 entries keep their relative input order
	assert.Equal(t, "2025-06-01", want[1].Date)
	assert.Equal(t, "2025-06-02", want[2].Date)
}

func TestRankAllZeroCountsYieldsEmpty(t *testing.T) {
	slots := []*AggregatedSlot{
		aggSlot("2025-06-01", "18:00", 0),
		aggSlot("2025-06-01", "19:00", 0),
	}
	assert.Empty(t, Rank(slots, 4, 3))
}

func TestRankZeroParticipantsYieldsZeroPercentage(t *testing.T) {
	ranked := Rank([]*AggregatedSlot{aggSlot("2025-06-01", "18:00", 1)}, 0, 1)
	require.Len(t, ranked, 1)
	assert.Equal(t, 0, ranked[0].Percentage)
}

func TestRankPercentageRounds(t *testing.T) {
	ranked := Rank([]*AggregatedSlot{aggSlot("2025-06-01", "18:00", 1)}, 3, 1)
	require.Len(t, ranked, 1)
	assert.Equal(t, 33, ranked[0].Percentage)

	ranked = Rank([]*AggregatedSlot{aggSlot("2025-06-01", "18:00", 2)}, 3, 1)
	assert.Equal(t, 67, ranked[0].Percentage)
}

func TestRankClampsTopKAndHandlesEmptyInput(t *testing.T) {
	assert.Empty(t, Rank(nil, 4, 3))
	assert.Empty(t, Rank([]*AggregatedSlot{aggSlot("2025-06-01", "18:00", 1)}, 4, 0))

	ranked := Rank([]*AggregatedSlot{aggSlot("2025-06-01", "18:00", 1)}, 4, 10)
	assert.Len(t, ranked, 1)
}
