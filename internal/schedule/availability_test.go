package schedule

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFreeStartsExcludesBookedSlots(t *testing.T) {
	t.Parallel()

	grid := Grid(360, 1305)
	busy := []Interval{{Start: 8 * 60, End: 9 * 60}}

	free := Format(FreeStarts(grid, busy))

	for _, booked := range []string{"08:00", "08:15", "08:30", "08:45"} {
		assert.NotContains(t, free, booked)
	}
	for _, open := range []string{"06:00", "07:45", "09:00", "21:45"} {
		assert.Contains(t, free, open)
	}
	assert.Len(t, free, len(grid)-4)
}

func TestFreeEndsStopsAtNextBooking(t *testing.T) {
	t.Parallel()

	grid := Grid(6*60+15, 22*60)
	busy := []Interval{
		{Start: 7 * 60, End: 8 * 60},
		{Start: 11 * 60, End: 12 * 60},
		{Start: 15 * 60, End: 16 * 60},
	}

	got := Format(FreeEnds(grid, busy, 9*60))

	assert.Equal(t, []string{"09:15", "09:30", "09:45", "10:00", "10:15", "10:30", "10:45", "11:00"}, got)
	assert.NotContains(t, got, "11:15")
}

func TestFreeEndsUnboundedRunsToClose(t *testing.T) {
	t.Parallel()

	grid := Grid(6*60+15, 22*60)
	busy := []Interval{{Start: 7 * 60, End: 8 * 60}}

	got := FreeEnds(grid, busy, 21*60)

	assert.Equal(t, []int{21*60 + 15, 21*60 + 30, 21*60 + 45, 22 * 60}, got)
}

func TestFreeEndsFromOccupiedStart(t *testing.T) {
	t.Parallel()

	grid := Grid(6*60+15, 22*60)
	busy := []Interval{{Start: 7 * 60, End: 8 * 60}}

	assert.Empty(t, FreeEnds(grid, busy, 7*60+30))
	assert.Equal(t, []int{8*60 + 15}, FreeEnds(grid, busy, 8*60)[:1])
}

func TestIntervalOverlaps(t *testing.T) {
	t.Parallel()

	base := Interval{Start: 600, End: 660}

	testCases := []struct {
		name  string
		other Interval
		want  bool
	}{
		{name: "Abuts after", other: Interval{Start: 660, End: 720}, want: false},
		{name: "Abuts before", other: Interval{Start: 540, End: 600}, want: false},
		{name: "Contains", other: Interval{Start: 615, End: 630}, want: true},
		{name: "Straddles start", other: Interval{Start: 585, End: 615}, want: true},
		{name: "Straddles end", other: Interval{Start: 645, End: 675}, want: true},
		{name: "Disjoint", other: Interval{Start: 700, End: 760}, want: false},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, base.Overlaps(tc.other))
			assert.Equal(t, tc.want, tc.other.Overlaps(base))
		})
	}
}

// randomBookings lays out non-overlapping slot-aligned bookings between open and close.
func randomBookings(r *rand.Rand, open, close int) []Interval {
	var busy []Interval
	for m := open; m < close; {
		m += Step * r.Intn(8)
		length := Step * (1 + r.Intn(6))
		if m+length > close {
			break
		}
		busy = append(busy, Interval{Start: m, End: m + length})
		m += length
	}

	return busy
}

func TestAvailabilityProperties(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewSource(42))
	h := Hours{Open: 360, Close: 1320}

	for i := 0; i < 200; i++ {
		busy := randomBookings(r, h.Open, h.Close)

		starts := FreeStarts(h.StartSlots(), busy)
		assert.Equal(t, starts, FreeStarts(h.StartSlots(), busy))

		for _, s := range starts {
			for _, b := range busy {
				assert.False(t, s >= b.Start && s < b.End, "start %d inside booking %v", s, b)
			}

			ends := FreeEnds(h.EndSlots(), busy, s)
			assert.Equal(t, ends, FreeEnds(h.EndSlots(), busy, s))
			assert.NotEmpty(t, ends)

			limit, bounded := NextStart(busy, s)
			for _, e := range ends {
				assert.Greater(t, e, s)
				assert.LessOrEqual(t, e, h.Close)
				if bounded {
					assert.LessOrEqual(t, e, limit)
				}

				proposed := Interval{Start: s, End: e}
				for _, b := range busy {
					assert.False(t, proposed.Overlaps(b), "%v overlaps %v", proposed, b)
				}
			}
		}
	}
}
