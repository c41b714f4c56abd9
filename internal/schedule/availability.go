package schedule

import "sort"

// Interval is a half-open booked range [Start, End).
type Interval struct {
	Start int
	End   int
}

func (i Interval) Overlaps(o Interval) bool {
	return i.Start < o.End && o.Start < i.End
}

// Occupied is the union of the slots each interval covers, stepping by Step
// from its start.
func Occupied(busy []Interval) map[int]struct{} {
	occupied := make(map[int]struct{})
	for _, b := range busy {
		for m := b.Start; m < b.End; m += Step {
			occupied[m] = struct{}{}
		}
	}

	return occupied
}

// FreeStarts returns the grid slots no interval occupies, in grid order.
func FreeStarts(grid []int, busy []Interval) []int {
	occupied := Occupied(busy)

	free := make([]int, 0, len(grid))
	for _, m := range grid {
		if _, ok := occupied[m]; !ok {
			free = append(free, m)
		}
	}

	return free
}

// FreeEnds returns the end-grid slots after start that do not run past the
// next booking beginning after start. An end equal to that booking's start
// is allowed. A start inside a booked interval has no free ends.
func FreeEnds(grid []int, busy []Interval, start int) []int {
	if _, ok := Occupied(busy)[start]; ok {
		return []int{}
	}

	limit, bounded := NextStart(busy, start)

	free := make([]int, 0, len(grid))
	for _, m := range grid {
		if m <= start {
			continue
		}
		if bounded && m > limit {
			break
		}
		free = append(free, m)
	}

	return free
}

// NextStart is the earliest interval start strictly after m.
func NextStart(busy []Interval, m int) (int, bool) {
	starts := make([]int, 0, len(busy))
	for _, b := range busy {
		if b.Start > m {
			starts = append(starts, b.Start)
		}
	}
	if len(starts) == 0 {
		return 0, false
	}

	sort.Ints(starts)

	return starts[0], true
}
