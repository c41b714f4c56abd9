package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrid(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		from, to int
		want     []int
	}{
		{name: "Aligned", from: 360, to: 420, want: []int{360, 375, 390, 405, 420}},
		{name: "Single boundary", from: 360, to: 360, want: []int{360}},
		{name: "Unaligned close is clamped", from: 360, to: 400, want: []int{360, 375, 390, 400}},
		{name: "Inverted bounds", from: 420, to: 360, want: nil},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, Grid(tc.from, tc.to))
		})
	}
}

func TestHoursSlots(t *testing.T) {
	t.Parallel()

	h, err := ParseHours("06:00", "22:00")
	require.NoError(t, err)

	starts := h.StartSlots()
	assert.Equal(t, 360, starts[0])
	assert.Equal(t, 21*60+45, starts[len(starts)-1])
	assert.Len(t, starts, 64)

	ends := h.EndSlots()
	assert.Equal(t, 6*60+15, ends[0])
	assert.Equal(t, 22*60, ends[len(ends)-1])

	assert.True(t, h.IsStart(360))
	assert.False(t, h.IsStart(22*60))
	assert.False(t, h.IsStart(6*60+10))
	assert.True(t, h.IsEnd(22*60))
	assert.False(t, h.IsEnd(360))
}

func TestParseHoursRejects(t *testing.T) {
	t.Parallel()

	_, err := ParseHours("22:00", "06:00")
	assert.Error(t, err)

	_, err = ParseHours("6am", "22:00")
	assert.ErrorIs(t, err, ErrInvalidClock)
}

func TestParseMinutes(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "00:00", want: 0},
		{in: "06:15", want: 375},
		{in: "23:59", want: 1439},
		{in: "24:00", wantErr: true},
		{in: "6:15", wantErr: true},
		{in: "06:60", wantErr: true},
		{in: "ab:cd", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.in, func(t *testing.T) {
			t.Parallel()

			got, err := ParseMinutes(tc.in)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidClock)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.in, FormatMinutes(got))
		})
	}
}
