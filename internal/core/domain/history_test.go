package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRollingWindow_BoundedFIFO(t *testing.T) {
	for _, n := range []int{0, 1, 5, 10, 11, 37} {
		w := NewRollingWindow[int](10)
		for i := 0; i < n; i++ {
			w.Push(i)
		}

		want := n
		if want > 10 {
			want = 10
		}
		assert.Equal(t, want, w.Len(), "n=%d", n)

		expected := make([]int, 0, want)
		for i := n - want; i < n; i++ {
			expected = append(expected, i)
		}
		assert.Equal(t, expected, w.Values(), "n=%d", n)
	}
}

func TestRollingWindow_PushReportsEviction(t *testing.T) {
	w := NewRollingWindow[string](2)
	assert.False(t, w.Push("a"))
	assert.False(t, w.Push("b"))
	assert.True(t, w.Push("c"))
	assert.Equal(t, []string{"b", "c"}, w.Values())

	last, ok := w.Last()
	assert.True(t, ok)
	assert.Equal(t, "c", last)
}

func TestRollingWindow_DefaultCapacityAndReset(t *testing.T) {
	w := NewRollingWindow[float64](0)
	assert.Equal(t, DefaultHistoryLength, w.Cap())

	_, ok := w.Last()
	assert.False(t, ok)

	w.Push(1.5)
	w.Reset()
	assert.Equal(t, 0, w.Len())
	assert.Empty(t, w.Values())
}

func TestRollingWindow_ValuesIsACopy(t *testing.T) {
	w := NewRollingWindow[int](3)
	w.Push(1)
	vals := w.Values()
	vals[0] = 99
	assert.Equal(t, []int{1}, w.Values())
}

func TestHourlyEarnings_Add(t *testing.T) {
	var h HourlyEarnings
	h.Add(14, 50)
	h.Add(14, 0)
	h.Add(14, -30)
	h.Add(24, 10)
	h.Add(-1, 10)
	h.Add(3, 7)

	assert.Equal(t, int64(50), h[14])
	assert.Equal(t, int64(7), h[3])
	assert.Equal(t, int64(57), h.Total())

	h.Reset()
	assert.Equal(t, int64(0), h.Total())
}

func TestHourlyReset_IsValid(t *testing.T) {
	assert.True(t, HourlyResetNever.IsValid())
	assert.True(t, HourlyResetMidnight.IsValid())
	assert.False(t, HourlyReset("weekly").IsValid())
}
