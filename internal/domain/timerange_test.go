package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRange(t *testing.T, start, end time.Time) TimeRange {
	t.Helper()
	tr, err := NewTimeRange(start, end)
	require.NoError(t, err)
	return tr
}

func at(hour, minute int) time.Time {
	return time.Date(2025, 3, 10, hour, minute, 0, 0, time.UTC)
}

func TestNewTimeRange_Valid(t *testing.T) {
	tr, err := NewTimeRange(at(10, 0), at(11, 0))

	require.NoError(t, err)
	assert.Equal(t, at(10, 0), tr.Start())
	assert.Equal(t, at(11, 0), tr.End())
	assert.Equal(t, time.Hour, tr.Duration())
}

func TestNewTimeRange_EndBeforeStart(t *testing.T) {
	_, err := NewTimeRange(at(11, 0), at(10, 0))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestNewTimeRange_EndEqualsStart(t *testing.T) {
	_, err := NewTimeRange(at(10, 0), at(10, 0))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestTimeRange_Overlaps(t *testing.T) {
	a := mustRange(t, at(10, 0), at(11, 0))
	b := mustRange(t, at(10, 30), at(11, 30))
	c := mustRange(t, at(11, 0), at(12, 0))
	d := mustRange(t, at(9, 0), at(12, 0))

	assert.True(t, a.Overlaps(b))
	assert.True(t, a.Overlaps(d), "containing range overlaps")
	assert.False(t, a.Overlaps(c), "touching boundaries do not overlap")
	assert.False(t, c.Overlaps(a))
}

func TestTimeRange_Overlaps_Symmetric(t *testing.T) {
	a := mustRange(t, at(10, 0), at(11, 0))
	b := mustRange(t, at(10, 45), at(11, 15))
	c := mustRange(t, at(12, 0), at(13, 0))

	assert.Equal(t, a.Overlaps(b), b.Overlaps(a))
	assert.Equal(t, a.Overlaps(c), c.Overlaps(a))
}

func TestTimeRange_Contains(t *testing.T) {
	tr := mustRange(t, at(10, 0), at(11, 0))

	assert.True(t, tr.Contains(at(10, 0)), "start is inclusive")
	assert.True(t, tr.Contains(at(10, 30)))
	assert.True(t, tr.Contains(at(11, 0)), "end is inclusive")
	assert.False(t, tr.Contains(at(9, 59)))
	assert.False(t, tr.Contains(at(11, 1)))
}

func TestTimeRange_Shift(t *testing.T) {
	tr := mustRange(t, at(10, 0), at(11, 0))

	shifted := tr.Shift(30 * time.Minute)

	assert.Equal(t, at(10, 30), shifted.Start())
	assert.Equal(t, at(11, 30), shifted.End())
	assert.Equal(t, at(10, 0), tr.Start(), "original is unchanged")

	back := tr.Shift(-time.Hour)
	assert.Equal(t, at(9, 0), back.Start())
	assert.Equal(t, at(10, 0), back.End())
}

func TestTimeRange_Expand(t *testing.T) {
	tr := mustRange(t, at(10, 0), at(11, 0))

	expanded, err := tr.Expand(30 * time.Minute)

	require.NoError(t, err)
	assert.Equal(t, at(10, 0), expanded.Start())
	assert.Equal(t, at(11, 30), expanded.End())
	assert.Equal(t, at(11, 0), tr.End(), "original is unchanged")
}

func TestTimeRange_Expand_BelowStart(t *testing.T) {
	tr := mustRange(t, at(10, 0), at(11, 0))

	_, err := tr.Expand(-2 * time.Hour)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestTimeRange_Equal(t *testing.T) {
	a := mustRange(t, at(10, 0), at(11, 0))
	b := mustRange(t, at(10, 0), at(11, 0))
	c := mustRange(t, at(10, 0), at(11, 30))

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}
