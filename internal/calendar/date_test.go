package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radishspirit/moodjournal/internal/model"
)

func TestParse(t *testing.T) {
	d, err := Parse("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, Date{Year: 2024, Month: time.February, Day: 29}, d)
	assert.Equal(t, "2024-02-29", d.String())
}

func TestParseRejectsMalformed(t *testing.T) {
	for _, s := range []string{
		"",
		"2024-1-05",
		"2024-02-30",
		"2023-02-29",
		"2024-13-01",
		"2024-01-01T00:00:00Z",
		"01/02/2024",
		"2024-01-0a",
		" 2024-01-01",
	} {
		t.Run(s, func(t *testing.T) {
			_, err := Parse(s)
			require.Error(t, err)
			assert.True(t, model.IsValidationError(err))
			assert.False(t, IsValidISODate(s))
		})
	}
}

func TestDayDifference(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"2024-01-02", "2024-01-01", 1},
		{"2024-01-01", "2024-01-02", -1},
		{"2024-01-01", "2024-01-01", 0},
		{"2024-03-01", "2024-02-28", 2},
		{"2023-03-01", "2023-02-28", 1},
		{"2025-01-01", "2024-12-31", 1},
		{"2024-01-10", "2024-01-01", 9},
	}
	for _, tt := range tests {
		got := DayDifference(MustParse(tt.a), MustParse(tt.b))
		assert.Equal(t, tt.want, got, "%s - %s", tt.a, tt.b)
	}
}

func TestDayDifferenceAcrossDST(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	// Spring forward: 2024-03-10 is 23 hours long in New York.
	before := FromTime(time.Date(2024, 3, 10, 0, 30, 0, 0, ny), ny)
	after := FromTime(time.Date(2024, 3, 11, 0, 30, 0, 0, ny), ny)
	assert.Equal(t, 1, DayDifference(after, before))
	assert.True(t, IsConsecutive(before, after))

	// Fall back: 2024-11-03 is 25 hours long.
	before = FromTime(time.Date(2024, 11, 3, 23, 30, 0, 0, ny), ny)
	after = FromTime(time.Date(2024, 11, 4, 0, 15, 0, 0, ny), ny)
	assert.Equal(t, 1, DayDifference(after, before))
}

func TestFromTimeUsesLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	instant := time.Date(2024, 6, 30, 20, 0, 0, 0, time.UTC)

	assert.Equal(t, "2024-06-30", FromTime(instant, time.UTC).String())
	assert.Equal(t, "2024-07-01", FromTime(instant, tokyo).String())
	assert.Equal(t, "2024-07-01", FormatISO(instant, tokyo))
}

func TestAddDaysAndCompare(t *testing.T) {
	d := MustParse("2024-02-28")
	assert.Equal(t, "2024-02-29", d.AddDays(1).String())
	assert.Equal(t, "2024-03-01", d.AddDays(2).String())
	assert.Equal(t, "2023-12-31", MustParse("2024-01-01").AddDays(-1).String())

	assert.Equal(t, -1, d.Compare(d.AddDays(1)))
	assert.Equal(t, 1, d.Compare(d.AddDays(-3)))
	assert.Equal(t, 0, d.Compare(MustParse("2024-02-28")))
	assert.False(t, IsConsecutive(d, d))
}

func TestDisplay(t *testing.T) {
	assert.Equal(t, "Jan 5, 2024", MustParse("2024-01-05").Display())
	assert.True(t, Date{}.IsZero())
}
