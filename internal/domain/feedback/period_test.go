package feedback

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(value string) time.Time {
	t, err := ParseDate(value)
	if err != nil {
		panic(err)
	}
	return t
}

func TestCutoff(t *testing.T) {
	now := time.Date(2025, time.May, 10, 15, 30, 0, 0, time.UTC)
	cases := []struct {
		period string
		want   string
	}{
		{PeriodLastWeek, "2025-05-03"},
		{PeriodLastMonth, "2025-04-10"},
		{PeriodLastQuarter, "2025-02-10"},
		{PeriodYearToDate, "2025-01-01"},
	}
	for _, tc := range cases {
		t.Run(tc.period, func(t *testing.T) {
			got, ok := Cutoff(tc.period, now)
			require.True(t, ok)
			assert.Equal(t, tc.want, got.Format(dateLayout))
		})
	}
}

func TestCutoffUnknownPeriod(t *testing.T) {
	for _, period := range []string{"", "foo", "LAST-WEEK", "all"} {
		_, ok := Cutoff(period, time.Now())
		assert.False(t, ok, period)
		assert.False(t, KnownPeriod(period), period)
	}
}

func TestCutoffMonthNormalisation(t *testing.T) {
	now := time.Date(2025, time.March, 31, 9, 0, 0, 0, time.UTC)
	got, ok := Cutoff(PeriodLastMonth, now)
	require.True(t, ok)
	assert.Equal(t, "2025-03-03", got.Format(dateLayout))
}

func TestFilterByPeriodInclusiveBoundary(t *testing.T) {
	now := time.Date(2025, time.May, 10, 8, 0, 0, 0, time.UTC)
	records := []Record{
		{ID: "before", Date: day("2025-05-02")},
		{ID: "boundary", Date: day("2025-05-03")},
		{ID: "inside", Date: day("2025-05-09")},
	}

	got := FilterByPeriod(records, PeriodLastWeek, now)
	ids := make([]string, 0, len(got))
	for _, rec := range got {
		ids = append(ids, rec.ID)
	}
	assert.Equal(t, []string{"boundary", "inside"}, ids)
}

func TestFilterByPeriodIgnoresTimeOfDay(t *testing.T) {
	now := time.Date(2025, time.May, 10, 23, 59, 0, 0, time.UTC)
	late := time.Date(2025, time.May, 3, 0, 0, 1, 0, time.UTC)
	early := time.Date(2025, time.May, 3, 0, 0, 0, 0, time.FixedZone("x", 5*3600))

	got := FilterByPeriod([]Record{{ID: "late", Date: late}, {ID: "early", Date: early}}, PeriodLastWeek, now)
	assert.Len(t, got, 2)
}

func TestFilterByPeriodUnknownPassesThrough(t *testing.T) {
	records := []Record{{ID: "old", Date: day("2001-01-01")}, {ID: "new", Date: day("2025-05-09")}}
	got := FilterByPeriod(records, "foo", time.Now())
	assert.Equal(t, records, got)
}

func TestFilterByPeriodIsIdempotent(t *testing.T) {
	now := time.Date(2025, time.May, 10, 0, 0, 0, 0, time.UTC)
	records := []Record{
		{ID: "a", Date: day("2025-01-15")},
		{ID: "b", Date: day("2025-04-20")},
		{ID: "c", Date: day("2025-05-08")},
	}
	once := FilterByPeriod(records, PeriodLastMonth, now)
	twice := FilterByPeriod(once, PeriodLastMonth, now)
	assert.Equal(t, once, twice)
	assert.Len(t, records, 3)
}
