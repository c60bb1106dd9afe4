package reminders

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthWindow(t *testing.T) {
	lima, err := time.LoadLocation("America/Lima")
	require.NoError(t, err)

	cases := []struct {
		name     string
		selected time.Time
		loc      *time.Location
		from     time.Time
		to       time.Time
	}{
		{
			name:     "december",
			selected: time.Date(2024, 12, 15, 10, 0, 0, 0, time.UTC),
			loc:      time.UTC,
			from:     time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
			to:       time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC),
		},
		{
			name:     "leap february",
			selected: time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
			loc:      time.UTC,
			from:     time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			to:       time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC),
		},
		{
			name:     "common february",
			selected: time.Date(2023, 2, 28, 0, 0, 0, 0, time.UTC),
			loc:      time.UTC,
			from:     time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC),
			to:       time.Date(2023, 2, 28, 23, 59, 59, 0, time.UTC),
		},
		{
			// 2025-01-01 02:00 UTC sigue siendo 31 de diciembre en Lima
			name:     "resolved in service zone",
			selected: time.Date(2025, 1, 1, 2, 0, 0, 0, time.UTC),
			loc:      lima,
			from:     time.Date(2024, 12, 1, 0, 0, 0, 0, lima),
			to:       time.Date(2024, 12, 31, 23, 59, 59, 0, lima),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			from, to := MonthWindow(tc.selected, tc.loc)
			assert.True(t, tc.from.Equal(from), "from = %s", from)
			assert.True(t, tc.to.Equal(to), "to = %s", to)
		})
	}
}

func TestFilter_EmptyMeansNoFilter(t *testing.T) {
	items := []Reminder{
		{ID: "a", PetID: "p1", Category: CategoryBath},
		{ID: "b", PetID: "p2", Category: CategoryMedication},
	}

	assert.Len(t, Filter{}.Apply(items), 2)
	assert.Len(t, Filter{PetIDs: []string{}, Categories: []Category{}}.Apply(items), 2)
}

func TestFilter_Conjunction(t *testing.T) {
	items := []Reminder{
		{ID: "a", PetID: "p1", Category: CategoryBath},
		{ID: "b", PetID: "p1", Category: CategoryMedication},
		{ID: "c", PetID: "p2", Category: CategoryMedication},
	}

	got := Filter{PetIDs: []string{"p1"}, Categories: []Category{CategoryMedication}}.Apply(items)

	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].ID)
}

func TestDayView_IsSubsetOfMonth(t *testing.T) {
	month := []Reminder{
		{ID: "a", ScheduledAt: time.Date(2024, 12, 15, 9, 0, 0, 0, time.UTC)},
		{ID: "b", ScheduledAt: time.Date(2024, 12, 15, 23, 59, 59, 0, time.UTC)},
		{ID: "c", ScheduledAt: time.Date(2024, 12, 16, 0, 0, 0, 0, time.UTC)},
	}

	day := DayView(month, "2024-12-15", time.UTC)

	require.Len(t, day, 2)
	assert.Equal(t, "a", day[0].ID)
	assert.Equal(t, "b", day[1].ID)
	assert.Empty(t, DayView(month, "2024-12-01", time.UTC))
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory(" Bath ")
	require.NoError(t, err)
	assert.Equal(t, CategoryBath, c)

	_, err = ParseCategory("grooming")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestParseScheduled(t *testing.T) {
	lima, err := time.LoadLocation("America/Lima")
	require.NoError(t, err)

	got, err := ParseScheduled("2024-12-15T09:30", lima)
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2024, 12, 15, 9, 30, 0, 0, lima)))

	got, err = ParseScheduled("2024-12-15T09:30:00Z", lima)
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2024, 12, 15, 9, 30, 0, 0, time.UTC)))

	_, err = ParseScheduled("mañana", lima)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
