package insights

import (
	"testing"
	"time"

	"pet-tracker/internal/domain/records"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var asOf = time.Date(2024, 12, 15, 12, 0, 0, 0, time.UTC)

func rec(at time.Time, d records.Data) records.Record {
	return records.Record{ID: at.Format(time.RFC3339Nano), PetID: "p1", CreatedAt: at, Data: d}
}

func daysAgo(n int) time.Time { return asOf.Add(-time.Duration(n) * 24 * time.Hour) }

func TestWeightTrend(t *testing.T) {
	t1 := daysAgo(10)
	t2 := daysAgo(2)

	cases := []struct {
		name   string
		in     []records.Record
		trend  Trend
		change float64
	}{
		{"none", nil, TrendStable, 0},
		{"single", []records.Record{rec(t2, records.Weight{Kg: 10})}, TrendStable, 0},
		{"increasing", []records.Record{rec(t2, records.Weight{Kg: 10}), rec(t1, records.Weight{Kg: 9})}, TrendIncreasing, 1},
		// llegan desordenados: se ordena por fecha antes de comparar
		{"decreasing unsorted", []records.Record{rec(t1, records.Weight{Kg: 10}), rec(t2, records.Weight{Kg: 8.5})}, TrendDecreasing, -1.5},
		{"stable", []records.Record{rec(t2, records.Weight{Kg: 10}), rec(t1, records.Weight{Kg: 9.8})}, TrendStable, 0.2},
		{"stable at threshold", []records.Record{rec(t2, records.Weight{Kg: 10.5}), rec(t1, records.Weight{Kg: 10})}, TrendStable, 0.5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Derive(RecordsByKind{records.KindWeight: tc.in}, asOf)
			assert.Equal(t, tc.trend, got.WeightTrend)
			assert.InDelta(t, tc.change, got.WeightChange, 1e-9)
		})
	}
}

func TestWeeklyActivity(t *testing.T) {
	walks := func(kms ...float64) []records.Record {
		out := make([]records.Record, 0, len(kms))
		for i, km := range kms {
			out = append(out, rec(daysAgo(i), records.Walk{DistanceKm: km}))
		}
		return out
	}

	cases := []struct {
		name  string
		in    []records.Record
		km    float64
		level ActivityLevel
	}{
		{"low", walks(5, 3), 8, ActivityLow},
		{"high", walks(10, 10, 10), 30, ActivityHigh},
		{"normal", walks(6, 6, 6), 18, ActivityNormal},
		{"no walks", nil, 0, ActivityLow},
		{"boundary included", []records.Record{rec(asOf.Add(-7*24*time.Hour), records.Walk{DistanceKm: 12})}, 12, ActivityNormal},
		{"older excluded", []records.Record{rec(asOf.Add(-7*24*time.Hour-time.Second), records.Walk{DistanceKm: 12})}, 0, ActivityLow},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Derive(RecordsByKind{records.KindWalk: tc.in}, asOf)
			assert.InDelta(t, tc.km, got.WeeklyKm, 1e-9)
			assert.Equal(t, tc.level, got.ActivityLevel)
		})
	}
}

func TestHealthStatus(t *testing.T) {
	visit := func(days int) []records.Record {
		return []records.Record{rec(daysAgo(days), records.Health{Event: records.HealthVisit})}
	}

	cases := []struct {
		name   string
		in     []records.Record
		days   int
		status HealthStatus
	}{
		{"recent", visit(20), 20, HealthExcellent},
		{"thirty is good", visit(30), 30, HealthGood},
		{"one eighty is good", visit(180), 180, HealthGood},
		{"attention", visit(200), 200, HealthAttention},
		{"year is attention", visit(365), 365, HealthAttention},
		{"concern", visit(400), 400, HealthConcern},
		{"no visit", nil, 999, HealthConcern},
		{"only vaccines", []records.Record{rec(daysAgo(3), records.Health{Event: records.HealthVaccine})}, 999, HealthConcern},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Derive(RecordsByKind{records.KindHealth: tc.in}, asOf)
			assert.Equal(t, tc.days, got.DaysSinceVisit)
			assert.Equal(t, tc.status, got.HealthStatus)
		})
	}
}

func TestHealthStatus_UsesLatestVisit(t *testing.T) {
	in := []records.Record{
		rec(daysAgo(400), records.Health{Event: records.HealthVisit}),
		rec(daysAgo(10), records.Health{Event: records.HealthVisit}),
	}

	got := Derive(RecordsByKind{records.KindHealth: in}, asOf)
	assert.Equal(t, 10, got.DaysSinceVisit)
	assert.Equal(t, HealthExcellent, got.HealthStatus)
}

func TestNextEvent(t *testing.T) {
	visit := func(days int) RecordsByKind {
		return RecordsByKind{records.KindHealth: {rec(daysAgo(days), records.Health{Event: records.HealthVisit})}}
	}

	assert.Nil(t, Derive(visit(300), asOf).NextEvent)

	got := Derive(visit(301), asOf).NextEvent
	require.NotNil(t, got)
	assert.Equal(t, NextEventAnnualCheckup, got.Type)
	assert.Equal(t, 64, got.DaysLeft)

	// vencido
	got = Derive(visit(400), asOf).NextEvent
	require.NotNil(t, got)
	assert.Equal(t, -35, got.DaysLeft)

	got = Derive(RecordsByKind{}, asOf).NextEvent
	require.NotNil(t, got)
	assert.Equal(t, 365-999, got.DaysLeft)
}
