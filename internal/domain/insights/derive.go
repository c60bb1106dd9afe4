// Package insights resume los registros recientes de una mascota en indicadores simples.
// Los umbrales son reglas de negocio fijas y no se configuran.
package insights

import (
	"math"
	"sort"
	"time"

	"pet-tracker/internal/domain/records"
)

const (
	weightStableKg = 0.5

	activityWindow = 7 * 24 * time.Hour
	activityLowKm  = 10.0
	activityHighKm = 25.0

	healthExcellentDays = 30
	healthAttentionDays = 180
	healthConcernDays   = 365
	nextEventAfterDays  = 300

	// noVisitDays se usa cuando no hay ninguna visita registrada.
	noVisitDays = 999

	NextEventAnnualCheckup = "annual_checkup"
)

type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
	TrendStable     Trend = "stable"
)

type ActivityLevel string

const (
	ActivityLow    ActivityLevel = "low"
	ActivityNormal ActivityLevel = "normal"
	ActivityHigh   ActivityLevel = "high"
)

type HealthStatus string

const (
	HealthExcellent HealthStatus = "excellent"
	HealthGood      HealthStatus = "good"
	HealthAttention HealthStatus = "attention"
	HealthConcern   HealthStatus = "concern"
)

type NextEvent struct {
	Type string `json:"type"`
	// DaysLeft puede ser negativo: el control está vencido.
	DaysLeft int `json:"days_left"`
}

type Insights struct {
	WeightTrend    Trend         `json:"weight_trend"`
	WeightChange   float64       `json:"weight_change"`
	WeeklyKm       float64       `json:"weekly_km"`
	ActivityLevel  ActivityLevel `json:"activity_level"`
	DaysSinceVisit int           `json:"days_since_visit"`
	HealthStatus   HealthStatus  `json:"health_status"`
	NextEvent      *NextEvent    `json:"next_event,omitempty"`
}

// RecordsByKind agrupa registros por tipo, como los devuelve records.Service.RecentByKind.
type RecordsByKind map[records.Kind][]records.Record

func Derive(in RecordsByKind, asOf time.Time) Insights {
	var out Insights

	out.WeightTrend, out.WeightChange = weightTrend(in[records.KindWeight])
	out.WeeklyKm, out.ActivityLevel = weeklyActivity(in[records.KindWalk], asOf)
	out.DaysSinceVisit = daysSinceVisit(in[records.KindHealth], asOf)
	out.HealthStatus = healthStatus(out.DaysSinceVisit)

	if out.DaysSinceVisit > nextEventAfterDays {
		out.NextEvent = &NextEvent{
			Type:     NextEventAnnualCheckup,
			DaysLeft: healthConcernDays - out.DaysSinceVisit,
		}
	}
	return out
}

func weightTrend(items []records.Record) (Trend, float64) {
	type point struct {
		at time.Time
		kg float64
	}
	pts := make([]point, 0, len(items))
	for _, r := range items {
		if w, ok := r.Data.(records.Weight); ok {
			pts = append(pts, point{at: r.CreatedAt, kg: w.Kg})
		}
	}
	if len(pts) < 2 {
		return TrendStable, 0
	}

	sort.SliceStable(pts, func(i, j int) bool { return pts[i].at.After(pts[j].at) })

	change := pts[0].kg - pts[1].kg
	switch {
	case math.Abs(change) <= weightStableKg:
		return TrendStable, change
	case change > 0:
		return TrendIncreasing, change
	default:
		return TrendDecreasing, change
	}
}

func weeklyActivity(items []records.Record, asOf time.Time) (float64, ActivityLevel) {
	since := asOf.Add(-activityWindow)

	var km float64
	for _, r := range items {
		w, ok := r.Data.(records.Walk)
		if !ok {
			continue
		}
		if r.CreatedAt.Before(since) || r.CreatedAt.After(asOf) {
			continue
		}
		km += w.DistanceKm
	}

	switch {
	case km < activityLowKm:
		return km, ActivityLow
	case km > activityHighKm:
		return km, ActivityHigh
	default:
		return km, ActivityNormal
	}
}

func daysSinceVisit(items []records.Record, asOf time.Time) int {
	var last time.Time
	for _, r := range items {
		h, ok := r.Data.(records.Health)
		if !ok || h.Event != records.HealthVisit {
			continue
		}
		if r.CreatedAt.After(last) {
			last = r.CreatedAt
		}
	}
	if last.IsZero() {
		return noVisitDays
	}
	return int(math.Floor(asOf.Sub(last).Hours() / 24))
}

func healthStatus(days int) HealthStatus {
	switch {
	case days < healthExcellentDays:
		return HealthExcellent
	case days > healthConcernDays:
		return HealthConcern
	case days > healthAttentionDays:
		return HealthAttention
	default:
		return HealthGood
	}
}
