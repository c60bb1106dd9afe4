package reminders

import (
	"slices"
	"time"

	"pet-tracker/internal/domain/calendar"
)

// MonthWindow devuelve el rango inclusivo del mes que contiene selected:
// día 1 00:00:00 hasta el último día 23:59:59, en loc.
// time.Date normaliza el día 0 del mes siguiente al último día del mes actual,
// así diciembre termina el 31 y febrero bisiesto el 29.
func MonthWindow(selected time.Time, loc *time.Location) (from, to time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	t := selected.In(loc)
	from = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc)
	to = time.Date(t.Year(), t.Month()+1, 0, 23, 59, 59, 0, loc)
	return from, to
}

// DateString resuelve un timestamp a su fecha de calendario.
func DateString(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(calendar.DateLayout)
}

// ParseDate interpreta "YYYY-MM-DD" como medianoche en loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	return time.ParseInLocation(calendar.DateLayout, s, loc)
}

// Filter se aplica en memoria sobre el resultado del mes.
// Lista vacía = sin filtro (mostrar todo), no "mostrar nada".
type Filter struct {
	PetIDs     []string
	Categories []Category
}

func (f Filter) Match(r Reminder) bool {
	if len(f.PetIDs) > 0 && !slices.Contains(f.PetIDs, r.PetID) {
		return false
	}
	if len(f.Categories) > 0 && !slices.Contains(f.Categories, r.Category) {
		return false
	}
	return true
}

func (f Filter) Apply(items []Reminder) []Reminder {
	out := make([]Reminder, 0, len(items))
	for _, r := range items {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

// DayView filtra, del mes ya traído, los recordatorios cuyo día es day.
// No consulta el store.
func DayView(month []Reminder, day string, loc *time.Location) []Reminder {
	out := make([]Reminder, 0)
	for _, r := range month {
		if DateString(r.ScheduledAt, loc) == day {
			out = append(out, r)
		}
	}
	return out
}

// CalendarEvents reduce recordatorios a eventos de calendario.
func CalendarEvents(items []Reminder, loc *time.Location) []calendar.Event {
	out := make([]calendar.Event, 0, len(items))
	for _, r := range items {
		out = append(out, calendar.Event{
			Date:  DateString(r.ScheduledAt, loc),
			PetID: r.PetID,
		})
	}
	return out
}
