package reminders

import (
	"fmt"
	"strings"
	"time"
)

// Category es un enum cerrado: cualquier otro valor es input inválido.
type Category string

const (
	CategoryConsultation Category = "consultation"
	CategoryMedication   Category = "medication"
	CategoryBath         Category = "bath"
	CategoryOther        Category = "other"
)

var Categories = []Category{
	CategoryConsultation,
	CategoryMedication,
	CategoryBath,
	CategoryOther,
}

func (c Category) Valid() bool {
	switch c {
	case CategoryConsultation, CategoryMedication, CategoryBath, CategoryOther:
		return true
	}
	return false
}

func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: unknown category %q", ErrInvalidInput, s)
	}
	return c, nil
}

// Reminder es una tarea agendada de una mascota.
// ScheduledAt se guarda truncado al segundo; su fecha "YYYY-MM-DD" se resuelve en la zona del servicio.
type Reminder struct {
	ID          string
	OwnerUserID string
	PetID       string

	Title       string
	Description string
	Category    Category

	ScheduledAt time.Time
	Completed   bool

	CreatedAt time.Time
}

// Patch es un update parcial: nil = no tocar.
type Patch struct {
	PetID       *string
	Title       *string
	Description *string
	Category    *Category
	ScheduledAt *time.Time
	Completed   *bool
}

func (p Patch) Empty() bool {
	return p.PetID == nil && p.Title == nil && p.Description == nil &&
		p.Category == nil && p.ScheduledAt == nil && p.Completed == nil
}

// Apply devuelve una copia de r con los campos del patch aplicados.
func (p Patch) Apply(r Reminder) Reminder {
	if p.PetID != nil {
		r.PetID = *p.PetID
	}
	if p.Title != nil {
		r.Title = *p.Title
	}
	if p.Description != nil {
		r.Description = *p.Description
	}
	if p.Category != nil {
		r.Category = *p.Category
	}
	if p.ScheduledAt != nil {
		r.ScheduledAt = *p.ScheduledAt
	}
	if p.Completed != nil {
		r.Completed = *p.Completed
	}
	return r
}
