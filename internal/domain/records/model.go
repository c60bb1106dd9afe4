package records

import (
	"fmt"
	"strings"
	"time"
)

type Kind string

const (
	KindWeight Kind = "weight"
	KindWalk   Kind = "walk"
	KindHealth Kind = "health"
	KindNote   Kind = "note"
)

var Kinds = []Kind{KindWeight, KindWalk, KindHealth, KindNote}

func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	switch k {
	case KindWeight, KindWalk, KindHealth, KindNote:
		return k, nil
	}
	return "", fmt.Errorf("%w: unknown record kind %q", ErrInvalidInput, s)
}

// Data es la variante concreta del registro. Cada tipo define sus propios campos.
type Data interface {
	Kind() Kind
	validate() error
}

type Weight struct {
	Kg float64
}

type Walk struct {
	DistanceKm  float64
	DurationMin int
}

type HealthEvent string

const (
	HealthVisit      HealthEvent = "visit"
	HealthVaccine    HealthEvent = "vaccine"
	HealthDeworming  HealthEvent = "deworming"
	HealthMedication HealthEvent = "medication"
	HealthOther      HealthEvent = "other"
)

type Health struct {
	Event HealthEvent
}

type Note struct {
	Text string
}

func (Weight) Kind() Kind { return KindWeight }
func (Walk) Kind() Kind   { return KindWalk }
func (Health) Kind() Kind { return KindHealth }
func (Note) Kind() Kind   { return KindNote }

func (d Weight) validate() error {
	if d.Kg <= 0 {
		return fmt.Errorf("%w: weight must be > 0", ErrInvalidInput)
	}
	return nil
}

func (d Walk) validate() error {
	if d.DistanceKm < 0 || d.DurationMin < 0 {
		return fmt.Errorf("%w: walk distance and duration must be >= 0", ErrInvalidInput)
	}
	return nil
}

func (d Health) validate() error {
	switch d.Event {
	case HealthVisit, HealthVaccine, HealthDeworming, HealthMedication, HealthOther:
		return nil
	}
	return fmt.Errorf("%w: unknown health event %q", ErrInvalidInput, d.Event)
}

func (d Note) validate() error {
	if strings.TrimSpace(d.Text) == "" {
		return fmt.Errorf("%w: note text is required", ErrInvalidInput)
	}
	return nil
}

// Record es una observación append-only de una mascota.
type Record struct {
	ID        string
	PetID     string
	CreatedAt time.Time
	Note      string

	Data Data
}

func (r Record) Kind() Kind {
	if r.Data == nil {
		return ""
	}
	return r.Data.Kind()
}
