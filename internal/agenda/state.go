// Package agenda es el estado de la pantalla de calendario del cliente:
// un reducer puro más un Controller que habla con la API.
package agenda

import (
	"time"

	"pet-tracker/internal/domain/calendar"
	"pet-tracker/internal/domain/reminders"
)

const (
	MsgLoadFailed   = "could not load reminders"
	MsgSaveFailed   = "could not save reminder"
	MsgDeleteFailed = "could not delete reminder"
)

type Modal string

const (
	ModalClosed Modal = ""
	ModalCreate Modal = "create"
	ModalEdit   Modal = "edit"
)

type State struct {
	Loc      *time.Location
	Selected string // YYYY-MM-DD
	Filter   reminders.Filter

	// Month es el resultado crudo del último fetch aplicado.
	Month  []reminders.Reminder
	Colors map[string]string

	// Derivados: se recalculan en cada Reduce.
	Visible []reminders.Reminder
	Day     []reminders.Reminder
	Marks   calendar.Marks

	Loading bool
	Err     string

	Modal   Modal
	Editing *reminders.Reminder

	// Seq es el último fetch emitido. Solo se aplica la respuesta con este número.
	Seq uint64
}

// New arma el estado inicial con selected como día elegido.
func New(selected string, loc *time.Location) State {
	if loc == nil {
		loc = time.UTC
	}
	return derive(State{Loc: loc, Selected: selected})
}

type Action interface{ isAction() }

type (
	SelectDate struct{ Date string }
	SetFilters struct{ Filter reminders.Filter }

	// OpenModal con Editing nil abre el alta.
	OpenModal  struct{ Editing *reminders.Reminder }
	CloseModal struct{}

	FetchStarted   struct{ Seq uint64 }
	FetchSucceeded struct {
		Seq    uint64
		Month  []reminders.Reminder
		Colors map[string]string
	}
	FetchFailed struct {
		Seq uint64
		Err error
	}

	// MutationFailed deja el estado previo intacto salvo el mensaje.
	MutationFailed struct{ Message string }
)

func (SelectDate) isAction()     {}
func (SetFilters) isAction()     {}
func (OpenModal) isAction()      {}
func (CloseModal) isAction()     {}
func (FetchStarted) isAction()   {}
func (FetchSucceeded) isAction() {}
func (FetchFailed) isAction()    {}
func (MutationFailed) isAction() {}

// Reduce no tiene efectos: devuelve el estado siguiente.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case SelectDate:
		s.Selected = a.Date

	case SetFilters:
		s.Filter = a.Filter

	case OpenModal:
		s.Modal = ModalCreate
		s.Editing = nil
		if a.Editing != nil {
			r := *a.Editing
			s.Modal = ModalEdit
			s.Editing = &r
		}

	case CloseModal:
		s.Modal = ModalClosed
		s.Editing = nil

	case FetchStarted:
		if a.Seq <= s.Seq {
			return s
		}
		s.Seq = a.Seq
		s.Loading = true

	case FetchSucceeded:
		if a.Seq != s.Seq {
			return s
		}
		s.Month = a.Month
		s.Colors = a.Colors
		s.Loading = false
		s.Err = ""

	case FetchFailed:
		if a.Seq != s.Seq {
			return s
		}
		s.Month = nil
		s.Loading = false
		s.Err = MsgLoadFailed

	case MutationFailed:
		s.Err = a.Message
	}

	return derive(s)
}

func derive(s State) State {
	s.Visible = s.Filter.Apply(s.Month)
	s.Day = reminders.DayView(s.Visible, s.Selected, s.Loc)
	s.Marks = calendar.BuildMarks(reminders.CalendarEvents(s.Visible, s.Loc), s.Colors, s.Selected)
	return s
}

// MonthOf devuelve "YYYY-MM" de una fecha "YYYY-MM-DD".
func MonthOf(date string) string {
	if len(date) < 7 {
		return ""
	}
	return date[:7]
}
