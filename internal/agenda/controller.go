package agenda

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"pet-tracker/internal/domain/confirm"
	"pet-tracker/internal/domain/reminders"
)

var ErrUnknownReminder = errors.New("reminder is not in the loaded month")

// Source es el backend de la agenda (la API en producción).
type Source interface {
	Month(ctx context.Context, date string) (month []reminders.Reminder, colors map[string]string, err error)
	Save(ctx context.Context, in reminders.SaveInput) (reminders.Reminder, error)
	SetCompleted(ctx context.Context, id string, completed bool) (reminders.Reminder, error)
	Remove(ctx context.Context, id string) error
}

// ConfirmFunc muestra el prompt Cancel / Delete y devuelve la elección.
type ConfirmFunc func(ctx context.Context, r reminders.Reminder) confirm.Choice

type Controller struct {
	src     Source
	confirm ConfirmFunc

	mu    sync.Mutex
	state State
	seq   uint64

	// loaded es el mes ("YYYY-MM") del último fetch aplicado con éxito. Vacío tras un fallo.
	loaded string
}

func NewController(src Source, ask ConfirmFunc, selected string, loc *time.Location) *Controller {
	if ask == nil {
		ask = func(context.Context, reminders.Reminder) confirm.Choice { return confirm.Cancel }
	}
	return &Controller{
		src:     src,
		confirm: ask,
		state:   New(selected, loc),
	}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) dispatch(a Action) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = Reduce(c.state, a)
	return c.state
}

// Refresh pide el mes del día seleccionado. Si mientras tanto se emitió otro
// fetch, esta respuesta se descarta al llegar.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	date := c.state.Selected
	c.state = Reduce(c.state, FetchStarted{Seq: seq})
	c.mu.Unlock()

	month, colors, err := c.src.Month(ctx, date)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.state = Reduce(c.state, FetchFailed{Seq: seq, Err: err})
		if c.state.Seq == seq {
			c.loaded = ""
		}
		return err
	}
	c.state = Reduce(c.state, FetchSucceeded{Seq: seq, Month: month, Colors: colors})
	if c.state.Seq == seq {
		c.loaded = MonthOf(date)
	}
	return nil
}

// SelectDate mueve la selección y solo vuelve a pedir datos si cambió el mes
// o si el mes actual no se pudo cargar.
func (c *Controller) SelectDate(ctx context.Context, date string) error {
	if _, err := reminders.ParseDate(date, c.State().Loc); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", reminders.ErrInvalidInput)
	}

	c.dispatch(SelectDate{Date: date})
	if c.loadedMonth() == MonthOf(date) {
		return nil
	}
	return c.Refresh(ctx)
}

func (c *Controller) SetFilters(f reminders.Filter) State {
	return c.dispatch(SetFilters{Filter: f})
}

func (c *Controller) OpenCreate() State { return c.dispatch(OpenModal{}) }

func (c *Controller) OpenEdit(id string) (State, error) {
	r, ok := c.find(id)
	if !ok {
		return c.State(), ErrUnknownReminder
	}
	return c.dispatch(OpenModal{Editing: &r}), nil
}

func (c *Controller) CloseModal() State { return c.dispatch(CloseModal{}) }

// Save valida localmente antes de ir a la red. Si el guardado sale bien
// cierra el modal y hace exactamente un re-fetch.
func (c *Controller) Save(ctx context.Context, in reminders.SaveInput) error {
	if err := in.Validate(); err != nil {
		return err
	}

	if _, err := c.src.Save(ctx, in); err != nil {
		c.dispatch(MutationFailed{Message: MsgSaveFailed})
		return err
	}

	c.dispatch(CloseModal{})
	return c.Refresh(ctx)
}

func (c *Controller) ToggleCompleted(ctx context.Context, id string, completed bool) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: id is required", reminders.ErrInvalidInput)
	}

	if _, err := c.src.SetCompleted(ctx, id, completed); err != nil {
		c.dispatch(MutationFailed{Message: MsgSaveFailed})
		return err
	}
	return c.Refresh(ctx)
}

// Remove pregunta antes de borrar. Con Cancel no llama al backend y devuelve removed=false.
func (c *Controller) Remove(ctx context.Context, id string) (removed bool, err error) {
	r, ok := c.find(id)
	if !ok {
		return false, ErrUnknownReminder
	}

	if confirm.Require(c.confirm(ctx, r)) != nil {
		return false, nil
	}

	if err := c.src.Remove(ctx, id); err != nil {
		c.dispatch(MutationFailed{Message: MsgDeleteFailed})
		return false, err
	}
	return true, c.Refresh(ctx)
}

func (c *Controller) find(id string) (reminders.Reminder, bool) {
	s := c.State()
	for _, r := range s.Month {
		if r.ID == id {
			return r, true
		}
	}
	return reminders.Reminder{}, false
}

func (c *Controller) loadedMonth() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded
}
