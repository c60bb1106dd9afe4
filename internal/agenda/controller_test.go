package agenda

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"pet-tracker/internal/domain/confirm"
	"pet-tracker/internal/domain/reminders"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	mu sync.Mutex

	months map[string][]reminders.Reminder // por "YYYY-MM"
	gates  map[string]chan struct{}        // si existe, Month espera a que se cierre

	monthCalls  int
	saveCalls   int
	removeCalls int
	saveErr     error
	monthErr    error
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		months: map[string][]reminders.Reminder{"2024-12": december},
		gates:  map[string]chan struct{}{},
	}
}

func (f *fakeSource) Month(ctx context.Context, date string) ([]reminders.Reminder, map[string]string, error) {
	f.mu.Lock()
	f.monthCalls++
	gate := f.gates[MonthOf(date)]
	items := f.months[MonthOf(date)]
	err := f.monthErr
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	return items, colors, err
}

func (f *fakeSource) Save(ctx context.Context, in reminders.SaveInput) (reminders.Reminder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saveCalls++
	return reminders.Reminder{ID: "new"}, f.saveErr
}

func (f *fakeSource) SetCompleted(ctx context.Context, id string, completed bool) (reminders.Reminder, error) {
	return reminders.Reminder{ID: id, Completed: completed}, nil
}

func (f *fakeSource) Remove(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removeCalls++
	return nil
}

func (f *fakeSource) calls() (month, save, remove int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.monthCalls, f.saveCalls, f.removeCalls
}

func ptr[T any](v T) *T { return &v }

func TestController_SaveValidatesBeforeNetwork(t *testing.T) {
	src := newFakeSource()
	c := NewController(src, nil, "2024-12-15", time.UTC)

	err := c.Save(context.Background(), reminders.SaveInput{PetID: ptr("p1"), ScheduledAt: ptr(at(16, 9))})
	assert.ErrorIs(t, err, reminders.ErrInvalidInput)

	err = c.Save(context.Background(), reminders.SaveInput{Title: ptr("baño"), ScheduledAt: ptr(at(16, 9))})
	assert.ErrorIs(t, err, reminders.ErrInvalidInput)

	month, save, _ := src.calls()
	assert.Zero(t, month)
	assert.Zero(t, save)
}

func TestController_SaveRefetchesExactlyOnce(t *testing.T) {
	src := newFakeSource()
	c := NewController(src, nil, "2024-12-15", time.UTC)
	ctx := context.Background()
	require.NoError(t, c.Refresh(ctx))
	c.OpenCreate()

	err := c.Save(ctx, reminders.SaveInput{PetID: ptr("p1"), Title: ptr("baño"), ScheduledAt: ptr(at(16, 9))})
	require.NoError(t, err)

	month, save, _ := src.calls()
	assert.Equal(t, 2, month)
	assert.Equal(t, 1, save)
	assert.Equal(t, ModalClosed, c.State().Modal)
}

func TestController_SaveFailureKeepsState(t *testing.T) {
	src := newFakeSource()
	c := NewController(src, nil, "2024-12-15", time.UTC)
	ctx := context.Background()
	require.NoError(t, c.Refresh(ctx))
	c.OpenCreate()

	src.saveErr = errors.New("offline")
	err := c.Save(ctx, reminders.SaveInput{PetID: ptr("p1"), Title: ptr("baño"), ScheduledAt: ptr(at(16, 9))})
	require.Error(t, err)

	s := c.State()
	assert.Equal(t, MsgSaveFailed, s.Err)
	assert.Equal(t, ModalCreate, s.Modal)
	assert.Len(t, s.Month, 3)

	month, _, _ := src.calls()
	assert.Equal(t, 1, month)
}

func TestController_RemoveAsksFirst(t *testing.T) {
	src := newFakeSource()
	answer := confirm.Cancel
	var asked []string
	c := NewController(src, func(ctx context.Context, r reminders.Reminder) confirm.Choice {
		asked = append(asked, r.ID)
		return answer
	}, "2024-12-15", time.UTC)
	ctx := context.Background()
	require.NoError(t, c.Refresh(ctx))

	removed, err := c.Remove(ctx, "a")
	require.NoError(t, err)
	assert.False(t, removed)
	_, _, rm := src.calls()
	assert.Zero(t, rm)

	answer = confirm.Delete
	removed, err = c.Remove(ctx, "a")
	require.NoError(t, err)
	assert.True(t, removed)
	_, _, rm = src.calls()
	assert.Equal(t, 1, rm)
	assert.Equal(t, []string{"a", "a"}, asked)

	_, err = c.Remove(ctx, "zzz")
	assert.ErrorIs(t, err, ErrUnknownReminder)
}

func TestController_SelectDateSameMonthDoesNotRefetch(t *testing.T) {
	src := newFakeSource()
	c := NewController(src, nil, "2024-12-15", time.UTC)
	ctx := context.Background()
	require.NoError(t, c.Refresh(ctx))

	require.NoError(t, c.SelectDate(ctx, "2024-12-20"))
	month, _, _ := src.calls()
	assert.Equal(t, 1, month)
	assert.Equal(t, "c", c.State().Day[0].ID)

	assert.ErrorIs(t, c.SelectDate(ctx, "20/12/2024"), reminders.ErrInvalidInput)
}

func TestController_SelectDateRetriesAfterFailedLoad(t *testing.T) {
	src := newFakeSource()
	src.monthErr = errors.New("offline")
	c := NewController(src, nil, "2024-12-15", time.UTC)
	ctx := context.Background()

	require.Error(t, c.Refresh(ctx))
	assert.Equal(t, MsgLoadFailed, c.State().Err)
	assert.Empty(t, c.State().Month)

	src.mu.Lock()
	src.monthErr = nil
	src.mu.Unlock()

	require.NoError(t, c.SelectDate(ctx, "2024-12-16"))

	month, _, _ := src.calls()
	assert.Equal(t, 2, month)
	s := c.State()
	assert.Empty(t, s.Err)
	assert.Len(t, s.Month, 3)

	// Ya cargado: otro día del mismo mes no vuelve a pedir.
	require.NoError(t, c.SelectDate(ctx, "2024-12-20"))
	month, _, _ = src.calls()
	assert.Equal(t, 2, month)
}

func TestController_StaleMonthDoesNotOverwrite(t *testing.T) {
	src := newFakeSource()
	src.months["2024-11"] = []reminders.Reminder{{ID: "nov", PetID: "p1", ScheduledAt: time.Date(2024, 11, 3, 9, 0, 0, 0, time.UTC)}}
	gate := make(chan struct{})
	src.gates["2024-11"] = gate

	c := NewController(src, nil, "2024-12-15", time.UTC)
	ctx := context.Background()

	// El usuario va a noviembre (fetch lento) y vuelve a diciembre antes de que llegue.
	done := make(chan error, 1)
	go func() { done <- c.SelectDate(ctx, "2024-11-03") }()
	require.Eventually(t, func() bool { return c.State().Seq == 1 }, time.Second, time.Millisecond)

	require.NoError(t, c.SelectDate(ctx, "2024-12-15"))
	close(gate)
	require.NoError(t, <-done)

	s := c.State()
	assert.Equal(t, "2024-12-15", s.Selected)
	require.Len(t, s.Month, 3)
	assert.Equal(t, "a", s.Month[0].ID)
	assert.False(t, s.Loading)
}
