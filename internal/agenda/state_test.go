package agenda

import (
	"errors"
	"testing"
	"time"

	"pet-tracker/internal/domain/reminders"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(day, hour int) time.Time { return time.Date(2024, 12, day, hour, 0, 0, 0, time.UTC) }

var december = []reminders.Reminder{
	{ID: "a", PetID: "p1", Category: reminders.CategoryBath, ScheduledAt: at(15, 9)},
	{ID: "b", PetID: "p2", Category: reminders.CategoryMedication, ScheduledAt: at(15, 18)},
	{ID: "c", PetID: "p1", Category: reminders.CategoryMedication, ScheduledAt: at(20, 10)},
}

var colors = map[string]string{"p1": "#fff", "p2": "#000"}

func TestReduce_FetchDerivesDayAndMarks(t *testing.T) {
	s := New("2024-12-15", time.UTC)
	s = Reduce(s, FetchStarted{Seq: 1})
	assert.True(t, s.Loading)

	s = Reduce(s, FetchSucceeded{Seq: 1, Month: december, Colors: colors})

	assert.False(t, s.Loading)
	require.Len(t, s.Day, 2)
	assert.Len(t, s.Marks["2024-12-15"].Dots, 2)
	assert.True(t, s.Marks["2024-12-15"].Selected)
	assert.Len(t, s.Marks["2024-12-20"].Dots, 1)
}

func TestReduce_IgnoresStaleResponse(t *testing.T) {
	s := New("2024-12-15", time.UTC)
	s = Reduce(s, FetchStarted{Seq: 1})
	s = Reduce(s, FetchStarted{Seq: 2})

	s = Reduce(s, FetchSucceeded{Seq: 2, Month: december[:1], Colors: colors})
	s = Reduce(s, FetchSucceeded{Seq: 1, Month: december, Colors: colors})
	s = Reduce(s, FetchFailed{Seq: 1, Err: errors.New("late")})

	assert.Len(t, s.Month, 1)
	assert.Empty(t, s.Err)
}

func TestReduce_FetchFailedClearsList(t *testing.T) {
	s := New("2024-12-15", time.UTC)
	s = Reduce(s, FetchStarted{Seq: 1})
	s = Reduce(s, FetchSucceeded{Seq: 1, Month: december, Colors: colors})
	s = Reduce(s, FetchStarted{Seq: 2})
	s = Reduce(s, FetchFailed{Seq: 2, Err: errors.New("offline")})

	assert.Empty(t, s.Month)
	assert.Empty(t, s.Day)
	assert.Equal(t, MsgLoadFailed, s.Err)
	assert.False(t, s.Loading)
}

func TestReduce_MutationFailedKeepsState(t *testing.T) {
	s := New("2024-12-15", time.UTC)
	s = Reduce(s, FetchStarted{Seq: 1})
	s = Reduce(s, FetchSucceeded{Seq: 1, Month: december, Colors: colors})
	s = Reduce(s, OpenModal{Editing: &december[0]})

	s = Reduce(s, MutationFailed{Message: MsgSaveFailed})

	assert.Equal(t, MsgSaveFailed, s.Err)
	assert.Len(t, s.Month, 3)
	assert.Equal(t, ModalEdit, s.Modal)
	require.NotNil(t, s.Editing)
	assert.Equal(t, "a", s.Editing.ID)
}

func TestReduce_FiltersAndSelection(t *testing.T) {
	s := New("2024-12-15", time.UTC)
	s = Reduce(s, FetchStarted{Seq: 1})
	s = Reduce(s, FetchSucceeded{Seq: 1, Month: december, Colors: colors})

	s = Reduce(s, SetFilters{Filter: reminders.Filter{Categories: []reminders.Category{reminders.CategoryMedication}}})
	assert.Len(t, s.Visible, 2)
	require.Len(t, s.Day, 1)
	assert.Equal(t, "b", s.Day[0].ID)

	s = Reduce(s, SelectDate{Date: "2024-12-20"})
	require.Len(t, s.Day, 1)
	assert.Equal(t, "c", s.Day[0].ID)
	assert.True(t, s.Marks["2024-12-20"].Selected)
	assert.False(t, s.Marks["2024-12-15"].Selected)
	assert.NotEmpty(t, s.Marks["2024-12-15"].Dots)

	s = Reduce(s, SetFilters{})
	assert.Len(t, s.Visible, 3)
}

func TestReduce_Modal(t *testing.T) {
	s := Reduce(New("2024-12-15", time.UTC), OpenModal{})
	assert.Equal(t, ModalCreate, s.Modal)
	assert.Nil(t, s.Editing)

	s = Reduce(s, CloseModal{})
	assert.Equal(t, ModalClosed, s.Modal)
}
