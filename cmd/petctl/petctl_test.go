package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"pet-tracker/internal/agenda"
	"pet-tracker/internal/domain/confirm"
	"pet-tracker/internal/domain/reminders"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilter(t *testing.T) {
	f, err := parseFilter(" p1, ,p2", "bath,Medication")
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2"}, f.PetIDs)
	assert.Equal(t, []reminders.Category{reminders.CategoryBath, reminders.CategoryMedication}, f.Categories)

	_, err = parseFilter("", "spa")
	assert.ErrorIs(t, err, reminders.ErrInvalidInput)

	f, err = parseFilter("", "")
	require.NoError(t, err)
	assert.Empty(t, f.PetIDs)
	assert.Empty(t, f.Categories)
}

func TestConfirmPrompt(t *testing.T) {
	r := reminders.Reminder{Title: "Vacuna"}
	var out bytes.Buffer

	ask := confirmPrompt(strings.NewReader("delete\n"), &out, false)
	assert.Equal(t, confirm.Delete, ask(context.Background(), r))
	assert.Contains(t, out.String(), "Cancel/Delete")

	ask = confirmPrompt(strings.NewReader("\n"), &out, false)
	assert.Equal(t, confirm.Cancel, ask(context.Background(), r))

	ask = confirmPrompt(strings.NewReader(""), &out, true)
	assert.Equal(t, confirm.Delete, ask(context.Background(), r))
}

func TestPrintAgenda(t *testing.T) {
	s := agenda.New("2024-12-15", time.UTC)
	s = agenda.Reduce(s, agenda.FetchStarted{Seq: 1})
	s = agenda.Reduce(s, agenda.FetchSucceeded{
		Seq: 1,
		Month: []reminders.Reminder{
			{ID: "r1", PetID: "p1", Title: "Baño", Category: reminders.CategoryBath, ScheduledAt: time.Date(2024, 12, 15, 9, 30, 0, 0, time.UTC), Completed: true},
			{ID: "r2", PetID: "p1", Title: "Vacuna", Category: reminders.CategoryMedication, ScheduledAt: time.Date(2024, 12, 20, 9, 0, 0, 0, time.UTC)},
		},
		Colors: map[string]string{"p1": "#f00"},
	})

	var buf bytes.Buffer
	printAgenda(&buf, s)

	got := buf.String()
	assert.Contains(t, got, "2024-12-15 (2 reminders this month)")
	assert.Contains(t, got, "09:30")
	assert.NotContains(t, got, "Vacuna")
	assert.Contains(t, got, "marked: 2024-12-15 2024-12-20")
}
