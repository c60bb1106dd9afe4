package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMarks_MergesPetsOnSameDay(t *testing.T) {
	colors := map[string]string{"p1": "#fff", "p2": "#000"}
	events := []Event{
		{Date: "2024-12-15", PetID: "p1"},
		{Date: "2024-12-15", PetID: "p2"},
	}

	marks := BuildMarks(events, colors, "")

	require.Contains(t, marks, "2024-12-15")
	assert.ElementsMatch(t, []Dot{{Key: "#fff", Color: "#fff"}, {Key: "#000", Color: "#000"}}, marks["2024-12-15"].Dots)
	assert.False(t, marks["2024-12-15"].Selected)

	// re-seleccionar el día no borra los puntos
	marks = marks.Select("2024-12-15")
	assert.True(t, marks["2024-12-15"].Selected)
	assert.Len(t, marks["2024-12-15"].Dots, 2)
}

func TestBuildMarks_DedupesColorAndDropsUnknownPets(t *testing.T) {
	colors := map[string]string{"p1": "#abc", "p2": "#abc"}
	events := []Event{
		{Date: "2024-02-29", PetID: "p1"},
		{Date: "2024-02-29", PetID: "p1"},
		{Date: "2024-02-29", PetID: "p2"},
		{Date: "2024-02-29", PetID: "ghost"},
		{Date: "2024-02-28", PetID: "ghost"},
	}

	marks := BuildMarks(events, colors, "")

	assert.Equal(t, []Dot{{Key: "#abc", Color: "#abc"}}, marks["2024-02-29"].Dots)
	assert.NotContains(t, marks, "2024-02-28")
}

func TestBuildMarks_SelectedDayWithoutEvents(t *testing.T) {
	marks := BuildMarks(nil, nil, "2024-12-01")

	require.Contains(t, marks, "2024-12-01")
	assert.True(t, marks["2024-12-01"].Selected)
	assert.Empty(t, marks["2024-12-01"].Dots)
}

func TestSelect_MovesHighlight(t *testing.T) {
	colors := map[string]string{"p1": "#fff"}
	marks := BuildMarks([]Event{{Date: "2024-12-10", PetID: "p1"}}, colors, "2024-12-03")

	moved := marks.Select("2024-12-10")

	// el día vacío que solo tenía resaltado desaparece
	assert.NotContains(t, moved, "2024-12-03")
	assert.True(t, moved["2024-12-10"].Selected)
	assert.Len(t, moved["2024-12-10"].Dots, 1)

	// la original no se toca
	assert.True(t, marks["2024-12-03"].Selected)
}
