package scheduler

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"pet-tracker/internal/domain/reminders"
	"pet-tracker/internal/platform/logger"
	"pet-tracker/internal/ports/notify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type window struct{ from, to time.Time }

type fakeDue struct {
	items []reminders.Reminder
	err   error
	asked []window
}

func (f *fakeDue) DueBetween(_ context.Context, from, to time.Time) ([]reminders.Reminder, error) {
	f.asked = append(f.asked, window{from, to})
	if f.err != nil {
		return nil, f.err
	}
	var out []reminders.Reminder
	for _, r := range f.items {
		if r.ScheduledAt.After(from) && !r.ScheduledAt.After(to) && !r.Completed {
			out = append(out, r)
		}
	}
	return out, nil
}

type captureNotifier struct {
	got  []notify.Due
	fail string
}

func (c *captureNotifier) Notify(_ context.Context, d notify.Due) error {
	if d.ReminderID == c.fail {
		return errors.New("push down")
	}
	c.got = append(c.got, d)
	return nil
}

func TestSweep_WindowsDoNotOverlap(t *testing.T) {
	t0 := time.Date(2024, 12, 15, 9, 0, 0, 0, time.UTC)
	src := &fakeDue{items: []reminders.Reminder{
		{ID: "a", ScheduledAt: t0},
		{ID: "b", ScheduledAt: t0.Add(30 * time.Second), Category: reminders.CategoryBath},
		{ID: "c", ScheduledAt: t0.Add(90 * time.Second)},
	}}
	n := &captureNotifier{}
	sw := NewSweeper(src, n, nil, t0)

	sent, err := sw.Sweep(context.Background(), t0.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 1, sent)

	sent, err = sw.Sweep(context.Background(), t0.Add(2*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 1, sent)

	require.Len(t, n.got, 2)
	assert.Equal(t, "b", n.got[0].ReminderID)
	assert.Equal(t, "bath", n.got[0].Category)
	assert.Equal(t, "c", n.got[1].ReminderID)
	assert.Equal(t, t0.Add(time.Minute), src.asked[1].from)
}

func TestSweep_ErrorKeepsWindow(t *testing.T) {
	t0 := time.Date(2024, 12, 15, 9, 0, 0, 0, time.UTC)
	src := &fakeDue{err: errors.New("db down")}
	sw := NewSweeper(src, &captureNotifier{}, nil, t0)

	_, err := sw.Sweep(context.Background(), t0.Add(time.Minute))
	require.Error(t, err)

	src.err = nil
	_, err = sw.Sweep(context.Background(), t0.Add(2*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, t0, src.asked[1].from)
}

func TestSweep_NotifierFailureSkipsOne(t *testing.T) {
	t0 := time.Date(2024, 12, 15, 9, 0, 0, 0, time.UTC)
	src := &fakeDue{items: []reminders.Reminder{
		{ID: "a", ScheduledAt: t0.Add(time.Second)},
		{ID: "b", ScheduledAt: t0.Add(2 * time.Second)},
	}}
	n := &captureNotifier{fail: "a"}
	sw := NewSweeper(src, n, nil, t0)

	sent, err := sw.Sweep(context.Background(), t0.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	require.Len(t, n.got, 1)
	assert.Equal(t, "b", n.got[0].ReminderID)
}

func TestSweep_ClockBackwardsIsNoop(t *testing.T) {
	t0 := time.Date(2024, 12, 15, 9, 0, 0, 0, time.UTC)
	src := &fakeDue{}
	sw := NewSweeper(src, &captureNotifier{}, nil, t0)

	sent, err := sw.Sweep(context.Background(), t0)
	require.NoError(t, err)
	assert.Zero(t, sent)
	assert.Empty(t, src.asked)
}

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := LogNotifier{Log: logger.New(logger.Options{Format: logger.FormatJSON, Level: logger.Info, Out: &buf})}

	require.NoError(t, n.Notify(context.Background(), notify.Due{ReminderID: "r1", Title: "vacuna"}))
	assert.Contains(t, buf.String(), `"reminder_id":"r1"`)
	assert.Contains(t, buf.String(), "reminder due")
}
