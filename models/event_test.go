package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validEvent() *Event {
	return &Event{
		Title:       "Go Conference",
		Description: "Two days of talks",
		CategoryID:  "cat-1",
		Location:    Location{Venue: "Convention Center", City: "Berlin", Country: "Germany"},
		DateTime: TimeRange{
			Start: time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC),
			End:   time.Date(2026, 10, 2, 18, 0, 0, 0, time.UTC),
		},
		Organizer:   Organizer{Name: "GoConf", Email: "hello@goconf.example", Phone: "+49 30 1234"},
		Capacity:    500,
		TicketPrice: 99.90,
		Status:      EventStatusUpcoming,
	}
}

func TestEvent_Validate_Valid(t *testing.T) {
	require.NoError(t, validEvent().Validate())
}

func TestEvent_Validate_CollectsAllProblems(t *testing.T) {
	event := &Event{}
	err := event.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "title is required")
	assert.Contains(t, err.Error(), "capacity must be at least 1")
	assert.Contains(t, err.Error(), "category is required")
}

func TestEvent_Validate_RejectsBadFields(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Event)
		problem string
	}{
		{"zero capacity", func(e *Event) { e.Capacity = 0 }, "capacity"},
		{"negative capacity", func(e *Event) { e.Capacity = -5 }, "capacity"},
		{"negative price", func(e *Event) { e.TicketPrice = -1 }, "ticket price"},
		{"end before start", func(e *Event) { e.DateTime.End = e.DateTime.Start.Add(-time.Hour) }, "start time must be before end time"},
		{"unknown status", func(e *Event) { e.Status = "postponed" }, "unknown status"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			event := validEvent()
			tc.mutate(event)
			err := event.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.problem)
		})
	}
}

func TestEvent_Purchasable(t *testing.T) {
	event := validEvent()
	assert.True(t, event.Purchasable())

	for _, s := range []string{EventStatusOngoing, EventStatusCompleted, EventStatusCancelled} {
		event.Status = s
		assert.False(t, event.Purchasable(), "status %s", s)
	}
}
