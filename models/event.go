package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Event statuses. Transitions are time-driven or admin-driven; only
// StatusUpcoming events are purchasable.
const (
	EventStatusUpcoming  = "upcoming"
	EventStatusOngoing   = "ongoing"
	EventStatusCompleted = "completed"
	EventStatusCancelled = "cancelled"
)

type Location struct {
	Venue   string `json:"venue"`
	City    string `json:"city"`
	Country string `json:"country"`
}

type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type Organizer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type Event struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	CategoryID    string    `json:"category_id"`
	Location      Location  `json:"location"`
	DateTime      TimeRange `json:"date_time"`
	Organizer     Organizer `json:"organizer"`
	Capacity      int       `json:"capacity"`
	TicketPrice   float64   `json:"ticket_price"`
	Status        string    `json:"status"`
	AverageRating float64   `json:"average_rating"`
	TotalReviews  int       `json:"total_reviews"`
	CreatedAt     time.Time `json:"created_at"`
}

// Validate is the single authoritative ruleset for event writes. Every
// create/update path goes through it.
func (e *Event) Validate() error {
	var problems []string

	if strings.TrimSpace(e.Title) == "" {
		problems = append(problems, "title is required")
	}
	if strings.TrimSpace(e.Description) == "" {
		problems = append(problems, "description is required")
	}
	if strings.TrimSpace(e.CategoryID) == "" {
		problems = append(problems, "category is required")
	}
	if strings.TrimSpace(e.Location.Venue) == "" {
		problems = append(problems, "venue is required")
	}
	if strings.TrimSpace(e.Location.City) == "" {
		problems = append(problems, "city is required")
	}
	if strings.TrimSpace(e.Location.Country) == "" {
		problems = append(problems, "country is required")
	}
	if e.DateTime.Start.IsZero() || e.DateTime.End.IsZero() {
		problems = append(problems, "start and end time are required")
	} else if !e.DateTime.Start.Before(e.DateTime.End) {
		problems = append(problems, "start time must be before end time")
	}
	if strings.TrimSpace(e.Organizer.Name) == "" {
		problems = append(problems, "organizer name is required")
	}
	if strings.TrimSpace(e.Organizer.Email) == "" {
		problems = append(problems, "organizer email is required")
	}
	if strings.TrimSpace(e.Organizer.Phone) == "" {
		problems = append(problems, "organizer phone is required")
	}
	if e.Capacity < 1 {
		problems = append(problems, "capacity must be at least 1")
	}
	if e.TicketPrice < 0 {
		problems = append(problems, "ticket price cannot be negative")
	}
	if e.Status != "" && !ValidEventStatus(e.Status) {
		problems = append(problems, fmt.Sprintf("unknown status %q", e.Status))
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func ValidEventStatus(s string) bool {
	switch s {
	case EventStatusUpcoming, EventStatusOngoing, EventStatusCompleted, EventStatusCancelled:
		return true
	}
	return false
}

// Purchasable reports whether tickets may still be sold for the event.
func (e *Event) Purchasable() bool {
	return e.Status == EventStatusUpcoming
}
