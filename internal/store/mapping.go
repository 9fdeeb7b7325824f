package store

import (
	"event-management/models"

	"github.com/pocketbase/pocketbase/core"
)

func eventFromRecord(r *core.Record) *models.Event {
	return &models.Event{
		ID:          r.Id,
		Title:       r.GetString("title"),
		Description: r.GetString("description"),
		CategoryID:  r.GetString("category"),
		Location: models.Location{
			Venue:   r.GetString("venue"),
			City:    r.GetString("city"),
			Country: r.GetString("country"),
		},
		DateTime: models.TimeRange{
			Start: r.GetDateTime("start_time").Time(),
			End:   r.GetDateTime("end_time").Time(),
		},
		Organizer: models.Organizer{
			Name:  r.GetString("organizer_name"),
			Email: r.GetString("organizer_email"),
			Phone: r.GetString("organizer_phone"),
		},
		Capacity:      r.GetInt("capacity"),
		TicketPrice:   r.GetFloat("ticket_price"),
		Status:        r.GetString("status"),
		AverageRating: r.GetFloat("average_rating"),
		TotalReviews:  r.GetInt("total_reviews"),
		CreatedAt:     r.GetDateTime("created").Time(),
	}
}

func eventsFromRecords(records []*core.Record) []models.Event {
	events := make([]models.Event, 0, len(records))
	for _, r := range records {
		events = append(events, *eventFromRecord(r))
	}
	return events
}

func applyEvent(r *core.Record, e *models.Event) {
	r.Set("title", e.Title)
	r.Set("description", e.Description)
	r.Set("category", e.CategoryID)
	r.Set("venue", e.Location.Venue)
	r.Set("city", e.Location.City)
	r.Set("country", e.Location.Country)
	r.Set("start_time", e.DateTime.Start)
	r.Set("end_time", e.DateTime.End)
	r.Set("organizer_name", e.Organizer.Name)
	r.Set("organizer_email", e.Organizer.Email)
	r.Set("organizer_phone", e.Organizer.Phone)
	r.Set("capacity", e.Capacity)
	r.Set("ticket_price", e.TicketPrice)
	if e.Status != "" {
		r.Set("status", e.Status)
	}
	r.Set("average_rating", e.AverageRating)
	r.Set("total_reviews", e.TotalReviews)
}

// mergeEvent copies the non-zero fields of patch onto dst.
func mergeEvent(dst, patch *models.Event) {
	if patch.Title != "" {
		dst.Title = patch.Title
	}
	if patch.Description != "" {
		dst.Description = patch.Description
	}
	if patch.CategoryID != "" {
		dst.CategoryID = patch.CategoryID
	}
	if patch.Location.Venue != "" {
		dst.Location.Venue = patch.Location.Venue
	}
	if patch.Location.City != "" {
		dst.Location.City = patch.Location.City
	}
	if patch.Location.Country != "" {
		dst.Location.Country = patch.Location.Country
	}
	if !patch.DateTime.Start.IsZero() {
		dst.DateTime.Start = patch.DateTime.Start
	}
	if !patch.DateTime.End.IsZero() {
		dst.DateTime.End = patch.DateTime.End
	}
	if patch.Organizer.Name != "" {
		dst.Organizer.Name = patch.Organizer.Name
	}
	if patch.Organizer.Email != "" {
		dst.Organizer.Email = patch.Organizer.Email
	}
	if patch.Organizer.Phone != "" {
		dst.Organizer.Phone = patch.Organizer.Phone
	}
	if patch.Capacity != 0 {
		dst.Capacity = patch.Capacity
	}
	if patch.TicketPrice != 0 {
		dst.TicketPrice = patch.TicketPrice
	}
	if patch.Status != "" {
		dst.Status = patch.Status
	}
}

func ticketFromRecord(r *core.Record) *models.Ticket {
	return &models.Ticket{
		ID:            r.Id,
		TicketNumber:  r.GetString("ticket_number"),
		EventID:       r.GetString("event"),
		UserID:        r.GetString("user"),
		Quantity:      r.GetInt("quantity"),
		TotalAmount:   r.GetFloat("total_amount"),
		PaymentStatus: r.GetString("payment_status"),
		PaymentMethod: r.GetString("payment_method"),
		PaymentDetails: models.PaymentDetails{
			TransactionID: r.GetString("transaction_id"),
			PaymentDate:   r.GetDateTime("payment_date").Time(),
			CardLastFour:  r.GetString("card_last_four"),
		},
		QRCode:   r.GetString("qr_code"),
		BookedAt: r.GetDateTime("created").Time(),
	}
}

func categoryFromRecord(r *core.Record) models.Category {
	return models.Category{
		ID:          r.Id,
		Name:        r.GetString("name"),
		Description: r.GetString("description"),
	}
}

func userFromRecord(r *core.Record) *models.User {
	return &models.User{
		ID:        r.Id,
		Name:      r.GetString("name"),
		Email:     r.GetString("email"),
		Phone:     r.GetString("phone"),
		Role:      r.GetString("role"),
		CreatedAt: r.GetDateTime("created").Time(),
	}
}
