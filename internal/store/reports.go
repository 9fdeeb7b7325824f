package store

import (
	"context"
	"fmt"

	"event-management/internal/services"
	"event-management/internal/status"
	"event-management/models"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/tools/types"
)

// Aggregate reporting queries. Everything here is read-only and derives
// from the paid subset of the ticket ledger, so the numbers always agree
// with availability.

func (s *Store) TicketsSold(ctx context.Context, eventID string) (*services.EventRevenue, error) {
	if _, err := s.app.FindRecordById("events", eventID); err != nil {
		return nil, fmt.Errorf("%w: event %s", status.ErrNotFound, eventID)
	}

	var row services.EventRevenue
	err := s.app.DB().Select(
		"e.id AS event_id",
		"e.title AS event_title",
		"COALESCE(SUM(t.quantity), 0) AS total_tickets",
		"COALESCE(SUM(t.total_amount), 0) AS total_revenue",
	).
		From("events e").
		LeftJoin("tickets t", dbx.NewExp("t.event = e.id AND t.payment_status = {:paid}",
			dbx.Params{"paid": models.PaymentStatusPaid})).
		Where(dbx.HashExp{"e.id": eventID}).
		GroupBy("e.id").
		One(&row)
	if err != nil {
		return nil, fmt.Errorf("tickets sold: %w", err)
	}
	return &row, nil
}

func (s *Store) RevenueByEvent(ctx context.Context) ([]services.EventRevenue, error) {
	var rows []services.EventRevenue
	err := s.app.DB().Select(
		"e.id AS event_id",
		"e.title AS event_title",
		"COALESCE(SUM(t.quantity), 0) AS total_tickets",
		"COALESCE(SUM(t.total_amount), 0) AS total_revenue",
	).
		From("events e").
		LeftJoin("tickets t", dbx.NewExp("t.event = e.id AND t.payment_status = {:paid}",
			dbx.Params{"paid": models.PaymentStatusPaid})).
		GroupBy("e.id").
		OrderBy("total_revenue DESC").
		All(&rows)
	if err != nil {
		return nil, fmt.Errorf("revenue by event: %w", err)
	}
	return rows, nil
}

func (s *Store) TopRegisteredEvents(ctx context.Context, limit int) ([]services.EventRegistrations, error) {
	var raw []struct {
		EventID            string         `db:"event_id"`
		EventTitle         string         `db:"event_title"`
		CategoryID         string         `db:"category_id"`
		StartTime          types.DateTime `db:"start_time"`
		TotalRegistrations int            `db:"total_registrations"`
	}
	err := s.app.DB().Select(
		"e.id AS event_id",
		"e.title AS event_title",
		"e.category AS category_id",
		"e.start_time",
		"COALESCE(SUM(t.quantity), 0) AS total_registrations",
	).
		From("events e").
		LeftJoin("tickets t", dbx.NewExp("t.event = e.id AND t.payment_status = {:paid}",
			dbx.Params{"paid": models.PaymentStatusPaid})).
		GroupBy("e.id").
		OrderBy("total_registrations DESC").
		Limit(int64(limit)).
		All(&raw)
	if err != nil {
		return nil, fmt.Errorf("top registered events: %w", err)
	}

	rows := make([]services.EventRegistrations, 0, len(raw))
	for _, r := range raw {
		rows = append(rows, services.EventRegistrations{
			EventID:            r.EventID,
			EventTitle:         r.EventTitle,
			CategoryID:         r.CategoryID,
			Date:               r.StartTime.Time(),
			TotalRegistrations: r.TotalRegistrations,
		})
	}
	return rows, nil
}

func (s *Store) EventCountByStatus(ctx context.Context) ([]services.StatusCount, error) {
	var rows []services.StatusCount
	err := s.app.DB().Select("status", "COUNT(*) AS count").
		From("events").
		GroupBy("status").
		OrderBy("count DESC").
		All(&rows)
	if err != nil {
		return nil, fmt.Errorf("event count by status: %w", err)
	}
	return rows, nil
}

func (s *Store) PaymentSummaryByEvent(ctx context.Context) ([]services.EventPaymentSummary, error) {
	var raw []struct {
		EventID    string  `db:"event_id"`
		EventTitle string  `db:"event_title"`
		Status     string  `db:"status"`
		Tickets    int     `db:"tickets"`
		Amount     float64 `db:"amount"`
	}
	err := s.app.DB().Select(
		"e.id AS event_id",
		"e.title AS event_title",
		"t.payment_status AS status",
		"COALESCE(SUM(t.quantity), 0) AS tickets",
		"COALESCE(SUM(t.total_amount), 0) AS amount",
	).
		From("tickets t").
		InnerJoin("events e", dbx.NewExp("e.id = t.event")).
		GroupBy("e.id", "t.payment_status").
		OrderBy("e.title", "t.payment_status").
		All(&raw)
	if err != nil {
		return nil, fmt.Errorf("payment summary: %w", err)
	}

	// Fold the per-status rows into one summary per event, preserving the
	// query order.
	var summaries []services.EventPaymentSummary
	index := map[string]int{}
	for _, r := range raw {
		i, ok := index[r.EventID]
		if !ok {
			summaries = append(summaries, services.EventPaymentSummary{
				EventID:    r.EventID,
				EventTitle: r.EventTitle,
			})
			i = len(summaries) - 1
			index[r.EventID] = i
		}
		summaries[i].Statuses = append(summaries[i].Statuses, services.PaymentStatusRollup{
			Status:  r.Status,
			Tickets: r.Tickets,
			Amount:  r.Amount,
		})
		summaries[i].TotalTickets += r.Tickets
		summaries[i].TotalAmount += r.Amount
	}
	if summaries == nil {
		summaries = []services.EventPaymentSummary{}
	}
	return summaries, nil
}

func (s *Store) UserTicketStats(ctx context.Context, userID string) (*services.UserTicketStats, error) {
	var rows []services.PaymentStatusRollup
	err := s.app.DB().Select(
		"payment_status AS status",
		"COALESCE(SUM(quantity), 0) AS tickets",
		"COALESCE(SUM(total_amount), 0) AS amount",
	).
		From("tickets").
		Where(dbx.HashExp{"user": userID}).
		GroupBy("payment_status").
		All(&rows)
	if err != nil {
		return nil, fmt.Errorf("user ticket stats: %w", err)
	}

	stats := &services.UserTicketStats{ByStatus: rows}
	if stats.ByStatus == nil {
		stats.ByStatus = []services.PaymentStatusRollup{}
	}
	for _, r := range rows {
		stats.TotalTickets += r.Tickets
	}
	return stats, nil
}

func (s *Store) Dashboard(ctx context.Context) (*services.DashboardStats, error) {
	stats := &services.DashboardStats{}

	for _, c := range []struct {
		collection string
		dst        *int
	}{
		{"users", &stats.TotalUsers},
		{"events", &stats.TotalEvents},
		{"tickets", &stats.TotalTickets},
	} {
		n, err := s.app.CountRecords(c.collection)
		if err != nil {
			return nil, fmt.Errorf("count %s: %w", c.collection, err)
		}
		*c.dst = int(n)
	}

	var revenue struct {
		Total float64 `db:"total"`
	}
	err := s.app.DB().Select("COALESCE(SUM(total_amount), 0) AS total").
		From("tickets").
		Where(dbx.HashExp{"payment_status": models.PaymentStatusPaid}).
		One(&revenue)
	if err != nil {
		return nil, fmt.Errorf("total revenue: %w", err)
	}
	stats.TotalRevenue = revenue.Total

	stats.EventsByStatus, err = s.EventCountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	var recent []struct {
		TicketNumber string         `db:"ticket_number"`
		EventTitle   string         `db:"event_title"`
		UserName     string         `db:"user_name"`
		UserEmail    string         `db:"user_email"`
		Quantity     int            `db:"quantity"`
		TotalAmount  float64        `db:"total_amount"`
		Status       string         `db:"status"`
		Created      types.DateTime `db:"created"`
	}
	err = s.app.DB().Select(
		"t.ticket_number",
		"e.title AS event_title",
		"u.name AS user_name",
		"u.email AS user_email",
		"t.quantity",
		"t.total_amount",
		"t.payment_status AS status",
		"t.created",
	).
		From("tickets t").
		InnerJoin("events e", dbx.NewExp("e.id = t.event")).
		InnerJoin("users u", dbx.NewExp("u.id = t.user")).
		OrderBy("t.created DESC").
		Limit(5).
		All(&recent)
	if err != nil {
		return nil, fmt.Errorf("recent bookings: %w", err)
	}

	stats.RecentBookings = make([]services.RecentBooking, 0, len(recent))
	for _, r := range recent {
		stats.RecentBookings = append(stats.RecentBookings, services.RecentBooking{
			TicketNumber: r.TicketNumber,
			EventTitle:   r.EventTitle,
			UserName:     r.UserName,
			UserEmail:    r.UserEmail,
			Quantity:     r.Quantity,
			TotalAmount:  r.TotalAmount,
			Status:       r.Status,
			BookedAt:     r.Created.Time(),
		})
	}
	return stats, nil
}

func (s *Store) CategoriesWithCounts(ctx context.Context) ([]services.CategoryCount, error) {
	var rows []services.CategoryCount
	err := s.app.DB().Select(
		"c.id",
		"c.name",
		"c.description",
		"COUNT(e.id) AS event_count",
		"COALESCE(SUM(CASE WHEN e.status = {:upcoming} THEN 1 ELSE 0 END), 0) AS upcoming_count",
	).
		From("categories c").
		LeftJoin("events e", dbx.NewExp("e.category = c.id")).
		GroupBy("c.id").
		OrderBy("c.name").
		Bind(dbx.Params{"upcoming": models.EventStatusUpcoming}).
		All(&rows)
	if err != nil {
		return nil, fmt.Errorf("categories with counts: %w", err)
	}
	return rows, nil
}
