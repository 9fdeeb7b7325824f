package services

import (
	"context"
	"time"
)

// Reporting row shapes. All reporting reads are over the events/tickets
// collections only; nothing here mutates state.

type EventRevenue struct {
	EventID      string  `db:"event_id" json:"event_id"`
	EventTitle   string  `db:"event_title" json:"event_name"`
	TotalRevenue float64 `db:"total_revenue" json:"total_revenue"`
	TotalTickets int     `db:"total_tickets" json:"total_tickets"`
}

type EventRegistrations struct {
	EventID            string    `db:"event_id" json:"event_id"`
	EventTitle         string    `db:"event_title" json:"event_name"`
	CategoryID         string    `db:"category_id" json:"category_id"`
	Date               time.Time `json:"date"`
	TotalRegistrations int       `db:"total_registrations" json:"total_registrations"`
}

type StatusCount struct {
	Status string `db:"status" json:"status"`
	Count  int    `db:"count" json:"count"`
}

type PaymentStatusRollup struct {
	Status  string  `db:"status" json:"status"`
	Tickets int     `db:"tickets" json:"tickets"`
	Amount  float64 `db:"amount" json:"amount"`
}

type EventPaymentSummary struct {
	EventID      string                `json:"event_id"`
	EventTitle   string                `json:"event_name"`
	Statuses     []PaymentStatusRollup `json:"payment_statuses"`
	TotalTickets int                   `json:"total_tickets"`
	TotalAmount  float64               `json:"total_amount"`
}

type UserTicketStats struct {
	TotalTickets int                   `json:"total_tickets"`
	ByStatus     []PaymentStatusRollup `json:"by_status"`
}

type RecentBooking struct {
	TicketNumber string    `db:"ticket_number" json:"ticket_number"`
	EventTitle   string    `db:"event_title" json:"event_name"`
	UserName     string    `db:"user_name" json:"user_name"`
	UserEmail    string    `db:"user_email" json:"user_email"`
	Quantity     int       `db:"quantity" json:"quantity"`
	TotalAmount  float64   `db:"total_amount" json:"total_amount"`
	Status       string    `db:"status" json:"status"`
	BookedAt     time.Time `json:"booked_at"`
}

type DashboardStats struct {
	TotalUsers     int             `json:"total_users"`
	TotalEvents    int             `json:"total_events"`
	TotalTickets   int             `json:"total_tickets"`
	TotalRevenue   float64         `json:"total_revenue"`
	EventsByStatus []StatusCount   `json:"events_by_status"`
	RecentBookings []RecentBooking `json:"recent_bookings"`
}

type CategoryCount struct {
	ID            string `db:"id" json:"id"`
	Name          string `db:"name" json:"name"`
	Description   string `db:"description" json:"description"`
	EventCount    int    `db:"event_count" json:"event_count"`
	UpcomingCount int    `db:"upcoming_count" json:"upcoming_events"`
}

// ReportSource is implemented by the persistence layer with aggregate
// queries.
type ReportSource interface {
	TicketsSold(ctx context.Context, eventID string) (*EventRevenue, error)
	RevenueByEvent(ctx context.Context) ([]EventRevenue, error)
	TopRegisteredEvents(ctx context.Context, limit int) ([]EventRegistrations, error)
	EventCountByStatus(ctx context.Context) ([]StatusCount, error)
	PaymentSummaryByEvent(ctx context.Context) ([]EventPaymentSummary, error)
	UserTicketStats(ctx context.Context, userID string) (*UserTicketStats, error)
	Dashboard(ctx context.Context) (*DashboardStats, error)
	CategoriesWithCounts(ctx context.Context) ([]CategoryCount, error)
}

// ReportingService is the read-only rollup layer over the ticket ledger and
// event catalog.
type ReportingService struct {
	source ReportSource
}

func NewReportingService(source ReportSource) *ReportingService {
	return &ReportingService{source: source}
}

func (s *ReportingService) TicketsSold(ctx context.Context, eventID string) (*EventRevenue, error) {
	return s.source.TicketsSold(ctx, eventID)
}

func (s *ReportingService) RevenueByEvent(ctx context.Context) ([]EventRevenue, error) {
	return s.source.RevenueByEvent(ctx)
}

func (s *ReportingService) TopRegisteredEvents(ctx context.Context, limit int) ([]EventRegistrations, error) {
	if limit < 1 {
		limit = 10
	}
	return s.source.TopRegisteredEvents(ctx, limit)
}

func (s *ReportingService) EventCountByStatus(ctx context.Context) ([]StatusCount, error) {
	return s.source.EventCountByStatus(ctx)
}

func (s *ReportingService) PaymentSummaryByEvent(ctx context.Context) ([]EventPaymentSummary, error) {
	return s.source.PaymentSummaryByEvent(ctx)
}

func (s *ReportingService) UserTicketStats(ctx context.Context, userID string) (*UserTicketStats, error) {
	return s.source.UserTicketStats(ctx, userID)
}

func (s *ReportingService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	return s.source.Dashboard(ctx)
}

func (s *ReportingService) CategoriesWithCounts(ctx context.Context) ([]CategoryCount, error) {
	return s.source.CategoriesWithCounts(ctx)
}
