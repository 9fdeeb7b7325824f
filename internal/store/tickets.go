package store

import (
	"context"
	"fmt"

	"event-management/internal/services"
	"event-management/internal/status"
	"event-management/models"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"
)

func (s *Store) SoldQuantity(ctx context.Context, eventID string) (int, error) {
	return soldQuantity(s.app.DB(), eventID)
}

func soldQuantity(db dbx.Builder, eventID string) (int, error) {
	var row struct {
		Total int `db:"total"`
	}
	err := db.Select("COALESCE(SUM(quantity), 0) AS total").
		From("tickets").
		Where(dbx.HashExp{"event": eventID, "payment_status": models.PaymentStatusPaid}).
		One(&row)
	if err != nil {
		return 0, fmt.Errorf("sum sold quantity: %w", err)
	}
	return row.Total, nil
}

// CommitPaid re-checks the capacity invariant and inserts the paid ticket in
// one transaction. SQLite gives writes a single connection, so the re-check
// and the insert cannot interleave with another purchase.
func (s *Store) CommitPaid(ctx context.Context, ticket *models.Ticket, capacity int) error {
	err := s.app.RunInTransaction(func(txApp core.App) error {
		sold, err := soldQuantity(txApp.DB(), ticket.EventID)
		if err != nil {
			return err
		}
		if sold+ticket.Quantity > capacity {
			return fmt.Errorf("%w: not enough tickets available, only %d left",
				status.ErrConflict, capacity-sold)
		}

		collection, err := txApp.FindCollectionByNameOrId("tickets")
		if err != nil {
			return err
		}

		record := core.NewRecord(collection)
		record.Set("ticket_number", ticket.TicketNumber)
		record.Set("event", ticket.EventID)
		record.Set("user", ticket.UserID)
		record.Set("quantity", ticket.Quantity)
		record.Set("total_amount", ticket.TotalAmount)
		record.Set("payment_status", models.PaymentStatusPaid)
		record.Set("payment_method", ticket.PaymentMethod)
		record.Set("transaction_id", ticket.PaymentDetails.TransactionID)
		record.Set("payment_date", ticket.PaymentDetails.PaymentDate)
		record.Set("card_last_four", ticket.PaymentDetails.CardLastFour)
		record.Set("qr_code", ticket.QRCode)

		if err := txApp.Save(record); err != nil {
			return fmt.Errorf("save ticket: %w", err)
		}

		ticket.ID = record.Id
		ticket.PaymentStatus = models.PaymentStatusPaid
		ticket.BookedAt = record.GetDateTime("created").Time()
		return nil
	})
	return err
}

func (s *Store) TicketByID(ctx context.Context, id string) (*models.Ticket, error) {
	record, err := s.app.FindRecordById("tickets", id)
	if err != nil {
		return nil, fmt.Errorf("%w: ticket %s", status.ErrNotFound, id)
	}
	return ticketFromRecord(record), nil
}

func (s *Store) TicketsByUser(ctx context.Context, userID string, filter services.TicketFilter) ([]models.Ticket, int, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PerPage < 1 || filter.PerPage > 100 {
		filter.PerPage = 10
	}

	expr := "user = {:user}"
	params := map[string]any{"user": userID}
	countExp := dbx.HashExp{"user": userID}
	if filter.Status != "" {
		expr += " && payment_status = {:status}"
		params["status"] = filter.Status
		countExp["payment_status"] = filter.Status
	}

	records, err := s.app.FindRecordsByFilter("tickets", expr, "-created",
		filter.PerPage, (filter.Page-1)*filter.PerPage, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list tickets: %w", err)
	}

	total, err := s.app.CountRecords("tickets", countExp)
	if err != nil {
		return nil, 0, fmt.Errorf("count tickets: %w", err)
	}

	tickets := make([]models.Ticket, 0, len(records))
	for _, r := range records {
		tickets = append(tickets, *ticketFromRecord(r))
	}
	return tickets, int(total), nil
}

// MarkRefunded moves a ticket from paid to refunded. The status check runs
// inside the transaction, so the second of two racing cancels sees refunded
// and gets ErrInvalidState.
func (s *Store) MarkRefunded(ctx context.Context, ticketID string) error {
	return s.app.RunInTransaction(func(txApp core.App) error {
		record, err := txApp.FindRecordById("tickets", ticketID)
		if err != nil {
			return fmt.Errorf("%w: ticket %s", status.ErrNotFound, ticketID)
		}

		current := record.GetString("payment_status")
		if !models.CanTransition(current, models.PaymentStatusRefunded) {
			return fmt.Errorf("%w: ticket is %s, only paid tickets can be cancelled",
				status.ErrInvalidState, current)
		}

		record.Set("payment_status", models.PaymentStatusRefunded)
		if err := txApp.Save(record); err != nil {
			return fmt.Errorf("save ticket: %w", err)
		}
		return nil
	})
}
