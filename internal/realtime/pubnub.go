// Package realtime pushes availability and booking updates to clients over
// PubNub. Availability changes go to a per-event channel, purchase and
// refund confirmations to a per-user channel.
package realtime

import (
	"context"
	"log/slog"

	"event-management/models"

	pubnub "github.com/pubnub/go/v7"
)

type PubNubNotifier struct {
	pn *pubnub.PubNub
}

func NewPubNubNotifier(publishKey, subscribeKey, secretKey, userID string) *PubNubNotifier {
	cfg := pubnub.NewConfigWithUserId(pubnub.UserId(userID))
	cfg.PublishKey = publishKey
	cfg.SubscribeKey = subscribeKey
	cfg.SecretKey = secretKey

	return &PubNubNotifier{pn: pubnub.NewPubNub(cfg)}
}

func (n *PubNubNotifier) publish(channel string, message map[string]any) {
	// Fire and forget. A dropped realtime message costs a client one poll;
	// it must never cost them a purchase.
	go func() {
		_, pnStatus, err := n.pn.Publish().
			Channel(channel).
			Message(message).
			Execute()
		if err != nil {
			slog.Warn("realtime publish failed",
				"channel", channel, "status", pnStatus.StatusCode, "error", err)
		}
	}()
}

func (n *PubNubNotifier) AvailabilityChanged(ctx context.Context, eventID string, available int) {
	n.publish("event-"+eventID, map[string]any{
		"type":              "availability_changed",
		"event_id":          eventID,
		"tickets_available": available,
	})
}

func (n *PubNubNotifier) PurchaseCompleted(ctx context.Context, ticket *models.Ticket) {
	n.publish("user-"+ticket.UserID, map[string]any{
		"type":          "purchase_completed",
		"ticket_number": ticket.TicketNumber,
		"event_id":      ticket.EventID,
		"quantity":      ticket.Quantity,
		"total_amount":  ticket.TotalAmount,
	})
}

func (n *PubNubNotifier) TicketRefunded(ctx context.Context, ticket *models.Ticket) {
	n.publish("user-"+ticket.UserID, map[string]any{
		"type":          "ticket_refunded",
		"ticket_number": ticket.TicketNumber,
		"event_id":      ticket.EventID,
		"refund_amount": ticket.TotalAmount,
	})
}
