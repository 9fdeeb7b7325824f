package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		events, err := app.FindCollectionByNameOrId("events")
		if err != nil {
			return err
		}
		users, err := app.FindCollectionByNameOrId("users")
		if err != nil {
			return err
		}

		collection := core.NewBaseCollection("tickets")

		collection.Fields.Add(
			&core.TextField{
				Name:     "ticket_number",
				Required: true,
				Max:      64,
			},
			&core.RelationField{
				Name:          "event",
				Required:      true,
				MaxSelect:     1,
				CollectionId:  events.Id,
				CascadeDelete: true,
			},
			&core.RelationField{
				Name:          "user",
				Required:      true,
				MaxSelect:     1,
				CollectionId:  users.Id,
				CascadeDelete: true,
			},
			&core.NumberField{
				Name:     "quantity",
				Required: true,
				OnlyInt:  true,
			},
			&core.NumberField{
				Name: "total_amount",
			},
			&core.SelectField{
				Name:      "payment_status",
				Required:  true,
				MaxSelect: 1,
				Values:    []string{"pending", "paid", "failed", "refunded"},
			},
			&core.TextField{
				Name: "payment_method",
				Max:  50,
			},
			&core.TextField{
				Name: "transaction_id",
				Max:  64,
			},
			&core.DateField{
				Name: "payment_date",
			},
			&core.TextField{
				Name: "card_last_four",
				Max:  4,
			},
			&core.TextField{
				Name: "qr_code",
				Max:  500,
			},
			&core.AutodateField{
				Name:     "created",
				OnCreate: true,
			},
			&core.AutodateField{
				Name:     "updated",
				OnCreate: true,
				OnUpdate: true,
			},
		)

		// The unique index is the last line of defense for ticket number
		// collisions; the generator makes them practically impossible.
		collection.AddIndex("idx_tickets_ticket_number", true, "ticket_number", "")
		collection.AddIndex("idx_tickets_event_status", false, "event, payment_status", "")
		collection.AddIndex("idx_tickets_user", false, "user", "")

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("tickets")
		if err != nil {
			return err
		}
		return app.Delete(collection)
	})
}
