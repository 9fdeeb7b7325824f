package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		categories, err := app.FindCollectionByNameOrId("categories")
		if err != nil {
			return err
		}

		collection := core.NewBaseCollection("events")

		collection.Fields.Add(
			&core.TextField{
				Name:     "title",
				Required: true,
				Max:      200,
			},
			&core.TextField{
				Name:     "description",
				Required: true,
				Max:      2000,
			},
			&core.RelationField{
				Name:         "category",
				Required:     true,
				MaxSelect:    1,
				CollectionId: categories.Id,
			},
			&core.TextField{
				Name:     "venue",
				Required: true,
				Max:      200,
			},
			&core.TextField{
				Name:     "city",
				Required: true,
				Max:      100,
			},
			&core.TextField{
				Name:     "country",
				Required: true,
				Max:      100,
			},
			&core.DateField{
				Name:     "start_time",
				Required: true,
			},
			&core.DateField{
				Name:     "end_time",
				Required: true,
			},
			&core.TextField{
				Name:     "organizer_name",
				Required: true,
				Max:      100,
			},
			&core.TextField{
				Name:     "organizer_email",
				Required: true,
				Max:      200,
			},
			&core.TextField{
				Name:     "organizer_phone",
				Required: true,
				Max:      30,
			},
			&core.NumberField{
				Name:     "capacity",
				Required: true,
				OnlyInt:  true,
			},
			&core.NumberField{
				Name: "ticket_price",
			},
			&core.SelectField{
				Name:      "status",
				Required:  true,
				MaxSelect: 1,
				Values:    []string{"upcoming", "ongoing", "completed", "cancelled"},
			},
			&core.NumberField{
				Name: "average_rating",
			},
			&core.NumberField{
				Name:    "total_reviews",
				OnlyInt: true,
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

		collection.AddIndex("idx_events_category", false, "category", "")
		collection.AddIndex("idx_events_status_start", false, "status, start_time", "")

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("events")
		if err != nil {
			return err
		}
		return app.Delete(collection)
	})
}
