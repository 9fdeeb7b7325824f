package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		// The system init migration already ships a default "users" auth
		// collection; extend it instead of creating a competing one.
		collection, err := app.FindCollectionByNameOrId("users")
		if err != nil {
			return err
		}

		if collection.Fields.GetByName("name") == nil {
			collection.Fields.Add(&core.TextField{
				Name: "name",
				Max:  100,
			})
		}

		collection.Fields.Add(
			&core.SelectField{
				Name:      "role",
				Required:  true,
				MaxSelect: 1,
				Values:    []string{"user", "admin"},
			},
			&core.TextField{
				Name: "phone",
				Max:  30,
			},
		)

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("users")
		if err != nil {
			return err
		}

		// Only strip the fields this migration added; the collection itself
		// belongs to the system.
		collection.Fields.RemoveByName("role")
		collection.Fields.RemoveByName("phone")

		return app.Save(collection)
	})
}
