package migrations

import (
	"testing"

	"github.com/pocketbase/pocketbase/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Bootstrapping a fresh data dir installs the system collections, including
// the default "users" auth collection. The app migrations must apply cleanly
// on top of that.
func TestMigrations_ApplyOnFreshDatabase(t *testing.T) {
	app := core.NewBaseApp(core.BaseAppConfig{DataDir: t.TempDir()})
	require.NoError(t, app.Bootstrap())
	defer app.ResetBootstrapState()

	runner := core.NewMigrationsRunner(app, core.AppMigrations)
	_, err := runner.Up()
	require.NoError(t, err)

	users, err := app.FindCollectionByNameOrId("users")
	require.NoError(t, err)
	assert.True(t, users.IsAuth())
	assert.NotNil(t, users.Fields.GetByName("name"))
	assert.NotNil(t, users.Fields.GetByName("role"))
	assert.NotNil(t, users.Fields.GetByName("phone"))

	for _, name := range []string{"categories", "events", "tickets"} {
		_, err := app.FindCollectionByNameOrId(name)
		require.NoError(t, err, "collection %q should exist after migrations", name)
	}

	tickets, err := app.FindCollectionByNameOrId("tickets")
	require.NoError(t, err)
	assert.NotNil(t, tickets.Fields.GetByName("ticket_number"))
	assert.NotNil(t, tickets.Fields.GetByName("payment_status"))
}

func TestMigrations_UsersDownKeepsSystemCollection(t *testing.T) {
	app := core.NewBaseApp(core.BaseAppConfig{DataDir: t.TempDir()})
	require.NoError(t, app.Bootstrap())
	defer app.ResetBootstrapState()

	runner := core.NewMigrationsRunner(app, core.AppMigrations)
	_, err := runner.Up()
	require.NoError(t, err)

	_, err = runner.Down(len(core.AppMigrations.Items()))
	require.NoError(t, err)

	users, err := app.FindCollectionByNameOrId("users")
	require.NoError(t, err, "reverting must not delete the system users collection")
	assert.Nil(t, users.Fields.GetByName("role"))
	assert.Nil(t, users.Fields.GetByName("phone"))
}
