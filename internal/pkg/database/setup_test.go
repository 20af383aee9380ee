package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csalom/stripe-api/app/models"
)

func TestOpenSQLite_MigratesBillingTables(t *testing.T) {
	db, err := OpenSQLite("file:" + t.Name() + "?mode=memory&cache=shared")
	require.NoError(t, err)

	for _, model := range []any{
		&models.PaymentMethod{},
		&models.Customer{},
		&models.Subscription{},
		&models.WebhookEvent{},
	} {
		assert.True(t, db.Migrator().HasTable(model), "missing table for %T", model)
	}

	require.NoError(t, Ping(context.Background(), db))
}
