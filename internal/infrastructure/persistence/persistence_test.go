package persistence_test

import (
	"context"
	"os"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"pricewatch/internal/domain/entity"
	"pricewatch/internal/infrastructure/persistence"
	"pricewatch/pkg/dbtest"
)

// testDB connects to the database from PG_TEST_DSN and applies migrations.
// The test is skipped when the variable is not set.
func testDB(t *testing.T) *sqlx.DB {
	t.Helper()

	dsn := os.Getenv("PG_TEST_DSN")
	if dsn == "" {
		t.Skip("PG_TEST_DSN is not set")
	}

	db, err := sqlx.Connect("pgx", dsn)
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	require.NoError(t, dbtest.MigrateFromFile(db, "../../../migrations/0001_init.sql"))

	return db
}

func TestPriceHistoryRoundTrip(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	db := testDB(t)

	var offerID int64
	rq.NoError(db.GetContext(ctx, &offerID,
		`INSERT INTO offers (url) VALUES ('https://shop.example/roundtrip') RETURNING id`))

	t.Cleanup(func() {
		db.ExecContext(ctx, `DELETE FROM offers WHERE id = $1`, offerID) //nolint:errcheck
	})

	prices := persistence.NewPriceRepository(db)

	value := 19.99

	created, err := prices.Create(ctx, offerID, &value, entity.Available)
	rq.NoError(err)
	rq.NotNil(created.Value)
	rq.InDelta(19.99, *created.Value, 1e-9)

	_, err = prices.Create(ctx, offerID, nil, entity.PriceNotFound)
	rq.NoError(err)

	history, err := prices.ListRecent(ctx, offerID, 72)
	rq.NoError(err)
	rq.Len(history, 2)

	// Most recent first.
	rq.Equal(entity.PriceNotFound, history[0].Availability)
	rq.Nil(history[0].Value)
	rq.Equal(entity.Available, history[1].Availability)
}

func TestPriceCreateRejectsInconsistentValue(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	db := testDB(t)

	prices := persistence.NewPriceRepository(db)

	value := 10.0

	_, err := prices.Create(ctx, 1, &value, entity.Unavailable)
	rq.Error(err)

	_, err = prices.Create(ctx, 1, nil, entity.Available)
	rq.Error(err)
}
