package locations

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupLocationsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)

	locations := `
CREATE TABLE IF NOT EXISTS locations (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  city TEXT NOT NULL,
  state TEXT NOT NULL,
  postal_code TEXT NOT NULL,
  country TEXT NOT NULL,
  latitude TEXT,
  longitude TEXT
);`
	orders := `
CREATE TABLE IF NOT EXISTS orders (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  origin_id INTEGER NOT NULL,
  destination_id INTEGER NOT NULL,
  delivery_id INTEGER,
  order_date DATETIME NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  FOREIGN KEY (origin_id) REFERENCES locations(id) ON DELETE RESTRICT,
  FOREIGN KEY (destination_id) REFERENCES locations(id) ON DELETE RESTRICT
);`
	require.NoError(t, db.Exec(locations).Error)
	require.NoError(t, db.Exec(orders).Error)
	return db
}

func TestRepositoryCreateAndFindByName(t *testing.T) {
	db := setupLocationsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	lat := decimal.RequireFromString("40.712800")
	lng := decimal.RequireFromString("-74.006000")

	created, err := repo.Create(ctx, testLocation("NYC Warehouse", &lat, &lng))
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	found, err := repo.FindByName(ctx, "NYC Warehouse")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "New York", found.City)
	require.NotNil(t, found.Latitude)
	assert.True(t, lat.Equal(*found.Latitude))
}

func TestRepositoryFindByNameIsExact(t *testing.T) {
	db := setupLocationsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, testLocation("NYC Warehouse", nil, nil))
	require.NoError(t, err)

	_, err = repo.FindByName(ctx, "nyc warehouse")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = repo.FindByName(ctx, "NYC")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryListReturnsInsertionOrder(t *testing.T) {
	db := setupLocationsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	for _, name := range []string{"Alpha", "Bravo", "Charlie"} {
		_, err := repo.Create(ctx, testLocation(name, nil, nil))
		require.NoError(t, err)
	}

	rows, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Alpha", rows[0].Name)
	assert.Equal(t, "Charlie", rows[2].Name)
}

func TestRepositoryDeleteReportsRowsAffected(t *testing.T) {
	db := setupLocationsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, testLocation("Depot", nil, nil))
	require.NoError(t, err)

	affected, err := repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	affected, err = repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, affected)
}
