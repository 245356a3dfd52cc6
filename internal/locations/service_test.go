package locations

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrjordantanner/logistics-app-server/pkg/db/models"
	pkgerrors "github.com/mrjordantanner/logistics-app-server/pkg/errors"
)

func newTestService(t *testing.T) (Service, *Repository) {
	t.Helper()
	repo := NewRepository(setupLocationsTestDB(t))
	svc, err := NewService(repo)
	require.NoError(t, err)
	return svc, repo
}

func testLocation(name string, lat, lng *decimal.Decimal) *models.Location {
	return &models.Location{
		Name:       name,
		City:       "New York",
		State:      "NY",
		PostalCode: "10001",
		Country:    "US",
		Latitude:   lat,
		Longitude:  lng,
	}
}

func TestServiceCreateLocationValidates(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		input CreateLocationInput
	}{
		{"missing name", CreateLocationInput{City: "NY", State: "NY", PostalCode: "10001", Country: "US"}},
		{"missing city", CreateLocationInput{Name: "Depot", State: "NY", PostalCode: "10001", Country: "US"}},
		{"missing postal code", CreateLocationInput{Name: "Depot", City: "NY", State: "NY", Country: "US"}},
		{"whitespace only name", CreateLocationInput{Name: "   ", City: "NY", State: "NY", PostalCode: "10001", Country: "US"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateLocation(ctx, tc.input)
			assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation), "expected validation error, got %v", err)
		})
	}
}

func TestServiceCreateAndGetLocation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateLocation(ctx, CreateLocationInput{
		Name:       "  LA Depot ",
		City:       "Los Angeles",
		State:      "CA",
		PostalCode: "90001",
		Country:    "US",
	})
	require.NoError(t, err)
	assert.Equal(t, "LA Depot", created.Name)

	got, err := svc.GetLocation(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = svc.GetLocation(ctx, created.ID+99)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestServiceListLocationsEmptyIsOK(t *testing.T) {
	svc, _ := newTestService(t)

	rows, err := svc.ListLocations(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestServiceUpdateLocationAppliesOnlyProvidedFields(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateLocation(ctx, CreateLocationInput{
		Name: "Depot", City: "Chicago", State: "IL", PostalCode: "60601", Country: "US",
	})
	require.NoError(t, err)

	newCity := "Evanston"
	updated, err := svc.UpdateLocation(ctx, created.ID, UpdateLocationInput{City: &newCity})
	require.NoError(t, err)
	assert.Equal(t, "Evanston", updated.City)
	assert.Equal(t, "Depot", updated.Name)
	assert.Equal(t, "60601", updated.PostalCode)

	empty := ""
	_, err = svc.UpdateLocation(ctx, created.ID, UpdateLocationInput{Name: &empty})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestServiceDeleteLocationBlockedByOrders(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateLocation(ctx, CreateLocationInput{
		Name: "Origin", City: "NYC", State: "NY", PostalCode: "10001", Country: "US",
	})
	require.NoError(t, err)

	err = repo.db.Exec(
		"INSERT INTO orders (origin_id, destination_id, order_date, status) VALUES (?, ?, ?, 'pending')",
		created.ID, created.ID, time.Now().UTC(),
	).Error
	require.NoError(t, err)

	err = svc.DeleteLocation(ctx, created.ID)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeConflict), "expected conflict, got %v", err)

	err = svc.DeleteLocation(ctx, created.ID+99)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}
