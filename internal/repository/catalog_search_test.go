package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogFilterActive(t *testing.T) {
	assert.False(t, CatalogFilter{}.Active())
	assert.True(t, CatalogFilter{Region: "europe"}.Active())
	assert.True(t, CatalogFilter{Budget: "luxury"}.Active())
	assert.True(t, CatalogFilter{Activity: "food"}.Active())
}

func newDestinationEnv(t *testing.T) (*DestinationRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewDestinationRepo(db), mock
}

func destinationRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "country", "city", "description",
		"avg_temperature", "best_time_to_visit", "popularity_score",
	})
}

func TestListFilteredUnknownValuesMatchNothing(t *testing.T) {
	repo, mock := newDestinationEnv(t)
	ctx := context.Background()

	// unknown mapping keys short-circuit without touching the database
	for _, f := range []CatalogFilter{
		{Region: "atlantis"},
		{Budget: "free"},
		{Activity: "spelunking"},
	} {
		ds, err := repo.ListFiltered(ctx, f)
		require.NoError(t, err)
		assert.Empty(t, ds)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListFilteredRegionExpandsToCountries(t *testing.T) {
	repo, mock := newDestinationEnv(t)

	rows := destinationRows().
		AddRow(1, "Eiffel Tower", "France", "Paris", "", 15.5, "Spring", 9.5)
	mock.ExpectQuery("FROM destinations WHERE country IN").
		WithArgs("France", "Italy", "Greece", "Spain", "Germany", "United Kingdom").
		WillReturnRows(rows)

	ds, err := repo.ListFiltered(context.Background(), CatalogFilter{Region: "europe"})
	require.NoError(t, err)
	require.Len(t, ds, 1)
	assert.Equal(t, "France", ds[0].Country)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListFilteredBudgetUsesNightlyBand(t *testing.T) {
	repo, mock := newDestinationEnv(t)

	mock.ExpectQuery("FROM accommodations WHERE price_per_night_cents BETWEEN").
		WithArgs(uint32(0), uint32(100_00)).
		WillReturnRows(destinationRows())

	ds, err := repo.ListFiltered(context.Background(), CatalogFilter{Budget: "budget"})
	require.NoError(t, err)
	assert.Empty(t, ds)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListFilteredActivityMapsToCategory(t *testing.T) {
	repo, mock := newDestinationEnv(t)

	mock.ExpectQuery("FROM attractions WHERE category").
		WithArgs("history").
		WillReturnRows(destinationRows())

	ds, err := repo.ListFiltered(context.Background(), CatalogFilter{Activity: "historical"})
	require.NoError(t, err)
	assert.Empty(t, ds)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchFallsBackToCatalogJoin(t *testing.T) {
	repo, mock := newDestinationEnv(t)

	// direct match finds nothing, so the joined fallback runs
	mock.ExpectQuery("FROM destinations\\s+WHERE LOWER\\(name\\)").
		WillReturnRows(destinationRows())
	fallback := destinationRows().
		AddRow(4, "Kyoto", "Japan", "Kyoto", "", 16.0, "Spring", 9.2)
	mock.ExpectQuery("LEFT JOIN attractions").
		WillReturnRows(fallback)

	ds, err := repo.Search(context.Background(), "temple")
	require.NoError(t, err)
	require.Len(t, ds, 1)
	assert.Equal(t, "Kyoto", ds[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchEmptyQueryReturnsNothing(t *testing.T) {
	repo, mock := newDestinationEnv(t)

	ds, err := repo.Search(context.Background(), "   ")
	require.NoError(t, err)
	assert.Empty(t, ds)
	assert.NoError(t, mock.ExpectationsWereMet())
}
