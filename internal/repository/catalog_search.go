package repository

import (
	"context"
	"strings"

	"github.com/iliyamo/travel-planner/internal/model"
)

// CatalogFilter holds the optional browse filters for the public
// destination list.  Empty fields are ignored; unknown values simply
// match nothing from the mapping tables below.
type CatalogFilter struct {
	Region   string // e.g. "europe", "asia"
	Budget   string // "budget", "mid_range" or "luxury" nightly-rate band
	Activity string // e.g. "beach", "historical", "food"
}

// Active reports whether any filter is set.
func (f CatalogFilter) Active() bool {
	return f.Region != "" || f.Budget != "" || f.Activity != ""
}

// regionCountries maps a region filter to the catalog countries it
// covers.  The table is fixed in code, not configuration.
var regionCountries = map[string][]string{
	"europe":        {"France", "Italy", "Greece", "Spain", "Germany", "United Kingdom"},
	"asia":          {"Japan", "China", "Thailand", "Vietnam", "India", "Indonesia"},
	"north_america": {"USA", "Canada", "Mexico"},
	"south_america": {"Brazil", "Peru", "Argentina", "Colombia", "Chile"},
	"africa":        {"South Africa", "Egypt", "Morocco", "Kenya", "Tanzania"},
	"oceania":       {"Australia", "New Zealand", "Fiji"},
}

// budgetBands maps a budget filter to an inclusive nightly rate band
// in cents.
var budgetBands = map[string][2]uint32{
	"budget":    {0, 100_00},
	"mid_range": {101_00, 300_00},
	"luxury":    {301_00, 10_000_00},
}

// activityCategory maps an activity filter to the attraction
// category it selects.
var activityCategory = map[string]string{
	"beach":      model.AttractionNature,
	"mountain":   model.AttractionNature,
	"city":       model.AttractionEntertainment,
	"historical": model.AttractionHistory,
	"food":       model.AttractionFood,
}

// ListFiltered returns destinations matching the given filters.
// Each filter narrows the set: region by country membership, budget
// by having at least one accommodation in the nightly band, activity
// by having at least one attraction of the mapped category.
func (r *DestinationRepo) ListFiltered(ctx context.Context, f CatalogFilter) ([]model.Destination, error) {
	where := []string{}
	args := []any{}

	if f.Region != "" {
		countries, ok := regionCountries[f.Region]
		if !ok {
			return []model.Destination{}, nil
		}
		ph := strings.TrimSuffix(strings.Repeat("?,", len(countries)), ",")
		where = append(where, "country IN ("+ph+")")
		for _, c := range countries {
			args = append(args, c)
		}
	}
	if f.Budget != "" {
		band, ok := budgetBands[f.Budget]
		if !ok {
			return []model.Destination{}, nil
		}
		where = append(where,
			"id IN (SELECT DISTINCT destination_id FROM accommodations WHERE price_per_night_cents BETWEEN ? AND ?)")
		args = append(args, band[0], band[1])
	}
	if f.Activity != "" {
		cat, ok := activityCategory[f.Activity]
		if !ok {
			return []model.Destination{}, nil
		}
		where = append(where,
			"id IN (SELECT DISTINCT destination_id FROM attractions WHERE category = ?)")
		args = append(args, cat)
	}

	q := `SELECT ` + destinationCols + ` FROM destinations`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY popularity_score DESC, name"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDestinations(rows)
}

// Search performs free-text search across the catalog.  Destinations
// matching name, city, country or description are returned first;
// when nothing matches directly, destinations owning a matching
// attraction or accommodation are returned instead.
func (r *DestinationRepo) Search(ctx context.Context, query string) ([]model.Destination, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []model.Destination{}, nil
	}
	like := "%" + strings.ToLower(query) + "%"

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+destinationCols+` FROM destinations
		 WHERE LOWER(name) LIKE ? OR LOWER(city) LIKE ? OR LOWER(country) LIKE ? OR LOWER(description) LIKE ?
		 ORDER BY popularity_score DESC, name`,
		like, like, like, like)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	direct, err := collectDestinations(rows)
	if err != nil {
		return nil, err
	}
	if len(direct) > 0 {
		return direct, nil
	}

	// Fall back to destinations that own a matching attraction or
	// accommodation.
	rows, err = r.db.QueryContext(ctx,
		`SELECT DISTINCT `+qualifyDestinationCols("d")+` FROM destinations d
		 LEFT JOIN attractions a ON a.destination_id = d.id
		 LEFT JOIN accommodations ac ON ac.destination_id = d.id
		 WHERE LOWER(a.name) LIKE ? OR LOWER(a.description) LIKE ? OR LOWER(a.category) LIKE ?
		    OR LOWER(ac.name) LIKE ? OR LOWER(ac.amenities) LIKE ?
		 ORDER BY d.popularity_score DESC, d.name`,
		like, like, like, like, like)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDestinations(rows)
}

// qualifyDestinationCols prefixes the shared column list with a
// table alias for joined queries.
func qualifyDestinationCols(alias string) string {
	cols := strings.Split(destinationCols, ", ")
	for i, c := range cols {
		cols[i] = alias + "." + c
	}
	return strings.Join(cols, ", ")
}
