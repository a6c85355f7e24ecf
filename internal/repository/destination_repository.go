package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/travel-planner/internal/model"
)

// DestinationRepo provides access to the destinations table.  The
// catalog is read-mostly: admins create rows, everyone else lists,
// filters and searches them.
type DestinationRepo struct {
	db *sql.DB
}

// NewDestinationRepo returns a new DestinationRepo bound to the given database.
func NewDestinationRepo(db *sql.DB) *DestinationRepo { return &DestinationRepo{db: db} }

const destinationCols = `id, name, country, city, description, avg_temperature, best_time_to_visit, popularity_score`

func scanDestination(row interface{ Scan(...any) error }) (model.Destination, error) {
	var d model.Destination
	var temp sql.NullFloat64
	err := row.Scan(&d.ID, &d.Name, &d.Country, &d.City, &d.Description, &temp, &d.BestTimeToVisit, &d.PopularityScore)
	if err != nil {
		return d, err
	}
	if temp.Valid {
		v := temp.Float64
		d.AvgTemperature = &v
	}
	return d, nil
}

// Create inserts a destination and populates its generated ID.
func (r *DestinationRepo) Create(ctx context.Context, d *model.Destination) error {
	var temp any
	if d.AvgTemperature != nil {
		temp = *d.AvgTemperature
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO destinations (name, country, city, description, avg_temperature, best_time_to_visit, popularity_score)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		d.Name, d.Country, d.City, d.Description, temp, d.BestTimeToVisit, d.PopularityScore)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	d.ID = uint64(id)
	return nil
}

// GetByID returns one destination or ErrNotFound.
func (r *DestinationRepo) GetByID(ctx context.Context, id uint64) (*model.Destination, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+destinationCols+` FROM destinations WHERE id = ?`, id)
	d, err := scanDestination(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ListAll returns every destination ordered by popularity.  It backs
// the unfiltered catalog page and the degraded path when filtering
// fails.
func (r *DestinationRepo) ListAll(ctx context.Context) ([]model.Destination, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+destinationCols+` FROM destinations ORDER BY popularity_score DESC, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDestinations(rows)
}

func collectDestinations(rows *sql.Rows) ([]model.Destination, error) {
	out := []model.Destination{}
	for rows.Next() {
		d, err := scanDestination(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
