package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/travel-planner/internal/model"
)

// AccommodationRepo provides access to the accommodations table.
type AccommodationRepo struct {
	db *sql.DB
}

// NewAccommodationRepo returns a new AccommodationRepo bound to the given database.
func NewAccommodationRepo(db *sql.DB) *AccommodationRepo { return &AccommodationRepo{db: db} }

const accommodationCols = `id, destination_id, name, type, address, price_per_night_cents, rating, amenities`

func scanAccommodation(row interface{ Scan(...any) error }) (model.Accommodation, error) {
	var a model.Accommodation
	err := row.Scan(&a.ID, &a.DestinationID, &a.Name, &a.Type, &a.Address, &a.PricePerNightCents, &a.Rating, &a.Amenities)
	return a, err
}

// Create inserts an accommodation and populates its generated ID.
func (r *AccommodationRepo) Create(ctx context.Context, a *model.Accommodation) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO accommodations (destination_id, name, type, address, price_per_night_cents, rating, amenities)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.DestinationID, a.Name, a.Type, a.Address, a.PricePerNightCents, a.Rating, a.Amenities)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	return nil
}

// GetByID returns one accommodation or ErrNotFound.
func (r *AccommodationRepo) GetByID(ctx context.Context, id uint64) (*model.Accommodation, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+accommodationCols+` FROM accommodations WHERE id = ?`, id)
	a, err := scanAccommodation(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ListByDestination returns the accommodations available at a
// destination, cheapest first.  Hotel booking choices for a trip are
// constrained to this set.
func (r *AccommodationRepo) ListByDestination(ctx context.Context, destinationID uint64) ([]model.Accommodation, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+accommodationCols+` FROM accommodations WHERE destination_id = ? ORDER BY price_per_night_cents`,
		destinationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Accommodation{}
	for rows.Next() {
		a, err := scanAccommodation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
