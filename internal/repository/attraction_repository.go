package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/travel-planner/internal/model"
)

// AttractionRepo provides access to the attractions table.
type AttractionRepo struct {
	db *sql.DB
}

// NewAttractionRepo returns a new AttractionRepo bound to the given database.
func NewAttractionRepo(db *sql.DB) *AttractionRepo { return &AttractionRepo{db: db} }

const attractionCols = `id, destination_id, name, category, description, entrance_fee_cents, opening_hours`

func scanAttraction(row interface{ Scan(...any) error }) (model.Attraction, error) {
	var a model.Attraction
	var fee sql.NullInt64
	err := row.Scan(&a.ID, &a.DestinationID, &a.Name, &a.Category, &a.Description, &fee, &a.OpeningHours)
	if err != nil {
		return a, err
	}
	if fee.Valid {
		v := uint32(fee.Int64)
		a.EntranceFeeCents = &v
	}
	return a, nil
}

// Create inserts an attraction and populates its generated ID.
func (r *AttractionRepo) Create(ctx context.Context, a *model.Attraction) error {
	var fee any
	if a.EntranceFeeCents != nil {
		fee = *a.EntranceFeeCents
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO attractions (destination_id, name, category, description, entrance_fee_cents, opening_hours)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		a.DestinationID, a.Name, a.Category, a.Description, fee, a.OpeningHours)
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

// GetByID returns one attraction or ErrNotFound.
func (r *AttractionRepo) GetByID(ctx context.Context, id uint64) (*model.Attraction, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+attractionCols+` FROM attractions WHERE id = ?`, id)
	a, err := scanAttraction(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ListByDestination returns the attractions at a destination grouped
// by category.
func (r *AttractionRepo) ListByDestination(ctx context.Context, destinationID uint64) ([]model.Attraction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+attractionCols+` FROM attractions WHERE destination_id = ? ORDER BY category, name`,
		destinationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Attraction{}
	for rows.Next() {
		a, err := scanAttraction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
