package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/travel-planner/internal/model"
)

// TripRepo provides CRUD operations for trips.  Every read is scoped
// to the owning user: a trip that exists but belongs to someone else
// is reported as ErrNotFound, so handlers never leak other users'
// trips.  Deleting a trip relies on FK cascades to remove its
// transportation legs, itineraries, bookings and tickets.
type TripRepo struct {
	db *sql.DB
}

// NewTripRepo returns a new TripRepo bound to the given database.
func NewTripRepo(db *sql.DB) *TripRepo { return &TripRepo{db: db} }

const tripCols = `id, user_id, title, start_date, end_date, destination_id, accommodation_id, budget_cents, notes, is_completed, created_at`

func scanTrip(row interface{ Scan(...any) error }) (model.Trip, error) {
	var t model.Trip
	var accom sql.NullInt64
	err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.StartDate, &t.EndDate, &t.DestinationID,
		&accom, &t.BudgetCents, &t.Notes, &t.IsCompleted, &t.CreatedAt)
	if err != nil {
		return t, err
	}
	if accom.Valid {
		v := uint64(accom.Int64)
		t.AccommodationID = &v
	}
	return t, nil
}

// Create inserts a trip and populates its generated ID.
func (r *TripRepo) Create(ctx context.Context, t *model.Trip) error {
	var accom any
	if t.AccommodationID != nil {
		accom = *t.AccommodationID
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO trips (user_id, title, start_date, end_date, destination_id, accommodation_id, budget_cents, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.UserID, t.Title, t.StartDate, t.EndDate, t.DestinationID, accom, t.BudgetCents, t.Notes)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	return nil
}

// GetByIDForUser returns the trip only when it belongs to userID.
func (r *TripRepo) GetByIDForUser(ctx context.Context, tripID, userID uint64) (*model.Trip, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+tripCols+` FROM trips WHERE id = ? AND user_id = ?`, tripID, userID)
	t, err := scanTrip(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListByUser returns the user's trips, most recent departure first.
func (r *TripRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Trip, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+tripCols+` FROM trips WHERE user_id = ? ORDER BY start_date DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Update rewrites the mutable trip fields.  The row must belong to
// the trip's UserID or nothing is changed and ErrNotFound is returned.
func (r *TripRepo) Update(ctx context.Context, t *model.Trip) error {
	var accom any
	if t.AccommodationID != nil {
		accom = *t.AccommodationID
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE trips SET title = ?, start_date = ?, end_date = ?, accommodation_id = ?, budget_cents = ?, notes = ?, is_completed = ?
		 WHERE id = ? AND user_id = ?`,
		t.Title, t.StartDate, t.EndDate, accom, t.BudgetCents, t.Notes, t.IsCompleted, t.ID, t.UserID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the trip when owned by userID; children go with it
// via FK cascade.
func (r *TripRepo) Delete(ctx context.Context, tripID, userID uint64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM trips WHERE id = ? AND user_id = ?`, tripID, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
