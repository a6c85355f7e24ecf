package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/travel-planner/internal/model"
)

// TransportationRepo provides access to a trip's transportation
// legs.  Legs are created while planning and then referenced by
// transportation bookings; they are not edited afterwards.
type TransportationRepo struct {
	db *sql.DB
}

// NewTransportationRepo returns a new TransportationRepo bound to the given database.
func NewTransportationRepo(db *sql.DB) *TransportationRepo { return &TransportationRepo{db: db} }

const transportationCols = `id, trip_id, type, provider, departure_location, arrival_location, departure_time, arrival_time, cost_cents`

func scanTransportation(row interface{ Scan(...any) error }) (model.Transportation, error) {
	var t model.Transportation
	err := row.Scan(&t.ID, &t.TripID, &t.Type, &t.Provider, &t.DepartureLocation,
		&t.ArrivalLocation, &t.DepartureTime, &t.ArrivalTime, &t.CostCents)
	return t, err
}

// Create inserts a transportation leg and populates its generated ID.
func (r *TransportationRepo) Create(ctx context.Context, t *model.Transportation) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO transportations (trip_id, type, provider, departure_location, arrival_location, departure_time, arrival_time, cost_cents)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.TripID, t.Type, t.Provider, t.DepartureLocation, t.ArrivalLocation, t.DepartureTime, t.ArrivalTime, t.CostCents)
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

// GetByID returns one leg or ErrNotFound.
func (r *TransportationRepo) GetByID(ctx context.Context, id uint64) (*model.Transportation, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+transportationCols+` FROM transportations WHERE id = ?`, id)
	t, err := scanTransportation(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListByTrip returns the trip's legs in departure order.
func (r *TransportationRepo) ListByTrip(ctx context.Context, tripID uint64) ([]model.Transportation, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+transportationCols+` FROM transportations WHERE trip_id = ? ORDER BY departure_time`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Transportation{}
	for rows.Next() {
		t, err := scanTransportation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// CountByTrip returns how many legs a trip has.  Booking
// transportation is refused while this is zero.
func (r *TransportationRepo) CountByTrip(ctx context.Context, tripID uint64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM transportations WHERE trip_id = ?`, tripID).Scan(&n)
	return n, err
}
