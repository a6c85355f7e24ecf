package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/travel-planner/internal/model"
)

// TransportBookingRepo provides CRUD operations for transportation
// bookings.  It mirrors HotelBookingRepo: references are assigned by
// the caller once, at construction, and never rewritten here.
type TransportBookingRepo struct {
	db *sql.DB
}

// NewTransportBookingRepo returns a new TransportBookingRepo bound to the given database.
func NewTransportBookingRepo(db *sql.DB) *TransportBookingRepo { return &TransportBookingRepo{db: db} }

const transportBookingCols = `id, trip_id, transportation_id, passenger_names, booking_reference, status, is_paid, booking_date`

func scanTransportBooking(row interface{ Scan(...any) error }) (model.TransportationBooking, error) {
	var b model.TransportationBooking
	err := row.Scan(&b.ID, &b.TripID, &b.TransportationID, &b.PassengerNames,
		&b.BookingReference, &b.Status, &b.IsPaid, &b.BookingDate)
	return b, err
}

// Create inserts a pending transportation booking and populates its
// generated ID and creation timestamp.
func (r *TransportBookingRepo) Create(ctx context.Context, b *model.TransportationBooking) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO transportation_bookings (trip_id, transportation_id, passenger_names, booking_reference, status)
		 VALUES (?, ?, ?, ?, ?)`,
		b.TripID, b.TransportationID, b.PassengerNames, b.BookingReference, b.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	row := r.db.QueryRowContext(ctx,
		`SELECT `+transportBookingCols+` FROM transportation_bookings WHERE id = ?`, b.ID)
	got, err := scanTransportBooking(row)
	if err != nil {
		return err
	}
	*b = got
	return nil
}

// GetByID returns one transportation booking or ErrNotFound.
func (r *TransportBookingRepo) GetByID(ctx context.Context, id uint64) (*model.TransportationBooking, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+transportBookingCols+` FROM transportation_bookings WHERE id = ?`, id)
	b, err := scanTransportBooking(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// ListByTrip returns the trip's transportation bookings, newest first.
func (r *TransportBookingRepo) ListByTrip(ctx context.Context, tripID uint64) ([]model.TransportationBooking, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+transportBookingCols+` FROM transportation_bookings WHERE trip_id = ? ORDER BY booking_date DESC`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.TransportationBooking{}
	for rows.Next() {
		b, err := scanTransportBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// MarkPaidConfirmedTx flips the booking to paid+confirmed inside the
// payment transaction.
func (r *TransportBookingRepo) MarkPaidConfirmedTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE transportation_bookings SET is_paid = TRUE, status = ? WHERE id = ?`,
		model.BookingConfirmed, id)
	return err
}

// Cancel moves a pending booking to cancelled; terminal states
// return ErrConflict.
func (r *TransportBookingRepo) Cancel(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE transportation_bookings SET status = ? WHERE id = ? AND status = ?`,
		model.BookingCancelled, id, model.BookingPending)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrConflict
	}
	return nil
}
