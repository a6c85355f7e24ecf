package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/travel-planner/internal/model"
)

// HotelBookingRepo provides CRUD operations for hotel bookings.
// Rows are created in pending status with the reference code already
// assigned by the caller; Create never touches the reference of an
// existing row and the update statements below deliberately exclude
// the booking_reference column, so a code is written exactly once.
type HotelBookingRepo struct {
	db *sql.DB
}

// NewHotelBookingRepo returns a new HotelBookingRepo bound to the given database.
func NewHotelBookingRepo(db *sql.DB) *HotelBookingRepo { return &HotelBookingRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions
// spanning multiple repositories.
func (r *HotelBookingRepo) DB() *sql.DB { return r.db }

const hotelBookingCols = `id, trip_id, accommodation_id, check_in_date, check_out_date, guests, room_type, total_cost_cents, booking_reference, status, is_paid, special_requests, booking_date`

func scanHotelBooking(row interface{ Scan(...any) error }) (model.HotelBooking, error) {
	var b model.HotelBooking
	err := row.Scan(&b.ID, &b.TripID, &b.AccommodationID, &b.CheckInDate, &b.CheckOutDate,
		&b.Guests, &b.RoomType, &b.TotalCostCents, &b.BookingReference, &b.Status,
		&b.IsPaid, &b.SpecialRequests, &b.BookingDate)
	return b, err
}

// Create inserts a pending hotel booking and populates its generated
// ID and creation timestamp.
func (r *HotelBookingRepo) Create(ctx context.Context, b *model.HotelBooking) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO hotel_bookings (trip_id, accommodation_id, check_in_date, check_out_date, guests, room_type, total_cost_cents, booking_reference, status, special_requests)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.TripID, b.AccommodationID, b.CheckInDate, b.CheckOutDate, b.Guests, b.RoomType,
		b.TotalCostCents, b.BookingReference, b.Status, b.SpecialRequests)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	row := r.db.QueryRowContext(ctx,
		`SELECT `+hotelBookingCols+` FROM hotel_bookings WHERE id = ?`, b.ID)
	got, err := scanHotelBooking(row)
	if err != nil {
		return err
	}
	*b = got
	return nil
}

// GetByID returns one hotel booking or ErrNotFound.
func (r *HotelBookingRepo) GetByID(ctx context.Context, id uint64) (*model.HotelBooking, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+hotelBookingCols+` FROM hotel_bookings WHERE id = ?`, id)
	b, err := scanHotelBooking(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// ListByTrip returns the trip's hotel bookings, newest first.
func (r *HotelBookingRepo) ListByTrip(ctx context.Context, tripID uint64) ([]model.HotelBooking, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+hotelBookingCols+` FROM hotel_bookings WHERE trip_id = ? ORDER BY booking_date DESC`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.HotelBooking{}
	for rows.Next() {
		b, err := scanHotelBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// MarkPaidConfirmedTx flips the booking to paid+confirmed inside the
// payment transaction.
func (r *HotelBookingRepo) MarkPaidConfirmedTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE hotel_bookings SET is_paid = TRUE, status = ? WHERE id = ?`,
		model.BookingConfirmed, id)
	return err
}

// Cancel moves a pending booking to cancelled.  Confirmed and
// cancelled bookings are terminal; attempting to cancel them
// returns ErrConflict.
func (r *HotelBookingRepo) Cancel(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE hotel_bookings SET status = ? WHERE id = ? AND status = ?`,
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
