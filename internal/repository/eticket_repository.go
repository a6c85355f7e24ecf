package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/travel-planner/internal/model"
)

// ETicketRepo persists e-tickets.  Tickets are write-once: there is
// deliberately no update method here.
type ETicketRepo struct {
	db *sql.DB
}

// NewETicketRepo returns a new ETicketRepo bound to the given database.
func NewETicketRepo(db *sql.DB) *ETicketRepo { return &ETicketRepo{db: db} }

const eticketCols = `id, user_id, trip_id, ticket_type, hotel_booking_id, transportation_booking_id, ticket_number, issue_date, additional_info, qr_code_png`

func scanETicket(row interface{ Scan(...any) error }) (model.ETicket, error) {
	var t model.ETicket
	var kind string
	var hotelID, transportID sql.NullInt64
	err := row.Scan(&t.ID, &t.UserID, &t.TripID, &kind, &hotelID, &transportID,
		&t.TicketNumber, &t.IssueDate, &t.AdditionalInfo, &t.QRCodePNG)
	if err != nil {
		return t, err
	}
	t.TicketType = model.BookingKind(kind)
	if hotelID.Valid {
		v := uint64(hotelID.Int64)
		t.HotelBookingID = &v
	}
	if transportID.Valid {
		v := uint64(transportID.Int64)
		t.TransportationBookingID = &v
	}
	return t, nil
}

// CreateTx inserts a ticket within the scope of the payment's DB
// transaction and populates the generated ID.
func (r *ETicketRepo) CreateTx(ctx context.Context, tx *sql.Tx, t *model.ETicket) error {
	var hotelID, transportID any
	if t.HotelBookingID != nil {
		hotelID = *t.HotelBookingID
	}
	if t.TransportationBookingID != nil {
		transportID = *t.TransportationBookingID
	}
	res, err := tx.ExecContext(ctx,
		`INSERT INTO e_tickets (user_id, trip_id, ticket_type, hotel_booking_id, transportation_booking_id, ticket_number, additional_info, qr_code_png)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.UserID, t.TripID, string(t.TicketType), hotelID, transportID,
		t.TicketNumber, t.AdditionalInfo, t.QRCodePNG)
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

// GetByID returns one ticket or ErrNotFound.  Ownership is checked
// by the handler against UserID so that a foreign ticket's content
// is never returned.
func (r *ETicketRepo) GetByID(ctx context.Context, id uint64) (*model.ETicket, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+eticketCols+` FROM e_tickets WHERE id = ?`, id)
	t, err := scanETicket(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListByUser returns all of a user's tickets, newest first.
func (r *ETicketRepo) ListByUser(ctx context.Context, userID uint64) ([]model.ETicket, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+eticketCols+` FROM e_tickets WHERE user_id = ? ORDER BY issue_date DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.ETicket{}
	for rows.Next() {
		t, err := scanETicket(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// ListByTrip returns the tickets issued for one trip.
func (r *ETicketRepo) ListByTrip(ctx context.Context, tripID uint64) ([]model.ETicket, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+eticketCols+` FROM e_tickets WHERE trip_id = ? ORDER BY issue_date DESC`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.ETicket{}
	for rows.Next() {
		t, err := scanETicket(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
