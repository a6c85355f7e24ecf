package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/travel-planner/internal/model"
)

// PaymentRepo persists payment transactions.  The simulator creates
// a pending row, then completes it inside the same DB transaction
// that confirms the booking and issues the ticket.
type PaymentRepo struct {
	db *sql.DB
}

// NewPaymentRepo returns a new PaymentRepo bound to the given database.
func NewPaymentRepo(db *sql.DB) *PaymentRepo { return &PaymentRepo{db: db} }

const paymentCols = `id, user_id, booking_type, hotel_booking_id, transportation_booking_id, amount_cents, payment_method, transaction_id, status, card_last_digits, created_at, updated_at`

func scanPayment(row interface{ Scan(...any) error }) (model.PaymentTransaction, error) {
	var p model.PaymentTransaction
	var kind string
	var hotelID, transportID sql.NullInt64
	var last4 sql.NullString
	err := row.Scan(&p.ID, &p.UserID, &kind, &hotelID, &transportID, &p.AmountCents,
		&p.PaymentMethod, &p.TransactionID, &p.Status, &last4, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return p, err
	}
	p.BookingType = model.BookingKind(kind)
	if hotelID.Valid {
		v := uint64(hotelID.Int64)
		p.HotelBookingID = &v
	}
	if transportID.Valid {
		v := uint64(transportID.Int64)
		p.TransportationBookingID = &v
	}
	if last4.Valid {
		v := last4.String
		p.CardLastDigits = &v
	}
	return p, nil
}

// CreateTx inserts a pending transaction within the scope of an
// existing DB transaction and populates the generated ID.  Exactly
// one of HotelBookingID/TransportationBookingID must be set,
// matching BookingType; the model's variant type guarantees that
// upstream.
func (r *PaymentRepo) CreateTx(ctx context.Context, tx *sql.Tx, p *model.PaymentTransaction) error {
	var hotelID, transportID, last4 any
	if p.HotelBookingID != nil {
		hotelID = *p.HotelBookingID
	}
	if p.TransportationBookingID != nil {
		transportID = *p.TransportationBookingID
	}
	if p.CardLastDigits != nil {
		last4 = *p.CardLastDigits
	}
	res, err := tx.ExecContext(ctx,
		`INSERT INTO payment_transactions (user_id, booking_type, hotel_booking_id, transportation_booking_id, amount_cents, payment_method, transaction_id, status, card_last_digits)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.UserID, string(p.BookingType), hotelID, transportID, p.AmountCents,
		p.PaymentMethod, p.TransactionID, p.Status, last4)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}

// CompleteTx marks the transaction completed within the payment's
// DB transaction.
func (r *PaymentRepo) CompleteTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE payment_transactions SET status = ? WHERE id = ?`,
		model.PaymentCompleted, id)
	return err
}

// ListForBooking returns the payment history of one booking, newest
// first.
func (r *PaymentRepo) ListForBooking(ctx context.Context, kind model.BookingKind, bookingID uint64) ([]model.PaymentTransaction, error) {
	col := "hotel_booking_id"
	if kind == model.KindTransportation {
		col = "transportation_booking_id"
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+paymentCols+` FROM payment_transactions WHERE `+col+` = ? ORDER BY created_at DESC`,
		bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.PaymentTransaction{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
