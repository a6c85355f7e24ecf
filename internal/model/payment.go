package model

import "time"

// Payment methods accepted by the simulator.
const (
	MethodCreditCard   = "credit_card"
	MethodPayPal       = "paypal"
	MethodBankTransfer = "bank_transfer"
)

// ValidPaymentMethod reports whether m is an accepted method.
func ValidPaymentMethod(m string) bool {
	switch m {
	case MethodCreditCard, MethodPayPal, MethodBankTransfer:
		return true
	}
	return false
}

// Payment transaction statuses.  The simulator only ever moves
// pending→completed; failed and refunded exist so stored rows keep
// the full enumeration of the original schema.
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
	PaymentRefunded  = "refunded"
)

// PaymentTransaction records one payment attempt against a booking.
// Exactly one of HotelBookingID/TransportationBookingID is set,
// matching BookingType.  The transaction id ("TR" + date stamp +
// 8 uppercase hex) is generated once at construction.  For credit
// card payments only the last four digits of the card number are
// retained; all other card data is discarded before persistence.
type PaymentTransaction struct {
	ID                      uint64      // payment_transactions.id
	UserID                  uint64      // payment_transactions.user_id
	BookingType             BookingKind // payment_transactions.booking_type
	HotelBookingID          *uint64     // payment_transactions.hotel_booking_id (nullable)
	TransportationBookingID *uint64     // payment_transactions.transportation_booking_id (nullable)
	AmountCents             uint32      // payment_transactions.amount_cents
	PaymentMethod           string      // payment_transactions.payment_method
	TransactionID           string      // payment_transactions.transaction_id (unique)
	Status                  string      // payment_transactions.status
	CardLastDigits          *string     // payment_transactions.card_last_digits (nullable)
	CreatedAt               time.Time   // payment_transactions.created_at
	UpdatedAt               time.Time   // payment_transactions.updated_at
}
