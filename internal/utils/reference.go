package utils // reference code factories for bookings, tickets and payments

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Prefixes for generated codes.  These are user-facing and fixed;
// downstream consumers (ticket QR payloads, exports) embed them
// verbatim.
const (
	HotelBookingPrefix     = "HB"
	TransportBookingPrefix = "TB"
	TicketPrefix           = "TCKT"
	TransactionPrefix      = "TR"
)

// hexFragment returns n uppercase hex characters drawn from a fresh
// random UUID.  The UUID source gives an effectively-unique output
// space; collisions are not checked explicitly, the UNIQUE columns
// backstop them.
func hexFragment(n int) string {
	h := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	if n > len(h) {
		n = len(h)
	}
	return h[:n]
}

// NewBookingReference builds a booking reference code such as
// "HB1A2B3C4D".  It is invoked exactly once, when the booking
// record is constructed; updates never overwrite an existing code.
func NewBookingReference(prefix string) string {
	return prefix + hexFragment(8)
}

// NewTicketNumber builds a globally unique e-ticket number such as
// "TCKT0F1E2D3C4B".
func NewTicketNumber() string {
	return TicketPrefix + hexFragment(10)
}

// NewTransactionID builds a payment transaction id carrying the
// date of the attempt, e.g. "TR20250831A1B2C3D4".
func NewTransactionID(now time.Time) string {
	return TransactionPrefix + now.UTC().Format("20060102") + hexFragment(8)
}
