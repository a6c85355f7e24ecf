// Package ticket builds the machine-readable verification artifact
// stored with every e-ticket.  The payload is a compact JSON object
// holding just enough to verify a ticket offline: the ticket number,
// the ticket type and the booking reference it certifies.
package ticket

import (
	"encoding/json"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/iliyamo/travel-planner/internal/model"
)

// qrSize is the pixel width/height of the generated PNG.
const qrSize = 256

// VerificationPayload is what gets encoded into the QR image.
type VerificationPayload struct {
	TicketNumber string `json:"ticket_number"`
	Type         string `json:"type"`
	BookingRef   string `json:"booking_ref"`
}

// EncodeQR renders the verification payload for a ticket into a PNG
// QR code.  It is called once, at issuance; the bytes are persisted
// alongside the ticket row and never regenerated.
func EncodeQR(ticketNumber string, kind model.BookingKind, bookingRef string) ([]byte, error) {
	payload := VerificationPayload{
		TicketNumber: ticketNumber,
		Type:         string(kind),
		BookingRef:   bookingRef,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return qrcode.Encode(string(data), qrcode.Medium, qrSize)
}
