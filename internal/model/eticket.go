package model

import "time"

// ETicket is the immutable proof-of-booking artifact issued right
// after a payment completes.  It carries a globally unique ticket
// number ("TCKT" + 10 uppercase hex), a denormalized snapshot of
// the booking details captured at issuance time, and a QR code PNG
// encoding the verification payload.  Tickets are never edited;
// they are only read or exported as flat text.
//
// Exactly one of HotelBookingID/TransportationBookingID is set,
// matching TicketType.
type ETicket struct {
	ID                      uint64      // e_tickets.id
	UserID                  uint64      // e_tickets.user_id
	TripID                  uint64      // e_tickets.trip_id
	TicketType              BookingKind // e_tickets.ticket_type
	HotelBookingID          *uint64     // e_tickets.hotel_booking_id (nullable)
	TransportationBookingID *uint64     // e_tickets.transportation_booking_id (nullable)
	TicketNumber            string      // e_tickets.ticket_number (unique)
	IssueDate               time.Time   // e_tickets.issue_date
	AdditionalInfo          string      // e_tickets.additional_info (JSON snapshot)
	QRCodePNG               []byte      // e_tickets.qr_code_png
}

// HotelTicketInfo is the snapshot stored for hotel tickets.  It does
// not update if the underlying booking later changes.
type HotelTicketInfo struct {
	HotelName  string `json:"hotel_name"`
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
	RoomType   string `json:"room_type"`
	BookingRef string `json:"booking_ref"`
}

// TransportTicketInfo is the snapshot stored for transportation tickets.
type TransportTicketInfo struct {
	Type          string `json:"type"`
	Provider      string `json:"provider"`
	Departure     string `json:"departure"`
	Arrival       string `json:"arrival"`
	DepartureTime string `json:"departure_time"`
	BookingRef    string `json:"booking_ref"`
}
