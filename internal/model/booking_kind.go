package model

// BookingKind tags the two booking shapes the workflow handles.
// Payments and tickets link to exactly one booking and must carry a
// kind matching it; code switches on the kind instead of comparing
// raw strings at every step.
type BookingKind string

const (
	KindHotel          BookingKind = "hotel"
	KindTransportation BookingKind = "transportation"
)

// ParseBookingKind validates a kind supplied in a URL or payload.
// The second return value is false for anything outside
// {hotel, transportation}.
func ParseBookingKind(s string) (BookingKind, bool) {
	switch BookingKind(s) {
	case KindHotel, KindTransportation:
		return BookingKind(s), true
	}
	return "", false
}

// BookingRef is the tagged variant used by the payment and ticket
// workflows.  Exactly one of Hotel/Transport is non-nil, matching
// Kind.
type BookingRef struct {
	Kind      BookingKind
	Hotel     *HotelBooking
	Transport *TransportationBooking
}

// ID returns the linked booking's primary key.
func (b BookingRef) ID() uint64 {
	switch b.Kind {
	case KindHotel:
		return b.Hotel.ID
	default:
		return b.Transport.ID
	}
}

// TripID returns the trip the linked booking belongs to.
func (b BookingRef) TripID() uint64 {
	switch b.Kind {
	case KindHotel:
		return b.Hotel.TripID
	default:
		return b.Transport.TripID
	}
}

// Reference returns the user-facing booking reference code.
func (b BookingRef) Reference() string {
	switch b.Kind {
	case KindHotel:
		return b.Hotel.BookingReference
	default:
		return b.Transport.BookingReference
	}
}

// Status returns the current booking status.
func (b BookingRef) Status() string {
	switch b.Kind {
	case KindHotel:
		return b.Hotel.Status
	default:
		return b.Transport.Status
	}
}

// IsPaid reports whether the linked booking was already paid.
func (b BookingRef) IsPaid() bool {
	switch b.Kind {
	case KindHotel:
		return b.Hotel.IsPaid
	default:
		return b.Transport.IsPaid
	}
}
