package model

import "time"

// Booking statuses shared by hotel and transportation bookings.
// The modeled transitions are pending→confirmed (payment success)
// and pending→cancelled; confirmed and cancelled are terminal.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
)

// HotelBooking is a reservation of an accommodation for a trip.
// The booking reference is generated exactly once when the record
// is constructed (see utils.NewBookingReference) and is never
// regenerated on later writes.
//
// Fields:
//  ID               – primary key identifier.
//  TripID           – trip the booking belongs to.
//  AccommodationID  – accommodation being reserved.
//  CheckInDate      – first night.
//  CheckOutDate     – checkout day.
//  Guests           – number of guests.
//  RoomType         – requested room type, defaults to "Standard".
//  TotalCostCents   – total price in cents.
//  BookingReference – user-facing code, "HB" + 8 uppercase hex chars.
//  Status           – pending, confirmed or cancelled.
//  IsPaid           – true once a payment transaction completed.
//  SpecialRequests  – free-text requests forwarded to the hotel.
//  BookingDate      – creation timestamp.
type HotelBooking struct {
	ID               uint64    // hotel_bookings.id
	TripID           uint64    // hotel_bookings.trip_id
	AccommodationID  uint64    // hotel_bookings.accommodation_id
	CheckInDate      time.Time // hotel_bookings.check_in_date
	CheckOutDate     time.Time // hotel_bookings.check_out_date
	Guests           uint8     // hotel_bookings.guests
	RoomType         string    // hotel_bookings.room_type
	TotalCostCents   uint32    // hotel_bookings.total_cost_cents
	BookingReference string    // hotel_bookings.booking_reference
	Status           string    // hotel_bookings.status
	IsPaid           bool      // hotel_bookings.is_paid
	SpecialRequests  string    // hotel_bookings.special_requests
	BookingDate      time.Time // hotel_bookings.booking_date
}

// TransportationBooking is a reservation of one transportation leg
// for a trip.  It shares the hotel booking lifecycle; the reference
// is "TB" + 8 uppercase hex chars, assigned once at construction.
type TransportationBooking struct {
	ID               uint64    // transportation_bookings.id
	TripID           uint64    // transportation_bookings.trip_id
	TransportationID uint64    // transportation_bookings.transportation_id
	PassengerNames   string    // transportation_bookings.passenger_names (one per line)
	BookingReference string    // transportation_bookings.booking_reference
	Status           string    // transportation_bookings.status
	IsPaid           bool      // transportation_bookings.is_paid
	BookingDate      time.Time // transportation_bookings.booking_date
}
