package model

import "time"

// Trip is a user's planned journey to one destination within a date
// range.  A trip optionally references an accommodation at that
// destination and owns transportation legs, itineraries and
// bookings; deleting a trip cascades to all of them.
//
// Fields:
//  ID              – primary key identifier.
//  UserID          – owner of the trip.
//  Title           – display title, e.g. "Trip to Kyoto".
//  StartDate       – first day of the trip.
//  EndDate         – last day of the trip.
//  DestinationID   – destination being visited.
//  AccommodationID – chosen accommodation (nullable).
//  BudgetCents     – planned budget in cents.
//  Notes           – free-text notes.
//  IsCompleted     – set by the owner once the trip is over.
//  CreatedAt       – timestamp of creation.
type Trip struct {
	ID              uint64    // trips.id
	UserID          uint64    // trips.user_id
	Title           string    // trips.title
	StartDate       time.Time // trips.start_date
	EndDate         time.Time // trips.end_date
	DestinationID   uint64    // trips.destination_id
	AccommodationID *uint64   // trips.accommodation_id (nullable)
	BudgetCents     uint64    // trips.budget_cents
	Notes           string    // trips.notes
	IsCompleted     bool      // trips.is_completed
	CreatedAt       time.Time // trips.created_at
}

// Transportation leg types accepted in transportations.type.
const (
	TransportFlight = "flight"
	TransportTrain  = "train"
	TransportBus    = "bus"
	TransportCar    = "car"
	TransportFerry  = "ferry"
)

// ValidTransportType reports whether t is one of the accepted
// transportation leg types.
func ValidTransportType(t string) bool {
	switch t {
	case TransportFlight, TransportTrain, TransportBus, TransportCar, TransportFerry:
		return true
	}
	return false
}

// Transportation is one travel leg owned by a trip.  Legs are
// created while planning and are effectively immutable afterwards;
// bookings reference them by ID.
type Transportation struct {
	ID                uint64    // transportations.id
	TripID            uint64    // transportations.trip_id
	Type              string    // transportations.type
	Provider          string    // transportations.provider
	DepartureLocation string    // transportations.departure_location
	ArrivalLocation   string    // transportations.arrival_location
	DepartureTime     time.Time // transportations.departure_time
	ArrivalTime       time.Time // transportations.arrival_time
	CostCents         uint32    // transportations.cost_cents
}

// Itinerary is one day of a trip's day-by-day plan.
type Itinerary struct {
	ID     uint64    // itineraries.id
	TripID uint64    // itineraries.trip_id
	Day    uint32    // itineraries.day (1-based index into the trip)
	Date   time.Time // itineraries.date
}

// ItineraryItem is a single planned activity inside an itinerary
// day.  It references either a catalog attraction or carries a
// free-text custom activity; times are stored as "HH:MM" strings
// mirroring the TIME columns.
type ItineraryItem struct {
	ID             uint64  // itinerary_items.id
	ItineraryID    uint64  // itinerary_items.itinerary_id
	AttractionID   *uint64 // itinerary_items.attraction_id (nullable)
	CustomActivity string  // itinerary_items.custom_activity
	StartTime      string  // itinerary_items.start_time
	EndTime        string  // itinerary_items.end_time
	Notes          string  // itinerary_items.notes
}
