package model

// Destination is a city or place users can plan trips to.  It is
// read-mostly reference data maintained by admins and seeded on
// first start.  This struct corresponds to a row in the
// `destinations` table.
//
// Fields:
//  ID              – primary key identifier.
//  Name            – destination name.
//  Country         – country the destination is in.
//  City            – city name.
//  Description     – long-form description shown on detail pages.
//  AvgTemperature  – average temperature in °C (nullable).
//  BestTimeToVisit – free-text season hint.
//  PopularityScore – ranking weight used when ordering lists.
type Destination struct {
	ID              uint64   // destinations.id
	Name            string   // destinations.name
	Country         string   // destinations.country
	City            string   // destinations.city
	Description     string   // destinations.description
	AvgTemperature  *float64 // destinations.avg_temperature (nullable)
	BestTimeToVisit string   // destinations.best_time_to_visit
	PopularityScore float64  // destinations.popularity_score
}

// Accommodation types accepted in accommodations.type.
const (
	AccommodationHotel     = "hotel"
	AccommodationHostel    = "hostel"
	AccommodationApartment = "apartment"
	AccommodationResort    = "resort"
	AccommodationVilla     = "villa"
)

// Accommodation is a bookable place to stay at a destination.
// Prices are stored in cents to avoid floating point drift.
type Accommodation struct {
	ID                 uint64  // accommodations.id
	DestinationID      uint64  // accommodations.destination_id
	Name               string  // accommodations.name
	Type               string  // accommodations.type
	Address            string  // accommodations.address
	PricePerNightCents uint32  // accommodations.price_per_night_cents
	Rating             float64 // accommodations.rating
	Amenities          string  // accommodations.amenities (comma separated)
}

// Attraction categories accepted in attractions.category.
const (
	AttractionNature        = "nature"
	AttractionHistory       = "history"
	AttractionCulture       = "culture"
	AttractionEntertainment = "entertainment"
	AttractionFood          = "food"
)

// Attraction is a point of interest at a destination that can be
// referenced from itinerary items.
type Attraction struct {
	ID               uint64  // attractions.id
	DestinationID    uint64  // attractions.destination_id
	Name             string  // attractions.name
	Category         string  // attractions.category
	Description      string  // attractions.description
	EntranceFeeCents *uint32 // attractions.entrance_fee_cents (nullable, free when null)
	OpeningHours     string  // attractions.opening_hours
}
