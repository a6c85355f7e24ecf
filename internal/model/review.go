package model

import "time"

// DestinationReview rates a destination 1–5 overall plus weather
// and safety axes.
type DestinationReview struct {
	ID            uint64    // destination_reviews.id
	UserID        uint64    // destination_reviews.user_id
	DestinationID uint64    // destination_reviews.destination_id
	Rating        uint8     // destination_reviews.rating
	WeatherRating uint8     // destination_reviews.weather_rating
	SafetyRating  uint8     // destination_reviews.safety_rating
	Comment       string    // destination_reviews.comment
	CreatedAt     time.Time // destination_reviews.created_at
}

// AccommodationReview rates a stay with cleanliness, service and
// value axes on top of the overall rating.
type AccommodationReview struct {
	ID                uint64    // accommodation_reviews.id
	UserID            uint64    // accommodation_reviews.user_id
	AccommodationID   uint64    // accommodation_reviews.accommodation_id
	Rating            uint8     // accommodation_reviews.rating
	CleanlinessRating uint8     // accommodation_reviews.cleanliness_rating
	ServiceRating     uint8     // accommodation_reviews.service_rating
	ValueRating       uint8     // accommodation_reviews.value_rating
	Comment           string    // accommodation_reviews.comment
	CreatedAt         time.Time // accommodation_reviews.created_at
}

// AttractionReview rates an attraction with a value-for-money axis.
type AttractionReview struct {
	ID            uint64    // attraction_reviews.id
	UserID        uint64    // attraction_reviews.user_id
	AttractionID  uint64    // attraction_reviews.attraction_id
	Rating        uint8     // attraction_reviews.rating
	ValueForMoney uint8     // attraction_reviews.value_for_money
	Comment       string    // attraction_reviews.comment
	CreatedAt     time.Time // attraction_reviews.created_at
}
