package model

// UserProfile holds optional traveler details kept apart from the
// auth record.
type UserProfile struct {
	UserID      uint64 // user_profiles.user_id
	Bio         string // user_profiles.bio
	PhoneNumber string // user_profiles.phone_number
}

// Budget preference choices for travel preferences.
const (
	BudgetLow  = "budget"
	BudgetMid  = "mid_range"
	BudgetHigh = "luxury"
)

// Travel style choices for travel preferences.
const (
	StyleAdventure  = "adventure"
	StyleRelaxation = "relaxation"
	StyleCultural   = "cultural"
	StyleFood       = "food"
	StyleEco        = "eco"
)

// TravelPreference captures how a user likes to travel; it feeds
// nothing critical, only profile display and future suggestions.
type TravelPreference struct {
	UserID              uint64 // travel_preferences.user_id
	DestinationType     string // travel_preferences.destination_type
	BudgetPreference    string // travel_preferences.budget_preference
	TravelStyle         string // travel_preferences.travel_style
	PreferredActivities string // travel_preferences.preferred_activities
	DietaryRestrictions string // travel_preferences.dietary_restrictions
}
