// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingUpdateEvent is broadcast after a booking changes state
// (created, confirmed, cancelled).  It is fire-and-forget: no state
// transition depends on it, and consumers use it for logging,
// notification or analytics without querying the primary database.
type BookingUpdateEvent struct {
	BookingID   uint64 `json:"booking_id"`
	BookingType string `json:"booking_type"` // hotel | transportation
	Reference   string `json:"reference"`
	TripID      uint64 `json:"trip_id"`
	UserID      uint64 `json:"user_id"`
	Status      string `json:"status"`
	AmountCents uint32 `json:"amount_cents"`
	OccurredAt  string `json:"occurred_at"`
}

// UserActivityEvent is broadcast for coarse user actions (trip
// created, ticket issued) feeding the activity stream.
type UserActivityEvent struct {
	UserID     uint64 `json:"user_id"`
	Action     string `json:"action"`
	Detail     string `json:"detail"`
	OccurredAt string `json:"occurred_at"`
}
