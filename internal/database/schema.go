package database

import (
	"context"
	"database/sql"
	"fmt"
)

// schemaStatements are applied in order on startup.  Every statement
// is idempotent (CREATE TABLE IF NOT EXISTS) so restarting against
// an existing database is a no-op.  Foreign keys from trips to their
// children cascade on delete; payments and tickets set their booking
// link to NULL instead so the financial trail survives a booking
// row's removal.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		email VARCHAR(255) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		full_name VARCHAR(100) NOT NULL DEFAULT '',
		role VARCHAR(16) NOT NULL DEFAULT 'TRAVELER',
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT UNSIGNED NOT NULL,
		token_hash CHAR(64) NOT NULL UNIQUE,
		expires_at DATETIME NOT NULL,
		revoked_at DATETIME NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS destinations (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		country VARCHAR(100) NOT NULL,
		city VARCHAR(100) NOT NULL,
		description TEXT NOT NULL,
		avg_temperature DOUBLE NULL,
		best_time_to_visit VARCHAR(100) NOT NULL DEFAULT '',
		popularity_score DOUBLE NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS accommodations (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		destination_id BIGINT UNSIGNED NOT NULL,
		name VARCHAR(100) NOT NULL,
		type VARCHAR(10) NOT NULL,
		address TEXT NOT NULL,
		price_per_night_cents INT UNSIGNED NOT NULL,
		rating DOUBLE NOT NULL DEFAULT 0,
		amenities TEXT NOT NULL,
		FOREIGN KEY (destination_id) REFERENCES destinations(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS attractions (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		destination_id BIGINT UNSIGNED NOT NULL,
		name VARCHAR(100) NOT NULL,
		category VARCHAR(20) NOT NULL,
		description TEXT NOT NULL,
		entrance_fee_cents INT UNSIGNED NULL,
		opening_hours VARCHAR(200) NOT NULL DEFAULT '',
		FOREIGN KEY (destination_id) REFERENCES destinations(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS trips (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT UNSIGNED NOT NULL,
		title VARCHAR(100) NOT NULL,
		start_date DATE NOT NULL,
		end_date DATE NOT NULL,
		destination_id BIGINT UNSIGNED NOT NULL,
		accommodation_id BIGINT UNSIGNED NULL,
		budget_cents BIGINT UNSIGNED NOT NULL DEFAULT 0,
		notes TEXT NOT NULL,
		is_completed BOOLEAN NOT NULL DEFAULT FALSE,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
		FOREIGN KEY (destination_id) REFERENCES destinations(id) ON DELETE CASCADE,
		FOREIGN KEY (accommodation_id) REFERENCES accommodations(id) ON DELETE SET NULL
	)`,
	`CREATE TABLE IF NOT EXISTS transportations (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		trip_id BIGINT UNSIGNED NOT NULL,
		type VARCHAR(10) NOT NULL,
		provider VARCHAR(100) NOT NULL,
		departure_location VARCHAR(100) NOT NULL,
		arrival_location VARCHAR(100) NOT NULL,
		departure_time DATETIME NOT NULL,
		arrival_time DATETIME NOT NULL,
		cost_cents INT UNSIGNED NOT NULL,
		FOREIGN KEY (trip_id) REFERENCES trips(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS itineraries (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		trip_id BIGINT UNSIGNED NOT NULL,
		day INT UNSIGNED NOT NULL,
		date DATE NOT NULL,
		FOREIGN KEY (trip_id) REFERENCES trips(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS itinerary_items (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		itinerary_id BIGINT UNSIGNED NOT NULL,
		attraction_id BIGINT UNSIGNED NULL,
		custom_activity VARCHAR(200) NOT NULL DEFAULT '',
		start_time VARCHAR(5) NOT NULL,
		end_time VARCHAR(5) NOT NULL,
		notes TEXT NOT NULL,
		FOREIGN KEY (itinerary_id) REFERENCES itineraries(id) ON DELETE CASCADE,
		FOREIGN KEY (attraction_id) REFERENCES attractions(id) ON DELETE SET NULL
	)`,
	`CREATE TABLE IF NOT EXISTS hotel_bookings (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		trip_id BIGINT UNSIGNED NOT NULL,
		accommodation_id BIGINT UNSIGNED NOT NULL,
		check_in_date DATE NOT NULL,
		check_out_date DATE NOT NULL,
		guests TINYINT UNSIGNED NOT NULL DEFAULT 1,
		room_type VARCHAR(100) NOT NULL DEFAULT 'Standard',
		total_cost_cents INT UNSIGNED NOT NULL,
		booking_reference VARCHAR(20) NOT NULL UNIQUE,
		status VARCHAR(10) NOT NULL DEFAULT 'pending',
		is_paid BOOLEAN NOT NULL DEFAULT FALSE,
		special_requests TEXT NOT NULL,
		booking_date DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (trip_id) REFERENCES trips(id) ON DELETE CASCADE,
		FOREIGN KEY (accommodation_id) REFERENCES accommodations(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS transportation_bookings (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		trip_id BIGINT UNSIGNED NOT NULL,
		transportation_id BIGINT UNSIGNED NOT NULL,
		passenger_names TEXT NOT NULL,
		booking_reference VARCHAR(20) NOT NULL UNIQUE,
		status VARCHAR(10) NOT NULL DEFAULT 'pending',
		is_paid BOOLEAN NOT NULL DEFAULT FALSE,
		booking_date DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (trip_id) REFERENCES trips(id) ON DELETE CASCADE,
		FOREIGN KEY (transportation_id) REFERENCES transportations(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS payment_transactions (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT UNSIGNED NOT NULL,
		booking_type VARCHAR(20) NOT NULL,
		hotel_booking_id BIGINT UNSIGNED NULL,
		transportation_booking_id BIGINT UNSIGNED NULL,
		amount_cents INT UNSIGNED NOT NULL,
		payment_method VARCHAR(20) NOT NULL,
		transaction_id VARCHAR(50) NOT NULL UNIQUE,
		status VARCHAR(10) NOT NULL DEFAULT 'pending',
		card_last_digits CHAR(4) NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
		FOREIGN KEY (hotel_booking_id) REFERENCES hotel_bookings(id) ON DELETE SET NULL,
		FOREIGN KEY (transportation_booking_id) REFERENCES transportation_bookings(id) ON DELETE SET NULL
	)`,
	`CREATE TABLE IF NOT EXISTS e_tickets (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT UNSIGNED NOT NULL,
		trip_id BIGINT UNSIGNED NOT NULL,
		ticket_type VARCHAR(15) NOT NULL,
		hotel_booking_id BIGINT UNSIGNED NULL,
		transportation_booking_id BIGINT UNSIGNED NULL,
		ticket_number VARCHAR(20) NOT NULL UNIQUE,
		issue_date DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		additional_info JSON NOT NULL,
		qr_code_png MEDIUMBLOB NOT NULL,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
		FOREIGN KEY (trip_id) REFERENCES trips(id) ON DELETE CASCADE,
		FOREIGN KEY (hotel_booking_id) REFERENCES hotel_bookings(id) ON DELETE SET NULL,
		FOREIGN KEY (transportation_booking_id) REFERENCES transportation_bookings(id) ON DELETE SET NULL
	)`,
	`CREATE TABLE IF NOT EXISTS destination_reviews (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT UNSIGNED NOT NULL,
		destination_id BIGINT UNSIGNED NOT NULL,
		rating TINYINT UNSIGNED NOT NULL,
		weather_rating TINYINT UNSIGNED NOT NULL,
		safety_rating TINYINT UNSIGNED NOT NULL,
		comment TEXT NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
		FOREIGN KEY (destination_id) REFERENCES destinations(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS accommodation_reviews (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT UNSIGNED NOT NULL,
		accommodation_id BIGINT UNSIGNED NOT NULL,
		rating TINYINT UNSIGNED NOT NULL,
		cleanliness_rating TINYINT UNSIGNED NOT NULL,
		service_rating TINYINT UNSIGNED NOT NULL,
		value_rating TINYINT UNSIGNED NOT NULL,
		comment TEXT NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
		FOREIGN KEY (accommodation_id) REFERENCES accommodations(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS attraction_reviews (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT UNSIGNED NOT NULL,
		attraction_id BIGINT UNSIGNED NOT NULL,
		rating TINYINT UNSIGNED NOT NULL,
		value_for_money TINYINT UNSIGNED NOT NULL,
		comment TEXT NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
		FOREIGN KEY (attraction_id) REFERENCES attractions(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS user_profiles (
		user_id BIGINT UNSIGNED PRIMARY KEY,
		bio TEXT NOT NULL,
		phone_number VARCHAR(15) NOT NULL DEFAULT '',
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS travel_preferences (
		user_id BIGINT UNSIGNED PRIMARY KEY,
		destination_type VARCHAR(100) NOT NULL DEFAULT '',
		budget_preference VARCHAR(10) NOT NULL DEFAULT '',
		travel_style VARCHAR(10) NOT NULL DEFAULT '',
		preferred_activities TEXT NOT NULL,
		dietary_restrictions TEXT NOT NULL,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	)`,
}

// EnsureSchema applies the schema statements in order.  It is safe
// to call on every startup.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
