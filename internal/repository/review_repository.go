package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/travel-planner/internal/model"
)

// ReviewRepo persists the three review kinds.  Each kind lives in
// its own table with its own extra rating axes; averages are read
// back for catalog detail pages.
type ReviewRepo struct {
	db *sql.DB
}

// NewReviewRepo returns a new ReviewRepo bound to the given database.
func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{db: db} }

// CreateDestinationReview inserts a destination review.
func (r *ReviewRepo) CreateDestinationReview(ctx context.Context, rv *model.DestinationReview) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO destination_reviews (user_id, destination_id, rating, weather_rating, safety_rating, comment)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rv.UserID, rv.DestinationID, rv.Rating, rv.WeatherRating, rv.SafetyRating, rv.Comment)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rv.ID = uint64(id)
	return nil
}

// CreateAccommodationReview inserts an accommodation review.
func (r *ReviewRepo) CreateAccommodationReview(ctx context.Context, rv *model.AccommodationReview) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO accommodation_reviews (user_id, accommodation_id, rating, cleanliness_rating, service_rating, value_rating, comment)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rv.UserID, rv.AccommodationID, rv.Rating, rv.CleanlinessRating, rv.ServiceRating, rv.ValueRating, rv.Comment)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rv.ID = uint64(id)
	return nil
}

// CreateAttractionReview inserts an attraction review.
func (r *ReviewRepo) CreateAttractionReview(ctx context.Context, rv *model.AttractionReview) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO attraction_reviews (user_id, attraction_id, rating, value_for_money, comment)
		 VALUES (?, ?, ?, ?, ?)`,
		rv.UserID, rv.AttractionID, rv.Rating, rv.ValueForMoney, rv.Comment)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rv.ID = uint64(id)
	return nil
}

// ListDestinationReviews returns reviews for one destination, newest
// first.
func (r *ReviewRepo) ListDestinationReviews(ctx context.Context, destinationID uint64) ([]model.DestinationReview, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, destination_id, rating, weather_rating, safety_rating, comment, created_at
		 FROM destination_reviews WHERE destination_id = ? ORDER BY created_at DESC`, destinationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.DestinationReview{}
	for rows.Next() {
		var rv model.DestinationReview
		if err := rows.Scan(&rv.ID, &rv.UserID, &rv.DestinationID, &rv.Rating,
			&rv.WeatherRating, &rv.SafetyRating, &rv.Comment, &rv.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

// ListAccommodationReviews returns reviews for one accommodation,
// newest first.
func (r *ReviewRepo) ListAccommodationReviews(ctx context.Context, accommodationID uint64) ([]model.AccommodationReview, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, accommodation_id, rating, cleanliness_rating, service_rating, value_rating, comment, created_at
		 FROM accommodation_reviews WHERE accommodation_id = ? ORDER BY created_at DESC`, accommodationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.AccommodationReview{}
	for rows.Next() {
		var rv model.AccommodationReview
		if err := rows.Scan(&rv.ID, &rv.UserID, &rv.AccommodationID, &rv.Rating,
			&rv.CleanlinessRating, &rv.ServiceRating, &rv.ValueRating, &rv.Comment, &rv.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

// ListAttractionReviews returns reviews for one attraction, newest
// first.
func (r *ReviewRepo) ListAttractionReviews(ctx context.Context, attractionID uint64) ([]model.AttractionReview, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, attraction_id, rating, value_for_money, comment, created_at
		 FROM attraction_reviews WHERE attraction_id = ? ORDER BY created_at DESC`, attractionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.AttractionReview{}
	for rows.Next() {
		var rv model.AttractionReview
		if err := rows.Scan(&rv.ID, &rv.UserID, &rv.AttractionID, &rv.Rating,
			&rv.ValueForMoney, &rv.Comment, &rv.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

// AverageDestinationRating returns the mean overall rating for a
// destination, or 0 when it has no reviews.
func (r *ReviewRepo) AverageDestinationRating(ctx context.Context, destinationID uint64) (float64, error) {
	var avg sql.NullFloat64
	err := r.db.QueryRowContext(ctx,
		`SELECT AVG(rating) FROM destination_reviews WHERE destination_id = ?`, destinationID).Scan(&avg)
	if err != nil {
		return 0, err
	}
	return avg.Float64, nil
}
