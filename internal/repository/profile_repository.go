package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/travel-planner/internal/model"
)

// ProfileRepo persists traveler profiles and travel preferences.
// Both are keyed by user id and written with upserts so a first PUT
// creates the row.
type ProfileRepo struct {
	db *sql.DB
}

// NewProfileRepo returns a new ProfileRepo bound to the given database.
func NewProfileRepo(db *sql.DB) *ProfileRepo { return &ProfileRepo{db: db} }

// GetProfile returns the user's profile; a missing row comes back as
// an empty profile, not an error.
func (r *ProfileRepo) GetProfile(ctx context.Context, userID uint64) (*model.UserProfile, error) {
	p := &model.UserProfile{UserID: userID}
	err := r.db.QueryRowContext(ctx,
		`SELECT bio, phone_number FROM user_profiles WHERE user_id = ?`, userID).
		Scan(&p.Bio, &p.PhoneNumber)
	if err == sql.ErrNoRows {
		return p, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// UpsertProfile writes the user's profile.
func (r *ProfileRepo) UpsertProfile(ctx context.Context, p *model.UserProfile) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO user_profiles (user_id, bio, phone_number) VALUES (?, ?, ?)
		 ON DUPLICATE KEY UPDATE bio = VALUES(bio), phone_number = VALUES(phone_number)`,
		p.UserID, p.Bio, p.PhoneNumber)
	return err
}

// GetPreference returns the user's travel preference; a missing row
// comes back empty.
func (r *ProfileRepo) GetPreference(ctx context.Context, userID uint64) (*model.TravelPreference, error) {
	p := &model.TravelPreference{UserID: userID}
	err := r.db.QueryRowContext(ctx,
		`SELECT destination_type, budget_preference, travel_style, preferred_activities, dietary_restrictions
		 FROM travel_preferences WHERE user_id = ?`, userID).
		Scan(&p.DestinationType, &p.BudgetPreference, &p.TravelStyle, &p.PreferredActivities, &p.DietaryRestrictions)
	if err == sql.ErrNoRows {
		return p, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// UpsertPreference writes the user's travel preference.
func (r *ProfileRepo) UpsertPreference(ctx context.Context, p *model.TravelPreference) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO travel_preferences (user_id, destination_type, budget_preference, travel_style, preferred_activities, dietary_restrictions)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON DUPLICATE KEY UPDATE destination_type = VALUES(destination_type), budget_preference = VALUES(budget_preference),
		 travel_style = VALUES(travel_style), preferred_activities = VALUES(preferred_activities), dietary_restrictions = VALUES(dietary_restrictions)`,
		p.UserID, p.DestinationType, p.BudgetPreference, p.TravelStyle, p.PreferredActivities, p.DietaryRestrictions)
	return err
}
