package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/travel-planner/internal/model"
)

// ItineraryRepo provides access to day plans and their items.
type ItineraryRepo struct {
	db *sql.DB
}

// NewItineraryRepo returns a new ItineraryRepo bound to the given database.
func NewItineraryRepo(db *sql.DB) *ItineraryRepo { return &ItineraryRepo{db: db} }

// CreateDay inserts one itinerary day and populates its generated ID.
func (r *ItineraryRepo) CreateDay(ctx context.Context, it *model.Itinerary) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO itineraries (trip_id, day, date) VALUES (?, ?, ?)`,
		it.TripID, it.Day, it.Date)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	it.ID = uint64(id)
	return nil
}

// GetDay returns one itinerary day or ErrNotFound.
func (r *ItineraryRepo) GetDay(ctx context.Context, id uint64) (*model.Itinerary, error) {
	var it model.Itinerary
	err := r.db.QueryRowContext(ctx,
		`SELECT id, trip_id, day, date FROM itineraries WHERE id = ?`, id).
		Scan(&it.ID, &it.TripID, &it.Day, &it.Date)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// ListByTrip returns the trip's days in day order.
func (r *ItineraryRepo) ListByTrip(ctx context.Context, tripID uint64) ([]model.Itinerary, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, trip_id, day, date FROM itineraries WHERE trip_id = ? ORDER BY day`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Itinerary{}
	for rows.Next() {
		var it model.Itinerary
		if err := rows.Scan(&it.ID, &it.TripID, &it.Day, &it.Date); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// AddItem inserts one activity into a day and populates its
// generated ID.  Exactly one of AttractionID/CustomActivity should
// be set; the handler validates that.
func (r *ItineraryRepo) AddItem(ctx context.Context, item *model.ItineraryItem) error {
	var attraction any
	if item.AttractionID != nil {
		attraction = *item.AttractionID
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO itinerary_items (itinerary_id, attraction_id, custom_activity, start_time, end_time, notes)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		item.ItineraryID, attraction, item.CustomActivity, item.StartTime, item.EndTime, item.Notes)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	item.ID = uint64(id)
	return nil
}

// ListItems returns a day's activities in start-time order.
func (r *ItineraryRepo) ListItems(ctx context.Context, itineraryID uint64) ([]model.ItineraryItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, itinerary_id, attraction_id, custom_activity, start_time, end_time, notes
		 FROM itinerary_items WHERE itinerary_id = ? ORDER BY start_time`, itineraryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.ItineraryItem{}
	for rows.Next() {
		var item model.ItineraryItem
		var attraction sql.NullInt64
		if err := rows.Scan(&item.ID, &item.ItineraryID, &attraction, &item.CustomActivity,
			&item.StartTime, &item.EndTime, &item.Notes); err != nil {
			return nil, err
		}
		if attraction.Valid {
			v := uint64(attraction.Int64)
			item.AttractionID = &v
		}
		out = append(out, item)
	}
	return out, rows.Err()
}
