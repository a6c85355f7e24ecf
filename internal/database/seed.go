package database

import (
	"context"
	"database/sql"
	"log"
)

// SeedCatalog loads a small sample catalog when the destinations
// table is empty.  Enabled with SEED_SAMPLE_DATA=true; it is a
// stand-in for a real content pipeline and safe to run repeatedly.
func SeedCatalog(ctx context.Context, db *sql.DB) error {
	var count int64
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM destinations`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	type seedDest struct {
		name, city, country, description, bestTime string
		avgTemp                                    float64
		popularity                                 float64
	}
	dests := []seedDest{
		{"Eiffel Tower", "Paris", "France",
			"Wrought-iron lattice tower on the Champ de Mars, named after the engineer Gustave Eiffel.",
			"Spring (April-June)", 15.5, 4.8},
		{"Santorini", "Thera", "Greece",
			"One of the Cyclades islands in the Aegean Sea, shaped by a volcanic eruption in the 16th century BC.",
			"Late Spring and Early Fall", 23.0, 4.9},
		{"Grand Canyon", "Arizona", "USA",
			"Steep-sided canyon carved by the Colorado River, 277 miles long and over a mile deep.",
			"March to May and September to November", 21.0, 4.7},
		{"Kyoto", "Kyoto", "Japan",
			"Former capital of Japan famous for classical Buddhist temples, gardens, imperial palaces and Shinto shrines.",
			"Cherry blossom season (March-April) or fall foliage season (November)", 16.0, 4.6},
		{"Machu Picchu", "Cusco Region", "Peru",
			"Incan citadel set high in the Andes above the Urubamba River valley, built in the 15th century.",
			"Dry season (May to October)", 13.0, 4.8},
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	for _, d := range dests {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO destinations (name, country, city, description, avg_temperature, best_time_to_visit, popularity_score)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			d.name, d.country, d.city, d.description, d.avgTemp, d.bestTime, d.popularity)
		if err != nil {
			return err
		}
		destID, err := res.LastInsertId()
		if err != nil {
			return err
		}
		// One cheap and one upscale stay per destination keeps the
		// budget filter bands meaningful out of the box.
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO accommodations (destination_id, name, type, address, price_per_night_cents, rating, amenities) VALUES
			 (?, ?, 'hostel', ?, ?, 4.1, 'wifi,breakfast'),
			 (?, ?, 'hotel', ?, ?, 4.6, 'wifi,pool,spa,restaurant')`,
			destID, d.city+" Backpackers", "1 Old Town, "+d.city, 65_00,
			destID, "Grand "+d.city+" Hotel", "10 Main Square, "+d.city, 240_00); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO attractions (destination_id, name, category, description, entrance_fee_cents, opening_hours) VALUES
			 (?, ?, 'history', ?, 1500, '09:00-18:00'),
			 (?, ?, 'food', ?, NULL, '11:00-23:00')`,
			destID, d.name+" Heritage Walk", "Guided walk around "+d.name+".",
			destID, d.city+" Food Market", "Local food stalls and tastings in "+d.city+"."); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	log.Printf("seed: created %d sample destinations", len(dests))
	return nil
}
