// Package handler exposes HTTP handlers for both authenticated and public endpoints.
// This file defines handlers for the public catalog API. These routes allow
// unauthenticated users to browse destinations, accommodations and attractions
// without requiring authentication.
package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/travel-planner/internal/model"
	"github.com/iliyamo/travel-planner/internal/repository"
)

// PublicCatalogHandler aggregates repositories needed for unauthenticated
// catalog browsing.
type PublicCatalogHandler struct {
	DestinationRepo   *repository.DestinationRepo
	AccommodationRepo *repository.AccommodationRepo
	AttractionRepo    *repository.AttractionRepo
	ReviewRepo        *repository.ReviewRepo
}

// NewPublicCatalogHandler constructs a PublicCatalogHandler and panics if any
// dependency is nil.
func NewPublicCatalogHandler(d *repository.DestinationRepo, ac *repository.AccommodationRepo, at *repository.AttractionRepo, rv *repository.ReviewRepo) *PublicCatalogHandler {
	if d == nil || ac == nil || at == nil || rv == nil {
		panic("nil repository passed to NewPublicCatalogHandler")
	}
	return &PublicCatalogHandler{DestinationRepo: d, AccommodationRepo: ac, AttractionRepo: at, ReviewRepo: rv}
}

// destinationItem is a destination in list responses.
type destinationItem struct {
	ID              uint64   `json:"id"`
	Name            string   `json:"name"`
	Country         string   `json:"country"`
	City            string   `json:"city"`
	AvgTemperature  *float64 `json:"avg_temperature,omitempty"`
	BestTimeToVisit string   `json:"best_time_to_visit,omitempty"`
	PopularityScore float64  `json:"popularity_score"`
}

func toDestinationItems(ds []model.Destination) []destinationItem {
	out := make([]destinationItem, 0, len(ds))
	for _, d := range ds {
		out = append(out, destinationItem{
			ID:              d.ID,
			Name:            d.Name,
			Country:         d.Country,
			City:            d.City,
			AvgTemperature:  d.AvgTemperature,
			BestTimeToVisit: d.BestTimeToVisit,
			PopularityScore: d.PopularityScore,
		})
	}
	return out
}

// accommodationItem is an accommodation in detail responses.
type accommodationItem struct {
	ID                 uint64  `json:"id"`
	Name               string  `json:"name"`
	Type               string  `json:"type"`
	Address            string  `json:"address,omitempty"`
	PricePerNightCents uint32  `json:"price_per_night_cents"`
	Rating             float64 `json:"rating"`
	Amenities          string  `json:"amenities,omitempty"`
}

// attractionItem is an attraction in detail responses.
type attractionItem struct {
	ID               uint64  `json:"id"`
	Name             string  `json:"name"`
	Category         string  `json:"category"`
	Description      string  `json:"description,omitempty"`
	EntranceFeeCents *uint32 `json:"entrance_fee_cents,omitempty"`
	OpeningHours     string  `json:"opening_hours,omitempty"`
}

// destinationDetail is the full destination page payload.
type destinationDetail struct {
	destinationItem
	Description    string              `json:"description,omitempty"`
	AverageRating  float64             `json:"average_rating"`
	Accommodations []accommodationItem `json:"accommodations"`
	Attractions    []attractionItem    `json:"attractions"`
}

// ListDestinations handles GET /v1/destinations. The region, budget and
// activity query parameters filter the list; when a filtered query fails the
// handler degrades to the unfiltered list rather than erroring, so browsing
// keeps working even with a partially broken filter.
func (h *PublicCatalogHandler) ListDestinations(c echo.Context) error {
	ctx := c.Request().Context()
	f := repository.CatalogFilter{
		Region:   strings.TrimSpace(c.QueryParam("region")),
		Budget:   strings.TrimSpace(c.QueryParam("budget")),
		Activity: strings.TrimSpace(c.QueryParam("activity")),
	}
	if f.Active() {
		ds, err := h.DestinationRepo.ListFiltered(ctx, f)
		if err == nil {
			return c.JSON(http.StatusOK, echo.Map{"items": toDestinationItems(ds)})
		}
		// fall through to the unfiltered list
	}
	ds, err := h.DestinationRepo.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": toDestinationItems(ds)})
}

// GetDestination handles GET /v1/destinations/:id. It returns the
// destination with its accommodations, attractions and review average.
func (h *PublicCatalogHandler) GetDestination(c echo.Context) error {
	ctx := c.Request().Context()
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	d, err := h.DestinationRepo.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "destination not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	resp := destinationDetail{
		destinationItem: destinationItem{
			ID:              d.ID,
			Name:            d.Name,
			Country:         d.Country,
			City:            d.City,
			AvgTemperature:  d.AvgTemperature,
			BestTimeToVisit: d.BestTimeToVisit,
			PopularityScore: d.PopularityScore,
		},
		Description:    d.Description,
		Accommodations: []accommodationItem{},
		Attractions:    []attractionItem{},
	}

	if avg, err := h.ReviewRepo.AverageDestinationRating(ctx, id); err == nil {
		resp.AverageRating = avg
	}
	if accs, err := h.AccommodationRepo.ListByDestination(ctx, id); err == nil {
		for _, a := range accs {
			resp.Accommodations = append(resp.Accommodations, accommodationItem{
				ID:                 a.ID,
				Name:               a.Name,
				Type:               a.Type,
				Address:            a.Address,
				PricePerNightCents: a.PricePerNightCents,
				Rating:             a.Rating,
				Amenities:          a.Amenities,
			})
		}
	}
	if atts, err := h.AttractionRepo.ListByDestination(ctx, id); err == nil {
		for _, a := range atts {
			resp.Attractions = append(resp.Attractions, attractionItem{
				ID:               a.ID,
				Name:             a.Name,
				Category:         a.Category,
				Description:      a.Description,
				EntranceFeeCents: a.EntranceFeeCents,
				OpeningHours:     a.OpeningHours,
			})
		}
	}
	return c.JSON(http.StatusOK, resp)
}

// SearchDestinations handles GET /v1/search?q=. Matching starts with
// destination name/country/city and widens to attraction and accommodation
// names when nothing matched directly. Internal errors produce an empty
// result set rather than a 500 so the search box never breaks the page.
func (h *PublicCatalogHandler) SearchDestinations(c echo.Context) error {
	ctx := c.Request().Context()
	q := strings.TrimSpace(c.QueryParam("q"))
	if q == "" {
		return c.JSON(http.StatusOK, echo.Map{"items": []destinationItem{}, "query": q})
	}
	ds, err := h.DestinationRepo.Search(ctx, q)
	if err != nil {
		ds = nil
	}
	return c.JSON(http.StatusOK, echo.Map{"items": toDestinationItems(ds), "query": q})
}
