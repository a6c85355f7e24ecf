package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/travel-planner/internal/model"
	"github.com/iliyamo/travel-planner/internal/repository"
)

// AdminCatalogHandler groups repositories for admins to maintain the
// catalog. Routes using it sit behind the ADMIN role middleware.
type AdminCatalogHandler struct {
	DestinationRepo   *repository.DestinationRepo
	AccommodationRepo *repository.AccommodationRepo
	AttractionRepo    *repository.AttractionRepo
}

// NewAdminCatalogHandler constructs an AdminCatalogHandler and panics if any
// dependency is nil.
func NewAdminCatalogHandler(d *repository.DestinationRepo, ac *repository.AccommodationRepo, at *repository.AttractionRepo) *AdminCatalogHandler {
	if d == nil || ac == nil || at == nil {
		panic("nil repository passed to NewAdminCatalogHandler")
	}
	return &AdminCatalogHandler{DestinationRepo: d, AccommodationRepo: ac, AttractionRepo: at}
}

// CreateDestination handles POST /v1/admin/destinations.
func (h *AdminCatalogHandler) CreateDestination(c echo.Context) error {
	var body struct {
		Name            string   `json:"name"`
		Country         string   `json:"country"`
		City            string   `json:"city"`
		Description     string   `json:"description"`
		AvgTemperature  *float64 `json:"avg_temperature"`
		BestTimeToVisit string   `json:"best_time_to_visit"`
		PopularityScore float64  `json:"popularity_score"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	body.Name = strings.TrimSpace(body.Name)
	body.Country = strings.TrimSpace(body.Country)
	if body.Name == "" || body.Country == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and country are required"})
	}
	d := model.Destination{
		Name:            body.Name,
		Country:         body.Country,
		City:            strings.TrimSpace(body.City),
		Description:     body.Description,
		AvgTemperature:  body.AvgTemperature,
		BestTimeToVisit: body.BestTimeToVisit,
		PopularityScore: body.PopularityScore,
	}
	if err := h.DestinationRepo.Create(c.Request().Context(), &d); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": d.ID})
}

// CreateAccommodation handles POST /v1/admin/accommodations.
func (h *AdminCatalogHandler) CreateAccommodation(c echo.Context) error {
	ctx := c.Request().Context()
	var body struct {
		DestinationID      uint64  `json:"destination_id"`
		Name               string  `json:"name"`
		Type               string  `json:"type"`
		Address            string  `json:"address"`
		PricePerNightCents uint32  `json:"price_per_night_cents"`
		Rating             float64 `json:"rating"`
		Amenities          string  `json:"amenities"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	body.Name = strings.TrimSpace(body.Name)
	if body.DestinationID == 0 || body.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "destination_id and name are required"})
	}
	switch body.Type {
	case model.AccommodationHotel, model.AccommodationHostel, model.AccommodationApartment,
		model.AccommodationResort, model.AccommodationVilla:
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid accommodation type"})
	}
	if _, err := h.DestinationRepo.GetByID(ctx, body.DestinationID); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "destination not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	a := model.Accommodation{
		DestinationID:      body.DestinationID,
		Name:               body.Name,
		Type:               body.Type,
		Address:            body.Address,
		PricePerNightCents: body.PricePerNightCents,
		Rating:             body.Rating,
		Amenities:          body.Amenities,
	}
	if err := h.AccommodationRepo.Create(ctx, &a); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": a.ID})
}

// CreateAttraction handles POST /v1/admin/attractions.
func (h *AdminCatalogHandler) CreateAttraction(c echo.Context) error {
	ctx := c.Request().Context()
	var body struct {
		DestinationID    uint64  `json:"destination_id"`
		Name             string  `json:"name"`
		Category         string  `json:"category"`
		Description      string  `json:"description"`
		EntranceFeeCents *uint32 `json:"entrance_fee_cents"`
		OpeningHours     string  `json:"opening_hours"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	body.Name = strings.TrimSpace(body.Name)
	if body.DestinationID == 0 || body.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "destination_id and name are required"})
	}
	switch body.Category {
	case model.AttractionNature, model.AttractionHistory, model.AttractionCulture,
		model.AttractionEntertainment, model.AttractionFood:
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid attraction category"})
	}
	if _, err := h.DestinationRepo.GetByID(ctx, body.DestinationID); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "destination not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	a := model.Attraction{
		DestinationID:    body.DestinationID,
		Name:             body.Name,
		Category:         body.Category,
		Description:      body.Description,
		EntranceFeeCents: body.EntranceFeeCents,
		OpeningHours:     body.OpeningHours,
	}
	if err := h.AttractionRepo.Create(ctx, &a); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": a.ID})
}
