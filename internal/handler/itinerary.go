package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/travel-planner/internal/model"
	"github.com/iliyamo/travel-planner/internal/repository"
)

// ItineraryHandler manages a trip's day-by-day plan.
type ItineraryHandler struct {
	TripRepo       *repository.TripRepo
	ItineraryRepo  *repository.ItineraryRepo
	AttractionRepo *repository.AttractionRepo
}

// NewItineraryHandler constructs an ItineraryHandler and panics if any
// dependency is nil.
func NewItineraryHandler(t *repository.TripRepo, i *repository.ItineraryRepo, a *repository.AttractionRepo) *ItineraryHandler {
	if t == nil || i == nil || a == nil {
		panic("nil repository passed to NewItineraryHandler")
	}
	return &ItineraryHandler{TripRepo: t, ItineraryRepo: i, AttractionRepo: a}
}

type itineraryItemResp struct {
	ID             uint64  `json:"id"`
	AttractionID   *uint64 `json:"attraction_id,omitempty"`
	CustomActivity string  `json:"custom_activity,omitempty"`
	StartTime      string  `json:"start_time"`
	EndTime        string  `json:"end_time"`
	Notes          string  `json:"notes,omitempty"`
}

type itineraryDayResp struct {
	ID    uint64              `json:"id"`
	Day   uint32              `json:"day"`
	Date  string              `json:"date"`
	Items []itineraryItemResp `json:"items"`
}

// validClock reports whether s is a wall-clock time in HH:MM form.
func validClock(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil
}

// CreateDay handles POST /v1/trips/:id/itineraries.
func (h *ItineraryHandler) CreateDay(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	tripID, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	trip, err := h.TripRepo.GetByIDForUser(ctx, tripID, userID)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "trip not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	var body struct {
		Day  uint32 `json:"day"`
		Date string `json:"date"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Day == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "day must be a positive day number"})
	}
	date, err := time.Parse(dateLayout, body.Date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}
	if date.Before(trip.StartDate) || date.After(trip.EndDate) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date falls outside the trip"})
	}
	day := model.Itinerary{TripID: tripID, Day: body.Day, Date: date}
	if err := h.ItineraryRepo.CreateDay(ctx, &day); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, itineraryDayResp{
		ID: day.ID, Day: day.Day, Date: day.Date.Format(dateLayout), Items: []itineraryItemResp{},
	})
}

// ListDays handles GET /v1/trips/:id/itineraries and returns every day of
// the plan with its scheduled items.
func (h *ItineraryHandler) ListDays(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	tripID, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	if _, err := h.TripRepo.GetByIDForUser(ctx, tripID, userID); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "trip not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	days, err := h.ItineraryRepo.ListByTrip(ctx, tripID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]itineraryDayResp, 0, len(days))
	for _, d := range days {
		dr := itineraryDayResp{ID: d.ID, Day: d.Day, Date: d.Date.Format(dateLayout), Items: []itineraryItemResp{}}
		items, err := h.ItineraryRepo.ListItems(ctx, d.ID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		for _, it := range items {
			dr.Items = append(dr.Items, itineraryItemResp{
				ID:             it.ID,
				AttractionID:   it.AttractionID,
				CustomActivity: it.CustomActivity,
				StartTime:      it.StartTime,
				EndTime:        it.EndTime,
				Notes:          it.Notes,
			})
		}
		out = append(out, dr)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// AddItem handles POST /v1/itineraries/:id/items. An item references a
// catalog attraction or carries a free-text activity; one of the two is
// required.
func (h *ItineraryHandler) AddItem(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	dayID, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	day, err := h.ItineraryRepo.GetDay(ctx, dayID)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "itinerary not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	// day -> trip -> owner
	if _, err := h.TripRepo.GetByIDForUser(ctx, day.TripID, userID); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "itinerary not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	var body struct {
		AttractionID   *uint64 `json:"attraction_id"`
		CustomActivity string  `json:"custom_activity"`
		StartTime      string  `json:"start_time"`
		EndTime        string  `json:"end_time"`
		Notes          string  `json:"notes"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	body.CustomActivity = strings.TrimSpace(body.CustomActivity)
	if body.AttractionID == nil && body.CustomActivity == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "attraction_id or custom_activity is required"})
	}
	if !validClock(body.StartTime) || !validClock(body.EndTime) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start_time and end_time must be HH:MM"})
	}
	if body.EndTime < body.StartTime { // HH:MM strings order lexicographically
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "end_time must not be before start_time"})
	}
	if body.AttractionID != nil {
		if _, err := h.AttractionRepo.GetByID(ctx, *body.AttractionID); err != nil {
			if err == repository.ErrNotFound {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "attraction not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
	}
	item := model.ItineraryItem{
		ItineraryID:    dayID,
		AttractionID:   body.AttractionID,
		CustomActivity: body.CustomActivity,
		StartTime:      body.StartTime,
		EndTime:        body.EndTime,
		Notes:          body.Notes,
	}
	if err := h.ItineraryRepo.AddItem(ctx, &item); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, itineraryItemResp{
		ID:             item.ID,
		AttractionID:   item.AttractionID,
		CustomActivity: item.CustomActivity,
		StartTime:      item.StartTime,
		EndTime:        item.EndTime,
		Notes:          item.Notes,
	})
}
