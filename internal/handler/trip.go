package handler

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/travel-planner/internal/model"
	"github.com/iliyamo/travel-planner/internal/queue"
	"github.com/iliyamo/travel-planner/internal/repository"
	"github.com/iliyamo/travel-planner/internal/service"
)

const dateLayout = "2006-01-02"

// TripHandler groups repositories for travelers to plan trips. All methods
// assume JWT authentication has already run; ownership of the trip is checked
// on every access so one traveler can never see or edit another's plans.
type TripHandler struct {
	TripRepo          *repository.TripRepo
	DestinationRepo   *repository.DestinationRepo
	AccommodationRepo *repository.AccommodationRepo
	Notifier          service.Notifier
}

// NewTripHandler constructs a TripHandler and panics if any repository is
// nil. A NopNotifier is substituted when notifier is nil.
func NewTripHandler(t *repository.TripRepo, d *repository.DestinationRepo, a *repository.AccommodationRepo, n service.Notifier) *TripHandler {
	if t == nil || d == nil || a == nil {
		panic("nil repository passed to NewTripHandler")
	}
	if n == nil {
		n = service.NopNotifier{}
	}
	return &TripHandler{TripRepo: t, DestinationRepo: d, AccommodationRepo: a, Notifier: n}
}

// notifyActivity publishes a user activity event; failures are deliberately
// ignored because the activity stream is best effort.
func (h *TripHandler) notifyActivity(c echo.Context, userID uint64, action, detail string) {
	_ = h.Notifier.UserActivity(c.Request().Context(), queue.UserActivityEvent{
		UserID:     userID,
		Action:     action,
		Detail:     detail,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})
}

type tripReq struct {
	Title           string  `json:"title"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	DestinationID   uint64  `json:"destination_id"`
	AccommodationID *uint64 `json:"accommodation_id"`
	BudgetCents     uint64  `json:"budget_cents"`
	Notes           string  `json:"notes"`
	IsCompleted     bool    `json:"is_completed"`
}

type tripResp struct {
	ID              uint64  `json:"id"`
	Title           string  `json:"title"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	DestinationID   uint64  `json:"destination_id"`
	AccommodationID *uint64 `json:"accommodation_id,omitempty"`
	BudgetCents     uint64  `json:"budget_cents"`
	Notes           string  `json:"notes,omitempty"`
	IsCompleted     bool    `json:"is_completed"`
}

func toTripResp(t *model.Trip) tripResp {
	return tripResp{
		ID:              t.ID,
		Title:           t.Title,
		StartDate:       t.StartDate.Format(dateLayout),
		EndDate:         t.EndDate.Format(dateLayout),
		DestinationID:   t.DestinationID,
		AccommodationID: t.AccommodationID,
		BudgetCents:     t.BudgetCents,
		Notes:           t.Notes,
		IsCompleted:     t.IsCompleted,
	}
}

// validateTripReq parses the date range and checks the destination and the
// optional accommodation. The accommodation must belong to the trip's
// destination.
func (h *TripHandler) validateTripReq(c echo.Context, req *tripReq) (start, end time.Time, errResp error) {
	ctx := c.Request().Context()
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" || req.DestinationID == 0 {
		return start, end, c.JSON(http.StatusBadRequest, echo.Map{"error": "title and destination_id are required"})
	}
	var err error
	start, err = time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return start, end, c.JSON(http.StatusBadRequest, echo.Map{"error": "start_date must be YYYY-MM-DD"})
	}
	end, err = time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return start, end, c.JSON(http.StatusBadRequest, echo.Map{"error": "end_date must be YYYY-MM-DD"})
	}
	if end.Before(start) {
		return start, end, c.JSON(http.StatusBadRequest, echo.Map{"error": "end_date must not be before start_date"})
	}
	if _, err := h.DestinationRepo.GetByID(ctx, req.DestinationID); err != nil {
		if err == repository.ErrNotFound {
			return start, end, c.JSON(http.StatusNotFound, echo.Map{"error": "destination not found"})
		}
		return start, end, c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if req.AccommodationID != nil {
		acc, err := h.AccommodationRepo.GetByID(ctx, *req.AccommodationID)
		if err != nil {
			if err == repository.ErrNotFound {
				return start, end, c.JSON(http.StatusNotFound, echo.Map{"error": "accommodation not found"})
			}
			return start, end, c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		if acc.DestinationID != req.DestinationID {
			return start, end, c.JSON(http.StatusBadRequest, echo.Map{"error": "accommodation does not belong to the trip destination"})
		}
	}
	return start, end, nil
}

// CreateTrip handles POST /v1/trips.
func (h *TripHandler) CreateTrip(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req tripReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	start, end, errResp := h.validateTripReq(c, &req)
	if errResp != nil {
		return errResp
	}
	t := model.Trip{
		UserID:          userID,
		Title:           req.Title,
		StartDate:       start,
		EndDate:         end,
		DestinationID:   req.DestinationID,
		AccommodationID: req.AccommodationID,
		BudgetCents:     req.BudgetCents,
		Notes:           req.Notes,
	}
	if err := h.TripRepo.Create(c.Request().Context(), &t); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	h.notifyActivity(c, userID, "trip_created", fmt.Sprintf("trip %d: %s", t.ID, t.Title))
	return c.JSON(http.StatusCreated, toTripResp(&t))
}

// ListTrips handles GET /v1/trips and returns only the caller's trips.
func (h *TripHandler) ListTrips(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	trips, err := h.TripRepo.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]tripResp, 0, len(trips))
	for i := range trips {
		out = append(out, toTripResp(&trips[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetTrip handles GET /v1/trips/:id.
func (h *TripHandler) GetTrip(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	tripID, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	t, err := h.TripRepo.GetByIDForUser(c.Request().Context(), tripID, userID)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "trip not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, toTripResp(t))
}

// UpdateTrip handles PUT /v1/trips/:id. The whole plan is replaced; partial
// updates go through the same validation as creation.
func (h *TripHandler) UpdateTrip(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	tripID, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	existing, err := h.TripRepo.GetByIDForUser(ctx, tripID, userID)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "trip not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	var req tripReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	start, end, errResp := h.validateTripReq(c, &req)
	if errResp != nil {
		return errResp
	}
	t := model.Trip{
		ID:              existing.ID,
		UserID:          userID,
		Title:           req.Title,
		StartDate:       start,
		EndDate:         end,
		DestinationID:   req.DestinationID,
		AccommodationID: req.AccommodationID,
		BudgetCents:     req.BudgetCents,
		Notes:           req.Notes,
		IsCompleted:     req.IsCompleted,
	}
	if err := h.TripRepo.Update(ctx, &t); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "trip not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, toTripResp(&t))
}

// DeleteTrip handles DELETE /v1/trips/:id. The schema cascades the delete to
// transportations, itineraries and bookings owned by the trip.
func (h *TripHandler) DeleteTrip(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	tripID, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.TripRepo.Delete(c.Request().Context(), tripID, userID); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "trip not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	h.notifyActivity(c, userID, "trip_deleted", fmt.Sprintf("trip %d", tripID))
	return c.NoContent(http.StatusNoContent)
}
