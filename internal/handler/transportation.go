package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/travel-planner/internal/model"
	"github.com/iliyamo/travel-planner/internal/repository"
)

const dateTimeLayout = "2006-01-02 15:04:05"

// TransportationHandler manages a trip's transportation legs.
type TransportationHandler struct {
	TripRepo           *repository.TripRepo
	TransportationRepo *repository.TransportationRepo
}

// NewTransportationHandler constructs a TransportationHandler and panics if
// any dependency is nil.
func NewTransportationHandler(t *repository.TripRepo, tr *repository.TransportationRepo) *TransportationHandler {
	if t == nil || tr == nil {
		panic("nil repository passed to NewTransportationHandler")
	}
	return &TransportationHandler{TripRepo: t, TransportationRepo: tr}
}

type transportationResp struct {
	ID                uint64 `json:"id"`
	Type              string `json:"type"`
	Provider          string `json:"provider"`
	DepartureLocation string `json:"departure_location"`
	ArrivalLocation   string `json:"arrival_location"`
	DepartureTime     string `json:"departure_time"`
	ArrivalTime       string `json:"arrival_time"`
	CostCents         uint32 `json:"cost_cents"`
}

func toTransportationResp(t *model.Transportation) transportationResp {
	return transportationResp{
		ID:                t.ID,
		Type:              t.Type,
		Provider:          t.Provider,
		DepartureLocation: t.DepartureLocation,
		ArrivalLocation:   t.ArrivalLocation,
		DepartureTime:     t.DepartureTime.Format(dateTimeLayout),
		ArrivalTime:       t.ArrivalTime.Format(dateTimeLayout),
		CostCents:         t.CostCents,
	}
}

// AddLeg handles POST /v1/trips/:id/transportations.
func (h *TransportationHandler) AddLeg(c echo.Context) error {
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
	var body struct {
		Type              string `json:"type"`
		Provider          string `json:"provider"`
		DepartureLocation string `json:"departure_location"`
		ArrivalLocation   string `json:"arrival_location"`
		DepartureTime     string `json:"departure_time"`
		ArrivalTime       string `json:"arrival_time"`
		CostCents         uint32 `json:"cost_cents"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if !model.ValidTransportType(body.Type) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid transportation type"})
	}
	if strings.TrimSpace(body.DepartureLocation) == "" || strings.TrimSpace(body.ArrivalLocation) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "departure and arrival locations are required"})
	}
	dep, err := time.Parse(dateTimeLayout, body.DepartureTime)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "departure_time must be YYYY-MM-DD HH:MM:SS"})
	}
	arr, err := time.Parse(dateTimeLayout, body.ArrivalTime)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "arrival_time must be YYYY-MM-DD HH:MM:SS"})
	}
	if arr.Before(dep) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "arrival_time must not be before departure_time"})
	}
	leg := model.Transportation{
		TripID:            tripID,
		Type:              body.Type,
		Provider:          strings.TrimSpace(body.Provider),
		DepartureLocation: strings.TrimSpace(body.DepartureLocation),
		ArrivalLocation:   strings.TrimSpace(body.ArrivalLocation),
		DepartureTime:     dep,
		ArrivalTime:       arr,
		CostCents:         body.CostCents,
	}
	if err := h.TransportationRepo.Create(ctx, &leg); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, toTransportationResp(&leg))
}

// ListLegs handles GET /v1/trips/:id/transportations.
func (h *TransportationHandler) ListLegs(c echo.Context) error {
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
	legs, err := h.TransportationRepo.ListByTrip(ctx, tripID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]transportationResp, 0, len(legs))
	for i := range legs {
		out = append(out, toTransportationResp(&legs[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}
