package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/travel-planner/internal/model"
	"github.com/iliyamo/travel-planner/internal/repository"
)

// ProfileHandler serves the caller's profile and travel preferences.
type ProfileHandler struct {
	ProfileRepo *repository.ProfileRepo
}

// NewProfileHandler constructs a ProfileHandler and panics if the repo is nil.
func NewProfileHandler(p *repository.ProfileRepo) *ProfileHandler {
	if p == nil {
		panic("nil repository passed to NewProfileHandler")
	}
	return &ProfileHandler{ProfileRepo: p}
}

type profileBody struct {
	Bio         string `json:"bio"`
	PhoneNumber string `json:"phone_number"`
}

// GetProfile handles GET /v1/me/profile. A user with no saved profile gets
// an empty one rather than a 404.
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	p, err := h.ProfileRepo.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, profileBody{Bio: p.Bio, PhoneNumber: p.PhoneNumber})
}

// UpdateProfile handles PUT /v1/me/profile.
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body profileBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	p := model.UserProfile{UserID: userID, Bio: body.Bio, PhoneNumber: body.PhoneNumber}
	if err := h.ProfileRepo.UpsertProfile(c.Request().Context(), &p); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, profileBody{Bio: p.Bio, PhoneNumber: p.PhoneNumber})
}

type preferenceBody struct {
	DestinationType     string `json:"destination_type"`
	BudgetPreference    string `json:"budget_preference"`
	TravelStyle         string `json:"travel_style"`
	PreferredActivities string `json:"preferred_activities"`
	DietaryRestrictions string `json:"dietary_restrictions"`
}

func validBudgetPreference(s string) bool {
	switch s {
	case "", model.BudgetLow, model.BudgetMid, model.BudgetHigh:
		return true
	}
	return false
}

func validTravelStyle(s string) bool {
	switch s {
	case "", model.StyleAdventure, model.StyleRelaxation, model.StyleCultural, model.StyleFood, model.StyleEco:
		return true
	}
	return false
}

// GetPreferences handles GET /v1/me/preferences.
func (h *ProfileHandler) GetPreferences(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	p, err := h.ProfileRepo.GetPreference(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, preferenceBody{
		DestinationType:     p.DestinationType,
		BudgetPreference:    p.BudgetPreference,
		TravelStyle:         p.TravelStyle,
		PreferredActivities: p.PreferredActivities,
		DietaryRestrictions: p.DietaryRestrictions,
	})
}

// UpdatePreferences handles PUT /v1/me/preferences.
func (h *ProfileHandler) UpdatePreferences(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body preferenceBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if !validBudgetPreference(body.BudgetPreference) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid budget_preference"})
	}
	if !validTravelStyle(body.TravelStyle) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid travel_style"})
	}
	p := model.TravelPreference{
		UserID:              userID,
		DestinationType:     body.DestinationType,
		BudgetPreference:    body.BudgetPreference,
		TravelStyle:         body.TravelStyle,
		PreferredActivities: body.PreferredActivities,
		DietaryRestrictions: body.DietaryRestrictions,
	}
	if err := h.ProfileRepo.UpsertPreference(c.Request().Context(), &p); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, body)
}
