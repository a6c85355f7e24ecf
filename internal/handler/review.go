package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/travel-planner/internal/model"
	"github.com/iliyamo/travel-planner/internal/repository"
)

// ReviewHandler manages the three review families: destination reviews with
// weather and safety axes, accommodation reviews with cleanliness, service
// and value axes, and attraction reviews with a value-for-money axis.
type ReviewHandler struct {
	ReviewRepo        *repository.ReviewRepo
	DestinationRepo   *repository.DestinationRepo
	AccommodationRepo *repository.AccommodationRepo
	AttractionRepo    *repository.AttractionRepo
}

// NewReviewHandler constructs a ReviewHandler and panics if any dependency is nil.
func NewReviewHandler(rv *repository.ReviewRepo, d *repository.DestinationRepo, ac *repository.AccommodationRepo, at *repository.AttractionRepo) *ReviewHandler {
	if rv == nil || d == nil || ac == nil || at == nil {
		panic("nil repository passed to NewReviewHandler")
	}
	return &ReviewHandler{ReviewRepo: rv, DestinationRepo: d, AccommodationRepo: ac, AttractionRepo: at}
}

// validRating reports whether r is on the 1..5 scale.
func validRating(r uint8) bool { return r >= 1 && r <= 5 }

// CreateDestinationReview handles POST /v1/destinations/:id/reviews.
func (h *ReviewHandler) CreateDestinationReview(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	if _, err := h.DestinationRepo.GetByID(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "destination not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	var body struct {
		Rating        uint8  `json:"rating"`
		WeatherRating uint8  `json:"weather_rating"`
		SafetyRating  uint8  `json:"safety_rating"`
		Comment       string `json:"comment"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if !validRating(body.Rating) || !validRating(body.WeatherRating) || !validRating(body.SafetyRating) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "ratings must be between 1 and 5"})
	}
	rv := model.DestinationReview{
		UserID:        userID,
		DestinationID: id,
		Rating:        body.Rating,
		WeatherRating: body.WeatherRating,
		SafetyRating:  body.SafetyRating,
		Comment:       body.Comment,
	}
	if err := h.ReviewRepo.CreateDestinationReview(ctx, &rv); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": rv.ID})
}

// ListDestinationReviews handles GET /v1/destinations/:id/reviews.
func (h *ReviewHandler) ListDestinationReviews(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	reviews, err := h.ReviewRepo.ListDestinationReviews(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	type item struct {
		ID            uint64 `json:"id"`
		UserID        uint64 `json:"user_id"`
		Rating        uint8  `json:"rating"`
		WeatherRating uint8  `json:"weather_rating"`
		SafetyRating  uint8  `json:"safety_rating"`
		Comment       string `json:"comment,omitempty"`
		CreatedAt     string `json:"created_at"`
	}
	out := make([]item, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, item{
			ID:            r.ID,
			UserID:        r.UserID,
			Rating:        r.Rating,
			WeatherRating: r.WeatherRating,
			SafetyRating:  r.SafetyRating,
			Comment:       r.Comment,
			CreatedAt:     r.CreatedAt.Format(dateTimeLayout),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// CreateAccommodationReview handles POST /v1/accommodations/:id/reviews.
func (h *ReviewHandler) CreateAccommodationReview(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	if _, err := h.AccommodationRepo.GetByID(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "accommodation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	var body struct {
		Rating            uint8  `json:"rating"`
		CleanlinessRating uint8  `json:"cleanliness_rating"`
		ServiceRating     uint8  `json:"service_rating"`
		ValueRating       uint8  `json:"value_rating"`
		Comment           string `json:"comment"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if !validRating(body.Rating) || !validRating(body.CleanlinessRating) ||
		!validRating(body.ServiceRating) || !validRating(body.ValueRating) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "ratings must be between 1 and 5"})
	}
	rv := model.AccommodationReview{
		UserID:            userID,
		AccommodationID:   id,
		Rating:            body.Rating,
		CleanlinessRating: body.CleanlinessRating,
		ServiceRating:     body.ServiceRating,
		ValueRating:       body.ValueRating,
		Comment:           body.Comment,
	}
	if err := h.ReviewRepo.CreateAccommodationReview(ctx, &rv); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": rv.ID})
}

// ListAccommodationReviews handles GET /v1/accommodations/:id/reviews.
func (h *ReviewHandler) ListAccommodationReviews(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	reviews, err := h.ReviewRepo.ListAccommodationReviews(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	type item struct {
		ID                uint64 `json:"id"`
		UserID            uint64 `json:"user_id"`
		Rating            uint8  `json:"rating"`
		CleanlinessRating uint8  `json:"cleanliness_rating"`
		ServiceRating     uint8  `json:"service_rating"`
		ValueRating       uint8  `json:"value_rating"`
		Comment           string `json:"comment,omitempty"`
		CreatedAt         string `json:"created_at"`
	}
	out := make([]item, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, item{
			ID:                r.ID,
			UserID:            r.UserID,
			Rating:            r.Rating,
			CleanlinessRating: r.CleanlinessRating,
			ServiceRating:     r.ServiceRating,
			ValueRating:       r.ValueRating,
			Comment:           r.Comment,
			CreatedAt:         r.CreatedAt.Format(dateTimeLayout),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// CreateAttractionReview handles POST /v1/attractions/:id/reviews.
func (h *ReviewHandler) CreateAttractionReview(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	if _, err := h.AttractionRepo.GetByID(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "attraction not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	var body struct {
		Rating        uint8  `json:"rating"`
		ValueForMoney uint8  `json:"value_for_money"`
		Comment       string `json:"comment"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if !validRating(body.Rating) || !validRating(body.ValueForMoney) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "ratings must be between 1 and 5"})
	}
	rv := model.AttractionReview{
		UserID:        userID,
		AttractionID:  id,
		Rating:        body.Rating,
		ValueForMoney: body.ValueForMoney,
		Comment:       body.Comment,
	}
	if err := h.ReviewRepo.CreateAttractionReview(ctx, &rv); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": rv.ID})
}

// ListAttractionReviews handles GET /v1/attractions/:id/reviews.
func (h *ReviewHandler) ListAttractionReviews(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	reviews, err := h.ReviewRepo.ListAttractionReviews(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	type item struct {
		ID            uint64 `json:"id"`
		UserID        uint64 `json:"user_id"`
		Rating        uint8  `json:"rating"`
		ValueForMoney uint8  `json:"value_for_money"`
		Comment       string `json:"comment,omitempty"`
		CreatedAt     string `json:"created_at"`
	}
	out := make([]item, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, item{
			ID:            r.ID,
			UserID:        r.UserID,
			Rating:        r.Rating,
			ValueForMoney: r.ValueForMoney,
			Comment:       r.Comment,
			CreatedAt:     r.CreatedAt.Format(dateTimeLayout),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}
