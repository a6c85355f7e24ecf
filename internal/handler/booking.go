package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/travel-planner/internal/model"
	"github.com/iliyamo/travel-planner/internal/repository"
	"github.com/iliyamo/travel-planner/internal/utils"
)

// BookingHandler groups repositories required to create, list and cancel
// hotel and transportation bookings on behalf of travelers. All methods
// assume JWT authentication has already been performed by middleware;
// ownership is enforced through the booking's trip.
type BookingHandler struct {
	TripRepo           *repository.TripRepo
	AccommodationRepo  *repository.AccommodationRepo
	TransportationRepo *repository.TransportationRepo
	HotelBookings      *repository.HotelBookingRepo
	TransportBookings  *repository.TransportBookingRepo
}

// NewBookingHandler constructs a BookingHandler and panics if any dependency
// is nil.
func NewBookingHandler(t *repository.TripRepo, a *repository.AccommodationRepo, tr *repository.TransportationRepo, hb *repository.HotelBookingRepo, tb *repository.TransportBookingRepo) *BookingHandler {
	if t == nil || a == nil || tr == nil || hb == nil || tb == nil {
		panic("nil repository passed to NewBookingHandler")
	}
	return &BookingHandler{
		TripRepo:           t,
		AccommodationRepo:  a,
		TransportationRepo: tr,
		HotelBookings:      hb,
		TransportBookings:  tb,
	}
}

type hotelBookingResp struct {
	ID               uint64 `json:"id"`
	TripID           uint64 `json:"trip_id"`
	AccommodationID  uint64 `json:"accommodation_id"`
	CheckInDate      string `json:"check_in_date"`
	CheckOutDate     string `json:"check_out_date"`
	Guests           uint8  `json:"guests"`
	RoomType         string `json:"room_type"`
	TotalCostCents   uint32 `json:"total_cost_cents"`
	BookingReference string `json:"booking_reference"`
	Status           string `json:"status"`
	IsPaid           bool   `json:"is_paid"`
	SpecialRequests  string `json:"special_requests,omitempty"`
}

func toHotelBookingResp(b *model.HotelBooking) hotelBookingResp {
	return hotelBookingResp{
		ID:               b.ID,
		TripID:           b.TripID,
		AccommodationID:  b.AccommodationID,
		CheckInDate:      b.CheckInDate.Format(dateLayout),
		CheckOutDate:     b.CheckOutDate.Format(dateLayout),
		Guests:           b.Guests,
		RoomType:         b.RoomType,
		TotalCostCents:   b.TotalCostCents,
		BookingReference: b.BookingReference,
		Status:           b.Status,
		IsPaid:           b.IsPaid,
		SpecialRequests:  b.SpecialRequests,
	}
}

type transportBookingResp struct {
	ID               uint64 `json:"id"`
	TripID           uint64 `json:"trip_id"`
	TransportationID uint64 `json:"transportation_id"`
	PassengerNames   string `json:"passenger_names"`
	BookingReference string `json:"booking_reference"`
	Status           string `json:"status"`
	IsPaid           bool   `json:"is_paid"`
}

func toTransportBookingResp(b *model.TransportationBooking) transportBookingResp {
	return transportBookingResp{
		ID:               b.ID,
		TripID:           b.TripID,
		TransportationID: b.TransportationID,
		PassengerNames:   b.PassengerNames,
		BookingReference: b.BookingReference,
		Status:           b.Status,
		IsPaid:           b.IsPaid,
	}
}

// loadBooking resolves a kind-tagged booking by ID. The returned BookingRef
// carries exactly the variant matching the kind.
func loadBooking(ctx context.Context, hb *repository.HotelBookingRepo, tb *repository.TransportBookingRepo, kind model.BookingKind, id uint64) (model.BookingRef, error) {
	switch kind {
	case model.KindHotel:
		b, err := hb.GetByID(ctx, id)
		if err != nil {
			return model.BookingRef{}, err
		}
		return model.BookingRef{Kind: kind, Hotel: b}, nil
	default:
		b, err := tb.GetByID(ctx, id)
		if err != nil {
			return model.BookingRef{}, err
		}
		return model.BookingRef{Kind: kind, Transport: b}, nil
	}
}

// CreateHotelBooking handles POST /v1/trips/:id/bookings/hotel. The
// accommodation must belong to the trip's destination; anything else is a
// planning mistake and is rejected before any row is written. The booking
// starts pending and unpaid with a reference assigned exactly once here.
func (h *BookingHandler) CreateHotelBooking(c echo.Context) error {
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
		AccommodationID uint64 `json:"accommodation_id"`
		CheckInDate     string `json:"check_in_date"`
		CheckOutDate    string `json:"check_out_date"`
		Guests          uint8  `json:"guests"`
		RoomType        string `json:"room_type"`
		SpecialRequests string `json:"special_requests"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.AccommodationID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "accommodation_id is required"})
	}
	checkIn, err := time.Parse(dateLayout, body.CheckInDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_in_date must be YYYY-MM-DD"})
	}
	checkOut, err := time.Parse(dateLayout, body.CheckOutDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_out_date must be YYYY-MM-DD"})
	}
	if !checkOut.After(checkIn) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_out_date must be after check_in_date"})
	}
	if body.Guests == 0 {
		body.Guests = 1
	}
	roomType := strings.TrimSpace(body.RoomType)
	if roomType == "" {
		roomType = "Standard"
	}
	acc, err := h.AccommodationRepo.GetByID(ctx, body.AccommodationID)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "accommodation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if acc.DestinationID != trip.DestinationID {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "accommodation does not belong to the trip destination"})
	}

	nights := uint32(checkOut.Sub(checkIn).Hours() / 24)
	b := model.HotelBooking{
		TripID:           tripID,
		AccommodationID:  acc.ID,
		CheckInDate:      checkIn,
		CheckOutDate:     checkOut,
		Guests:           body.Guests,
		RoomType:         roomType,
		TotalCostCents:   nights * acc.PricePerNightCents,
		BookingReference: utils.NewBookingReference(utils.HotelBookingPrefix),
		Status:           model.BookingPending,
		SpecialRequests:  body.SpecialRequests,
	}
	if err := h.HotelBookings.Create(ctx, &b); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, toHotelBookingResp(&b))
}

// CreateTransportBooking handles POST /v1/trips/:id/bookings/transportation.
// A trip without transportation legs cannot take a transportation booking;
// the 409 response tells the caller what to add first.
func (h *BookingHandler) CreateTransportBooking(c echo.Context) error {
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
	n, err := h.TransportationRepo.CountByTrip(ctx, tripID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if n == 0 {
		return c.JSON(http.StatusConflict, echo.Map{
			"error": "trip has no transportation legs",
			"hint":  "add a transportation leg to the trip before booking it",
		})
	}
	var body struct {
		TransportationID uint64 `json:"transportation_id"`
		PassengerNames   string `json:"passenger_names"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.TransportationID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "transportation_id is required"})
	}
	if strings.TrimSpace(body.PassengerNames) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "passenger_names is required"})
	}
	leg, err := h.TransportationRepo.GetByID(ctx, body.TransportationID)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "transportation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if leg.TripID != tripID {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "transportation does not belong to this trip"})
	}
	b := model.TransportationBooking{
		TripID:           tripID,
		TransportationID: leg.ID,
		PassengerNames:   body.PassengerNames,
		BookingReference: utils.NewBookingReference(utils.TransportBookingPrefix),
		Status:           model.BookingPending,
	}
	if err := h.TransportBookings.Create(ctx, &b); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, toTransportBookingResp(&b))
}

// ListTripBookings handles GET /v1/trips/:id/bookings. Both booking kinds
// are returned side by side.
func (h *BookingHandler) ListTripBookings(c echo.Context) error {
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
	hotels, err := h.HotelBookings.ListByTrip(ctx, tripID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	transports, err := h.TransportBookings.ListByTrip(ctx, tripID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	ho := make([]hotelBookingResp, 0, len(hotels))
	for i := range hotels {
		ho = append(ho, toHotelBookingResp(&hotels[i]))
	}
	to := make([]transportBookingResp, 0, len(transports))
	for i := range transports {
		to = append(to, toTransportBookingResp(&transports[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"hotel": ho, "transportation": to})
}

// GetBooking handles GET /v1/bookings/:kind/:id.
func (h *BookingHandler) GetBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	kind, ok := model.ParseBookingKind(c.Param("kind"))
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking kind"})
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	ref, err := loadBooking(ctx, h.HotelBookings, h.TransportBookings, kind, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if _, err := h.TripRepo.GetByIDForUser(ctx, ref.TripID(), userID); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if kind == model.KindHotel {
		return c.JSON(http.StatusOK, toHotelBookingResp(ref.Hotel))
	}
	return c.JSON(http.StatusOK, toTransportBookingResp(ref.Transport))
}

// CancelBooking handles POST /v1/bookings/:kind/:id/cancel. Only pending
// bookings cancel; confirmed and cancelled are terminal states.
func (h *BookingHandler) CancelBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	kind, ok := model.ParseBookingKind(c.Param("kind"))
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking kind"})
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	ref, err := loadBooking(ctx, h.HotelBookings, h.TransportBookings, kind, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if _, err := h.TripRepo.GetByIDForUser(ctx, ref.TripID(), userID); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if kind == model.KindHotel {
		err = h.HotelBookings.Cancel(ctx, id)
	} else {
		err = h.TransportBookings.Cancel(ctx, id)
	}
	if err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{"error": "only pending bookings can be cancelled"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": model.BookingCancelled})
}
