package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/travel-planner/internal/model"
	"github.com/iliyamo/travel-planner/internal/repository"
)

// TicketHandler serves issued e-tickets. Tickets are immutable; this handler
// only reads them and renders the plain-text export.
type TicketHandler struct {
	Tickets            *repository.ETicketRepo
	TripRepo           *repository.TripRepo
	UserRepo           *repository.UserRepo
	AccommodationRepo  *repository.AccommodationRepo
	TransportationRepo *repository.TransportationRepo
	HotelBookings      *repository.HotelBookingRepo
	TransportBookings  *repository.TransportBookingRepo
}

// NewTicketHandler constructs a TicketHandler and panics if any dependency is nil.
func NewTicketHandler(et *repository.ETicketRepo, t *repository.TripRepo, u *repository.UserRepo, a *repository.AccommodationRepo, tr *repository.TransportationRepo, hb *repository.HotelBookingRepo, tb *repository.TransportBookingRepo) *TicketHandler {
	if et == nil || t == nil || u == nil || a == nil || tr == nil || hb == nil || tb == nil {
		panic("nil repository passed to NewTicketHandler")
	}
	return &TicketHandler{
		Tickets:            et,
		TripRepo:           t,
		UserRepo:           u,
		AccommodationRepo:  a,
		TransportationRepo: tr,
		HotelBookings:      hb,
		TransportBookings:  tb,
	}
}

type ticketResp struct {
	ID             uint64 `json:"id"`
	TripID         uint64 `json:"trip_id"`
	TicketType     string `json:"ticket_type"`
	TicketNumber   string `json:"ticket_number"`
	IssueDate      string `json:"issue_date"`
	AdditionalInfo string `json:"additional_info,omitempty"`
	HasQRCode      bool   `json:"has_qr_code"`
}

func toTicketResp(t *model.ETicket) ticketResp {
	return ticketResp{
		ID:             t.ID,
		TripID:         t.TripID,
		TicketType:     string(t.TicketType),
		TicketNumber:   t.TicketNumber,
		IssueDate:      t.IssueDate.Format(dateTimeLayout),
		AdditionalInfo: t.AdditionalInfo,
		HasQRCode:      len(t.QRCodePNG) > 0,
	}
}

// ListTickets handles GET /v1/tickets and returns the caller's tickets.
func (h *TicketHandler) ListTickets(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	tickets, err := h.Tickets.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]ticketResp, 0, len(tickets))
	for i := range tickets {
		out = append(out, toTicketResp(&tickets[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// ListTripTickets handles GET /v1/trips/:id/tickets.
func (h *TicketHandler) ListTripTickets(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	tripID, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid trip id"})
	}
	ctx := c.Request().Context()
	if _, err := h.TripRepo.GetByIDForUser(ctx, tripID, userID); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "trip not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	tickets, err := h.Tickets.ListByTrip(ctx, tripID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]ticketResp, 0, len(tickets))
	for i := range tickets {
		out = append(out, toTicketResp(&tickets[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// getOwnedTicket loads a ticket and verifies the caller owns it. Foreign
// tickets read as not found so their existence is not leaked.
func (h *TicketHandler) getOwnedTicket(c echo.Context, userID uint64) (*model.ETicket, error) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return nil, c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	t, err := h.Tickets.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, c.JSON(http.StatusNotFound, echo.Map{"error": "ticket not found"})
		}
		return nil, c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if t.UserID != userID {
		return nil, c.JSON(http.StatusNotFound, echo.Map{"error": "ticket not found"})
	}
	return t, nil
}

// GetTicket handles GET /v1/tickets/:id.
func (h *TicketHandler) GetTicket(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	t, errResp := h.getOwnedTicket(c, userID)
	if errResp != nil {
		return errResp
	}
	return c.JSON(http.StatusOK, toTicketResp(t))
}

// GetTicketQR handles GET /v1/tickets/:id/qr and serves the stored PNG.
func (h *TicketHandler) GetTicketQR(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	t, errResp := h.getOwnedTicket(c, userID)
	if errResp != nil {
		return errResp
	}
	return c.Blob(http.StatusOK, "image/png", t.QRCodePNG)
}

// DownloadTicket handles GET /v1/tickets/:id/download. It renders the ticket
// as a plain-text attachment named after the ticket number.
func (h *TicketHandler) DownloadTicket(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	t, errResp := h.getOwnedTicket(c, userID)
	if errResp != nil {
		return errResp
	}
	ctx := c.Request().Context()

	tripTitle := ""
	if trip, err := h.TripRepo.GetByIDForUser(ctx, t.TripID, userID); err == nil {
		tripTitle = trip.Title
	}
	passenger := ""
	if u, err := h.UserRepo.GetByID(ctx, userID); err == nil {
		passenger = u.FullName
		if passenger == "" {
			passenger = u.Email
		}
	}

	var body string
	switch t.TicketType {
	case model.KindHotel:
		if t.HotelBookingID == nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "ticket is missing its booking"})
		}
		b, err := h.HotelBookings.GetByID(ctx, *t.HotelBookingID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		hotelName := ""
		if acc, err := h.AccommodationRepo.GetByID(ctx, b.AccommodationID); err == nil {
			hotelName = acc.Name
		}
		body = hotelTicketText(t, tripTitle, passenger, b, hotelName)
	default:
		if t.TransportationBookingID == nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "ticket is missing its booking"})
		}
		b, err := h.TransportBookings.GetByID(ctx, *t.TransportationBookingID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		leg, err := h.TransportationRepo.GetByID(ctx, b.TransportationID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		body = transportTicketText(t, tripTitle, passenger, b, leg)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="%s.txt"`, t.TicketNumber))
	return c.Blob(http.StatusOK, "text/plain", []byte(body))
}

// titleCase capitalizes the first letter of a lowercase enum value for
// display, e.g. "flight" to "Flight".
func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func ticketHeaderLines(t *model.ETicket, tripTitle, passenger string) []string {
	return []string{
		fmt.Sprintf("E-TICKET: %s", t.TicketNumber),
		fmt.Sprintf("Type: %s", titleCase(string(t.TicketType))),
		fmt.Sprintf("Issue Date: %s", t.IssueDate.Format(dateTimeLayout)),
		fmt.Sprintf("Trip: %s", tripTitle),
		fmt.Sprintf("Passenger: %s", passenger),
		"",
	}
}

func hotelTicketText(t *model.ETicket, tripTitle, passenger string, b *model.HotelBooking, hotelName string) string {
	lines := ticketHeaderLines(t, tripTitle, passenger)
	lines = append(lines,
		"HOTEL BOOKING DETAILS",
		fmt.Sprintf("Hotel: %s", hotelName),
		fmt.Sprintf("Check-in: %s", b.CheckInDate.Format(dateLayout)),
		fmt.Sprintf("Check-out: %s", b.CheckOutDate.Format(dateLayout)),
		fmt.Sprintf("Room Type: %s", b.RoomType),
		fmt.Sprintf("Guests: %d", b.Guests),
		fmt.Sprintf("Booking Reference: %s", b.BookingReference),
	)
	return strings.Join(lines, "\n")
}

func transportTicketText(t *model.ETicket, tripTitle, passenger string, b *model.TransportationBooking, leg *model.Transportation) string {
	lines := ticketHeaderLines(t, tripTitle, passenger)
	lines = append(lines,
		"TRANSPORTATION DETAILS",
		fmt.Sprintf("Type: %s", titleCase(leg.Type)),
		fmt.Sprintf("Provider: %s", leg.Provider),
		fmt.Sprintf("From: %s", leg.DepartureLocation),
		fmt.Sprintf("To: %s", leg.ArrivalLocation),
		fmt.Sprintf("Departure: %s", leg.DepartureTime.Format(dateTimeLayout)),
		fmt.Sprintf("Arrival: %s", leg.ArrivalTime.Format(dateTimeLayout)),
		fmt.Sprintf("Booking Reference: %s", b.BookingReference),
		fmt.Sprintf("Passengers: %s", b.PassengerNames),
	)
	return strings.Join(lines, "\n")
}
