package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/travel-planner/internal/model"
	"github.com/iliyamo/travel-planner/internal/repository"
)

func TestHotelTicketTextFieldOrder(t *testing.T) {
	issued := time.Date(2026, 9, 1, 12, 30, 0, 0, time.UTC)
	tk := &model.ETicket{
		TicketType:   model.KindHotel,
		TicketNumber: "TCKT0123456789",
		IssueDate:    issued,
	}
	b := &model.HotelBooking{
		CheckInDate:      time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		CheckOutDate:     time.Date(2026, 9, 13, 0, 0, 0, 0, time.UTC),
		RoomType:         "Deluxe",
		Guests:           2,
		BookingReference: "HB1A2B3C4D",
	}
	text := hotelTicketText(tk, "Trip to Kyoto", "Ada Lovelace", b, "Kyoto Ryokan")
	lines := strings.Split(text, "\n")

	want := []string{
		"E-TICKET: TCKT0123456789",
		"Type: Hotel",
		"Issue Date: 2026-09-01 12:30:00",
		"Trip: Trip to Kyoto",
		"Passenger: Ada Lovelace",
		"",
		"HOTEL BOOKING DETAILS",
		"Hotel: Kyoto Ryokan",
		"Check-in: 2026-09-10",
		"Check-out: 2026-09-13",
		"Room Type: Deluxe",
		"Guests: 2",
		"Booking Reference: HB1A2B3C4D",
	}
	assert.Equal(t, want, lines)
}

func TestTransportTicketTextFieldOrder(t *testing.T) {
	issued := time.Date(2026, 9, 1, 12, 30, 0, 0, time.UTC)
	tk := &model.ETicket{
		TicketType:   model.KindTransportation,
		TicketNumber: "TCKTA1B2C3D4E5",
		IssueDate:    issued,
	}
	b := &model.TransportationBooking{
		BookingReference: "TB9F8E7D6C",
		PassengerNames:   "Ada Lovelace",
	}
	leg := &model.Transportation{
		Type:              model.TransportFlight,
		Provider:          "Nippon Air",
		DepartureLocation: "Paris CDG",
		ArrivalLocation:   "Kyoto KIX",
		DepartureTime:     time.Date(2026, 9, 10, 8, 0, 0, 0, time.UTC),
		ArrivalTime:       time.Date(2026, 9, 10, 20, 15, 0, 0, time.UTC),
	}
	text := transportTicketText(tk, "Trip to Kyoto", "Ada Lovelace", b, leg)
	lines := strings.Split(text, "\n")

	want := []string{
		"E-TICKET: TCKTA1B2C3D4E5",
		"Type: Transportation",
		"Issue Date: 2026-09-01 12:30:00",
		"Trip: Trip to Kyoto",
		"Passenger: Ada Lovelace",
		"",
		"TRANSPORTATION DETAILS",
		"Type: Flight",
		"Provider: Nippon Air",
		"From: Paris CDG",
		"To: Kyoto KIX",
		"Departure: 2026-09-10 08:00:00",
		"Arrival: 2026-09-10 20:15:00",
		"Booking Reference: TB9F8E7D6C",
		"Passengers: Ada Lovelace",
	}
	assert.Equal(t, want, lines)
}

func TestGetTicketForeignOwnerReadsAsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	h := NewTicketHandler(
		repository.NewETicketRepo(db),
		repository.NewTripRepo(db),
		repository.NewUserRepo(db),
		repository.NewAccommodationRepo(db),
		repository.NewTransportationRepo(db),
		repository.NewHotelBookingRepo(db),
		repository.NewTransportBookingRepo(db),
	)

	bookingID := uint64(11)
	rows := sqlmock.NewRows([]string{
		"id", "user_id", "trip_id", "ticket_type", "hotel_booking_id",
		"transportation_booking_id", "ticket_number", "issue_date",
		"additional_info", "qr_code_png",
	}).AddRow(4, 99, testTripID, "hotel", bookingID, nil, "TCKT0123456789",
		time.Now(), "{}", []byte{0x89, 0x50})
	mock.ExpectQuery("FROM e_tickets WHERE id").WithArgs(uint64(4)).
		WillReturnRows(rows)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/tickets/:id")
	c.SetParamNames("id")
	c.SetParamValues("4")
	c.Set("user_id", testUserID) // ticket belongs to user 99

	require.NoError(t, h.GetTicket(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
