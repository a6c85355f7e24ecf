package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/travel-planner/internal/repository"
)

func newBookingEnv(t *testing.T) (*BookingHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	h := NewBookingHandler(
		repository.NewTripRepo(db),
		repository.NewAccommodationRepo(db),
		repository.NewTransportationRepo(db),
		repository.NewHotelBookingRepo(db),
		repository.NewTransportBookingRepo(db),
	)
	return h, mock
}

func bookingRequest(t *testing.T, path string, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath(path)
	c.SetParamNames("id")
	c.SetParamValues("3")
	c.Set("user_id", testUserID)
	return c, rec
}

func TestCreateTransportBookingRefusedWithoutLegs(t *testing.T) {
	h, mock := newBookingEnv(t)
	mock.ExpectQuery("FROM trips WHERE id").WithArgs(testTripID, testUserID).
		WillReturnRows(ownedTripRows())
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM transportations").WithArgs(testTripID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	c, rec := bookingRequest(t, "/v1/trips/:id/bookings/transportation",
		`{"transportation_id":9,"passenger_names":"Ada Lovelace"}`)
	require.NoError(t, h.CreateTransportBooking(c))
	require.Equal(t, http.StatusConflict, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	// the refusal tells the caller what to fix
	assert.Contains(t, resp["hint"], "transportation leg")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateHotelBookingRejectsForeignDestination(t *testing.T) {
	h, mock := newBookingEnv(t)
	mock.ExpectQuery("FROM trips WHERE id").WithArgs(testTripID, testUserID).
		WillReturnRows(ownedTripRows()) // trip destination 2
	otherDest := sqlmock.NewRows([]string{
		"id", "destination_id", "name", "type", "address",
		"price_per_night_cents", "rating", "amenities",
	}).AddRow(5, 9, "Elsewhere Inn", "hotel", "", 10000, 4.0, "")
	mock.ExpectQuery("FROM accommodations WHERE id").WithArgs(uint64(5)).
		WillReturnRows(otherDest)

	c, rec := bookingRequest(t, "/v1/trips/:id/bookings/hotel",
		`{"accommodation_id":5,"check_in_date":"2026-09-10","check_out_date":"2026-09-13","guests":2}`)
	require.NoError(t, h.CreateHotelBooking(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateHotelBookingPendingWithReference(t *testing.T) {
	h, mock := newBookingEnv(t)
	mock.ExpectQuery("FROM trips WHERE id").WithArgs(testTripID, testUserID).
		WillReturnRows(ownedTripRows())
	mock.ExpectQuery("FROM accommodations WHERE id").WithArgs(uint64(5)).
		WillReturnRows(accommodationRows()) // destination 2, 24000/night
	mock.ExpectExec("INSERT INTO hotel_bookings").
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectQuery("FROM hotel_bookings WHERE id").WithArgs(testBookingID).
		WillReturnRows(pendingHotelBookingRows())

	c, rec := bookingRequest(t, "/v1/trips/:id/bookings/hotel",
		`{"accommodation_id":5,"check_in_date":"2026-09-10","check_out_date":"2026-09-13","guests":2}`)
	require.NoError(t, h.CreateHotelBooking(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp hotelBookingResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "pending", resp.Status)
	assert.False(t, resp.IsPaid)
	assert.True(t, strings.HasPrefix(resp.BookingReference, "HB"))
	// 3 nights at 24000 cents
	assert.Equal(t, uint32(72000), resp.TotalCostCents)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelBookingOnlyFromPending(t *testing.T) {
	h, mock := newBookingEnv(t)
	checkIn := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	confirmed := sqlmock.NewRows([]string{
		"id", "trip_id", "accommodation_id", "check_in_date", "check_out_date",
		"guests", "room_type", "total_cost_cents", "booking_reference", "status",
		"is_paid", "special_requests", "booking_date",
	}).AddRow(testBookingID, testTripID, 5, checkIn, checkIn.AddDate(0, 0, 3),
		2, "Standard", 72000, "HB1A2B3C4D", "confirmed", true, "", time.Now())
	mock.ExpectQuery("FROM hotel_bookings WHERE id").WithArgs(testBookingID).
		WillReturnRows(confirmed)
	mock.ExpectQuery("FROM trips WHERE id").WithArgs(testTripID, testUserID).
		WillReturnRows(ownedTripRows())
	// the guarded update matches no rows for a confirmed booking
	mock.ExpectExec("UPDATE hotel_bookings SET status").
		WillReturnResult(sqlmock.NewResult(0, 0))

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/bookings/:kind/:id/cancel")
	c.SetParamNames("kind", "id")
	c.SetParamValues("hotel", "11")
	c.Set("user_id", testUserID)

	require.NoError(t, h.CancelBooking(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
