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
	"github.com/iliyamo/travel-planner/internal/service"
)

const (
	testUserID    = uint64(7)
	testTripID    = uint64(3)
	testBookingID = uint64(11)
)

func newPaymentEnv(t *testing.T) (*PaymentHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	h := NewPaymentHandler(
		repository.NewTripRepo(db),
		repository.NewAccommodationRepo(db),
		repository.NewTransportationRepo(db),
		repository.NewHotelBookingRepo(db),
		repository.NewTransportBookingRepo(db),
		repository.NewPaymentRepo(db),
		repository.NewETicketRepo(db),
		service.NopNotifier{},
		0, // no simulated gateway delay in tests
	)
	return h, mock
}

func paymentRequest(t *testing.T, kind string, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/bookings/:kind/:id/payment")
	c.SetParamNames("kind", "id")
	c.SetParamValues(kind, "11")
	c.Set("user_id", testUserID)
	return c, rec
}

func pendingHotelBookingRows() *sqlmock.Rows {
	checkIn := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	return sqlmock.NewRows([]string{
		"id", "trip_id", "accommodation_id", "check_in_date", "check_out_date",
		"guests", "room_type", "total_cost_cents", "booking_reference", "status",
		"is_paid", "special_requests", "booking_date",
	}).AddRow(testBookingID, testTripID, 5, checkIn, checkIn.AddDate(0, 0, 3),
		2, "Standard", 72000, "HB1A2B3C4D", "pending", false, "", time.Now())
}

func ownedTripRows() *sqlmock.Rows {
	start := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	return sqlmock.NewRows([]string{
		"id", "user_id", "title", "start_date", "end_date", "destination_id",
		"accommodation_id", "budget_cents", "notes", "is_completed", "created_at",
	}).AddRow(testTripID, testUserID, "Trip to Kyoto", start, start.AddDate(0, 0, 7),
		2, nil, 500000, "", false, time.Now())
}

func accommodationRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "destination_id", "name", "type", "address",
		"price_per_night_cents", "rating", "amenities",
	}).AddRow(5, 2, "Kyoto Ryokan", "hotel", "1 Gion St", 24000, 4.5, "WiFi,Breakfast")
}

func expectSuccessfulHotelFlow(mock sqlmock.Sqlmock) {
	mock.ExpectQuery("FROM hotel_bookings WHERE id").WithArgs(testBookingID).
		WillReturnRows(pendingHotelBookingRows())
	mock.ExpectQuery("FROM trips WHERE id").WithArgs(testTripID, testUserID).
		WillReturnRows(ownedTripRows())
	mock.ExpectQuery("FROM accommodations WHERE id").WithArgs(uint64(5)).
		WillReturnRows(accommodationRows())
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO payment_transactions").
		WillReturnResult(sqlmock.NewResult(21, 1))
	mock.ExpectExec("UPDATE payment_transactions SET status").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE hotel_bookings SET is_paid").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO e_tickets").
		WillReturnResult(sqlmock.NewResult(31, 1))
	mock.ExpectCommit()
}

func TestPayBookingPayPalConfirmsAndIssuesTicket(t *testing.T) {
	h, mock := newPaymentEnv(t)
	expectSuccessfulHotelFlow(mock)

	c, rec := paymentRequest(t, "hotel", `{"payment_method":"paypal"}`)
	require.NoError(t, h.PayBooking(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp paymentResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "completed", resp.Status)
	assert.Equal(t, "confirmed", resp.BookingStatus)
	assert.Equal(t, "paypal", resp.PaymentMethod)
	assert.Equal(t, uint32(72000), resp.AmountCents)
	assert.Nil(t, resp.CardLastDigits)
	assert.True(t, strings.HasPrefix(resp.TransactionID, "TR"))
	assert.True(t, strings.HasPrefix(resp.TicketNumber, "TCKT"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPayBookingCreditCardStoresLastFourOnly(t *testing.T) {
	h, mock := newPaymentEnv(t)
	expectSuccessfulHotelFlow(mock)

	c, rec := paymentRequest(t, "hotel", `{
		"payment_method":"credit_card",
		"card_number":"4111 1111 1111 1111",
		"expiry_date":"12/27",
		"cvv":"123",
		"card_holder_name":"Ada Lovelace"
	}`)
	require.NoError(t, h.PayBooking(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp paymentResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.CardLastDigits)
	assert.Equal(t, "1111", *resp.CardLastDigits)
	// full card data never appears in the response
	assert.NotContains(t, rec.Body.String(), "4111 1111")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPayBookingCreditCardMissingFieldWritesNothing(t *testing.T) {
	h, mock := newPaymentEnv(t)
	// validation fails before any insert; only the reads run
	mock.ExpectQuery("FROM hotel_bookings WHERE id").WithArgs(testBookingID).
		WillReturnRows(pendingHotelBookingRows())
	mock.ExpectQuery("FROM trips WHERE id").WithArgs(testTripID, testUserID).
		WillReturnRows(ownedTripRows())

	c, rec := paymentRequest(t, "hotel", `{
		"payment_method":"credit_card",
		"card_number":"4111111111111111",
		"expiry_date":"12/27",
		"card_holder_name":"Ada Lovelace"
	}`)
	require.NoError(t, h.PayBooking(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPayBookingForeignBookingForbiddenWithoutStateChange(t *testing.T) {
	h, mock := newPaymentEnv(t)
	mock.ExpectQuery("FROM hotel_bookings WHERE id").WithArgs(testBookingID).
		WillReturnRows(pendingHotelBookingRows())
	// the trip belongs to someone else: ownership query finds nothing
	mock.ExpectQuery("FROM trips WHERE id").WithArgs(testTripID, testUserID).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "title", "start_date", "end_date", "destination_id",
			"accommodation_id", "budget_cents", "notes", "is_completed", "created_at",
		}))

	c, rec := paymentRequest(t, "hotel", `{"payment_method":"paypal"}`)
	require.NoError(t, h.PayBooking(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPayBookingRejectsUnknownKind(t *testing.T) {
	h, mock := newPaymentEnv(t)

	c, rec := paymentRequest(t, "cruise", `{"payment_method":"paypal"}`)
	require.NoError(t, h.PayBooking(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPayBookingRejectsCancelledBooking(t *testing.T) {
	h, mock := newPaymentEnv(t)
	checkIn := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	cancelled := sqlmock.NewRows([]string{
		"id", "trip_id", "accommodation_id", "check_in_date", "check_out_date",
		"guests", "room_type", "total_cost_cents", "booking_reference", "status",
		"is_paid", "special_requests", "booking_date",
	}).AddRow(testBookingID, testTripID, 5, checkIn, checkIn.AddDate(0, 0, 3),
		2, "Standard", 72000, "HB1A2B3C4D", "cancelled", false, "", time.Now())
	mock.ExpectQuery("FROM hotel_bookings WHERE id").WithArgs(testBookingID).
		WillReturnRows(cancelled)
	mock.ExpectQuery("FROM trips WHERE id").WithArgs(testTripID, testUserID).
		WillReturnRows(ownedTripRows())

	c, rec := paymentRequest(t, "hotel", `{"payment_method":"paypal"}`)
	require.NoError(t, h.PayBooking(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestValidateCardFields(t *testing.T) {
	cases := []struct {
		name  string
		req   paymentReq
		last4 string
		ok    bool
	}{
		{"all present", paymentReq{CardNumber: "4111111111111111", ExpiryDate: "12/27", CVV: "123", CardHolderName: "A"}, "1111", true},
		{"spaces stripped", paymentReq{CardNumber: "4111 1111 1111 1234", ExpiryDate: "12/27", CVV: "123", CardHolderName: "A"}, "1234", true},
		{"missing cvv", paymentReq{CardNumber: "4111111111111111", ExpiryDate: "12/27", CardHolderName: "A"}, "", false},
		{"missing number", paymentReq{ExpiryDate: "12/27", CVV: "123", CardHolderName: "A"}, "", false},
		{"missing holder", paymentReq{CardNumber: "4111111111111111", ExpiryDate: "12/27", CVV: "123"}, "", false},
		{"too short", paymentReq{CardNumber: "12", ExpiryDate: "12/27", CVV: "123", CardHolderName: "A"}, "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			last4, ok := validateCardFields(&tc.req)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.last4, last4)
		})
	}
}
