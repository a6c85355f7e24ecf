package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/travel-planner/internal/model"
	"github.com/iliyamo/travel-planner/internal/queue"
	"github.com/iliyamo/travel-planner/internal/repository"
	"github.com/iliyamo/travel-planner/internal/service"
	"github.com/iliyamo/travel-planner/internal/ticket"
	"github.com/iliyamo/travel-planner/internal/utils"
)

// PaymentHandler runs the payment simulator. A successful payment creates a
// pending transaction, waits the configured processing delay, completes the
// transaction, flips the booking to paid+confirmed and issues the e-ticket,
// all inside one DB transaction. The broker notification happens after the
// commit and is best effort.
//
// The simulator never fails a payment on purpose; the failed/refunded
// statuses exist only in the schema.
type PaymentHandler struct {
	TripRepo           *repository.TripRepo
	AccommodationRepo  *repository.AccommodationRepo
	TransportationRepo *repository.TransportationRepo
	HotelBookings      *repository.HotelBookingRepo
	TransportBookings  *repository.TransportBookingRepo
	Payments           *repository.PaymentRepo
	Tickets            *repository.ETicketRepo
	Notifier           service.Notifier
	Delay              time.Duration
}

// NewPaymentHandler constructs a PaymentHandler and panics if any dependency
// is nil. A NopNotifier is substituted when notifier is nil.
func NewPaymentHandler(t *repository.TripRepo, a *repository.AccommodationRepo, tr *repository.TransportationRepo, hb *repository.HotelBookingRepo, tb *repository.TransportBookingRepo, p *repository.PaymentRepo, et *repository.ETicketRepo, n service.Notifier, delay time.Duration) *PaymentHandler {
	if t == nil || a == nil || tr == nil || hb == nil || tb == nil || p == nil || et == nil {
		panic("nil repository passed to NewPaymentHandler")
	}
	if n == nil {
		n = service.NopNotifier{}
	}
	return &PaymentHandler{
		TripRepo:           t,
		AccommodationRepo:  a,
		TransportationRepo: tr,
		HotelBookings:      hb,
		TransportBookings:  tb,
		Payments:           p,
		Tickets:            et,
		Notifier:           n,
		Delay:              delay,
	}
}

type paymentReq struct {
	PaymentMethod  string `json:"payment_method"`
	CardNumber     string `json:"card_number"`
	ExpiryDate     string `json:"expiry_date"`
	CVV            string `json:"cvv"`
	CardHolderName string `json:"card_holder_name"`
}

type paymentResp struct {
	ID             uint64  `json:"id"`
	TransactionID  string  `json:"transaction_id"`
	AmountCents    uint32  `json:"amount_cents"`
	PaymentMethod  string  `json:"payment_method"`
	Status         string  `json:"status"`
	CardLastDigits *string `json:"card_last_digits,omitempty"`
	TicketNumber   string  `json:"ticket_number,omitempty"`
	BookingStatus  string  `json:"booking_status,omitempty"`
}

// validateCardFields enforces the all-or-nothing rule for credit card
// payments: number, expiry, cvv and holder name must all be present.  It
// returns the last four digits of the card number on success.
func validateCardFields(req *paymentReq) (string, bool) {
	number := strings.ReplaceAll(strings.TrimSpace(req.CardNumber), " ", "")
	expiry := strings.TrimSpace(req.ExpiryDate)
	cvv := strings.TrimSpace(req.CVV)
	holder := strings.TrimSpace(req.CardHolderName)
	if number == "" || expiry == "" || cvv == "" || holder == "" {
		return "", false
	}
	if len(number) < 4 {
		return "", false
	}
	return number[len(number)-4:], true
}

// PayBooking handles POST /v1/bookings/:kind/:id/payment.
func (h *PaymentHandler) PayBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	kind, ok := model.ParseBookingKind(c.Param("kind"))
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking kind"})
	}
	bookingID, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()

	ref, err := loadBooking(ctx, h.HotelBookings, h.TransportBookings, kind, bookingID)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	// Ownership before any state change: a foreign booking must be left
	// exactly as it was.
	if _, err := h.TripRepo.GetByIDForUser(ctx, ref.TripID(), userID); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if ref.Status() == model.BookingCancelled {
		return c.JSON(http.StatusConflict, echo.Map{"error": "cancelled bookings cannot be paid"})
	}
	if ref.IsPaid() {
		return c.JSON(http.StatusConflict, echo.Map{"error": "booking is already paid"})
	}

	var req paymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if !model.ValidPaymentMethod(req.PaymentMethod) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payment method"})
	}
	var cardLast4 *string
	if req.PaymentMethod == model.MethodCreditCard {
		last4, ok := validateCardFields(&req)
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "card number, expiry date, cvv and holder name are all required"})
		}
		cardLast4 = &last4
	}

	amount, snapshot, err := h.bookingDetails(c, ref)
	if err != nil {
		return err // bookingDetails already wrote the response
	}

	payment := model.PaymentTransaction{
		UserID:         userID,
		BookingType:    kind,
		AmountCents:    amount,
		PaymentMethod:  req.PaymentMethod,
		TransactionID:  utils.NewTransactionID(time.Now()),
		Status:         model.PaymentPending,
		CardLastDigits: cardLast4,
	}
	ticketRow := model.ETicket{
		UserID:       userID,
		TripID:       ref.TripID(),
		TicketType:   kind,
		TicketNumber: utils.NewTicketNumber(),
	}
	id := ref.ID()
	if kind == model.KindHotel {
		payment.HotelBookingID = &id
		ticketRow.HotelBookingID = &id
	} else {
		payment.TransportationBookingID = &id
		ticketRow.TransportationBookingID = &id
	}
	ticketRow.AdditionalInfo = snapshot
	png, err := ticket.EncodeQR(ticketRow.TicketNumber, kind, ref.Reference())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "ticket encoding failed"})
	}
	ticketRow.QRCodePNG = png

	tx, err := h.HotelBookings.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := h.Payments.CreateTx(ctx, tx, &payment); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "payment failed"})
	}

	// Simulated gateway processing time.
	time.Sleep(h.Delay)

	if err := h.Payments.CompleteTx(ctx, tx, payment.ID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "payment failed"})
	}
	if kind == model.KindHotel {
		err = h.HotelBookings.MarkPaidConfirmedTx(ctx, tx, id)
	} else {
		err = h.TransportBookings.MarkPaidConfirmedTx(ctx, tx, id)
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "payment failed"})
	}
	if err := h.Tickets.CreateTx(ctx, tx, &ticketRow); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "ticket issue failed"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "payment failed"})
	}
	committed = true

	// Best effort; a broker outage must not fail a completed payment.
	_ = h.Notifier.BookingUpdate(ctx, queue.BookingUpdateEvent{
		BookingID:   id,
		BookingType: string(kind),
		Reference:   ref.Reference(),
		TripID:      ref.TripID(),
		UserID:      userID,
		Status:      model.BookingConfirmed,
		AmountCents: amount,
		OccurredAt:  time.Now().UTC().Format(time.RFC3339),
	})

	payment.Status = model.PaymentCompleted
	return c.JSON(http.StatusCreated, paymentResp{
		ID:             payment.ID,
		TransactionID:  payment.TransactionID,
		AmountCents:    payment.AmountCents,
		PaymentMethod:  payment.PaymentMethod,
		Status:         payment.Status,
		CardLastDigits: payment.CardLastDigits,
		TicketNumber:   ticketRow.TicketNumber,
		BookingStatus:  model.BookingConfirmed,
	})
}

// bookingDetails resolves the amount due and renders the denormalized
// ticket snapshot for the booking. On failure the HTTP response has already
// been written and the returned error should be passed straight up.
func (h *PaymentHandler) bookingDetails(c echo.Context, ref model.BookingRef) (uint32, string, error) {
	ctx := c.Request().Context()
	switch ref.Kind {
	case model.KindHotel:
		b := ref.Hotel
		acc, err := h.AccommodationRepo.GetByID(ctx, b.AccommodationID)
		if err != nil {
			return 0, "", c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		info := model.HotelTicketInfo{
			HotelName:  acc.Name,
			CheckIn:    b.CheckInDate.Format(dateLayout),
			CheckOut:   b.CheckOutDate.Format(dateLayout),
			RoomType:   b.RoomType,
			BookingRef: b.BookingReference,
		}
		blob, err := json.Marshal(info)
		if err != nil {
			return 0, "", c.JSON(http.StatusInternalServerError, echo.Map{"error": "snapshot failed"})
		}
		return b.TotalCostCents, string(blob), nil
	default:
		b := ref.Transport
		leg, err := h.TransportationRepo.GetByID(ctx, b.TransportationID)
		if err != nil {
			return 0, "", c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		info := model.TransportTicketInfo{
			Type:          leg.Type,
			Provider:      leg.Provider,
			Departure:     leg.DepartureLocation,
			Arrival:       leg.ArrivalLocation,
			DepartureTime: leg.DepartureTime.Format(dateTimeLayout),
			BookingRef:    b.BookingReference,
		}
		blob, err := json.Marshal(info)
		if err != nil {
			return 0, "", c.JSON(http.StatusInternalServerError, echo.Map{"error": "snapshot failed"})
		}
		return leg.CostCents, string(blob), nil
	}
}

// ListBookingPayments handles GET /v1/bookings/:kind/:id/payments.
func (h *PaymentHandler) ListBookingPayments(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	kind, ok := model.ParseBookingKind(c.Param("kind"))
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking kind"})
	}
	bookingID, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	ref, err := loadBooking(ctx, h.HotelBookings, h.TransportBookings, kind, bookingID)
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
	payments, err := h.Payments.ListForBooking(ctx, kind, bookingID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]paymentResp, 0, len(payments))
	for _, p := range payments {
		out = append(out, paymentResp{
			ID:             p.ID,
			TransactionID:  p.TransactionID,
			AmountCents:    p.AmountCents,
			PaymentMethod:  p.PaymentMethod,
			Status:         p.Status,
			CardLastDigits: p.CardLastDigits,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}
