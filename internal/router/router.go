package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/travel-planner/internal/handler"    // import the handlers that implement business logic
	"github.com/iliyamo/travel-planner/internal/middleware" // import middleware for JWT authentication and role enforcement
	"github.com/iliyamo/travel-planner/internal/model"      // role constants
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Map the GET request at path "/healthz" to the Health handler.  This
	// endpoint can be used by load balancers or monitoring systems to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes and applies the
// necessary middleware.  Unauthenticated operations live under /v1/auth,
// while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	// Route group under /v1/auth for operations that do not require an
	// existing session (register, login, refresh).
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Refresh rotates the refresh token; refresh-access issues a new access
	// token while reusing the existing refresh token.
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout accepts either a bearer token (revoke all sessions) or a
	// refresh_token body (revoke one session); it does not require the JWT
	// middleware.
	g.POST("/logout", a.Logout)

	// Protected group: all handlers registered here run the JWTAuth
	// middleware first, then the role check.  Travelers and admins share
	// the authenticated surface; admin-only routes get their own group in
	// RegisterAdminCatalog.
	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole(model.RoleTraveler, model.RoleAdmin))
	auth.GET("/me", a.Me)

	// Same handler at the top level so clients can call either
	// /v1/auth/logout or /v1/logout.
	e.POST("/v1/logout", a.Logout)
}

// RegisterPublicCatalog registers unauthenticated catalog browsing routes.
// These return sanitized data and apply no JWT or role middleware; the
// optional extra middleware (typically the Redis response cache) is applied
// per route.
func RegisterPublicCatalog(e *echo.Echo, p *handler.PublicCatalogHandler, rv *handler.ReviewHandler, mw ...echo.MiddlewareFunc) {
	// Destination list with region/budget/activity filters
	e.GET("/v1/destinations", p.ListDestinations, mw...)
	// Destination detail with accommodations, attractions and review averages
	e.GET("/v1/destinations/:id", p.GetDestination, mw...)
	// Free-text search across the catalog
	e.GET("/v1/search", p.SearchDestinations, mw...)
	// Review lists are public reads
	e.GET("/v1/destinations/:id/reviews", rv.ListDestinationReviews, mw...)
	e.GET("/v1/accommodations/:id/reviews", rv.ListAccommodationReviews, mw...)
	e.GET("/v1/attractions/:id/reviews", rv.ListAttractionReviews, mw...)
}

// RegisterAdminCatalog registers the catalog maintenance routes.  Only the
// ADMIN role passes the middleware chain.
func RegisterAdminCatalog(e *echo.Echo, a *handler.AdminCatalogHandler, jwtSecret string) {
	g := e.Group("/v1/admin")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(model.RoleAdmin))
	g.POST("/destinations", a.CreateDestination)
	g.POST("/accommodations", a.CreateAccommodation)
	g.POST("/attractions", a.CreateAttraction)
}

// RegisterTraveler registers every authenticated traveler-facing route:
// trips and their legs/itineraries, the booking workflow, payments, issued
// tickets, reviews and the profile endpoints.
func RegisterTraveler(
	e *echo.Echo,
	trips *handler.TripHandler,
	legs *handler.TransportationHandler,
	days *handler.ItineraryHandler,
	bookings *handler.BookingHandler,
	payments *handler.PaymentHandler,
	tickets *handler.TicketHandler,
	reviews *handler.ReviewHandler,
	profile *handler.ProfileHandler,
	jwtSecret string,
) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(model.RoleTraveler, model.RoleAdmin))

	// Trip planning
	g.POST("/trips", trips.CreateTrip)
	g.GET("/trips", trips.ListTrips)
	g.GET("/trips/:id", trips.GetTrip)
	g.PUT("/trips/:id", trips.UpdateTrip)
	g.DELETE("/trips/:id", trips.DeleteTrip)

	// Transportation legs
	g.POST("/trips/:id/transportations", legs.AddLeg)
	g.GET("/trips/:id/transportations", legs.ListLegs)

	// Day-by-day itinerary
	g.POST("/trips/:id/itineraries", days.CreateDay)
	g.GET("/trips/:id/itineraries", days.ListDays)
	g.POST("/itineraries/:id/items", days.AddItem)

	// Booking workflow
	g.POST("/trips/:id/bookings/hotel", bookings.CreateHotelBooking)
	g.POST("/trips/:id/bookings/transportation", bookings.CreateTransportBooking)
	g.GET("/trips/:id/bookings", bookings.ListTripBookings)
	g.GET("/bookings/:kind/:id", bookings.GetBooking)
	g.POST("/bookings/:kind/:id/cancel", bookings.CancelBooking)

	// Payment simulator
	g.POST("/bookings/:kind/:id/payment", payments.PayBooking)
	g.GET("/bookings/:kind/:id/payments", payments.ListBookingPayments)

	// Issued e-tickets (immutable, owner only)
	g.GET("/trips/:id/tickets", tickets.ListTripTickets)
	g.GET("/tickets", tickets.ListTickets)
	g.GET("/tickets/:id", tickets.GetTicket)
	g.GET("/tickets/:id/qr", tickets.GetTicketQR)
	g.GET("/tickets/:id/download", tickets.DownloadTicket)

	// Reviews (writes require auth; reads are public, see RegisterPublicCatalog)
	g.POST("/destinations/:id/reviews", reviews.CreateDestinationReview)
	g.POST("/accommodations/:id/reviews", reviews.CreateAccommodationReview)
	g.POST("/attractions/:id/reviews", reviews.CreateAttractionReview)

	// Profile and travel preferences
	g.GET("/me/profile", profile.GetProfile)
	g.PUT("/me/profile", profile.UpdateProfile)
	g.GET("/me/preferences", profile.GetPreferences)
	g.PUT("/me/preferences", profile.UpdatePreferences)
}
