package http

import (
	"net/http"

	"eventcompanion/internal/delivery/http/controllers"
	"eventcompanion/internal/delivery/http/middleware"
	"eventcompanion/internal/domain"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Controllers bundles everything the router mounts.
type Controllers struct {
	Auth       *controllers.AuthController
	User       *controllers.UserController
	Admin      *controllers.AdminController
	Venue      *controllers.VenueController
	Event      *controllers.EventController
	Friendship *controllers.FriendshipController
	Presence   *controllers.PresenceController
	Company    *controllers.CompanyController
	Sponsor    *controllers.SponsorController
	Image      *controllers.ImageController
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(c Controllers, verifier domain.TokenVerifier) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier)
	admin := func(h http.HandlerFunc) http.HandlerFunc { return auth(middleware.RequireAdmin(h)) }

	// Auth
	mux.HandleFunc("POST /auth/signup", c.Auth.SignUp)
	mux.HandleFunc("POST /auth/login", c.Auth.Login)
	mux.HandleFunc("POST /auth/google", c.Auth.GoogleLogin)

	// Users
	mux.HandleFunc("GET /users/me", auth(c.User.GetMe))
	mux.HandleFunc("PATCH /users/me", auth(c.User.UpdateMe))
	mux.HandleFunc("GET /users/by-code/{friendCode}", auth(c.User.GetByFriendCode))

	// Admin review workflows
	mux.HandleFunc("GET /admin/users", admin(c.Admin.ListUsers))
	mux.HandleFunc("POST /admin/users/{userID}/review", admin(c.Admin.ReviewUser))
	mux.HandleFunc("GET /admin/companies", admin(c.Admin.ListCompanies))
	mux.HandleFunc("POST /admin/companies/{companyID}/review", admin(c.Admin.ReviewCompany))

	// Venues
	mux.HandleFunc("POST /venues", admin(c.Venue.Create))
	mux.HandleFunc("GET /venues", auth(c.Venue.List))
	mux.HandleFunc("GET /venues/{venueID}", auth(c.Venue.GetByID))
	mux.HandleFunc("PATCH /venues/{venueID}", admin(c.Venue.Update))
	mux.HandleFunc("DELETE /venues/{venueID}", admin(c.Venue.Delete))

	// Events
	mux.HandleFunc("POST /events", admin(c.Event.Create))
	mux.HandleFunc("GET /events/today", auth(c.Event.ListToday))
	mux.HandleFunc("GET /events/{eventID}", auth(c.Event.GetByID))
	mux.HandleFunc("PATCH /events/{eventID}", admin(c.Event.Update))
	mux.HandleFunc("DELETE /events/{eventID}", admin(c.Event.Delete))

	// Friendships
	mux.HandleFunc("POST /friendships", auth(c.Friendship.Request))
	mux.HandleFunc("GET /friendships", auth(c.Friendship.List))
	mux.HandleFunc("POST /friendships/{friendshipID}/accept", auth(c.Friendship.Accept))
	mux.HandleFunc("POST /friendships/{friendshipID}/reject", auth(c.Friendship.Reject))
	mux.HandleFunc("DELETE /friendships/{friendshipID}", auth(c.Friendship.Remove))

	// Presence
	mux.HandleFunc("PUT /presence", auth(c.Presence.Report))
	mux.HandleFunc("PUT /presence/sharing", auth(c.Presence.SetSharing))
	mux.HandleFunc("GET /presence/me", auth(c.Presence.MyState))
	mux.HandleFunc("GET /presence/friends", auth(c.Presence.Friends))

	// Companies and sponsor banners
	mux.HandleFunc("POST /companies", auth(c.Company.Register))
	mux.HandleFunc("GET /companies/me", auth(c.Company.GetMine))
	mux.HandleFunc("PATCH /companies/{companyID}", auth(c.Company.Update))
	mux.HandleFunc("POST /companies/{companyID}/banners", auth(c.Sponsor.Publish))
	mux.HandleFunc("GET /companies/{companyID}/banners", auth(c.Sponsor.ListByCompany))
	mux.HandleFunc("GET /banners", auth(c.Sponsor.ListActive))
	mux.HandleFunc("PATCH /banners/{bannerID}", auth(c.Sponsor.SetActive))
	mux.HandleFunc("DELETE /banners/{bannerID}", auth(c.Sponsor.Delete))

	// Images
	mux.HandleFunc("POST /images", auth(c.Image.Upload))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
