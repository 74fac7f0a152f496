package routes

import (
	"net/http"
	"path/filepath"

	"hostelhub/auth"
	"hostelhub/booking"
	"hostelhub/chats"
	"hostelhub/hostels"
	"hostelhub/middleware"
	"hostelhub/places"
	"hostelhub/profile"
	"hostelhub/ratelim"
	"hostelhub/settings"

	"github.com/julienschmidt/httprouter"
)

// Deps are the constructed handlers the router dispatches to.
type Deps struct {
	Auth      *middleware.Auth
	Login     *auth.Handler
	Bookings  *booking.Handler
	Profiles  *profile.Handler
	Catalog   *hostels.Catalog
	Nearby    *places.Nearby
	Chats     *chats.Store
	Settings  *settings.Store
	StaticDir string
}

func AddStaticRoutes(router *httprouter.Router, d Deps) {
	router.ServeFiles("/static/userpic/*filepath", http.Dir(filepath.Join(d.StaticDir, "userpic")))
}

func AddAuthRoutes(router *httprouter.Router, d Deps, rl *ratelim.RateLimiter) {
	router.POST("/api/auth/register", rl.Limit(d.Login.Register))
	router.POST("/api/auth/login", rl.Limit(d.Login.Login))
	router.POST("/api/auth/logout", d.Auth.Authenticate(d.Login.Logout))
}

func AddHostelRoutes(router *httprouter.Router, d Deps) {
	router.GET("/api/hostels", d.Catalog.ListHostels)
	router.GET("/api/hostels/:id", d.Catalog.GetHostel)
}

func AddPlaceRoutes(router *httprouter.Router, d Deps) {
	router.GET("/api/places/nearby", d.Nearby.GetNearby)
}

func AddBookingRoutes(router *httprouter.Router, d Deps, rl *ratelim.RateLimiter) {
	router.POST("/api/wizard/validate/:step", d.Bookings.ValidateStep)
	router.POST("/api/bookings", rl.Limit(d.Auth.Authenticate(d.Bookings.CreateBooking)))
	router.GET("/api/bookings", d.Auth.Authenticate(d.Bookings.ListBookings))
	router.GET("/api/bookings/:id", d.Auth.Authenticate(d.Bookings.GetBooking))
	router.POST("/api/bookings/:id/cancel", d.Auth.Authenticate(d.Bookings.CancelBooking))
	router.GET("/api/bookings/:id/receipt", d.Auth.Authenticate(d.Bookings.GetReceipt))
}

func AddProfileRoutes(router *httprouter.Router, d Deps, rl *ratelim.RateLimiter) {
	router.GET("/api/profile", d.Auth.Authenticate(d.Profiles.GetProfile))
	router.PATCH("/api/profile", d.Auth.Authenticate(d.Profiles.UpdateProfile))
	router.DELETE("/api/profile", d.Auth.Authenticate(d.Profiles.ClearProfile))
	router.PUT("/api/profile/personal-info", d.Auth.Authenticate(d.Profiles.UpdatePersonalInfo))
	router.POST("/api/profile/avatar", rl.Limit(d.Auth.Authenticate(d.Profiles.UploadAvatar)))
}

func AddSettingsRoutes(router *httprouter.Router, d Deps) {
	router.GET("/api/settings/notifications", d.Auth.Authenticate(d.Settings.GetNotifications))
	router.PUT("/api/settings/notifications/:key", d.Auth.Authenticate(d.Settings.UpdateNotification))
	router.GET("/api/settings/privacy", d.Auth.Authenticate(d.Settings.GetPrivacySettings))
	router.PUT("/api/settings/privacy/:key", d.Auth.Authenticate(d.Settings.UpdatePrivacySetting))
}

func AddChatRoutes(router *httprouter.Router, d Deps) {
	router.GET("/api/chat/:room/messages", d.Auth.OptionalAuth(d.Chats.GetMessages))
	router.POST("/api/chat/:room/messages", d.Auth.Authenticate(d.Chats.SendMessage))
}
