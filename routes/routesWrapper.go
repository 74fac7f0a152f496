package routes

import (
	"fmt"
	"net/http"

	"hostelhub/ratelim"

	"github.com/julienschmidt/httprouter"
)

// Index is a simple health check handler.
func Index(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	fmt.Fprint(w, "200")
}

func RoutesWrapper(router *httprouter.Router, d Deps, rateLimiter *ratelim.RateLimiter) {
	router.GET("/health", Index)

	AddStaticRoutes(router, d)
	AddAuthRoutes(router, d, rateLimiter)
	AddHostelRoutes(router, d)
	AddPlaceRoutes(router, d)
	AddBookingRoutes(router, d, rateLimiter)
	AddProfileRoutes(router, d, rateLimiter)
	AddSettingsRoutes(router, d)
	AddChatRoutes(router, d)
}
