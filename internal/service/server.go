package service

import (
	"giftlist/internal/app"
	"giftlist/internal/pkg/auth"
	"giftlist/internal/pkg/logger"
	"giftlist/internal/pkg/metrics"
	"giftlist/internal/pkg/ratelimit"
	"giftlist/internal/realtime"

	"github.com/go-chi/chi/v5"
)

// Recovery endpoints are a brute-force surface; limits follow the hosted
// deployment.
const (
	recoverPerMinute = 3
	verifyPerMinute  = 5
)

// Service encapsulates the HTTP server configuration, including the
// application's business logic, HTTP handlers, the server's run address,
// and a logger for event and error logging.
type Service struct {
	handlers   *handlers
	app        *app.App
	runAddress string
	log        *logger.Logger
}

// NewService creates and initializes a new Service instance. It sets up
// the handlers using the provided application, hub and logger, and
// configures the server's run address.
func NewService(app *app.App, hub *realtime.Hub, runAddress string, l *logger.Logger) *Service {
	handlers := newHandlers(app, hub, l)
	return &Service{handlers: handlers, app: app, runAddress: runAddress, log: l}
}

// RunAddress returns the address the HTTP server should listen on.
func (service *Service) RunAddress() string {
	return service.runAddress
}

// NewRouter sets up and returns a new chi.Router instance with the
// necessary middleware and routes. Logging middleware applies globally,
// JWT authentication guards the owner routes, and identity resolution
// covers the guest-accessible routes.
func (service *Service) NewRouter() chi.Router {
	recoverLimiter := ratelimit.New(recoverPerMinute, recoverPerMinute)
	verifyLimiter := ratelimit.New(verifyPerMinute, verifyPerMinute)

	router := chi.NewRouter()
	router.Use(service.log.WithLogging())

	router.Post("/api/auth", service.handlers.authHandler)
	router.Handle("/metrics", metrics.Handler())
	router.Get("/api/ws/{slug}", service.handlers.wsHandler)

	router.Group(func(r chi.Router) {
		r.Use(auth.CheckJWTMiddleware())
		r.Post("/api/wishlists", service.handlers.createWishlistHandler)
		r.Get("/api/wishlists", service.handlers.listWishlistsHandler)
		r.Get("/api/wishlists/{id}", service.handlers.getWishlistHandler)
		r.Put("/api/wishlists/{id}", service.handlers.updateWishlistHandler)
		r.Delete("/api/wishlists/{id}", service.handlers.deleteWishlistHandler)
		r.Post("/api/wishlists/{id}/restore", service.handlers.restoreWishlistHandler)
		r.Get("/api/wishlists/{id}/items", service.handlers.listItemsHandler)
		r.Post("/api/wishlists/{id}/items", service.handlers.createItemHandler)
		r.Patch("/api/wishlists/{id}/items/reorder", service.handlers.reorderHandler)
		r.Put("/api/items/{id}", service.handlers.updateItemHandler)
		r.Delete("/api/items/{id}", service.handlers.deleteItemHandler)
		r.Post("/api/items/{id}/restore", service.handlers.restoreItemHandler)
	})

	router.Group(func(r chi.Router) {
		r.Use(auth.IdentityMiddleware())
		r.Get("/api/wishlists/public/{slug}", service.handlers.publicWishlistHandler)
		r.Post("/api/items/{id}/reserve", service.handlers.reserveHandler)
		r.Delete("/api/items/{id}/reserve", service.handlers.cancelReservationHandler)
		r.Post("/api/items/{id}/contribute", service.handlers.contributeHandler)
		r.Delete("/api/contributions/{id}", service.handlers.cancelContributionHandler)
		r.Patch("/api/reservations/{id}/email", service.handlers.reservationEmailHandler)
		r.Patch("/api/contributions/{id}/email", service.handlers.contributionEmailHandler)
		r.With(recoverLimiter.Middleware()).Post("/api/guest/recover", service.handlers.recoverHandler)
		r.With(verifyLimiter.Middleware()).Post("/api/guest/verify", service.handlers.verifyHandler)
	})

	return router
}
