package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mrjordantanner/logistics-app-server/api/controllers"
	"github.com/mrjordantanner/logistics-app-server/api/middleware"
	authsvc "github.com/mrjordantanner/logistics-app-server/internal/auth"
	deliverysvc "github.com/mrjordantanner/logistics-app-server/internal/deliveries"
	itemsvc "github.com/mrjordantanner/logistics-app-server/internal/items"
	locationsvc "github.com/mrjordantanner/logistics-app-server/internal/locations"
	ordersvc "github.com/mrjordantanner/logistics-app-server/internal/orders"
	usersvc "github.com/mrjordantanner/logistics-app-server/internal/users"
	"github.com/mrjordantanner/logistics-app-server/pkg/config"
	"github.com/mrjordantanner/logistics-app-server/pkg/db"
	"github.com/mrjordantanner/logistics-app-server/pkg/logger"
	"github.com/mrjordantanner/logistics-app-server/pkg/metrics"
	"github.com/mrjordantanner/logistics-app-server/pkg/redis"
)

// Services bundles the domain services consumed by the router.
type Services struct {
	Auth       authsvc.Service
	Users      usersvc.Service
	Items      itemsvc.Service
	Locations  locationsvc.Service
	Orders     ordersvc.Service
	Deliveries deliverysvc.Service
}

// NewRouter wires middleware, public auth endpoints, and the bearer-protected
// API surface.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	httpMetrics *metrics.HTTPMetrics,
	metricsHandler http.Handler,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	loginLimiter := middleware.AuthRateLimit(loginPolicy, nil, logg)
	var cachePinger redis.Pinger
	if redisClient != nil {
		loginLimiter = middleware.AuthRateLimit(loginPolicy, redisClient, logg)
		cachePinger = redisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive())
		r.Get("/ready", controllers.HealthReady(dbP, cachePinger, logg))
	})

	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	// Resource segments stay singular (/api/order, /api/item) to preserve the
	// legacy client contract.
	r.Route("/api", func(r chi.Router) {
		r.With(loginLimiter).Post("/auth/login", controllers.AuthLogin(svcs.Auth, logg))

		// Registration is the only unauthenticated write.
		r.Post("/user", controllers.CreateUser(svcs.Users, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))

			r.Get("/user", controllers.ListUsers(svcs.Users, logg))
			r.Get("/user/{id}", controllers.GetUser(svcs.Users, logg))
			r.Put("/user/{id}", controllers.UpdateUser(svcs.Users, logg))
			r.Delete("/user/{id}", controllers.DeleteUser(svcs.Users, logg))

			r.Get("/driver", controllers.ListDrivers(svcs.Users, logg))
			r.Put("/driver/{id}/status", controllers.UpdateDriverStatus(svcs.Users, logg))

			r.Post("/item", controllers.CreateItems(svcs.Items, logg))
			r.Get("/item", controllers.ListItems(svcs.Items, logg))
			r.Get("/item/{id}", controllers.GetItem(svcs.Items, logg))
			r.Put("/item/{id}", controllers.UpdateItem(svcs.Items, logg))
			r.Delete("/item/{id}", controllers.DeleteItem(svcs.Items, logg))

			r.Post("/location", controllers.CreateLocation(svcs.Locations, logg))
			r.Get("/location", controllers.ListLocations(svcs.Locations, logg))
			r.Get("/location/{id}", controllers.GetLocation(svcs.Locations, logg))
			r.Put("/location/{id}", controllers.UpdateLocation(svcs.Locations, logg))
			r.Delete("/location/{id}", controllers.DeleteLocation(svcs.Locations, logg))

			r.Post("/order", controllers.CreateOrder(svcs.Orders, logg))
			r.Get("/order", controllers.ListOrders(svcs.Orders, logg))
			r.Get("/order/{id}", controllers.GetOrder(svcs.Orders, logg))
			r.Put("/order/{id}", controllers.UpdateOrder(svcs.Orders, logg))
			r.Delete("/order/{id}", controllers.DeleteOrder(svcs.Orders, logg))

			r.Post("/delivery", controllers.CreateDelivery(svcs.Deliveries, logg))
			r.Get("/delivery", controllers.ListDeliveries(svcs.Deliveries, logg))
			r.Get("/delivery/{id}", controllers.GetDelivery(svcs.Deliveries, logg))
			r.Put("/delivery/{id}", controllers.UpdateDelivery(svcs.Deliveries, logg))
			r.Delete("/delivery/{id}", controllers.DeleteDelivery(svcs.Deliveries, logg))
		})
	})

	return r
}
