package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/campuscloset/campuscloset-backend/api/controllers"
	"github.com/campuscloset/campuscloset-backend/api/middleware"
	authsvc "github.com/campuscloset/campuscloset-backend/internal/auth"
	itemssvc "github.com/campuscloset/campuscloset-backend/internal/items"
	rentalssvc "github.com/campuscloset/campuscloset-backend/internal/rentals"
	reviewssvc "github.com/campuscloset/campuscloset-backend/internal/reviews"
	savedsvc "github.com/campuscloset/campuscloset-backend/internal/saved"
	userssvc "github.com/campuscloset/campuscloset-backend/internal/users"
	"github.com/campuscloset/campuscloset-backend/pkg/config"
	"github.com/campuscloset/campuscloset-backend/pkg/db"
	"github.com/campuscloset/campuscloset-backend/pkg/logger"
	"github.com/campuscloset/campuscloset-backend/pkg/metrics"
	"github.com/campuscloset/campuscloset-backend/pkg/redis"
)

// RouterParams bundles everything the HTTP surface depends on.
type RouterParams struct {
	Config         *config.Config
	Logger         *logger.Logger
	DB             db.Pinger
	Redis          *redis.Client
	HTTPMetrics    *metrics.HTTPMetrics
	IdentityLoader middleware.IdentityLoader

	RegisterService authsvc.RegisterService
	AuthService     authsvc.Service
	UsersService    userssvc.Service
	ItemsService    itemssvc.Service
	SavedService    savedsvc.Service
	RentalsService  rentalssvc.Service
	ReviewsService  reviewssvc.Service
}

func NewRouter(p RouterParams) http.Handler {
	cfg := p.Config
	logg := p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)
	if p.HTTPMetrics != nil {
		r.Use(p.HTTPMetrics.Middleware)
	}

	// A typed nil pointer would dodge the middleware's nil-store check.
	var limiterStore middleware.RateLimiterStore
	if p.Redis != nil {
		limiterStore = p.Redis
	}
	var redisPinger redis.Pinger
	if p.Redis != nil {
		redisPinger = p.Redis
	}

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, p.DB, redisPinger))
	})

	if p.HTTPMetrics != nil {
		r.Method(http.MethodGet, "/metrics", p.HTTPMetrics.Handler())
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(registerPolicy, limiterStore, logg)).Post("/register", controllers.AuthRegister(p.RegisterService, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, limiterStore, logg)).Post("/login", controllers.AuthLogin(p.AuthService, logg))
		r.Post("/verify-student", controllers.AuthVerifyStudent(p.AuthService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Authenticated(cfg.JWT, p.IdentityLoader, logg))

		r.Get("/auth/me", controllers.AuthMe(p.UsersService, logg))
		r.Put("/users/profile", controllers.UserUpdateProfile(p.UsersService, logg))
		r.Get("/users/{userId}", controllers.UserPublicProfile(p.UsersService, logg))
		r.Get("/users/{userId}/reviews", controllers.ReviewListForUser(p.ReviewsService, logg))

		r.Get("/items", controllers.ItemFeed(p.ItemsService, logg))
		r.Get("/items/{itemId}", controllers.ItemDetail(p.ItemsService, logg))

		// Marketplace participation requires an approved student: every
		// state change plus the caller's own listing and rental views.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireVerified(logg))

			r.Get("/items/my-items", controllers.ItemListMine(p.ItemsService, logg))
			r.Get("/items/saved", controllers.SavedItemList(p.SavedService, logg))

			r.Get("/rentals/my-rentals", controllers.RentalListRented(p.RentalsService, logg))
			r.Get("/rentals/my-lent-items", controllers.RentalListLent(p.RentalsService, logg))

			r.Post("/items", controllers.ItemCreate(p.ItemsService, logg))
			r.Put("/items/{itemId}", controllers.ItemUpdate(p.ItemsService, logg))
			r.Delete("/items/{itemId}", controllers.ItemDelete(p.ItemsService, logg))
			r.Post("/items/{itemId}/save", controllers.SavedItemAdd(p.SavedService, logg))
			r.Delete("/items/{itemId}/unsave", controllers.SavedItemRemove(p.SavedService, logg))

			r.Post("/rentals/mark-rented", controllers.RentalMarkRented(p.RentalsService, logg))
			r.Post("/rentals/mark-returned", controllers.RentalMarkReturned(p.RentalsService, logg))
			r.Post("/rentals/{rentalId}/review", controllers.ReviewCreate(p.ReviewsService, logg))
		})
	})

	return r
}
