package http

import (
	"net/http"

	"github.com/AadiZee/car-system-api/internal/application/car"
	"github.com/AadiZee/car-system-api/internal/application/user"
	"github.com/AadiZee/car-system-api/internal/config"
	"github.com/AadiZee/car-system-api/internal/transport/http/handler"
	appmiddleware "github.com/AadiZee/car-system-api/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", appmiddleware.TokenHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Stage one of the auth gate runs on every request: it attaches an
	// identity when a valid token is presented and hard-fails on a bad one.
	r.Use(appmiddleware.Resolve(deps.JWTProvider, deps.UserRepo))

	// 5 requests/second, burst of 10 — applied to sensitive public endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	userSvc := user.NewService(deps.UserRepo, deps.Mailer, deps.JWTProvider)
	carSvc := car.NewService(deps.CarRepo, deps.PhotoStore)

	healthH := handler.NewHealthHandler()
	userH := handler.NewUserHandler(userSvc)
	carH := handler.NewCarHandler(carSvc)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health-check", healthH.Ping)

		r.Route("/users", func(r chi.Router) {
			// Public — registration and login are the anonymous-allowed paths.
			r.With(sensitiveRL.Limit).Post("/register", userH.Register)
			r.With(sensitiveRL.Limit).Post("/login", userH.Login)

			// Stage two: these routes require a resolved identity.
			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RequireAuth)

				r.Patch("/update_email", userH.UpdateEmail)
				r.Patch("/update_password", userH.UpdatePassword)
				r.Delete("/delete", userH.Delete)
				r.Get("/isauth", userH.IsAuth)
			})
		})

		r.Route("/cars/admin", func(r chi.Router) {
			r.Use(appmiddleware.RequireAuth)

			r.Post("/add_car", carH.Create)
			r.Post("/paginate", carH.Paginate)
			r.Get("/", carH.List)
			r.Get("/{id}", carH.Get)
			r.Patch("/{id}", carH.Update)
			r.Delete("/{id}", carH.Delete)
			r.Post("/{id}/photo", carH.AttachPhoto)
			r.Get("/{id}/photo", carH.PhotoURL)
		})
	})

	return r
}
