package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/tankops/internal/http/auth"
	"github.com/MrJamesThe3rd/tankops/internal/http/ledger"
	"github.com/MrJamesThe3rd/tankops/internal/http/tank"
	"github.com/MrJamesThe3rd/tankops/internal/http/unload"
	"github.com/MrJamesThe3rd/tankops/internal/logger"
)

type Options struct {
	JWTSecret   []byte
	CORSOrigins []string
	Log         *zap.Logger
}

func New(
	opts Options,
	unloadsV1 *unload.Handler,
	tanksV1 *tank.Handler,
	ledgerV1 *ledger.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(logger.RequestLog(opts.Log))
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(auth.Middleware(opts.JWTSecret, opts.Log))

		r.Route("/unloads", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			unloadsV1.Routes(r)
		})

		r.Route("/tanks", tanksV1.TankRoutes)
		r.Route("/readings", tanksV1.ReadingRoutes)
		r.Route("/ledger", ledgerV1.Routes)
	})

	return router
}
