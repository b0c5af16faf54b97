package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/comanda/internal/metrics"
	"github.com/hitoshi/comanda/internal/middleware"
)

// RouterDeps はルーター構築に必要な依存をまとめる。
type RouterDeps struct {
	Logger      *slog.Logger
	Session     *SessionHandler
	Cart        *CartHandler
	Kitchen     *KitchenHandler
	Theme       *ThemeHandler
	Location    *LocationHandler
	Health      *HealthHandler
	RateLimiter *middleware.RateLimiter
	Metrics     *metrics.Collector // nil可
	Gatherer    prometheus.Gatherer

	CORSAllowedOrigin string
	ClientCookie      middleware.ClientIDConfig
}

// NewRouter はAPIルーターを構築する。
//
// ミドルウェアの順序: CORS → リカバリー → ロギング。/apiサブツリーのみ
// クライアント識別とレート制限を通し、/healthと/metricsは素通しにする。
// ログインにはAPI全般とは独立のレート制限を重ねる。
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	var rec middleware.MetricsRecorder
	if deps.Metrics != nil {
		rec = deps.Metrics
	}
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewLoggingMiddleware(deps.Logger, rec))

	r.Get("/health", deps.Health.Check)
	if deps.Gatherer != nil {
		r.Handle("/metrics", metrics.Handler(deps.Gatherer))
	}

	r.Route("/api", func(api chi.Router) {
		api.Use(middleware.NewClientIDMiddleware(deps.ClientCookie))
		api.Use(deps.RateLimiter.GeneralMiddleware())

		api.Route("/session", func(sr chi.Router) {
			sr.With(deps.RateLimiter.LoginMiddleware()).Post("/login", deps.Session.Login)
			sr.Post("/logout", deps.Session.Logout)
			sr.Get("/", deps.Session.Get)
		})

		api.Route("/cart", func(cr chi.Router) {
			cr.Get("/", deps.Cart.Get)
			cr.Delete("/", deps.Cart.Clear)
			cr.Post("/items", deps.Cart.AddItem)
			cr.Patch("/items/{id}", deps.Cart.UpdateQty)
			cr.Delete("/items/{id}", deps.Cart.RemoveItem)
		})

		api.Get("/kitchens", deps.Kitchen.List)

		api.Route("/theme", func(tr chi.Router) {
			tr.Get("/", deps.Theme.Get)
			tr.Put("/", deps.Theme.Put)
		})

		api.Route("/location", func(lr chi.Router) {
			lr.Get("/", deps.Location.Get)
			lr.Post("/", deps.Location.Report)
			lr.Delete("/", deps.Location.Clear)
		})
	})

	return r
}
