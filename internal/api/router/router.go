package router

import (
	"net/http"

	"github.com/RoyceAzure/lab/ordercenter/internal/api"
	m "github.com/RoyceAzure/lab/ordercenter/internal/api/middleware"
	"github.com/RoyceAzure/lab/ordercenter/internal/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

type Options struct {
	Logger  zerolog.Logger
	Metrics *metrics.Registry
	// Limiter 為 nil 時不限流
	Limiter m.Limiter
}

func SetupRouter(server *api.Server, opts Options) *chi.Mux {
	r := chi.NewRouter()

	// 全局中間件
	r.Use(m.RequestIdMiddleware)
	r.Use(middleware.RealIP)
	r.Use(m.LoggerMiddleware(opts.Logger, opts.Metrics))
	r.Use(m.RecoverMiddleware(opts.Logger))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		if opts.Limiter != nil {
			r.Use(m.NewRateLimitMiddleware(opts.Limiter))
		}

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", server.OrderHandler.GetAllOrders)
			r.Post("/", server.OrderHandler.PlaceOrder)
			// 需在 /{id} 之前註冊
			r.Get("/byDateRange", server.OrderHandler.GetOrdersByDateRange)
			r.Get("/{id}", server.OrderHandler.GetOrderByID)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", server.ProductHandler.GetAllProducts)
			r.Post("/", server.ProductHandler.CreateProduct)
			r.Get("/{id}", server.ProductHandler.GetProductByID)
			r.Put("/{id}", server.ProductHandler.UpdateProduct)
			r.Delete("/{id}", server.ProductHandler.DeleteProduct)
		})
	})

	return r
}

// Routes 列出所有已註冊的路由
func Routes(r chi.Routes) []string {
	var routes []string
	_ = chi.Walk(r, func(method string, route string, handler http.Handler, middlewares ...func(http.Handler) http.Handler) error {
		routes = append(routes, method+" "+route)
		return nil
	})
	return routes
}
