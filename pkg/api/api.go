// Package api exposes the dealership services and the garage workflow over
// HTTP.
package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/otel/trace"

	_ "castromotors/docs"
	"castromotors/pkg/dealership"
	"castromotors/pkg/garage"
	"castromotors/pkg/httputil"
	"castromotors/pkg/logger"
	"castromotors/pkg/otel"
)

// API holds the dependencies shared by every handler.
type API struct {
	services *dealership.Services
	garage   *garage.Service
	log      *logger.Logger
	tracer   trace.Tracer
}

// New returns an API over the given services.
func New(services *dealership.Services, g *garage.Service, log *logger.Logger, tracer trace.Tracer) *API {
	return &API{services: services, garage: g, log: log, tracer: tracer}
}

// Router builds the HTTP routes.
func (a *API) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(a.traceMiddleware, a.logMiddleware)

	r.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	registerResource(a, api, "brands", "brand", a.services.Brands)
	registerResource(a, api, "cars", "car", a.services.Cars)
	registerResource(a, api, "categories", "category", a.services.Categories)
	registerResource(a, api, "orders", "order", a.services.Orders)
	registerResource(a, api, "orderitems", "order item", a.services.OrderItems)
	registerResource(a, api, "users", "user", a.services.Users)

	g := api.PathPrefix("/garage").Subrouter()
	g.HandleFunc("", a.getGarageHandler).Methods(http.MethodGet)
	g.HandleFunc("/add-to-garage", a.addToGarageHandler).Methods(http.MethodPost)
	g.HandleFunc("/remove-from-garage", a.removeFromGarageHandler).Methods(http.MethodPost)
	g.HandleFunc("/checkout", a.checkoutHandler).Methods(http.MethodPost)

	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	return r
}

// healthHandler reports liveness.
// @Summary Liveness check
// @Produce json
// @Success 200
// @Router /health [get]
func healthHandler(w http.ResponseWriter, r *http.Request) {
	httputil.JSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *API) traceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := otel.InjectTracing(r.Context(), a.tracer)
		ctx, span := otel.AddSpan(ctx, r.Method+" "+routeTemplate(r))
		defer span.End()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (a *API) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		a.log.Info(r.Context(), "HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"latency", time.Since(start).String(),
		)
	})
}

func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return r.URL.Path
}
