package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"

	"github.com/cafekiosk/kiosk/internal/config"
	"github.com/cafekiosk/kiosk/internal/http/metric"
	"github.com/cafekiosk/kiosk/internal/http/middleware"
	"github.com/cafekiosk/kiosk/internal/http/swagger"
	"github.com/cafekiosk/kiosk/internal/service"
	"github.com/cafekiosk/kiosk/pkg/validator"
)

var tracer = otel.Tracer("internal/http")

// Service represents the HTTP service.
type Service struct {
	cfg     config.HTTP
	logger  *slog.Logger
	metrics *metric.Metrics

	handler *handler
}

type CleanupFunc func(ctx context.Context) error

func New(
	cfg config.HTTP,
	log *slog.Logger,
	v validator.Validator,
	productSvc service.ProductService,
	orderSvc service.OrderService,
) *Service {
	logger := log.With(slog.String("service", "http"))

	return &Service{
		cfg:     cfg,
		logger:  logger,
		metrics: metric.New(),
		handler: newHandler(logger, v, productSvc, orderSvc),
	}
}

func (s *Service) Run(ctx context.Context) (CleanupFunc, error) {
	r := chi.NewRouter()
	s.RegisterMiddlewares(r)

	if s.cfg.Swagger {
		swagger.Register(r)
	}

	s.RegisterHandlers(r)

	return s.RunWithServer(ctx, r)
}

func (s *Service) RunWithServer(ctx context.Context, handler http.Handler) (CleanupFunc, error) {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           handler,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 16, // 64 KB
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			panic(err)
		}
	}()

	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}, nil
}

func (s *Service) RegisterMiddlewares(r chi.Router) {
	r.Use(
		middleware.Recoverer(s.logger),
		middleware.Trace(tracer),
		middleware.Metrics(s.metrics),
		middleware.CorrelationID(),
		middleware.Cors(),
		middleware.Logging(s.logger),
	)
}

func (s *Service) RegisterHandlers(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/products", s.handler.CreateProduct)
		r.Get("/products/selling", s.handler.ListSellingProducts)
		r.Post("/orders", s.handler.CreateOrder)
	})

	r.Handle(middleware.MetricsPath, promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{
		ErrorLog: log.Default(),
	}))
}

// handler carries the API handlers and their shared response plumbing.
type handler struct {
	logger    *slog.Logger
	validator validator.Validator

	productSvc service.ProductService
	orderSvc   service.OrderService
}

func newHandler(
	logger *slog.Logger,
	v validator.Validator,
	productSvc service.ProductService,
	orderSvc service.OrderService,
) *handler {
	return &handler{
		logger:     logger,
		validator:  v,
		productSvc: productSvc,
		orderSvc:   orderSvc,
	}
}

func (h *handler) respondJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.ErrorContext(r.Context(), "error encoding response",
			slog.Any("error", err))
	}
}
