package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/ecomcore/order-service/internal/domain"
	"github.com/ecomcore/order-service/internal/observability"
)

//go:generate mockgen -source httpapi.go -destination httpapi_mock_test.go -package httpapi

type OrderService interface {
	MyOrders(ctx context.Context, userID string) ([]domain.Order, error)
	AllOrders(ctx context.Context) ([]domain.Order, error)
	GetSingleOrder(ctx context.Context, orderID string) (*domain.Order, error)
	NewOrder(ctx context.Context, in domain.NewOrderInput) (*domain.Order, error)
	ProcessOrder(ctx context.Context, orderID string) (*domain.Order, error)
	DeleteOrder(ctx context.Context, orderID string) error
}

type Server struct {
	service OrderService
	router  chi.Router
	logger  *zap.Logger
	metrics observability.Metrics
}

func New(service OrderService, logger *zap.Logger, metrics observability.Metrics) *Server {
	s := &Server{
		service: service,
		router:  chi.NewRouter(),
		logger:  logger,
		metrics: metrics,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(RequestTiming(s.metrics))
	s.router.Get("/healthz", s.health)
	s.router.Handle("/metrics", promhttp.Handler())
	s.router.Route("/api/v1/order", func(r chi.Router) {
		r.Post("/new", s.newOrder)
		r.Get("/my", s.myOrders)
		r.Get("/all", s.allOrders)
		r.Get("/{id}", s.getOrder)
		r.Put("/{id}", s.processOrder)
		r.Delete("/{id}", s.deleteOrder)
	})
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) myOrders(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("id")
	if userID == "" {
		s.writeFailure(w, http.StatusBadRequest, "user id required")
		return
	}

	orders, err := s.service.MyOrders(r.Context(), userID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Success bool           `json:"success"`
		Orders  []domain.Order `json:"orders"`
	}{true, orders})
}

func (s *Server) allOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := s.service.AllOrders(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Success bool           `json:"success"`
		Orders  []domain.Order `json:"orders"`
	}{true, orders})
}

func (s *Server) getOrder(w http.ResponseWriter, r *http.Request) {
	order, err := s.service.GetSingleOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Success bool          `json:"success"`
		Order   *domain.Order `json:"order"`
	}{true, order})
}

func (s *Server) newOrder(w http.ResponseWriter, r *http.Request) {
	ct := r.Header.Get("Content-Type")
	if !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		s.writeFailure(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var in domain.NewOrderInput
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		s.logger.Error("error while decoding JSON", zap.Error(err))
		s.writeFailure(w, http.StatusBadRequest, "bad json")
		return
	}

	if _, err := s.service.NewOrder(r.Context(), in); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeSuccess(w, http.StatusCreated, "Order Placed Successfully")
}

func (s *Server) processOrder(w http.ResponseWriter, r *http.Request) {
	if _, err := s.service.ProcessOrder(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeSuccess(w, http.StatusOK, "Order Processed Successfully")
}

func (s *Server) deleteOrder(w http.ResponseWriter, r *http.Request) {
	if err := s.service.DeleteOrder(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeSuccess(w, http.StatusOK, "Order Deleted Successfully")
}

// writeError maps the service error taxonomy onto status codes: invalid
// input and unknown ids are client errors, everything else is a repository
// failure and surfaces as a 500.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		s.writeFailure(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		s.writeFailure(w, http.StatusNotFound, "Order Not Found")
	default:
		s.logger.Error("request failed", zap.Error(err))
		s.writeFailure(w, http.StatusInternalServerError, "Internal Server Error")
	}
}

type message struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (s *Server) writeSuccess(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, message{Success: true, Message: msg})
}

func (s *Server) writeFailure(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, message{Success: false, Message: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: s.router,
	}

	go func() {
		<-ctx.Done()
		_ = srv.Shutdown(context.Background())
	}()
	return srv.ListenAndServe()
}

func (s *Server) Handler() http.Handler { return s.router }
