// Package chi exposes the shoprank HTTP API on a chi router.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	chirouter "github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/shoprank/internal/domain"
	domcat "github.com/kailas-cloud/shoprank/internal/domain/catalog"
	activityuc "github.com/kailas-cloud/shoprank/internal/usecase/activity"
	catsvc "github.com/kailas-cloud/shoprank/internal/usecase/catalog"
	healthuc "github.com/kailas-cloud/shoprank/internal/usecase/health"
	recommenduc "github.com/kailas-cloud/shoprank/internal/usecase/recommend"
	searchuc "github.com/kailas-cloud/shoprank/internal/usecase/search"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server routes HTTP requests to the discovery and catalog services.
type Server struct {
	catalog       *catsvc.Service
	search        *searchuc.Service
	recommend     *recommenduc.Service
	activity      *activityuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	catalog *catsvc.Service,
	search *searchuc.Service,
	recommend *recommenduc.Service,
	activity *activityuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		catalog:   catalog,
		search:    search,
		recommend: recommend,
		activity:  activity,
		health:    health,
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrProductNotFound, http.StatusNotFound, CodeProductNotFound),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, CodeNotFound),
		sentinelHandler(domain.ErrAlreadyExists, http.StatusConflict, CodeAlreadyExists),
		sentinelHandler(domain.ErrInvalidInput, http.StatusBadRequest, CodeValidationFailed),
		sentinelHandler(domain.ErrRateLimited, http.StatusTooManyRequests, CodeRateLimited),
	}
	return s
}

// Mount registers all API routes on the router.
func (s *Server) Mount(r chirouter.Router) {
	r.Get("/v1/search", s.handleSearch)
	r.Get("/v1/products", s.handleListProducts)
	r.Post("/v1/products", s.handleUpsertProduct)
	r.Get("/v1/products/{id}", s.handleGetProduct)
	r.Delete("/v1/products/{id}", s.handleDeleteProduct)
	r.Get("/v1/products/{id}/similar", s.handleSimilar)
	r.Get("/v1/products/slug/{slug}", s.handleGetProductBySlug)
	r.Get("/v1/recommendations", s.handleRecommendations)
	r.Get("/v1/popular", s.handlePopular)
	r.Post("/v1/events", s.handleTrackEvent)
	r.Get("/health", s.handleHealth)
	r.Get("/metrics", s.handleMetrics)
}

// handleSearch handles GET /v1/search.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var q string
	if err := runtime.BindQueryParameter("form", true, true, "q", r.URL.Query(), &q); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "query parameter q is required")
		return
	}
	limit, ok := bindLimit(w, r)
	if !ok {
		return
	}

	products, err := s.search.Search(r.Context(), q, limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, productsToResponse(products))
}

// handleListProducts handles GET /v1/products.
func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var f domcat.Filter
	bindErrs := []error{
		runtime.BindQueryParameter("form", true, false, "text", query, &f.Text),
		runtime.BindQueryParameter("form", true, false, "price_min", query, &f.PriceMin),
		runtime.BindQueryParameter("form", true, false, "price_max", query, &f.PriceMax),
		runtime.BindQueryParameter("form", true, false, "min_rating", query, &f.MinRating),
		runtime.BindQueryParameter("form", true, false, "tags", query, &f.Tags),
		runtime.BindQueryParameter("form", true, false, "in_stock", query, &f.InStock),
		runtime.BindQueryParameter("form", true, false, "sort", query, &f.SortBy),
		runtime.BindQueryParameter("form", true, false, "asc", query, &f.Ascending),
	}
	var offset, limit int
	bindErrs = append(bindErrs,
		runtime.BindQueryParameter("form", true, false, "offset", query, &offset),
		runtime.BindQueryParameter("form", true, false, "limit", query, &limit),
	)
	for _, err := range bindErrs {
		if err != nil {
			writeError(w, http.StatusBadRequest, CodeBadRequest, "invalid query parameter: "+err.Error())
			return
		}
	}

	page, err := s.catalog.List(r.Context(), f, offset, limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ProductListResponse{
		Items:  productsToResponse(page.Products),
		Total:  page.Total,
		Offset: page.Offset,
	})
}

// handleUpsertProduct handles POST /v1/products.
func (s *Server) handleUpsertProduct(w http.ResponseWriter, r *http.Request) {
	var req UpsertProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	p, created, err := s.catalog.Upsert(r.Context(), catsvc.Input{
		ID:          req.ID,
		Slug:        req.Slug,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Tags:        req.Tags,
		Stock:       req.Stock,
		Rating:      req.Rating,
	})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, productToResponse(&p))
}

// handleGetProduct handles GET /v1/products/{id}.
func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := s.catalog.Get(r.Context(), chirouter.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, productToResponse(&p))
}

// handleGetProductBySlug handles GET /v1/products/slug/{slug}.
func (s *Server) handleGetProductBySlug(w http.ResponseWriter, r *http.Request) {
	p, err := s.catalog.GetBySlug(r.Context(), chirouter.URLParam(r, "slug"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, productToResponse(&p))
}

// handleDeleteProduct handles DELETE /v1/products/{id}.
func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := s.catalog.Delete(r.Context(), chirouter.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleSimilar handles GET /v1/products/{id}/similar.
func (s *Server) handleSimilar(w http.ResponseWriter, r *http.Request) {
	limit, ok := bindLimit(w, r)
	if !ok {
		return
	}

	products, err := s.recommend.SimilarTo(r.Context(), chirouter.URLParam(r, "id"), limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, productsToResponse(products))
}

// handleRecommendations handles GET /v1/recommendations. An absent
// user_id yields the popularity fallback.
func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	var userID string
	if err := runtime.BindQueryParameter("form", true, false, "user_id", r.URL.Query(), &userID); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "invalid user_id")
		return
	}
	limit, ok := bindLimit(w, r)
	if !ok {
		return
	}

	products, err := s.recommend.RecommendFor(r.Context(), userID, limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, productsToResponse(products))
}

// handlePopular handles GET /v1/popular.
func (s *Server) handlePopular(w http.ResponseWriter, r *http.Request) {
	limit, ok := bindLimit(w, r)
	if !ok {
		return
	}

	products, err := s.recommend.Popular(r.Context(), limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, productsToResponse(products))
}

// handleTrackEvent handles POST /v1/events.
func (s *Server) handleTrackEvent(w http.ResponseWriter, r *http.Request) {
	var req TrackEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	e, err := s.activity.Track(r.Context(), req.UserID, req.ProductID, req.Action)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, TrackEventResponse{
		ID:         e.ID(),
		OccurredAt: e.OccurredAt(),
	})
}

// handleHealth handles GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}
	writeJSON(w, httpStatus, HealthResponse{
		Status:      string(report.Status),
		Checks:      checks,
		CatalogSize: report.CatalogSize,
	})
}

// handleMetrics handles GET /metrics.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// bindLimit extracts the optional limit query parameter. The false
// return means an error response has been written.
func bindLimit(w http.ResponseWriter, r *http.Request) (int, bool) {
	var limit int
	if err := runtime.BindQueryParameter("form", true, false, "limit", r.URL.Query(), &limit); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "invalid limit")
		return 0, false
	}
	if limit < 0 {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "limit must not be negative")
		return 0, false
	}
	return limit, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrProductNotFound,
		domain.ErrNotFound,
		domain.ErrAlreadyExists,
		domain.ErrInvalidInput,
		domain.ErrRateLimited,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			s.logger.Warn("domain error", zap.Error(err))
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}
