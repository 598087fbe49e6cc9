package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/smartprop/internal/domain"
	domprop "github.com/kailas-cloud/smartprop/internal/domain/property"
	domuser "github.com/kailas-cloud/smartprop/internal/domain/user"
	logpkg "github.com/kailas-cloud/smartprop/internal/logger"
	healthuc "github.com/kailas-cloud/smartprop/internal/usecase/health"
	propertyuc "github.com/kailas-cloud/smartprop/internal/usecase/property"
	searchuc "github.com/kailas-cloud/smartprop/internal/usecase/search"
	useruc "github.com/kailas-cloud/smartprop/internal/usecase/user"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server implements ServerInterface.
type Server struct {
	users         *useruc.Service
	properties    *propertyuc.Service
	search        *searchuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

var _ ServerInterface = (*Server)(nil)

// NewServer creates an HTTP API server.
func NewServer(
	users *useruc.Service,
	properties *propertyuc.Service,
	search *searchuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		users:      users,
		properties: properties,
		search:     search,
		health:     health,
		logger:     logger,
	}
	s.errorHandlers = []errorHandler{
		invalidInputHandler,
		sentinelHandler(domain.ErrUserNotFound, http.StatusNotFound, ErrorResponseCodeUserNotFound),
		sentinelHandler(domain.ErrPropertyNotFound, http.StatusNotFound, ErrorResponseCodePropertyNotFound),
	}
	return s
}

// ListUsers handles GET /users.
func (s *Server) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.List(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items := make([]map[string]any, len(users))
	for i, u := range users {
		items[i] = userToWire(u)
	}
	writeJSON(w, http.StatusOK, UsersResponse{Users: items})
}

// GetUser handles GET /users/{id}.
func (s *Server) GetUser(w http.ResponseWriter, r *http.Request, id UserID) {
	u, err := s.users.Get(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, UserResponse{User: userToWire(u)})
}

// ListProperties handles GET /properties.
func (s *Server) ListProperties(w http.ResponseWriter, r *http.Request) {
	props, err := s.properties.List(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, PropertiesResponse{Properties: propertiesToWire(props)})
}

// GetProperty handles GET /properties/{id}.
func (s *Server) GetProperty(w http.ResponseWriter, r *http.Request, id PropertyID) {
	p, err := s.properties.Get(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, PropertyResponse{Property: propertyToWire(p)})
}

// Search handles POST /search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	term, ok := req.SearchTerm.(string)
	if !ok {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeInvalidInput, "searchTerm must be a string")
		return
	}

	res, err := s.search.Search(r.Context(), term)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, SearchResponse{
		Properties: propertiesToWire(res.Properties),
		Filter:     res.Filter,
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
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
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// ParamErrorHandler answers path parameter binding failures.
func ParamErrorHandler(w http.ResponseWriter, _ *http.Request, err error) {
	var pe *InvalidParamFormatError
	msg := "invalid request"
	if errors.As(err, &pe) {
		msg = "invalid " + pe.ParamName + " parameter"
	}
	writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, msg)
}

func userToWire(u domuser.Record) map[string]any {
	return map[string]any(u)
}

func propertyToWire(p domprop.Record) map[string]any {
	return map[string]any(p)
}

func propertiesToWire(props []domprop.Record) []map[string]any {
	out := make([]map[string]any, len(props))
	for i, p := range props {
		out[i] = propertyToWire(p)
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorResponseCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func sentinelHandler(sentinel error, status int, code ErrorResponseCode) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, sentinel.Error())
		return true
	}
}

// invalidInputHandler reports the reason carried by InvalidInputError.
func invalidInputHandler(w http.ResponseWriter, err error) bool {
	if !errors.Is(err, domain.ErrInvalidInput) {
		return false
	}
	msg := domain.ErrInvalidInput.Error()
	var ie *domain.InvalidInputError
	if errors.As(err, &ie) {
		msg = ie.Error()
	}
	writeError(w, http.StatusBadRequest, ErrorResponseCodeInvalidInput, msg)
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logpkg.FromContextOr(r.Context(), s.logger)
	for _, h := range s.errorHandlers {
		if h(w, err) {
			log.Warn("domain error", zap.Error(err))
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorResponseCodeInternalError, "internal error")
}
