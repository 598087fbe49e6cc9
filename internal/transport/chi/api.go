package chi

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// ErrorResponseCode is the machine-readable error code in ErrorResponse.
type ErrorResponseCode string

// Error codes returned by the API.
const (
	ErrorResponseCodeBadRequest       ErrorResponseCode = "bad_request"
	ErrorResponseCodeInvalidInput     ErrorResponseCode = "invalid_input"
	ErrorResponseCodeUserNotFound     ErrorResponseCode = "user_not_found"
	ErrorResponseCodePropertyNotFound ErrorResponseCode = "property_not_found"
	ErrorResponseCodeInternalError    ErrorResponseCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorResponseCode `json:"code"`
	Message string            `json:"message"`
}

// SearchRequest is the body of POST /search. SearchTerm is decoded loosely
// so a non-string value can be reported as invalid input.
type SearchRequest struct {
	SearchTerm any `json:"searchTerm"`
}

// SearchResponse is the body of a successful POST /search.
type SearchResponse struct {
	Properties []map[string]any `json:"properties"`
	Filter     any              `json:"filter"`
}

// UsersResponse is the body of GET /users.
type UsersResponse struct {
	Users []map[string]any `json:"users"`
}

// UserResponse is the body of GET /users/{id}.
type UserResponse struct {
	User map[string]any `json:"user"`
}

// PropertyResponse is the body of GET /properties/{id}.
type PropertyResponse struct {
	Property map[string]any `json:"property"`
}

// PropertiesResponse is the body of GET /properties.
type PropertiesResponse struct {
	Properties []map[string]any `json:"properties"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// UserID is the {id} path parameter of GET /users/{id}.
type UserID = string

// PropertyID is the {id} path parameter of GET /properties/{id}.
type PropertyID = string

// ServerInterface is the set of handlers mounted by HandlerWithOptions.
type ServerInterface interface {
	// (GET /users)
	ListUsers(w http.ResponseWriter, r *http.Request)
	// (GET /users/{id})
	GetUser(w http.ResponseWriter, r *http.Request, id UserID)
	// (GET /properties)
	ListProperties(w http.ResponseWriter, r *http.Request)
	// (GET /properties/{id})
	GetProperty(w http.ResponseWriter, r *http.Request, id PropertyID)
	// (POST /search)
	Search(w http.ResponseWriter, r *http.Request)
	// (GET /health)
	HealthCheck(w http.ResponseWriter, r *http.Request)
	// (GET /metrics)
	Metrics(w http.ResponseWriter, r *http.Request)
}

// InvalidParamFormatError reports a path parameter that failed to bind.
type InvalidParamFormatError struct {
	ParamName string
	Err       error
}

func (e *InvalidParamFormatError) Error() string {
	return fmt.Sprintf("Invalid format for parameter %s: %s", e.ParamName, e.Err.Error())
}

func (e *InvalidParamFormatError) Unwrap() error { return e.Err }

// ChiServerOptions configures HandlerWithOptions.
type ChiServerOptions struct {
	BaseURL          string
	BaseRouter       chi.Router
	Middlewares      []func(http.Handler) http.Handler
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

// HandlerWithOptions mounts si on the router in options.
func HandlerWithOptions(si ServerInterface, options ChiServerOptions) http.Handler {
	r := options.BaseRouter
	if r == nil {
		r = chi.NewRouter()
	}
	if options.ErrorHandlerFunc == nil {
		options.ErrorHandlerFunc = func(w http.ResponseWriter, _ *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
	}
	wrapper := serverInterfaceWrapper{
		handler:          si,
		middlewares:      options.Middlewares,
		errorHandlerFunc: options.ErrorHandlerFunc,
	}

	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/users", wrapper.ListUsers)
		r.Get(options.BaseURL+"/users/{id}", wrapper.GetUser)
		r.Get(options.BaseURL+"/properties", wrapper.ListProperties)
		r.Get(options.BaseURL+"/properties/{id}", wrapper.GetProperty)
		r.Post(options.BaseURL+"/search", wrapper.Search)
		r.Get(options.BaseURL+"/health", wrapper.HealthCheck)
		r.Get(options.BaseURL+"/metrics", wrapper.Metrics)
	})

	return r
}

type serverInterfaceWrapper struct {
	handler          ServerInterface
	middlewares      []func(http.Handler) http.Handler
	errorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

func (siw *serverInterfaceWrapper) serve(w http.ResponseWriter, r *http.Request, h http.Handler) {
	for _, middleware := range siw.middlewares {
		h = middleware(h)
	}
	h.ServeHTTP(w, r)
}

func (siw *serverInterfaceWrapper) ListUsers(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, http.HandlerFunc(siw.handler.ListUsers))
}

func (siw *serverInterfaceWrapper) GetUser(w http.ResponseWriter, r *http.Request) {
	var id UserID

	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		siw.errorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "id", Err: err})
		return
	}

	siw.serve(w, r, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		siw.handler.GetUser(w, r, id)
	}))
}

func (siw *serverInterfaceWrapper) ListProperties(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, http.HandlerFunc(siw.handler.ListProperties))
}

func (siw *serverInterfaceWrapper) GetProperty(w http.ResponseWriter, r *http.Request) {
	var id PropertyID

	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		siw.errorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "id", Err: err})
		return
	}

	siw.serve(w, r, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		siw.handler.GetProperty(w, r, id)
	}))
}

func (siw *serverInterfaceWrapper) Search(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, http.HandlerFunc(siw.handler.Search))
}

func (siw *serverInterfaceWrapper) HealthCheck(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, http.HandlerFunc(siw.handler.HealthCheck))
}

func (siw *serverInterfaceWrapper) Metrics(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, http.HandlerFunc(siw.handler.Metrics))
}
