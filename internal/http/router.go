package httpserver

import (
	"net/http"

	"chargeops/internal/http/middleware"
)

// RouterDeps collects handler dependencies.
type RouterDeps struct {
	SessionsHandler  http.Handler
	EmployeesHandler http.Handler
	LoginHandler     http.HandlerFunc
	ReportsHandler   http.HandlerFunc
	EventsHandler    http.HandlerFunc
	HealthHandler    http.HandlerFunc
}

// NewRouter wires HTTP routes with middleware. Everything under /api except
// login and the event feed requires a bearer token.
func NewRouter(deps RouterDeps, authMiddleware func(http.Handler) http.Handler) http.Handler {
	mux := http.NewServeMux()

	protected := func(handler http.Handler) http.Handler {
		return middleware.Chain(handler, authMiddleware)
	}

	mux.Handle("/health", method(http.MethodGet, deps.HealthHandler))
	mux.Handle("/api/auth/login", method(http.MethodPost, deps.LoginHandler))

	mux.Handle("/api/sessions", protected(deps.SessionsHandler))
	mux.Handle("/api/employees", protected(deps.EmployeesHandler))
	mux.Handle("/api/reports/summary", method(http.MethodGet, protected(deps.ReportsHandler)))

	if deps.EventsHandler != nil {
		mux.Handle("/api/events", method(http.MethodGet, deps.EventsHandler))
	}

	return middleware.CORS(mux)
}

func method(expected string, handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != expected {
			w.Header().Set("Allow", expected)
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		handler.ServeHTTP(w, r)
	})
}
