package gateway

import (
	"encoding/json"
	"net/http"
	"net/http/httputil"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Config carries the gateway's own configuration: each downstream
// service's base URL and the CORS origin policy.
type Config struct {
	ServiceBaseURLs map[string]string
	CORSOrigin      string
	CORSWildcard    bool
}

// legacyPrefixes are the unversioned paths that redirect rather than
// proxy (spec §4.1, REDESIGN FLAGS #2: legacy paths redirect, never
// proxy).
var legacyPrefixes = regexp.MustCompile(`^/(auth|profiles?|discovery|media|chat|admin|notifications)(/.*)?$`)

// NewRouter builds the gateway's top-level handler: CORS, legacy
// redirects, then the route table dispatched to a per-service reverse
// proxy.
func NewRouter(cfg Config, logger *zap.Logger) (http.Handler, error) {
	table := BuildRouteTable()

	proxies := make(map[string]*httputil.ReverseProxy, len(cfg.ServiceBaseURLs))
	for name, baseURL := range cfg.ServiceBaseURLs {
		proxy, err := NewProxy(name, baseURL)
		if err != nil {
			return nil, err
		}
		proxies[name] = proxy
	}

	r := chi.NewRouter()

	allowedOrigins := []string{cfg.CORSOrigin}
	if cfg.CORSWildcard {
		allowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "Idempotency-Key", "X-Correlation-ID"},
		AllowCredentials: true,
	}))
	r.Use(WithRequestTimeout)

	healthHandler := newHealthHandler(cfg.ServiceBaseURLs)
	r.Get("/health", healthHandler)
	r.Get("/api/health", healthHandler)

	r.HandleFunc("/*", func(w http.ResponseWriter, r *http.Request) {
		if redirectTarget, ok := legacyRedirect(r.URL.Path); ok {
			target := redirectTarget + suffixQuery(r.URL.RawQuery)
			http.Redirect(w, r, target, http.StatusMovedPermanently)
			return
		}

		target, rewritten, ok := Match(table, r.URL.Path)
		if !ok {
			http.NotFound(w, r)
			return
		}
		proxy, ok := proxies[target]
		if !ok {
			logger.Error("no proxy configured for matched target", zap.String("target", target))
			http.Error(w, `{"error":{"code":"SYS_001","message":"downstream not configured"}}`, http.StatusInternalServerError)
			return
		}
		r.URL.Path = rewritten
		proxy.ServeHTTP(w, r)
	})

	return r, nil
}

// healthResponse is the shape spec §6 requires from both GET /health and
// GET /api/health: routes echoes the gateway's configured route table so
// an operator can confirm which downstream base URLs are wired in.
type healthResponse struct {
	Status  string            `json:"status"`
	Service string            `json:"service"`
	Routes  map[string]string `json:"routes"`
}

func newHealthHandler(serviceBaseURLs map[string]string) http.HandlerFunc {
	routes := make(map[string]string, len(serviceBaseURLs))
	for name, baseURL := range serviceBaseURLs {
		routes[name] = baseURL
	}
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(healthResponse{
			Status:  "healthy",
			Service: "api-gateway",
			Routes:  routes,
		})
	}
}

// legacyRedirect implements spec §4.1's two legacy redirect rules:
// unversioned service paths redirect to /v1/..., unversioned /api/*
// redirects to /api/v1/....
func legacyRedirect(path string) (string, bool) {
	if strings.HasPrefix(path, "/v1/") || path == "/v1" {
		return "", false
	}
	if strings.HasPrefix(path, "/api/") {
		if strings.HasPrefix(path, "/api/v1/") {
			return "", false
		}
		return "/api/v1" + strings.TrimPrefix(path, "/api"), true
	}
	if legacyPrefixes.MatchString(path) {
		return "/v1" + path, true
	}
	return "", false
}

func suffixQuery(rawQuery string) string {
	if rawQuery == "" {
		return ""
	}
	return "?" + rawQuery
}
