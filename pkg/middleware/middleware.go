package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/eisenhub/catalog/pkg/composables"
	"github.com/eisenhub/catalog/pkg/configuration"
)

// ProvidePool puts the database pool into every request context.
func ProvidePool(pool *pgxpool.Pool) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(composables.WithPool(r.Context(), pool)))
		})
	}
}

// ProvideTenant resolves the tenant from the configured header. Requests
// without a valid tenant id are rejected; every catalog table is
// tenant-scoped.
func ProvideTenant() mux.MiddlewareFunc {
	conf := configuration.Use()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(conf.TenantIDHeader)
			tenantID, err := uuid.Parse(raw)
			if err != nil {
				http.Error(w, "missing or invalid tenant id", http.StatusBadRequest)
				return
			}
			next.ServeHTTP(w, r.WithContext(composables.WithTenantID(r.Context(), tenantID)))
		})
	}
}

// ProvideUser resolves the acting user from the configured header. The id is
// only used for audit columns; requests without one proceed as user 0.
func ProvideUser() mux.MiddlewareFunc {
	conf := configuration.Use()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := strconv.ParseUint(r.Header.Get(conf.UserIDHeader), 10, 64)
			if err != nil {
				userID = 0
			}
			next.ServeHTTP(w, r.WithContext(composables.WithUserID(r.Context(), uint(userID))))
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Status() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

// LogRequests attaches a request-scoped logger to the context and logs one
// line per request with duration and status.
func LogRequests(logger *logrus.Logger) mux.MiddlewareFunc {
	conf := configuration.Use()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(conf.RequestIDHeader)
			if requestID == "" {
				requestID = uuid.New().String()
			}

			entry := logger.WithFields(logrus.Fields{
				"requestId": requestID,
				"method":    r.Method,
				"path":      r.URL.Path,
			})
			ctx := composables.WithLogger(r.Context(), entry)
			ctx = composables.WithRequestID(ctx, requestID)

			sw := &statusWriter{ResponseWriter: w}
			start := time.Now()
			next.ServeHTTP(sw, r.WithContext(ctx))
			entry.WithFields(logrus.Fields{
				"status":   sw.Status(),
				"duration": time.Since(start).String(),
			}).Info("request completed")
		})
	}
}
