package middleware

import (
	"log/slog"
	"net/http"

	"github.com/chedi-ouerghi/shop-mobilenative/pkg/logger"
)

// RequestLogger stores a request-scoped logger in context, pre-enriched with
// the correlation ID, session ID, and active trace/span IDs. Handlers pick it
// up with logger.FromContext.
//
// Mount after RequestLogging (correlation ID) and Tracing (span context) so
// both are available for enrichment.
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if sessionID := r.Header.Get("X-Session-ID"); sessionID != "" {
				ctx = logger.WithSessionID(ctx, sessionID)
			}
			ctx = logger.NewContext(ctx, logger.WithContext(ctx, base))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
