package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS allows the browser front-end to call the API. A single "*" entry
// reflects any origin.
func CORS(allowOrigins []string) func(http.Handler) http.Handler {
	opts := cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", HeaderCorrelationID},
		ExposedHeaders: []string{HeaderCorrelationID},
		MaxAge:         300,
	}
	if len(allowOrigins) == 1 && allowOrigins[0] == "*" {
		opts.AllowOriginFunc = func(string) bool { return true }
	} else {
		opts.AllowedOrigins = allowOrigins
	}
	return cors.New(opts).Handler
}
