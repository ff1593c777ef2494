package middleware

import (
	"net/http"
	"os"
	"strings"

	"github.com/rs/cors"
)

// Cors allows the origins listed in CORS_ALLOWED_ORIGINS (comma
// separated). An empty list allows every origin, which suits local
// development.
func Cors() func(http.Handler) http.Handler {
	options := cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
		},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}

	if s := os.Getenv("CORS_ALLOWED_ORIGINS"); s != "" {
		for _, origin := range strings.Split(s, ",") {
			options.AllowedOrigins = append(options.AllowedOrigins, strings.TrimSpace(origin))
		}
	} else {
		options.AllowOriginFunc = func(origin string) bool {
			return true
		}
	}

	return cors.New(options).Handler
}
