package middleware

import (
	"net/http"

	gorillahandlers "github.com/gorilla/handlers"
)

// CORS allows the browser client, served from another origin, to call the API.
// Credentials (the refresh cookie) are only allowed for an explicit origin.
func CORS(origin string) func(http.Handler) http.Handler {
	opts := []gorillahandlers.CORSOption{
		gorillahandlers.AllowedOrigins([]string{origin}),
		gorillahandlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions}),
		gorillahandlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	}
	if origin != "*" {
		opts = append(opts, gorillahandlers.AllowCredentials())
	}
	return gorillahandlers.CORS(opts...)
}
