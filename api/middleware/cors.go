package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// Local storefront dev, the production storefront with and without www,
// and the Vercel deployment.
var defaultCORSOrigins = []string{
	"http://localhost:3000",
	"https://dfameublement.com",
	"https://www.dfameublement.com",
	"https://df-ameublement.vercel.app",
}

// CORS returns middleware that applies the storefront's allowed origin
// policy. The catalog is anonymous, so no credentials are exchanged; the
// cart token travels in a dedicated header instead.
func CORS() func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: defaultCORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Cart-Token", "X-Requested-With"},
		ExposedHeaders: []string{"X-Cart-Token"},
		MaxAge:         300,
	}).Handler
}
