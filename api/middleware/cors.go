package middleware

import (
	"net/http"

	"github.com/go-chi/cors"

	"github.com/GESTIONMAX/my-vision-connect-sub001/pkg/config"
)

var defaultCORSOrigins = []string{
	"http://localhost:3000",                // storefront dev server
	"http://localhost:5173",                // vite preview
	"https://my-vision-connect.vercel.app", // storefront deployment
}

// CORS returns middleware that applies the storefront's allowed origin policy.
func CORS(cfg config.CORSConfig) func(http.Handler) http.Handler {
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = defaultCORSOrigins
	}
	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Shopper-Id", "X-Requested-With"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}
