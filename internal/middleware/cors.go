package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS lets a front end served from a local dev server call the API.
var CORS = cors.Handler(cors.Options{
	AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
	AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
	AllowedHeaders:   []string{"Accept", "Content-Type"},
	ExposedHeaders:   []string{"Content-Disposition"},
	AllowCredentials: false,
	MaxAge:           300,
})
