package server

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/videohub/videohub/internal/shared"
)

// allowedHeaders mirrors the header list the original dashboard proxy allowed.
const allowedHeaders = "X-CSRF-Token, X-Requested-With, Accept, Accept-Version, Content-Length, Content-MD5, Content-Type, Date, X-Api-Version, Authorization"

// CORS permits all origins and answers nothing beyond the headers; the
// dashboard frontend is served from a different origin than this API.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET,OPTIONS,POST")
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		next.ServeHTTP(w, r)
	})
}

// RequestLogger logs one line per request with a generated request id and duration.
func RequestLogger(logger *log.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := shared.GenerateID()

			next.ServeHTTP(w, r)

			logger.Info("request",
				"id", requestID,
				"method", r.Method,
				"path", r.URL.Path,
				"duration", time.Since(start),
			)
		})
	}
}

// Recover converts a panicking handler into a generic 500 JSON error.
//
// The whole request, including the per-row mapping loop, shares one failure
// domain: there is no partial success.
func Recover(logger *log.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("handler panic", "path", r.URL.Path, "panic", rec)
					writeJSON(w, http.StatusInternalServerError, errorBody{
						Status:  "error",
						Message: "internal server error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
