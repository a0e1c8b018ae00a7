package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"cinevault/handlers"
)

// corsMiddleware handles CORS for API routes.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func handleOptions(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// Register mounts the catalog API onto the provided router.
func Register(
	r *mux.Router,
	filmsHandler *handlers.FilmsHandler,
	searchHandler *handlers.SearchHandler,
	statsHandler *handlers.StatsHandler,
	exportHandler *handlers.ExportHandler,
	postersHandler *handlers.PostersHandler,
	limiter *RateLimiter,
) {
	api := r.PathPrefix("/api").Subrouter()

	api.Use(corsMiddleware)
	if limiter != nil {
		api.Use(limiter.Middleware)
	}

	// The search route is registered before the {id} wildcard so that
	// "search" never resolves as a film id.
	api.HandleFunc("/films/search", searchHandler.Search).Methods(http.MethodGet)
	api.HandleFunc("/films/search", handleOptions).Methods(http.MethodOptions)

	api.HandleFunc("/films", filmsHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/films", filmsHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/films", handleOptions).Methods(http.MethodOptions)

	api.HandleFunc("/films/{id}", filmsHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/films/{id}", filmsHandler.Update).Methods(http.MethodPut)
	api.HandleFunc("/films/{id}", filmsHandler.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/films/{id}", handleOptions).Methods(http.MethodOptions)

	api.HandleFunc("/films/{id}/poster", postersHandler.Upload).Methods(http.MethodPost)
	api.HandleFunc("/films/{id}/poster", handleOptions).Methods(http.MethodOptions)

	api.HandleFunc("/stats", statsHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/stats", handleOptions).Methods(http.MethodOptions)

	api.HandleFunc("/export", exportHandler.Export).Methods(http.MethodGet)
	api.HandleFunc("/export", handleOptions).Methods(http.MethodOptions)
}
