package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// RouterConfig names the paths the two transports are mounted on.
type RouterConfig struct {
	SSEPath     string
	MessagePath string
}

// NewRouter assembles the HTTP surface: GET opens the stream transport,
// POST invokes the unary one, OPTIONS is answered by the CORS middleware,
// and anything else gets a 405.
func NewRouter(cfg RouterConfig, stream, unary http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	r.Get(cfg.SSEPath, stream.ServeHTTP)
	r.Post(cfg.MessagePath, unary.ServeHTTP)

	return r
}
