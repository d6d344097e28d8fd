package transport

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/mcpgate/mcpgate/internal/dispatch"
	"github.com/mcpgate/mcpgate/internal/rpc"
)

// Unary is the synchronous request/response transport: one JSON-RPC request
// per POST, one envelope back, no connection state.
type Unary struct {
	dispatcher *dispatch.Dispatcher
	logger     *slog.Logger
}

// NewUnary creates the unary transport over the given dispatcher.
func NewUnary(dispatcher *dispatch.Dispatcher, logger *slog.Logger) *Unary {
	if logger == nil {
		logger = slog.Default()
	}
	return &Unary{
		dispatcher: dispatcher,
		logger:     logger.With(slog.String("component", "unary")),
	}
}

// Handler returns the POST handler. A body that does not decode into a
// request is answered with the invalid-request envelope rather than an HTTP
// failure; callers always get exactly one parseable JSON-RPC response.
func (u *Unary) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpc.Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			u.logger.Warn("failed to decode request body", "err", err)
			writeResponse(w, u.logger, rpc.NewErrorResponse(nil, rpc.CodeInvalidRequest, "invalid request body"))
			return
		}

		ctx := dispatch.ContextWithSessionID(r.Context(), r.URL.Query().Get("sessionID"))
		writeResponse(w, u.logger, u.dispatcher.Dispatch(ctx, req))
	})
}

func writeResponse(w http.ResponseWriter, logger *slog.Logger, resp rpc.Response) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Error("failed to write response", "err", err)
	}
}
