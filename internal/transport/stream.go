// Package transport contains the two delivery mechanisms for the dispatcher:
// a push-only SSE stream and a unary request/response POST endpoint, plus the
// HTTP surface that mounts them.
package transport

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/tmaxmax/go-sse"

	"github.com/mcpgate/mcpgate/internal/dispatch"
	"github.com/mcpgate/mcpgate/internal/rpc"
)

// StreamConfig holds the stream transport's tunables.
type StreamConfig struct {
	// MessagePath is the unary endpoint announced to the client in the
	// opening endpoint event.
	MessagePath string

	// PingInterval is the period of the keep-alive comment.
	PingInterval time.Duration

	// ExecutionCeiling is the hosting platform's hard per-connection
	// limit; the stream announces timeout and closes ShutdownMargin
	// before it.
	ExecutionCeiling time.Duration
	ShutdownMargin   time.Duration

	Logger *slog.Logger
}

// Stream is the push-only SSE transport. Each connection gets the endpoint
// announcement and the initialize handshake immediately, then keep-alive
// comments until the client disconnects or the execution ceiling nears.
//
// Inbound JSON-RPC never arrives over this channel; clients send requests to
// the unary endpoint instead.
type Stream struct {
	dispatcher *dispatch.Dispatcher
	cfg        StreamConfig
	logger     *slog.Logger
}

type endpointParams struct {
	URI string `json:"uri"`
}

type endpointNotification struct {
	JSONRPC string         `json:"jsonrpc"`
	Method  string         `json:"method"`
	Params  endpointParams `json:"params"`
}

type closeParams struct {
	Reason string `json:"reason"`
}

// NewStream creates the stream transport over the given dispatcher.
func NewStream(dispatcher *dispatch.Dispatcher, cfg StreamConfig) *Stream {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Stream{
		dispatcher: dispatcher,
		cfg:        cfg,
		logger:     logger.With(slog.String("component", "stream")),
	}
}

// Handler returns the GET handler that upgrades the connection to SSE and
// runs it until a terminal event.
func (s *Stream) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := sse.Upgrade(w, r)
		if err != nil {
			s.logger.Error("failed to upgrade session", "err", err)
			http.Error(w, fmt.Sprintf("failed to upgrade session: %v", err), http.StatusInternalServerError)
			return
		}

		connID := uuid.New().String()
		openedAt := time.Now()
		logger := s.logger.With(slog.String("connectionID", connID))
		logger.Info("stream opened")

		if err := s.sendHandshake(sess); err != nil {
			logger.Error("failed to send handshake", "err", err)
			return
		}

		s.run(r, sess, logger, openedAt)
	})
}

// sendHandshake pushes the endpoint announcement and the initialize result
// before the client has sent anything. The synthetic id 0 stands in for the
// request id the client never got to choose.
func (s *Stream) sendHandshake(sess *sse.Session) error {
	endpoint, err := json.Marshal(endpointNotification{
		JSONRPC: rpc.Version,
		Method:  "endpoint",
		Params:  endpointParams{URI: s.cfg.MessagePath},
	})
	if err != nil {
		return fmt.Errorf("marshal endpoint event: %w", err)
	}
	if err := sendEvent(sess, "endpoint", endpoint); err != nil {
		return fmt.Errorf("send endpoint event: %w", err)
	}

	initialize, err := json.Marshal(rpc.NewResponse(0, s.dispatcher.InitializeResult()))
	if err != nil {
		return fmt.Errorf("marshal initialize result: %w", err)
	}
	if err := sendEvent(sess, "message", initialize); err != nil {
		return fmt.Errorf("send initialize result: %w", err)
	}

	return nil
}

// run owns the connection's two timers. The single select loop is the only
// place teardown happens, so whichever terminal event fires first wins and
// the other can never fire afterwards.
func (s *Stream) run(r *http.Request, sess *sse.Session, logger *slog.Logger, openedAt time.Time) {
	pings := time.NewTicker(s.cfg.PingInterval)
	defer pings.Stop()

	deadline := time.NewTimer(s.cfg.ExecutionCeiling - s.cfg.ShutdownMargin)
	defer deadline.Stop()

	for {
		select {
		case <-r.Context().Done():
			logger.Info("client disconnected", "age", time.Since(openedAt))
			return
		case <-deadline.C:
			data, err := json.Marshal(closeParams{Reason: "timeout"})
			if err != nil {
				logger.Error("marshal close event", "err", err)
				return
			}
			if err := sendEvent(sess, "close", data); err != nil {
				logger.Warn("failed to send close event", "err", err)
			}
			logger.Info("stream closed before execution ceiling", "age", time.Since(openedAt))
			return
		case now := <-pings.C:
			if err := sendComment(sess, fmt.Sprintf("ping %d", now.UnixMilli())); err != nil {
				logger.Warn("keep-alive write failed, closing stream", "err", err)
				return
			}
		}
	}
}

func sendEvent(sess *sse.Session, typ string, data []byte) error {
	msg := &sse.Message{Type: sse.Type(typ)}
	msg.AppendData(string(data))
	if err := sess.Send(msg); err != nil {
		return err
	}
	return sess.Flush()
}

func sendComment(sess *sse.Session, comment string) error {
	msg := &sse.Message{}
	msg.AppendComment(comment)
	if err := sess.Send(msg); err != nil {
		return err
	}
	return sess.Flush()
}
