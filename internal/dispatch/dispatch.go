// Package dispatch implements the JSON-RPC method dispatcher shared by both
// transports. Dispatch is a pure function of the request and the registries
// it was constructed with; it never panics and never returns anything other
// than a well-formed response envelope.
package dispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mcpgate/mcpgate/internal/resource"
	"github.com/mcpgate/mcpgate/internal/rpc"
	"github.com/mcpgate/mcpgate/internal/session"
	"github.com/mcpgate/mcpgate/internal/tool"
)

// Info identifies the server in the initialize handshake.
type Info struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Capabilities declares what this server supports. Both keys are always
// present in the handshake, even when empty.
type Capabilities struct {
	Tools     struct{} `json:"tools"`
	Resources struct{} `json:"resources"`
}

// InitializeResult is the initialize handshake payload.
type InitializeResult struct {
	ProtocolVersion string       `json:"protocolVersion"`
	ServerInfo      Info         `json:"serverInfo"`
	Capabilities    Capabilities `json:"capabilities"`
}

// Content is one block of textual tool output.
type Content struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// CallToolResult carries a tool invocation's outcome. IsError marks a
// business-level failure; the envelope around it is still a success.
type CallToolResult struct {
	Content []Content `json:"content"`
	IsError bool      `json:"isError"`
}

// ListToolsResult is the tools/list payload.
type ListToolsResult struct {
	Tools []tool.Descriptor `json:"tools"`
}

// ListResourcesResult is the resources/list payload.
type ListResourcesResult struct {
	Resources []resource.Descriptor `json:"resources"`
}

// ReadResourceResult is the resources/read payload.
type ReadResourceResult struct {
	Contents []resource.Contents `json:"contents"`
}

type callToolParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

type readResourceParams struct {
	URI string `json:"uri"`
}

// toolErrorPayload is the text body embedded in a failed tool call. The
// error flag and stable code let callers tell a business failure apart from
// a transport one.
type toolErrorPayload struct {
	Error   bool   `json:"error"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ToolErrorCode is the stable code carried by embedded tool failures.
const ToolErrorCode = "TOOL_ERROR"

// An outcome is the dispatcher-internal result of routing one request.
// Only a protocol failure maps to a response-level error; a tool failure
// becomes a successful envelope with an embedded failure marker.
type outcome struct {
	kind    outcomeKind
	value   any
	code    int
	message string
}

type outcomeKind int

const (
	outcomeOK outcomeKind = iota
	outcomeToolFailure
	outcomeProtocolFailure
)

func ok(value any) outcome {
	return outcome{kind: outcomeOK, value: value}
}

func toolFailure(message string) outcome {
	return outcome{kind: outcomeToolFailure, message: message}
}

func protocolFailure(code int, message string) outcome {
	return outcome{kind: outcomeProtocolFailure, code: code, message: message}
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the dispatcher's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger.With(slog.String("component", "dispatch"))
	}
}

// Dispatcher routes JSON-RPC requests to the tool and resource registries.
// It holds no per-request state, so one instance serves both transports
// concurrently.
type Dispatcher struct {
	info      Info
	tools     *tool.Registry
	resources *resource.Registry
	sessions  *session.Store
	logger    *slog.Logger
}

// New creates a dispatcher over the given registries and session store.
func New(info Info, tools *tool.Registry, resources *resource.Registry, sessions *session.Store, options ...Option) *Dispatcher {
	d := &Dispatcher{
		info:      info,
		tools:     tools,
		resources: resources,
		sessions:  sessions,
		logger:    slog.Default(),
	}
	for _, opt := range options {
		opt(d)
	}
	return d
}

// InitializeResult returns the handshake payload. The stream transport
// pushes it proactively; the initialize method returns the same value.
func (d *Dispatcher) InitializeResult() InitializeResult {
	return InitializeResult{
		ProtocolVersion: rpc.ProtocolVersion,
		ServerInfo:      d.info,
	}
}

// Dispatch validates, routes, and answers a single request. Every failure
// mode is converted into an envelope; nothing escapes as a panic or error.
func (d *Dispatcher) Dispatch(ctx context.Context, req rpc.Request) (resp rpc.Response) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("panic during dispatch", "method", req.Method, "panic", r)
			resp = rpc.NewErrorResponse(req.ID, rpc.CodeInternalError, fmt.Sprintf("internal error: %v", r))
		}
	}()

	if req.JSONRPC != rpc.Version {
		return rpc.NewErrorResponse(nil, rpc.CodeInvalidRequest, "invalid or missing jsonrpc version")
	}

	out := d.route(ctx, req)

	switch out.kind {
	case outcomeProtocolFailure:
		d.logger.Debug("request failed", "method", req.Method, "code", out.code, "err", out.message)
		return rpc.NewErrorResponse(req.ID, out.code, out.message)
	case outcomeToolFailure:
		payload, err := json.Marshal(toolErrorPayload{
			Error:   true,
			Code:    ToolErrorCode,
			Message: out.message,
		})
		if err != nil {
			return rpc.NewErrorResponse(req.ID, rpc.CodeInternalError, err.Error())
		}
		return rpc.NewResponse(req.ID, CallToolResult{
			Content: []Content{{Type: "text", Text: string(payload)}},
			IsError: true,
		})
	default:
		return rpc.NewResponse(req.ID, out.value)
	}
}

func (d *Dispatcher) route(ctx context.Context, req rpc.Request) outcome {
	switch req.Method {
	case rpc.MethodInitialize:
		return ok(d.InitializeResult())
	case rpc.MethodToolsList:
		return ok(ListToolsResult{Tools: d.tools.List()})
	case rpc.MethodToolsCall:
		return d.callTool(ctx, req.Params)
	case rpc.MethodResourcesList:
		return ok(ListResourcesResult{Resources: d.resources.List()})
	case rpc.MethodResourcesRead:
		return d.readResource(req.Params)
	case rpc.MethodNotificationsInitialized, rpc.MethodPing:
		return ok(struct{}{})
	default:
		return protocolFailure(rpc.CodeMethodNotFound, fmt.Sprintf("method not found: %s", req.Method))
	}
}

func (d *Dispatcher) callTool(ctx context.Context, raw json.RawMessage) outcome {
	if len(raw) == 0 {
		return protocolFailure(rpc.CodeInvalidParams, "missing tools/call parameters")
	}
	var params callToolParams
	if err := json.Unmarshal(raw, &params); err != nil {
		return protocolFailure(rpc.CodeInvalidParams, fmt.Sprintf("invalid tools/call parameters: %v", err))
	}
	if params.Name == "" {
		return protocolFailure(rpc.CodeInvalidParams, "missing tool name")
	}
	if params.Arguments == nil {
		params.Arguments = map[string]any{}
	}

	sess := d.sessions.GetOrCreate(SessionIDFromContext(ctx))

	result, err := d.tools.Call(ctx, params.Name, params.Arguments, sess)
	if err != nil {
		d.logger.Info("tool reported failure", "tool", params.Name, "err", err)
		return toolFailure(err.Error())
	}

	return ok(CallToolResult{
		Content: []Content{{Type: "text", Text: result}},
	})
}

func (d *Dispatcher) readResource(raw json.RawMessage) outcome {
	if len(raw) == 0 {
		return protocolFailure(rpc.CodeInvalidParams, "missing resources/read parameters")
	}
	var params readResourceParams
	if err := json.Unmarshal(raw, &params); err != nil {
		return protocolFailure(rpc.CodeInvalidParams, fmt.Sprintf("invalid resources/read parameters: %v", err))
	}
	if params.URI == "" {
		return protocolFailure(rpc.CodeInvalidParams, "missing resource uri")
	}

	contents, found := d.resources.Read(params.URI)
	if !found {
		return protocolFailure(rpc.CodeInvalidParams, fmt.Sprintf("resource not found: %s", params.URI))
	}

	return ok(ReadResourceResult{Contents: []resource.Contents{contents}})
}
