// Package rpc defines the JSON-RPC 2.0 envelope types and the fixed set of
// method names and error codes the gateway speaks. Both transports and the
// dispatcher share these types so the wire shape is defined in exactly one
// place.
package rpc

import (
	"encoding/json"
	"fmt"
)

// Version is the JSON-RPC protocol version tag. Every request must carry it
// verbatim and every response echoes it.
const Version = "2.0"

// ProtocolVersion identifies the MCP protocol revision this gateway
// implements, reported from the initialize handshake.
const ProtocolVersion = "2024-11-05"

// Method names routed by the dispatcher. The set is closed; anything else
// fails with CodeMethodNotFound.
const (
	MethodInitialize               = "initialize"
	MethodToolsList                = "tools/list"
	MethodToolsCall                = "tools/call"
	MethodResourcesList            = "resources/list"
	MethodResourcesRead            = "resources/read"
	MethodNotificationsInitialized = "notifications/initialized"
	MethodPing                     = "ping"
)

// Standard JSON-RPC 2.0 error codes.
const (
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

// Request is an incoming JSON-RPC request. ID may be a string, a number, or
// null; it is echoed verbatim in the response. Params stays raw until the
// routed handler knows what shape to expect.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      any             `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// Response is an outgoing JSON-RPC response. Exactly one of Result or Error
// is populated. ID is always serialized, null included, so malformed-request
// responses carry an explicit null id.
type Response struct {
	JSONRPC string `json:"jsonrpc"`
	ID      any    `json:"id"`
	Result  any    `json:"result,omitempty"`
	Error   *Error `json:"error,omitempty"`
}

// Error is the JSON-RPC error object carried by failed responses.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("jsonrpc error %d: %s", e.Code, e.Message)
}

// NewResponse builds a success envelope echoing the request id.
func NewResponse(id, result any) Response {
	return Response{
		JSONRPC: Version,
		ID:      id,
		Result:  result,
	}
}

// NewErrorResponse builds a failure envelope echoing the request id.
func NewErrorResponse(id any, code int, message string) Response {
	return Response{
		JSONRPC: Version,
		ID:      id,
		Error:   &Error{Code: code, Message: message},
	}
}
