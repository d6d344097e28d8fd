package rpc_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/mcpgate/mcpgate/internal/rpc"
)

func TestErrorResponseCarriesExplicitNullID(t *testing.T) {
	resp := rpc.NewErrorResponse(nil, rpc.CodeInvalidRequest, "invalid")

	bs, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if !strings.Contains(string(bs), `"id":null`) {
		t.Errorf("serialized response %s lacks explicit null id", bs)
	}
	if strings.Contains(string(bs), `"result"`) {
		t.Errorf("error response %s carries a result", bs)
	}
}

func TestRequestIDRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		body string
		want any
	}{
		{"number", `{"jsonrpc":"2.0","id":7,"method":"ping"}`, float64(7)},
		{"string", `{"jsonrpc":"2.0","id":"abc","method":"ping"}`, "abc"},
		{"null", `{"jsonrpc":"2.0","id":null,"method":"ping"}`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req rpc.Request
			if err := json.Unmarshal([]byte(tt.body), &req); err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}
			if req.ID != tt.want {
				t.Errorf("got id %v (%T), want %v", req.ID, req.ID, tt.want)
			}
		})
	}
}

func TestErrorImplementsError(t *testing.T) {
	e := &rpc.Error{Code: rpc.CodeMethodNotFound, Message: "method not found: nope"}
	if !strings.Contains(e.Error(), "-32601") {
		t.Errorf("error string %q lacks the code", e.Error())
	}
}
