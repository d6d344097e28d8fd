package transport_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/mcpgate/mcpgate/internal/dispatch"
	"github.com/mcpgate/mcpgate/internal/resource"
	"github.com/mcpgate/mcpgate/internal/session"
	"github.com/mcpgate/mcpgate/internal/tool"
)

func newTestDispatcher(t *testing.T) *dispatch.Dispatcher {
	t.Helper()

	tools := tool.NewRegistry()
	err := tools.Register(tool.Descriptor{Name: "count"}, func(_ context.Context, _ map[string]any, sess *session.Session) (string, error) {
		n := 0
		if v, ok := sess.Get("count"); ok {
			n, _ = v.(int)
		}
		n++
		sess.Set("count", n)
		return fmt.Sprintf("%d", n), nil
	})
	if err != nil {
		t.Fatalf("failed to register tool: %v", err)
	}

	resources := resource.NewRegistry()
	resources.Add(resource.Descriptor{URI: "docs://test/readme", Name: "Readme"}, "# readme")

	return dispatch.New(
		dispatch.Info{Name: "test-gateway", Version: "1.2.3"},
		tools,
		resources,
		session.NewStore(),
	)
}
