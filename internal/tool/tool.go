// Package tool implements the tool registry: a fixed set of named,
// schema-described operations enumerated at startup and invoked by the
// dispatcher on behalf of callers.
package tool

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/mcpgate/mcpgate/internal/session"
)

// Descriptor describes one tool as reported by tools/list.
type Descriptor struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	InputSchema json.RawMessage `json:"inputSchema,omitempty"`
}

// Handler executes a tool. The session handle is the caller's opaque
// per-session state; handlers may read and mutate it, the registry never
// does. The returned string is the textual tool result.
type Handler func(ctx context.Context, args map[string]any, sess *session.Session) (string, error)

type entry struct {
	desc    Descriptor
	handler Handler
}

// Registry holds the tool set. It is populated during construction and
// read-only afterwards, so concurrent reads need no locking.
type Registry struct {
	order   []string
	entries map[string]entry
}

// NewRegistry creates an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

// Register adds a tool under desc.Name. Registering a duplicate name is a
// programming error and fails.
func (r *Registry) Register(desc Descriptor, h Handler) error {
	if desc.Name == "" {
		return fmt.Errorf("tool name must not be empty")
	}
	if _, ok := r.entries[desc.Name]; ok {
		return fmt.Errorf("tool %q already registered", desc.Name)
	}
	r.order = append(r.order, desc.Name)
	r.entries[desc.Name] = entry{desc: desc, handler: h}
	return nil
}

// List enumerates all tools in registration order.
func (r *Registry) List() []Descriptor {
	descs := make([]Descriptor, 0, len(r.order))
	for _, name := range r.order {
		descs = append(descs, r.entries[name].desc)
	}
	return descs
}

// Call executes the named tool. An unknown name is a tool-level failure,
// not a protocol one; the dispatcher reports it inside a successful
// envelope like any other tool error.
func (r *Registry) Call(ctx context.Context, name string, args map[string]any, sess *session.Session) (string, error) {
	e, ok := r.entries[name]
	if !ok {
		return "", fmt.Errorf("unknown tool: %s", name)
	}
	return e.handler(ctx, args, sess)
}

// RegisterTyped adds a tool whose argument struct T drives both the
// published input schema and the decoding of incoming arguments.
func RegisterTyped[T any](r *Registry, name, description string, fn func(context.Context, T, *session.Session) (string, error)) error {
	schema, err := jsonschema.For[T](nil)
	if err != nil {
		return fmt.Errorf("derive schema for tool %q: %w", name, err)
	}
	schemaJSON, err := json.Marshal(schema)
	if err != nil {
		return fmt.Errorf("marshal schema for tool %q: %w", name, err)
	}

	handler := func(ctx context.Context, args map[string]any, sess *session.Session) (string, error) {
		raw, err := json.Marshal(args)
		if err != nil {
			return "", fmt.Errorf("encode arguments: %w", err)
		}
		var typed T
		if err := json.Unmarshal(raw, &typed); err != nil {
			return "", fmt.Errorf("decode arguments: %w", err)
		}
		return fn(ctx, typed, sess)
	}

	return r.Register(Descriptor{
		Name:        name,
		Description: description,
		InputSchema: schemaJSON,
	}, handler)
}
