// Package resource implements the read-only resource registry. Resources are
// static textual documents addressable by URI, enumerated once at startup
// and immutable afterwards.
package resource

// Descriptor describes one resource as reported by resources/list.
type Descriptor struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MimeType    string `json:"mimeType,omitempty"`
}

// Contents is the payload returned for one resolved resource URI.
type Contents struct {
	URI      string `json:"uri"`
	MimeType string `json:"mimeType"`
	Text     string `json:"text"`
}

// MimeTypeMarkdown is the content type of every document this registry
// serves.
const MimeTypeMarkdown = "text/markdown"

type entry struct {
	desc Descriptor
	text string
}

// Registry holds the full set of resources. It is populated during
// construction and read-only afterwards, so concurrent reads need no
// locking.
type Registry struct {
	order   []string
	entries map[string]entry
}

// NewRegistry creates an empty resource registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

// Add registers a document under desc.URI. A blank MimeType defaults to
// markdown. Re-adding an existing URI replaces its content but keeps its
// position in the enumeration order.
func (r *Registry) Add(desc Descriptor, text string) {
	if desc.MimeType == "" {
		desc.MimeType = MimeTypeMarkdown
	}
	if _, ok := r.entries[desc.URI]; !ok {
		r.order = append(r.order, desc.URI)
	}
	r.entries[desc.URI] = entry{desc: desc, text: text}
}

// List enumerates all resources in registration order.
func (r *Registry) List() []Descriptor {
	descs := make([]Descriptor, 0, len(r.order))
	for _, uri := range r.order {
		descs = append(descs, r.entries[uri].desc)
	}
	return descs
}

// Read resolves a URI to its textual content. The second return value
// reports whether the URI is known.
func (r *Registry) Read(uri string) (Contents, bool) {
	e, ok := r.entries[uri]
	if !ok {
		return Contents{}, false
	}
	return Contents{URI: uri, MimeType: e.desc.MimeType, Text: e.text}, true
}
