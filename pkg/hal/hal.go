// Package hal builds application/hal+json envelopes: resources whose own
// fields sit at the top level next to the reserved _links and _embedded keys.
package hal

import "encoding/json"

// Content types served by hal-aware handlers.
const (
	ContentType       = "application/hal+json"
	SchemaContentType = "application/schema+json"
)

// Link is a single HAL link object.
type Link struct {
	Href      string `json:"href"`
	Templated bool   `json:"templated,omitempty"`
}

// Links maps relation names ("self", "next", ...) to link objects.
type Links map[string]Link

// Merge copies every relation from other into l, overwriting on collision.
func (l Links) Merge(other Links) Links {
	for rel, link := range other {
		l[rel] = link
	}
	return l
}

// Marshaler is implemented by models that expose a serializable body.
// The returned map holds the fields inlined into the resource envelope.
type Marshaler interface {
	MarshalHAL() map[string]any
}

// Linker is implemented by models that contribute extra link relations
// beyond the self link the view supplies.
type Linker interface {
	HALLinks() Links
}

// Resource is one hal+json envelope. Body fields are flattened next to
// _links and _embedded when marshaled; a body key named like a reserved
// key loses to the reserved one.
type Resource struct {
	Links    Links
	Embedded map[string][]*Resource
	Body     map[string]any
}

// New creates a resource around the given body. A nil body is allowed.
func New(body map[string]any) *Resource {
	return &Resource{Links: Links{}, Body: body}
}

// NewFrom builds a resource from a model, picking up its body via Marshaler
// and any extra links via Linker.
func NewFrom(model any) *Resource {
	r := New(nil)
	if m, ok := model.(Marshaler); ok {
		r.Body = m.MarshalHAL()
	}
	if l, ok := model.(Linker); ok {
		r.Links.Merge(l.HALLinks())
	}
	return r
}

// WithSelf sets the self relation.
func (r *Resource) WithSelf(href string) *Resource {
	return r.WithLink("self", Link{Href: href})
}

// WithLink sets a single relation.
func (r *Resource) WithLink(rel string, link Link) *Resource {
	r.Links[rel] = link
	return r
}

// WithLinks merges the given relations into the resource.
func (r *Resource) WithLinks(links Links) *Resource {
	r.Links.Merge(links)
	return r
}

// Embed attaches a named collection of subresources.
func (r *Resource) Embed(name string, items []*Resource) *Resource {
	if r.Embedded == nil {
		r.Embedded = map[string][]*Resource{}
	}
	r.Embedded[name] = items
	return r
}

// Set adds one body field.
func (r *Resource) Set(key string, value any) *Resource {
	if r.Body == nil {
		r.Body = map[string]any{}
	}
	r.Body[key] = value
	return r
}

// MarshalJSON flattens the body next to the reserved keys.
func (r *Resource) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Body)+2)
	for k, v := range r.Body {
		out[k] = v
	}
	if len(r.Links) > 0 {
		out["_links"] = r.Links
	}
	if r.Embedded != nil {
		out["_embedded"] = r.Embedded
	}
	return json.Marshal(out)
}
