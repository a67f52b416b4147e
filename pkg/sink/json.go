package sink

import (
	"encoding/json"

	"github.com/matzehuels/barchart/pkg/scene"
)

// JSONOption configures [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	indent  bool
	pointer bool
}

// WithJSONCompact disables indentation.
func WithJSONCompact() JSONOption { return func(r *jsonRenderer) { r.indent = false } }

// WithoutJSONPointer omits the pointer state (bound data and x mapping).
func WithoutJSONPointer() JSONOption { return func(r *jsonRenderer) { r.pointer = false } }

// RenderJSON exports the surface: its geometry, axes, layers with any
// pending transitions, and the pointer state. It does not modify s.
func RenderJSON(s *scene.Surface, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{indent: true, pointer: true}
	for _, opt := range opts {
		opt(&r)
	}

	out := s
	if !r.pointer && s.Pointer != nil {
		c := *s
		c.Pointer = nil
		out = &c
	}
	if r.indent {
		return json.MarshalIndent(out, "", "  ")
	}
	return json.Marshal(out)
}
