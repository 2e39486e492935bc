package scrapling

import (
	"encoding/json"
	"strings"

	"golang.org/x/net/html"
)

// AttributesHandler is a read-only, ordered mapping from attribute name
// to attribute value, as returned by Selector.Attrib.
type AttributesHandler struct {
	names  []string
	values map[string]string
}

func newAttributesHandler(attrs []html.Attribute) AttributesHandler {
	h := AttributesHandler{
		names:  make([]string, 0, len(attrs)),
		values: make(map[string]string, len(attrs)),
	}
	for _, a := range attrs {
		if _, seen := h.values[a.Key]; !seen {
			h.names = append(h.names, a.Key)
		}
		h.values[a.Key] = a.Val
	}
	return h
}

// Get returns the value for name and whether it was present.
func (h AttributesHandler) Get(name string) (TextHandler, bool) {
	v, ok := h.values[name]
	return TextHandler(v), ok
}

// Value is Get without the presence flag; missing attributes return "".
func (h AttributesHandler) Value(name string) TextHandler {
	return TextHandler(h.values[name])
}

// Has reports whether name is present.
func (h AttributesHandler) Has(name string) bool {
	_, ok := h.values[name]
	return ok
}

// Keys returns the attribute names in document order.
func (h AttributesHandler) Keys() []string {
	out := make([]string, len(h.names))
	copy(out, h.names)
	return out
}

// Len returns the number of attributes.
func (h AttributesHandler) Len() int { return len(h.names) }

// Map returns a plain map[string]string copy, for interop.
func (h AttributesHandler) Map() map[string]string {
	out := make(map[string]string, len(h.values))
	for k, v := range h.values {
		out[k] = v
	}
	return out
}

// MatchedValue is a single-entry mapping yielded by SearchValues.
type MatchedValue struct {
	Name  string
	Value TextHandler
}

// SearchValues yields one MatchedValue per attribute whose value equals
// query (or contains it, when partial is true).
func (h AttributesHandler) SearchValues(query string, partial bool) []MatchedValue {
	var out []MatchedValue
	for _, name := range h.names {
		v := h.values[name]
		if partial && strings.Contains(v, query) || !partial && v == query {
			out = append(out, MatchedValue{Name: name, Value: TextHandler(v)})
		}
	}
	return out
}

// JSONString serializes the mapping to JSON bytes.
func (h AttributesHandler) JSONString() ([]byte, error) {
	return json.Marshal(h.Map())
}

// MarshalJSON makes AttributesHandler transparent to encoding/json.
func (h AttributesHandler) MarshalJSON() ([]byte, error) {
	ordered := make(map[string]string, len(h.names))
	for _, n := range h.names {
		ordered[n] = h.values[n]
	}
	return json.Marshal(ordered)
}

// classTokens splits the "class" attribute into its whitespace-separated
// tokens.
func (h AttributesHandler) classTokens() []string {
	v, ok := h.values["class"]
	if !ok {
		return nil
	}
	return strings.Fields(v)
}
