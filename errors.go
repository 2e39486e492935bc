package scrapling

import (
	"errors"
	"fmt"
)

// ErrEmptyDocument reports a document with no root element. No function
// in this package returns it: New builds a bare <html> root for blank
// input, and Body on that root returns the (empty) raw source.
var ErrEmptyDocument = errors.New("scrapling: document has no root element")

// ParseError reports that the declared encoding could not decode the
// source bytes and encoding detection also failed. Ordinary malformed
// HTML never produces this error — the HTML5 algorithm recovers from it
// silently, as required by the spec.
type ParseError struct {
	Encoding string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("scrapling: parse with encoding %q: %s", e.Encoding, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// InvalidSelectorError reports that a CSS or XPath source string could
// not be compiled.
type InvalidSelectorError struct {
	Selector string
	Kind     string // "css" or "xpath"
	Err      error
}

func (e *InvalidSelectorError) Error() string {
	return fmt.Sprintf("scrapling: invalid %s selector %q: %s", e.Kind, e.Selector, e.Err)
}

func (e *InvalidSelectorError) Unwrap() error { return e.Err }

func (e *InvalidSelectorError) Is(target error) bool {
	var ise *InvalidSelectorError
	if errors.As(target, &ise) {
		return e.Selector == ise.Selector && e.Kind == ise.Kind
	}
	return false
}

// MixedDocumentError reports that an operation received handles backed
// by two different Documents, which is never supported.
type MixedDocumentError struct {
	Op string
}

func (e *MixedDocumentError) Error() string {
	return fmt.Sprintf("scrapling: %s: handles belong to different documents", e.Op)
}

// StorageError wraps a failure surfaced unchanged from an adaptive
// storage backend (see the adaptive package).
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("scrapling: storage %s %q: %s", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// JSONDecodeError reports that TextHandler.JSON was called on content
// that is not valid JSON.
type JSONDecodeError struct {
	Source string
	Err    error
}

func (e *JSONDecodeError) Error() string {
	src := e.Source
	if len(src) > 64 {
		src = src[:64] + "…"
	}
	return fmt.Sprintf("scrapling: invalid JSON %q: %s", src, e.Err)
}

func (e *JSONDecodeError) Unwrap() error { return e.Err }
