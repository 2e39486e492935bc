package scrapling

import (
	"github.com/scrapling/core/adaptive"
)

// applyAdaptive implements the two selection-method knobs of spec.md
// §4.8: auto_save persists a fingerprint for the first matched element;
// adaptive relocates from a stored fingerprint when the selection itself
// came back empty. auto_save acts only on an element result — a
// TextHandlers/Mixed result has no node to fingerprint. adaptive replaces
// any empty result, whatever its kind, with the relocated elements.
func (s Selector) applyAdaptive(o selectOpts, result Result) (Result, error) {
	if o.autoSave && result.Kind == KindElements && len(result.Elements) > 0 {
		if err := s.Save(result.Elements[0], o.identifier); err != nil {
			return result, err
		}
	}

	if o.adaptive && result.Len() == 0 {
		fp, ok, err := s.Retrieve(o.identifier)
		if err != nil {
			return result, err
		}
		if !ok {
			return result, nil
		}
		return Result{Kind: KindElements, Elements: s.Relocate(fp)}, nil
	}

	return result, nil
}

// Save persists a fingerprint for element under identifier, keyed by the
// Document's effective domain (see Document's adaptive domain
// precedence).
func (s Selector) Save(element Selector, identifier string) error {
	fp := adaptive.Build(element.node)
	if err := s.doc.store.Save(s.doc.domain, identifier, fp); err != nil {
		return &StorageError{Op: "save", Key: identifier, Err: err}
	}
	s.doc.logger.Debug("scrapling: saved fingerprint", "identifier", identifier, "domain", s.doc.domain)
	return nil
}

// Retrieve loads a previously saved fingerprint, or (zero value, false)
// if identifier is unknown — never an error for a missing key.
func (s Selector) Retrieve(identifier string) (adaptive.Fingerprint, bool, error) {
	fp, ok, err := s.doc.store.Retrieve(s.doc.domain, identifier)
	if err != nil {
		return adaptive.Fingerprint{}, false, &StorageError{Op: "retrieve", Key: identifier, Err: err}
	}
	return fp, ok, nil
}

// Relocate ranks candidate elements under s matching fp, highest score
// first. An empty or non-matching document yields an empty Selectors,
// never an error.
func (s Selector) Relocate(fp adaptive.Fingerprint) Selectors {
	candidates := adaptive.Relocate(fp, s.node)
	out := make(Selectors, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, Selector{doc: s.doc, node: c.Node})
	}
	return out
}
