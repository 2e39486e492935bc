package scrapling

// ResultKind tags which variant a Result holds, modeling the spec's
// "css/xpath returns Selectors, TextHandlers, or a mixed list" rule as a
// small tagged sum type instead of an `any` the caller has to sniff.
type ResultKind int

const (
	// KindElements holds only Selector values (every sub-selector/step
	// produced elements).
	KindElements ResultKind = iota
	// KindStrings holds only TextHandler values (every sub-selector/step
	// ended in ::text, ::attr(name), or an XPath text()/attribute axis).
	KindStrings
	// KindMixed holds a combination; downstream code treats it as an
	// opaque ordered sequence of Selector|TextHandler.
	KindMixed
)

// Result is what Selector.Css, Selector.Xpath, and their container
// counterparts return. Exactly one of Elements/Texts/Mixed is populated,
// per Kind.
type Result struct {
	Kind     ResultKind
	Elements Selectors
	Texts    TextHandlers
	Mixed    []any // each entry is a Selector or a TextHandler
}

// Len returns the result's cardinality regardless of Kind.
func (r Result) Len() int {
	switch r.Kind {
	case KindElements:
		return len(r.Elements)
	case KindStrings:
		return len(r.Texts)
	default:
		return len(r.Mixed)
	}
}

// First returns the first item (a Selector or TextHandler) and true, or
// false if the result is empty.
func (r Result) First() (any, bool) {
	switch r.Kind {
	case KindElements:
		if len(r.Elements) == 0 {
			return nil, false
		}
		return r.Elements[0], true
	case KindStrings:
		if len(r.Texts) == 0 {
			return nil, false
		}
		return r.Texts[0], true
	default:
		if len(r.Mixed) == 0 {
			return nil, false
		}
		return r.Mixed[0], true
	}
}

// appendResultItem appends item (a Selector or TextHandler) into acc, widening
// its Kind to KindMixed if the item's type doesn't match the current
// one.
func appendResultItem(acc Result, item any) Result {
	switch v := item.(type) {
	case Selector:
		switch acc.Kind {
		case KindElements:
			acc.Elements = append(acc.Elements, v)
		case KindStrings:
			acc.Kind = KindMixed
			acc.Mixed = toMixed(acc)
			acc.Mixed = append(acc.Mixed, v)
		default:
			acc.Mixed = append(acc.Mixed, v)
		}
	case TextHandler:
		switch acc.Kind {
		case KindStrings:
			acc.Texts = append(acc.Texts, v)
		case KindElements:
			if len(acc.Elements) == 0 {
				acc.Kind = KindStrings
				acc.Texts = append(acc.Texts, v)
			} else {
				acc.Kind = KindMixed
				acc.Mixed = toMixed(acc)
				acc.Mixed = append(acc.Mixed, v)
			}
		default:
			acc.Mixed = append(acc.Mixed, v)
		}
	}
	return acc
}

func toMixed(r Result) []any {
	out := make([]any, 0, r.Len())
	switch r.Kind {
	case KindElements:
		for _, e := range r.Elements {
			out = append(out, e)
		}
	case KindStrings:
		for _, t := range r.Texts {
			out = append(out, t)
		}
	default:
		out = append(out, r.Mixed...)
	}
	return out
}

// concatResults concatenates branch results in order, following the
// per-branch concatenation rule used by comma-combined CSS selectors.
func concatResults(branches []Result) Result {
	allElements, allStrings := true, true
	total := 0
	for _, b := range branches {
		total += b.Len()
		if b.Kind != KindElements {
			allElements = false
		}
		if b.Kind != KindStrings {
			allStrings = false
		}
		if b.Kind == KindMixed {
			allElements, allStrings = false, false
		}
	}

	switch {
	case allElements:
		out := make(Selectors, 0, total)
		for _, b := range branches {
			out = append(out, b.Elements...)
		}
		return Result{Kind: KindElements, Elements: out}
	case allStrings:
		out := make(TextHandlers, 0, total)
		for _, b := range branches {
			out = append(out, b.Texts...)
		}
		return Result{Kind: KindStrings, Texts: out}
	default:
		out := make([]any, 0, total)
		for _, b := range branches {
			out = append(out, toMixed(b)...)
		}
		return Result{Kind: KindMixed, Mixed: out}
	}
}
