package scrapling

// Selectors is an ordered, indexable collection of Selector values, as
// returned by find_all, css, xpath, and the navigation properties.
type Selectors []Selector

// Length is the cardinality of the collection (spec's `.length`
// property); len(selectors) works identically and is preferred in Go
// code, this exists for parity with the spec's named operation.
func (ss Selectors) Length() int { return len(ss) }

// Css runs a CSS selector against every contained handle and
// concatenates the results, preserving order.
func (ss Selectors) Css(selector string, opts ...SelectOpt) (Result, error) {
	branches := make([]Result, 0, len(ss))
	for _, s := range ss {
		r, err := s.Css(selector, opts...)
		if err != nil {
			return Result{}, err
		}
		branches = append(branches, r)
	}
	return concatResults(branches), nil
}

// CssFirst returns the first match across any contained handle.
func (ss Selectors) CssFirst(selector string, opts ...SelectOpt) (any, error) {
	r, err := ss.Css(selector, opts...)
	if err != nil {
		return nil, err
	}
	v, _ := r.First()
	return v, nil
}

// Xpath runs an XPath expression against every contained handle and
// concatenates the results, preserving order.
func (ss Selectors) Xpath(expr string, opts ...SelectOpt) (Result, error) {
	branches := make([]Result, 0, len(ss))
	for _, s := range ss {
		r, err := s.Xpath(expr, opts...)
		if err != nil {
			return Result{}, err
		}
		branches = append(branches, r)
	}
	return concatResults(branches), nil
}

// XpathFirst returns the first match across any contained handle.
func (ss Selectors) XpathFirst(expr string, opts ...SelectOpt) (any, error) {
	r, err := ss.Xpath(expr, opts...)
	if err != nil {
		return nil, err
	}
	v, _ := r.First()
	return v, nil
}

// Re flattens .Re over every handle's Text, in order.
func (ss Selectors) Re(pattern any, opts ...func(*ReOptions)) (TextHandlers, error) {
	var out TextHandlers
	for _, s := range ss {
		r, err := s.Text().Re(pattern, opts...)
		if err != nil {
			return nil, err
		}
		out = append(out, r...)
	}
	return out, nil
}

// ReFirst returns the first match from the first handle that yields one.
func (ss Selectors) ReFirst(pattern any, opts ...func(*ReOptions)) (*TextHandler, error) {
	for _, s := range ss {
		r, err := s.Text().ReFirst(pattern, opts...)
		if err != nil {
			return nil, err
		}
		if r != nil {
			return r, nil
		}
	}
	return nil, nil
}

// Search returns the first handle for which predicate returns true.
func (ss Selectors) Search(predicate func(Selector) bool) (Selector, bool) {
	for _, s := range ss {
		if predicate(s) {
			return s, true
		}
	}
	return Selector{}, false
}

// Filter returns every handle for which predicate returns true.
func (ss Selectors) Filter(predicate func(Selector) bool) Selectors {
	var out Selectors
	for _, s := range ss {
		if predicate(s) {
			out = append(out, s)
		}
	}
	return out
}
