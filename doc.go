// Package scrapling is an adaptive HTML parsing and element-selection
// engine: parse a document, select elements with CSS, XPath, predicate
// filters, or text/regex search, and relocate a previously-saved element
// after the page's markup has drifted by matching against a persisted
// structural fingerprint.
//
// A Document is parsed once with New and handed back as the root
// Selector. Every other operation — navigation, selector generation,
// find/find_all, adaptive save/relocate — hangs off that handle or the
// Selectors/TextHandlers containers it returns.
package scrapling
