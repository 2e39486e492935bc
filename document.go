package scrapling

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/net/html/charset"

	"github.com/scrapling/core/adaptive"
)

// Document is a single parse of an HTML source. Nodes are stable for its
// lifetime and may be read by many goroutines concurrently: nothing in
// the public API mutates a node after parse.
type Document struct {
	root *html.Node
	raw  []byte

	url    string
	domain string

	logger *slog.Logger

	adaptiveEnabled bool
	store           adaptive.Store

	order map[*html.Node]int
	byIdx []*html.Node

	css   *cssCache
	xpath *xpathCache
}

// Options configures New. All fields are optional; the zero value is the
// documented default for each.
type Options struct {
	URL             string
	Adaptive        bool
	AdaptiveDomain  string
	Encoding        string
	KeepComments    bool
	KeepCDATA       bool
	Store           adaptive.Store
	Logger          *slog.Logger
}

// New parses content (HTML bytes, or any bytes/string treated as a
// best-effort HTML fragment) into a Document and returns a Selector
// handle to its root <html> element.
//
// Malformed input never fails to parse — the HTML5 algorithm recovers
// from it, producing a best-guess tree, exactly as spec'd. The only
// failure mode is a declared encoding that cannot decode the bytes and
// whose charset cannot be auto-detected either.
func New(content []byte, opts Options) (Selector, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(discardWriter{}, nil))
	}

	decoded, encUsed, err := decodeContent(content, opts.Encoding)
	if err != nil {
		return Selector{}, &ParseError{Encoding: opts.Encoding, Err: err}
	}

	var root *html.Node
	if len(bytes.TrimSpace(decoded)) == 0 {
		// The HTML5 tree-construction algorithm always inserts <head>
		// and <body> even for a fully empty byte stream, but spec.md §8
		// requires an empty document's root to have no children at all.
		// Skip html.Parse entirely rather than try to strip the
		// algorithm's implied structure back out after the fact.
		root = emptyDocumentRoot()
	} else {
		root, err = html.Parse(bytes.NewReader(decoded))
		if err != nil {
			// html.Parse only errors on I/O failure from the Reader, which
			// cannot happen reading from a byte slice; kept for completeness.
			return Selector{}, &ParseError{Encoding: encUsed, Err: err}
		}

		pruneComments(root, opts.KeepComments)
		normalizeCDATA(root, opts.KeepCDATA)
		ensureFragmentWrapped(root)
	}

	doc := &Document{
		root:            root,
		raw:             content,
		url:             opts.URL,
		adaptiveEnabled: opts.Adaptive,
		store:           opts.Store,
		logger:          logger,
		css:             newCSSCache(),
		xpath:           newXPathCache(),
	}
	doc.domain = deriveDomain(opts.URL, opts.AdaptiveDomain)
	doc.buildOrder()

	if doc.store == nil {
		// spec.md §6: the documented default backend is SQLite, not an
		// in-memory map. An ephemeral ":memory:" database gives callers
		// who never pass Store a real SQLiteStore without requiring a
		// file on disk.
		store, err := adaptive.OpenSQLiteStore(":memory:")
		if err != nil {
			return Selector{}, &StorageError{Op: "open default store", Key: ":memory:", Err: err}
		}
		doc.store = store
	}

	logger.Debug("scrapling: parsed document", slog.String("url", opts.URL), slog.Int("nodes", len(doc.byIdx)))

	return Selector{doc: doc, node: htmlRoot(root)}, nil
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

// decodeContent returns UTF-8 text for content, using encoding when
// given, otherwise sniffing via charset.DetermineEncoding (BOM, meta
// charset, default UTF-8).
func decodeContent(content []byte, encoding string) ([]byte, string, error) {
	if encoding == "" || strings.EqualFold(encoding, "utf-8") {
		// Still sniff: a document may declare a different charset via
		// <meta>, which charset.DetermineEncoding honors.
		_, name, _ := charset.DetermineEncoding(content, "")
		if name == "" || strings.EqualFold(name, "utf-8") {
			return content, "utf-8", nil
		}
		encoding = name
	}
	e, name := charset.Lookup(encoding)
	if e == nil {
		return nil, encoding, fmt.Errorf("unknown encoding %q", encoding)
	}
	out, err := e.NewDecoder().Bytes(content)
	if err != nil {
		return nil, encoding, err
	}
	return out, name, nil
}

// htmlRoot walks down from the html.Parse DocumentNode to the <html>
// element, which is always the handle callers expect as "root".
func htmlRoot(n *html.Node) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "html" {
			return c
		}
	}
	return n
}

// emptyDocumentRoot builds a bare <html> element with no children,
// wrapped in the same DocumentNode shape html.Parse would return, for
// the blank-input boundary case (spec.md §8: "root handle whose
// children is empty").
func emptyDocumentRoot() *html.Node {
	htmlEl := &html.Node{Type: html.ElementNode, Data: "html", DataAtom: atom.Html}
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(htmlEl)
	return doc
}

// pruneComments drops comment nodes from the tree unless keepComments is
// set. Comment/CDATA nodes are never exposed as Selector handles either
// way; this only affects whether they survive in html_content output.
func pruneComments(n *html.Node, keep bool) {
	if keep {
		return
	}
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		var next *html.Node
		for c := n.FirstChild; c != nil; c = next {
			next = c.NextSibling
			if c.Type == html.CommentNode && !isCDATAMarker(c.Data) {
				n.RemoveChild(c)
				continue
			}
			walk(c)
		}
	}
	walk(n)
}

var cdataMarker = regexp.MustCompile(`^\[CDATA\[(.*)\]\]$`)

func isCDATAMarker(data string) bool {
	return cdataMarker.MatchString(data)
}

// normalizeCDATA resolves the HTML5 tokenizer's "bogus comment" encoding
// of CDATA sections. By default CDATA becomes plain text (its decoded
// inner content); with keepCDATA it stays a comment node so html_content
// re-serialization can restore the literal <![CDATA[...]]> form.
func normalizeCDATA(n *html.Node, keep bool) {
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		var next *html.Node
		for c := n.FirstChild; c != nil; c = next {
			next = c.NextSibling
			if c.Type == html.CommentNode {
				if m := cdataMarker.FindStringSubmatch(c.Data); m != nil {
					if keep {
						continue
					}
					c.Type = html.TextNode
					c.Data = m[1]
					continue
				}
			}
			walk(c)
		}
	}
	walk(n)
}

// ensureFragmentWrapped guarantees body has at least a <p> wrapper when
// the source parsed as bare text (no element children at all), matching
// the spec's "non-HTML payload" fallback.
func ensureFragmentWrapped(root *html.Node) {
	body := findChildByTag(htmlRoot(root), "body")
	if body == nil {
		return
	}
	hasElement := false
	hasText := false
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.ElementNode:
			hasElement = true
		case html.TextNode:
			if strings.TrimSpace(c.Data) != "" {
				hasText = true
			}
		}
	}
	if hasElement || !hasText {
		return
	}

	p := &html.Node{Type: html.ElementNode, Data: "p", DataAtom: atom.P}
	var next *html.Node
	for c := body.FirstChild; c != nil; c = next {
		next = c.NextSibling
		body.RemoveChild(c)
		p.AppendChild(c)
	}
	body.AppendChild(p)
}

func findChildByTag(n *html.Node, tag string) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == tag {
			return c
		}
	}
	return nil
}

// buildOrder assigns the stable document-order index used for equality
// and ordering everywhere the spec requires it.
func (d *Document) buildOrder() {
	d.order = make(map[*html.Node]int)
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			d.order[n] = len(d.byIdx)
			d.byIdx = append(d.byIdx, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(d.root)
}

func (d *Document) indexOf(n *html.Node) int {
	if i, ok := d.order[n]; ok {
		return i
	}
	return -1
}

func (d *Document) depthOf(n *html.Node) int {
	depth := 0
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode {
			depth++
		}
	}
	return depth
}

// deriveDomain implements the §4.8 precedence: explicit override, else
// the URL's host, else "default".
func deriveDomain(rawURL, override string) string {
	if override != "" {
		return override
	}
	if rawURL != "" {
		if u, err := url.Parse(rawURL); err == nil && u.Host != "" {
			return u.Host
		}
	}
	return "default"
}
