package scrapling

import "net/url"

// resolveURL resolves relative against base using standard URL reference
// resolution (RFC 3986, as implemented by net/url).
func resolveURL(base, relative string) (string, error) {
	rel, err := url.Parse(relative)
	if err != nil {
		return "", err
	}
	if base == "" {
		return rel.String(), nil
	}
	b, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	return b.ResolveReference(rel).String(), nil
}
