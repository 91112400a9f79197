package utils

import (
	"net/url"
)

// Canonicalize returns the canonical string form of an absolute URL.
// A URL with a host and no path gets "/" as its path.
func Canonicalize(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	return canonicalString(u), nil
}

// ResolveHref converts an href, relative or absolute, into a canonical
// absolute URL given the URL of the page it was found on.
func ResolveHref(base, href string) (string, error) {
	baseURL, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	relURL, err := url.Parse(href)
	if err != nil {
		return "", err
	}
	return canonicalString(baseURL.ResolveReference(relURL)), nil
}

func canonicalString(u *url.URL) string {
	if u.Host != "" && u.Path == "" && u.Opaque == "" {
		u.Path = "/"
	}
	return u.String()
}
