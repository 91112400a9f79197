package entity

import "github.com/user/linkrank/pkg/utils"

// RawHrefEquals compares an href exactly as it was written in the markup with
// a page URL. No resolution is applied to either side. Self-link detection and
// the inbound-call join both use this comparison.
func RawHrefEquals(href, pageURL string) bool {
	return href == pageURL
}

// CanonicalURLEquals reports whether two absolute URLs point at the same
// canonical address. Unparseable input is never equal.
func CanonicalURLEquals(a, b string) bool {
	ca, err := utils.Canonicalize(a)
	if err != nil {
		return false
	}
	cb, err := utils.Canonicalize(b)
	if err != nil {
		return false
	}
	return ca == cb
}
