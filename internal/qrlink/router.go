package qrlink

import "strings"

// LinkPath is the fixed first path segment of every payment deep link:
// <scheme>://nexus_link/<percent-encoded-payment-url>
const LinkPath = "nexus_link"

// Match is the result of routing a deep link URI: the decoded payment
// reference the link carried.
type Match struct {
	Reference string
}

// Router parses incoming URIs against the registered scheme and link grammar.
// URIs outside the grammar are not errors, they are simply not ours (other
// apps can share a link handler), so Route reports them as no-match.
type Router struct {
	scheme string
}

// NewRouter returns a Router bound to the registered app scheme. The scheme
// comparison is exact and case sensitive.
func NewRouter(scheme string) *Router {
	return &Router{scheme: scheme}
}

// Route parses uri. It returns (match, true, nil) when the URI is a payment
// deep link, (zero, false, nil) when the URI does not belong to this app, and
// a non-nil error only when the URI matched the grammar but its reference
// segment is not valid percent-encoding.
func (r *Router) Route(uri string) (Match, bool, error) {
	rest, ok := strings.CutPrefix(uri, r.scheme+"://")
	if !ok {
		return Match{}, false, nil
	}
	seg, ok := strings.CutPrefix(rest, LinkPath+"/")
	if !ok || seg == "" {
		return Match{}, false, nil
	}
	// the reference travels as a single encoded segment
	if strings.Contains(seg, "/") {
		return Match{}, false, nil
	}
	ref, err := DecodeFromLink(seg)
	if err != nil {
		return Match{}, false, err
	}
	return Match{Reference: ref}, true, nil
}

// BuildDeepLink renders the URI a merchant QR payload resolves to for the
// given scheme and payment reference. Route on the same scheme is its inverse
// for non-empty references; an empty reference yields a link with an empty
// segment, which Route treats as not ours.
func BuildDeepLink(scheme, ref string) string {
	return scheme + "://" + LinkPath + "/" + EncodeForLink(ref)
}
