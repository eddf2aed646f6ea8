package n3base

import (
	"fmt"
	"net/url"
)

// IRI is an absolute or relative internationalized resource identifier, as
// written in an N3 document.
type IRI string

// Absolute reports whether s has a scheme component, i.e. is already a
// fully qualified IRI that resolution would leave unchanged.
func Absolute(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return u.IsAbs()
}

// Resolve resolves ref against base per RFC 3986, returning ref unchanged
// if it is already absolute. It is the one collaborator spec.md describes
// only through its interface; net/url's reference resolution implements the
// algorithm spec.md requires.
func Resolve(base, ref IRI) (IRI, error) {
	if Absolute(string(ref)) {
		return ref, nil
	}
	b, err := url.Parse(string(base))
	if err != nil {
		return "", fmt.Errorf("invalid base IRI %q: %w", base, err)
	}
	r, err := url.Parse(string(ref))
	if err != nil {
		return "", fmt.Errorf("invalid IRI reference %q: %w", ref, err)
	}
	return IRI(b.ResolveReference(r).String()), nil
}
