package types

import "strings"

// An IRI identifies a resource, policy, rule, actor, or vocabulary term.
// IRIs are compared by exact string equality; no normalization is
// performed.
type IRI string

// String implements fmt.Stringer.
func (i IRI) String() string { return string(i) }

// Document returns the IRI of the document the IRI lives in, i.e. the
// IRI with any fragment removed. Query strings are part of the document
// identity and are retained.
func (i IRI) Document() IRI {
	if idx := strings.IndexByte(string(i), '#'); idx >= 0 {
		return i[:idx]
	}
	return i
}

// InDocument reports whether the IRI is declared inside the given
// document.
func (i IRI) InDocument(doc IRI) bool {
	return i.Document() == doc.Document()
}
