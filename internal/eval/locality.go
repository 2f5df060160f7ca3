package eval

import (
	"strings"

	"github.com/solid-go/acp/internal/mapset"
	"github.com/solid-go/acp/types"
)

// ActivePolicyRefs returns the union of the ACR's four named policy
// sets.
func ActivePolicyRefs(acr types.AccessControlResource) *mapset.MapSet[types.IRI] {
	active := mapset.Make[types.IRI](0)
	for _, set := range []types.IRISet{
		acr.Policies(),
		acr.MemberPolicies(),
		acr.ACRPolicies(),
		acr.MemberACRPolicies(),
	} {
		for ref := range set.All() {
			active.Add(ref)
		}
	}
	return active
}

func trusted(iri types.IRI, prefixes []types.IRI) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(string(iri), string(p)) {
			return true
		}
	}
	return false
}

// HasInaccessiblePolicies reports whether the ACR actively depends on a
// policy or rule declared outside its own document. Such references
// cannot be inspected without a further fetch, so every computation
// over the ACR must abort rather than answer partially.
//
// External policies whose IRI starts with one of trustedPrefixes are
// skipped: callers use this for server-managed default policies that
// are known not to affect the actors being computed.
//
// A dangling reference to a policy inside the ACR's own document
// contributes nothing: its rules are simply unknown, and an absent
// policy applies to no computation.
func HasInaccessiblePolicies(acr types.AccessControlResource, trustedPrefixes []types.IRI) bool {
	doc := acr.IRI().Document()
	for ref := range ActivePolicyRefs(acr).All() {
		if trusted(ref, trustedPrefixes) {
			continue
		}
		if !ref.InDocument(doc) {
			return true
		}
		policy, ok := acr.PolicyByIRI(ref)
		if !ok {
			continue
		}
		for _, role := range []types.IRISet{policy.AllOf, policy.AnyOf, policy.NoneOf} {
			for ruleRef := range role.All() {
				if !ruleRef.InDocument(doc) && !trusted(ruleRef, trustedPrefixes) {
					return true
				}
			}
		}
	}
	return false
}
