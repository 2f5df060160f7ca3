package eval

import (
	"github.com/solid-go/acp/internal/mapset"
	"github.com/solid-go/acp/types"
)

// ApplicablePolicies resolves the given policy references and keeps
// those that apply to the actor. Dangling references are skipped.
func ApplicablePolicies(acr types.AccessControlResource, refs types.IRISet, relation types.ActorRelation, actor types.IRI) []types.Policy {
	lookup := acr.RuleByIRI
	var out []types.Policy
	for _, ref := range mapset.Sorted(refs) {
		policy, ok := acr.PolicyByIRI(ref)
		if !ok {
			continue
		}
		if PolicyApplies(policy, relation, actor, lookup) {
			out = append(out, policy)
		}
	}
	return out
}

// ActorAccess folds every applicable policy of the ACR into the actor's
// effective Access. It returns ok == false when the ACR depends on
// external policies or rules and the access therefore cannot be soundly
// computed; it never returns a partial answer.
//
// Read, Append and Write come from the policies applying to the
// resource; ControlRead and ControlWrite come exclusively from the
// policies governing the ACR itself, mapped from their Read and Write
// modes. Denies are folded after allows so that a deny for a mode
// always wins, whatever the declaration order.
func ActorAccess(acr types.AccessControlResource, relation types.ActorRelation, actor types.IRI, trustedPrefixes []types.IRI) (types.Access, bool) {
	if HasInaccessiblePolicies(acr, trustedPrefixes) {
		return types.Access{}, false
	}

	regular := ApplicablePolicies(acr, acr.Policies(), relation, actor)
	control := ApplicablePolicies(acr, acr.ACRPolicies(), relation, actor)

	var a types.Access
	for _, p := range control {
		if p.Allow.Contains(types.ACLRead) {
			a.ControlRead = types.Granted
		}
		if p.Allow.Contains(types.ACLWrite) {
			a.ControlWrite = types.Granted
		}
	}
	for _, p := range regular {
		if p.Allow.Contains(types.ACLRead) {
			a.Read = types.Granted
		}
		if p.Allow.Contains(types.ACLAppend) {
			a.Append = types.Granted
		}
		if p.Allow.Contains(types.ACLWrite) {
			a.Write = types.Granted
		}
	}
	for _, p := range control {
		if p.Deny.Contains(types.ACLRead) {
			a.ControlRead = types.Denied
		}
		if p.Deny.Contains(types.ACLWrite) {
			a.ControlWrite = types.Denied
		}
	}
	for _, p := range regular {
		if p.Deny.Contains(types.ACLRead) {
			a.Read = types.Denied
		}
		if p.Deny.Contains(types.ACLAppend) {
			a.Append = types.Denied
		}
		if p.Deny.Contains(types.ACLWrite) {
			a.Write = types.Denied
		}
	}
	return a, true
}

// ActorAccessAll computes the effective Access of every concrete actor
// the ACR mentions under the given relation. Actors are collected from
// the rules of every active policy, whichever combinator role the rule
// plays: an actor named only inside a noneOf rule still appears in the
// result, mapped to whatever access excluding them yields. The reserved
// actor classes are never enumerated.
func ActorAccessAll(acr types.AccessControlResource, relation types.ActorRelation, trustedPrefixes []types.IRI) (map[types.IRI]types.Access, bool) {
	if HasInaccessiblePolicies(acr, trustedPrefixes) {
		return nil, false
	}

	actors := mapset.Make[types.IRI](0)
	for ref := range ActivePolicyRefs(acr).All() {
		policy, ok := acr.PolicyByIRI(ref)
		if !ok {
			continue
		}
		for _, role := range []types.IRISet{policy.AllOf, policy.AnyOf, policy.NoneOf} {
			for ruleRef := range role.All() {
				rule, ok := acr.RuleByIRI(ruleRef)
				if !ok {
					continue
				}
				for actor := range rule.Actors(relation).All() {
					if !types.IsReservedActor(actor) {
						actors.Add(actor)
					}
				}
			}
		}
	}

	out := make(map[types.IRI]types.Access, actors.Len())
	for actor := range actors.All() {
		// Locality already checked, so this cannot fail.
		a, _ := ActorAccess(acr, relation, actor, trustedPrefixes)
		out[actor] = a
	}
	return out, true
}
