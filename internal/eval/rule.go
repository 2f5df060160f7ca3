// Package eval implements the read path of the access engine: rule
// matching, policy applicability, locality checking and the folding of
// applicable policies into effective Access records.
package eval

import (
	"github.com/solid-go/acp/types"
)

// A RuleLookup resolves a rule reference within an ACR. A dangling
// reference resolves to false, and an absent rule matches no actor.
type RuleLookup func(iri types.IRI) (types.Rule, bool)

// RuleApplies reports whether the rule names the actor under the given
// relation. Matching is exact IRI equality; reserved actor classes such
// as PublicAgent are matched literally, never expanded.
func RuleApplies(rule types.Rule, relation types.ActorRelation, actor types.IRI) bool {
	return rule.Actors(relation).Contains(actor)
}

// PolicyApplies reports whether the policy applies to the actor:
// every allOf rule matches, at least one anyOf rule matches (an empty
// anyOf imposes no restriction), and no noneOf rule matches. A policy
// with no rules at all applies to every actor.
func PolicyApplies(policy types.Policy, relation types.ActorRelation, actor types.IRI, lookup RuleLookup) bool {
	for ref := range policy.AllOf.All() {
		rule, ok := lookup(ref)
		if !ok || !RuleApplies(rule, relation, actor) {
			return false
		}
	}
	if policy.AnyOf.Len() > 0 {
		matched := false
		for ref := range policy.AnyOf.All() {
			if rule, ok := lookup(ref); ok && RuleApplies(rule, relation, actor) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	for ref := range policy.NoneOf.All() {
		if rule, ok := lookup(ref); ok && RuleApplies(rule, relation, actor) {
			return false
		}
	}
	return true
}
