// Package synth implements the write path of the access engine: given
// a desired access record for one actor, it rewrites the ACR's policy
// and rule graph so that the actor's effective access becomes exactly
// that record, while every other actor's computed access is provably
// unchanged.
package synth

import (
	"fmt"

	"github.com/solid-go/acp/internal/eval"
	"github.com/solid-go/acp/internal/mapset"
	"github.com/solid-go/acp/types"
)

// SetActorAccess returns a new ACR in which the actor's effective
// access equals desired, merged over the modes desired leaves Unset
// (those keep their current resolution). The input ACR is not modified.
//
// It returns ok == false when the ACR depends on external policies or
// rules: an ACR that cannot be fully inspected is never edited, not
// even partially.
func SetActorAccess(acr types.AccessControlResource, relation types.ActorRelation, actor types.IRI, desired types.Access, trustedPrefixes []types.IRI) (types.AccessControlResource, bool) {
	current, ok := eval.ActorAccess(acr, relation, actor, trustedPrefixes)
	if !ok {
		return types.AccessControlResource{}, false
	}

	e := newEditor(acr, relation, actor)

	// The resource policies and the ACR policies form two independent
	// graphs governing disjoint mode sets; control modes map onto the
	// Read and Write modes of the policies in the acp:access set.
	e.editGraph(types.ACPApply, []modeTarget{
		{types.ACLRead, pick(current.Read, desired.Read)},
		{types.ACLAppend, pick(current.Append, desired.Append)},
		{types.ACLWrite, pick(current.Write, desired.Write)},
	})
	e.editGraph(types.ACPAccess, []modeTarget{
		{types.ACLRead, pick(current.ControlRead, desired.ControlRead)},
		{types.ACLWrite, pick(current.ControlWrite, desired.ControlWrite)},
	})

	e.collectGarbage()
	return types.NewAccessControlResource(acr.IRI(), e.graph), true
}

// pick returns the desired grant for a mode, or the current one when
// the desired record leaves the mode Unset.
func pick(current, desired types.Grant) types.Grant {
	if desired != types.Unset {
		return desired
	}
	return current
}

type modeTarget struct {
	mode  types.IRI
	grant types.Grant
}

type editor struct {
	graph    types.Graph
	acrIRI   types.IRI
	relation types.ActorRelation
	actor    types.IRI

	// used holds every IRI the graph mentions, as subject or object.
	// Freshly minted policy and rule IRIs must avoid all of them: a new
	// subject colliding with a dangling reference elsewhere would make
	// that reference resolve and silently change someone's access.
	used        *mapset.MapSet[types.IRI]
	nextPolicy  int
	nextRule    int
	splits      map[types.IRI]types.IRI
	discarded   *mapset.MapSet[types.IRI]
	maybeOrphan *mapset.MapSet[types.IRI]
}

func newEditor(acr types.AccessControlResource, relation types.ActorRelation, actor types.IRI) *editor {
	e := &editor{
		graph:       acr.Graph().Clone(),
		acrIRI:      acr.IRI(),
		relation:    relation,
		actor:       actor,
		used:        mapset.Make[types.IRI](0),
		splits:      map[types.IRI]types.IRI{},
		discarded:   mapset.Make[types.IRI](0),
		maybeOrphan: mapset.Make[types.IRI](0),
	}
	if e.graph == nil {
		e.graph = types.Graph{}
	}
	for iri, thing := range e.graph {
		e.used.Add(iri)
		for _, objects := range thing.All() {
			for o := range objects.All() {
				e.used.Add(o)
			}
		}
	}
	return e
}

func (e *editor) lookupRule(iri types.IRI) (types.Rule, bool) {
	return e.view().RuleByIRI(iri)
}

// view returns an ACR view over the working graph. The graph map is
// shared, so the view tracks edits.
func (e *editor) view() types.AccessControlResource {
	return types.NewAccessControlResource(e.acrIRI, e.graph)
}

// editGraph rewrites the policies of one named set so that the actor's
// effective access over the set's modes becomes exactly target.
//
// Policies that currently apply to the actor are taken out of the
// actor's resolution: a policy whose rules name nobody but the actor is
// dropped from the set entirely, and any other applicable policy is
// rewritten so that it stops matching the actor while matching every
// other actor exactly as before. A single new policy with a single new
// allOf rule then carries the actor's target modes; when every target
// mode is Unset, no new policy is registered at all, since the absence
// of access is the absence of a declaration.
func (e *editor) editGraph(setPredicate types.IRI, target []modeTarget) {
	acrThing, ok := e.graph.Get(e.acrIRI)
	if !ok {
		acrThing = types.NewThing(e.acrIRI)
	}

	for _, ref := range mapset.Sorted(acrThing.Get(setPredicate)) {
		policy, ok := e.view().PolicyByIRI(ref)
		if !ok {
			continue
		}
		if !eval.PolicyApplies(policy, e.relation, e.actor, e.lookupRule) {
			continue
		}
		if e.exclusivelyAboutActor(policy) {
			acrThing = acrThing.Remove(setPredicate, ref)
			e.discarded.Add(ref)
			for _, role := range []types.IRISet{policy.AllOf, policy.AnyOf, policy.NoneOf} {
				for ruleRef := range role.All() {
					e.maybeOrphan.Add(ruleRef)
				}
			}
		} else {
			e.excludeActor(ref)
		}
	}

	var allow, deny []types.IRI
	for _, mt := range target {
		switch mt.grant {
		case types.Granted:
			allow = append(allow, mt.mode)
		case types.Denied:
			deny = append(deny, mt.mode)
		}
	}
	if len(allow) > 0 || len(deny) > 0 {
		ruleIRI := e.freshRule()
		e.graph[ruleIRI] = types.NewThing(ruleIRI).
			Set(types.RDFType, types.ACPRule).
			Set(e.relation.Predicate(), e.actor)

		policyIRI := e.freshPolicy()
		policyThing := types.NewThing(policyIRI).
			Set(types.RDFType, types.ACPPolicy).
			Set(types.ACPAllOf, ruleIRI)
		if len(allow) > 0 {
			policyThing = policyThing.Set(types.ACPAllow, allow...)
		}
		if len(deny) > 0 {
			policyThing = policyThing.Set(types.ACPDeny, deny...)
		}
		e.graph[policyIRI] = policyThing
		acrThing = acrThing.Add(setPredicate, policyIRI)
	}

	e.graph[e.acrIRI] = acrThing
}

// exclusivelyAboutActor reports whether an applicable policy matches
// the actor and provably nobody else: every actor any of its allOf or
// anyOf rules names is the edited actor under the edited relation, and
// at least one such rule exists. A policy with no matching rules
// applies to everyone and is never exclusive. Reserved actor classes
// count as other actors.
func (e *editor) exclusivelyAboutActor(policy types.Policy) bool {
	restrictive := false
	for _, role := range []types.IRISet{policy.AllOf, policy.AnyOf} {
		for ref := range role.All() {
			rule, ok := e.lookupRule(ref)
			if !ok {
				continue
			}
			for _, rel := range types.Relations {
				for a := range rule.Actors(rel).All() {
					if rel != e.relation || a != e.actor {
						return false
					}
					restrictive = true
				}
			}
		}
	}
	return restrictive
}

// excludeActor rewrites a shared policy so that it no longer applies to
// the actor while its applicability to every other actor is unchanged.
// Each allOf or anyOf rule naming the actor is replaced by a fresh copy
// without the actor; the original rule is left untouched for any other
// policy that references it. The copy is kept even when it ends up
// naming nobody: dropping the reference instead could leave an empty
// combinator behind, and an empty combinator matches vacuously.
func (e *editor) excludeActor(policyIRI types.IRI) {
	policyThing := e.graph[policyIRI]
	relPred := e.relation.Predicate()
	edited := false

	for _, role := range []types.IRI{types.ACPAllOf, types.ACPAnyOf} {
		for _, ref := range mapset.Sorted(policyThing.Get(role)) {
			ruleThing, ok := e.graph.Get(ref)
			if !ok {
				continue
			}
			if !ruleThing.Get(relPred).Contains(e.actor) {
				continue
			}
			split, ok := e.splits[ref]
			if !ok {
				split = e.freshRule()
				e.graph[split] = ruleThing.WithIRI(split).Remove(relPred, e.actor)
				e.splits[ref] = split
				e.maybeOrphan.Add(ref)
			}
			policyThing = policyThing.Remove(role, ref).Add(role, split)
			edited = true
		}
	}

	if !edited {
		// The policy applies to the actor without naming them, i.e. it
		// has no effective allOf or anyOf restriction. Fence the actor
		// off with a noneOf rule naming only them.
		fence := e.freshRule()
		e.graph[fence] = types.NewThing(fence).
			Set(types.RDFType, types.ACPRule).
			Set(relPred, e.actor)
		policyThing = policyThing.Add(types.ACPNoneOf, fence)
	}

	e.graph[policyIRI] = policyThing
}

// collectGarbage removes discarded policies and orphaned rules that are
// no longer reachable from any of the four named policy sets. Subjects
// the edit never touched are left alone.
func (e *editor) collectGarbage() {
	if e.discarded.Len() == 0 && e.maybeOrphan.Len() == 0 {
		return
	}

	reachable := mapset.Make[types.IRI](0)
	view := e.view()
	for ref := range eval.ActivePolicyRefs(view).All() {
		reachable.Add(ref)
		policy, ok := view.PolicyByIRI(ref)
		if !ok {
			continue
		}
		for _, role := range []types.IRISet{policy.AllOf, policy.AnyOf, policy.NoneOf} {
			for ruleRef := range role.All() {
				reachable.Add(ruleRef)
			}
		}
	}

	for _, candidate := range []*mapset.MapSet[types.IRI]{e.discarded, e.maybeOrphan} {
		for iri := range candidate.All() {
			if !reachable.Contains(iri) {
				delete(e.graph, iri)
			}
		}
	}
}

func (e *editor) freshPolicy() types.IRI {
	return e.fresh("policy", &e.nextPolicy)
}

func (e *editor) freshRule() types.IRI {
	return e.fresh("rule", &e.nextRule)
}

func (e *editor) fresh(prefix string, next *int) types.IRI {
	doc := e.acrIRI.Document()
	for {
		iri := types.IRI(fmt.Sprintf("%s#%s%d", doc, prefix, *next))
		*next++
		if e.used.Add(iri) {
			return iri
		}
	}
}
