package types

// An AccessControlResource is the control graph governing exactly one
// resource. It pairs the ACR's own IRI with the graph of policy and
// rule declarations fetched from that document. The four named policy
// sets live as statements on the ACR's own subject.
//
// AccessControlResources are read-only inputs to the engine; the write
// path produces a new value rather than changing its input.
type AccessControlResource struct {
	iri   IRI
	graph Graph
}

// NewAccessControlResource returns an ACR rooted at the given IRI over
// the given graph.
func NewAccessControlResource(iri IRI, graph Graph) AccessControlResource {
	return AccessControlResource{iri: iri, graph: graph}
}

// IRI returns the ACR's own IRI.
func (r AccessControlResource) IRI() IRI { return r.iri }

// Graph returns the underlying graph.
func (r AccessControlResource) Graph() Graph { return r.graph }

// Equal reports whether two ACRs have the same IRI and equal graphs.
func (r AccessControlResource) Equal(o AccessControlResource) bool {
	return r.iri == o.iri && r.graph.Equal(o.graph)
}

func (r AccessControlResource) namedSet(predicate IRI) IRISet {
	t, ok := r.graph.Get(r.iri)
	if !ok {
		return IRISet{}
	}
	return t.Get(predicate)
}

// Policies returns the IRIs of the policies governing the resource.
func (r AccessControlResource) Policies() IRISet {
	return r.namedSet(ACPApply)
}

// MemberPolicies returns the IRIs of the policies governing the
// resource's children, if it is a container.
func (r AccessControlResource) MemberPolicies() IRISet {
	return r.namedSet(ACPApplyMembers)
}

// ACRPolicies returns the IRIs of the policies governing access to the
// ACR itself.
func (r AccessControlResource) ACRPolicies() IRISet {
	return r.namedSet(ACPAccess)
}

// MemberACRPolicies returns the IRIs of the policies governing access
// to the children's ACRs.
func (r AccessControlResource) MemberACRPolicies() IRISet {
	return r.namedSet(ACPAccessMembers)
}

// A Policy is a typed view over one policy subject: a set of allowed
// modes, a set of denied modes, and rule references in the three
// combinator roles.
type Policy struct {
	IRI    IRI
	Allow  IRISet
	Deny   IRISet
	AllOf  IRISet
	AnyOf  IRISet
	NoneOf IRISet
}

// PolicyByIRI resolves a policy within the ACR's graph. A missing
// subject resolves to false: dangling policy references are treated as
// absent, never as errors.
func (r AccessControlResource) PolicyByIRI(iri IRI) (Policy, bool) {
	t, ok := r.graph.Get(iri)
	if !ok {
		return Policy{}, false
	}
	return Policy{
		IRI:    iri,
		Allow:  t.Get(ACPAllow),
		Deny:   t.Get(ACPDeny),
		AllOf:  t.Get(ACPAllOf),
		AnyOf:  t.Get(ACPAnyOf),
		NoneOf: t.Get(ACPNoneOf),
	}, true
}

// A Rule is a typed view over one rule subject, mapping actor relations
// to the sets of actor IRIs the rule names.
type Rule struct {
	iri   IRI
	thing Thing
}

// IRI returns the rule's subject IRI.
func (r Rule) IRI() IRI { return r.iri }

// Actors returns the actor IRIs the rule names under the given
// relation.
func (r Rule) Actors(relation ActorRelation) IRISet {
	return r.thing.Get(relation.Predicate())
}

// RuleByIRI resolves a rule within the ACR's graph. A missing subject
// resolves to false; an absent rule matches no actor.
func (r AccessControlResource) RuleByIRI(iri IRI) (Rule, bool) {
	t, ok := r.graph.Get(iri)
	if !ok {
		return Rule{}, false
	}
	return Rule{iri: iri, thing: t}, true
}
