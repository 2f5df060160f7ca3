package types

// The vocabulary below is a fixed external contract: the exact IRI
// strings the Access Control Policies (ACP) and Web Access Control
// vocabularies define. The engine recognizes these terms and nothing
// else.

const (
	acpNS = "http://www.w3.org/ns/solid/acp#"
	aclNS = "http://www.w3.org/ns/auth/acl#"
	rdfNS = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
)

// RDFType is the rdf:type predicate, used to mark policies and rules
// with their vocabulary class.
const RDFType IRI = rdfNS + "type"

// ACP resource-kind markers.
const (
	ACPAccessControlResource IRI = acpNS + "AccessControlResource"
	ACPPolicy                IRI = acpNS + "Policy"
	ACPRule                  IRI = acpNS + "Rule"
)

// ACP relational predicates. Apply and ApplyMembers populate the sets of
// policies governing a resource and its children; Access and
// AccessMembers populate the sets governing the ACR itself and the
// children's ACRs.
const (
	ACPApply         IRI = acpNS + "apply"
	ACPApplyMembers  IRI = acpNS + "applyMembers"
	ACPAccess        IRI = acpNS + "access"
	ACPAccessMembers IRI = acpNS + "accessMembers"
)

// ACP policy predicates.
const (
	ACPAllow  IRI = acpNS + "allow"
	ACPDeny   IRI = acpNS + "deny"
	ACPAllOf  IRI = acpNS + "allOf"
	ACPAnyOf  IRI = acpNS + "anyOf"
	ACPNoneOf IRI = acpNS + "noneOf"
)

// ACP rule predicates.
const (
	ACPAgent IRI = acpNS + "agent"
	ACPGroup IRI = acpNS + "group"
)

// Reserved actor classes. These are matched as literal IRIs by the rule
// matcher and are never expanded to their members.
const (
	PublicAgent        IRI = acpNS + "PublicAgent"
	AuthenticatedAgent IRI = acpNS + "AuthenticatedAgent"
	CreatorAgent       IRI = acpNS + "CreatorAgent"
)

// Access modes.
const (
	ACLRead   IRI = aclNS + "Read"
	ACLAppend IRI = aclNS + "Append"
	ACLWrite  IRI = aclNS + "Write"
)

// An ActorRelation selects which kind of actor a rule predicate names.
type ActorRelation IRI

const (
	RelationAgent ActorRelation = ActorRelation(ACPAgent)
	RelationGroup ActorRelation = ActorRelation(ACPGroup)
)

// Predicate returns the rule predicate IRI for the relation.
func (r ActorRelation) Predicate() IRI { return IRI(r) }

// Relations lists every actor relation a rule can name actors under.
var Relations = []ActorRelation{RelationAgent, RelationGroup}

// IsReservedActor reports whether the actor IRI is one of the reserved
// actor classes.
func IsReservedActor(actor IRI) bool {
	switch actor {
	case PublicAgent, AuthenticatedAgent, CreatorAgent:
		return true
	}
	return false
}
