// Package acp resolves and edits Access Control Policies for resources
// stored on a Solid Pod.
//
// A resource's Access Control Resource (ACR) is a small graph of
// policies and rules granting or denying Read, Append and Write modes
// to agents, groups and reserved actor classes such as the public. The
// read path answers what access an actor effectively has; the write
// path rewrites the graph so that an actor ends up with exactly a
// desired access record, without disturbing any other actor's access.
//
// The package is purely computational: it performs no I/O, parses no
// serialization and enforces nothing. Fetching and saving ACRs is the
// caller's concern. Outcomes that cannot be soundly computed, because
// the ACR depends on policies declared in documents that were not
// fetched, are reported through comma-ok returns rather than errors.
package acp

import (
	"github.com/solid-go/acp/internal/eval"
	"github.com/solid-go/acp/internal/synth"
	"github.com/solid-go/acp/types"
)

// An Option adjusts how the engine inspects an ACR.
type Option func(*options)

type options struct {
	trustedPrefixes []types.IRI
}

// WithTrustedPolicyPrefixes declares IRI prefixes of external policies
// that are known to be benign, such as server-managed defaults. Active
// policies matching one of the prefixes are skipped instead of making
// the ACR inaccessible.
func WithTrustedPolicyPrefixes(prefixes ...types.IRI) Option {
	return func(o *options) {
		o.trustedPrefixes = append(o.trustedPrefixes, prefixes...)
	}
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// HasInaccessiblePolicies reports whether the ACR actively depends on
// policies or rules declared outside its own document. When it returns
// true, every access computation over the ACR is indeterminate.
func HasInaccessiblePolicies(acr types.AccessControlResource, opts ...Option) bool {
	o := buildOptions(opts)
	return eval.HasInaccessiblePolicies(acr, o.trustedPrefixes)
}

// GetActorAccess returns the actor's effective access to the resource
// the ACR governs. ok is false when the access cannot be soundly
// computed; no partial answer is ever returned.
func GetActorAccess(acr types.AccessControlResource, relation types.ActorRelation, actor types.IRI, opts ...Option) (types.Access, bool) {
	o := buildOptions(opts)
	return eval.ActorAccess(acr, relation, actor, o.trustedPrefixes)
}

// GetActorAccessAll returns the effective access of every concrete
// actor the ACR mentions under the given relation, including actors
// only named by noneOf rules. Reserved actor classes are not
// enumerated; use GetPublicAccess and friends for those.
func GetActorAccessAll(acr types.AccessControlResource, relation types.ActorRelation, opts ...Option) (map[types.IRI]types.Access, bool) {
	o := buildOptions(opts)
	return eval.ActorAccessAll(acr, relation, o.trustedPrefixes)
}

// GetAgentAccess returns the effective access of the agent with the
// given WebID.
func GetAgentAccess(acr types.AccessControlResource, webID types.IRI, opts ...Option) (types.Access, bool) {
	return GetActorAccess(acr, types.RelationAgent, webID, opts...)
}

// GetAgentAccessAll returns the effective access of every agent the ACR
// mentions.
func GetAgentAccessAll(acr types.AccessControlResource, opts ...Option) (map[types.IRI]types.Access, bool) {
	return GetActorAccessAll(acr, types.RelationAgent, opts...)
}

// GetGroupAccess returns the effective access of the given group.
func GetGroupAccess(acr types.AccessControlResource, group types.IRI, opts ...Option) (types.Access, bool) {
	return GetActorAccess(acr, types.RelationGroup, group, opts...)
}

// GetGroupAccessAll returns the effective access of every group the ACR
// mentions.
func GetGroupAccessAll(acr types.AccessControlResource, opts ...Option) (map[types.IRI]types.Access, bool) {
	return GetActorAccessAll(acr, types.RelationGroup, opts...)
}

// GetPublicAccess returns the access granted to everyone.
func GetPublicAccess(acr types.AccessControlResource, opts ...Option) (types.Access, bool) {
	return GetActorAccess(acr, types.RelationAgent, types.PublicAgent, opts...)
}

// GetAuthenticatedAccess returns the access granted to anyone logged
// in.
func GetAuthenticatedAccess(acr types.AccessControlResource, opts ...Option) (types.Access, bool) {
	return GetActorAccess(acr, types.RelationAgent, types.AuthenticatedAgent, opts...)
}

// GetCreatorAccess returns the access granted to the resource's
// creator.
func GetCreatorAccess(acr types.AccessControlResource, opts ...Option) (types.Access, bool) {
	return GetActorAccess(acr, types.RelationAgent, types.CreatorAgent, opts...)
}

// SetActorAccess returns a new ACR in which the actor's effective
// access equals desired; modes desired leaves Unset keep their current
// resolution. The computed access of every other actor the ACR
// mentions is unchanged. The input is not modified.
//
// ok is false when the ACR depends on external policies or rules; an
// ACR that cannot be fully inspected is never edited.
func SetActorAccess(acr types.AccessControlResource, relation types.ActorRelation, actor types.IRI, desired types.Access, opts ...Option) (types.AccessControlResource, bool) {
	o := buildOptions(opts)
	return synth.SetActorAccess(acr, relation, actor, desired, o.trustedPrefixes)
}

// SetAgentAccess edits the access of the agent with the given WebID.
func SetAgentAccess(acr types.AccessControlResource, webID types.IRI, desired types.Access, opts ...Option) (types.AccessControlResource, bool) {
	return SetActorAccess(acr, types.RelationAgent, webID, desired, opts...)
}

// SetGroupAccess edits the access of the given group.
func SetGroupAccess(acr types.AccessControlResource, group types.IRI, desired types.Access, opts ...Option) (types.AccessControlResource, bool) {
	return SetActorAccess(acr, types.RelationGroup, group, desired, opts...)
}

// SetPublicAccess edits the access granted to everyone.
func SetPublicAccess(acr types.AccessControlResource, desired types.Access, opts ...Option) (types.AccessControlResource, bool) {
	return SetActorAccess(acr, types.RelationAgent, types.PublicAgent, desired, opts...)
}

// SetAuthenticatedAccess edits the access granted to anyone logged in.
func SetAuthenticatedAccess(acr types.AccessControlResource, desired types.Access, opts ...Option) (types.AccessControlResource, bool) {
	return SetActorAccess(acr, types.RelationAgent, types.AuthenticatedAgent, desired, opts...)
}
