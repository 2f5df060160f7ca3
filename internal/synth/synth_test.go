package synth_test

import (
	"testing"

	"github.com/solid-go/acp/internal/eval"
	"github.com/solid-go/acp/internal/synth"
	"github.com/solid-go/acp/internal/testutil"
	"github.com/solid-go/acp/types"
)

const (
	acrIRI = types.IRI("https://pod.example/resource?ext=acr")
	alice  = types.IRI("https://pod.example/alice#me")
	bob    = types.IRI("https://pod.example/bob#me")
)

func acrOf(things ...types.Thing) types.AccessControlResource {
	return types.NewAccessControlResource(acrIRI, types.Graph{}.Upsert(things...))
}

func accessOf(t *testing.T, acr types.AccessControlResource, relation types.ActorRelation, actor types.IRI) types.Access {
	t.Helper()
	a, ok := eval.ActorAccess(acr, relation, actor, nil)
	testutil.FatalIf(t, !ok, "access for %s is unexpectedly indeterminate", actor)
	return a
}

func TestSetActorAccessOnEmptyACR(t *testing.T) {
	t.Parallel()

	acr := acrOf()
	edited, ok := synth.SetActorAccess(acr, types.RelationAgent, alice,
		types.Access{Read: types.Granted}, nil)
	testutil.Equals(t, ok, true)
	testutil.Equals(t, accessOf(t, edited, types.RelationAgent, alice),
		types.Access{Read: types.Granted})
	testutil.Equals(t, accessOf(t, edited, types.RelationAgent, bob), types.Access{})
}

func TestSetActorAccessPreservesSharedRule(t *testing.T) {
	t.Parallel()

	acr := acrOf(
		types.NewThing(acrIRI).Set(types.ACPApply, acrIRI+"#p"),
		types.NewThing(acrIRI+"#p").
			Set(types.ACPAllow, types.ACLRead).
			Set(types.ACPAllOf, acrIRI+"#r"),
		types.NewThing(acrIRI+"#r").Set(types.ACPAgent, alice, bob),
	)

	edited, ok := synth.SetActorAccess(acr, types.RelationAgent, alice,
		types.Access{Read: types.Denied}, nil)
	testutil.Equals(t, ok, true)
	testutil.Equals(t, accessOf(t, edited, types.RelationAgent, alice),
		types.Access{Read: types.Denied})
	testutil.Equals(t, accessOf(t, edited, types.RelationAgent, bob),
		types.Access{Read: types.Granted})
}

func TestSetActorAccessOverridesSharedDeny(t *testing.T) {
	t.Parallel()

	// A shared policy denies; granting the actor must not disturb the
	// deny for the other actor, and the grant must actually win for the
	// edited actor despite deny-over-allow resolution.
	acr := acrOf(
		types.NewThing(acrIRI).Set(types.ACPApply, acrIRI+"#p"),
		types.NewThing(acrIRI+"#p").
			Set(types.ACPDeny, types.ACLWrite).
			Set(types.ACPAllOf, acrIRI+"#r"),
		types.NewThing(acrIRI+"#r").Set(types.ACPAgent, alice, bob),
	)

	edited, ok := synth.SetActorAccess(acr, types.RelationAgent, alice,
		types.Access{Write: types.Granted}, nil)
	testutil.Equals(t, ok, true)
	testutil.Equals(t, accessOf(t, edited, types.RelationAgent, alice),
		types.Access{Write: types.Granted})
	testutil.Equals(t, accessOf(t, edited, types.RelationAgent, bob),
		types.Access{Write: types.Denied})
}

func TestSetActorAccessDiscardsExclusivePolicy(t *testing.T) {
	t.Parallel()

	acr := acrOf(
		types.NewThing(acrIRI).Set(types.ACPApply, acrIRI+"#p"),
		types.NewThing(acrIRI+"#p").
			Set(types.ACPAllow, types.ACLRead, types.ACLWrite).
			Set(types.ACPAllOf, acrIRI+"#r"),
		types.NewThing(acrIRI+"#r").Set(types.ACPAgent, alice),
	)

	edited, ok := synth.SetActorAccess(acr, types.RelationAgent, alice,
		types.Access{Read: types.Denied, Write: types.Denied}, nil)
	testutil.Equals(t, ok, true)
	testutil.Equals(t, accessOf(t, edited, types.RelationAgent, alice),
		types.Access{Read: types.Denied, Write: types.Denied})

	// The policy and rule that only ever spoke about the actor are gone.
	testutil.Equals(t, edited.Graph().Contains(acrIRI+"#p"), false)
	testutil.Equals(t, edited.Graph().Contains(acrIRI+"#r"), false)
}

func TestSetActorAccessFencesVacuousPolicy(t *testing.T) {
	t.Parallel()

	// A policy with no rules applies to everyone. Removing the actor's
	// access must exclude them without revoking everyone else's.
	acr := acrOf(
		types.NewThing(acrIRI).Set(types.ACPApply, acrIRI+"#p"),
		types.NewThing(acrIRI+"#p").Set(types.ACPAllow, types.ACLRead),
	)

	edited, ok := synth.SetActorAccess(acr, types.RelationAgent, alice,
		types.Access{Read: types.Denied}, nil)
	testutil.Equals(t, ok, true)
	testutil.Equals(t, accessOf(t, edited, types.RelationAgent, alice),
		types.Access{Read: types.Denied})
	testutil.Equals(t, accessOf(t, edited, types.RelationAgent, bob),
		types.Access{Read: types.Granted})
}

func TestSetActorAccessRemovalLeavesNoDeclaration(t *testing.T) {
	t.Parallel()

	acr := acrOf(
		types.NewThing(acrIRI).Set(types.ACPApply, acrIRI+"#p"),
		types.NewThing(acrIRI+"#p").
			Set(types.ACPAllow, types.ACLRead).
			Set(types.ACPAllOf, acrIRI+"#r"),
		types.NewThing(acrIRI+"#r").Set(types.ACPAgent, alice),
	)

	// Desired access cannot express "unset", so removal is reaching the
	// empty target through an ACR where the actor has nothing yet.
	empty := acrOf()
	edited, ok := synth.SetActorAccess(empty, types.RelationAgent, alice, types.Access{}, nil)
	testutil.Equals(t, ok, true)
	// No policy is registered for an all-Unset target.
	testutil.Equals(t, edited.Policies().Len(), 0)
	testutil.Equals(t, edited.ACRPolicies().Len(), 0)

	// Sanity: the populated ACR is untouched by the edit above.
	testutil.Equals(t, accessOf(t, acr, types.RelationAgent, alice),
		types.Access{Read: types.Granted})
}

func TestSetActorAccessControlGraphIsIndependent(t *testing.T) {
	t.Parallel()

	acr := acrOf(
		types.NewThing(acrIRI).Set(types.ACPAccess, acrIRI+"#p"),
		types.NewThing(acrIRI+"#p").
			Set(types.ACPAllow, types.ACLRead).
			Set(types.ACPAllOf, acrIRI+"#r"),
		types.NewThing(acrIRI+"#r").Set(types.ACPAgent, alice, bob),
	)

	edited, ok := synth.SetActorAccess(acr, types.RelationAgent, alice, types.Access{
		Read:         types.Granted,
		ControlRead:  types.Denied,
		ControlWrite: types.Granted,
	}, nil)
	testutil.Equals(t, ok, true)
	testutil.Equals(t, accessOf(t, edited, types.RelationAgent, alice), types.Access{
		Read:         types.Granted,
		ControlRead:  types.Denied,
		ControlWrite: types.Granted,
	})
	testutil.Equals(t, accessOf(t, edited, types.RelationAgent, bob),
		types.Access{ControlRead: types.Granted})
}

func TestSetActorAccessSharedPolicyInBothNamedSets(t *testing.T) {
	t.Parallel()

	acr := acrOf(
		types.NewThing(acrIRI).
			Set(types.ACPApply, acrIRI+"#p").
			Set(types.ACPAccess, acrIRI+"#p"),
		types.NewThing(acrIRI+"#p").
			Set(types.ACPAllow, types.ACLRead).
			Set(types.ACPAllOf, acrIRI+"#r"),
		types.NewThing(acrIRI+"#r").Set(types.ACPAgent, alice, bob),
	)

	edited, ok := synth.SetActorAccess(acr, types.RelationAgent, alice,
		types.Access{Read: types.Denied}, nil)
	testutil.Equals(t, ok, true)
	// ControlRead was granted by the same policy; leaving it
	// unspecified must keep it granted.
	testutil.Equals(t, accessOf(t, edited, types.RelationAgent, alice),
		types.Access{Read: types.Denied, ControlRead: types.Granted})
	testutil.Equals(t, accessOf(t, edited, types.RelationAgent, bob),
		types.Access{Read: types.Granted, ControlRead: types.Granted})
}

func TestSetActorAccessDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	acr := acrOf(
		types.NewThing(acrIRI).Set(types.ACPApply, acrIRI+"#p"),
		types.NewThing(acrIRI+"#p").
			Set(types.ACPAllow, types.ACLRead).
			Set(types.ACPAllOf, acrIRI+"#r"),
		types.NewThing(acrIRI+"#r").Set(types.ACPAgent, alice, bob),
	)
	snapshot := acrOf(
		types.NewThing(acrIRI).Set(types.ACPApply, acrIRI+"#p"),
		types.NewThing(acrIRI+"#p").
			Set(types.ACPAllow, types.ACLRead).
			Set(types.ACPAllOf, acrIRI+"#r"),
		types.NewThing(acrIRI+"#r").Set(types.ACPAgent, alice, bob),
	)

	_, ok := synth.SetActorAccess(acr, types.RelationAgent, alice,
		types.Access{Read: types.Denied, Write: types.Granted}, nil)
	testutil.Equals(t, ok, true)
	testutil.Equals(t, acr.Equal(snapshot), true)
}

func TestSetActorAccessRefusesInaccessibleACR(t *testing.T) {
	t.Parallel()

	acr := acrOf(types.NewThing(acrIRI).
		Set(types.ACPApply, "https://pod.example/other?ext=acr#policy"))
	_, ok := synth.SetActorAccess(acr, types.RelationAgent, alice,
		types.Access{Read: types.Granted}, nil)
	testutil.Equals(t, ok, false)
}

func TestSetActorAccessFreshIRIsAvoidDanglingReferences(t *testing.T) {
	t.Parallel()

	// #policy0 and #rule0 are dangling references of an existing
	// policy. Minting them as new subjects would make that policy's
	// references resolve and change its meaning.
	acr := acrOf(
		types.NewThing(acrIRI).Set(types.ACPApply, acrIRI+"#p"),
		types.NewThing(acrIRI+"#p").
			Set(types.ACPDeny, types.ACLRead).
			Set(types.ACPAnyOf, acrIRI+"#rule0", acrIRI+"#policy0"),
	)

	edited, ok := synth.SetActorAccess(acr, types.RelationAgent, alice,
		types.Access{Read: types.Granted}, nil)
	testutil.Equals(t, ok, true)
	testutil.Equals(t, accessOf(t, edited, types.RelationAgent, alice),
		types.Access{Read: types.Granted})
	testutil.Equals(t, edited.Graph().Contains(acrIRI+"#rule0"), false)
}

func TestSetActorAccessGroupRelation(t *testing.T) {
	t.Parallel()

	const eng = types.IRI("https://pod.example/groups#eng")
	acr := acrOf(
		types.NewThing(acrIRI).Set(types.ACPApply, acrIRI+"#p"),
		types.NewThing(acrIRI+"#p").
			Set(types.ACPAllow, types.ACLRead).
			Set(types.ACPAllOf, acrIRI+"#r"),
		types.NewThing(acrIRI+"#r").
			Set(types.ACPGroup, eng).
			Set(types.ACPAgent, alice),
	)

	edited, ok := synth.SetActorAccess(acr, types.RelationGroup, eng,
		types.Access{Read: types.Denied, Append: types.Granted}, nil)
	testutil.Equals(t, ok, true)
	testutil.Equals(t, accessOf(t, edited, types.RelationGroup, eng),
		types.Access{Read: types.Denied, Append: types.Granted})
	// The agent named by the same rule keeps their read access.
	testutil.Equals(t, accessOf(t, edited, types.RelationAgent, alice),
		types.Access{Read: types.Granted})
}
