package types_test

import (
	"encoding/json"
	"testing"

	"github.com/solid-go/acp/internal/testutil"
	"github.com/solid-go/acp/types"
)

func TestGrant(t *testing.T) {
	t.Parallel()

	t.Run("ZeroValueIsUnset", func(t *testing.T) {
		t.Parallel()
		var g types.Grant
		testutil.Equals(t, g, types.Unset)
	})

	t.Run("String", func(t *testing.T) {
		t.Parallel()
		testutil.Equals(t, types.Granted.String(), "granted")
		testutil.Equals(t, types.Denied.String(), "denied")
		testutil.Equals(t, types.Unset.String(), "unset")
	})

	t.Run("JSONRoundTrip", func(t *testing.T) {
		t.Parallel()
		for _, g := range []types.Grant{types.Unset, types.Granted, types.Denied} {
			b, err := json.Marshal(g)
			testutil.OK(t, err)
			var got types.Grant
			testutil.OK(t, json.Unmarshal(b, &got))
			testutil.Equals(t, got, g)
		}
	})

	t.Run("MarshalEncoding", func(t *testing.T) {
		t.Parallel()
		b, err := json.Marshal(types.Access{Read: types.Granted, Write: types.Denied})
		testutil.OK(t, err)
		testutil.Equals(t, string(b),
			`{"read":true,"append":null,"write":false,"controlRead":null,"controlWrite":null}`)
	})

	t.Run("UnmarshalRejectsGarbage", func(t *testing.T) {
		t.Parallel()
		var g types.Grant
		testutil.Error(t, json.Unmarshal([]byte(`"yes"`), &g))
	})
}

func TestAccess(t *testing.T) {
	t.Parallel()

	t.Run("MergeOverlaysNonUnset", func(t *testing.T) {
		t.Parallel()
		base := types.Access{Read: types.Granted, Write: types.Denied}
		overlay := types.Access{Write: types.Granted, ControlRead: types.Denied}
		testutil.Equals(t, base.Merge(overlay), types.Access{
			Read:        types.Granted,
			Write:       types.Granted,
			ControlRead: types.Denied,
		})
	})

	t.Run("MergeWithEmptyIsIdentity", func(t *testing.T) {
		t.Parallel()
		a := types.Access{Append: types.Granted, ControlWrite: types.Denied}
		testutil.Equals(t, a.Merge(types.Access{}), a)
		testutil.Equals(t, types.Access{}.Merge(a), a)
	})

	t.Run("IsEmpty", func(t *testing.T) {
		t.Parallel()
		testutil.Equals(t, types.Access{}.IsEmpty(), true)
		testutil.Equals(t, types.Access{Append: types.Denied}.IsEmpty(), false)
	})

	t.Run("String", func(t *testing.T) {
		t.Parallel()
		testutil.Equals(t, types.Access{}.String(), "{}")
		testutil.Equals(t,
			types.Access{Read: types.Granted, ControlWrite: types.Denied}.String(),
			"{read=granted controlWrite=denied}")
	})
}

func TestIRI(t *testing.T) {
	t.Parallel()

	t.Run("DocumentStripsFragment", func(t *testing.T) {
		t.Parallel()
		testutil.Equals(t,
			types.IRI("https://pod.example/r?ext=acr#policy1").Document(),
			types.IRI("https://pod.example/r?ext=acr"))
		testutil.Equals(t,
			types.IRI("https://pod.example/r").Document(),
			types.IRI("https://pod.example/r"))
	})

	t.Run("InDocumentKeepsQuery", func(t *testing.T) {
		t.Parallel()
		acr := types.IRI("https://pod.example/r?ext=acr")
		testutil.Equals(t, types.IRI("https://pod.example/r?ext=acr#p").InDocument(acr), true)
		testutil.Equals(t, types.IRI("https://pod.example/other?ext=acr#p").InDocument(acr), false)
		testutil.Equals(t, types.IRI("https://pod.example/r#p").InDocument(acr), false)
	})

	t.Run("IsReservedActor", func(t *testing.T) {
		t.Parallel()
		testutil.Equals(t, types.IsReservedActor(types.PublicAgent), true)
		testutil.Equals(t, types.IsReservedActor(types.AuthenticatedAgent), true)
		testutil.Equals(t, types.IsReservedActor(types.CreatorAgent), true)
		testutil.Equals(t, types.IsReservedActor("https://who.example/card#me"), false)
	})
}
