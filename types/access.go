package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// A Grant is the resolution of one access mode for one actor. The zero
// value is Unset, meaning no policy explicitly grants or denies the
// mode. Callers must not conflate Unset with Denied: Unset means the
// server falls back to whatever its defaults are, Denied is an explicit
// refusal.
type Grant int8

const (
	Unset Grant = iota
	Granted
	Denied
)

// String implements fmt.Stringer.
func (g Grant) String() string {
	switch g {
	case Granted:
		return "granted"
	case Denied:
		return "denied"
	case Unset:
		return "unset"
	}
	return fmt.Sprintf("grant(%d)", int8(g))
}

// MarshalJSON encodes Granted as true, Denied as false and Unset as
// null, the nullable-boolean shape other clients of the protocol use.
func (g Grant) MarshalJSON() ([]byte, error) {
	switch g {
	case Granted:
		return []byte("true"), nil
	case Denied:
		return []byte("false"), nil
	case Unset:
		return []byte("null"), nil
	}
	return nil, fmt.Errorf("invalid grant value %d", int8(g))
}

// UnmarshalJSON decodes the nullable-boolean encoding produced by
// MarshalJSON.
func (g *Grant) UnmarshalJSON(b []byte) error {
	var v *bool
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch {
	case v == nil:
		*g = Unset
	case *v:
		*g = Granted
	default:
		*g = Denied
	}
	return nil
}

// merge returns o unless o is Unset, in which case it returns g.
func (g Grant) merge(o Grant) Grant {
	if o == Unset {
		return g
	}
	return o
}

// An Access record is the effective access of one actor to one
// resource. Read, Append and Write cover the resource itself;
// ControlRead and ControlWrite cover reading and changing the
// resource's Access Control Resource. Each field is independently
// tri-state.
//
// When passed to SetActorAccess, Unset fields mean "leave this mode as
// it is"; Granted and Denied request an explicit allow or deny.
type Access struct {
	Read         Grant `json:"read"`
	Append       Grant `json:"append"`
	Write        Grant `json:"write"`
	ControlRead  Grant `json:"controlRead"`
	ControlWrite Grant `json:"controlWrite"`
}

// Merge overlays the non-Unset fields of o onto a and returns the
// result.
func (a Access) Merge(o Access) Access {
	return Access{
		Read:         a.Read.merge(o.Read),
		Append:       a.Append.merge(o.Append),
		Write:        a.Write.merge(o.Write),
		ControlRead:  a.ControlRead.merge(o.ControlRead),
		ControlWrite: a.ControlWrite.merge(o.ControlWrite),
	}
}

// Equal reports whether two Access records resolve every mode
// identically.
func (a Access) Equal(o Access) bool { return a == o }

// IsEmpty reports whether every field is Unset.
func (a Access) IsEmpty() bool { return a == Access{} }

// String implements fmt.Stringer. Unset fields are omitted.
func (a Access) String() string {
	var parts []string
	add := func(name string, g Grant) {
		if g != Unset {
			parts = append(parts, name+"="+g.String())
		}
	}
	add("read", a.Read)
	add("append", a.Append)
	add("write", a.Write)
	add("controlRead", a.ControlRead)
	add("controlWrite", a.ControlWrite)
	if len(parts) == 0 {
		return "{}"
	}
	return "{" + strings.Join(parts, " ") + "}"
}
