package types

import (
	"iter"
	"maps"

	"github.com/solid-go/acp/internal/mapset"
)

// An IRISet is an immutable set of IRIs.
type IRISet = mapset.ImmutableMapSet[IRI]

// NewIRISet returns an IRISet containing the given IRIs.
func NewIRISet(iris ...IRI) IRISet {
	return mapset.Immutable(iris...)
}

// A Thing is one subject in a graph: an IRI plus a map from predicate
// IRIs to sets of object IRIs. Things are value types: Set, Add and
// Remove return updated copies and never change their receiver, so
// Things may be shared freely.
type Thing struct {
	iri   IRI
	props map[IRI]IRISet
}

// NewThing returns a Thing with the given subject IRI and no
// statements.
func NewThing(iri IRI) Thing {
	return Thing{iri: iri}
}

// IRI returns the subject IRI of the Thing.
func (t Thing) IRI() IRI { return t.iri }

// Get returns the set of objects for the given predicate. A predicate
// with no statements yields the empty set.
func (t Thing) Get(predicate IRI) IRISet {
	return t.props[predicate]
}

// Set replaces all statements for the predicate with the given objects
// and returns the updated Thing. Setting no objects removes the
// predicate.
func (t Thing) Set(predicate IRI, objects ...IRI) Thing {
	out := t.clone()
	if len(objects) == 0 {
		delete(out.props, predicate)
		return out
	}
	out.props[predicate] = NewIRISet(objects...)
	return out
}

// Add adds objects to the predicate's set and returns the updated
// Thing.
func (t Thing) Add(predicate IRI, objects ...IRI) Thing {
	if len(objects) == 0 {
		return t
	}
	out := t.clone()
	s := mapset.FromSeq(out.props[predicate].All())
	for _, o := range objects {
		s.Add(o)
	}
	out.props[predicate] = s.Immutable()
	return out
}

// Remove removes objects from the predicate's set and returns the
// updated Thing. An emptied predicate is dropped.
func (t Thing) Remove(predicate IRI, objects ...IRI) Thing {
	out := t.clone()
	s := mapset.FromSeq(out.props[predicate].All())
	for _, o := range objects {
		s.Remove(o)
	}
	if s.Len() == 0 {
		delete(out.props, predicate)
		return out
	}
	out.props[predicate] = s.Immutable()
	return out
}

// WithIRI returns a Thing carrying the same statements under a new
// subject IRI.
func (t Thing) WithIRI(iri IRI) Thing {
	out := t.clone()
	out.iri = iri
	return out
}

// All returns an iterator over the Thing's statements, predicate by
// predicate, in no particular order.
func (t Thing) All() iter.Seq2[IRI, IRISet] {
	return func(yield func(IRI, IRISet) bool) {
		for p, s := range t.props {
			if !yield(p, s) {
				return
			}
		}
	}
}

// Equal reports whether two Things have the same subject and the same
// statements.
func (t Thing) Equal(o Thing) bool {
	if t.iri != o.iri || len(t.props) != len(o.props) {
		return false
	}
	for p, s := range t.props {
		if !s.Equal(o.props[p]) {
			return false
		}
	}
	return true
}

func (t Thing) clone() Thing {
	out := Thing{iri: t.iri, props: make(map[IRI]IRISet, len(t.props)+1)}
	maps.Copy(out.props, t.props)
	return out
}

// A ThingGetter resolves subjects within a graph.
type ThingGetter interface {
	Get(iri IRI) (Thing, bool)
}

var _ ThingGetter = Graph{}

// A Graph is a collection of Things keyed by subject IRI. Like Thing it
// has value semantics: Upsert and Delete return new Graphs and leave
// the receiver untouched.
type Graph map[IRI]Thing

// Get returns the Thing with the given subject IRI, if present.
func (g Graph) Get(iri IRI) (Thing, bool) {
	t, ok := g[iri]
	return t, ok
}

// Contains reports whether a subject exists in the graph.
func (g Graph) Contains(iri IRI) bool {
	_, ok := g[iri]
	return ok
}

// Clone returns a shallow copy of the graph. Things are immutable, so a
// shallow copy is fully independent.
func (g Graph) Clone() Graph {
	return maps.Clone(g)
}

// Upsert adds or replaces the Thing under its own subject IRI and
// returns a new Graph.
func (g Graph) Upsert(things ...Thing) Graph {
	out := g.Clone()
	if out == nil {
		out = Graph{}
	}
	for _, t := range things {
		out[t.IRI()] = t
	}
	return out
}

// Delete removes subjects from the graph and returns a new Graph.
func (g Graph) Delete(iris ...IRI) Graph {
	out := g.Clone()
	for _, iri := range iris {
		delete(out, iri)
	}
	return out
}

// Equal reports whether two graphs contain equal Things under the same
// subjects.
func (g Graph) Equal(o Graph) bool {
	if len(g) != len(o) {
		return false
	}
	for iri, t := range g {
		ot, ok := o[iri]
		if !ok || !t.Equal(ot) {
			return false
		}
	}
	return true
}
