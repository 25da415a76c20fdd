package markup

import "fmt"

// Alignment is a many-to-many relation over segment identities: a
// src-keyed multimap exposing query by either side. Segment identity is
// the *Segment pointer, so two occurrences of an identical word never
// collide as alignment keys.
type Alignment struct {
	forward map[*Segment]map[*Segment]struct{} // src -> set(tgt)
	tgtRefs map[*Segment]int                   // tgt -> number of srcs aligned to it
}

// NewAlignment returns an empty Alignment. The empty Alignment is the
// identity element for Union.
func NewAlignment() *Alignment {
	return &Alignment{
		forward: make(map[*Segment]map[*Segment]struct{}),
		tgtRefs: make(map[*Segment]int),
	}
}

// IsEmpty reports whether the relation has no pairs.
func (a *Alignment) IsEmpty() bool {
	return len(a.forward) == 0
}

// Add inserts (src, tgt). Adding an already-present pair is a no-op.
func (a *Alignment) Add(src, tgt *Segment) {
	set, ok := a.forward[src]
	if !ok {
		set = make(map[*Segment]struct{})
		a.forward[src] = set
	}
	if _, exists := set[tgt]; exists {
		return
	}
	set[tgt] = struct{}{}
	a.tgtRefs[tgt]++
}

// Remove deletes (src, tgt). Removing an absent pair returns
// ErrAbsentAlignment.
func (a *Alignment) Remove(src, tgt *Segment) error {
	set, ok := a.forward[src]
	if !ok {
		return fmt.Errorf("%w: (%v, %v)", ErrAbsentAlignment, src, tgt)
	}
	if _, exists := set[tgt]; !exists {
		return fmt.Errorf("%w: (%v, %v)", ErrAbsentAlignment, src, tgt)
	}
	delete(set, tgt)
	if len(set) == 0 {
		delete(a.forward, src)
	}
	a.tgtRefs[tgt]--
	if a.tgtRefs[tgt] <= 0 {
		delete(a.tgtRefs, tgt)
	}
	return nil
}

// ContainsSrc reports whether src has any aligned target.
func (a *Alignment) ContainsSrc(src *Segment) bool {
	set, ok := a.forward[src]
	return ok && len(set) > 0
}

// ContainsTgt reports whether tgt has any aligned source, in O(1)
// amortized thanks to the tgtRefs reverse count.
func (a *Alignment) ContainsTgt(tgt *Segment) bool {
	return a.tgtRefs[tgt] > 0
}

// Get returns every target aligned to src, in unspecified order.
func (a *Alignment) Get(src *Segment) []*Segment {
	set := a.forward[src]
	out := make([]*Segment, 0, len(set))
	for tgt := range set {
		out = append(out, tgt)
	}
	return out
}

// Pairs returns every (src, tgt) pair in unspecified order.
func (a *Alignment) Pairs() [][2]*Segment {
	out := make([][2]*Segment, 0, len(a.tgtRefs))
	for src, set := range a.forward {
		for tgt := range set {
			out = append(out, [2]*Segment{src, tgt})
		}
	}
	return out
}

// Swap returns a new Alignment with every pair transposed.
func (a *Alignment) Swap() *Alignment {
	out := NewAlignment()
	for src, set := range a.forward {
		for tgt := range set {
			out.Add(tgt, src)
		}
	}
	return out
}

// Compose returns the relational composition of a and other through their
// shared middle: for every (x, m) in a and (m, y) in other, emits (x, y).
func (a *Alignment) Compose(other *Alignment) *Alignment {
	out := NewAlignment()
	for src, mids := range a.forward {
		for mid := range mids {
			for tgt := range other.forward[mid] {
				out.Add(src, tgt)
			}
		}
	}
	return out
}

// Union returns the union of a and other. The empty Alignment is the
// identity element.
func (a *Alignment) Union(other *Alignment) *Alignment {
	out := NewAlignment()
	for src, set := range a.forward {
		for tgt := range set {
			out.Add(src, tgt)
		}
	}
	for src, set := range other.forward {
		for tgt := range set {
			out.Add(src, tgt)
		}
	}
	return out
}
