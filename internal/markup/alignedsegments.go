package markup

import "fmt"

// AlignedSegments pairs a source and target SegmentedText with the
// Alignment connecting their segment identities.
type AlignedSegments struct {
	Src       *SegmentedText
	Tgt       *SegmentedText
	Alignment *Alignment
}

// NewAlignedSegments builds an AlignedSegments, defaulting any nil
// argument to an empty value.
func NewAlignedSegments(src, tgt *SegmentedText, alignment *Alignment) *AlignedSegments {
	if src == nil {
		src = NewSegmentedText(nil)
	}
	if tgt == nil {
		tgt = NewSegmentedText(nil)
	}
	if alignment == nil {
		alignment = NewAlignment()
	}
	return &AlignedSegments{Src: src, Tgt: tgt, Alignment: alignment}
}

// Concat concatenates two AlignedSegments: sources and targets each
// concatenate in order, and the alignment is their union (segment
// identities never collide, so no offset remapping is needed).
func (as *AlignedSegments) Concat(other *AlignedSegments) *AlignedSegments {
	src := NewSegmentedText(append(append([]*Segment{}, as.Src.Segments...), other.Src.Segments...))
	tgt := NewSegmentedText(append(append([]*Segment{}, as.Tgt.Segments...), other.Tgt.Segments...))
	return NewAlignedSegments(src, tgt, as.Alignment.Union(other.Alignment))
}

// Compose requires str(as.Tgt) == str(other.Src); the result's source is
// as.Src, its target is other.Tgt, and its alignment is the relational
// composition through the shared middle.
func (as *AlignedSegments) Compose(other *AlignedSegments) (*AlignedSegments, error) {
	if as.Tgt.String() != other.Src.String() {
		return nil, fmt.Errorf("%w: %q != %q", ErrComposeMismatch, as.Tgt.String(), other.Src.String())
	}
	return NewAlignedSegments(as.Src, other.Tgt, as.Alignment.Compose(other.Alignment)), nil
}

// SwapSides exchanges src and tgt, swapping the alignment accordingly.
func (as *AlignedSegments) SwapSides() *AlignedSegments {
	return NewAlignedSegments(as.Tgt, as.Src, as.Alignment.Swap())
}

// InsertSegment inserts seg into tgt at position index. The alignment is
// unchanged: segments are identified by identity, never by index.
func (as *AlignedSegments) InsertSegment(index int, seg *Segment) {
	as.Tgt.InsertAt(index, seg)
}

// RemoveSegment removes the segment at tgt position index. The alignment
// is left referencing that segment's identity; callers that also want the
// alignment pairs dropped should remove them explicitly first.
func (as *AlignedSegments) RemoveSegment(index int) {
	as.Tgt.RemoveAt(index)
}

// tgtIndex builds a position lookup for the current Tgt, by identity.
func (as *AlignedSegments) tgtIndex() map[*Segment]int {
	idx := make(map[*Segment]int, len(as.Tgt.Segments))
	for i, seg := range as.Tgt.Segments {
		idx[seg] = i
	}
	return idx
}

// RightmostAlignmentBySrc returns, for each src position i, the maximum
// target index over all segments aligned to src[i], carried forward as a
// running max so the result is monotonically non-decreasing. Starts at -1.
func (as *AlignedSegments) RightmostAlignmentBySrc() []int {
	idx := as.tgtIndex()
	out := make([]int, len(as.Src.Segments))
	current := -1
	for i, seg := range as.Src.Segments {
		for _, tgt := range as.Alignment.Get(seg) {
			if j := idx[tgt]; j > current {
				current = j
			}
		}
		out[i] = current
	}
	return out
}

// LeftmostAlignmentBySrc returns, for each src position i, the minimum
// target index over all segments aligned to src[i], computed right to
// left. Starts at len(tgt); monotonically non-increasing when read right
// to left (i.e. non-decreasing left to right).
func (as *AlignedSegments) LeftmostAlignmentBySrc() []int {
	idx := as.tgtIndex()
	n := len(as.Src.Segments)
	out := make([]int, n)
	current := len(as.Tgt.Segments)
	for i := n - 1; i >= 0; i-- {
		seg := as.Src.Segments[i]
		for _, tgt := range as.Alignment.Get(seg) {
			if j := idx[tgt]; j < current {
				current = j
			}
		}
		out[i] = current
	}
	return out
}
