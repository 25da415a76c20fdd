package markup

import (
	"fmt"
	"strings"
)

// RecoverAlignment greedily reconstructs the alignment between as.Src and
// as.Tgt when as.Alignment is empty and the two texts agree after
// discarding whitespace (newlines excepted) and sentence separators: the
// concatenation of the filtered src segments must equal the concatenation
// of the filtered tgt segments, possibly with several src segments joining
// into one tgt segment (e.g. a retokenized sentence).
func (as *AlignedSegments) RecoverAlignment() error {
	if !as.Alignment.IsEmpty() {
		return fmt.Errorf("%w: alignment must be empty before recovery", ErrUnrecoverableAlignment)
	}

	var srcFiltered []*Segment
	for _, seg := range as.Src.Segments {
		if seg.Kind != KindWhitespace || seg.Surface == "\n" {
			srcFiltered = append(srcFiltered, seg)
		}
	}
	var tgtFiltered []*Segment
	for _, seg := range as.Tgt.Segments {
		if (seg.Kind != KindWhitespace && seg.Kind != KindSentenceSep) || seg.Surface == "\n" {
			tgtFiltered = append(tgtFiltered, seg)
		}
	}

	srcIdx := 0
	for _, u := range tgtFiltered {
		remaining := u.Surface
		for remaining != "" {
			if srcIdx >= len(srcFiltered) {
				return fmt.Errorf("%w: source exhausted while matching %q", ErrUnrecoverableAlignment, u.Surface)
			}
			v := srcFiltered[srcIdx]
			srcIdx++
			switch {
			case v.Surface == remaining:
				as.Alignment.Add(v, u)
				remaining = ""
			case strings.HasPrefix(remaining, v.Surface):
				as.Alignment.Add(v, u)
				remaining = remaining[len(v.Surface):]
			default:
				return fmt.Errorf("%w: %q does not start with %q", ErrUnrecoverableAlignment, remaining, v.Surface)
			}
		}
	}
	if srcIdx != len(srcFiltered) {
		return fmt.Errorf("%w: %d source segments left unconsumed", ErrUnrecoverableAlignment, len(srcFiltered)-srcIdx)
	}
	return nil
}

// RecoverNewlineAlignment pairs up "\n" segments of src and tgt in order.
// Requires equal counts.
func (as *AlignedSegments) RecoverNewlineAlignment() error {
	var srcNL, tgtNL []*Segment
	for _, seg := range as.Src.Segments {
		if seg.Surface == "\n" {
			srcNL = append(srcNL, seg)
		}
	}
	for _, seg := range as.Tgt.Segments {
		if seg.Surface == "\n" {
			tgtNL = append(tgtNL, seg)
		}
	}
	if len(srcNL) != len(tgtNL) {
		return fmt.Errorf("%w: src has %d newlines, tgt has %d", ErrNewlineMismatch, len(srcNL), len(tgtNL))
	}
	for i := range srcNL {
		as.Alignment.Add(srcNL[i], tgtNL[i])
	}
	return nil
}

// InferWhitespaceAlignment aligns unaligned WHITESPACE src segments to the
// nearest unaligned WHITESPACE tgt segment that does not cross any
// existing alignment pair.
func (as *AlignedSegments) InferWhitespaceAlignment() {
	rightmost := as.RightmostAlignmentBySrc()
	leftmost := as.LeftmostAlignmentBySrc()

	used := make(map[int]bool)
	for i, seg := range as.Src.Segments {
		if seg.Kind != KindWhitespace || as.Alignment.ContainsSrc(seg) {
			continue
		}
		for j := rightmost[i] + 1; j < leftmost[i]; j++ {
			if used[j] {
				continue
			}
			cand := as.Tgt.Segments[j]
			if cand.Kind == KindWhitespace && !as.Alignment.ContainsTgt(cand) {
				as.Alignment.Add(seg, cand)
				used[j] = true
				break
			}
		}
	}
}
