package markup

import (
	"fmt"
	"log/slog"
	"sort"
)

// lineRanges splits t into maximal runs between "\n" segments, returning
// the [start, end) index range of each line (end is exclusive and, for
// every line but the last, points one past that line's own newline
// segment).
func lineRanges(t *SegmentedText) [][2]int {
	var ranges [][2]int
	start := 0
	for i, seg := range t.Segments {
		if seg.Surface == "\n" {
			ranges = append(ranges, [2]int{start, i + 1})
			start = i + 1
		}
	}
	ranges = append(ranges, [2]int{start, len(t.Segments)})
	return ranges
}

// lineOf returns, for every segment index, which line (0-based) it
// belongs to.
func lineOf(ranges [][2]int, n int) []int {
	out := make([]int, n)
	for line, r := range ranges {
		for i := r[0]; i < r[1] && i < n; i++ {
			out[i] = line
		}
	}
	return out
}

func firstLastTextIndex(t *SegmentedText, r [2]int) (first, last int, found bool) {
	first, last = -1, -1
	for i := r[0]; i < r[1]; i++ {
		if t.Segments[i].Kind == KindText {
			if first == -1 {
				first = i
			}
			last = i
		}
	}
	return first, last, first != -1
}

type tagInsertion struct {
	tgtIndex int
	srcIndex int // the inserted tag's own position in src, used as a stable tie-break
	seg      *Segment
}

// ReinsertTags restores paired <g>...</g> scope on the target side. It
// walks src tracking which PAIRED_TAGs are currently open, recording for
// each the span of target positions reached by anything aligned while the
// tag was on the stack, then inserts the opening/closing tags around that
// span (expanded to the whole target line when the tag already wrapped
// the whole source line).
func ReinsertTags(as *AlignedSegments) error {
	srcRanges := lineRanges(as.Src)
	tgtRanges := lineRanges(as.Tgt)
	srcLineOf := lineOf(srcRanges, len(as.Src.Segments))

	var stack []*Segment
	closeOf := make(map[*Segment]*Segment)
	tagToTgt := make(map[*Segment]map[int]struct{})
	var openOrder []*Segment // order tags were pushed, preserved for stable nesting

	tidx := as.tgtIndex()

	for _, seg := range as.Src.Segments {
		if seg.Kind == KindPairedTag {
			if seg.Opening {
				stack = append(stack, seg)
				openOrder = append(openOrder, seg)
				tagToTgt[seg] = make(map[int]struct{})
			} else {
				if len(stack) == 0 {
					return fmt.Errorf("%w: unmatched closing tag", ErrMalformedTagNesting)
				}
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				closeOf[top] = seg
			}
			continue
		}
		if seg.Surface == "\n" && len(stack) > 0 {
			return ErrTagSpansNewline
		}
		if tgts := as.Alignment.Get(seg); len(tgts) > 0 {
			for _, open := range stack {
				for _, tgt := range tgts {
					if j, ok := tidx[tgt]; ok {
						tagToTgt[open][j] = struct{}{}
					}
				}
			}
		}
	}
	if len(stack) > 0 {
		return fmt.Errorf("%w: unclosed opening tag", ErrMalformedTagNesting)
	}

	var insertions []tagInsertion
	for _, open := range openOrder {
		closeSeg, ok := closeOf[open]
		if !ok {
			return fmt.Errorf("%w: opening tag never closed", ErrMalformedTagNesting)
		}
		indices := tagToTgt[open]
		if len(indices) == 0 {
			// Tag surrounded nothing translatable: drop silently.
			continue
		}
		lo, hi := -1, -1
		for j := range indices {
			if lo == -1 || j < lo {
				lo = j
			}
			if hi == -1 || j > hi {
				hi = j
			}
		}

		openIdx := as.Src.indexOf(open)
		closeIdx := as.Src.indexOf(closeSeg)
		line := srcLineOf[openIdx]
		if firstText, lastText, ok := firstLastTextIndex(as.Src, srcRanges[line]); ok {
			if openIdx <= firstText && closeIdx >= lastText {
				if line < len(tgtRanges) {
					if tFirst, tLast, ok := firstLastTextIndex(as.Tgt, tgtRanges[line]); ok {
						if tFirst < lo {
							lo = tFirst
						}
						if tLast > hi {
							hi = tLast
						}
					}
				}
			}
		}

		insertions = append(insertions, tagInsertion{tgtIndex: lo, srcIndex: openIdx, seg: open})
		insertions = append(insertions, tagInsertion{tgtIndex: hi + 1, srcIndex: closeIdx, seg: closeSeg})
	}

	sort.SliceStable(insertions, func(i, j int) bool {
		if insertions[i].tgtIndex != insertions[j].tgtIndex {
			return insertions[i].tgtIndex < insertions[j].tgtIndex
		}
		return insertions[i].srcIndex < insertions[j].srcIndex
	})

	offset := 0
	for _, ins := range insertions {
		actual := ins.tgtIndex + offset
		as.InsertSegment(actual, ins.seg)
		as.Alignment.Add(ins.seg, ins.seg)
		offset++
	}
	return nil
}

// ReinsertWhitespace restores original (non-normalized) whitespace on the
// target side: every src WHITESPACE segment whose alignment is a single
// WHITESPACE target has that target replaced, in place, by the src
// segment itself.
func ReinsertWhitespace(as *AlignedSegments) {
	for _, seg := range as.Src.Segments {
		if seg.Kind != KindWhitespace {
			continue
		}
		tgts := as.Alignment.Get(seg)
		if len(tgts) != 1 {
			continue
		}
		tgtSeg := tgts[0]
		if tgtSeg.Kind != KindWhitespace {
			continue
		}
		_ = as.Alignment.Remove(seg, tgtSeg)
		as.Tgt.Replace(tgtSeg, seg)
		as.Alignment.Add(seg, seg)
	}
}

type segInsertion struct {
	tgtIndex int
	srcIndex int
	seg      *Segment
}

// ReinsertSegments reinserts src segments that survived with no alignment
// at all: unaligned placeholder TAGs, and unaligned whitespace runs that
// are neither a plain space nor a newline.
func ReinsertSegments(as *AlignedSegments, logger *slog.Logger) {
	rightmost := as.RightmostAlignmentBySrc()
	leftmost := as.LeftmostAlignmentBySrc()

	var toInsert []segInsertion
	for i, seg := range as.Src.Segments {
		if as.Alignment.ContainsSrc(seg) {
			continue
		}
		reinsert := seg.Kind == KindTag ||
			(seg.Kind == KindWhitespace && seg.Surface != " " && seg.Surface != "\n")
		if !reinsert {
			continue
		}
		r, l := rightmost[i], leftmost[i]
		if r >= l && logger != nil {
			logger.Warn("no non-crossing placement for reinserted segment",
				"segment", seg.Surface, "rightmost", r, "leftmost", l)
		}
		toInsert = append(toInsert, segInsertion{tgtIndex: l, srcIndex: i, seg: seg})
	}

	sort.SliceStable(toInsert, func(i, j int) bool {
		if toInsert[i].tgtIndex != toInsert[j].tgtIndex {
			return toInsert[i].tgtIndex < toInsert[j].tgtIndex
		}
		return toInsert[i].srcIndex < toInsert[j].srcIndex
	})

	offset := 0
	for _, ins := range toInsert {
		actual := ins.tgtIndex + offset
		as.InsertSegment(actual, ins.seg)
		as.Alignment.Add(ins.seg, ins.seg)
		offset++
	}
}
