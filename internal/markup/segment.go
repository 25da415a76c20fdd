package markup

import (
	"fmt"
	"regexp"
	"strings"
	"sync/atomic"
)

// Kind discriminates the variants of Segment. Go has no class hierarchy to
// dispatch on, so every operation in this package switches on Kind rather
// than on a type assertion chain.
type Kind int

const (
	// KindText is non-whitespace, non-tag content.
	KindText Kind = iota
	// KindWhitespace is a run of one or more whitespace characters.
	KindWhitespace
	// KindTag is a self-closing placeholder: x, bx, ex, lb, mrk.
	KindTag
	// KindPairedTag is an opening or closing <g>/</g>.
	KindPairedTag
	// KindSentenceSep is a zero-length marker inserted between sentences.
	// It never appears in an input string.
	KindSentenceSep
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "TEXT"
	case KindWhitespace:
		return "WHITESPACE"
	case KindTag:
		return "TAG"
	case KindPairedTag:
		return "PAIRED_TAG"
	case KindSentenceSep:
		return "SENTENCE_SEP"
	default:
		return "UNKNOWN"
	}
}

var segmentIDSeq atomic.Int64

// Segment is an atomic unit of a SegmentedText. Its identity is the
// pointer value (*Segment), never the surface string: the same word can
// occur many times in a text, and each occurrence must be distinguishable
// as an alignment key. ID is carried alongside the pointer purely for
// debugging and deterministic logging; it is never used as a map key.
//
// Segments are immutable after construction. Producing a "different"
// segment (e.g. normalizing whitespace) always allocates a new Segment
// with fresh identity rather than mutating an existing one.
type Segment struct {
	ID      int64
	Kind    Kind
	Surface string

	// Name is set for KindTag and KindPairedTag ("x", "bx", "ex", "lb",
	// "mrk", or "g").
	Name string
	// Opening is meaningful only for KindPairedTag: true for "<g ...>",
	// false for "</g>".
	Opening bool
}

func newSegment(kind Kind, surface string) *Segment {
	return &Segment{ID: segmentIDSeq.Add(1), Kind: kind, Surface: surface}
}

// NewTextSegment builds a TEXT segment with fresh identity. Exposed for
// callers (tokenizers, reinsertion) that must fabricate new text segments.
func NewTextSegment(surface string) *Segment {
	return newSegment(KindText, surface)
}

// NewWhitespaceSegment builds a WHITESPACE segment with fresh identity.
func NewWhitespaceSegment(surface string) *Segment {
	return newSegment(KindWhitespace, surface)
}

// NewSentenceSeparator builds a zero-length SENTENCE_SEP segment.
func NewSentenceSeparator() *Segment {
	return newSegment(KindSentenceSep, "")
}

// CopySegment returns a new segment with fresh identity but otherwise
// identical payload to seg. Used by view projections that keep a
// segment's content but must align it to a distinct copy.
func CopySegment(seg *Segment) *Segment {
	cp := *seg
	cp.ID = segmentIDSeq.Add(1)
	return &cp
}

var (
	pairedTagRe    = regexp.MustCompile(`^</?g[^>]*>$`)
	placeholderRe  = regexp.MustCompile(`^</?(x|bx|ex|lb|mrk)[^>]*>$`)
	whitespaceRe   = regexp.MustCompile(`^\s+$`)
	closingNameRe  = regexp.MustCompile(`^</(\w+)>$`)
	openingNameRe  = regexp.MustCompile(`^<(\w+)`)
)

// newSegmentFromSurface classifies a raw lexer match into a Segment,
// mirroring the priority order of §4.A: paired-g tag, placeholder tag,
// whitespace run, else TEXT.
func newSegmentFromSurface(s string) (*Segment, error) {
	switch {
	case pairedTagRe.MatchString(s):
		seg := newSegment(KindPairedTag, s)
		seg.Name = "g"
		switch {
		case s == "</g>":
			seg.Opening = false
		case len(s) >= 2 && s[:2] == "<g" && !strings.HasSuffix(s, "/>"):
			seg.Opening = true
		default:
			// self-closing "<g.../>" and anything else pairedTagRe
			// matched but that isn't a plain "<g...>" open or "</g>"
			// close has no well-defined Opening value: a paired tag
			// always needs its own closing counterpart.
			return nil, fmt.Errorf("%w: %q is not a well-formed paired tag", ErrMalformedTag, s)
		}
		return seg, nil
	case placeholderRe.MatchString(s):
		seg := newSegment(KindTag, s)
		name, err := tagName(s)
		if err != nil {
			return nil, err
		}
		seg.Name = name
		return seg, nil
	case whitespaceRe.MatchString(s):
		return newSegment(KindWhitespace, s), nil
	default:
		return newSegment(KindText, s), nil
	}
}

func tagName(s string) (string, error) {
	if m := closingNameRe.FindStringSubmatch(s); m != nil {
		return m[1], nil
	}
	if m := openingNameRe.FindStringSubmatch(s); m != nil {
		return m[1], nil
	}
	return "", fmt.Errorf("%w: cannot extract tag name from %q", ErrMalformedTag, s)
}
