package markup

import "errors"

// Sentinel errors for the markup-preserving translation pipeline. Every
// error is fatal to the translate call it occurred in; callers should use
// errors.Is against these to decide how to report failures up the stack.
var (
	// ErrMalformedTag is returned when a tag-shaped substring cannot be
	// classified into a name (e.g. a paired-tag candidate that is neither
	// "<g ...>" nor exactly "</g>").
	ErrMalformedTag = errors.New("markup: malformed tag")

	// ErrLossySegmentation is returned when the lexer's matches do not
	// reconstruct the original input byte-for-byte.
	ErrLossySegmentation = errors.New("markup: lossy segmentation")

	// ErrComposeMismatch is returned by AlignedSegments.Compose when the
	// left side's target text does not equal the right side's source text.
	ErrComposeMismatch = errors.New("markup: compose mismatch")

	// ErrUnrecoverableAlignment is returned when greedy TEXT-content
	// recovery cannot consume both sides of an AlignedSegments pair.
	ErrUnrecoverableAlignment = errors.New("markup: unrecoverable alignment")

	// ErrNewlineMismatch is returned when src and tgt carry different
	// counts of newline segments during newline alignment recovery.
	ErrNewlineMismatch = errors.New("markup: newline count mismatch")

	// ErrMalformedTagNesting is returned when PAIRED_TAG opens and closes
	// do not nest (unmatched closing tag, or an opening tag never closed).
	ErrMalformedTagNesting = errors.New("markup: malformed tag nesting")

	// ErrTagSpansNewline is returned when a PAIRED_TAG is still open when
	// a newline segment is walked during tag reinsertion.
	ErrTagSpansNewline = errors.New("markup: paired tag spans a newline")

	// ErrAbsentAlignment is returned when removing an alignment pair that
	// is not present in the relation.
	ErrAbsentAlignment = errors.New("markup: alignment pair absent")

	// ErrAlignerIndex is returned when an external aligner response names
	// a token index outside the bounds of the sentence it was asked about.
	ErrAlignerIndex = errors.New("markup: aligner index out of range")
)
