package markup

// TranslatorView projects t into a plain-text-ish form suitable for an MT
// system: tags are dropped (except x/lb, which become a single space so
// they keep acting as a word boundary), and non-newline, non-single-space
// whitespace runs are normalized to one space. Returns the projected text
// plus the alignment from t into it.
func TranslatorView(t *SegmentedText) (*SegmentedText, *Alignment) {
	out := NewSegmentedText(nil)
	alignment := NewAlignment()
	for _, seg := range t.Segments {
		switch {
		case seg.Kind == KindTag && (seg.Name == "x" || seg.Name == "lb"):
			// Self-closing tags that usually sit at a word boundary become
			// a bare space; no back-alignment, this is a pure insertion.
			out.Segments = append(out.Segments, NewWhitespaceSegment(" "))
		case seg.Kind == KindTag, seg.Kind == KindPairedTag:
			continue
		case seg.Kind == KindWhitespace:
			var replacement *Segment
			if seg.Surface == "\n" || seg.Surface == " " {
				replacement = CopySegment(seg)
			} else {
				replacement = NewWhitespaceSegment(" ")
			}
			out.Segments = append(out.Segments, replacement)
			alignment.Add(seg, replacement)
		default:
			cp := CopySegment(seg)
			out.Segments = append(out.Segments, cp)
			alignment.Add(seg, cp)
		}
	}
	return out, alignment
}

// AlignerView projects t down to exactly what an external word aligner
// needs: TEXT, SENTENCE_SEP, and newline segments, each aligned to a fresh
// copy in the projection.
func AlignerView(t *SegmentedText) (*SegmentedText, *Alignment) {
	out := NewSegmentedText(nil)
	alignment := NewAlignment()
	for _, seg := range t.Segments {
		if seg.Kind == KindText || seg.Kind == KindSentenceSep || seg.Surface == "\n" {
			cp := CopySegment(seg)
			out.Segments = append(out.Segments, cp)
			alignment.Add(seg, cp)
		}
	}
	return out, alignment
}
