package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func textSeg(s string) *Segment { return NewTextSegment(s) }

func tagSeg(name, surface string) *Segment {
	seg := newSegment(KindTag, surface)
	seg.Name = name
	return seg
}

func wsSeg(s string) *Segment { return NewWhitespaceSegment(s) }

func pairedSeg(opening bool, surface string) *Segment {
	seg := newSegment(KindPairedTag, surface)
	seg.Name = "g"
	seg.Opening = opening
	return seg
}

// TestReinsertSegmentsSimple mirrors the placeholder-scattering scenario:
// several unaligned <x/> placeholders sit around a handful of aligned
// words, and must land at non-crossing positions on the target side.
func TestReinsertSegmentsSimple(t *testing.T) {
	this_ := textSeg("This")
	is := textSeg("is")
	x1 := tagSeg("x", "<x id='1'/>")
	x2a := tagSeg("x", "<x id='2'/>")
	x3a := tagSeg("x", "<x id='3'/>")
	test := textSeg("test")
	x2b := tagSeg("x", "<x id='2'/>")
	dot := textSeg(".")
	x3b := tagSeg("x", "<x id='3'/>")
	x4 := tagSeg("x", "<x id='4'/>")
	x5 := tagSeg("x", "<x id='5'/>")

	src := NewSegmentedText([]*Segment{this_, is, x1, x2a, x3a, test, x2b, dot, x3b, x4, x5})

	toto := textSeg("Toto")
	sp1 := wsSeg(" ")
	je := textSeg("je")
	sp2 := wsSeg(" ")
	tgtTest := textSeg("test")
	tgtDot := textSeg(".")
	tgt := NewSegmentedText([]*Segment{toto, sp1, je, sp2, tgtTest, tgtDot})

	alignment := NewAlignment()
	alignment.Add(this_, toto)
	alignment.Add(is, je)
	alignment.Add(test, tgtTest)
	alignment.Add(dot, tgtDot)

	as := NewAlignedSegments(src, tgt, alignment)
	ReinsertSegments(as, nil)

	expected := "Toto je <x id='1'/><x id='2'/><x id='3'/>test<x id='2'/>.<x id='3'/><x id='4'/><x id='5'/>"
	assert.Equal(t, expected, as.Tgt.String())
}

// TestReinsertTagsSimple mirrors the nested-<g>-scope scenario: tag scope
// from the source must wrap the corresponding aligned span on the target.
func TestReinsertTagsSimple(t *testing.T) {
	g1o := pairedSeg(true, "<g id='1'>")
	g2o := pairedSeg(true, "<g id='2'>")
	muj := textSeg("Můj")
	g3o := pairedSeg(true, "<g id='3'>")
	pritel := textSeg("přítel")
	g3c := pairedSeg(false, "</g>")
	g2c := pairedSeg(false, "</g>")
	comma1 := textSeg(",")

	src := NewSegmentedText([]*Segment{g1o, g2o, muj, g3o, pritel, g3c, g2c, comma1, g1c()})

	tgt, err := FromString("A friend of mine")
	require.NoError(t, err)

	alignment := NewAlignment()
	// "Můj"(mine) and "přítel"(friend) both align inside the outer g1/g2 scope
	alignment.Add(muj, findWord(t, tgt, "mine"))
	alignment.Add(pritel, findWord(t, tgt, "friend"))

	as := NewAlignedSegments(src, tgt, alignment)
	require.NoError(t, ReinsertTags(as))

	out := as.Tgt.String()
	assert.Contains(t, out, "<g id='1'>")
	assert.Contains(t, out, "<g id='2'>")
	assert.Contains(t, out, "<g id='3'>")
	// g3 wraps only "friend"; g2 wraps the aligned span "friend of mine";
	// g1 encloses the whole source line, so it widens to the whole target line.
	idxG3o := indexOfSubstr(out, "<g id='3'>")
	idxFriend := indexOfSubstr(out, "friend")
	idxG3c := indexOfSubstr(out, "</g>")
	assert.True(t, idxG3o < idxFriend)
	assert.True(t, idxG3c > idxFriend)
}

func g1c() *Segment { return pairedSeg(false, "</g>") }

func findWord(t *testing.T, st *SegmentedText, word string) *Segment {
	t.Helper()
	for _, seg := range st.Segments {
		if seg.Surface == word {
			return seg
		}
	}
	t.Fatalf("word %q not found", word)
	return nil
}

func indexOfSubstr(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}

func TestReinsertTagsUnmatchedClosingIsError(t *testing.T) {
	src := NewSegmentedText([]*Segment{pairedSeg(false, "</g>")})
	tgt := NewSegmentedText([]*Segment{textSeg("x")})
	as := NewAlignedSegments(src, tgt, NewAlignment())
	err := ReinsertTags(as)
	assert.ErrorIs(t, err, ErrMalformedTagNesting)
}

func TestReinsertTagsUnclosedOpeningIsError(t *testing.T) {
	src := NewSegmentedText([]*Segment{pairedSeg(true, "<g id='1'>")})
	tgt := NewSegmentedText([]*Segment{textSeg("x")})
	as := NewAlignedSegments(src, tgt, NewAlignment())
	err := ReinsertTags(as)
	assert.ErrorIs(t, err, ErrMalformedTagNesting)
}

func TestReinsertTagsSpanningNewlineIsError(t *testing.T) {
	open := pairedSeg(true, "<g id='1'>")
	nl := NewWhitespaceSegment("\n")
	close_ := pairedSeg(false, "</g>")
	src := NewSegmentedText([]*Segment{open, nl, close_})
	tgt := NewSegmentedText([]*Segment{NewWhitespaceSegment("\n")})
	as := NewAlignedSegments(src, tgt, NewAlignment())
	err := ReinsertTags(as)
	assert.ErrorIs(t, err, ErrTagSpansNewline)
}

func TestReinsertWhitespaceRestoresOriginalRun(t *testing.T) {
	srcWS := NewWhitespaceSegment("\t\t")
	normalized := NewWhitespaceSegment(" ")
	src := NewSegmentedText([]*Segment{srcWS})
	tgt := NewSegmentedText([]*Segment{normalized})

	a := NewAlignment()
	a.Add(srcWS, normalized)

	as := NewAlignedSegments(src, tgt, a)
	ReinsertWhitespace(as)

	assert.Equal(t, "\t\t", as.Tgt.String())
	assert.Same(t, srcWS, as.Tgt.Segments[0])
}
