package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslatorViewDropsTagsAndNormalizesWhitespace(t *testing.T) {
	src, err := FromString("Hello <g id='1'>world</g>!<x id='2'/>  How are\tyou?")
	require.NoError(t, err)

	view, alignment := TranslatorView(src)
	// <x/> becomes one space and the following "  " run another one.
	assert.Equal(t, "Hello world!  How are you?", view.String())

	// every TEXT segment in src has exactly one aligned counterpart in view
	for _, seg := range src.Segments {
		if seg.Kind == KindText {
			assert.Len(t, alignment.Get(seg), 1)
		}
	}
}

func TestTranslatorViewPreservesNewlines(t *testing.T) {
	src, err := FromString("line one\nline two")
	require.NoError(t, err)
	view, _ := TranslatorView(src)
	assert.Equal(t, "line one\nline two", view.String())
}

func TestTranslatorViewXAndLbBecomeSpace(t *testing.T) {
	src, err := FromString("a<x id='1'/>b<lb/>c")
	require.NoError(t, err)
	view, _ := TranslatorView(src)
	assert.Equal(t, "a b c", view.String())
}

func TestAlignerViewKeepsOnlyTextSentenceSepAndNewline(t *testing.T) {
	src, err := FromSentences([]string{"Hello <g id='1'>world</g>.", "Line two."})
	require.NoError(t, err)

	view, alignment := AlignerView(src)
	var kinds []Kind
	for _, seg := range view.Segments {
		kinds = append(kinds, seg.Kind)
	}
	for _, k := range kinds {
		assert.Contains(t, []Kind{KindText, KindSentenceSep}, k)
	}

	for _, seg := range src.Segments {
		if seg.Kind == KindText || seg.Kind == KindSentenceSep {
			assert.Len(t, alignment.Get(seg), 1)
		} else {
			assert.Empty(t, alignment.Get(seg))
		}
	}
}
