package markup

import (
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// whitespaceTokenizer splits on internal runs of whitespace, the simplest
// stand-in for a real word tokenizer (moses, sentencepiece, ...).
type whitespaceTokenizer struct{}

func (whitespaceTokenizer) Tokenize(s string) ([]string, error) {
	fields := strings.Fields(s)
	if len(fields) <= 1 {
		return []string{s}, nil
	}
	out := make([]string, 0, len(fields))
	for i, f := range fields {
		if i > 0 {
			out = append(out, " ")
		}
		out = append(out, f)
	}
	return out, nil
}

var sentenceRe = regexp.MustCompile(`[^.!?]+[.!?]`)

func splitSentences(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n\n") {
		if line == "" {
			continue
		}
		for _, m := range sentenceRe.FindAllString(line, -1) {
			out = append(out, strings.TrimSpace(m))
		}
	}
	return out
}

// dictTranslator does word-for-word dictionary substitution and splits
// both sides into matching sentences, mirroring a deterministic stand-in
// for a real MT engine.
type dictTranslator struct {
	dict map[string]string
}

func (d dictTranslator) Translate(ctx context.Context, text string) ([]string, []string, error) {
	tgt := text
	for src, rep := range d.dict {
		tgt = strings.ReplaceAll(tgt, src, rep)
	}
	return splitSentences(text), splitSentences(tgt), nil
}

// identityAligner aligns token i of every source sentence to token i of
// the matching target sentence: valid whenever translation is strictly
// word-for-word, as in dictTranslator.
type identityAligner struct{}

func (identityAligner) Align(ctx context.Context, srcBatch, tgtBatch [][]string) ([][][2]int, error) {
	out := make([][][2]int, len(srcBatch))
	for i, src := range srcBatch {
		n := len(src)
		if len(tgtBatch[i]) < n {
			n = len(tgtBatch[i])
		}
		pairs := make([][2]int, n)
		for j := 0; j < n; j++ {
			pairs[j] = [2]int{j, j}
		}
		out[i] = pairs
	}
	return out, nil
}

func newTestPipeline(dict map[string]string) *Pipeline {
	return NewPipeline(dictTranslator{dict: dict}, identityAligner{}, whitespaceTokenizer{}, nil)
}

func TestPipelineTranslateNoMarkup(t *testing.T) {
	p := newTestPipeline(map[string]string{"hello": "ahoj", "world": "svete"})
	out, err := p.Translate(context.Background(), "hello world.")
	require.NoError(t, err)
	assert.Equal(t, "ahoj svete.", out)
}

func TestPipelineTranslatePreservesPairedTagScope(t *testing.T) {
	p := newTestPipeline(map[string]string{"hello": "ahoj", "world": "svete"})
	out, err := p.Translate(context.Background(), "hello <g id='1'>world</g>.")
	require.NoError(t, err)
	assert.Contains(t, out, "<g id='1'>")
	assert.Contains(t, out, "</g>")
	assert.Contains(t, out, "svete")

	openIdx := strings.Index(out, "<g id='1'>")
	worldIdx := strings.Index(out, "svete")
	closeIdx := strings.Index(out, "</g>")
	assert.True(t, openIdx < worldIdx)
	assert.True(t, closeIdx > worldIdx)
}

func TestPipelineTranslatePreservesPlaceholder(t *testing.T) {
	p := newTestPipeline(map[string]string{"hello": "ahoj"})
	out, err := p.Translate(context.Background(), "hello<x id='1'/>.")
	require.NoError(t, err)
	assert.Contains(t, out, "<x id='1'/>")
}

type unbalancedTranslator struct{}

func (unbalancedTranslator) Translate(ctx context.Context, text string) ([]string, []string, error) {
	return splitSentences(text), append(splitSentences(text), "extra."), nil
}

func TestPipelineTranslateRejectsUnbalancedSentenceCounts(t *testing.T) {
	p := NewPipeline(unbalancedTranslator{}, identityAligner{}, whitespaceTokenizer{}, nil)
	_, err := p.Translate(context.Background(), "one. two.")
	require.Error(t, err)
}
