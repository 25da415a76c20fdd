package markup

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Translator is the external sentence-splitting + MT collaborator. Given
// translator-view text, it returns the source text after the translator's
// own sentence split and the corresponding translated sentences — equal
// length, newlines preserved as sentence-terminating characters.
type Translator interface {
	Translate(ctx context.Context, text string) (srcSentences, tgtSentences []string, err error)
}

// Aligner is the external word-alignment collaborator. Each element of
// the result corresponds to one sentence pair and lists (i, j) token index
// pairs.
type Aligner interface {
	Align(ctx context.Context, srcBatch, tgtBatch [][]string) ([][][2]int, error)
}

// Pipeline wires the Translator, Aligner and Tokenizer collaborators into
// the markup-preserving translation orchestration of §4.H. It holds no
// state beyond its collaborators: every Translate call owns its own
// SegmentedTexts and Alignments.
type Pipeline struct {
	Translator Translator
	Aligner    Aligner
	Tokenizer  Tokenizer
	Logger     *slog.Logger
}

// NewPipeline builds a Pipeline. A nil logger disables diagnostic logging.
func NewPipeline(translator Translator, aligner Aligner, tokenizer Tokenizer, logger *slog.Logger) *Pipeline {
	return &Pipeline{Translator: translator, Aligner: aligner, Tokenizer: tokenizer, Logger: logger}
}

func (p *Pipeline) log(msg string, args ...any) {
	if p.Logger != nil {
		p.Logger.Debug(msg, args...)
	}
}

// Translate runs the full pipeline on src, returning the target string
// with every tag from src reinserted around its translated counterpart.
// Any step's error is fatal and is returned as-is (wrapped with context).
func (p *Pipeline) Translate(ctx context.Context, src string) (string, error) {
	src = strings.ReplaceAll(src, " ", " ")

	segments, err := FromString(src)
	if err != nil {
		return "", fmt.Errorf("parsing source: %w", err)
	}
	segments, err = segments.Tokenize(p.Tokenizer)
	if err != nil {
		return "", fmt.Errorf("tokenizing source: %w", err)
	}

	translatorText, srcToTranslatorText := TranslatorView(segments)
	segmentsToTranslatorText := NewAlignedSegments(segments, translatorText, srcToTranslatorText)

	if err := ctx.Err(); err != nil {
		return "", err
	}
	p.log("translating", "text", translatorText.String())
	srcSentences, tgtSentences, err := p.Translator.Translate(ctx, translatorText.String())
	if err != nil {
		return "", fmt.Errorf("translating: %w", err)
	}
	if len(srcSentences) != len(tgtSentences) {
		return "", fmt.Errorf("translator returned %d source sentences but %d target sentences", len(srcSentences), len(tgtSentences))
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	srcSentenceText, err := FromSentences(srcSentences)
	if err != nil {
		return "", fmt.Errorf("re-parsing source sentences: %w", err)
	}
	srcSentenceText, err = srcSentenceText.Tokenize(p.Tokenizer)
	if err != nil {
		return "", fmt.Errorf("tokenizing source sentences: %w", err)
	}
	srcTokens, srcSentenceToSrcTokens := AlignerView(srcSentenceText)
	srcSentencesToSrcTokens := NewAlignedSegments(srcSentenceText, srcTokens, srcSentenceToSrcTokens)

	translatorTextToSrcSentences := NewAlignedSegments(translatorText, srcSentenceText, NewAlignment())
	if err := translatorTextToSrcSentences.RecoverAlignment(); err != nil {
		return "", fmt.Errorf("recovering source sentence alignment: %w", err)
	}

	tgtSentenceText, err := FromSentences(tgtSentences)
	if err != nil {
		return "", fmt.Errorf("re-parsing target sentences: %w", err)
	}
	tgtSentenceText, err = tgtSentenceText.Tokenize(p.Tokenizer)
	if err != nil {
		return "", fmt.Errorf("tokenizing target sentences: %w", err)
	}
	tgtTokens, tgtSentenceToTgtTokens := AlignerView(tgtSentenceText)
	tgtSentencesToTgtTokens := NewAlignedSegments(tgtSentenceText, tgtTokens, tgtSentenceToTgtTokens)
	tgtTokensToTgtSentences := tgtSentencesToTgtTokens.SwapSides()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	srcTokensToTgtTokens, err := p.alignSegments(ctx, srcTokens, tgtTokens)
	if err != nil {
		return "", fmt.Errorf("aligning: %w", err)
	}
	if err := srcTokensToTgtTokens.RecoverNewlineAlignment(); err != nil {
		return "", fmt.Errorf("recovering newline alignment: %w", err)
	}

	translatorTextToTgtSentences, err := translatorTextToSrcSentences.Compose(srcSentencesToSrcTokens)
	if err != nil {
		return "", fmt.Errorf("composing source-sentence to source-token alignment: %w", err)
	}
	translatorTextToTgtSentences, err = translatorTextToTgtSentences.Compose(srcTokensToTgtTokens)
	if err != nil {
		return "", fmt.Errorf("composing source-token to target-token alignment: %w", err)
	}
	translatorTextToTgtSentences, err = translatorTextToTgtSentences.Compose(tgtTokensToTgtSentences)
	if err != nil {
		return "", fmt.Errorf("composing target-token to target-sentence alignment: %w", err)
	}

	translatorTextToTgtSentences.InferWhitespaceAlignment()

	srcSegmentsToTgtSentences, err := segmentsToTranslatorText.Compose(translatorTextToTgtSentences)
	if err != nil {
		return "", fmt.Errorf("composing source to target-sentence alignment: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := ReinsertTags(srcSegmentsToTgtSentences); err != nil {
		return "", fmt.Errorf("reinserting tags: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	ReinsertWhitespace(srcSegmentsToTgtSentences)
	if err := ctx.Err(); err != nil {
		return "", err
	}
	ReinsertSegments(srcSegmentsToTgtSentences, p.Logger)

	return srcSegmentsToTgtSentences.Tgt.String(), nil
}

// alignSegments runs the aligner sentence-by-sentence and merges the
// per-sentence token index pairs into a single Alignment between srcTokens
// and tgtTokens.
func (p *Pipeline) alignSegments(ctx context.Context, srcTokens, tgtTokens *SegmentedText) (*AlignedSegments, error) {
	srcSentences := srcTokens.SplitSentences()
	tgtSentences := tgtTokens.SplitSentences()
	if len(srcSentences) != len(tgtSentences) {
		return nil, fmt.Errorf("source has %d sentences for alignment, target has %d", len(srcSentences), len(tgtSentences))
	}

	srcBatch := make([][]string, len(srcSentences))
	tgtBatch := make([][]string, len(tgtSentences))
	for i, sent := range srcSentences {
		srcBatch[i] = segmentSurfaces(sent)
	}
	for i, sent := range tgtSentences {
		tgtBatch[i] = segmentSurfaces(sent)
	}

	alignments, err := p.Aligner.Align(ctx, srcBatch, tgtBatch)
	if err != nil {
		return nil, err
	}
	if len(alignments) != len(srcSentences) {
		return nil, fmt.Errorf("aligner returned %d sentence alignments, expected %d", len(alignments), len(srcSentences))
	}

	merged := NewAlignment()
	for s, pairs := range alignments {
		srcSent := srcSentences[s]
		tgtSent := tgtSentences[s]
		for _, pair := range pairs {
			i, j := pair[0], pair[1]
			if i < 0 || i >= len(srcSent.Segments) || j < 0 || j >= len(tgtSent.Segments) {
				return nil, fmt.Errorf("%w: sentence %d pair (%d,%d)", ErrAlignerIndex, s, i, j)
			}
			merged.Add(srcSent.Segments[i], tgtSent.Segments[j])
		}
	}
	return NewAlignedSegments(srcTokens, tgtTokens, merged), nil
}

func segmentSurfaces(t *SegmentedText) []string {
	out := make([]string, len(t.Segments))
	for i, seg := range t.Segments {
		out[i] = seg.Surface
	}
	return out
}
