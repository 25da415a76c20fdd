package translation

import "regexp"

// wordTokenizationRules mirrors the reference tokenizer's rule order:
// URLs and emails first (so punctuation inside them is not split off),
// then numbers, word runs with internal apostrophes/hyphens, runs of
// terminal punctuation, dash runs, and last any remaining non-space rune.
var wordTokenizationRules = regexp.MustCompile(
	`[\w]+://(?:[a-zA-Z]|[0-9]|[$\-_@.&+])+` +
		`|[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+` +
		`|[+-]?[0-9](?:[0-9,.-]*[0-9])?` +
		`|[\w](?:['’` + "`" + `-]?[\w]+)*` +
		`|[.!?]+` +
		`|-+` +
		`|[^\s]`,
)

// RegexTokenizer is the default markup.Tokenizer when no external
// tokenizer service is configured: a single compiled alternation over
// URLs, emails, numbers, word runs, punctuation runs and dash runs.
type RegexTokenizer struct{}

// Tokenize implements markup.Tokenizer.
func (RegexTokenizer) Tokenize(s string) ([]string, error) {
	return wordTokenizationRules.FindAllString(s, -1), nil
}
