package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"doctranslate/internal/config"
	"doctranslate/internal/markup"
	"doctranslate/internal/translation"
	"doctranslate/pkg/logger"
)

var translateCmd = &cobra.Command{
	Use:   "translate",
	Short: "Translate markup-bearing text read from stdin, writing the result to stdout",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		logger.Init(os.Stderr, cfg.Logging.Format, cfg.Logging.Level)

		src, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}

		pipeline := buildPipeline(cfg)
		out, err := pipeline.Translate(context.Background(), string(src))
		if err != nil {
			return fmt.Errorf("translating: %w", err)
		}

		_, err = fmt.Fprint(os.Stdout, out)
		return err
	},
}

// buildPipeline wires the configured translator, aligner and tokenizer
// into a markup.Pipeline, shared by the translate and serve commands.
func buildPipeline(cfg *config.Config) *markup.Pipeline {
	var tokenizer markup.Tokenizer
	if cfg.Tokenizer.Kind == "http" {
		tokenizer = translation.NewHTTPTokenizer(config.ServiceEndpoint{URL: cfg.Tokenizer.URL})
	} else {
		tokenizer = translation.RegexTokenizer{}
	}

	translator := translation.NewHTTPTranslator(cfg.Translator)
	aligner := translation.NewHTTPAligner(cfg.Aligner, 4)

	return markup.NewPipeline(translator, aligner, tokenizer, logger.Logger())
}
