package cmd

import (
	"context"
	"fmt"
	"net/url"
	"os"

	"github.com/gaurav-prasanna/docmind/core"
	"github.com/gaurav-prasanna/docmind/core/chunk"
	"github.com/gaurav-prasanna/docmind/core/llm"
	"github.com/gaurav-prasanna/docmind/core/output"
	"github.com/gaurav-prasanna/docmind/core/render"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	flagPDF        bool
	flagMarkdown   bool
	flagJSON       bool
	flagContext    bool
	flagEmbeddings bool
	flagModel      string
	flagChunkSize  int
	flagOutputDir  string
)

var parseCmd = &cobra.Command{
	Use:   "parse <url>",
	Short: "Parse a URL into a structured document and write it in one format",
	Long: `Parse fetches a page, extracts its main content, code examples, sections and
insights, and writes the result as JSON, Markdown, PDF, grounding context or
embeddings.

Examples:
  docmind parse https://example.com/docs --json
  docmind parse https://example.com/docs --markdown --output_dir ./out
  docmind parse https://example.com/docs --context
  docmind parse https://example.com/docs --embeddings --model nomic-embed-text`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().BoolVar(&flagPDF, "pdf", false, "Output PDF")
	parseCmd.Flags().BoolVar(&flagMarkdown, "markdown", false, "Output Markdown")
	parseCmd.Flags().BoolVar(&flagJSON, "json", false, "Output the structured document as JSON")
	parseCmd.Flags().BoolVar(&flagContext, "context", false, "Output the grounding context given to the assistant")
	parseCmd.Flags().BoolVar(&flagEmbeddings, "embeddings", false, "Output embeddings")

	parseCmd.Flags().StringVar(&flagModel, "model", "", "Embedding model (required with --embeddings)")
	parseCmd.Flags().IntVar(&flagChunkSize, "chunk_size", chunk.DefaultSize, "Token chunk size for embeddings")

	parseCmd.Flags().StringVar(&flagOutputDir, "output_dir", "", "Output directory (default: current directory)")
}

func runParse(cmd *cobra.Command, args []string) error {
	rawURL := args[0]

	if err := validateFormatFlags(); err != nil {
		return err
	}
	if err := validateURL(rawURL); err != nil {
		return err
	}

	renderer, err := selectRenderer(cmd.Context())
	if err != nil {
		return err
	}

	writer, err := output.New(flagOutputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}

	doc, err := newPipeline(flagMarkdown || flagPDF).Process(cmd.Context(), rawURL)
	if err != nil {
		return err
	}

	data, err := renderer.Render(doc)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	path, err := writer.Write(doc, data, renderer.Extension())
	if err != nil {
		return err
	}
	log.Debug().Str("path", path).Int("bytes", len(data)).Msg("written")
	fmt.Fprintf(os.Stdout, "✓ Written: %s\n", path)
	return nil
}

func validateURL(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("%w: invalid URL %q (must include scheme, e.g. https://example.com)", core.ErrValidationFailure, rawURL)
	}
	return nil
}

// validateFormatFlags checks that exactly one output format is chosen.
func validateFormatFlags() error {
	formatCount := 0
	for _, set := range []bool{flagPDF, flagMarkdown, flagJSON, flagContext, flagEmbeddings} {
		if set {
			formatCount++
		}
	}

	if formatCount == 0 {
		return fmt.Errorf("exactly one output format is required: --json, --markdown, --pdf, --context, or --embeddings")
	}
	if formatCount > 1 {
		return fmt.Errorf("only one output format allowed per run (got %d)", formatCount)
	}

	model := flagModel
	if model == "" && cfg != nil {
		model = cfg.Assistant.Embeddings.Model
	}
	if flagEmbeddings && model == "" {
		return fmt.Errorf("--model is required when using --embeddings")
	}
	return nil
}

// selectRenderer creates the Renderer the flags ask for. ctx bounds
// renderers that call out over the network.
func selectRenderer(ctx context.Context) (core.Renderer, error) {
	switch {
	case flagMarkdown:
		return render.NewMarkdownRenderer(), nil
	case flagJSON:
		return render.NewJSONRenderer(), nil
	case flagPDF:
		return render.NewPDFRenderer(), nil
	case flagContext:
		return render.NewContextRenderer(), nil
	case flagEmbeddings:
		endpoint := cfg.Assistant.Embeddings.Endpoint()
		if flagModel != "" {
			endpoint.Model = flagModel
		}
		return render.NewEmbeddingsRenderer(llm.NewProvider(endpoint), endpoint.Model, flagChunkSize).WithContext(ctx), nil
	default:
		return nil, fmt.Errorf("no output format selected")
	}
}
