package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/gaurav-prasanna/docmind/core/assistant"
	"github.com/gaurav-prasanna/docmind/core/llm"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	flagAskModel string
	flagAskJSON  bool
)

var askCmd = &cobra.Command{
	Use:   "ask <url> <question>",
	Short: "Ask a question about a page",
	Long: `Ask parses the page and sends the question, together with the extracted
content and code examples, to the selected chat model.

Examples:
  docmind ask https://example.com/docs "How do I install it?"
  docmind ask https://example.com/docs "Show the config example" --model gemini --json`,
	Args: cobra.ExactArgs(2),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)

	askCmd.Flags().StringVar(&flagAskModel, "model", assistant.ModelGroq, "Chat model: groq or gemini")
	askCmd.Flags().BoolVar(&flagAskJSON, "json", false, "Print the structured reply as JSON")
}

// newAssistant wires both configured backends.
func newAssistant() *assistant.Assistant {
	backends := map[string]assistant.Backend{}
	for name, e := range map[string]llm.Endpoint{
		assistant.ModelGroq:   cfg.Assistant.Groq.Endpoint(),
		assistant.ModelGemini: cfg.Assistant.Gemini.Endpoint(),
	} {
		if e.APIKey == "" {
			log.Debug().Str("model", name).Msg("no API key configured, backend disabled")
			continue
		}
		backends[name] = assistant.Backend{Client: llm.NewProvider(e), Model: e.Model}
	}
	return assistant.New(backends, assistant.WithLogger(log.Logger))
}

func runAsk(cmd *cobra.Command, args []string) error {
	rawURL, question := args[0], args[1]
	if err := validateURL(rawURL); err != nil {
		return err
	}

	doc, err := newPipeline(false).Process(cmd.Context(), rawURL)
	if err != nil {
		return err
	}

	reply, err := newAssistant().Answer(cmd.Context(), doc,
		[]assistant.Turn{{Type: "user", Content: question}}, flagAskModel)
	if err != nil {
		return err
	}

	if flagAskJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(reply)
	}
	printReply(reply)
	return nil
}

func printReply(r *assistant.Reply) {
	if r.NotFound {
		fmt.Fprintln(os.Stdout, "(not found in the document; closest match below)")
	}
	fmt.Fprintln(os.Stdout, r.Description)
	if len(r.Steps) > 0 {
		fmt.Fprintln(os.Stdout)
		for i, step := range r.Steps {
			fmt.Fprintf(os.Stdout, "%d. %s\n", i+1, step)
		}
	}
	for _, b := range r.CodeBlocks {
		fmt.Fprintf(os.Stdout, "\n%s\n```%s\n%s\n```\n", b.Description, b.Language, b.Code)
	}
}
