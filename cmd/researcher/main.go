// Command researcher is an offline-first CLI over the same engine the server
// uses: catalog search, summarization, and question answering without any
// running service.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"research-agent/internal/catalog"
	"research-agent/internal/config"
	"research-agent/internal/logger"
	"research-agent/internal/synthesis"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "researcher",
		Short:         "Search papers, summarize text, and ask questions about it",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newSearchCmd(), newSummarizeCmd(), newAskCmd())
	return root
}

func newSearchCmd() *cobra.Command {
	var maxResults int

	cmd := &cobra.Command{
		Use:   "search <topic>",
		Short: "Search the paper catalog by topic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			log := logger.NewText(cfg.LogLevel)

			client := catalog.NewArxiv(cfg.CatalogBaseURL, http.DefaultClient)
			papers, err := client.Search(cmd.Context(), args[0], maxResults)
			if err != nil {
				return fmt.Errorf("catalog search failed: %w", err)
			}
			log.Debug("search finished", "topic", args[0], "papers", len(papers))
			return writeJSON(cmd.OutOrStdout(), map[string]any{
				"topic":  args[0],
				"papers": papers,
			})
		},
	}
	cmd.Flags().IntVar(&maxResults, "max-results", 10, "maximum number of papers to return")
	return cmd
}

func newSummarizeCmd() *cobra.Command {
	var (
		eli5      bool
		sentences int
	)

	cmd := &cobra.Command{
		Use:   "summarize [file]",
		Short: "Summarize a text file, or stdin when no file is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			result := synthesis.Summarize(text, sentences, eli5)
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().BoolVar(&eli5, "eli5", false, "simplify the summary for a lay reader")
	cmd.Flags().IntVar(&sentences, "sentences", synthesis.DefaultMaxSentences, "maximum sentences in the summary")
	return cmd
}

func newAskCmd() *cobra.Command {
	var (
		contextFile string
		eli5        bool
	)

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Answer a question from a context file, or stdin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var text string
			var err error
			if contextFile != "" {
				data, readErr := os.ReadFile(contextFile)
				if readErr != nil {
					return fmt.Errorf("read context: %w", readErr)
				}
				text = string(data)
			} else {
				text, err = readInput(cmd, nil)
				if err != nil {
					return err
				}
			}
			answer := synthesis.Respond(text, args[0], eli5)
			return writeJSON(cmd.OutOrStdout(), map[string]any{
				"question": args[0],
				"answer":   answer,
			})
		},
	}
	cmd.Flags().StringVar(&contextFile, "context", "", "file holding the paper text to answer from")
	cmd.Flags().BoolVar(&eli5, "eli5", false, "simplify the answer for a lay reader")
	return cmd
}

// readInput returns the named file's contents, or stdin when no file is given.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", fmt.Errorf("no input text provided")
	}
	return string(data), nil
}

func writeJSON(w io.Writer, body any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(body)
}
