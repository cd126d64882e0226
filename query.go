package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"tagsearch/internal/autocomplete"
	"tagsearch/internal/tui"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type queryOptions struct {
	cursor int
	json   bool
}

func newQueryCmd(flags *rootFlags) *cobra.Command {
	opts := &queryOptions{cursor: -1}

	cmd := &cobra.Command{
		Use:   "query TEXT",
		Short: "Print suggestions for the tag under the cursor",
		Long: `Derive the tag being typed at --cursor (default: end of TEXT), fetch its
suggestions once and print them.`,
		Example: `  tagsearch query "blue_eyes, 1g"
  tagsearch query "1g, solo" --cursor 2 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(flags)
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg, flags)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			client, err := newClient(cfg, logger)
			if err != nil {
				return err
			}
			return runQuery(cmd.Context(), client, args[0], opts, cmd.OutOrStdout(), logger)
		},
	}

	cmd.Flags().IntVar(&opts.cursor, "cursor", -1, "cursor position in runes (default: end of text)")
	cmd.Flags().BoolVar(&opts.json, "json", false, "output as JSON")
	return cmd
}

// queryResult is the JSON shape printed by the query command
type queryResult struct {
	Text        string                    `json:"text"`
	Query       string                    `json:"query"`
	Suggestions []autocomplete.Suggestion `json:"suggestions"`
}

func runQuery(ctx context.Context, fetcher tui.Fetcher, text string, opts *queryOptions, out io.Writer, logger *zap.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cursor := opts.cursor
	if cursor < 0 {
		cursor = len([]rune(text))
	}
	query := autocomplete.ExtractQuery(text, cursor)

	result := queryResult{Text: text, Query: query, Suggestions: []autocomplete.Suggestion{}}
	if query != "" {
		suggestions, err := fetcher.Fetch(ctx, query)
		if err != nil {
			return errors.Wrapf(err, "fetching suggestions for %q", query)
		}
		result.Suggestions = suggestions
	}
	logger.Debug("query complete", zap.String("query", query), zap.Int("results", len(result.Suggestions)))

	if opts.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	if query == "" {
		_, err := fmt.Fprintln(out, "No tag under the cursor")
		return err
	}
	if len(result.Suggestions) == 0 {
		_, err := fmt.Fprintf(out, "No suggestions for %q\n", query)
		return err
	}

	_, err := fmt.Fprintln(out, suggestionTable(result.Suggestions))
	return err
}

func suggestionTable(suggestions []autocomplete.Suggestion) string {
	rows := make([][]string, 0, len(suggestions))
	for i, s := range suggestions {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			s.Label,
			s.Antecedent,
			autocomplete.CategoryName(s.Category),
			s.PostCount,
		})
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "TAG", "ALIAS OF", "CATEGORY", "POSTS").
		Rows(rows...).
		Render()
}
