package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/supplyq/supplyq/internal/observability"
	"github.com/supplyq/supplyq/internal/pipeline"
	"github.com/supplyq/supplyq/internal/store"
	"github.com/supplyq/supplyq/internal/translate"
)

func newAskCommand() *cobra.Command {
	var (
		limit   int
		offset  int
		format  string
		showSQL bool
	)

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Translate a supply chain question into SQL and run it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if !cfg.AI.TranslateEnabled {
				return fmt.Errorf("translation is disabled (set SUPPLYQ_AI_TRANSLATE_ENABLED=true)")
			}
			if limit <= 0 {
				limit = cfg.Query.DefaultLimit
			}
			if limit > cfg.Query.MaxLimit {
				limit = cfg.Query.MaxLimit
			}

			ctx := cmd.Context()
			db, err := store.Open(ctx, cfg.Store)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			translator, err := translate.NewClient(translate.ClientConfig{
				BaseURL:     cfg.AI.BaseURL,
				APIKey:      cfg.AI.APIKey,
				Model:       cfg.AI.Model,
				Temperature: cfg.AI.Temperature,
				Timeout:     cfg.AI.Timeout,
			})
			if err != nil {
				return fmt.Errorf("configure translator: %w", err)
			}

			logger := observability.NewLogger(cfg, cmd.ErrOrStderr())
			agent := pipeline.NewAgent(db, cfg.Store.Driver, cfg.Query.SampleRows, translator, logger)

			resp := agent.Handle(ctx, pipeline.Request{
				Text:   strings.Join(args, " "),
				Limit:  limit,
				Offset: offset,
			})

			if format == "json" {
				return renderJSON(cmd.OutOrStdout(), resp)
			}
			return renderResponse(cmd.OutOrStdout(), resp, showSQL)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Rows per page (default: configured page size)")
	cmd.Flags().IntVar(&offset, "offset", 0, "Row offset of the page")
	cmd.Flags().StringVarP(&format, "output", "o", "table", "Output format (table|json)")
	cmd.Flags().BoolVar(&showSQL, "show-sql", false, "Print the generated SQL statement")

	return cmd
}

func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderResponse(w io.Writer, resp pipeline.Response, showSQL bool) error {
	switch resp.Status {
	case pipeline.StatusSuccess:
	case pipeline.StatusInvalid:
		_, _ = fmt.Fprintln(w, resp.Response)
		return nil
	default:
		return fmt.Errorf("%s", resp.Response)
	}

	if showSQL && resp.SQLUsed != "" {
		_, _ = fmt.Fprintf(w, "SQL: %s\n\n", resp.SQLUsed)
	}
	if len(resp.Rows) == 0 {
		_, _ = fmt.Fprintln(w, "No matching records found.")
		return nil
	}

	renderRecords(w, resp.Rows)

	if p := resp.Pagination; p != nil {
		_, _ = fmt.Fprintf(w, "(%d of %d rows, offset %d)\n", len(resp.Rows), p.Total, p.Offset)
		if p.HasMore {
			_, _ = fmt.Fprintf(w, "More rows available: rerun with --offset %d\n", p.Offset+p.Limit)
		}
	} else {
		_, _ = fmt.Fprintf(w, "(%d rows)\n", len(resp.Rows))
	}
	return nil
}

// renderRecords draws one page as a table. Column order follows the
// first record, which preserves the statement's select order; cells are
// looked up by name so a record with a diverging field set cannot shift
// values into the wrong column.
func renderRecords(w io.Writer, records []store.Record) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	columns := make([]string, 0, len(records[0]))
	header := make(table.Row, 0, len(records[0]))
	for _, field := range records[0] {
		columns = append(columns, field.Name)
		header = append(header, field.Name)
	}
	t.AppendHeader(header)

	for _, record := range records {
		row := make(table.Row, 0, len(columns))
		for _, column := range columns {
			value, ok := record.Get(column)
			if !ok {
				row = append(row, "")
				continue
			}
			row = append(row, formatValue(value))
		}
		t.AppendRow(row)
	}

	t.Render()
}

func formatValue(v any) string {
	if v == nil {
		return "NULL"
	}
	return fmt.Sprintf("%v", v)
}
