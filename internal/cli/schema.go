package cli

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/supplyq/supplyq/internal/store"
)

func newSchemaCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Show the live dataset schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			db, err := store.Open(ctx, cfg.Store)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			builder := &store.SnapshotBuilder{
				DB:         db,
				Driver:     cfg.Store.Driver,
				Table:      store.TableName,
				SampleRows: cfg.Query.SampleRows,
			}
			snapshot, err := builder.Snapshot(ctx)
			if err != nil {
				return err
			}

			if format == "json" {
				return renderJSON(cmd.OutOrStdout(), snapshot)
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Column", "Type"})
			for _, column := range snapshot.Columns {
				t.AppendRow(table.Row{column.Name, column.Type})
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "output", "o", "table", "Output format (table|json)")

	return cmd
}
