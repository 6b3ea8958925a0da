package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/supplyq/supplyq/internal/ingest"
	"github.com/supplyq/supplyq/internal/observability"
	"github.com/supplyq/supplyq/internal/store"
)

func newIngestCommand() *cobra.Command {
	var source string

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Load the supply chain CSV dataset into the store",
		Long: `ingest creates the supply_chain_orders table if needed and bulk-loads
the DataCo CSV into it. The source is a local file path by default, or an
object key in the configured bucket when prefixed with s3://.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if source == "" {
				source = cfg.Ingest.CSVPath
			}

			var src ingest.Source
			if object, ok := strings.CutPrefix(source, "s3://"); ok {
				src = &ingest.ObjectSource{Config: cfg.Ingest.S3, Object: object}
			} else {
				src = &ingest.FileSource{Path: source}
			}

			ctx := cmd.Context()
			db, err := store.Open(ctx, cfg.Store)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			reader, err := src.Open(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = reader.Close() }()

			importer := &ingest.Importer{
				DB:        db,
				Driver:    cfg.Store.Driver,
				BatchSize: cfg.Ingest.BatchSize,
				Logger:    observability.NewLogger(cfg, cmd.ErrOrStderr()),
			}

			start := time.Now()
			total, err := importer.Import(ctx, reader)
			if err != nil {
				return fmt.Errorf("import dataset: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d rows from %s in %s\n",
				total, source, time.Since(start).Round(time.Millisecond))
			return nil
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "CSV path, or s3://<object> for the configured bucket")

	return cmd
}
