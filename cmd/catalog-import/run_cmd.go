package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/eisenhub/catalog/modules/catalog/infrastructure/persistence"
	"github.com/eisenhub/catalog/modules/catalog/services"
	"github.com/eisenhub/catalog/pkg/composables"
	"github.com/eisenhub/catalog/pkg/configuration"
	"github.com/eisenhub/catalog/pkg/eventbus"
	"github.com/eisenhub/catalog/pkg/excel"
)

type runOutput struct {
	Command    string `json:"command"`
	DurationMS int64  `json:"duration_ms"`
	Result     any    `json:"result"`
}

func newRunCmd() *cobra.Command {
	var (
		tenantID     string
		userID       uint
		collectionID uint
		file         string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Import one workbook into a collection",
		RunE: func(cmd *cobra.Command, args []string) error {
			tid, err := uuid.Parse(tenantID)
			if err != nil {
				return fmt.Errorf("invalid --tenant: %w", err)
			}
			if collectionID == 0 {
				return fmt.Errorf("--collection is required")
			}

			wb, err := excel.OpenFile(file)
			if err != nil {
				return err
			}

			conf := configuration.Use()
			pool, err := pgxpool.New(cmd.Context(), conf.Database.Opts)
			if err != nil {
				return err
			}
			defer pool.Close()

			logger := conf.Logger()
			ctx := composables.WithPool(cmd.Context(), pool)
			ctx = composables.WithLogger(ctx, logger.WithField("command", "catalog-import"))
			ctx = composables.WithTenantID(ctx, tid)
			ctx = composables.WithUserID(ctx, userID)

			importService := services.NewImportService(
				persistence.NewDocumentRepository(),
				persistence.NewTaxonomyRepository(),
				persistence.NewAssetRepository(),
				eventbus.NewEventPublisher(logger),
			)

			start := time.Now()
			result, err := importService.ImportWorkbook(ctx, wb, collectionID)
			if err != nil {
				return err
			}
			return writeJSON(runOutput{
				Command:    "import run",
				DurationMS: time.Since(start).Milliseconds(),
				Result:     result,
			})
		},
	}

	cmd.Flags().StringVar(&tenantID, "tenant", "", "tenant uuid (required)")
	cmd.Flags().UintVar(&userID, "user", 0, "acting user id for audit columns")
	cmd.Flags().UintVar(&collectionID, "collection", 0, "target collection id (required)")
	cmd.Flags().StringVar(&file, "file", "", "workbook path (required)")
	_ = cmd.MarkFlagRequired("tenant")
	_ = cmd.MarkFlagRequired("collection")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func writeJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
