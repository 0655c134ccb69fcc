// backend-go/cmd/analyze/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/jacengineering/inventario/backend-go/internal/config"
	"github.com/jacengineering/inventario/backend-go/internal/domain"
	"github.com/jacengineering/inventario/backend-go/internal/export"
	"github.com/jacengineering/inventario/backend-go/internal/ingest"
	"github.com/jacengineering/inventario/backend-go/internal/inventory"
	"github.com/jacengineering/inventario/backend-go/internal/repository"
	"github.com/jacengineering/inventario/backend-go/internal/repository/postgres"
	"github.com/jacengineering/inventario/backend-go/internal/storage"
	"github.com/jacengineering/inventario/backend-go/pkg/logger"
)

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Debug().Err(err).Msg("could not load .env file")
	}
	logger.SetLevel("info")

	app := &cli.App{
		Name:  "analizar",
		Usage: "Run the inventory analysis pipeline from the command line",
		Commands: []*cli.Command{
			{
				Name:  "analizar",
				Usage: "Reconcile the latest SAP export with the stocking parameters and write the report",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "sap-dir",
						Usage:   "Directory containing SAP stock exports",
						Value:   "./data/sap_descargas",
						EnvVars: []string{"APP_SAP_DIR"},
					},
					&cli.StringFlag{
						Name:  "stock-file",
						Usage: "Explicit stock export to analyze (overrides --sap-dir)",
					},
					&cli.StringFlag{
						Name:     "params-file",
						Usage:    "Stocking parameters workbook (XLSX or CSV)",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "out-dir",
						Usage:   "Directory for the generated reports",
						Value:   "./data/outputs",
						EnvVars: []string{"APP_OUTPUT_DIR"},
					},
					&cli.StringFlag{
						Name:  "format",
						Usage: "Report format: csv or xlsx",
						Value: "csv",
					},
					&cli.BoolFlag{
						Name:  "archive",
						Usage: "Upload the report to the configured S3-compatible archive",
					},
				},
				Action: runAnalyze,
			},
			{
				Name:  "cargar-parametros",
				Usage: "Replace the stored stocking parameters with the contents of a workbook",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{
						Name:     "params-file",
						Usage:    "Stocking parameters workbook (XLSX or CSV)",
						Required: true,
					},
				},
				Action: runLoadParameters,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("command failed")
	}
}

func runAnalyze(c *cli.Context) error {
	stockPath := c.String("stock-file")
	if stockPath == "" {
		latest, _, err := ingest.LatestExport(c.String("sap-dir"))
		if err != nil {
			return err
		}
		stockPath = latest
	}

	stock, err := ingest.LoadStockFile(stockPath)
	if err != nil {
		return err
	}
	params, err := ingest.LoadParametersFile(c.String("params-file"))
	if err != nil {
		return err
	}

	unified, report, err := inventory.Reconcile(stock, params)
	if err != nil {
		return err
	}
	if report.DuplicateKeys > 0 {
		log.Warn().Int("duplicates", report.DuplicateKeys).Msg("duplicate parameter keys, last writer wins")
	}

	analyzed := inventory.Analyze(unified)
	metrics := inventory.Summarize(analyzed)

	outDir := c.String("out-dir")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed creating output directory: %w", err)
	}

	format := c.String("format")
	name := fmt.Sprintf("analisis_inventario_%s.%s", time.Now().Format("20060102_150405"), format)
	outPath := filepath.Join(outDir, name)

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()

	switch format {
	case "csv":
		err = export.WriteAnalysisCSV(out, analyzed)
	case "xlsx":
		err = export.WriteAnalysisXLSX(out, analyzed)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
	if err != nil {
		return err
	}

	log.Info().
		Str("stock", stockPath).
		Str("report", outPath).
		Int("materiales", metrics.TotalMaterials).
		Int("criticos", metrics.Critical).
		Int("bajo", metrics.Low).
		Int("sin_configurar", metrics.Unconfigured).
		Float64("valor_compras", metrics.RequiredPurchases).
		Msg("analysis complete")

	if c.Bool("archive") {
		return archiveReport(c.Context, outPath, name)
	}
	return nil
}

func archiveReport(ctx context.Context, path, name string) error {
	cfg := config.Load()
	if !cfg.Archive.Enabled {
		return fmt.Errorf("archive requested but ARCHIVE_ENABLED is false")
	}

	client, err := storage.NewArchiveClient(cfg.Archive)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	key := fmt.Sprintf("reportes/%s/%s", time.Now().Format("2006-01"), name)
	if err := client.UploadObject(ctx, key, data); err != nil {
		return err
	}

	log.Info().Str("key", key).Msg("report archived")
	return nil
}

func runLoadParameters(c *cli.Context) error {
	params, err := ingest.LoadParametersFile(c.String("params-file"))
	if err != nil {
		return err
	}
	if len(params) == 0 {
		return fmt.Errorf("no parameter rows found in %s", c.String("params-file"))
	}

	db, err := postgres.Open(c.String("db-url"))
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repository.NewParametersRepository(db.DB, db)
	if err := repo.ReplaceAll(c.Context, params); err != nil {
		return err
	}

	configured := 0
	for _, p := range params {
		if p.Supplier != domain.SupplierPendingAssignment {
			configured++
		}
	}

	log.Info().Int("rows", len(params)).Int("con_proveedor", configured).Msg("parameters loaded")
	return nil
}
