package cmd

import (
	"net/http"

	"github.com/spf13/cobra"

	"kurva/internal/curve"
	"kurva/internal/export"
	"kurva/internal/interaction/phei"
	"kurva/internal/repository/curves"
	"kurva/internal/storage"
	"kurva/internal/usecases"
)

// scrapeCmd runs the pipeline once and exits; handy for backfills and
// for running under an external scheduler.
var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape the PHEI benchmark page once, derive rates and persist them",
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()

		postgresConnection := storage.MustNewPostgresConnection(logger, cnf.Database.ConnString(), cnf.Logger.ParsedGORMLevel)
		defer postgresConnection.MustClose()

		postgresConnection.MustMigration()

		curvesRepository := curves.NewRepository(postgresConnection.DB)
		pheiClient := &http.Client{Timeout: cnf.PHEI.Timeout()}
		pheiInteractor := phei.NewInteraction(logger, pheiClient, cnf.PHEI.BaseURL)
		exporter := export.NewExporter(logger, cnf.Export.OutputDir)

		curveOpts := curve.Options{MinYield: cnf.Curve.MinYield, MaxYield: cnf.Curve.MaxYield, MinTenors: cnf.Curve.MinTenors}
		updateCurveUC := usecases.NewUpdateCurveUsecase(logger, curvesRepository, pheiInteractor, exporter, cnf.PHEI.BaseURL, curveOpts)

		updateCurveUC.UpdateCurve(ctx)
	},
}
