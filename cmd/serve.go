package cmd

import (
	"context"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"kurva/internal/curve"
	"kurva/internal/export"
	"kurva/internal/interaction/phei"
	"kurva/internal/interaction/telegram"
	"kurva/internal/repository/chats"
	"kurva/internal/repository/curves"
	"kurva/internal/scheduler"
	"kurva/internal/storage"
	"kurva/internal/usecases"
	"kurva/locales"
)

var serveCmd = &cobra.Command{
	Use: "serve",
	Run: func(cmd *cobra.Command, _ []string) {
		log := logger.With("package", "cmd")
		ctx := cmd.Context()

		// Initialize database connection
		postgresConnection := storage.MustNewPostgresConnection(logger, cnf.Database.ConnString(), cnf.Logger.ParsedGORMLevel)
		defer postgresConnection.MustClose()

		postgresConnection.MustMigration()

		// Initialize repositories
		curvesRepository := curves.NewRepository(postgresConnection.DB)
		chatsRepository := chats.NewRepository(postgresConnection.DB)

		bundle, err := locales.GetBundle("./")
		cobra.CheckErr(err)

		// Initialize HTTP clients
		telegramClient := &http.Client{Timeout: time.Minute}
		pheiClient := &http.Client{Timeout: cnf.PHEI.Timeout()}

		// Initialize interactions
		telegramInteractor := telegram.NewInteraction(logger, cnf.Telegram.Token, telegramClient, bundle, curvesRepository, chatsRepository)
		pheiInteractor := phei.NewInteraction(logger, pheiClient, cnf.PHEI.BaseURL)

		// Initialize exporter
		exporter := export.NewExporter(logger, cnf.Export.OutputDir)

		// Initialize usecases
		curveOpts := curve.Options{MinYield: cnf.Curve.MinYield, MaxYield: cnf.Curve.MaxYield, MinTenors: cnf.Curve.MinTenors}
		updateCurveUC := usecases.NewUpdateCurveUsecase(logger, curvesRepository, pheiInteractor, exporter, cnf.PHEI.BaseURL, curveOpts)
		digestUC := usecases.NewDigestUseCase(logger, curvesRepository, chatsRepository, telegramInteractor)

		// Initialize scheduler
		loc := time.FixedZone("Asia/Jakarta", 7*3600)
		sched := scheduler.New(ctx, loc)

		sched.Add(cnf.Scheduler.CronSpec, func(ctx context.Context) {
			log.Info("running PHEI update")
			updateCurveUC.UpdateCurve(ctx)
			digestUC.Run(ctx)
		})
		go sched.Start()

		log.Info("starting telegram bot")
		telegramInteractor.Start(ctx)
	},
}
