package usecases

import (
	"context"
	"log/slog"
	"time"

	"go.uber.org/atomic"

	"kurva/internal/curve"
	"kurva/internal/interaction/phei"
	"kurva/internal/model"
)

type Repository interface {
	SavePoints(ctx context.Context, points []*model.CurvePoint) error
}

type Interaction interface {
	GetDailySnapshot(ctx context.Context) (*phei.Snapshot, error)
}

type Exporter interface {
	ExportCSV(date time.Time, points []*model.CurvePoint) error
	ExportJSON(date time.Time, scrapedAt time.Time, sourceURL string, points []*model.CurvePoint) error
}

type UpdateCurveUsecase struct {
	logger      *slog.Logger
	repository  Repository
	interaction Interaction
	exporter    Exporter
	sourceURL   string
	opts        curve.Options

	running atomic.Bool
}

func NewUpdateCurveUsecase(logger *slog.Logger, repository Repository, interaction Interaction, exporter Exporter, sourceURL string, opts curve.Options) *UpdateCurveUsecase {
	return &UpdateCurveUsecase{
		logger:      logger.With("component", "update_curve"),
		repository:  repository,
		interaction: interaction,
		exporter:    exporter,
		sourceURL:   sourceURL,
		opts:        opts,
	}
}

// UpdateCurve runs the full daily pipeline: scrape, normalize, bootstrap,
// persist, export. The whole run is best-effort below the structural
// level: bad rows and degenerate points are substituted, only a curve too
// sparse to bootstrap aborts the day.
func (that *UpdateCurveUsecase) UpdateCurve(ctx context.Context) {
	log := that.logger.With("method", "UpdateCurve")

	if !that.running.CompareAndSwap(false, true) {
		log.Warn("previous run still in progress, skipping")
		return
	}
	defer that.running.Store(false)

	scrapedAt := time.Now()

	snapshot, err := that.interaction.GetDailySnapshot(ctx)
	if err != nil {
		log.Error("failed to get daily snapshot", "error", err)
		return
	}

	date := snapshot.Date
	if date.IsZero() {
		date = time.Date(scrapedAt.Year(), scrapedAt.Month(), scrapedAt.Day(), 0, 0, 0, 0, time.UTC)
		log.Warn("page carried no publication date, using today", "date", date)
	}

	parCurve, err := curve.Normalize(snapshot.Rows, that.opts)
	if err != nil {
		log.Error("failed to normalize curve", "error", err, "raw_rows", len(snapshot.Rows))
		return
	}

	spot := curve.BootstrapSpotRates(parCurve)
	forwards := curve.ForwardRates(spot, parCurve.Tenors())

	points := make([]*model.CurvePoint, len(parCurve))
	for i, p := range parCurve {
		point := &model.CurvePoint{
			Date:       date,
			TenorYears: p.TenorYears,
			ParYield:   p.ParYield,
			SpotRate:   spot[i],
		}
		if i > 0 {
			point.ForwardRate = &forwards[i-1]
		}
		points[i] = point
	}

	if err = that.repository.SavePoints(ctx, points); err != nil {
		log.Error("failed to save curve points", "error", err)
		return
	}

	if err = that.exporter.ExportCSV(date, points); err != nil {
		log.Error("failed to export csv", "error", err)
	}

	if err = that.exporter.ExportJSON(date, scrapedAt, that.sourceURL, points); err != nil {
		log.Error("failed to export json", "error", err)
	}

	log.Info("curve updated",
		"date", date.Format("2006-01-02"),
		"tenors", len(points),
		"raw_rows", len(snapshot.Rows),
		"duration", time.Since(scrapedAt).String(),
	)
}
