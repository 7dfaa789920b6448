package usecases_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"kurva/internal/curve"
	"kurva/internal/export"
	"kurva/internal/interaction/phei"
	"kurva/internal/model"
	"kurva/internal/repository/curves"
	"kurva/internal/usecases"
	"kurva/testing/suite"
)

type stubInteraction struct {
	snapshot *phei.Snapshot
}

func (that *stubInteraction) GetDailySnapshot(_ context.Context) (*phei.Snapshot, error) {
	return that.snapshot, nil
}

func Test_UpdateCurveUsecase(t *testing.T) {
	ctx, st := suite.New(t, suite.WithPostgres())
	curvesRepository := curves.NewRepository(st.GetDB())

	outputDir := t.TempDir()
	exporter := export.NewExporter(st.Logger, outputDir)

	// Given: A scraped snapshot with the two benchmark tables concatenated
	date := suite.GetDateTime(t, "2026-08-27")
	interaction := &stubInteraction{snapshot: &phei.Snapshot{
		Date: date,
		Rows: []curve.RawRow{
			{Tenor: "10", Yield: "55123"},
			{Tenor: "20", Yield: "57890"},
			{Tenor: "30", Yield: "59200"},
			{Tenor: "50", Yield: "60110"},
			{Tenor: "100", Yield: "62450"},
			{Tenor: "150", Yield: "64120"},
			{Tenor: "200", Yield: "65480"},
		},
	}}

	updateCurveUC := usecases.NewUpdateCurveUsecase(st.Logger, curvesRepository, interaction, exporter, "https://example.test/curve", curve.DefaultOptions())

	// When: We run the pipeline
	updateCurveUC.UpdateCurve(ctx)

	// Then: The derived curve is persisted in ascending tenor order
	var points []*model.CurvePoint
	require.NoError(t, st.GetDB().WithContext(ctx).Model(&model.CurvePoint{}).Where("date = ?", date).Order("tenor_years ASC").Find(&points).Error)
	require.Len(t, points, 7)

	require.Equal(t, 1.0, points[0].TenorYears)
	require.Equal(t, 20.0, points[6].TenorYears)

	// The first two spot rates equal the par yields
	require.Equal(t, 0.055123, points[0].ParYield)
	require.Equal(t, 0.055123, points[0].SpotRate)
	require.Equal(t, 0.05789, points[1].SpotRate)

	// The shortest tenor has no forward rate; all others do
	require.Nil(t, points[0].ForwardRate)
	for _, p := range points[1:] {
		require.NotNil(t, p.ForwardRate)
	}

	// And: Both export files exist
	_, err := os.Stat(filepath.Join(outputDir, "2026-08-27_yield_curve.csv"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(outputDir, "2026-08-27_yield_curve.json"))
	require.NoError(t, err)

	// When: We run the pipeline again for the same publication
	updateCurveUC.UpdateCurve(ctx)

	// Then: Rows are upserted, not duplicated
	var count int64
	require.NoError(t, st.GetDB().WithContext(ctx).Model(&model.CurvePoint{}).Where("date = ?", date).Count(&count).Error)
	require.EqualValues(t, 7, count)
}

func Test_UpdateCurveUsecase_TooShort(t *testing.T) {
	ctx, st := suite.New(t, suite.WithPostgres())
	curvesRepository := curves.NewRepository(st.GetDB())
	exporter := export.NewExporter(st.Logger, t.TempDir())

	// Given: A snapshot where only two rows survive validation
	interaction := &stubInteraction{snapshot: &phei.Snapshot{
		Date: suite.GetDateTime(t, "2026-08-27"),
		Rows: []curve.RawRow{
			{Tenor: "10", Yield: "55123"},
			{Tenor: "20", Yield: "57890"},
			{Tenor: "30", Yield: "garbage"},
		},
	}}

	updateCurveUC := usecases.NewUpdateCurveUsecase(st.Logger, curvesRepository, interaction, exporter, "https://example.test/curve", curve.DefaultOptions())

	// When: We run the pipeline
	updateCurveUC.UpdateCurve(ctx)

	// Then: Nothing is persisted; the run aborts on the structural error
	var count int64
	require.NoError(t, st.GetDB().WithContext(ctx).Model(&model.CurvePoint{}).Count(&count).Error)
	require.Zero(t, count)
}
