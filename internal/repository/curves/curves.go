package curves

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"kurva/internal/model"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// SavePoints upserts a full day's curve keyed on (date, tenor), so a
// re-scrape of the same publication refreshes the derived rates instead
// of duplicating rows.
func (that *Repository) SavePoints(ctx context.Context, points []*model.CurvePoint) error {
	query := that.db.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns: []clause.Column{{Name: "date"}, {Name: "tenor_years"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"par_yield":    gorm.Expr("EXCLUDED.par_yield"),
				"spot_rate":    gorm.Expr("EXCLUDED.spot_rate"),
				"forward_rate": gorm.Expr("EXCLUDED.forward_rate"),
			}),
		},
	)

	if err := query.Create(points).Error; err != nil {
		return fmt.Errorf("upsert curve points in database: %w", err)
	}

	return nil
}

// GetCurveByDate returns the curve published on the given date, in
// ascending tenor order. Missing dates return an empty slice.
func (that *Repository) GetCurveByDate(ctx context.Context, date time.Time) ([]*model.CurvePoint, error) {
	var points []*model.CurvePoint

	query := that.db.WithContext(ctx).Model(&model.CurvePoint{}).Where("date = ?", date).Order("tenor_years ASC")
	if err := query.Find(&points).Error; err != nil {
		return nil, fmt.Errorf("fetch curve points from database: %w", err)
	}

	return points, nil
}

// GetLatestCurve returns the most recently published curve, in ascending
// tenor order. An empty table returns nil without error.
func (that *Repository) GetLatestCurve(ctx context.Context) ([]*model.CurvePoint, error) {
	var latest []model.CurvePoint

	query := that.db.WithContext(ctx).Model(&model.CurvePoint{}).Order("date DESC").Limit(1)
	if err := query.Find(&latest).Error; err != nil {
		return nil, fmt.Errorf("fetch latest curve date from database: %w", err)
	}

	if len(latest) == 0 {
		return nil, nil
	}

	return that.GetCurveByDate(ctx, latest[0].Date)
}
