package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/maheshrc27/content-planner/internal/transfer"
)

// AnalyticsRepository aggregates over the whole posts table. Nothing is
// cached; each call is a fresh query.
type AnalyticsRepository interface {
	CountByPlatform(ctx context.Context) (map[string]int64, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
	AvgEngagementByPlatform(ctx context.Context) (map[string]float64, error)
	Totals(ctx context.Context) (*transfer.Totals, error)
}

type analyticsRepository struct {
	db *sql.DB
}

func NewAnalyticsRepository(db *sql.DB) AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) CountByPlatform(ctx context.Context) (map[string]int64, error) {
	return r.countBy(ctx, `SELECT platform, COUNT(id) FROM posts GROUP BY platform`)
}

func (r *analyticsRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	return r.countBy(ctx, `SELECT status, COUNT(id) FROM posts GROUP BY status`)
}

func (r *analyticsRepository) countBy(ctx context.Context, query string) (map[string]int64, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var key string
		var count int64
		if err := rows.Scan(&key, &count); err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		counts[key] = count
	}
	if err := rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	return counts, nil
}

func (r *analyticsRepository) AvgEngagementByPlatform(ctx context.Context) (map[string]float64, error) {
	query := `SELECT platform, AVG(engagement_score)::float8 FROM posts GROUP BY platform`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	avgs := make(map[string]float64)
	for rows.Next() {
		var platform string
		var avg float64
		if err := rows.Scan(&platform, &avg); err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		avgs[platform] = avg
	}
	if err := rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	return avgs, nil
}

// Totals never yields a NULL sum: an empty table reports zero engagement.
func (r *analyticsRepository) Totals(ctx context.Context) (*transfer.Totals, error) {
	query := `SELECT COUNT(*), COALESCE(SUM(engagement_score), 0) FROM posts`

	var totals transfer.Totals
	err := r.db.QueryRowContext(ctx, query).Scan(&totals.TotalPosts, &totals.TotalEngagement)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	return &totals, nil
}
