package service

import (
	"context"
	"fmt"

	"github.com/maheshrc27/content-planner/internal/repository"
	"github.com/maheshrc27/content-planner/internal/transfer"
)

// AnalyticsService computes point-in-time aggregates over all posts.
// Platforms or statuses without posts are absent from the maps.
type AnalyticsService interface {
	PlatformStats(ctx context.Context) (map[string]int64, error)
	StatusStats(ctx context.Context) (map[string]int64, error)
	EngagementByPlatform(ctx context.Context) (map[string]float64, error)
	Totals(ctx context.Context) (*transfer.Totals, error)
	Analytics(ctx context.Context) (*transfer.AnalyticsReport, error)
}

type analyticsService struct {
	ar repository.AnalyticsRepository
}

func NewAnalyticsService(ar repository.AnalyticsRepository) AnalyticsService {
	return &analyticsService{ar: ar}
}

func (s *analyticsService) PlatformStats(ctx context.Context) (map[string]int64, error) {
	counts, err := s.ar.CountByPlatform(ctx)
	if err != nil {
		return nil, fmt.Errorf("error counting posts by platform: %w", err)
	}
	return nonNilCounts(counts), nil
}

func (s *analyticsService) StatusStats(ctx context.Context) (map[string]int64, error) {
	counts, err := s.ar.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("error counting posts by status: %w", err)
	}
	return nonNilCounts(counts), nil
}

func (s *analyticsService) EngagementByPlatform(ctx context.Context) (map[string]float64, error) {
	avgs, err := s.ar.AvgEngagementByPlatform(ctx)
	if err != nil {
		return nil, fmt.Errorf("error averaging engagement: %w", err)
	}
	if avgs == nil {
		avgs = map[string]float64{}
	}
	return avgs, nil
}

func (s *analyticsService) Totals(ctx context.Context) (*transfer.Totals, error) {
	totals, err := s.ar.Totals(ctx)
	if err != nil {
		return nil, fmt.Errorf("error computing totals: %w", err)
	}
	if totals == nil {
		totals = &transfer.Totals{}
	}
	return totals, nil
}

// Analytics bundles every aggregate for the dashboard. The queries run one
// after another without a shared transaction.
func (s *analyticsService) Analytics(ctx context.Context) (*transfer.AnalyticsReport, error) {
	platformStats, err := s.PlatformStats(ctx)
	if err != nil {
		return nil, err
	}
	statusStats, err := s.StatusStats(ctx)
	if err != nil {
		return nil, err
	}
	engagementStats, err := s.EngagementByPlatform(ctx)
	if err != nil {
		return nil, err
	}
	totals, err := s.Totals(ctx)
	if err != nil {
		return nil, err
	}

	return &transfer.AnalyticsReport{
		PlatformStats:   platformStats,
		StatusStats:     statusStats,
		EngagementStats: engagementStats,
		Totals:          *totals,
	}, nil
}

func nonNilCounts(counts map[string]int64) map[string]int64 {
	if counts == nil {
		return map[string]int64{}
	}
	return counts
}
