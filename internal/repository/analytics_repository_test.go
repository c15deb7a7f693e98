package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyticsRepositoryCountByPlatform(t *testing.T) {
	db, mock := newMock(t)
	repo := NewAnalyticsRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT platform, COUNT(id) FROM posts GROUP BY platform`)).
		WillReturnRows(sqlmock.NewRows([]string{"platform", "count"}).
			AddRow("twitter", int64(2)).
			AddRow("facebook", int64(1)))

	counts, err := repo.CountByPlatform(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"twitter": 2, "facebook": 1}, counts)
	assert.NotContains(t, counts, "instagram")
}

func TestAnalyticsRepositoryCountByStatusEmpty(t *testing.T) {
	db, mock := newMock(t)
	repo := NewAnalyticsRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT status, COUNT(id) FROM posts GROUP BY status`)).
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}))

	counts, err := repo.CountByStatus(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, counts)
	assert.Empty(t, counts)
}

func TestAnalyticsRepositoryAvgEngagement(t *testing.T) {
	db, mock := newMock(t)
	repo := NewAnalyticsRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`AVG(engagement_score)::float8`)).
		WillReturnRows(sqlmock.NewRows([]string{"platform", "avg"}).
			AddRow("twitter", 12.5).
			AddRow("linkedin", 0.0))

	avgs, err := repo.AvgEngagementByPlatform(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"twitter": 12.5, "linkedin": 0}, avgs)
}

func TestAnalyticsRepositoryTotals(t *testing.T) {
	db, mock := newMock(t)
	repo := NewAnalyticsRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*), COALESCE(SUM(engagement_score), 0) FROM posts`)).
		WillReturnRows(sqlmock.NewRows([]string{"count", "sum"}).AddRow(int64(0), int64(0)))

	totals, err := repo.Totals(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), totals.TotalPosts)
	assert.Equal(t, int64(0), totals.TotalEngagement)
}
