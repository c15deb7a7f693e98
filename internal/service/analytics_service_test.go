package service

import (
	"context"
	"errors"
	"testing"

	"github.com/maheshrc27/content-planner/internal/repository/repotest"
	"github.com/maheshrc27/content-planner/internal/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPosts(t *testing.T, svc PostService, payloads ...transfer.Payload) {
	t.Helper()
	for _, p := range payloads {
		_, err := svc.Create(context.Background(), p)
		require.NoError(t, err)
	}
}

func TestPlatformStatsOmitsEmptyPlatforms(t *testing.T) {
	store := repotest.NewStore()
	posts := NewPostService(store, NewPostNormalizer(nil))
	analytics := NewAnalyticsService(store)

	seedPosts(t, posts,
		transfer.Payload{"title": "1", "content": "c", "platform": "twitter"},
		transfer.Payload{"title": "2", "content": "c", "platform": "twitter"},
		transfer.Payload{"title": "3", "content": "c", "platform": "facebook"},
	)

	stats, err := analytics.PlatformStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"twitter": 2, "facebook": 1}, stats)
	assert.NotContains(t, stats, "instagram")
}

func TestAnalyticsBundle(t *testing.T) {
	store := repotest.NewStore()
	posts := NewPostService(store, NewPostNormalizer(nil))
	analytics := NewAnalyticsService(store)
	ctx := context.Background()

	seedPosts(t, posts,
		transfer.Payload{"title": "1", "content": "c", "platform": "twitter", "engagement_score": float64(10)},
		transfer.Payload{"title": "2", "content": "c", "platform": "twitter", "engagement_score": float64(5), "status": "published"},
		transfer.Payload{"title": "3", "content": "c", "platform": "linkedin", "engagement_score": "", "status": "scheduled"},
	)

	report, err := analytics.Analytics(ctx)
	require.NoError(t, err)

	assert.Equal(t, map[string]int64{"twitter": 2, "linkedin": 1}, report.PlatformStats)
	assert.Equal(t, map[string]int64{"draft": 1, "published": 1, "scheduled": 1}, report.StatusStats)
	assert.Equal(t, map[string]float64{"twitter": 7.5, "linkedin": 0}, report.EngagementStats)
	assert.Equal(t, int64(3), report.TotalPosts)
	assert.Equal(t, int64(15), report.TotalEngagement)

	list, err := posts.List(ctx, transfer.PostFilter{})
	require.NoError(t, err)
	var sum int64
	for _, p := range list {
		sum += p.EngagementScore
	}
	assert.Equal(t, int64(len(list)), report.TotalPosts)
	assert.Equal(t, sum, report.TotalEngagement)
}

func TestAnalyticsEmptyStore(t *testing.T) {
	analytics := NewAnalyticsService(repotest.NewStore())

	report, err := analytics.Analytics(context.Background())
	require.NoError(t, err)

	assert.NotNil(t, report.PlatformStats)
	assert.NotNil(t, report.StatusStats)
	assert.NotNil(t, report.EngagementStats)
	assert.Empty(t, report.PlatformStats)
	assert.Equal(t, int64(0), report.TotalPosts)
	assert.Equal(t, int64(0), report.TotalEngagement)
}

func TestAnalyticsPropagatesStorageErrors(t *testing.T) {
	store := repotest.NewStore()
	store.Err = errors.New("db down")

	_, err := NewAnalyticsService(store).Analytics(context.Background())
	assert.ErrorIs(t, err, store.Err)
}
