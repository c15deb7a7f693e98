package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/maheshrc27/content-planner/internal/models"
	"github.com/maheshrc27/content-planner/internal/repository/repotest"
	"github.com/maheshrc27/content-planner/internal/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPostService() (PostService, *repotest.Store) {
	store := repotest.NewStore()
	return NewPostService(store, NewPostNormalizer(time.UTC)), store
}

func validPayload() transfer.Payload {
	return transfer.Payload{
		"title":    "A",
		"content":  "x",
		"platform": "twitter",
	}
}

func requireNotFound(t *testing.T, err error, id int64) {
	t.Helper()
	var nf *NotFoundError
	require.True(t, errors.As(err, &nf), "expected *NotFoundError, got %v", err)
	assert.Equal(t, id, nf.ID)
}

func TestCreateAppliesDefaults(t *testing.T) {
	svc, _ := newTestPostService()

	payload := validPayload()
	payload["engagement_score"] = ""
	post, err := svc.Create(context.Background(), payload)
	require.NoError(t, err)

	assert.NotZero(t, post.ID)
	assert.False(t, post.CreatedAt.IsZero())
	assert.Equal(t, models.PostStatusDraft, post.Status)
	assert.Equal(t, int64(0), post.EngagementScore)
	assert.Nil(t, post.ScheduledTime)
	assert.Nil(t, post.ImageURL)
}

func TestCreateWhitespaceScheduledTimeBecomesNull(t *testing.T) {
	svc, _ := newTestPostService()

	payload := validPayload()
	payload["scheduled_time"] = "   "
	post, err := svc.Create(context.Background(), payload)
	require.NoError(t, err)
	assert.Nil(t, post.ScheduledTime)
}

func TestCreateParsesDayFirstScheduledTime(t *testing.T) {
	svc, _ := newTestPostService()

	payload := validPayload()
	payload["scheduled_time"] = "01-12-2023 10:00"
	payload["status"] = "scheduled"
	post, err := svc.Create(context.Background(), payload)
	require.NoError(t, err)

	require.NotNil(t, post.ScheduledTime)
	assert.True(t, time.Date(2023, time.December, 1, 10, 0, 0, 0, time.UTC).Equal(*post.ScheduledTime))

	got, err := svc.Get(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, post, got)
}

func TestCreateIgnoresGeneratedFields(t *testing.T) {
	svc, _ := newTestPostService()

	payload := validPayload()
	payload["id"] = float64(500)
	payload["created_at"] = "1999-01-01T00:00:00Z"

	first, err := svc.Create(context.Background(), payload)
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), payload)
	require.NoError(t, err)

	assert.NotEqual(t, int64(500), first.ID)
	assert.NotEqual(t, first.ID, second.ID)
	assert.NotEqual(t, 1999, first.CreatedAt.Year())
}

func TestCreateMissingTitleIsRejected(t *testing.T) {
	svc, store := newTestPostService()

	payload := validPayload()
	delete(payload, "title")
	_, err := svc.Create(context.Background(), payload)

	verr := requireValidationError(t, err, "title")
	assert.Equal(t, []string{"required"}, verr.Fields["title"])
	assert.Equal(t, 0, store.Len())
}

func TestCreateRejectsBlankText(t *testing.T) {
	svc, store := newTestPostService()

	_, err := svc.Create(context.Background(), transfer.Payload{
		"title":    "   ",
		"content":  "\t\n",
		"platform": "twitter",
	})

	verr := requireValidationError(t, err, "title", "content")
	assert.Equal(t, []string{"required"}, verr.Fields["title"])
	assert.Equal(t, []string{"required"}, verr.Fields["content"])
	assert.Equal(t, 0, store.Len())
}

func TestCreateTrimsText(t *testing.T) {
	svc, _ := newTestPostService()

	post, err := svc.Create(context.Background(), transfer.Payload{
		"title":    "  Launch day ",
		"content":  "\nWe are live\n",
		"platform": " twitter ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Launch day", post.Title)
	assert.Equal(t, "We are live", post.Content)
	assert.Equal(t, "twitter", post.Platform)
}

func TestCreateReportsEveryFailingField(t *testing.T) {
	svc, store := newTestPostService()

	_, err := svc.Create(context.Background(), transfer.Payload{
		"content":          "x",
		"platform":         "myspace",
		"scheduled_time":   "next tuesday",
		"engagement_score": "1e3",
		"status":           42.0,
	})

	verr := requireValidationError(t, err, "title", "platform", "scheduled_time", "engagement_score", "status")
	assert.Equal(t, []string{"required"}, verr.Fields["title"])
	assert.Equal(t, []string{"not a valid string"}, verr.Fields["status"])
	assert.Len(t, verr.Fields["scheduled_time"], 1)
	assert.Equal(t, 0, store.Len())
}

func TestPatchReportsEveryFailingField(t *testing.T) {
	svc, _ := newTestPostService()
	ctx := context.Background()

	created, err := svc.Create(ctx, validPayload())
	require.NoError(t, err)

	_, err = svc.Patch(ctx, created.ID, transfer.Payload{
		"title":          "",
		"scheduled_time": "soon",
	})
	requireValidationError(t, err, "title", "scheduled_time")

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", got.Title)
}

func TestCreateFieldValidation(t *testing.T) {
	svc, store := newTestPostService()
	long := make([]byte, 201)
	for i := range long {
		long[i] = 'a'
	}

	tests := []struct {
		name  string
		key   string
		value any
		msg   string
	}{
		{"title too long", "title", string(long), "ensure this field has no more than 200 characters"},
		{"unknown platform", "platform", "myspace", "not a recognized value"},
		{"capitalized platform", "platform", "Twitter", "not a recognized value"},
		{"unknown status", "status", "archived", "not a recognized value"},
		{"null status", "status", nil, "required"},
		{"bad url", "image_url", "not a url", "enter a valid URL"},
		{"score overflow", "engagement_score", float64(3_000_000_000), "ensure this value is less than or equal to 2147483647"},
		{"empty content", "content", "", "required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := validPayload()
			payload[tt.key] = tt.value
			_, err := svc.Create(context.Background(), payload)
			verr := requireValidationError(t, err, tt.key)
			assert.Contains(t, verr.Fields[tt.key], tt.msg)
		})
	}
	assert.Equal(t, 0, store.Len())
}

func TestListOrdersNewestFirstAndSearches(t *testing.T) {
	svc, _ := newTestPostService()
	ctx := context.Background()

	for _, p := range []transfer.Payload{
		{"title": "Spring sale", "content": "Everything 20% off", "platform": "instagram"},
		{"title": "Hiring", "content": "We are hiring engineers", "platform": "linkedin"},
		{"title": "SALE ends", "content": "last day", "platform": "twitter", "status": "published"},
	} {
		_, err := svc.Create(ctx, p)
		require.NoError(t, err)
	}

	all, err := svc.List(ctx, transfer.PostFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "SALE ends", all[0].Title)
	assert.Equal(t, "Spring sale", all[2].Title)

	found, err := svc.List(ctx, transfer.PostFilter{Search: "sale"})
	require.NoError(t, err)
	assert.Len(t, found, 2)

	found, err = svc.List(ctx, transfer.PostFilter{Search: "ENGINEERS"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Hiring", found[0].Title)

	found, err = svc.List(ctx, transfer.PostFilter{Status: "published"})
	require.NoError(t, err)
	assert.Len(t, found, 1)

	found, err = svc.List(ctx, transfer.PostFilter{Search: "nothing matches"})
	require.NoError(t, err)
	assert.NotNil(t, found)
	assert.Empty(t, found)
}

func TestUpdateReplacesAllFields(t *testing.T) {
	svc, _ := newTestPostService()
	ctx := context.Background()

	payload := validPayload()
	payload["engagement_score"] = float64(10)
	payload["image_url"] = "https://example.com/a.png"
	payload["scheduled_time"] = "2024-05-01 09:30"
	created, err := svc.Create(ctx, payload)
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, transfer.Payload{
		"title":    "B",
		"content":  "y",
		"platform": "facebook",
		"status":   "published",
	})
	require.NoError(t, err)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, got)
	assert.Equal(t, "B", got.Title)
	assert.Equal(t, "facebook", got.Platform)
	assert.Equal(t, "published", got.Status)
	assert.Equal(t, int64(0), got.EngagementScore)
	assert.Nil(t, got.ImageURL)
	assert.Nil(t, got.ScheduledTime)
	assert.Equal(t, created.CreatedAt, got.CreatedAt)
	assert.Equal(t, created.ID, got.ID)
}

func TestUpdateRequiresFullRecord(t *testing.T) {
	svc, _ := newTestPostService()
	ctx := context.Background()

	created, err := svc.Create(ctx, validPayload())
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.ID, transfer.Payload{"title": "only title"})
	requireValidationError(t, err, "content", "platform")

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", got.Title)
}

func TestPatchKeepsUnspecifiedFields(t *testing.T) {
	svc, _ := newTestPostService()
	ctx := context.Background()

	payload := validPayload()
	payload["engagement_score"] = "25"
	payload["image_url"] = "https://example.com/a.png"
	created, err := svc.Create(ctx, payload)
	require.NoError(t, err)

	patched, err := svc.Patch(ctx, created.ID, transfer.Payload{"status": "scheduled", "scheduled_time": "02/01/2024 08:15"})
	require.NoError(t, err)

	assert.Equal(t, "A", patched.Title)
	assert.Equal(t, int64(25), patched.EngagementScore)
	require.NotNil(t, patched.ImageURL)
	assert.Equal(t, "https://example.com/a.png", *patched.ImageURL)
	assert.Equal(t, "scheduled", patched.Status)
	require.NotNil(t, patched.ScheduledTime)
	assert.True(t, time.Date(2024, time.January, 2, 8, 15, 0, 0, time.UTC).Equal(*patched.ScheduledTime))

	patched, err = svc.Patch(ctx, created.ID, transfer.Payload{"engagement_score": nil, "scheduled_time": " "})
	require.NoError(t, err)
	assert.Equal(t, int64(0), patched.EngagementScore)
	assert.Nil(t, patched.ScheduledTime)

	_, err = svc.Patch(ctx, created.ID, transfer.Payload{"title": ""})
	requireValidationError(t, err, "title")
}

func TestUpdateAndPatchUnknownID(t *testing.T) {
	svc, _ := newTestPostService()

	_, err := svc.Update(context.Background(), 42, validPayload())
	requireNotFound(t, err, 42)

	_, err = svc.Patch(context.Background(), 42, transfer.Payload{"title": "x"})
	requireNotFound(t, err, 42)
}

func TestDeleteThenGetAndDeleteAgain(t *testing.T) {
	svc, _ := newTestPostService()
	ctx := context.Background()

	created, err := svc.Create(ctx, validPayload())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Get(ctx, created.ID)
	requireNotFound(t, err, created.ID)

	err = svc.Delete(ctx, created.ID)
	requireNotFound(t, err, created.ID)
}

func TestStorageFailureIsNotClassified(t *testing.T) {
	svc, store := newTestPostService()
	store.Err = errors.New("connection refused")

	_, err := svc.Get(context.Background(), 1)
	require.Error(t, err)

	var nf *NotFoundError
	var verr *ValidationError
	assert.False(t, errors.As(err, &nf))
	assert.False(t, errors.As(err, &verr))
	assert.ErrorIs(t, err, store.Err)
}
