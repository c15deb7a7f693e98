// Package repotest provides in-memory implementations of the repository
// interfaces for service and handler tests.
package repotest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/maheshrc27/content-planner/internal/models"
	"github.com/maheshrc27/content-planner/internal/repository"
	"github.com/maheshrc27/content-planner/internal/transfer"
)

var (
	_ repository.PostRepository      = (*Store)(nil)
	_ repository.AnalyticsRepository = (*Store)(nil)
)

// Store backs both PostRepository and AnalyticsRepository with one slice.
type Store struct {
	mu     sync.Mutex
	posts  []models.Post
	nextID int64
	now    func() time.Time

	// Err, when set, is returned by every call.
	Err error
}

func NewStore() *Store {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var tick int64
	return &Store{
		nextID: 1,
		now: func() time.Time {
			tick++
			return base.Add(time.Duration(tick) * time.Second)
		},
	}
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.posts)
}

func clone(p models.Post) *models.Post {
	if p.ScheduledTime != nil {
		t := *p.ScheduledTime
		p.ScheduledTime = &t
	}
	if p.ImageURL != nil {
		u := *p.ImageURL
		p.ImageURL = &u
	}
	return &p
}

func (s *Store) Create(ctx context.Context, post *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}

	post.ID = s.nextID
	post.CreatedAt = s.now()
	s.nextID++
	s.posts = append(s.posts, *clone(*post))
	return nil
}

func (s *Store) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	for _, p := range s.posts {
		if p.ID == id {
			return clone(p), nil
		}
	}
	return nil, nil
}

func (s *Store) List(ctx context.Context, filter transfer.PostFilter) ([]*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	terms := strings.Fields(strings.ToLower(filter.Search))
	out := make([]*models.Post, 0, len(s.posts))
	for _, p := range s.posts {
		if filter.Platform != "" && p.Platform != filter.Platform {
			continue
		}
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		if !matchesAll(p, terms) {
			continue
		}
		out = append(out, clone(p))
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func matchesAll(p models.Post, terms []string) bool {
	title := strings.ToLower(p.Title)
	content := strings.ToLower(p.Content)
	for _, term := range terms {
		if !strings.Contains(title, term) && !strings.Contains(content, term) {
			return false
		}
	}
	return true
}

func (s *Store) Update(ctx context.Context, post *models.Post) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return false, s.Err
	}

	for i, p := range s.posts {
		if p.ID == post.ID {
			post.CreatedAt = p.CreatedAt
			s.posts[i] = *clone(*post)
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) Remove(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return false, s.Err
	}

	for i, p := range s.posts {
		if p.ID == id {
			s.posts = append(s.posts[:i], s.posts[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) CountByPlatform(ctx context.Context) (map[string]int64, error) {
	return s.countBy(func(p models.Post) string { return p.Platform })
}

func (s *Store) CountByStatus(ctx context.Context) (map[string]int64, error) {
	return s.countBy(func(p models.Post) string { return p.Status })
}

func (s *Store) countBy(key func(models.Post) string) (map[string]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	counts := make(map[string]int64)
	for _, p := range s.posts {
		counts[key(p)]++
	}
	return counts, nil
}

func (s *Store) AvgEngagementByPlatform(ctx context.Context) (map[string]float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	sums := make(map[string]int64)
	counts := make(map[string]int64)
	for _, p := range s.posts {
		sums[p.Platform] += p.EngagementScore
		counts[p.Platform]++
	}

	avgs := make(map[string]float64, len(sums))
	for platform, sum := range sums {
		avgs[platform] = float64(sum) / float64(counts[platform])
	}
	return avgs, nil
}

func (s *Store) Totals(ctx context.Context) (*transfer.Totals, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	totals := &transfer.Totals{TotalPosts: int64(len(s.posts))}
	for _, p := range s.posts {
		totals.TotalEngagement += p.EngagementScore
	}
	return totals, nil
}
