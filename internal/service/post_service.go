package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/maheshrc27/content-planner/internal/models"
	"github.com/maheshrc27/content-planner/internal/repository"
	"github.com/maheshrc27/content-planner/internal/transfer"
)

type PostService interface {
	Create(ctx context.Context, payload transfer.Payload) (*models.Post, error)
	List(ctx context.Context, filter transfer.PostFilter) ([]*models.Post, error)
	Get(ctx context.Context, id int64) (*models.Post, error)
	Update(ctx context.Context, id int64, payload transfer.Payload) (*models.Post, error)
	Patch(ctx context.Context, id int64, payload transfer.Payload) (*models.Post, error)
	Delete(ctx context.Context, id int64) error
}

type postService struct {
	pr         repository.PostRepository
	normalizer *PostNormalizer
	validator  *PostValidator
}

func NewPostService(pr repository.PostRepository, normalizer *PostNormalizer) PostService {
	return &postService{
		pr:         pr,
		normalizer: normalizer,
		validator:  NewPostValidator(),
	}
}

func (s *postService) Create(ctx context.Context, payload transfer.Payload) (*models.Post, error) {
	post := &models.Post{}
	if err := s.prepare(post, payload, false); err != nil {
		return nil, err
	}

	if err := s.pr.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("error creating post: %w", err)
	}

	return post, nil
}

func (s *postService) List(ctx context.Context, filter transfer.PostFilter) ([]*models.Post, error) {
	posts, err := s.pr.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing posts: %w", err)
	}
	return posts, nil
}

func (s *postService) Get(ctx context.Context, id int64) (*models.Post, error) {
	post, err := s.pr.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting post: %w", err)
	}
	if post == nil {
		return nil, &NotFoundError{ID: id}
	}
	return post, nil
}

// Update replaces every writable field; omitted optional fields go back to
// their defaults.
func (s *postService) Update(ctx context.Context, id int64, payload transfer.Payload) (*models.Post, error) {
	return s.update(ctx, id, payload, false)
}

// Patch changes only the fields present in payload.
func (s *postService) Patch(ctx context.Context, id int64, payload transfer.Payload) (*models.Post, error) {
	return s.update(ctx, id, payload, true)
}

func (s *postService) update(ctx context.Context, id int64, payload transfer.Payload, partial bool) (*models.Post, error) {
	post, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.prepare(post, payload, partial); err != nil {
		return nil, err
	}

	found, err := s.pr.Update(ctx, post)
	if err != nil {
		return nil, fmt.Errorf("error updating post: %w", err)
	}
	if !found {
		return nil, &NotFoundError{ID: id}
	}

	return post, nil
}

func (s *postService) Delete(ctx context.Context, id int64) error {
	removed, err := s.pr.Remove(ctx, id)
	if err != nil {
		return fmt.Errorf("error removing post: %w", err)
	}
	if !removed {
		return &NotFoundError{ID: id}
	}
	return nil
}

// prepare normalizes payload, applies it onto post and validates the
// result. Fields rejected by the normalizer or by their JSON type are left
// out of the write, so every failing field is reported in one error.
func (s *postService) prepare(post *models.Post, payload transfer.Payload, partial bool) error {
	verr := &ValidationError{}

	normalized, err := s.normalizer.Normalize(payload)
	if err != nil {
		if !verr.absorb(err) {
			return err
		}
		if normalized, err = s.normalizer.Normalize(withoutFields(payload, verr)); err != nil {
			return err
		}
	}

	in, err := DecodePostInput(normalized)
	if err != nil {
		if !verr.absorb(err) {
			return err
		}
		if in, err = DecodePostInput(withoutFields(normalized, verr)); err != nil {
			return err
		}
	}

	applyInput(post, in, partial)

	if err := s.validator.Validate(post); err != nil {
		if !verr.absorb(err) {
			return err
		}
	}

	if err := verr.orNil(); err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func withoutFields(p transfer.Payload, verr *ValidationError) transfer.Payload {
	out := make(transfer.Payload, len(p))
	for k, v := range p {
		if !verr.Has(k) {
			out[k] = v
		}
	}
	return out
}

// applyInput writes in onto post. A full write starts from a fresh record
// that keeps only the generated fields.
func applyInput(post *models.Post, in *transfer.PostInput, partial bool) {
	if !partial {
		*post = models.Post{
			ID:        post.ID,
			CreatedAt: post.CreatedAt,
			Status:    models.PostStatusDraft,
		}
	}

	if in.Title.Present {
		post.Title = in.Title.Value
	}
	if in.Content.Present {
		post.Content = in.Content.Value
	}
	if in.Platform.Present {
		post.Platform = in.Platform.Value
	}
	if in.Status.Present {
		post.Status = in.Status.Value
	}
	if in.ScheduledTime.Present {
		post.ScheduledTime = nil
		if in.ScheduledTime.Set() {
			t := in.ScheduledTime.Value
			post.ScheduledTime = &t
		}
	}
	if in.EngagementScore.Present {
		post.EngagementScore = in.EngagementScore.Value
	}
	if in.ImageURL.Present {
		post.ImageURL = nil
		if in.ImageURL.Set() && in.ImageURL.Value != "" {
			u := in.ImageURL.Value
			post.ImageURL = &u
		}
	}
}
