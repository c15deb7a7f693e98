package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/maheshrc27/content-planner/internal/metrics"
	"github.com/maheshrc27/content-planner/internal/transfer"
)

const (
	UNSPLASH_RANDOM_URL = "https://api.unsplash.com/photos/random"
	defaultImageQuery   = "social media"
)

var ErrImageLookupNotConfigured = errors.New("Unsplash API key not configured")

type ImageService interface {
	FetchImage(ctx context.Context, query string) (*transfer.ImageResult, error)
}

type imageService struct {
	client    *http.Client
	baseURL   string
	accessKey string
	mirror    ImageMirror
}

// NewImageService looks up stock photos on Unsplash. mirror may be nil.
func NewImageService(client *http.Client, baseURL, accessKey string, mirror ImageMirror) ImageService {
	if baseURL == "" {
		baseURL = UNSPLASH_RANDOM_URL
	}
	return &imageService{
		client:    client,
		baseURL:   baseURL,
		accessKey: accessKey,
		mirror:    mirror,
	}
}

func (s *imageService) FetchImage(ctx context.Context, query string) (*transfer.ImageResult, error) {
	if s.accessKey == "" {
		metrics.LookupResults.WithLabelValues("image", "unsplash", "error").Inc()
		return nil, &DependencyError{Service: "unsplash", Err: ErrImageLookupNotConfigured}
	}

	query = strings.TrimSpace(query)
	if query == "" {
		query = defaultImageQuery
	}

	params := url.Values{}
	params.Add("query", query)
	params.Add("client_id", s.accessKey)
	fullURL := fmt.Sprintf("%s?%s", s.baseURL, params.Encode())

	var photo transfer.UnsplashPhoto
	if err := getJSON(ctx, s.client, fullURL, &photo); err != nil {
		metrics.LookupResults.WithLabelValues("image", "unsplash", "error").Inc()
		slog.Error("unsplash lookup failed", "query", query, "error", err)
		return nil, &DependencyError{Service: "unsplash", Err: err}
	}
	if photo.URLs.Regular == "" {
		metrics.LookupResults.WithLabelValues("image", "unsplash", "error").Inc()
		return nil, &DependencyError{Service: "unsplash", Err: errors.New("response has no image url")}
	}
	metrics.LookupResults.WithLabelValues("image", "unsplash", "ok").Inc()

	result := &transfer.ImageResult{URL: photo.URLs.Regular}

	if s.mirror != nil {
		stored, err := s.mirror.Mirror(ctx, photo.URLs.Regular)
		if err != nil {
			metrics.LookupResults.WithLabelValues("image", "r2", "error").Inc()
			slog.Warn("image mirror failed", "url", photo.URLs.Regular, "error", err)
		} else {
			metrics.LookupResults.WithLabelValues("image", "r2", "ok").Inc()
			result.StoredURL = stored
		}
	}

	return result, nil
}
