package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"time"

	"github.com/maheshrc27/content-planner/internal/cache"
	"github.com/maheshrc27/content-planner/internal/metrics"
	"github.com/maheshrc27/content-planner/internal/transfer"
)

const (
	QUOTABLE_URL  = "https://api.quotable.io/random"
	ZENQUOTES_URL = "https://zenquotes.io/api/random"
)

var fallbackQuotes = []transfer.Quote{
	{Content: "The best time to plant a tree was 20 years ago. The second best time is now.", Author: "Chinese Proverb"},
	{Content: "Your limitation, it's only your imagination.", Author: "Unknown"},
	{Content: "Great things never come from comfort zones.", Author: "Unknown"},
	{Content: "Success doesn't just find you. You have to go out and get it.", Author: "Unknown"},
	{Content: "Dream it. Wish it. Do it.", Author: "Unknown"},
}

type QuoteService interface {
	// RandomQuote never fails: when every provider is down it answers from
	// a fixed set.
	RandomQuote(ctx context.Context) *transfer.Quote
}

// QuoteProvider fetches one quote from a remote API.
type QuoteProvider struct {
	Name  string
	Fetch func(ctx context.Context, client *http.Client) (*transfer.Quote, error)
}

type quoteService struct {
	client    *http.Client
	providers []QuoteProvider
	cache     cache.QuoteCache
	now       func() time.Time
}

// NewQuoteService tries providers in order. qc may be nil to disable the
// quote-of-the-day cache.
func NewQuoteService(client *http.Client, qc cache.QuoteCache, providers ...QuoteProvider) QuoteService {
	if len(providers) == 0 {
		providers = []QuoteProvider{QuotableProvider(QUOTABLE_URL), ZenQuotesProvider(ZENQUOTES_URL)}
	}
	return &quoteService{
		client:    client,
		providers: providers,
		cache:     qc,
		now:       time.Now,
	}
}

func (s *quoteService) RandomQuote(ctx context.Context) *transfer.Quote {
	day := s.now().UTC().Format("2006-01-02")

	if s.cache != nil {
		quote, err := s.cache.Get(ctx, day)
		if err != nil {
			slog.Warn("quote cache read failed", "error", err)
		} else if quote != nil {
			metrics.LookupResults.WithLabelValues("quote", "cache", "cached").Inc()
			return quote
		}
	}

	for _, p := range s.providers {
		quote, err := p.Fetch(ctx, s.client)
		if err != nil {
			metrics.LookupResults.WithLabelValues("quote", p.Name, "error").Inc()
			slog.Info("quote provider failed", "provider", p.Name, "error", err)
			continue
		}
		metrics.LookupResults.WithLabelValues("quote", p.Name, "ok").Inc()
		s.remember(ctx, day, quote)
		return quote
	}

	metrics.LookupResults.WithLabelValues("quote", "static", "fallback").Inc()
	quote := fallbackQuotes[rand.Intn(len(fallbackQuotes))]
	return &quote
}

func (s *quoteService) remember(ctx context.Context, day string, quote *transfer.Quote) {
	if s.cache == nil {
		return
	}
	now := s.now().UTC()
	midnight := now.Truncate(24 * time.Hour).Add(24 * time.Hour)
	if err := s.cache.Set(ctx, day, quote, midnight.Sub(now)); err != nil {
		slog.Warn("quote cache write failed", "error", err)
	}
}

func QuotableProvider(url string) QuoteProvider {
	return QuoteProvider{
		Name: "quotable",
		Fetch: func(ctx context.Context, client *http.Client) (*transfer.Quote, error) {
			var result transfer.QuotableResponse
			if err := getJSON(ctx, client, url, &result); err != nil {
				return nil, err
			}
			if result.Content == "" {
				return nil, errors.New("quotable returned an empty quote")
			}
			return &transfer.Quote{Content: result.Content, Author: authorOrUnknown(result.Author)}, nil
		},
	}
}

func ZenQuotesProvider(url string) QuoteProvider {
	return QuoteProvider{
		Name: "zenquotes",
		Fetch: func(ctx context.Context, client *http.Client) (*transfer.Quote, error) {
			var result []transfer.ZenQuote
			if err := getJSON(ctx, client, url, &result); err != nil {
				return nil, err
			}
			if len(result) == 0 || result[0].Q == "" {
				return nil, errors.New("zenquotes returned no quotes")
			}
			return &transfer.Quote{Content: result[0].Q, Author: authorOrUnknown(result[0].A)}, nil
		},
	}
}

func authorOrUnknown(author string) string {
	if author == "" {
		return "Unknown"
	}
	return author
}

func getJSON(ctx context.Context, client *http.Client, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, req.URL.Host)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response from %s: %w", req.URL.Host, err)
	}
	return nil
}
