package job

import (
	"context"
	"log/slog"
	"time"

	"github.com/maheshrc27/content-planner/internal/service"
	"github.com/robfig/cron"
)

// QUOTE_WARMUP_SPEC fires a few seconds after UTC midnight, when the
// previous day's cached quote has expired.
const QUOTE_WARMUP_SPEC = "5 0 0 * * *"

type QuoteWarmupJob struct {
	qs      service.QuoteService
	timeout time.Duration
}

func NewQuoteWarmupJob(qs service.QuoteService, timeout time.Duration) *QuoteWarmupJob {
	return &QuoteWarmupJob{
		qs:      qs,
		timeout: timeout,
	}
}

func (j *QuoteWarmupJob) WarmQuote() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	quote := j.qs.RandomQuote(ctx)
	slog.Info("quote of the day ready", "author", quote.Author)
}

// Schedule registers the warmup on a UTC cron and starts it. Callers stop
// the returned cron on shutdown.
func (j *QuoteWarmupJob) Schedule() (*cron.Cron, error) {
	c := cron.NewWithLocation(time.UTC)
	if err := c.AddFunc(QUOTE_WARMUP_SPEC, j.WarmQuote); err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}
