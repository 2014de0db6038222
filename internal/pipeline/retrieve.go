package pipeline

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/sells-group/leadscout/internal/config"
	"github.com/sells-group/leadscout/internal/model"
	"github.com/sells-group/leadscout/internal/resilience"
	"github.com/sells-group/leadscout/pkg/jina"
)

// Retrieve fans the query set out to the search backend, one goroutine
// per query behind a shared rate limiter. Individual query failures
// (backend errors, timeouts, empty result sets) are logged and
// swallowed; the evidence pool carries whatever the surviving queries
// returned. Only when every query comes back empty does the phase
// fail, with ErrRetrievalExhausted.
func Retrieve(ctx context.Context, queries []model.SearchQuery, search jina.Client, cfg config.RetrievalConfig) ([]model.RetrievalResult, error) {
	limiter := rate.NewLimiter(rate.Limit(cfg.QueriesPerSec), 1)
	queryTimeout := time.Duration(cfg.QueryTimeoutSecs) * time.Second

	retryCfg := resilience.RetryConfig{
		MaxAttempts:    cfg.Retries + 1,
		InitialBackoff: 500 * time.Millisecond,
		ShouldRetry:    shouldRetrySearch,
		OnRetry:        resilience.RetryLogger("jina", "search"),
	}

	var (
		mu        sync.Mutex
		pool      []model.RetrievalResult
		succeeded int
	)

	g, gCtx := errgroup.WithContext(ctx)
	for _, q := range queries {
		g.Go(func() error {
			if err := limiter.Wait(gCtx); err != nil {
				return nil
			}

			callCtx, cancel := context.WithTimeout(gCtx, queryTimeout)
			defer cancel()

			resp, err := resilience.DoVal(callCtx, retryCfg, func(ctx context.Context) (*jina.SearchResponse, error) {
				return search.Search(ctx, q.Query, jina.WithCount(cfg.ResultsPerQuery))
			})
			if err != nil {
				zap.L().Warn("search query failed",
					zap.String("intent", string(q.Intent)),
					zap.Error(err))
				return nil
			}
			if len(resp.Data) == 0 {
				zap.L().Warn("search query returned no results",
					zap.String("intent", string(q.Intent)))
				return nil
			}

			results := make([]model.RetrievalResult, 0, len(resp.Data))
			for _, r := range resp.Data {
				if r.URL == "" {
					continue
				}
				snippet := r.Content
				if snippet == "" {
					snippet = r.Description
				}
				results = append(results, model.RetrievalResult{
					Title:   r.Title,
					Snippet: snippet,
					URL:     r.URL,
					Intent:  q.Intent,
				})
			}

			mu.Lock()
			if len(results) > 0 {
				succeeded++
				pool = append(pool, results...)
			}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "retrieval cancelled")
	}
	if succeeded == 0 {
		return nil, ErrRetrievalExhausted
	}

	zap.L().Info("retrieval complete",
		zap.Int("queries", len(queries)),
		zap.Int("succeeded", succeeded),
		zap.Int("results", len(pool)))
	return pool, nil
}

func shouldRetrySearch(err error) bool {
	var apiErr *jina.APIError
	if errors.As(err, &apiErr) {
		return resilience.IsTransientHTTPStatus(apiErr.StatusCode)
	}
	return resilience.IsTransient(err)
}
