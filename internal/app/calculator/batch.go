package calculator

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/zaibaitech/asrar-sub001/internal/domain"
)

// BatchResult is the outcome of one entry of a batch.
type BatchResult struct {
	Index   int                    `json:"index"`
	Text    string                 `json:"text"`
	Profile *domain.NumericProfile `json:"profile,omitempty"`
	Error   string                 `json:"error,omitempty"`
}

// ProfileBatch profiles every text under variant with at most
// Config.MaxConcurrent workers. One failing entry never fails the batch;
// results keep the input order. A cancelled ctx stops unstarted entries.
func (c *Calculator) ProfileBatch(ctx context.Context, texts []string, variant string) []BatchResult {
	results := make([]BatchResult, len(texts))
	sem := make(chan struct{}, c.cfg.MaxConcurrent) // concurrency semaphore
	var wg sync.WaitGroup

	for i, text := range texts {
		results[i] = BatchResult{Index: i, Text: text}
		if err := ctx.Err(); err != nil {
			results[i].Error = err.Error()
			continue
		}

		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			results[i].Error = ctx.Err().Error()
			continue
		}

		wg.Add(1)
		go func(i int, text string) {
			defer wg.Done()
			defer func() { <-sem }()

			p, err := c.ComputeNumericProfile(ctx, text, variant)
			if err != nil {
				results[i].Error = err.Error()
				return
			}
			results[i].Profile = &p
		}(i, text)
	}
	wg.Wait()

	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
		}
	}
	c.logger.Debug("batch profiled",
		zap.Int("entries", len(texts)), zap.Int("failed", failed), zap.String("variant", variant))
	return results
}
