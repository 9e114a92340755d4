package impact

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mkrv/govimpact/internal/model"
	"github.com/mkrv/govimpact/internal/pricing"
)

// DefaultHorizon is how far past the post the reaction window extends.
const DefaultHorizon = 5 * 24 * time.Hour

// Calculator derives price-impact records for governance posts. It holds no
// per-run state; the series lookup is owned by the caller and must not be
// mutated while a batch is running.
type Calculator struct {
	horizon   time.Duration
	tolerance time.Duration
	logger    zerolog.Logger
}

// NewCalculator creates a Calculator. Zero horizon or tolerance fall back to
// the defaults (5 days, 2 days).
func NewCalculator(horizon, tolerance time.Duration) *Calculator {
	if horizon == 0 {
		horizon = DefaultHorizon
	}
	if tolerance == 0 {
		tolerance = pricing.DefaultTolerance
	}
	return &Calculator{
		horizon:   horizon,
		tolerance: tolerance,
		logger:    log.With().Str("component", "impact_calculator").Logger(),
	}
}

// Compute derives the impact record for a single post. The returned reason is
// SkipNone exactly when a record was produced. Compute is a pure function of
// the post and the lookup, so re-running it yields an identical record.
func (c *Calculator) Compute(post model.Post, lookup map[string]pricing.Series) (*model.ImpactRecord, model.SkipReason) {
	series, ok := lookup[post.Protocol]
	if !ok {
		return nil, model.SkipMissingSeries
	}

	anchor, ok := pricing.Nearest(series, post.Timestamp, c.tolerance)
	if !ok {
		return nil, model.SkipNoAnchorMatch
	}

	horizonEnd := post.Timestamp.Add(c.horizon)
	window := pricing.Window(series, post.Timestamp, horizonEnd)
	if len(window) == 0 {
		return nil, model.SkipEmptyWindow
	}

	// A zero anchor would turn every percentage below into Inf/NaN.
	if anchor.Price == 0 {
		return nil, model.SkipZeroAnchor
	}

	rec := &model.ImpactRecord{
		Post:        post,
		AnchorPrice: anchor.Price,
	}

	if horizonPt, ok := pricing.Nearest(series, horizonEnd, c.tolerance); ok {
		price := horizonPt.Price
		pct := (price - anchor.Price) / anchor.Price * 100
		rec.HorizonPrice = &price
		rec.PercentIncrease = &pct
	}

	maxPt, minPt := extrema(window)
	rec.WindowMaxPrice = maxPt.Price
	rec.WindowMaxTime = maxPt.Timestamp
	rec.WindowMinPrice = minPt.Price
	rec.WindowMinTime = minPt.Timestamp
	rec.DaysToMax = maxPt.Timestamp.Sub(post.Timestamp).Seconds() / 86400
	rec.DaysToMin = minPt.Timestamp.Sub(post.Timestamp).Seconds() / 86400
	rec.PercentGain = (maxPt.Price - anchor.Price) / anchor.Price * 100
	rec.PercentLoss = (minPt.Price - anchor.Price) / anchor.Price * 100

	return rec, model.SkipNone
}

// extrema returns the window max and min; the first sample in time order wins
// a tie on price.
func extrema(window pricing.Series) (maxPt, minPt model.PricePoint) {
	maxPt, minPt = window[0], window[0]
	for _, p := range window[1:] {
		if p.Price > maxPt.Price {
			maxPt = p
		}
		if p.Price < minPt.Price {
			minPt = p
		}
	}
	return maxPt, minPt
}

// BatchResult aggregates one calculator run over a set of posts.
type BatchResult struct {
	// Records holds the produced impact records in input order.
	Records []model.ImpactRecord
	// Skips counts the posts excluded per reason.
	Skips map[model.SkipReason]int
	// Total is the number of posts the batch was asked to process.
	Total int
}

// Processed returns how many posts yielded a record.
func (r BatchResult) Processed() int { return len(r.Records) }

// ComputeBatch runs Compute over all posts using a pool of workers. Posts are
// independent of one another and the lookup is read-only, so no locking is
// needed beyond the result slots. Cancelling the context stops scheduling
// further posts; work already handed out still finishes.
func (c *Calculator) ComputeBatch(ctx context.Context, posts []model.Post, lookup map[string]pricing.Series, workers int) BatchResult {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	type outcome struct {
		rec    *model.ImpactRecord
		reason model.SkipReason
		done   bool
	}
	outcomes := make([]outcome, len(posts))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				rec, reason := c.Compute(posts[i], lookup)
				outcomes[i] = outcome{rec: rec, reason: reason, done: true}
			}
		}()
	}

schedule:
	for i := range posts {
		select {
		case <-ctx.Done():
			break schedule
		default:
		}
		select {
		case <-ctx.Done():
			break schedule
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	result := BatchResult{
		Skips: make(map[model.SkipReason]int),
		Total: len(posts),
	}
	for i, o := range outcomes {
		if !o.done {
			continue // cancelled before this post was scheduled
		}
		if o.reason != model.SkipNone {
			result.Skips[o.reason]++
			c.logger.Debug().
				Str("protocol", posts[i].Protocol).
				Str("post_id", posts[i].PostID).
				Str("reason", string(o.reason)).
				Msg("Post skipped")
			continue
		}
		result.Records = append(result.Records, *o.rec)
	}

	c.logger.Info().
		Int("total", result.Total).
		Int("processed", result.Processed()).
		Int("skipped", result.Total-result.Processed()).
		Msg("Impact batch complete")

	return result
}
