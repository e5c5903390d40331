package poller

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jmorales/seatscout/internal/listings"
	"github.com/jmorales/seatscout/internal/model"
	"github.com/jmorales/seatscout/internal/pricing"
)

// TrackSource lists the games to re-price.
type TrackSource interface {
	List(ctx context.Context) ([]model.TrackedGame, error)
}

// PriceSource fetches a price comparison for one game.
type PriceSource interface {
	GamePrices(ctx context.Context, gameID string, opts pricing.Options) (*listings.Result, error)
}

// Recorder receives price points for persistence.
type Recorder interface {
	Record(p model.PricePoint)
}

// Broadcaster receives updates for live subscribers.
type Broadcaster interface {
	Broadcast(u model.PriceUpdate)
}

// Config holds poller configuration.
type Config struct {
	Interval    time.Duration // Poll interval (default: 10m)
	Concurrency int           // Max concurrent games in flight (default: 8)
	Timeout     time.Duration // Per-game fetch timeout (default: 10s)
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Interval:    10 * time.Minute,
		Concurrency: 8,
		Timeout:     10 * time.Second,
	}
}

// Poller re-prices tracked games on an interval.
type Poller struct {
	cfg     Config
	tracks  TrackSource
	prices  PriceSource
	history Recorder    // may be nil
	stream  Broadcaster // may be nil
	logger  *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a poller. History and stream sinks are optional.
func New(cfg Config, tracks TrackSource, prices PriceSource, history Recorder, stream Broadcaster, logger *slog.Logger) *Poller {
	if logger == nil {
		logger = slog.Default()
	}
	def := DefaultConfig()
	if cfg.Interval <= 0 {
		cfg.Interval = def.Interval
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = def.Concurrency
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	return &Poller{
		cfg:     cfg,
		tracks:  tracks,
		prices:  prices,
		history: history,
		stream:  stream,
		logger:  logger,
	}
}

// Start begins the polling loop.
func (p *Poller) Start(ctx context.Context) error {
	p.ctx, p.cancel = context.WithCancel(ctx)

	p.wg.Add(1)
	go p.run()

	p.logger.Info("price poller started",
		"interval", p.cfg.Interval,
		"concurrency", p.cfg.Concurrency,
	)
	return nil
}

// Stop gracefully shuts down the poller.
func (p *Poller) Stop(ctx context.Context) error {
	if p.cancel != nil {
		p.cancel()
	}

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.logger.Info("price poller stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// run is the main polling loop.
func (p *Poller) run() {
	defer p.wg.Done()

	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	// Poll immediately on start.
	p.pollAll()

	for {
		select {
		case <-p.ctx.Done():
			return
		case <-ticker.C:
			p.pollAll()
		}
	}
}

// pollAll re-prices every tracked game concurrently. Games tracked more
// than once are fetched once, with the loosest target deciding alerts.
func (p *Poller) pollAll() {
	start := time.Now()

	tracked, err := p.tracks.List(p.ctx)
	if err != nil {
		p.logger.Warn("failed to list tracked games", "error", err)
		return
	}
	if len(tracked) == 0 {
		p.logger.Debug("no tracked games to poll")
		return
	}

	targets := make(map[string]int64, len(tracked))
	for _, tg := range tracked {
		if cur, ok := targets[tg.GameID]; !ok || tg.TargetCents > cur {
			targets[tg.GameID] = tg.TargetCents
		}
	}

	sem := make(chan struct{}, p.cfg.Concurrency)
	var wg sync.WaitGroup
	var fetched, errors atomic.Int64

	for gameID, target := range targets {
		wg.Add(1)
		go func(gameID string, target int64) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-p.ctx.Done():
				return
			}

			if err := p.pollGame(gameID, target); err != nil {
				p.logger.Warn("failed to poll game",
					"game_id", gameID,
					"err", err,
				)
				errors.Add(1)
				return
			}
			fetched.Add(1)
		}(gameID, target)
	}

	wg.Wait()

	p.logger.Info("poll cycle complete",
		"games", len(targets),
		"fetched", fetched.Load(),
		"errors", errors.Load(),
		"duration", time.Since(start),
	)
}

// pollGame fetches one game and fans the per-vendor cheapest prices out
// to the history and stream sinks.
func (p *Poller) pollGame(gameID string, targetCents int64) error {
	ctx, cancel := context.WithTimeout(p.ctx, p.cfg.Timeout)
	defer cancel()

	res, err := p.prices.GamePrices(ctx, gameID, pricing.Options{IncludeFees: true})
	if err != nil {
		return err
	}
	if res.Source == listings.SourceDemo {
		// Fixture prices would pollute history and alerts.
		p.logger.Debug("skipping demo-priced game", "game_id", gameID)
		return nil
	}

	for vendorID, cheap := range cheapestByVendor(res.Groups) {
		point := model.PricePoint{
			GameID:     gameID,
			VendorID:   vendorID,
			CheapCents: cheap,
			RecordedAt: res.FetchAt,
		}
		if p.history != nil {
			p.history.Record(point)
		}
		if p.stream != nil {
			p.stream.Broadcast(model.PriceUpdate{
				GameID:     gameID,
				VendorID:   vendorID,
				CheapCents: cheap,
				RecordedAt: res.FetchAt,
				Alert:      targetCents > 0 && cheap <= targetCents,
			})
		}
	}
	return nil
}

// cheapestByVendor reduces category groups to each vendor's lowest
// display price.
func cheapestByVendor(groups []model.CategoryGroup) map[string]int64 {
	out := make(map[string]int64)
	for _, g := range groups {
		for _, l := range g.Listings {
			if cur, ok := out[l.VendorID]; !ok || l.DisplayCents < cur {
				out[l.VendorID] = l.DisplayCents
			}
		}
	}
	return out
}
