package listings

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jmorales/seatscout/internal/cache"
	"github.com/jmorales/seatscout/internal/catalog"
	"github.com/jmorales/seatscout/internal/model"
	"github.com/jmorales/seatscout/internal/pricing"
)

// Source marks where a result's listings came from.
const (
	SourceLive    = "live"    // All vendors answered
	SourcePartial = "partial" // At least one vendor answered
	SourceDemo    = "demo"    // Every vendor failed; fixture data
	SourceCache   = "cache"   // Served from the listing cache
)

// Fetcher retrieves one vendor's listings for a game.
type Fetcher interface {
	VendorID() string
	Fetch(ctx context.Context, gameID string) ([]model.Listing, error)
}

// Result is an aggregated price comparison for one game.
type Result struct {
	GameID  string                `json:"game_id"`
	Source  string                `json:"source"`
	Groups  []model.CategoryGroup `json:"groups"`
	FetchAt int64                 `json:"fetch_at"` // µs since epoch
}

// Service aggregates vendor listings with caching and demo fallback.
type Service struct {
	fetchers []Fetcher
	catalog  *catalog.Catalog
	cache    cache.Cache
	cacheTTL time.Duration
	logger   *slog.Logger
	nowMicro func() int64
}

// NewService creates a listings service. A nil cache disables caching.
func NewService(fetchers []Fetcher, cat *catalog.Catalog, c cache.Cache, ttl time.Duration, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		fetchers: fetchers,
		catalog:  cat,
		cache:    c,
		cacheTTL: ttl,
		logger:   logger,
		nowMicro: func() int64 { return time.Now().UnixMicro() },
	}
}

// cachedListings is the payload stored in the listing cache.
type cachedListings struct {
	Source   string          `json:"source"`
	Listings []model.Listing `json:"listings"`
}

// GamePrices returns categorized, filtered, sorted price groups for a game.
// Vendor failures fall back to cached then demo data; only cancellation
// returns an error.
func (s *Service) GamePrices(ctx context.Context, gameID string, opts pricing.Options) (*Result, error) {
	if payload, ok := s.fromCache(ctx, gameID); ok {
		return s.buildResult(ctx, gameID, SourceCache, payload.Listings, opts), nil
	}

	gathered, source, err := s.fetchAll(ctx, gameID)
	if err != nil {
		// Only cancellation escapes the fallback seam.
		return nil, err
	}

	if source == SourceDemo {
		gathered = DemoListings(gameID, s.nowMicro())
	} else {
		s.toCache(ctx, gameID, cachedListings{Source: source, Listings: gathered})
	}

	return s.buildResult(ctx, gameID, source, gathered, opts), nil
}

// fetchAll fans out to every vendor. Results are assembled in fetcher
// order so output never depends on completion order.
func (s *Service) fetchAll(ctx context.Context, gameID string) ([]model.Listing, string, error) {
	if len(s.fetchers) == 0 {
		return nil, SourceDemo, nil
	}

	perVendor := make([][]model.Listing, len(s.fetchers))
	errs := make([]error, len(s.fetchers))

	g, gctx := errgroup.WithContext(ctx)
	for i, f := range s.fetchers {
		i, f := i, f
		g.Go(func() error {
			got, err := f.Fetch(gctx, gameID)
			if err != nil {
				// Vendor failures are recorded, not returned: one broken
				// vendor must not cancel its siblings.
				errs[i] = err
				return nil
			}
			perVendor[i] = got
			return nil
		})
	}
	// Closures always return nil; Wait only surfaces a programming error.
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	var all []model.Listing
	failures := 0
	for i := range s.fetchers {
		if errs[i] != nil {
			failures++
			s.logger.Warn("vendor fetch failed",
				"vendor", s.fetchers[i].VendorID(),
				"game_id", gameID,
				"error", errs[i],
			)
			continue
		}
		all = append(all, perVendor[i]...)
	}

	switch {
	case failures == len(s.fetchers):
		return nil, SourceDemo, nil
	case failures > 0:
		return all, SourcePartial, nil
	default:
		return all, SourceLive, nil
	}
}

// buildResult assigns categories to untagged listings and aggregates.
func (s *Service) buildResult(ctx context.Context, gameID, source string, raw []model.Listing, opts pricing.Options) *Result {
	listings := make([]model.Listing, len(raw))
	copy(listings, raw)
	for i := range listings {
		if listings[i].CategoryID == "" {
			listings[i].CategoryID = catalog.CategoryIDForArea(pricing.Classify(listings[i].Section))
		}
	}

	categories := s.catalog.Categories(ctx)

	return &Result{
		GameID:  gameID,
		Source:  source,
		Groups:  pricing.Aggregate(listings, categories, opts),
		FetchAt: s.nowMicro(),
	}
}

func (s *Service) fromCache(ctx context.Context, gameID string) (cachedListings, bool) {
	var payload cachedListings
	if s.cache == nil {
		return payload, false
	}

	data, err := s.cache.Get(ctx, "listings:"+gameID)
	if err != nil {
		return payload, false
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return payload, false
	}
	return payload, true
}

func (s *Service) toCache(ctx context.Context, gameID string, payload cachedListings) {
	if s.cache == nil {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, "listings:"+gameID, data, s.cacheTTL); err != nil {
		s.logger.Debug("listing cache write failed", "game_id", gameID, "error", err)
	}
}
