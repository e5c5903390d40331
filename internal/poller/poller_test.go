package poller

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jmorales/seatscout/internal/listings"
	"github.com/jmorales/seatscout/internal/model"
	"github.com/jmorales/seatscout/internal/pricing"
	"github.com/jmorales/seatscout/internal/track"
)

type fakeTracks struct {
	games []model.TrackedGame
	err   error
}

func (f *fakeTracks) List(ctx context.Context) ([]model.TrackedGame, error) {
	return f.games, f.err
}

type fakePrices struct {
	mu      sync.Mutex
	results map[string]*listings.Result
	errs    map[string]error
	calls   map[string]int
}

func (f *fakePrices) GamePrices(ctx context.Context, gameID string, opts pricing.Options) (*listings.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[gameID]++
	if err := f.errs[gameID]; err != nil {
		return nil, err
	}
	return f.results[gameID], nil
}

type captureSinks struct {
	mu      sync.Mutex
	points  []model.PricePoint
	updates []model.PriceUpdate
}

func (c *captureSinks) Record(p model.PricePoint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.points = append(c.points, p)
}

func (c *captureSinks) Broadcast(u model.PriceUpdate) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.updates = append(c.updates, u)
}

func liveResult(gameID string, fetchAt int64, prices map[string]int64) *listings.Result {
	var ls []model.DisplayListing
	for vendor, cents := range prices {
		ls = append(ls, model.DisplayListing{
			Listing:      model.Listing{ID: vendor + "-1", GameID: gameID, VendorID: vendor},
			DisplayCents: cents,
		})
	}
	return &listings.Result{
		GameID:  gameID,
		Source:  listings.SourceLive,
		Groups:  []model.CategoryGroup{{Category: model.Category{ID: "infield", Name: "Infield"}, Listings: ls}},
		FetchAt: fetchAt,
	}
}

func newTestPoller(tracks TrackSource, prices PriceSource, sinks *captureSinks) *Poller {
	return New(Config{Interval: time.Hour, Concurrency: 2, Timeout: time.Second}, tracks, prices, sinks, sinks, nil)
}

func TestPollAllRecordsAndBroadcasts(t *testing.T) {
	tracks := &fakeTracks{games: []model.TrackedGame{
		track.NewTrackedGame("g1", 2000, "", 1),
	}}
	prices := &fakePrices{results: map[string]*listings.Result{
		"g1": liveResult("g1", 5000, map[string]int64{"stubhub": 1800, "ticketmaster": 2600}),
	}}
	sinks := &captureSinks{}

	p := newTestPoller(tracks, prices, sinks)
	p.ctx, p.cancel = context.WithCancel(context.Background())
	defer p.cancel()

	p.pollAll()

	if len(sinks.points) != 2 {
		t.Fatalf("points = %d, want 2", len(sinks.points))
	}
	byVendor := make(map[string]model.PriceUpdate)
	for _, u := range sinks.updates {
		byVendor[u.VendorID] = u
	}
	sh, ok := byVendor["stubhub"]
	if !ok {
		t.Fatal("no stubhub update")
	}
	if sh.CheapCents != 1800 || !sh.Alert {
		t.Errorf("stubhub update = %+v, want cheap 1800 with alert", sh)
	}
	tm := byVendor["ticketmaster"]
	if tm.CheapCents != 2600 || tm.Alert {
		t.Errorf("ticketmaster update = %+v, want cheap 2600 without alert", tm)
	}
	if sh.RecordedAt != 5000 {
		t.Errorf("RecordedAt = %d, want 5000", sh.RecordedAt)
	}
}

func TestPollAllDedupesGames(t *testing.T) {
	tracks := &fakeTracks{games: []model.TrackedGame{
		track.NewTrackedGame("g1", 1000, "low target", 1),
		track.NewTrackedGame("g1", 3000, "loose target", 2),
	}}
	prices := &fakePrices{results: map[string]*listings.Result{
		"g1": liveResult("g1", 10, map[string]int64{"stubhub": 2500}),
	}}
	sinks := &captureSinks{}

	p := newTestPoller(tracks, prices, sinks)
	p.ctx, p.cancel = context.WithCancel(context.Background())
	defer p.cancel()

	p.pollAll()

	if got := prices.calls["g1"]; got != 1 {
		t.Errorf("fetches for g1 = %d, want 1", got)
	}
	if len(sinks.updates) != 1 {
		t.Fatalf("updates = %d, want 1", len(sinks.updates))
	}
	// The loosest target (3000) decides: 2500 <= 3000 alerts.
	if !sinks.updates[0].Alert {
		t.Error("expected alert under loosest target")
	}
}

func TestPollAllSkipsDemoResults(t *testing.T) {
	tracks := &fakeTracks{games: []model.TrackedGame{
		track.NewTrackedGame("g1", 2000, "", 1),
	}}
	demo := liveResult("g1", 10, map[string]int64{"demo": 900})
	demo.Source = listings.SourceDemo
	prices := &fakePrices{results: map[string]*listings.Result{"g1": demo}}
	sinks := &captureSinks{}

	p := newTestPoller(tracks, prices, sinks)
	p.ctx, p.cancel = context.WithCancel(context.Background())
	defer p.cancel()

	p.pollAll()

	if len(sinks.points) != 0 || len(sinks.updates) != 0 {
		t.Errorf("demo result produced %d points, %d updates; want none",
			len(sinks.points), len(sinks.updates))
	}
}

func TestPollAllContinuesPastErrors(t *testing.T) {
	tracks := &fakeTracks{games: []model.TrackedGame{
		track.NewTrackedGame("bad", 0, "", 1),
		track.NewTrackedGame("good", 0, "", 2),
	}}
	prices := &fakePrices{
		results: map[string]*listings.Result{
			"good": liveResult("good", 10, map[string]int64{"stubhub": 4000}),
		},
		errs: map[string]error{"bad": errors.New("vendor down")},
	}
	sinks := &captureSinks{}

	p := newTestPoller(tracks, prices, sinks)
	p.ctx, p.cancel = context.WithCancel(context.Background())
	defer p.cancel()

	p.pollAll()

	if len(sinks.updates) != 1 || sinks.updates[0].GameID != "good" {
		t.Errorf("updates = %+v, want one for game good", sinks.updates)
	}
}

func TestPollerLifecycle(t *testing.T) {
	tracks := &fakeTracks{}
	prices := &fakePrices{}

	p := New(Config{Interval: 50 * time.Millisecond}, tracks, prices, nil, nil, nil)

	if err := p.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	time.Sleep(20 * time.Millisecond)

	stopCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := p.Stop(stopCtx); err != nil {
		t.Errorf("Stop() error = %v", err)
	}
}

func TestCheapestByVendor(t *testing.T) {
	groups := []model.CategoryGroup{
		{Listings: []model.DisplayListing{
			{Listing: model.Listing{VendorID: "stubhub"}, DisplayCents: 3000},
			{Listing: model.Listing{VendorID: "stubhub"}, DisplayCents: 1500},
		}},
		{Listings: []model.DisplayListing{
			{Listing: model.Listing{VendorID: "ticketmaster"}, DisplayCents: 2200},
			{Listing: model.Listing{VendorID: "stubhub"}, DisplayCents: 1500},
		}},
	}

	got := cheapestByVendor(groups)
	if got["stubhub"] != 1500 {
		t.Errorf("stubhub = %d, want 1500", got["stubhub"])
	}
	if got["ticketmaster"] != 2200 {
		t.Errorf("ticketmaster = %d, want 2200", got["ticketmaster"])
	}
}
