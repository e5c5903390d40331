// Package poller periodically re-prices tracked games.
//
// Each cycle lists the tracked games, fetches fresh price comparisons with
// bounded concurrency, records per-vendor cheapest prices to history, and
// broadcasts updates to stream subscribers. An update is flagged as an
// alert when the cheapest price reaches a tracker's target.
package poller
