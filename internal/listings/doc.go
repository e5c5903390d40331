// Package listings fetches ticket listings for a game from every configured
// vendor and aggregates them into categorized price groups.
//
// This package is the single live-versus-fallback seam: vendor failures are
// logged and absorbed here, and callers always receive a structurally valid
// result backed by live, cached, or demo data. Only context cancellation
// propagates out.
package listings
