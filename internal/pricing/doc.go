// Package pricing implements the price aggregation core.
//
// Listings normalized from vendor responses are tagged with a display price
// and a coarse stadium area, then grouped into seating categories, filtered,
// and price-sorted. The whole pipeline is deterministic: identical inputs and
// options produce identical output, and source listings are never mutated.
package pricing
