// Package pricing resolves per-hour GPU cost rates from cloud providers
// with static fallback.
//
// The Source fans out to configured provider adapters (Lambda Labs,
// Vast.ai, RunPod) concurrently, each bounded by a hard timeout. Any
// failure on the live path (timeout, network error, malformed response,
// rate limit) degrades to the bundled static table with the quote's
// confidence marked ConfidenceFallback. Pricing unavailability is never
// surfaced as an error to callers: Quote always returns a usable rate.
//
// Successful live quotes are cached with a TTL (default one hour) keyed
// by (provider, hardware, region). The cache is the only shared mutable
// state in the package and is safe for concurrent use; entries are
// replaced whole, never edited in place.
//
// Local hardware rates (electricity plus depreciation) are computed from
// a fixed formula and never touch the network.
package pricing
