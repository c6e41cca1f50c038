package pricing

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"tokenworks/atlas/pkg/hardware"
)

// Observer receives pricing lookup events for metrics export. All
// methods must be safe for concurrent use. A nil Observer disables
// instrumentation.
type Observer interface {
	// LookupCompleted is called once per provider lookup with the
	// confidence of the quote that was served.
	LookupCompleted(provider string, confidence Confidence, elapsed time.Duration)

	// CacheHit and CacheMiss record quote cache effectiveness.
	CacheHit(provider string)
	CacheMiss(provider string)

	// FallbackServed is called when a static-table rate was used.
	FallbackServed(provider string)
}

// SourceConfig configures a pricing source.
type SourceConfig struct {
	// CacheTTL is how long live quotes stay servable; zero uses 1h.
	CacheTTL time.Duration `yaml:"cache_ttl" json:"cache_ttl"`

	// CacheMaxEntries bounds the quote cache; zero uses 256.
	CacheMaxEntries int `yaml:"cache_max_entries" json:"cache_max_entries"`

	// ProviderTimeout is the per-provider lookup deadline; zero uses 5s.
	ProviderTimeout time.Duration `yaml:"provider_timeout" json:"provider_timeout"`

	// Region is passed to providers that price per region.
	Region string `yaml:"region" json:"region"`

	// Overrides maps "provider:class" keys to operator-pinned hourly
	// rates that bypass both live lookups and the static table.
	Overrides map[string]float64 `yaml:"overrides" json:"overrides"`
}

// Source resolves hourly hardware rates across cloud providers.
//
// Lookup order per provider: operator override, quote cache, live API,
// static fallback table. Quote never returns an error: when every live
// path fails the static table answers with fallback confidence. Lookups
// across providers run concurrently, each under its own deadline.
type Source struct {
	cfg       SourceConfig
	providers []Provider
	cache     *QuoteCache
	logger    *slog.Logger
	observer  Observer

	// overrideMu guards Overrides against hot reload.
	overrideMu sync.RWMutex
	overrides  map[string]float64
}

// NewSource creates a pricing source over the given providers.
// A nil logger falls back to slog.Default; a nil observer disables
// metrics.
func NewSource(cfg SourceConfig, providers []Provider, logger *slog.Logger, observer Observer) *Source {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = time.Hour
	}
	if cfg.CacheMaxEntries <= 0 {
		cfg.CacheMaxEntries = 256
	}
	if cfg.ProviderTimeout <= 0 {
		cfg.ProviderTimeout = 5 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}

	overrides := make(map[string]float64, len(cfg.Overrides))
	for k, v := range cfg.Overrides {
		overrides[k] = v
	}

	return &Source{
		cfg:       cfg,
		providers: providers,
		cache:     NewQuoteCache(cfg.CacheTTL, cfg.CacheMaxEntries),
		logger:    logger,
		observer:  observer,
		overrides: overrides,
	}
}

// Cache exposes the underlying quote cache, for the refresher and for
// operational introspection.
func (s *Source) Cache() *QuoteCache { return s.cache }

// SetOverrides atomically replaces the operator override table. Called
// by the config watcher on hot reload.
func (s *Source) SetOverrides(overrides map[string]float64) {
	next := make(map[string]float64, len(overrides))
	for k, v := range overrides {
		next[k] = v
	}
	s.overrideMu.Lock()
	s.overrides = next
	s.overrideMu.Unlock()
	s.logger.Info("pricing overrides replaced", "entries", len(next))
}

// Quote returns the best available quote for one provider and hardware
// class. It never returns an error; when no live or cached data exists
// the static table answers, and when even that has no entry ok=false.
func (s *Source) Quote(ctx context.Context, provider string, class hardware.Class) (Quote, bool) {
	start := time.Now()
	q, ok := s.quoteOne(ctx, provider, class)
	if ok && s.observer != nil {
		s.observer.LookupCompleted(provider, q.Confidence, time.Since(start))
	}
	return q, ok
}

// QuoteAll resolves quotes for the hardware class across all configured
// providers concurrently. Results are sorted by hourly rate ascending.
// Providers with no data for the class are omitted.
func (s *Source) QuoteAll(ctx context.Context, class hardware.Class) []Quote {
	type result struct {
		quote Quote
		ok    bool
	}

	results := make([]result, len(s.providers))
	var wg sync.WaitGroup
	for i, p := range s.providers {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			q, ok := s.Quote(ctx, name, class)
			results[i] = result{quote: q, ok: ok}
		}(i, p.Name())
	}
	wg.Wait()

	var quotes []Quote
	for _, r := range results {
		if r.ok {
			quotes = append(quotes, r.quote)
		}
	}
	sort.Slice(quotes, func(i, j int) bool {
		if quotes[i].HourlyUSD != quotes[j].HourlyUSD {
			return quotes[i].HourlyUSD < quotes[j].HourlyUSD
		}
		return quotes[i].Provider < quotes[j].Provider
	})
	return quotes
}

// Cheapest returns the lowest-rate quote for the class across all
// providers, preferring fresher confidence on rate ties.
func (s *Source) Cheapest(ctx context.Context, class hardware.Class) (Quote, bool) {
	quotes := s.QuoteAll(ctx, class)
	if len(quotes) == 0 {
		return Quote{}, false
	}
	best := quotes[0]
	for _, q := range quotes[1:] {
		if q.HourlyUSD == best.HourlyUSD && q.Confidence.Fresher(best.Confidence) {
			best = q
		}
	}
	return best, true
}

func (s *Source) quoteOne(ctx context.Context, provider string, class hardware.Class) (Quote, bool) {
	if rate, ok := s.override(provider, class); ok {
		return Quote{
			Provider:   provider,
			Hardware:   class,
			Region:     s.cfg.Region,
			HourlyUSD:  rate,
			Confidence: ConfidenceLive,
			FetchedAt:  time.Now(),
		}, true
	}

	if q, ok := s.cache.Get(provider, class, s.cfg.Region); ok {
		if s.observer != nil {
			s.observer.CacheHit(provider)
		}
		return q, true
	}
	if s.observer != nil {
		s.observer.CacheMiss(provider)
	}

	if q, ok := s.fetchLive(ctx, provider, class); ok {
		return q, true
	}

	rate, ok := FallbackRate(provider, class)
	if !ok {
		return Quote{}, false
	}
	if s.observer != nil {
		s.observer.FallbackServed(provider)
	}
	return Quote{
		Provider:   provider,
		Hardware:   class,
		Region:     s.cfg.Region,
		HourlyUSD:  rate,
		Confidence: ConfidenceFallback,
		FetchedAt:  time.Now(),
	}, true
}

// fetchLive attempts a live provider lookup and caches the result.
func (s *Source) fetchLive(ctx context.Context, provider string, class hardware.Class) (Quote, bool) {
	p := s.provider(provider)
	if p == nil {
		return Quote{}, false
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.ProviderTimeout)
	defer cancel()

	rate, err := p.FetchRate(ctx, class, s.cfg.Region)
	if err != nil {
		s.logFetchFailure(provider, class, err)
		return Quote{}, false
	}

	q := Quote{
		Provider:   provider,
		Hardware:   class,
		Region:     s.cfg.Region,
		HourlyUSD:  rate,
		Confidence: ConfidenceLive,
		FetchedAt:  time.Now(),
	}
	s.cache.Set(q)
	return q, true
}

func (s *Source) logFetchFailure(provider string, class hardware.Class, err error) {
	switch err.(type) {
	case *UnsupportedHardwareError:
		// Expected for providers that do not carry the class.
		s.logger.Debug("provider does not offer hardware class",
			"provider", provider,
			"hardware", class,
		)
	case *RateLimitError:
		s.logger.Warn("provider lookup rate limited, using stale data",
			"provider", provider,
			"hardware", class,
			"error", err,
		)
	default:
		s.logger.Warn("live pricing lookup failed, falling back",
			"provider", provider,
			"hardware", class,
			"error", err,
		)
	}
}

func (s *Source) provider(name string) Provider {
	for _, p := range s.providers {
		if p.Name() == name {
			return p
		}
	}
	return nil
}

func (s *Source) override(provider string, class hardware.Class) (float64, bool) {
	s.overrideMu.RLock()
	defer s.overrideMu.RUnlock()
	rate, ok := s.overrides[overrideKey(provider, class)]
	return rate, ok
}

// Providers returns the configured provider names in order.
func (s *Source) Providers() []string {
	names := make([]string, len(s.providers))
	for i, p := range s.providers {
		names[i] = p.Name()
	}
	return names
}

func overrideKey(provider string, class hardware.Class) string {
	return provider + ":" + string(class)
}
