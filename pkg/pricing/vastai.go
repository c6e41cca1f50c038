package pricing

import (
	"context"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"tokenworks/atlas/pkg/hardware"
)

// ProviderVastAI is the Vast.ai provider identifier.
const ProviderVastAI = "vast_ai"

const vastDefaultBaseURL = "https://console.vast.ai/api/v0"

// vastGPUNames maps hardware classes to the gpu_name values used in
// Vast.ai offer listings.
var vastGPUNames = map[hardware.Class]string{
	hardware.RTX3090: "RTX 3090",
	hardware.RTX4090: "RTX 4090",
	hardware.A100:    "A100",
	hardware.V100:    "V100",
}

// VastAIConfig configures the Vast.ai adapter.
type VastAIConfig struct {
	// BaseURL overrides the API endpoint; empty uses production.
	BaseURL string `yaml:"base_url" json:"base_url"`

	// Timeout is the per-request deadline; zero uses the default.
	Timeout time.Duration `yaml:"timeout" json:"timeout"`

	// RequestsPerHour is the lookup rate limit; zero uses 42.
	RequestsPerHour int64 `yaml:"requests_per_hour" json:"requests_per_hour"`
}

// VastAI fetches spot-market rates from Vast.ai offer search. Spot
// offers fluctuate, so the adapter takes the median of returned asks
// rather than the minimum.
type VastAI struct {
	cfg    VastAIConfig
	client *http.Client
	bucket *tokenBucket
}

// NewVastAI creates a Vast.ai pricing adapter.
func NewVastAI(cfg VastAIConfig) *VastAI {
	if cfg.BaseURL == "" {
		cfg.BaseURL = vastDefaultBaseURL
	}
	if cfg.RequestsPerHour <= 0 {
		cfg.RequestsPerHour = 42
	}
	clientCfg := defaultClientConfig()
	if cfg.Timeout > 0 {
		clientCfg.timeout = cfg.Timeout
	}
	return &VastAI{
		cfg:    cfg,
		client: newHTTPClient(clientCfg),
		bucket: newHourlyBucket(cfg.RequestsPerHour),
	}
}

// Name returns the provider identifier.
func (p *VastAI) Name() string { return ProviderVastAI }

// vastSearchResponse mirrors the offer search listing shape.
type vastSearchResponse struct {
	Offers []struct {
		GPUName  string  `json:"gpu_name"`
		DPHTotal float64 `json:"dph_total"`
	} `json:"offers"`
}

// FetchRate returns the median spot ask for the hardware class.
func (p *VastAI) FetchRate(ctx context.Context, class hardware.Class, region string) (float64, error) {
	gpuName, ok := vastGPUNames[class]
	if !ok {
		return 0, &UnsupportedHardwareError{Provider: ProviderVastAI, Class: class}
	}
	if !p.bucket.take() {
		return 0, &RateLimitError{Provider: ProviderVastAI, RetryAfter: p.bucket.timeUntilAvailable()}
	}

	query := url.Values{}
	query.Set("q", `{"gpu_name":"`+gpuName+`","order":[["dph_total","asc"]],"type":"ask"}`)

	var listing vastSearchResponse
	endpoint := p.cfg.BaseURL + "/bundles?" + query.Encode()
	if err := fetchJSON(ctx, p.client, ProviderVastAI, endpoint, nil, &listing); err != nil {
		return 0, err
	}

	var rates []float64
	for _, offer := range listing.Offers {
		if !strings.EqualFold(offer.GPUName, gpuName) {
			continue
		}
		if offer.DPHTotal > 0 {
			rates = append(rates, offer.DPHTotal)
		}
	}
	if len(rates) == 0 {
		return 0, &ProviderError{Provider: ProviderVastAI, Message: "no matching offers in listing"}
	}
	return median(rates), nil
}

func median(rates []float64) float64 {
	sorted := make([]float64, len(rates))
	copy(sorted, rates)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
