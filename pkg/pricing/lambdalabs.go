package pricing

import (
	"context"
	"net/http"
	"strings"
	"time"

	"tokenworks/atlas/pkg/hardware"
)

// ProviderLambdaLabs is the Lambda Labs provider identifier.
const ProviderLambdaLabs = "lambda_labs"

const lambdaDefaultBaseURL = "https://cloud.lambdalabs.com/api/v1"

// lambdaInstanceNames maps hardware classes to Lambda instance type
// name fragments used to locate rates in the listing response.
var lambdaInstanceNames = map[hardware.Class]string{
	hardware.RTX4090: "rtx4090",
	hardware.A100:    "a100",
	hardware.H100:    "h100",
}

// LambdaLabsConfig configures the Lambda Labs adapter.
type LambdaLabsConfig struct {
	// BaseURL overrides the API endpoint; empty uses production.
	BaseURL string `yaml:"base_url" json:"base_url"`

	// APIKey authenticates the instance-types listing.
	APIKey string `yaml:"api_key" json:"api_key"`

	// Timeout is the per-request deadline; zero uses the default.
	Timeout time.Duration `yaml:"timeout" json:"timeout"`

	// RequestsPerHour is the lookup rate limit; zero uses 100.
	RequestsPerHour int64 `yaml:"requests_per_hour" json:"requests_per_hour"`
}

// LambdaLabs fetches on-demand rates from the Lambda Labs
// instance-types listing.
type LambdaLabs struct {
	cfg    LambdaLabsConfig
	client *http.Client
	bucket *tokenBucket
}

// NewLambdaLabs creates a Lambda Labs pricing adapter.
func NewLambdaLabs(cfg LambdaLabsConfig) *LambdaLabs {
	if cfg.BaseURL == "" {
		cfg.BaseURL = lambdaDefaultBaseURL
	}
	if cfg.RequestsPerHour <= 0 {
		cfg.RequestsPerHour = 100
	}
	clientCfg := defaultClientConfig()
	if cfg.Timeout > 0 {
		clientCfg.timeout = cfg.Timeout
	}
	return &LambdaLabs{
		cfg:    cfg,
		client: newHTTPClient(clientCfg),
		bucket: newHourlyBucket(cfg.RequestsPerHour),
	}
}

// Name returns the provider identifier.
func (p *LambdaLabs) Name() string { return ProviderLambdaLabs }

// lambdaListResponse mirrors the instance-types listing shape.
type lambdaListResponse struct {
	Data map[string]struct {
		InstanceType struct {
			Name              string `json:"name"`
			PriceCentsPerHour int    `json:"price_cents_per_hour"`
		} `json:"instance_type"`
	} `json:"data"`
}

// FetchRate returns the cheapest on-demand rate whose instance name
// matches the hardware class.
func (p *LambdaLabs) FetchRate(ctx context.Context, class hardware.Class, region string) (float64, error) {
	fragment, ok := lambdaInstanceNames[class]
	if !ok {
		return 0, &UnsupportedHardwareError{Provider: ProviderLambdaLabs, Class: class}
	}
	if !p.bucket.take() {
		return 0, &RateLimitError{Provider: ProviderLambdaLabs, RetryAfter: p.bucket.timeUntilAvailable()}
	}

	headers := map[string]string{}
	if p.cfg.APIKey != "" {
		headers["Authorization"] = "Bearer " + p.cfg.APIKey
	}

	var listing lambdaListResponse
	if err := fetchJSON(ctx, p.client, ProviderLambdaLabs, p.cfg.BaseURL+"/instance-types", headers, &listing); err != nil {
		return 0, err
	}

	best := -1.0
	for _, entry := range listing.Data {
		name := strings.ToLower(entry.InstanceType.Name)
		if !strings.Contains(name, fragment) {
			continue
		}
		rate := float64(entry.InstanceType.PriceCentsPerHour) / 100
		if rate <= 0 {
			continue
		}
		if best < 0 || rate < best {
			best = rate
		}
	}
	if best < 0 {
		return 0, &ProviderError{Provider: ProviderLambdaLabs, Message: "no matching instance type in listing"}
	}
	return best, nil
}
