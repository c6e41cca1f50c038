package pricing

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"tokenworks/atlas/pkg/hardware"
)

func TestStaticProviderServesTableRates(t *testing.T) {
	src := NewSource(SourceConfig{}, []Provider{
		NewStatic(ProviderLambdaLabs),
		NewStatic(ProviderVastAI),
		NewStatic(ProviderRunPod),
	}, slog.New(slog.NewTextHandler(io.Discard, nil)), nil)

	quotes := src.QuoteAll(context.Background(), hardware.A100)
	if len(quotes) != 3 {
		t.Fatalf("quotes = %d, want all three providers", len(quotes))
	}
	for _, q := range quotes {
		if q.Confidence != ConfidenceFallback {
			t.Errorf("%s confidence = %s, want fallback", q.Provider, q.Confidence)
		}
	}

	want, _ := FallbackRate(ProviderVastAI, hardware.A100)
	q, ok := src.Quote(context.Background(), ProviderVastAI, hardware.A100)
	if !ok || q.HourlyUSD != want {
		t.Errorf("vast_ai a100 = %v (ok=%v), want %v", q.HourlyUSD, ok, want)
	}
}
