// Package pricingtest provides fake provider API servers for exercising
// the pricing adapters against realistic HTTP responses.
package pricingtest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"

	"tokenworks/atlas/pkg/hardware"
)

// lambdaInstanceNames are the instance type names served per class,
// matching what the listing endpoint returns in production.
var lambdaInstanceNames = map[hardware.Class]string{
	hardware.RTX4090: "gpu_1x_rtx4090",
	hardware.A100:    "gpu_1x_a100",
	hardware.H100:    "gpu_1x_h100",
}

// vastGPUNames are the gpu_name values served per class.
var vastGPUNames = map[hardware.Class]string{
	hardware.RTX3090: "RTX 3090",
	hardware.RTX4090: "RTX 4090",
	hardware.A100:    "A100",
	hardware.V100:    "V100",
}

// LambdaServer fakes the Lambda Labs instance-types listing.
type LambdaServer struct {
	server *httptest.Server

	mu       sync.Mutex
	rates    map[hardware.Class]float64
	status   int
	requests int
}

// NewLambdaServer starts a fake listing server advertising the given
// hourly USD rates. Close it when done.
func NewLambdaServer(rates map[hardware.Class]float64) *LambdaServer {
	s := &LambdaServer{rates: rates, status: http.StatusOK}
	s.server = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

// URL returns the server's base URL, suitable as an adapter BaseURL.
func (s *LambdaServer) URL() string { return s.server.URL }

// Close shuts the server down.
func (s *LambdaServer) Close() { s.server.Close() }

// FailWith makes subsequent requests answer with the given HTTP status
// instead of a listing. http.StatusOK restores normal behavior.
func (s *LambdaServer) FailWith(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
}

// Requests returns the number of requests served so far.
func (s *LambdaServer) Requests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests
}

func (s *LambdaServer) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.requests++
	status := s.status
	rates := s.rates
	s.mu.Unlock()

	if r.URL.Path != "/instance-types" {
		http.NotFound(w, r)
		return
	}
	if status != http.StatusOK {
		w.WriteHeader(status)
		return
	}

	type instanceType struct {
		Name              string `json:"name"`
		PriceCentsPerHour int    `json:"price_cents_per_hour"`
	}
	type entry struct {
		InstanceType instanceType `json:"instance_type"`
	}

	data := make(map[string]entry, len(rates))
	for class, rate := range rates {
		name, ok := lambdaInstanceNames[class]
		if !ok {
			continue
		}
		data[name] = entry{InstanceType: instanceType{
			Name:              name,
			PriceCentsPerHour: int(rate * 100),
		}}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"data": data})
}

// VastServer fakes the Vast.ai offer search endpoint.
type VastServer struct {
	server *httptest.Server

	mu       sync.Mutex
	offers   map[hardware.Class][]float64
	status   int
	requests int
}

// NewVastServer starts a fake offer search server advertising the given
// spot asks per class. Close it when done.
func NewVastServer(offers map[hardware.Class][]float64) *VastServer {
	s := &VastServer{offers: offers, status: http.StatusOK}
	s.server = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

// URL returns the server's base URL, suitable as an adapter BaseURL.
func (s *VastServer) URL() string { return s.server.URL }

// Close shuts the server down.
func (s *VastServer) Close() { s.server.Close() }

// FailWith makes subsequent requests answer with the given HTTP status
// instead of a listing. http.StatusOK restores normal behavior.
func (s *VastServer) FailWith(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
}

// Requests returns the number of requests served so far.
func (s *VastServer) Requests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests
}

func (s *VastServer) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.requests++
	status := s.status
	offers := s.offers
	s.mu.Unlock()

	if status != http.StatusOK {
		w.WriteHeader(status)
		return
	}

	type offer struct {
		GPUName  string  `json:"gpu_name"`
		DPHTotal float64 `json:"dph_total"`
	}

	var out []offer
	for class, asks := range offers {
		name, ok := vastGPUNames[class]
		if !ok {
			continue
		}
		for _, ask := range asks {
			out = append(out, offer{GPUName: name, DPHTotal: ask})
		}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"offers": out})
}
