package hardware

import (
	"fmt"
	"math"
)

// Class identifies a GPU hardware class.
type Class string

const (
	RTX3090 Class = "rtx3090"
	RTX4090 Class = "rtx4090"
	A100    Class = "a100"
	H100    Class = "h100"
	V100    Class = "v100"
)

// Spec describes a GPU class.
type Spec struct {
	// Class is the hardware identifier.
	Class Class `json:"class"`

	// DisplayName is the human-readable name (e.g. "RTX 4090").
	DisplayName string `json:"display_name"`

	// MemoryGB is the VRAM per device.
	MemoryGB float64 `json:"memory_gb"`

	// TensorTFLOPS is peak tensor throughput per device.
	TensorTFLOPS float64 `json:"tensor_tflops"`

	// PowerWatts is the device power draw under training load.
	PowerWatts float64 `json:"power_watts"`

	// MarketPriceUSD is the street price, used for local depreciation.
	MarketPriceUSD float64 `json:"market_price_usd"`

	// Consumer marks hardware typically owned rather than rented.
	Consumer bool `json:"consumer"`
}

// NotFoundError indicates an unknown hardware class.
type NotFoundError struct {
	Class Class
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("hardware class %q not found", e.Class)
}

// MaxGPUsPerRig bounds how many devices a single training setup may use.
// Configurations needing more are treated as infeasible.
const MaxGPUsPerRig = 8

var specs = map[Class]Spec{
	RTX3090: {
		Class:          RTX3090,
		DisplayName:    "RTX 3090",
		MemoryGB:       24,
		TensorTFLOPS:   35.6,
		PowerWatts:     350,
		MarketPriceUSD: 1200,
		Consumer:       true,
	},
	RTX4090: {
		Class:          RTX4090,
		DisplayName:    "RTX 4090",
		MemoryGB:       24,
		TensorTFLOPS:   83.0,
		PowerWatts:     450,
		MarketPriceUSD: 1600,
		Consumer:       true,
	},
	A100: {
		Class:          A100,
		DisplayName:    "A100 80GB",
		MemoryGB:       80,
		TensorTFLOPS:   312.0,
		PowerWatts:     400,
		MarketPriceUSD: 15000,
	},
	H100: {
		Class:          H100,
		DisplayName:    "H100",
		MemoryGB:       80,
		TensorTFLOPS:   989.0,
		PowerWatts:     700,
		MarketPriceUSD: 30000,
	},
	V100: {
		Class:          V100,
		DisplayName:    "V100",
		MemoryGB:       32,
		TensorTFLOPS:   125.0,
		PowerWatts:     300,
		MarketPriceUSD: 8000,
	},
}

// listOrder is the stable enumeration order for List.
var listOrder = []Class{RTX3090, RTX4090, V100, A100, H100}

// Get returns the spec for a hardware class.
// Returns *NotFoundError for unknown classes.
func Get(class Class) (Spec, error) {
	spec, ok := specs[class]
	if !ok {
		return Spec{}, &NotFoundError{Class: class}
	}
	return spec, nil
}

// List returns all hardware classes in a stable order, cheapest consumer
// cards first.
func List() []Spec {
	out := make([]Spec, 0, len(listOrder))
	for _, c := range listOrder {
		out = append(out, specs[c])
	}
	return out
}

// Select returns the cheapest class (by market price) that can hold
// memoryGB within MaxGPUsPerRig devices, along with the device count.
// consumerOnly restricts the search to hardware typically owned rather
// than rented. Returns ok=false when nothing fits.
func Select(memoryGB float64, consumerOnly bool) (Spec, int, bool) {
	var (
		best      Spec
		bestCount int
		found     bool
	)
	for _, spec := range List() {
		if consumerOnly && !spec.Consumer {
			continue
		}
		count, ok := Fit(spec, memoryGB)
		if !ok {
			continue
		}
		total := spec.MarketPriceUSD * float64(count)
		if !found || total < best.MarketPriceUSD*float64(bestCount) {
			best, bestCount, found = spec, count, true
		}
	}
	return best, bestCount, found
}

// Fit computes the device count needed to hold memoryGB on the given
// class. Returns (count, true) when the requirement fits within
// MaxGPUsPerRig devices, (0, false) otherwise.
func Fit(spec Spec, memoryGB float64) (int, bool) {
	if memoryGB <= 0 {
		return 1, true
	}
	count := int(math.Ceil(memoryGB / spec.MemoryGB))
	if count < 1 {
		count = 1
	}
	if count > MaxGPUsPerRig {
		return 0, false
	}
	return count, true
}
