// Package hardware provides the GPU class catalog used for feasibility
// checks and throughput/cost math.
//
// Like the model catalog, the hardware catalog is fixed at construction
// and safe for concurrent reads. Throughput figures are tensor-core peak
// TFLOPS; real training throughput is derated by the cost engine's
// efficiency factor.
package hardware
