// Package costing estimates what a fine-tuning run costs across
// training approaches and hardware options.
//
// The engine combines three inputs: a model spec from the catalog, a
// token count for the training corpus, and hourly hardware rates from
// the pricing source. For each feasible approach it derives compute
// from scaling-law math, sizes the hardware from memory requirements,
// and prices the resulting training time. Approaches a model cannot
// use (too large for local hardware, no API fine-tune offering) are
// omitted from the result rather than reported as errors.
package costing
