// Package roi answers whether a fine-tuning investment pays for itself.
//
// The analysis compares a training cost estimate against the recurring
// hosted-API spend it would replace, projects cumulative savings over
// standard horizons, and categorizes the break-even timeline. Savings
// assume the tuned model serves most traffic with a small residual API
// spend remaining.
package roi
