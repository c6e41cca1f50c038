// Atlas estimates fine-tuning costs for open and hosted language
// models across local, cloud, and managed-API training approaches.
//
// It compares every feasible approach and hardware combination against
// live provider pricing with static fallbacks, analyzes break-even
// timelines against hosted-API usage costs, and grades training-data
// chunking efficiency.
//
// Usage:
//
//	# Compare every approach for a model
//	atlas estimate llama-2-7b --tokens 10000000
//
//	# Rank options by a priority
//	atlas estimate llama-2-7b --tokens 10000000 --rank balanced
//
//	# Break-even analysis at an expected monthly volume
//	atlas roi llama-2-7b --tokens 10000000 --monthly-tokens 500000
//
//	# Inspect current GPU rates
//	atlas quote a100
//
//	# Grade a chunked training corpus
//	atlas chunks counts.txt --limit 512
//
//	# Run the pricing refresher and metrics endpoint
//	atlas serve
package main

func main() {
	Execute()
}
