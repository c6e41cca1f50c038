package catalog

// DefaultChinchillaRatio is the compute-optimal training tokens per
// parameter from the Chinchilla scaling result.
const DefaultChinchillaRatio = 20

// DefaultFLOPsPerParamToken is the training compute coefficient in
// C = 6*N*D.
const DefaultFLOPsPerParamToken = 6.0

// ChinchillaTokens returns the compute-optimal training corpus size for
// a parameter count, at the default tokens-per-parameter ratio.
func ChinchillaTokens(params int64) int64 {
	return ChinchillaTokensRatio(params, DefaultChinchillaRatio)
}

// ChinchillaTokensRatio is ChinchillaTokens with an explicit ratio, for
// deployments tracking newer scaling results.
func ChinchillaTokensRatio(params int64, ratio int64) int64 {
	return params * ratio
}

// ComputeBudget returns the total training compute C = 6*N*D in FLOPs
// for a model of params parameters over tokens training tokens.
func ComputeBudget(params, tokens int64) float64 {
	return ComputeBudgetCoeff(params, tokens, DefaultFLOPsPerParamToken)
}

// ComputeBudgetCoeff is ComputeBudget with an explicit per-param-token
// coefficient.
func ComputeBudgetCoeff(params, tokens int64, coeff float64) float64 {
	return coeff * float64(params) * float64(tokens)
}
