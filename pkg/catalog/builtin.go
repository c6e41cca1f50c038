package catalog

// builtinModels returns the bundled model catalog.
//
// Figures for closed models (GPT-4, Claude, Gemini) are public industry
// estimates. API prices are the published per-1K-token rates at the time
// the catalog was compiled; they can be overridden from configuration.
func builtinModels() []ModelSpec {
	return []ModelSpec{
		{
			ID:                 "gpt-4",
			DisplayName:        "GPT-4",
			Family:             FamilyOpenAI,
			Params:             1_800_000_000_000,
			ContextWindow:      8192,
			MemoryGB:           3600,
			MemoryMultiplier:   4.0,
			Feasibility:        APIOnly,
			APITrainPricePer1K: 0.03,
			APIUsagePricePer1K: 0.03,
		},
		{
			ID:                 "gpt-4-turbo",
			DisplayName:        "GPT-4 Turbo",
			Family:             FamilyOpenAI,
			Params:             1_800_000_000_000,
			ContextWindow:      128000,
			MemoryGB:           3600,
			MemoryMultiplier:   4.0,
			Feasibility:        APIOnly,
			APITrainPricePer1K: 0.03,
			APIUsagePricePer1K: 0.01,
		},
		{
			ID:                 "gpt-3.5-turbo",
			DisplayName:        "GPT-3.5 Turbo",
			Family:             FamilyOpenAI,
			Params:             175_000_000_000,
			ContextWindow:      16385,
			MemoryGB:           350,
			MemoryMultiplier:   4.0,
			Feasibility:        APIOnly,
			APITrainPricePer1K: 0.008,
			APIUsagePricePer1K: 0.002,
		},
		{
			ID:                 "claude-3-opus",
			DisplayName:        "Claude 3 Opus",
			Family:             FamilyAnthropic,
			Params:             175_000_000_000,
			ContextWindow:      200000,
			MemoryGB:           350,
			MemoryMultiplier:   4.0,
			Feasibility:        APIOnly,
			APITrainPricePer1K: 0.025,
			APIUsagePricePer1K: 0.015,
		},
		{
			ID:                 "claude-3-sonnet",
			DisplayName:        "Claude 3 Sonnet",
			Family:             FamilyAnthropic,
			Params:             50_000_000_000,
			ContextWindow:      200000,
			MemoryGB:           100,
			MemoryMultiplier:   4.0,
			Feasibility:        APIOnly,
			APITrainPricePer1K: 0.025,
			APIUsagePricePer1K: 0.003,
		},
		{
			ID:                 "claude-3-haiku",
			DisplayName:        "Claude 3 Haiku",
			Family:             FamilyAnthropic,
			Params:             8_000_000_000,
			ContextWindow:      200000,
			MemoryGB:           16,
			MemoryMultiplier:   4.0,
			Feasibility:        CloudOnly,
			APIUsagePricePer1K: 0.00025,
		},
		{
			ID:               "llama-2-7b",
			DisplayName:      "LLaMA 2 7B",
			Family:           FamilyMeta,
			Params:           7_000_000_000,
			ContextWindow:    4096,
			MemoryGB:         14,
			MemoryMultiplier: 4.0,
			Feasibility:      LocalFeasible,
			// Hosted inference via Together AI; no first-party fine-tune API.
			APIUsagePricePer1K: 0.0008,
		},
		{
			ID:                 "llama-2-13b",
			DisplayName:        "LLaMA 2 13B",
			Family:             FamilyMeta,
			Params:             13_000_000_000,
			ContextWindow:      4096,
			MemoryGB:           26,
			MemoryMultiplier:   4.0,
			Feasibility:        LocalFeasible,
			APIUsagePricePer1K: 0.0022,
		},
		{
			ID:               "llama-2-70b",
			DisplayName:      "LLaMA 2 70B",
			Family:           FamilyMeta,
			Params:           70_000_000_000,
			ContextWindow:    4096,
			MemoryGB:         140,
			MemoryMultiplier: 4.0,
			Feasibility:      CloudOnly,
		},
		{
			ID:                 "mistral-7b",
			DisplayName:        "Mistral 7B",
			Family:             FamilyMistral,
			Params:             7_300_000_000,
			ContextWindow:      8192,
			MemoryGB:           15,
			MemoryMultiplier:   4.0,
			Feasibility:        LocalFeasible,
			APIUsagePricePer1K: 0.0008,
		},
		{
			ID:                 "mixtral-8x7b",
			DisplayName:        "Mixtral 8x7B",
			Family:             FamilyMistral,
			Params:             56_000_000_000,
			ContextWindow:      32768,
			MemoryGB:           90,
			MemoryMultiplier:   4.0,
			Feasibility:        CloudOnly,
			APIUsagePricePer1K: 0.0006,
		},
		{
			ID:               "bert-base-uncased",
			DisplayName:      "BERT Base Uncased",
			Family:           FamilyBERT,
			Params:           110_000_000,
			ContextWindow:    512,
			MemoryGB:         1,
			MemoryMultiplier: 3.0,
			Feasibility:      LocalFeasible,
		},
		{
			ID:               "roberta-base",
			DisplayName:      "RoBERTa Base",
			Family:           FamilyBERT,
			Params:           125_000_000,
			ContextWindow:    512,
			MemoryGB:         1,
			MemoryMultiplier: 3.0,
			Feasibility:      LocalFeasible,
		},
		{
			ID:               "distilbert-base-uncased",
			DisplayName:      "DistilBERT Base",
			Family:           FamilyBERT,
			Params:           66_000_000,
			ContextWindow:    512,
			MemoryGB:         0.5,
			MemoryMultiplier: 3.0,
			Feasibility:      LocalFeasible,
		},
		{
			ID:                 "gemini-pro",
			DisplayName:        "Gemini Pro",
			Family:             FamilyGoogle,
			Params:             175_000_000_000,
			ContextWindow:      32768,
			MemoryGB:           350,
			MemoryMultiplier:   4.0,
			Feasibility:        APIOnly,
			APIUsagePricePer1K: 0.00025,
		},
		{
			ID:                 "command-r",
			DisplayName:        "Cohere Command R",
			Family:             FamilyCohere,
			Params:             35_000_000_000,
			ContextWindow:      128000,
			MemoryGB:           70,
			MemoryMultiplier:   4.0,
			Feasibility:        APIOnly,
			APIUsagePricePer1K: 0.0015,
		},
	}
}
