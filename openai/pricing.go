package openai

// DefaultModel is the research model used when none is specified.
const DefaultModel = "o3-deep-research"

// Pricing is the cost in USD per million tokens.
type Pricing struct {
	Input  float64
	Output float64
}

// ModelPricing lists prices for the supported research models, current as
// of January 2026.
var ModelPricing = map[string]Pricing{
	"o3-deep-research":      {Input: 10.00, Output: 40.00},
	"o4-mini-deep-research": {Input: 2.00, Output: 8.00},
}

// Cost estimates the USD cost of a run. Unknown models price as
// DefaultModel.
func Cost(model string, inputTokens, outputTokens int) float64 {
	p, ok := ModelPricing[model]
	if !ok {
		p = ModelPricing[DefaultModel]
	}
	return float64(inputTokens)/1e6*p.Input + float64(outputTokens)/1e6*p.Output
}
