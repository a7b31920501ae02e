package gemini

// DefaultModel is the analysis model used when none is specified.
const DefaultModel = "gemini-2.5-flash"

// Pricing is the cost in USD per million tokens.
type Pricing struct {
	Input  float64
	Output float64
}

// ModelPricing lists prices current as of January 2026; see
// https://ai.google.dev/gemini-api/docs/pricing.
var ModelPricing = map[string]Pricing{
	"gemini-2.5-flash": {Input: 0.30, Output: 2.50},
	"gemini-2.5-pro":   {Input: 2.50, Output: 15.00},
	"gemini-2.0-flash": {Input: 0.10, Output: 0.40},
}

// CostUSD estimates the cost of the analysis. Unknown models price as
// DefaultModel.
func (u UsageStats) CostUSD() float64 {
	p, ok := ModelPricing[u.Model]
	if !ok {
		p = ModelPricing[DefaultModel]
	}
	return float64(u.InputTokens)/1e6*p.Input + float64(u.OutputTokens)/1e6*p.Output
}
