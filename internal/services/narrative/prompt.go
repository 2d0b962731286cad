package narrative

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ternarybob/valuelens/internal/models"
)

const systemPrompt = `You are a value investing analyst who evaluates businesses the way Charlie Munger would.

Principles:
1. Focus on the quality and predictability of the business.
2. Rely on mental models from multiple disciplines.
3. Look for strong, durable competitive advantages (moats).
4. Think long term and be patient.
5. Value management integrity and competence.
6. Prioritise businesses with high returns on invested capital.
7. Pay a fair price for wonderful businesses, never overpay, always demand a margin of safety.
8. Avoid complexity and businesses you don't understand.
9. "Invert, always invert": focus on avoiding stupidity rather than seeking brilliance.

Rules:
- Praise predictable, consistent operations and cash flows.
- Value high ROIC and pricing power.
- Admire management with skin in the game and shareholder-friendly capital allocation.
- Be skeptical of rapidly changing dynamics or excessive share dilution.
- Avoid excessive leverage or financial engineering.
- Finish with a rational, data-driven recommendation: bullish, bearish or neutral.

When giving your reasoning:
1. Explain the factors that most influenced the decision, positive and negative.
2. Apply at least two specific mental models.
3. Quote the numbers from the analysis (ROIC values, margin trends, FCF yield).
4. Say what you would avoid (invert the problem).
5. Write in Munger's direct, pithy conversational style.

Scores are on a 0-10 scale. A null value means the figure was not available.`

// jsonInstruction is appended for providers without schema enforcement
const jsonInstruction = `

Respond with a single JSON object of the form {"report": "<your evaluation in markdown>"} and nothing else.`

// outputSchema constrains the response to {"report": string}
var outputSchema = map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"report"},
	"properties": map[string]interface{}{
		"report": map[string]interface{}{
			"type":        "string",
			"description": "The investment evaluation in markdown, ending with a bullish, bearish or neutral recommendation",
		},
	},
}

// buildUserPrompt renders the analysis sections handed to the model
func buildUserPrompt(payload *models.AnalysisPayload) (string, error) {
	sections := []struct {
		title string
		value interface{}
	}{
		{"Overview", payload.Overview},
		{"Growth analysis", payload.Growth},
		{"Moat analysis", payload.Moat},
		{"Management analysis", payload.Management},
		{"Valuation analysis", payload.Valuation},
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Based on the following analysis, create a value investing evaluation for %s.\n", payload.Ticker)

	for _, section := range sections {
		data, err := json.MarshalIndent(section.value, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to encode %s: %w", strings.ToLower(section.title), err)
		}
		fmt.Fprintf(&b, "\n%s for %s:\n%s\n", section.title, payload.Ticker, data)
	}

	return b.String(), nil
}
