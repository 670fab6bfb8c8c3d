package workflownode

import (
	"fmt"
	"strings"

	contractx "github.com/coverdesk/coverdesk/agent/contract"
)

const noInformationResponse = "I couldn't find relevant information for your query using the available tools. Please rephrase or provide more details."

// Phrases stripped from the customer block when it accompanies a
// recommendation; a model-rendered summary may refuse to recommend on its
// own, and that noise must not survive next to the actual recommendations.
var refusalPhrases = []string{
	"unable to recommend",
	"cannot recommend",
	"i am unable to",
	"i cannot recommend",
}

// Aggregate assembles the final response from whichever outcomes are
// populated. Ordering and suppression rules:
//
//  1. Recommendation flow with an OK recommendation: recommendation block
//     first, then the customer block with refusal lines stripped.
//  2. Otherwise: customer block (unless not found/failed), lead block (unless
//     empty), knowledge block (only outside the recommendation flow).
//  3. Nothing emitted and no error: a fixed no-information message.
//  4. A recorded error is prefixed as a warning, or stands alone when there
//     is no other content.
func Aggregate(in *RunState) (Delta, error) {
	var parts []string

	if in.RecommendationFlow && in.Recommendation.Status == contractx.RecommendationOK {
		parts = append(parts, "## Insurance Recommendations\n\n"+strings.TrimSpace(in.Recommendation.Text))
		if in.Customer.Status == contractx.OutcomeFound {
			if filtered := stripRefusalLines(in.Customer.Summary); filtered != "" {
				parts = append(parts, "## Customer Profile\n\n"+filtered)
			}
		}
		return finalize(in, parts), nil
	}

	if in.Customer.Status == contractx.OutcomeFound {
		parts = append(parts, "## Customer Information\n\n"+strings.TrimSpace(in.Customer.Summary))
	}
	if in.Leads.Status == contractx.OutcomeFound {
		parts = append(parts, "## Lead Information\n\n"+strings.TrimSpace(in.Leads.Summary))
	}
	if !in.RecommendationFlow && in.Knowledge.Status == contractx.OutcomeFound {
		parts = append(parts, "## Knowledge Base Info\n\n"+strings.TrimSpace(in.Knowledge.Answer))
	}

	return finalize(in, parts), nil
}

func finalize(in *RunState, parts []string) Delta {
	body := strings.Join(parts, "\n\n")

	switch {
	case body == "" && in.ErrorMessage == "":
		body = noInformationResponse
	case in.ErrorMessage != "" && body == "":
		body = warningLine(in.ErrorMessage)
	case in.ErrorMessage != "":
		body = warningLine(in.ErrorMessage) + "\n\n" + body
	}

	return Delta{FinalResponse: stringPtr(body)}
}

func warningLine(errMsg string) string {
	return fmt.Sprintf("**Warning:** an internal error occurred: %s", errMsg)
}

func stripRefusalLines(summary string) string {
	lines := strings.Split(summary, "\n")
	kept := lines[:0]
	for _, line := range lines {
		lower := strings.ToLower(line)
		refused := false
		for _, phrase := range refusalPhrases {
			if strings.Contains(lower, phrase) {
				refused = true
				break
			}
		}
		if !refused {
			kept = append(kept, line)
		}
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}
