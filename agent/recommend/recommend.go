// Package recommend is the deterministic rule engine that suggests product
// lines a customer does not yet hold, gated on the product being mentioned in
// the knowledge-base text handed to it.
package recommend

import (
	"fmt"
	"strings"

	contractx "github.com/coverdesk/coverdesk/agent/contract"
)

const (
	noProfileText   = "No valid customer profile available for recommendation."
	noKnowledgeText = "No product knowledge base information provided for recommendations."
)

type suggestion struct {
	product string
	line    string
	// requiresAddress gates Home Insurance on the profile carrying an address.
	requiresAddress bool
}

var suggestions = []suggestion{
	{
		product: "Auto Insurance",
		line:    "- Auto Insurance: To protect against financial loss in case of accidents.",
	},
	{
		product:         "Home Insurance",
		line:            "- Home Insurance: Essential for property owners to protect their residence and belongings.",
		requiresAddress: true,
	},
	{
		product: "Life Insurance",
		line:    "- Life Insurance: To provide financial security for loved ones in the future.",
	},
	{
		product: "Health Insurance",
		line:    "- Health Insurance: For covering medical expenses and ensuring access to quality healthcare.",
	},
}

// Generate suggests product lines the customer does not already hold. A
// product is suggested only when its name appears (case-insensitively) in the
// provided knowledge text. When fewer than two suggestions accumulate, a
// generic explore-other-products line is appended.
//
// Empty inputs return tagged NoProfile/NoKnowledge outcomes rather than
// errors; aggregation suppresses them.
func Generate(profile contractx.CustomerProfile, productsText string) contractx.RecommendationOutcome {
	if profile.IsZero() {
		return contractx.RecommendationOutcome{
			Status: contractx.RecommendationNoProfile,
			Text:   noProfileText,
		}
	}
	if strings.TrimSpace(productsText) == "" {
		return contractx.RecommendationOutcome{
			Status: contractx.RecommendationNoKnowledge,
			Text:   noKnowledgeText,
		}
	}

	held := profile.PolicyTypes()
	productsLower := strings.ToLower(productsText)

	var lines []string
	lines = append(lines, fmt.Sprintf("Based on %s's profile:", displayName(profile)))
	if len(held) > 0 {
		lines = append(lines, fmt.Sprintf("- Currently holds: %s", strings.Join(held, ", ")))
	} else {
		lines = append(lines, "- Does not currently hold any active policies with us.")
	}
	lines = append(lines, "", "Potential recommendations:")

	suggested := 0
	for _, s := range suggestions {
		if profile.HoldsPolicyType(s.product) {
			continue
		}
		if s.requiresAddress && strings.TrimSpace(profile.Address) == "" {
			continue
		}
		if !strings.Contains(productsLower, strings.ToLower(s.product)) {
			continue
		}
		lines = append(lines, s.line)
		suggested++
	}

	if suggested < 2 {
		lines = append(lines,
			"- You might be interested in exploring our general range of insurance products such as Health, Life, or Travel insurance.",
			"  For more detailed information, please specify your interests.")
	}

	return contractx.RecommendationOutcome{
		Status: contractx.RecommendationOK,
		Text:   strings.Join(lines, "\n"),
	}
}

func displayName(profile contractx.CustomerProfile) string {
	if strings.TrimSpace(profile.Name) == "" {
		return "customer"
	}
	return profile.Name
}
