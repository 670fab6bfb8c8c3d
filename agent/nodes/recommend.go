package workflownode

import (
	"github.com/rs/zerolog/log"

	contractx "github.com/coverdesk/coverdesk/agent/contract"
	recommendx "github.com/coverdesk/coverdesk/agent/recommend"
)

// Recommend runs the rule engine over the captured profile and cached product
// knowledge. The engine is pure; NoProfile/NoKnowledge are tagged outcomes,
// not errors, and aggregation suppresses them.
func Recommend(in *RunState) (Delta, error) {
	outcome := recommendx.Generate(in.Customer.Profile, in.ProductsKB)
	if outcome.Status != contractx.RecommendationOK {
		log.Debug().Str("status", string(outcome.Status)).Msg("recommendation not generated")
	}
	return Delta{Recommendation: recommendationPtr(outcome)}, nil
}
