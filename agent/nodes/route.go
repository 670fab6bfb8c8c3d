package workflownode

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	contractx "github.com/coverdesk/coverdesk/agent/contract"
)

// Route classifies the utterance into one of the closed route labels. A
// classifier failure is recorded as the run's error and the label degrades to
// general, which the transition table sends down the knowledge path.
func Route(ctx context.Context, in *RunState, classifier contractx.Classifier) (Delta, error) {
	label, err := classifier.Classify(ctx, in.Input)
	if err != nil {
		log.Warn().Err(err).Msg("intent classification failed, falling back to knowledge path")
		return Delta{
			Route:        labelPtr(contractx.RouteGeneral),
			ErrorMessage: stringPtr(fmt.Sprintf("intent classification failed: %v", err)),
		}, nil
	}

	log.Debug().Str("label", string(label)).Msg("intent classified")
	return Delta{Route: labelPtr(label)}, nil
}

// SetRecommendationFlag marks the run as a recommendation flow. Idempotent;
// it touches nothing else.
func SetRecommendationFlag(in *RunState) (Delta, error) {
	return Delta{RecommendationFlow: boolPtr(true)}, nil
}
