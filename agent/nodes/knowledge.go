package workflownode

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	contractx "github.com/coverdesk/coverdesk/agent/contract"
)

// ProductsOverviewQuery replaces the user's question on the recommendation
// flow so the knowledge step always returns the full product catalogue.
const ProductsOverviewQuery = "Tell me about all insurance products"

// Knowledge answers the utterance from the knowledge base. On the
// recommendation flow the query is overridden with the fixed products
// overview and the answer is cached for the recommendation step.
func Knowledge(ctx context.Context, in *RunState, answerer contractx.Answerer) (Delta, error) {
	query := in.Input
	if in.RecommendationFlow {
		query = ProductsOverviewQuery
	}

	answer, err := answerer.Answer(ctx, query)
	if err != nil {
		msg := fmt.Sprintf("knowledge lookup: %v", err)
		log.Warn().Msg(msg)
		return Delta{
			Knowledge:    knowledgePtr(contractx.KnowledgeOutcome{Status: contractx.OutcomeFailed}),
			ProductsKB:   stringPtr(""),
			ErrorMessage: stringPtr(msg),
		}, nil
	}

	status := contractx.OutcomeFound
	if answer.NoMatch {
		status = contractx.OutcomeNotFound
	}
	if answer.Fallback {
		log.Debug().Msg("knowledge answer served from canned fallback")
	}

	return Delta{
		Knowledge:  knowledgePtr(contractx.KnowledgeOutcome{Status: status, Answer: answer.Text}),
		ProductsKB: stringPtr(answer.Text),
	}, nil
}
