package orchestrator

import (
	contractx "github.com/coverdesk/coverdesk/agent/contract"
	nodex "github.com/coverdesk/coverdesk/agent/nodes"
)

// RouteTarget is the entry transition table: classifier label to first step.
//
// Both the general label and anything unrecognized fall through to the
// knowledge step. The general label therefore has no distinct path of its
// own; this mirrors the long-standing routing behavior and is kept on
// purpose pending a product decision (see DESIGN.md).
func RouteTarget(label contractx.RouteLabel) nodex.Step {
	switch label {
	case contractx.RouteCustomer:
		return nodex.StepCustomerLookup
	case contractx.RouteLead:
		return nodex.StepLeadSearch
	case contractx.RouteKnowledge:
		return nodex.StepKnowledge
	case contractx.RouteRecommendation:
		return nodex.StepSetRecommendationFlag
	default:
		return nodex.StepKnowledge
	}
}

// AfterCustomer decides the transition out of customer lookup: the
// recommendation sub-path continues to the knowledge step only when the flag
// is set and a profile was actually resolved; the recommendation step is
// never reached with an empty profile.
func AfterCustomer(st *nodex.RunState) nodex.Step {
	if st.RecommendationFlow && !st.Customer.Profile.IsZero() {
		return nodex.StepKnowledge
	}
	return nodex.StepAggregate
}

// AfterKnowledge decides the transition out of the knowledge step: the
// recommendation step runs only when the flag is set and both the cached
// product snippet and the customer profile are present.
func AfterKnowledge(st *nodex.RunState) nodex.Step {
	if st.RecommendationFlow && st.ProductsKB != "" && !st.Customer.Profile.IsZero() {
		return nodex.StepRecommend
	}
	return nodex.StepAggregate
}
