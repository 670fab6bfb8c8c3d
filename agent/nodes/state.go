package workflownode

import (
	"errors"
	"strings"

	contractx "github.com/coverdesk/coverdesk/agent/contract"
)

var ErrEmptyInput = errors.New("input text is empty")

// Step names one unit of work in the workflow graph.
type Step string

const (
	StepRoute                 Step = "route"
	StepSetRecommendationFlag Step = "set_recommendation_flag"
	StepCustomerLookup        Step = "customer_lookup"
	StepLeadSearch            Step = "lead_search"
	StepKnowledge             Step = "knowledge"
	StepRecommend             Step = "recommend"
	StepAggregate             Step = "aggregate"
)

type GraphInput struct {
	Text string
}

// RunResult is what the shell gets back for one run.
type RunResult struct {
	FinalResponse string `json:"final_response"`
	ErrorMessage  string `json:"error_message,omitempty"`
	Trace         []Step `json:"trace"`
}

// RunState is the per-run workflow state. It is created fresh for every user
// utterance and discarded after aggregation; steps never mutate it directly
// but return a Delta the executor applies.
type RunState struct {
	Input              string                          `json:"input"`
	Route              contractx.RouteLabel            `json:"route"`
	RecommendationFlow bool                            `json:"recommendation_flow"`
	Customer           contractx.CustomerOutcome       `json:"customer"`
	Leads              contractx.LeadOutcome           `json:"leads"`
	Knowledge          contractx.KnowledgeOutcome      `json:"knowledge"`
	Recommendation     contractx.RecommendationOutcome `json:"recommendation"`
	ProductsKB         string                          `json:"available_products_kb"`
	ErrorMessage       string                          `json:"error_message,omitempty"`
	FinalResponse      string                          `json:"final_response,omitempty"`
	Trace              []Step                          `json:"trace"`
}

func NewRunState(text string) (*RunState, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, ErrEmptyInput
	}
	return &RunState{Input: trimmed}, nil
}

// Delta is an explicit partial update produced by one step. Nil fields leave
// the state untouched, so a step can only clobber what it owns.
type Delta struct {
	Input              *string
	Route              *contractx.RouteLabel
	RecommendationFlow *bool
	Customer           *contractx.CustomerOutcome
	Leads              *contractx.LeadOutcome
	Knowledge          *contractx.KnowledgeOutcome
	Recommendation     *contractx.RecommendationOutcome
	ProductsKB         *string
	ErrorMessage       *string
	FinalResponse      *string
}

// Apply merges a step's delta into the state and records the step in the
// trace. The first recorded error wins; later step errors never clear or
// replace it.
func (s *RunState) Apply(step Step, d Delta) {
	if d.Input != nil {
		s.Input = *d.Input
	}
	if d.Route != nil {
		s.Route = *d.Route
	}
	if d.RecommendationFlow != nil {
		s.RecommendationFlow = *d.RecommendationFlow
	}
	if d.Customer != nil {
		s.Customer = *d.Customer
	}
	if d.Leads != nil {
		s.Leads = *d.Leads
	}
	if d.Knowledge != nil {
		s.Knowledge = *d.Knowledge
	}
	if d.Recommendation != nil {
		s.Recommendation = *d.Recommendation
	}
	if d.ProductsKB != nil {
		s.ProductsKB = *d.ProductsKB
	}
	if d.ErrorMessage != nil && s.ErrorMessage == "" {
		s.ErrorMessage = *d.ErrorMessage
	}
	if d.FinalResponse != nil {
		s.FinalResponse = *d.FinalResponse
	}
	s.Trace = append(s.Trace, step)
}

func (s *RunState) Result() RunResult {
	return RunResult{
		FinalResponse: s.FinalResponse,
		ErrorMessage:  s.ErrorMessage,
		Trace:         append([]Step(nil), s.Trace...),
	}
}

func stringPtr(v string) *string                                     { return &v }
func boolPtr(v bool) *bool                                           { return &v }
func labelPtr(v contractx.RouteLabel) *contractx.RouteLabel          { return &v }
func customerPtr(v contractx.CustomerOutcome) *contractx.CustomerOutcome {
	return &v
}
func leadsPtr(v contractx.LeadOutcome) *contractx.LeadOutcome           { return &v }
func knowledgePtr(v contractx.KnowledgeOutcome) *contractx.KnowledgeOutcome {
	return &v
}
func recommendationPtr(v contractx.RecommendationOutcome) *contractx.RecommendationOutcome {
	return &v
}
