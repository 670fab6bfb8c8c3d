package orchestrator

import (
	"context"
	"errors"
	"strings"
	"testing"

	contractx "github.com/coverdesk/coverdesk/agent/contract"
	nodex "github.com/coverdesk/coverdesk/agent/nodes"
)

type fakeClassifier struct {
	label contractx.RouteLabel
	err   error
}

func (f *fakeClassifier) Classify(_ context.Context, _ string) (contractx.RouteLabel, error) {
	return f.label, f.err
}

type fakeExtractor struct {
	name string
}

func (f *fakeExtractor) ExtractFullName(_ context.Context, _ string) (string, error) {
	return f.name, nil
}

type fakePlanner struct {
	criteria contractx.LeadCriteria
	err      error
}

func (f *fakePlanner) PlanCriteria(_ context.Context, _ string) (contractx.LeadCriteria, error) {
	return f.criteria, f.err
}

type fakeCustomers struct {
	byIdentifier map[string]contractx.CustomerProfile
}

func (f *fakeCustomers) FindCustomer(_ context.Context, identifier string) (contractx.CustomerProfile, error) {
	return f.byIdentifier[strings.ToLower(identifier)], nil
}

type fakeLeads struct {
	leads []contractx.Lead
}

func (f *fakeLeads) SearchLeads(_ context.Context, criteria contractx.LeadCriteria) ([]contractx.Lead, error) {
	var out []contractx.Lead
	for _, lead := range f.leads {
		if criteria.Matches(lead) {
			out = append(out, lead)
		}
	}
	return out, nil
}

type fakeAnswerer struct {
	answer  contractx.Answer
	err     error
	queries []string
}

func (f *fakeAnswerer) Answer(_ context.Context, query string) (contractx.Answer, error) {
	f.queries = append(f.queries, query)
	return f.answer, f.err
}

type captureSink struct {
	records []RunRecord
}

func (c *captureSink) Publish(_ context.Context, rec RunRecord) error {
	c.records = append(c.records, rec)
	return nil
}

func johnSmith() contractx.CustomerProfile {
	return contractx.CustomerProfile{
		ID:      "CUST001",
		Name:    "John Smith",
		Email:   "john@example.com",
		Phone:   "+1-555-1234",
		Address: "123 Main St, Anytown, USA",
		Policies: []contractx.Policy{
			{PolicyID: "AUTO-001", Type: "Auto Insurance", Status: "Active", Premium: 1200},
		},
		History: "Claimed fender bender in 2022.",
	}
}

func newTestDeps() Deps {
	return Deps{
		Classifier:  &fakeClassifier{label: contractx.RouteKnowledge},
		Extractor:   &fakeExtractor{},
		LeadPlanner: &fakePlanner{},
		Customers: &fakeCustomers{byIdentifier: map[string]contractx.CustomerProfile{
			"cust001":          johnSmith(),
			"john@example.com": johnSmith(),
			"john smith":       johnSmith(),
		}},
		Leads: &fakeLeads{leads: []contractx.Lead{
			{ID: "LEAD001", Name: "Robert Garcia", Score: 85, Interest: "Auto Insurance", Area: "Texas", Status: contractx.LeadQualified},
		}},
		Answerer: &fakeAnswerer{answer: contractx.Answer{Text: "Our products: auto insurance, home insurance, life insurance, health insurance."}},
	}
}

func wantTrace(t *testing.T, got []nodex.Step, want ...nodex.Step) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("trace = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("trace[%d] = %q, want %q (full: %v)", i, got[i], want[i], got)
		}
	}
}

func TestRunCustomerLookupFlow(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	deps := newTestDeps()
	deps.Classifier = &fakeClassifier{label: contractx.RouteCustomer}
	answerer := deps.Answerer.(*fakeAnswerer)

	orch, err := New(deps)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	result, err := orch.Run(ctx, "Find customer CUST001")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.HasPrefix(result.FinalResponse, "## Customer Information") {
		t.Fatalf("unexpected response:\n%s", result.FinalResponse)
	}
	if !strings.Contains(result.FinalResponse, "John Smith") {
		t.Fatalf("missing customer name:\n%s", result.FinalResponse)
	}
	wantTrace(t, result.Trace, nodex.StepRoute, nodex.StepCustomerLookup, nodex.StepAggregate)
	if len(answerer.queries) != 0 {
		t.Fatalf("knowledge base must not run on the plain customer flow, got queries %v", answerer.queries)
	}
	if result.ErrorMessage != "" {
		t.Fatalf("unexpected error message %q", result.ErrorMessage)
	}
}

func TestRunLeadSearchFlow(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	deps := newTestDeps()
	deps.Classifier = &fakeClassifier{label: contractx.RouteLead}
	deps.LeadPlanner = &fakePlanner{criteria: contractx.LeadCriteria{Area: "Texas"}}

	orch, err := New(deps)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	result, err := orch.Run(ctx, "qualified leads in Texas")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.HasPrefix(result.FinalResponse, "## Lead Information") {
		t.Fatalf("unexpected response:\n%s", result.FinalResponse)
	}
	if !strings.Contains(result.FinalResponse, "Robert Garcia") {
		t.Fatalf("missing lead:\n%s", result.FinalResponse)
	}
	wantTrace(t, result.Trace, nodex.StepRoute, nodex.StepLeadSearch, nodex.StepAggregate)
}

func TestRunKnowledgeFlow(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	deps := newTestDeps()
	deps.Answerer = &fakeAnswerer{answer: contractx.Answer{Text: "A premium is what you pay for coverage."}}

	orch, err := New(deps)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	result, err := orch.Run(ctx, "What is a premium?")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.HasPrefix(result.FinalResponse, "## Knowledge Base Info") {
		t.Fatalf("unexpected response:\n%s", result.FinalResponse)
	}
	wantTrace(t, result.Trace, nodex.StepRoute, nodex.StepKnowledge, nodex.StepAggregate)
}

func TestRunRecommendationFlow(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	deps := newTestDeps()
	deps.Classifier = &fakeClassifier{label: contractx.RouteRecommendation}
	deps.Extractor = &fakeExtractor{name: "John Smith"}
	answerer := deps.Answerer.(*fakeAnswerer)

	orch, err := New(deps)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	result, err := orch.Run(ctx, "Recommend products for John Smith")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	wantTrace(t, result.Trace,
		nodex.StepRoute,
		nodex.StepSetRecommendationFlag,
		nodex.StepCustomerLookup,
		nodex.StepKnowledge,
		nodex.StepRecommend,
		nodex.StepAggregate,
	)
	if len(answerer.queries) != 1 || answerer.queries[0] != nodex.ProductsOverviewQuery {
		t.Fatalf("knowledge query = %v, want the fixed products overview", answerer.queries)
	}
	if !strings.HasPrefix(result.FinalResponse, "## Insurance Recommendations") {
		t.Fatalf("unexpected response:\n%s", result.FinalResponse)
	}
	if strings.Contains(result.FinalResponse, "- Auto Insurance:") {
		t.Fatalf("held product suggested:\n%s", result.FinalResponse)
	}
	for _, want := range []string{"- Home Insurance:", "- Life Insurance:", "- Health Insurance:", "## Customer Profile"} {
		if !strings.Contains(result.FinalResponse, want) {
			t.Fatalf("missing %q:\n%s", want, result.FinalResponse)
		}
	}
}

func TestRunRecommendationFlowUnknownCustomer(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	deps := newTestDeps()
	deps.Classifier = &fakeClassifier{label: contractx.RouteRecommendation}
	deps.Extractor = &fakeExtractor{name: "Jane Doe"}
	answerer := deps.Answerer.(*fakeAnswerer)

	orch, err := New(deps)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	result, err := orch.Run(ctx, "Recommend products for Jane Doe")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	wantTrace(t, result.Trace,
		nodex.StepRoute,
		nodex.StepSetRecommendationFlag,
		nodex.StepCustomerLookup,
		nodex.StepAggregate,
	)
	if len(answerer.queries) != 0 {
		t.Fatalf("knowledge must not run without a resolved profile, got %v", answerer.queries)
	}
	if strings.Contains(result.FinalResponse, "## Insurance Recommendations") {
		t.Fatalf("recommendations emitted for unknown customer:\n%s", result.FinalResponse)
	}
}

func TestRunClassifierFailureFallsBackToKnowledge(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	deps := newTestDeps()
	deps.Classifier = &fakeClassifier{err: errors.New("model unavailable")}
	deps.Answerer = &fakeAnswerer{answer: contractx.Answer{Text: "general product info"}}

	orch, err := New(deps)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	result, err := orch.Run(ctx, "hello there")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	wantTrace(t, result.Trace, nodex.StepRoute, nodex.StepKnowledge, nodex.StepAggregate)
	if result.ErrorMessage == "" || !strings.Contains(result.ErrorMessage, "intent classification failed") {
		t.Fatalf("error message = %q", result.ErrorMessage)
	}
	if !strings.HasPrefix(result.FinalResponse, "**Warning:**") {
		t.Fatalf("missing warning prefix:\n%s", result.FinalResponse)
	}
	if !strings.Contains(result.FinalResponse, "## Knowledge Base Info") {
		t.Fatalf("knowledge content dropped:\n%s", result.FinalResponse)
	}
}

func TestRunEmptyInput(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	orch, err := New(newTestDeps())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := orch.Run(ctx, "   "); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("Run on empty input error = %v, want ErrEmptyInput", err)
	}
}

func TestRunIsRepeatable(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	deps := newTestDeps()
	deps.Classifier = &fakeClassifier{label: contractx.RouteCustomer}

	orch, err := New(deps)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	first, err := orch.Run(ctx, "Find customer CUST001")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	second, err := orch.Run(ctx, "Find customer CUST001")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if first.FinalResponse != second.FinalResponse {
		t.Fatal("identical runs produced different responses")
	}
	wantTrace(t, second.Trace, first.Trace...)
}

func TestRunPublishesTrace(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	sink := &captureSink{}
	deps := newTestDeps()
	deps.Classifier = &fakeClassifier{label: contractx.RouteCustomer}
	deps.Trace = sink

	orch, err := New(deps)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := orch.Run(ctx, "Find customer CUST001"); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(sink.records) != 1 {
		t.Fatalf("published %d records, want 1", len(sink.records))
	}
	rec := sink.records[0]
	if rec.Input != "Find customer CUST001" {
		t.Fatalf("record input = %q", rec.Input)
	}
	if len(rec.Trace) == 0 || rec.StartedAt.IsZero() {
		t.Fatalf("incomplete record: %+v", rec)
	}
}

func TestNewRejectsMissingDeps(t *testing.T) {
	t.Parallel()

	deps := newTestDeps()
	deps.Answerer = nil
	if _, err := New(deps); err == nil {
		t.Fatal("New should reject missing answerer")
	}
}
