package workflownode

import (
	"errors"
	"testing"

	contractx "github.com/coverdesk/coverdesk/agent/contract"
)

func TestNewRunStateTrimsInput(t *testing.T) {
	t.Parallel()

	st, err := NewRunState("  find customer CUST001  ")
	if err != nil {
		t.Fatalf("NewRunState: %v", err)
	}
	if st.Input != "find customer CUST001" {
		t.Fatalf("Input = %q, want trimmed text", st.Input)
	}
}

func TestNewRunStateRejectsEmpty(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", "   ", "\n\t"} {
		if _, err := NewRunState(input); !errors.Is(err, ErrEmptyInput) {
			t.Fatalf("NewRunState(%q) error = %v, want ErrEmptyInput", input, err)
		}
	}
}

func TestApplyMergesOnlySetFields(t *testing.T) {
	t.Parallel()

	st, err := NewRunState("hello")
	if err != nil {
		t.Fatalf("NewRunState: %v", err)
	}
	st.Apply(StepRoute, Delta{Route: labelPtr(contractx.RouteCustomer)})
	st.Apply(StepCustomerLookup, Delta{Customer: customerPtr(contractx.CustomerOutcome{
		Status:  contractx.OutcomeFound,
		Summary: "summary",
	})})

	if st.Route != contractx.RouteCustomer {
		t.Fatalf("Route = %q after unrelated delta", st.Route)
	}
	if st.Customer.Status != contractx.OutcomeFound {
		t.Fatalf("Customer.Status = %q", st.Customer.Status)
	}
	if st.Input != "hello" {
		t.Fatalf("Input clobbered: %q", st.Input)
	}
}

func TestApplyFirstErrorWins(t *testing.T) {
	t.Parallel()

	st, err := NewRunState("hello")
	if err != nil {
		t.Fatalf("NewRunState: %v", err)
	}
	st.Apply(StepCustomerLookup, Delta{ErrorMessage: stringPtr("first failure")})
	st.Apply(StepKnowledge, Delta{ErrorMessage: stringPtr("second failure")})

	if st.ErrorMessage != "first failure" {
		t.Fatalf("ErrorMessage = %q, want the first recorded error", st.ErrorMessage)
	}
}

func TestApplyRecordsTrace(t *testing.T) {
	t.Parallel()

	st, err := NewRunState("hello")
	if err != nil {
		t.Fatalf("NewRunState: %v", err)
	}
	st.Apply(StepRoute, Delta{})
	st.Apply(StepKnowledge, Delta{})
	st.Apply(StepAggregate, Delta{FinalResponse: stringPtr("done")})

	result := st.Result()
	want := []Step{StepRoute, StepKnowledge, StepAggregate}
	if len(result.Trace) != len(want) {
		t.Fatalf("Trace = %v, want %v", result.Trace, want)
	}
	for i := range want {
		if result.Trace[i] != want[i] {
			t.Fatalf("Trace[%d] = %q, want %q", i, result.Trace[i], want[i])
		}
	}
	if result.FinalResponse != "done" {
		t.Fatalf("FinalResponse = %q", result.FinalResponse)
	}
}
