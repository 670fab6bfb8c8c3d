package workflownode

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	contractx "github.com/coverdesk/coverdesk/agent/contract"
)

type LeadSearchDeps struct {
	Planner   contractx.LeadPlanner
	Directory contractx.LeadDirectory
}

// LeadSearch extracts structured criteria from the utterance and filters the
// lead directory. Malformed criteria yields an empty result set, not an
// error; planner or directory failures are recorded and the run continues.
func LeadSearch(ctx context.Context, in *RunState, deps LeadSearchDeps) (Delta, error) {
	criteria, err := deps.Planner.PlanCriteria(ctx, in.Input)
	if err != nil {
		if errors.Is(err, contractx.ErrMalformedCriteria) {
			log.Debug().Err(err).Msg("lead criteria unparseable, treating as no match")
			return Delta{Leads: leadsPtr(contractx.LeadOutcome{
				Status:  contractx.OutcomeNotFound,
				Summary: noLeadsSummary(),
			})}, nil
		}
		return leadFailure("lead search: %v", err), nil
	}

	leads, err := deps.Directory.SearchLeads(ctx, criteria)
	if err != nil {
		return leadFailure("lead search: %v", err), nil
	}
	if len(leads) == 0 {
		return Delta{Leads: leadsPtr(contractx.LeadOutcome{
			Status:  contractx.OutcomeNotFound,
			Summary: noLeadsSummary(),
		})}, nil
	}

	return Delta{Leads: leadsPtr(contractx.LeadOutcome{
		Status:  contractx.OutcomeFound,
		Summary: RenderLeadSummary(leads),
		Count:   len(leads),
	})}, nil
}

func leadFailure(format string, args ...any) Delta {
	msg := fmt.Sprintf(format, args...)
	log.Warn().Msg(msg)
	return Delta{
		Leads:        leadsPtr(contractx.LeadOutcome{Status: contractx.OutcomeFailed}),
		ErrorMessage: stringPtr(msg),
	}
}

func noLeadsSummary() string {
	return "No leads matching the criteria were found."
}

// RenderLeadSummary formats matching leads one per line, preserving the
// directory's ordering.
func RenderLeadSummary(leads []contractx.Lead) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d matching lead(s):\n", len(leads))
	for _, lead := range leads {
		fmt.Fprintf(&b, "- %s (%s): score %d, interested in %s, %s, status %s",
			lead.Name, lead.ID, lead.Score, lead.Interest, lead.Area, lead.Status)
		if lead.Email != "" {
			fmt.Fprintf(&b, ", %s", lead.Email)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
