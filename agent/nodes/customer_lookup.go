package workflownode

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"

	contractx "github.com/coverdesk/coverdesk/agent/contract"
)

var (
	emailPattern      = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	customerIDPattern = regexp.MustCompile(`(?i)(cust\d{3})`)
)

const extractorNoneSentinel = "none"

type CustomerLookupDeps struct {
	Directory contractx.CustomerDirectory
	Extractor contractx.NameExtractor
}

// CustomerLookup resolves a customer identifier from the utterance and
// fetches the profile. Identifier resolution order: email-shaped substring,
// CUST-id substring, then an LLM full-name extraction accepted only when it
// yields at least two tokens and is not the NONE sentinel.
//
// Failures are recorded into the run's error message and the step reports a
// failed outcome; the run continues to aggregation either way.
func CustomerLookup(ctx context.Context, in *RunState, deps CustomerLookupDeps) (Delta, error) {
	identifier, err := resolveCustomerIdentifier(ctx, in.Input, deps.Extractor)
	if err != nil {
		return customerFailure("customer lookup: %v", err), nil
	}

	if identifier == "" {
		return Delta{Customer: customerPtr(contractx.CustomerOutcome{
			Status:  contractx.OutcomeNotFound,
			Summary: notFoundSummary(in.Input),
		})}, nil
	}

	profile, err := deps.Directory.FindCustomer(ctx, identifier)
	if err != nil {
		return customerFailure("customer lookup: %v", err), nil
	}
	if profile.IsZero() {
		return Delta{Customer: customerPtr(contractx.CustomerOutcome{
			Status:  contractx.OutcomeNotFound,
			Summary: notFoundSummary(identifier),
		})}, nil
	}

	outcome := contractx.CustomerOutcome{
		Status:  contractx.OutcomeFound,
		Summary: RenderCustomerSummary(profile),
	}
	if in.RecommendationFlow {
		outcome.Profile = profile
		log.Debug().Str("customer", profile.Name).Msg("captured profile for recommendation flow")
	}

	return Delta{Customer: customerPtr(outcome)}, nil
}

func resolveCustomerIdentifier(ctx context.Context, input string, extractor contractx.NameExtractor) (string, error) {
	if match := emailPattern.FindString(input); match != "" {
		return match, nil
	}
	if match := customerIDPattern.FindString(input); match != "" {
		return strings.ToUpper(match), nil
	}

	name, err := extractor.ExtractFullName(ctx, input)
	if err != nil {
		return "", err
	}
	name = strings.TrimSpace(name)
	if strings.EqualFold(name, extractorNoneSentinel) {
		return "", nil
	}
	if len(strings.Fields(name)) < 2 {
		return "", nil
	}
	return name, nil
}

func customerFailure(format string, args ...any) Delta {
	msg := fmt.Sprintf(format, args...)
	log.Warn().Msg(msg)
	return Delta{
		Customer:     customerPtr(contractx.CustomerOutcome{Status: contractx.OutcomeFailed}),
		ErrorMessage: stringPtr(msg),
	}
}

func notFoundSummary(identifier string) string {
	return fmt.Sprintf("Customer %q could not be found. Please double-check the ID, email, or full name.", identifier)
}

// RenderCustomerSummary formats a profile the way the reply presents it:
// contact information, policies, then history. Deterministic so repeated
// runs over unchanged data produce identical output.
func RenderCustomerSummary(profile contractx.CustomerProfile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**%s** (%s)\n\n", profile.Name, profile.ID)

	b.WriteString("**Contact Information**\n")
	if profile.Email != "" {
		fmt.Fprintf(&b, "- Email: %s\n", profile.Email)
	}
	if profile.Phone != "" {
		fmt.Fprintf(&b, "- Phone: %s\n", profile.Phone)
	}
	if profile.Address != "" {
		fmt.Fprintf(&b, "- Address: %s\n", profile.Address)
	}

	b.WriteString("\n**Policies**\n")
	if len(profile.Policies) == 0 {
		b.WriteString("- No active policies on file.\n")
	}
	for _, policy := range profile.Policies {
		fmt.Fprintf(&b, "- %s (%s): %s, premium $%.0f/year\n",
			policy.Type, policy.PolicyID, policy.Status, policy.Premium)
	}

	if profile.History != "" {
		fmt.Fprintf(&b, "\n**History**\n- %s\n", profile.History)
	}

	return strings.TrimRight(b.String(), "\n")
}
