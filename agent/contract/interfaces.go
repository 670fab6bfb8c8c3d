package contract

import "context"

// Classifier assigns one of the closed route labels to a user utterance.
// Implementations must degrade to RouteGeneral on unrecognized model output
// instead of failing; an error is reserved for the call itself failing.
type Classifier interface {
	Classify(ctx context.Context, text string) (RouteLabel, error)
}

// NameExtractor pulls a customer's full name out of free text. It returns an
// empty string when no full name is clearly present.
type NameExtractor interface {
	ExtractFullName(ctx context.Context, text string) (string, error)
}

// LeadPlanner turns a free-text request into structured search criteria.
// Unparseable model output is reported as ErrMalformedCriteria so callers can
// treat it as "no match" rather than a failure.
type LeadPlanner interface {
	PlanCriteria(ctx context.Context, text string) (LeadCriteria, error)
}

// CustomerDirectory resolves customers by id, email, name, or policy id.
// A zero CustomerProfile with nil error means not found.
type CustomerDirectory interface {
	FindCustomer(ctx context.Context, identifier string) (CustomerProfile, error)
}

type LeadDirectory interface {
	SearchLeads(ctx context.Context, criteria LeadCriteria) ([]Lead, error)
}

// Retriever performs similarity search over the knowledge-base index.
type Retriever interface {
	Search(ctx context.Context, query string, k int) ([]Snippet, error)
}

// Answerer is the knowledge agent: retrieval plus generation constrained to
// the retrieved context, with a canned fallback when generation is
// rate-limited.
type Answerer interface {
	Answer(ctx context.Context, query string) (Answer, error)
}
