package contract

import "strings"

// RouteLabel is the closed label set emitted by the intent classifier.
type RouteLabel string

const (
	RouteUnset          RouteLabel = ""
	RouteCustomer       RouteLabel = "customer"
	RouteLead           RouteLabel = "lead"
	RouteKnowledge      RouteLabel = "knowledge"
	RouteRecommendation RouteLabel = "recommendation"
	RouteGeneral        RouteLabel = "general"
)

// AllRouteLabels lists every label the classifier is allowed to emit.
var AllRouteLabels = []RouteLabel{
	RouteCustomer,
	RouteLead,
	RouteKnowledge,
	RouteRecommendation,
	RouteGeneral,
}

type Policy struct {
	PolicyID string  `json:"policy_id"`
	Type     string  `json:"type"`
	Status   string  `json:"status"`
	Premium  float64 `json:"premium"`
}

// CustomerProfile is the structured CRM record for one customer.
// The zero value means "not found".
type CustomerProfile struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Phone    string   `json:"phone"`
	Address  string   `json:"address"`
	Policies []Policy `json:"policies"`
	History  string   `json:"history"`
}

func (p CustomerProfile) IsZero() bool {
	return p.ID == "" && p.Name == "" && p.Email == ""
}

// PolicyTypes returns the types of all policies the customer holds.
func (p CustomerProfile) PolicyTypes() []string {
	types := make([]string, 0, len(p.Policies))
	for _, policy := range p.Policies {
		types = append(types, policy.Type)
	}
	return types
}

// HoldsPolicyType reports whether the customer already holds a policy of the
// given type.
func (p CustomerProfile) HoldsPolicyType(policyType string) bool {
	for _, policy := range p.Policies {
		if policy.Type == policyType {
			return true
		}
	}
	return false
}

type LeadStatus string

const (
	LeadNew       LeadStatus = "New"
	LeadContacted LeadStatus = "Contacted"
	LeadQualified LeadStatus = "Qualified"
	LeadLost      LeadStatus = "Lost"
)

// Lead is read-only reference data about a sales prospect.
type Lead struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Score    int        `json:"score"`
	Interest string     `json:"interest"`
	Area     string     `json:"area"`
	Status   LeadStatus `json:"status"`
	Email    string     `json:"email"`
	Phone    string     `json:"phone"`
}

// LeadCriteria filters lead searches. Absent fields impose no constraint;
// the zero value matches every lead.
type LeadCriteria struct {
	ScoreMin *int   `json:"score_min,omitempty"`
	Interest string `json:"interest,omitempty"`
	Area     string `json:"area,omitempty"`
	Status   string `json:"status,omitempty"`
	Name     string `json:"name,omitempty"`
}

// Matches applies the conjunctive filter semantics: score_min is an inclusive
// lower bound, interest and name are case-insensitive substring matches, area
// and status are case-insensitive exact matches.
func (c LeadCriteria) Matches(lead Lead) bool {
	if c.ScoreMin != nil && lead.Score < *c.ScoreMin {
		return false
	}
	if c.Interest != "" && !strings.Contains(strings.ToLower(lead.Interest), strings.ToLower(c.Interest)) {
		return false
	}
	if c.Area != "" && !strings.EqualFold(c.Area, lead.Area) {
		return false
	}
	if c.Status != "" && !strings.EqualFold(c.Status, string(lead.Status)) {
		return false
	}
	if c.Name != "" && !strings.Contains(strings.ToLower(lead.Name), strings.ToLower(c.Name)) {
		return false
	}
	return true
}

// Snippet is one retrieved piece of knowledge-base context.
type Snippet struct {
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

// Answer is a knowledge agent response. NoMatch marks the "no information"
// case; Fallback marks answers served from the canned table after a
// rate-limited generation call.
type Answer struct {
	Text     string `json:"text"`
	NoMatch  bool   `json:"no_match,omitempty"`
	Fallback bool   `json:"fallback,omitempty"`
}

// OutcomeStatus tags a step result so aggregation can switch on it instead of
// matching sentinel substrings in display text.
type OutcomeStatus string

const (
	OutcomeUnset    OutcomeStatus = ""
	OutcomeFound    OutcomeStatus = "found"
	OutcomeNotFound OutcomeStatus = "not_found"
	OutcomeFailed   OutcomeStatus = "failed"
)

// CustomerOutcome is the customer lookup step result. Profile is populated
// only on the recommendation flow and only when a customer was resolved.
type CustomerOutcome struct {
	Status  OutcomeStatus   `json:"status"`
	Summary string          `json:"summary,omitempty"`
	Profile CustomerProfile `json:"profile,omitempty"`
}

type LeadOutcome struct {
	Status  OutcomeStatus `json:"status"`
	Summary string        `json:"summary,omitempty"`
	Count   int           `json:"count,omitempty"`
}

type KnowledgeOutcome struct {
	Status OutcomeStatus `json:"status"`
	Answer string        `json:"answer,omitempty"`
}

// RecommendationStatus tags the recommendation step result. The non-OK tags
// replace the original's sentinel-string contract.
type RecommendationStatus string

const (
	RecommendationUnset       RecommendationStatus = ""
	RecommendationOK          RecommendationStatus = "ok"
	RecommendationNoProfile   RecommendationStatus = "no_profile"
	RecommendationNoKnowledge RecommendationStatus = "no_knowledge"
)

type RecommendationOutcome struct {
	Status RecommendationStatus `json:"status"`
	Text   string               `json:"text,omitempty"`
}
