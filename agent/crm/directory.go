// Package crm provides the customer and lead directories backing the
// workflow. Directories come in two flavors: in-memory (seeded from embedded
// or on-disk JSON) and Postgres via bun.
package crm

import (
	"context"
	"strings"

	contractx "github.com/coverdesk/coverdesk/agent/contract"
)

// CustomerDirectory is an in-memory contract.CustomerDirectory.
type CustomerDirectory struct {
	customers []contractx.CustomerProfile
}

func NewCustomerDirectory(customers []contractx.CustomerProfile) *CustomerDirectory {
	return &CustomerDirectory{customers: customers}
}

// FindCustomer resolves an identifier against customer ID, email, name, or
// any held policy ID, all case-insensitive exact matches. A zero profile
// means no customer matched.
func (d *CustomerDirectory) FindCustomer(_ context.Context, identifier string) (contractx.CustomerProfile, error) {
	q := strings.ToLower(strings.TrimSpace(identifier))
	if q == "" {
		return contractx.CustomerProfile{}, nil
	}
	for _, c := range d.customers {
		if strings.ToLower(c.ID) == q ||
			strings.ToLower(c.Email) == q ||
			strings.ToLower(c.Name) == q {
			return c, nil
		}
		for _, p := range c.Policies {
			if strings.ToLower(p.PolicyID) == q {
				return c, nil
			}
		}
	}
	return contractx.CustomerProfile{}, nil
}

// LeadDirectory is an in-memory contract.LeadDirectory.
type LeadDirectory struct {
	leads []contractx.Lead
}

func NewLeadDirectory(leads []contractx.Lead) *LeadDirectory {
	return &LeadDirectory{leads: leads}
}

// SearchLeads returns all leads satisfying every present criterion,
// preserving directory order.
func (d *LeadDirectory) SearchLeads(_ context.Context, criteria contractx.LeadCriteria) ([]contractx.Lead, error) {
	var out []contractx.Lead
	for _, lead := range d.leads {
		if criteria.Matches(lead) {
			out = append(out, lead)
		}
	}
	return out, nil
}
