package classifier

import (
	"testing"

	contractx "github.com/coverdesk/coverdesk/agent/contract"
)

func TestNormalizeLabel(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		raw  string
		want contractx.RouteLabel
	}{
		{"exact customer", "customer", contractx.RouteCustomer},
		{"uppercase with padding", "  LEAD \n", contractx.RouteLead},
		{"wrapped in prose", "The intent is: knowledge.", contractx.RouteKnowledge},
		{"recommendation wins over customer", "recommendation for the customer", contractx.RouteRecommendation},
		{"customer wins over lead", "customer lead", contractx.RouteCustomer},
		{"unknown output", "weather", contractx.RouteGeneral},
		{"empty output", "", contractx.RouteGeneral},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := NormalizeLabel(tc.raw); got != tc.want {
				t.Fatalf("NormalizeLabel(%q) = %q, want %q", tc.raw, got, tc.want)
			}
		})
	}
}
