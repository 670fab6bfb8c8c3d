// Package leadplanner translates a natural-language lead request into
// structured search criteria via a JSON-only model prompt.
package leadplanner

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	contractx "github.com/coverdesk/coverdesk/agent/contract"
	llmx "github.com/coverdesk/coverdesk/agent/llm"
	promptx "github.com/coverdesk/coverdesk/agent/prompt"
)

type Planner struct {
	runner compose.Runnable[map[string]any, *schema.Message]
}

func New(ctx context.Context, chatModel einomodel.BaseChatModel) (*Planner, error) {
	prompts := promptx.LoadPromptSet()
	runner, err := llmx.CompileTextGraph(ctx, chatModel, prompts.Leads, "{input}", "leadplanner.model_graph")
	if err != nil {
		return nil, fmt.Errorf("%w: compile lead planner graph: %v", contractx.ErrModelInvoke, err)
	}
	return &Planner{runner: runner}, nil
}

// PlanCriteria asks the model for criteria JSON and decodes it by hand so a
// malformed payload surfaces as ErrMalformedCriteria instead of a run error.
func (p *Planner) PlanCriteria(ctx context.Context, text string) (contractx.LeadCriteria, error) {
	out, err := p.runner.Invoke(ctx, map[string]any{"input": text})
	if err != nil {
		return contractx.LeadCriteria{}, fmt.Errorf("%w: plan lead criteria: %v", contractx.ErrModelInvoke, err)
	}

	payload := stripCodeFences(out.Content)
	var criteria contractx.LeadCriteria
	if err := json.Unmarshal([]byte(payload), &criteria); err != nil {
		return contractx.LeadCriteria{}, fmt.Errorf("%w: %v", contractx.ErrMalformedCriteria, err)
	}
	return criteria, nil
}

// stripCodeFences tolerates models that wrap the JSON in a markdown block.
func stripCodeFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	if idx := strings.LastIndex(s, "```"); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
