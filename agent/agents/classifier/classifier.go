// Package classifier routes user utterances to one of the closed intent
// labels by delegating to a chat model constrained to emit a single keyword.
package classifier

import (
	"context"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	contractx "github.com/coverdesk/coverdesk/agent/contract"
	llmx "github.com/coverdesk/coverdesk/agent/llm"
	promptx "github.com/coverdesk/coverdesk/agent/prompt"
)

type Classifier struct {
	runner compose.Runnable[map[string]any, *schema.Message]
}

func New(ctx context.Context, chatModel einomodel.BaseChatModel) (*Classifier, error) {
	prompts := promptx.LoadPromptSet()
	runner, err := llmx.CompileTextGraph(ctx, chatModel, prompts.Classifier, "{input}", "classifier.model_graph")
	if err != nil {
		return nil, fmt.Errorf("%w: compile classifier graph: %v", contractx.ErrModelInvoke, err)
	}
	return &Classifier{runner: runner}, nil
}

func (c *Classifier) Classify(ctx context.Context, text string) (contractx.RouteLabel, error) {
	out, err := c.runner.Invoke(ctx, map[string]any{"input": text})
	if err != nil {
		return contractx.RouteUnset, fmt.Errorf("%w: classify: %v", contractx.ErrModelInvoke, err)
	}
	return NormalizeLabel(out.Content), nil
}

// NormalizeLabel maps raw model output onto the closed label set. Matching is
// by substring with recommendation checked first so "recommendation" never
// loses to an embedded "customer"; anything unrecognized degrades to general.
func NormalizeLabel(raw string) contractx.RouteLabel {
	resp := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.Contains(resp, string(contractx.RouteRecommendation)):
		return contractx.RouteRecommendation
	case strings.Contains(resp, string(contractx.RouteCustomer)):
		return contractx.RouteCustomer
	case strings.Contains(resp, string(contractx.RouteLead)):
		return contractx.RouteLead
	case strings.Contains(resp, string(contractx.RouteKnowledge)):
		return contractx.RouteKnowledge
	default:
		return contractx.RouteGeneral
	}
}
