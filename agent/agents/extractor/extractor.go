// Package extractor pulls a customer name out of free text when no
// structured identifier (email, customer ID) is present.
package extractor

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

// noneSentinel is what the model is instructed to emit when no name is found.
const noneSentinel = "NONE"

type Extractor struct {
	runner compose.Runnable[map[string]any, *schema.Message]
}

func New(ctx context.Context, chatModel einomodel.BaseChatModel) (*Extractor, error) {
	prompts := promptx.LoadPromptSet()
	runner, err := llmx.CompileTextGraph(ctx, chatModel, prompts.Extractor, "{input}", "extractor.model_graph")
	if err != nil {
		return nil, fmt.Errorf("%w: compile extractor graph: %v", contractx.ErrModelInvoke, err)
	}
	return &Extractor{runner: runner}, nil
}

// ExtractFullName returns the extracted full name, or "" when the model
// reports no name. Single-token answers are rejected as too ambiguous to
// look up.
func (e *Extractor) ExtractFullName(ctx context.Context, text string) (string, error) {
	out, err := e.runner.Invoke(ctx, map[string]any{"input": text})
	if err != nil {
		return "", fmt.Errorf("%w: extract name: %v", contractx.ErrModelInvoke, err)
	}
	name := strings.TrimSpace(out.Content)
	if strings.EqualFold(name, noneSentinel) {
		return "", nil
	}
	if len(strings.Fields(name)) < 2 {
		return "", nil
	}
	return name, nil
}
