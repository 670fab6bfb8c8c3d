// Package knowledge answers product questions by retrieving snippets from
// the knowledge base and generating a context-constrained reply.
package knowledge

import (
	"context"
	"errors"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	contractx "github.com/coverdesk/coverdesk/agent/contract"
	llmx "github.com/coverdesk/coverdesk/agent/llm"
	promptx "github.com/coverdesk/coverdesk/agent/prompt"
)

const topK = 5

type Answerer struct {
	retriever contractx.Retriever
	runner    compose.Runnable[map[string]any, *schema.Message]
}

func New(ctx context.Context, chatModel einomodel.BaseChatModel, retriever contractx.Retriever) (*Answerer, error) {
	if retriever == nil {
		return nil, fmt.Errorf("%w: knowledge answerer requires a retriever", contractx.ErrValidation)
	}
	prompts := promptx.LoadPromptSet()
	runner, err := llmx.CompileTextGraph(ctx, chatModel, prompts.Knowledge, "{question}", "knowledge.model_graph")
	if err != nil {
		return nil, fmt.Errorf("%w: compile knowledge graph: %v", contractx.ErrModelInvoke, err)
	}
	return &Answerer{retriever: retriever, runner: runner}, nil
}

// Answer retrieves the top matching snippets and generates an answer
// constrained to them. Quota and rate-limit failures, in either retrieval or
// generation, degrade to a canned answer rather than failing the run.
func (a *Answerer) Answer(ctx context.Context, query string) (contractx.Answer, error) {
	snippets, err := a.retriever.Search(ctx, query, topK)
	if err != nil {
		if isRateLimited(err) {
			return contractx.Answer{Text: fallbackAnswer(query), Fallback: true}, nil
		}
		return contractx.Answer{}, fmt.Errorf("knowledge base search: %w", err)
	}
	if len(snippets) == 0 {
		return contractx.Answer{
			Text:    fmt.Sprintf("No relevant information found in the knowledge base for %q.", query),
			NoMatch: true,
		}, nil
	}

	parts := make([]string, 0, len(snippets))
	for _, s := range snippets {
		parts = append(parts, s.Content)
	}
	out, err := a.runner.Invoke(ctx, map[string]any{
		"context":  strings.Join(parts, "\n\n"),
		"question": query,
	})
	if err != nil {
		if isRateLimited(err) {
			return contractx.Answer{Text: fallbackAnswer(query), Fallback: true}, nil
		}
		return contractx.Answer{}, fmt.Errorf("%w: knowledge generation: %v", contractx.ErrModelInvoke, err)
	}
	return contractx.Answer{Text: strings.TrimSpace(out.Content)}, nil
}

func isRateLimited(err error) bool {
	if errors.Is(err, contractx.ErrRateLimited) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "quota") ||
		strings.Contains(msg, "rate limit")
}
