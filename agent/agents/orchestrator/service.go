// Package orchestrator wires the workflow graph: an intent router, the
// per-branch agent steps, and the terminal aggregation step, threaded by one
// per-run state record.
package orchestrator

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/cloudwego/eino/compose"
	"github.com/rs/zerolog/log"

	contractx "github.com/coverdesk/coverdesk/agent/contract"
	nodex "github.com/coverdesk/coverdesk/agent/nodes"
)

var ErrEmptyInput = nodex.ErrEmptyInput

// RunRecord is the trace published after a completed run.
type RunRecord struct {
	Input         string       `json:"input"`
	FinalResponse string       `json:"final_response"`
	ErrorMessage  string       `json:"error_message,omitempty"`
	Trace         []nodex.Step `json:"trace"`
	StartedAt     time.Time    `json:"started_at"`
	Duration      time.Duration `json:"duration"`
}

// TraceSink receives completed run records. Publishing is best-effort; a
// sink failure never fails the run.
type TraceSink interface {
	Publish(ctx context.Context, rec RunRecord) error
}

type Deps struct {
	Classifier  contractx.Classifier
	Extractor   contractx.NameExtractor
	LeadPlanner contractx.LeadPlanner
	Customers   contractx.CustomerDirectory
	Leads       contractx.LeadDirectory
	Answerer    contractx.Answerer

	// Trace is optional.
	Trace TraceSink
}

type Orchestrator struct {
	classifier  contractx.Classifier
	extractor   contractx.NameExtractor
	leadPlanner contractx.LeadPlanner
	customers   contractx.CustomerDirectory
	leads       contractx.LeadDirectory
	answerer    contractx.Answerer
	trace       TraceSink

	graphRunner compose.Runnable[nodex.GraphInput, nodex.RunResult]

	now func() time.Time
}

func New(deps Deps) (*Orchestrator, error) {
	if deps.Classifier == nil {
		return nil, errors.New("classifier is required")
	}
	if deps.Extractor == nil {
		return nil, errors.New("name extractor is required")
	}
	if deps.LeadPlanner == nil {
		return nil, errors.New("lead planner is required")
	}
	if deps.Customers == nil {
		return nil, errors.New("customer directory is required")
	}
	if deps.Leads == nil {
		return nil, errors.New("lead directory is required")
	}
	if deps.Answerer == nil {
		return nil, errors.New("knowledge answerer is required")
	}

	o := &Orchestrator{
		classifier:  deps.Classifier,
		extractor:   deps.Extractor,
		leadPlanner: deps.LeadPlanner,
		customers:   deps.Customers,
		leads:       deps.Leads,
		answerer:    deps.Answerer,
		trace:       deps.Trace,
		now:         time.Now,
	}

	graphRunner, err := o.compileRunGraph(context.Background())
	if err != nil {
		return nil, err
	}
	o.graphRunner = graphRunner

	return o, nil
}

// Run executes one workflow run for a single user utterance. Step failures
// are absorbed into the result's error message; the returned error covers
// only entry validation and graph-level failures.
func (o *Orchestrator) Run(ctx context.Context, text string) (nodex.RunResult, error) {
	if strings.TrimSpace(text) == "" {
		return nodex.RunResult{}, ErrEmptyInput
	}
	startedAt := o.now()

	out, err := o.graphRunner.Invoke(ctx, nodex.GraphInput{Text: text})
	if err != nil {
		return nodex.RunResult{}, err
	}

	o.publishTrace(ctx, text, out, startedAt)
	return out, nil
}

func (o *Orchestrator) publishTrace(ctx context.Context, input string, out nodex.RunResult, startedAt time.Time) {
	if o.trace == nil {
		return
	}
	rec := RunRecord{
		Input:         input,
		FinalResponse: out.FinalResponse,
		ErrorMessage:  out.ErrorMessage,
		Trace:         out.Trace,
		StartedAt:     startedAt.UTC(),
		Duration:      o.now().Sub(startedAt),
	}
	if err := o.trace.Publish(ctx, rec); err != nil {
		log.Warn().Err(err).Msg("publish run trace failed")
	}
}
