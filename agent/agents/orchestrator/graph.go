package orchestrator

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"

	nodex "github.com/coverdesk/coverdesk/agent/nodes"
)

func (o *Orchestrator) compileRunGraph(
	ctx context.Context,
) (compose.Runnable[nodex.GraphInput, nodex.RunResult], error) {
	graph := compose.NewGraph[nodex.GraphInput, nodex.RunResult]()

	if err := graph.AddLambdaNode(string(nodex.StepRoute),
		compose.InvokableLambda(func(ctx context.Context, in nodex.GraphInput) (*nodex.RunState, error) {
			st, err := nodex.NewRunState(in.Text)
			if err != nil {
				return nil, err
			}
			delta, err := nodex.Route(ctx, st, o.classifier)
			if err != nil {
				return nil, err
			}
			st.Apply(nodex.StepRoute, delta)
			return st, nil
		}),
	); err != nil {
		return nil, fmt.Errorf("add node route: %w", err)
	}

	if err := graph.AddLambdaNode(string(nodex.StepSetRecommendationFlag),
		compose.InvokableLambda(func(ctx context.Context, st *nodex.RunState) (*nodex.RunState, error) {
			delta, err := nodex.SetRecommendationFlag(st)
			if err != nil {
				return nil, err
			}
			st.Apply(nodex.StepSetRecommendationFlag, delta)
			return st, nil
		}),
	); err != nil {
		return nil, fmt.Errorf("add node set_recommendation_flag: %w", err)
	}

	if err := graph.AddLambdaNode(string(nodex.StepCustomerLookup),
		compose.InvokableLambda(func(ctx context.Context, st *nodex.RunState) (*nodex.RunState, error) {
			delta, err := nodex.CustomerLookup(ctx, st, nodex.CustomerLookupDeps{
				Directory: o.customers,
				Extractor: o.extractor,
			})
			if err != nil {
				return nil, err
			}
			st.Apply(nodex.StepCustomerLookup, delta)
			return st, nil
		}),
	); err != nil {
		return nil, fmt.Errorf("add node customer_lookup: %w", err)
	}

	if err := graph.AddLambdaNode(string(nodex.StepLeadSearch),
		compose.InvokableLambda(func(ctx context.Context, st *nodex.RunState) (*nodex.RunState, error) {
			delta, err := nodex.LeadSearch(ctx, st, nodex.LeadSearchDeps{
				Planner:   o.leadPlanner,
				Directory: o.leads,
			})
			if err != nil {
				return nil, err
			}
			st.Apply(nodex.StepLeadSearch, delta)
			return st, nil
		}),
	); err != nil {
		return nil, fmt.Errorf("add node lead_search: %w", err)
	}

	if err := graph.AddLambdaNode(string(nodex.StepKnowledge),
		compose.InvokableLambda(func(ctx context.Context, st *nodex.RunState) (*nodex.RunState, error) {
			delta, err := nodex.Knowledge(ctx, st, o.answerer)
			if err != nil {
				return nil, err
			}
			st.Apply(nodex.StepKnowledge, delta)
			return st, nil
		}),
	); err != nil {
		return nil, fmt.Errorf("add node knowledge: %w", err)
	}

	if err := graph.AddLambdaNode(string(nodex.StepRecommend),
		compose.InvokableLambda(func(ctx context.Context, st *nodex.RunState) (*nodex.RunState, error) {
			delta, err := nodex.Recommend(st)
			if err != nil {
				return nil, err
			}
			st.Apply(nodex.StepRecommend, delta)
			return st, nil
		}),
	); err != nil {
		return nil, fmt.Errorf("add node recommend: %w", err)
	}

	if err := graph.AddLambdaNode(string(nodex.StepAggregate),
		compose.InvokableLambda(func(ctx context.Context, st *nodex.RunState) (nodex.RunResult, error) {
			delta, err := nodex.Aggregate(st)
			if err != nil {
				return nodex.RunResult{}, err
			}
			st.Apply(nodex.StepAggregate, delta)
			return st.Result(), nil
		}),
	); err != nil {
		return nil, fmt.Errorf("add node aggregate: %w", err)
	}

	routeBranch := compose.NewGraphBranch(
		func(ctx context.Context, st *nodex.RunState) (string, error) {
			return string(RouteTarget(st.Route)), nil
		},
		map[string]bool{
			string(nodex.StepCustomerLookup):        true,
			string(nodex.StepLeadSearch):            true,
			string(nodex.StepKnowledge):             true,
			string(nodex.StepSetRecommendationFlag): true,
		},
	)
	if err := graph.AddBranch(string(nodex.StepRoute), routeBranch); err != nil {
		return nil, fmt.Errorf("add route branch: %w", err)
	}

	customerBranch := compose.NewGraphBranch(
		func(ctx context.Context, st *nodex.RunState) (string, error) {
			return string(AfterCustomer(st)), nil
		},
		map[string]bool{
			string(nodex.StepKnowledge): true,
			string(nodex.StepAggregate): true,
		},
	)
	if err := graph.AddBranch(string(nodex.StepCustomerLookup), customerBranch); err != nil {
		return nil, fmt.Errorf("add customer branch: %w", err)
	}

	knowledgeBranch := compose.NewGraphBranch(
		func(ctx context.Context, st *nodex.RunState) (string, error) {
			return string(AfterKnowledge(st)), nil
		},
		map[string]bool{
			string(nodex.StepRecommend): true,
			string(nodex.StepAggregate): true,
		},
	)
	if err := graph.AddBranch(string(nodex.StepKnowledge), knowledgeBranch); err != nil {
		return nil, fmt.Errorf("add knowledge branch: %w", err)
	}

	edges := [][2]string{
		{compose.START, string(nodex.StepRoute)},
		{string(nodex.StepSetRecommendationFlag), string(nodex.StepCustomerLookup)},
		{string(nodex.StepLeadSearch), string(nodex.StepAggregate)},
		{string(nodex.StepRecommend), string(nodex.StepAggregate)},
		{string(nodex.StepAggregate), compose.END},
	}
	for _, edge := range edges {
		if err := graph.AddEdge(edge[0], edge[1]); err != nil {
			return nil, fmt.Errorf("add edge %s->%s: %w", edge[0], edge[1], err)
		}
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("orchestrator.run"))
	if err != nil {
		return nil, fmt.Errorf("compile workflow graph: %w", err)
	}
	return runner, nil
}
