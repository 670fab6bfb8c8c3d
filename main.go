package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/rs/zerolog/log"

	classifierx "github.com/coverdesk/coverdesk/agent/agents/classifier"
	extractorx "github.com/coverdesk/coverdesk/agent/agents/extractor"
	knowledgex "github.com/coverdesk/coverdesk/agent/agents/knowledge"
	leadplannerx "github.com/coverdesk/coverdesk/agent/agents/leadplanner"
	"github.com/coverdesk/coverdesk/agent/agents/orchestrator"
	contractx "github.com/coverdesk/coverdesk/agent/contract"
	"github.com/coverdesk/coverdesk/agent/crm"
	"github.com/coverdesk/coverdesk/agent/kb"
	llmx "github.com/coverdesk/coverdesk/agent/llm"
	statex "github.com/coverdesk/coverdesk/agent/state"
	configx "github.com/coverdesk/coverdesk/pkg/config"
	_ "github.com/coverdesk/coverdesk/pkg/logger/autoload"
	openrouterx "github.com/coverdesk/coverdesk/pkg/openrouter"
	tracesinkx "github.com/coverdesk/coverdesk/pkg/tracesink"
)

type AppConfig struct {
	SessionID      string `envconfig:"SESSION_ID" split_words:"true" default:"local"`
	CustomersFile  string `envconfig:"CUSTOMERS_FILE" split_words:"true"`
	LeadsFile      string `envconfig:"LEADS_FILE" split_words:"true"`
	PostgresDSN    string `envconfig:"POSTGRES_DSN" split_words:"true"`
	EmbeddingModel string `envconfig:"EMBEDDING_MODEL" split_words:"true"`

	UpstashURL   string `envconfig:"UPSTASH_REDIS_URL" split_words:"true"`
	UpstashToken string `envconfig:"UPSTASH_REDIS_TOKEN" split_words:"true"`
}

func main() {
	ctx := context.Background()

	appCfg := configx.MustNew[AppConfig]("")
	llmCfg := configx.MustNew[llmx.Config]("OPENROUTER")
	if err := llmCfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid model configuration")
	}

	orch, err := buildOrchestrator(ctx, appCfg, llmCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("build orchestrator")
	}

	store := buildTranscriptStore(appCfg)
	runShell(ctx, orch, store, appCfg.SessionID)
}

func buildOrchestrator(ctx context.Context, appCfg *AppConfig, llmCfg *llmx.Config) (*orchestrator.Orchestrator, error) {
	classifierModel, err := modelFor(ctx, llmCfg, llmx.RoleClassifier)
	if err != nil {
		return nil, err
	}
	classifier, err := classifierx.New(ctx, classifierModel)
	if err != nil {
		return nil, err
	}

	extractorModel, err := modelFor(ctx, llmCfg, llmx.RoleExtractor)
	if err != nil {
		return nil, err
	}
	extractor, err := extractorx.New(ctx, extractorModel)
	if err != nil {
		return nil, err
	}

	leadModel, err := modelFor(ctx, llmCfg, llmx.RoleLeadPlan)
	if err != nil {
		return nil, err
	}
	planner, err := leadplannerx.New(ctx, leadModel)
	if err != nil {
		return nil, err
	}

	customers, leads, err := buildDirectories(appCfg)
	if err != nil {
		return nil, err
	}

	answerer, err := buildAnswerer(ctx, appCfg, llmCfg)
	if err != nil {
		return nil, err
	}

	deps := orchestrator.Deps{
		Classifier:  classifier,
		Extractor:   extractor,
		LeadPlanner: planner,
		Customers:   customers,
		Leads:       leads,
		Answerer:    answerer,
	}

	traceCfg := configx.MustNew[tracesinkx.Config]("KAFKA")
	if traceCfg.Enabled() {
		sink, err := tracesinkx.NewKafkaSink(*traceCfg)
		if err != nil {
			return nil, fmt.Errorf("build kafka trace sink: %w", err)
		}
		deps.Trace = sink
		log.Info().Str("topic", traceCfg.Topic).Msg("run traces will be published to kafka")
	}

	return orchestrator.New(deps)
}

func modelFor(ctx context.Context, cfg *llmx.Config, role llmx.Role) (einomodel.BaseChatModel, error) {
	roleCfg := cfg.OpenRouterFor(role)
	m, err := roleCfg.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("build %s model: %w", role, err)
	}
	return m, nil
}

func buildDirectories(appCfg *AppConfig) (contractx.CustomerDirectory, contractx.LeadDirectory, error) {
	if strings.TrimSpace(appCfg.PostgresDSN) != "" {
		db := crm.OpenPostgres(appCfg.PostgresDSN)
		dir := crm.NewPostgresDirectory(db)
		log.Info().Msg("using postgres crm directories")
		return dir, dir, nil
	}

	customers, err := loadCustomers(appCfg.CustomersFile)
	if err != nil {
		return nil, nil, err
	}
	leads, err := loadLeads(appCfg.LeadsFile)
	if err != nil {
		return nil, nil, err
	}
	return crm.NewCustomerDirectory(customers), crm.NewLeadDirectory(leads), nil
}

func loadCustomers(path string) ([]contractx.CustomerProfile, error) {
	if strings.TrimSpace(path) != "" {
		return crm.LoadCustomersFile(path)
	}
	return crm.DefaultCustomers()
}

func loadLeads(path string) ([]contractx.Lead, error) {
	if strings.TrimSpace(path) != "" {
		return crm.LoadLeadsFile(path)
	}
	return crm.DefaultLeads()
}

func buildAnswerer(ctx context.Context, appCfg *AppConfig, llmCfg *llmx.Config) (contractx.Answerer, error) {
	knowledgeCfg := llmCfg.OpenRouterFor(llmx.RoleKnowledge)
	client := openrouterx.NewClient(knowledgeCfg)
	if client == nil {
		return nil, errors.New("embeddings client requires an api key")
	}
	embedder, err := kb.NewOpenAIEmbedder(client, appCfg.EmbeddingModel)
	if err != nil {
		return nil, err
	}
	index, err := kb.NewIndex(embedder)
	if err != nil {
		return nil, err
	}

	corpus, err := kb.DefaultCorpus()
	if err != nil {
		return nil, err
	}
	chunks, err := index.AddDocument(ctx, corpus)
	if err != nil {
		return nil, fmt.Errorf("ingest knowledge base: %w", err)
	}
	log.Info().Int("chunks", chunks).Msg("knowledge base ingested")

	knowledgeModel, err := knowledgeCfg.New(ctx)
	if err != nil {
		return nil, err
	}
	return knowledgex.New(ctx, knowledgeModel, index)
}

func buildTranscriptStore(appCfg *AppConfig) statex.Store {
	if strings.TrimSpace(appCfg.UpstashURL) == "" || strings.TrimSpace(appCfg.UpstashToken) == "" {
		return statex.NewMemoryStore()
	}
	store, err := statex.NewUpstashRedisStore(statex.UpstashRedisConfig{
		URL:     appCfg.UpstashURL,
		Token:   appCfg.UpstashToken,
		Timeout: 10 * time.Second,
	})
	if err != nil {
		log.Warn().Err(err).Msg("upstash store unavailable, falling back to memory")
		return statex.NewMemoryStore()
	}
	return store
}

func runShell(ctx context.Context, orch *orchestrator.Orchestrator, store statex.Store, sessionID string) {
	transcript, err := store.Load(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, statex.ErrTranscriptNotFound) {
			log.Warn().Err(err).Msg("load transcript")
		}
		transcript, err = statex.NewTranscript(sessionID)
		if err != nil {
			log.Fatal().Err(err).Msg("create transcript")
		}
	}

	fmt.Println("coverdesk assistant. Type a question, or 'exit' to quit.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}

		result, err := orch.Run(ctx, line)
		if err != nil {
			if errors.Is(err, orchestrator.ErrEmptyInput) {
				continue
			}
			log.Error().Err(err).Msg("run failed")
			continue
		}

		fmt.Println(result.FinalResponse)
		fmt.Println()

		transcript.Append(statex.Entry{Input: line, Response: result.FinalResponse})
		if err := store.Save(ctx, transcript); err != nil {
			log.Warn().Err(err).Msg("save transcript")
		}
	}
}
