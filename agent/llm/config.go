package llm

import (
	"fmt"
	"strings"
	"time"

	contractx "github.com/coverdesk/coverdesk/agent/contract"
	openrouterx "github.com/coverdesk/coverdesk/pkg/openrouter"
)

// Role identifies which model-backed component a chat model is built for.
type Role string

const (
	RoleClassifier Role = "classifier"
	RoleExtractor  Role = "extractor"
	RoleLeadPlan   Role = "lead_planner"
	RoleKnowledge  Role = "knowledge"
)

// Config selects models per role, with a shared default. Classification and
// extraction run at temperature 0 unless overridden so their output stays
// stable across identical inputs.
type Config struct {
	BaseURL            string        `envconfig:"BASE_URL" split_words:"true" default:"https://openrouter.ai/api/v1"`
	APIKey             string        `envconfig:"API_KEY" split_words:"true" required:"true"`
	Model              string        `envconfig:"MODEL" split_words:"true" required:"true"`
	MaxCompletionToken int           `envconfig:"MAX_COMPLETION_TOKEN" split_words:"true" default:"2000"`
	Temperature        float32       `envconfig:"TEMPERATURE" split_words:"true" default:"0"`
	Timeout            time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"30s"`

	ClassifierModel string `envconfig:"CLASSIFIER_MODEL" split_words:"true"`
	ExtractorModel  string `envconfig:"EXTRACTOR_MODEL" split_words:"true"`
	LeadModel       string `envconfig:"LEAD_MODEL" split_words:"true"`
	KnowledgeModel  string `envconfig:"KNOWLEDGE_MODEL" split_words:"true"`

	KnowledgeTemperature float32 `envconfig:"KNOWLEDGE_TEMPERATURE" split_words:"true" default:"-1"`
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("%w: openrouter api key is required", contractx.ErrValidation)
	}
	if strings.TrimSpace(c.Model) == "" {
		return fmt.Errorf("%w: default model is required", contractx.ErrValidation)
	}
	return nil
}

// OpenRouterFor resolves the model configuration for one role.
func (c Config) OpenRouterFor(role Role) openrouterx.Config {
	modelName := strings.TrimSpace(c.Model)
	temp := c.Temperature

	switch role {
	case RoleClassifier:
		if v := strings.TrimSpace(c.ClassifierModel); v != "" {
			modelName = v
		}
	case RoleExtractor:
		if v := strings.TrimSpace(c.ExtractorModel); v != "" {
			modelName = v
		}
	case RoleLeadPlan:
		if v := strings.TrimSpace(c.LeadModel); v != "" {
			modelName = v
		}
	case RoleKnowledge:
		if v := strings.TrimSpace(c.KnowledgeModel); v != "" {
			modelName = v
		}
		if c.KnowledgeTemperature >= 0 {
			temp = c.KnowledgeTemperature
		}
	}

	maxCompletionToken := c.MaxCompletionToken
	return openrouterx.Config{
		BaseURL:            strings.TrimSpace(c.BaseURL),
		APIKey:             strings.TrimSpace(c.APIKey),
		Model:              modelName,
		MaxCompletionToken: &maxCompletionToken,
		Temperature:        temp,
		Timeout:            c.Timeout,
	}
}
