package prompt

import (
	_ "embed"
	"strings"
)

var (
	//go:embed template/classifier.txt
	classifierRaw string

	//go:embed template/extractor.txt
	extractorRaw string

	//go:embed template/leads.txt
	leadsRaw string

	//go:embed template/knowledge.txt
	knowledgeRaw string
)

// PromptSet holds loaded prompt content.
type PromptSet struct {
	Classifier string
	Extractor  string
	Leads      string
	Knowledge  string
}

// LoadPromptSet returns a PromptSet with trimmed prompt strings. Safe to call
// concurrently; the embed is compile-time and trimming is cheap.
func LoadPromptSet() PromptSet {
	return PromptSet{
		Classifier: strings.TrimSpace(classifierRaw),
		Extractor:  strings.TrimSpace(extractorRaw),
		Leads:      strings.TrimSpace(leadsRaw),
		Knowledge:  strings.TrimSpace(knowledgeRaw),
	}
}
