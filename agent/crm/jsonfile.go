package crm

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"

	contractx "github.com/coverdesk/coverdesk/agent/contract"
)

//go:embed data/customers.json data/leads.json
var sampleData embed.FS

// DefaultCustomers returns the embedded sample customer records.
func DefaultCustomers() ([]contractx.CustomerProfile, error) {
	raw, err := sampleData.ReadFile("data/customers.json")
	if err != nil {
		return nil, fmt.Errorf("read embedded customers: %w", err)
	}
	var customers []contractx.CustomerProfile
	if err := json.Unmarshal(raw, &customers); err != nil {
		return nil, fmt.Errorf("decode embedded customers: %w", err)
	}
	return customers, nil
}

// DefaultLeads returns the embedded sample lead records.
func DefaultLeads() ([]contractx.Lead, error) {
	raw, err := sampleData.ReadFile("data/leads.json")
	if err != nil {
		return nil, fmt.Errorf("read embedded leads: %w", err)
	}
	var leads []contractx.Lead
	if err := json.Unmarshal(raw, &leads); err != nil {
		return nil, fmt.Errorf("decode embedded leads: %w", err)
	}
	return leads, nil
}

// LoadCustomersFile reads customer records from a JSON file on disk.
func LoadCustomersFile(path string) ([]contractx.CustomerProfile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read customers file %s: %w", path, err)
	}
	var customers []contractx.CustomerProfile
	if err := json.Unmarshal(raw, &customers); err != nil {
		return nil, fmt.Errorf("decode customers file %s: %w", path, err)
	}
	return customers, nil
}

// LoadLeadsFile reads lead records from a JSON file on disk.
func LoadLeadsFile(path string) ([]contractx.Lead, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read leads file %s: %w", path, err)
	}
	var leads []contractx.Lead
	if err := json.Unmarshal(raw, &leads); err != nil {
		return nil, fmt.Errorf("decode leads file %s: %w", path, err)
	}
	return leads, nil
}
