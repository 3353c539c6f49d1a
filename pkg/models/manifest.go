package models

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parser is an interface that defines the contract for parsing label export files.
type Parser interface {
	ProcessBytes(data []byte, filename string) ([]*Label, error)
}

// Manifest represents the structure of the YAML manifest file.
type Manifest struct {
	YNAB      YNABConfig `yaml:"ynab"`
	LabelSets []LabelSet `yaml:"labels"`
}

// YNABConfig holds the YNAB specific configurations.
type YNABConfig struct {
	BudgetID string `yaml:"budget_id"`
	TokenEnv string `yaml:"token_env"`
}

// LabelSet represents a single label export to be matched against one account.
type LabelSet struct {
	FilePath  string `yaml:"file"`
	AccountID string `yaml:"account_id"`
}

// File returns the absolute path to the label file, expanding ~.
func (s *LabelSet) File() (string, error) {
	if strings.HasPrefix(s.FilePath, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, s.FilePath[2:]), nil
	}
	return s.FilePath, nil
}

// Labels reads the label file and uses the provided parser to return labels.
func (s *LabelSet) Labels(p Parser) ([]*Label, error) {
	filePath, err := s.File()
	if err != nil {
		return nil, err
	}

	fileBytes, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read label file %s: %w", filePath, err)
	}

	labels, err := p.ProcessBytes(fileBytes, filepath.Base(filePath))
	if err != nil {
		return nil, fmt.Errorf("failed to process label file %s: %w", filePath, err)
	}

	return labels, nil
}

// FromFile reads a manifest from a YAML file.
func FromFile(filePath string) (*Manifest, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var manifest Manifest
	err = yaml.Unmarshal(data, &manifest)
	if err != nil {
		return nil, err
	}

	if len(manifest.LabelSets) == 0 {
		return nil, fmt.Errorf("manifest has no label sets")
	}

	return &manifest, nil
}
