package cmd

import (
	"fmt"

	"salescope/internal/dataset"
	"salescope/internal/pipeline"
)

// Shared filter flags used by analyze and summarize.
var (
	flagProduct  string
	flagRegion   string
	flagLocation string
	flagFrom     string
	flagTo       string
	flagRules    string
)

func criteriaFromFlags() pipeline.Criteria {
	return pipeline.Criteria{
		Product:  flagProduct,
		Region:   flagRegion,
		Location: flagLocation,
		From:     flagFrom,
		To:       flagTo,
	}
}

// loadSession reads the CSV at path into a fresh session, honoring a custom
// rules file from the --rules flag or config.
func loadSession(path string) (*dataset.Session, error) {
	rulesPath := flagRules
	if rulesPath == "" && cfg != nil {
		rulesPath = cfg.RulesFile
	}
	var rules pipeline.RuleTable
	if rulesPath != "" {
		t, err := pipeline.LoadRules(rulesPath)
		if err != nil {
			return nil, err
		}
		rules = t
	}
	t, err := dataset.ReadCSVFile(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	sess := dataset.NewSession(rules)
	sess.Load(t)
	return sess, nil
}
