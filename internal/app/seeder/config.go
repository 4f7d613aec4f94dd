package seeder

import (
	"fmt"
	"io"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"

	"github.com/heartmarshall/learning-oracle/internal/service/rules"
)

// Config holds seeder settings.
type Config struct {
	RulesPath string `yaml:"rules_path" env:"SEEDER_RULES_PATH" env-default:"./rules.yaml"`
	DryRun    bool   `yaml:"dry_run"    env:"SEEDER_DRY_RUN"`
}

// LoadConfig reads seeder settings from the environment.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("seeder config: read env: %w", err)
	}
	return &cfg, nil
}

// File is the layout of a rule definition file.
type File struct {
	Rules []rules.CreateRuleInput `yaml:"rules"`
}

// ReadRules parses rule definitions. Unknown keys are rejected so a typo in
// a condition name does not silently widen a rule.
func ReadRules(r io.Reader) ([]rules.CreateRuleInput, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("decode rules: %w", err)
	}
	return f.Rules, nil
}

// ReadRulesFile opens path and parses it with ReadRules.
func ReadRulesFile(path string) ([]rules.CreateRuleInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open rules file: %w", err)
	}
	defer f.Close()

	defs, err := ReadRules(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return defs, nil
}
