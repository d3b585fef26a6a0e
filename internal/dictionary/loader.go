package dictionary

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tezkor/menu-tracker/constants"
)

// fileFormat is the shape of an alias override file:
//
//	aliases:
//	  price: ["прайс", "narxi"]
//	  weight: ["gramm"]
//
// Keys must be canonical field ids; listed aliases are appended to the
// built-in synonym sets.
type fileFormat struct {
	Aliases map[string][]string `yaml:"aliases" json:"aliases"`
}

// Load returns the default dictionary, extended with the aliases from the
// given YAML file when path is non-empty. The file is validated against a JSON
// schema before use so a typoed field id fails loudly instead of silently
// dropping aliases.
func Load(path string) (*Dictionary, error) {
	if path == "" {
		return Default(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dictionary file: %w", err)
	}

	var cfg fileFormat
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse dictionary file: %w", err)
	}
	if err := validateOverrides(cfg); err != nil {
		return nil, fmt.Errorf("dictionary file %s: %w", path, err)
	}

	merged := make(map[constants.FieldID][]string, len(defaultAliases))
	for f, as := range defaultAliases {
		merged[f] = append(merged[f], as...)
	}
	for id, extra := range cfg.Aliases {
		merged[constants.FieldID(id)] = append(merged[constants.FieldID(id)], extra...)
	}
	return build(merged), nil
}
