package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SeedCurrency is one currency entry of a seed file.
type SeedCurrency struct {
	ID       int64 `yaml:"id"`
	BuyRate  int64 `yaml:"buy_rate"`
	SellRate int64 `yaml:"sell_rate"`
}

// seedFile is the top-level layout of a seed file:
//
//	currencies:
//	  - id: 1
//	    buy_rate: 10
//	    sell_rate: 5
type seedFile struct {
	Currencies []SeedCurrency `yaml:"currencies"`
}

// LoadSeed reads a YAML seed file and expands ${VAR} environment variables
// before parsing. Range checks are left to currency registration.
func LoadSeed(path string) ([]SeedCurrency, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var f seedFile
	if err := yaml.Unmarshal([]byte(expanded), &f); err != nil {
		return nil, fmt.Errorf("parse seed yaml: %w", err)
	}
	return f.Currencies, nil
}
