package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/gridironhq/recruiting-ops/internal/engine"
)

// LoadCalculatorConfig loads the calculator policy for the planning cycle.
// With no path configured it returns the seed demo policy. The returned config
// is validated here so an inconsistent policy never reaches the engine.
func LoadCalculatorConfig(path string) (*engine.CalculatorConfig, error) {
	calcCfg := engine.DefaultConfig()

	if path != "" {
		v := viper.New()
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading calculator config %s: %w", path, err)
		}
		if err := v.Unmarshal(calcCfg); err != nil {
			return nil, fmt.Errorf("unable to decode calculator config %s: %w", path, err)
		}
	}

	if err := calcCfg.Validate(); err != nil {
		return nil, fmt.Errorf("calculator config failed validation: %w", err)
	}

	return calcCfg, nil
}
