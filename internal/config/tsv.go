package config

import (
	"github.com/spf13/viper"
)

// DefaultTSVOutput is where `export tsv` writes blocks.tsv and
// transactions.tsv.
const DefaultTSVOutput = "tsv"

// TSVConfig configures the blocks.tsv / transactions.tsv export.
type TSVConfig struct {
	Output string
}

func (c TSVConfig) Validate() error {
	return validateOutputDir(c.Output)
}

func LoadTSVConfigFromCLI() TSVConfig {
	return TSVConfig{
		Output: viper.GetString("tsv-out"),
	}
}
