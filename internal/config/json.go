package config

import (
	"github.com/spf13/viper"
)

// DefaultJSONOutput is where `export json` writes block/block_NNNNNNNNNN.json.
const DefaultJSONOutput = "out"

// JSONConfig configures the one-file-per-block JSON export.
type JSONConfig struct {
	Output string
}

func (c JSONConfig) Validate() error {
	return validateOutputDir(c.Output)
}

func LoadJSONConfigFromCLI() JSONConfig {
	return JSONConfig{
		Output: viper.GetString("json-out"),
	}
}
