package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// HardMaxDifficulty is the length of a hex SHA-256 digest; no hash can carry
// more leading zeros than this.
const HardMaxDifficulty = 64

type LedgerConfig struct {
	StateFile     string
	Difficulty    uint
	MaxDifficulty uint
	TrackIndex    bool
}

func (c LedgerConfig) Validate() error {
	if c.StateFile == "" {
		return fmt.Errorf("missing state file")
	}
	if c.MaxDifficulty > HardMaxDifficulty {
		return fmt.Errorf("max difficulty %d exceeds %d", c.MaxDifficulty, HardMaxDifficulty)
	}
	if c.Difficulty > c.MaxDifficulty {
		return fmt.Errorf("difficulty %d exceeds max difficulty %d", c.Difficulty, c.MaxDifficulty)
	}
	return nil
}

func LoadLedgerConfigFromCLI() LedgerConfig {
	return LedgerConfig{
		StateFile:     viper.GetString("state"),
		Difficulty:    viper.GetUint("difficulty"),
		MaxDifficulty: viper.GetUint("max-difficulty"),
		TrackIndex:    viper.GetBool("track-index"),
	}
}
