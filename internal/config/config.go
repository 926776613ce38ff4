// Package config loads startup engine configuration from a TOML file,
// providing the defaults UCI setoption commands subsequently override
// for the lifetime of the process.
package config

import (
	"github.com/BurntSushi/toml"
)

// Config is the engine's startup configuration.
type Config struct {
	Engine   EngineConfig   `toml:"engine"`
	Logging  LoggingConfig  `toml:"logging"`
	Training TrainingConfig `toml:"training"`
}

// EngineConfig mirrors the UCI options an engine exposes, used as their
// defaults before any "setoption" command arrives.
type EngineConfig struct {
	HashSizeMB    int    `toml:"hash_size_mb"`
	MultiPV       int    `toml:"multi_pv"`
	Ponder        bool   `toml:"ponder"`
	Evaluator     string `toml:"evaluator"`
	NNUEWeights   string `toml:"nnue_weights"`
	HandicapLevel int    `toml:"handicap_level"`
}

// LoggingConfig configures internal/logx.
type LoggingConfig struct {
	Level string `toml:"level"`
}

// TrainingConfig configures internal/trainingdata's optional
// badger-backed store for self-play data generation.
type TrainingConfig struct {
	Enabled bool   `toml:"enabled"`
	DBPath  string `toml:"db_path"`
}

// Default returns the configuration used when no file is supplied or a
// key is missing from one.
func Default() Config {
	return Config{
		Engine: EngineConfig{
			HashSizeMB:    64,
			MultiPV:       1,
			Ponder:        true,
			Evaluator:     "default",
			HandicapLevel: 0,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Training: TrainingConfig{
			Enabled: false,
			DBPath:  "trainingdata.db",
		},
	}
}

// Load reads and decodes path over Default's values: fields absent from
// the file keep their default.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
