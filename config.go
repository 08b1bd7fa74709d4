package earlyrepair

import (
	"time"

	"github.com/BurntSushi/toml"
)

// Config carries every explicit knob the core accepts (§6). There is
// no global/process-wide configuration anywhere in this module — a
// Config value is passed into every constructor that needs one, so the
// engine can be instantiated many times over with independent settings
// (§5).
type Config struct {
	// MaxPenalty caps any Earley state's penalty; states above it are
	// pruned from the chart (§4.3).
	MaxPenalty int
	// ParseTimeout bounds wall-clock time spent on one repair attempt
	// before the engine retries with a reduced penalty cap (§4.3).
	ParseTimeout time.Duration
	// MaxAttempts caps how many times the repair loop will relearn and
	// retry before giving up (§4.4).
	MaxAttempts int
	// Seed, when non-nil, makes tie-breaking during forest extraction
	// reproducible (§4.3, §9). A nil Seed uses a fresh source per
	// extraction, never a shared global generator.
	Seed *int64
}

// DefaultConfig returns the knob values named in §6: MaxPenalty 8,
// ParseTimeout 5s, MaxAttempts 5, no fixed Seed.
func DefaultConfig() *Config {
	return &Config{
		MaxPenalty:   8,
		ParseTimeout: 5 * time.Second,
		MaxAttempts:  5,
	}
}

// configFile is the on-disk TOML shape accepted by LoadConfigFile. Its
// fields are all optional; anything left unset keeps DefaultConfig's
// value.
type configFile struct {
	MaxPenalty      *int    `toml:"max_penalty"`
	ParseTimeoutSec *float64 `toml:"parse_timeout"`
	MaxAttempts     *int    `toml:"max_attempts"`
	Seed            *int64  `toml:"seed"`
}

// LoadConfigFile reads overrides from a TOML document at path, layered
// on top of DefaultConfig. This is purely an embedder convenience for
// file-based configuration (§6 only requires the four knobs to be
// explicit and passed in; it does not mandate a file format) — Config
// values built directly in code never touch the filesystem.
func LoadConfigFile(path string) (*Config, error) {
	var cf configFile
	if _, err := toml.DecodeFile(path, &cf); err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if cf.MaxPenalty != nil {
		cfg.MaxPenalty = *cf.MaxPenalty
	}
	if cf.ParseTimeoutSec != nil {
		cfg.ParseTimeout = time.Duration(*cf.ParseTimeoutSec * float64(time.Second))
	}
	if cf.MaxAttempts != nil {
		cfg.MaxAttempts = *cf.MaxAttempts
	}
	if cf.Seed != nil {
		cfg.Seed = cf.Seed
	}
	return cfg, nil
}
