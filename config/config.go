// Package config is additive sugar around the literal Config struct
// spec.md §6 names (the core algorithm never reads files itself): optional
// TOML loading for embedders that want file-based configuration, the same
// shape the teacher's own CLI config loading takes
// (modules/gcfg, github.com/BurntSushi/toml) over modules/diferenco's and
// motion's in-process parameters.
package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/kinetic-merge/kinetic-merge/motion/discovery"
)

// Cache holds approximate max-cost values for the two ristretto-backed
// caches spec.md §5 describes (the rolling-hash factory cache and the
// anchored-migration cache). Nothing in the module reads these values:
// fingerprint.NewFactory and anchor.NewCache build their caches with fixed
// sizes.
type Cache struct {
	RollingHashMaxCost int64 `toml:"rolling_hash_max_cost"`
	AnchorMaxCost      int64 `toml:"anchor_max_cost"`
}

// Config is the in-process configuration struct spec.md §6 names.
type Config struct {
	MinimumMatchSize                 int     `toml:"minimum_match_size"`
	ThresholdSizeFractionForMatching float64 `toml:"threshold_size_fraction_for_matching"`
	MinimumAmbiguousMatchSize        int     `toml:"minimum_ambiguous_match_size"`
	Cache                            Cache   `toml:"cache"`
}

// Default returns the tuned defaults: a minimum match size of 1 content
// unit, a 50% sure-fire window fraction (discovery.Thresholds's own
// default when left zero), and an ambiguous-match floor four times the
// plain minimum, so a raw two-or-three-unit coincidence isn't immediately
// escalated to an AdmissibleFailure.
func Default() Config {
	return Config{
		MinimumMatchSize:                 1,
		ThresholdSizeFractionForMatching: 0.5,
		MinimumAmbiguousMatchSize:        4,
		Cache: Cache{
			RollingHashMaxCost: 1 << 20,
			AnchorMaxCost:      1 << 20,
		},
	}
}

// Thresholds adapts Config to the discovery.Thresholds shape C4 takes.
func (c Config) Thresholds() discovery.Thresholds {
	return discovery.Thresholds{
		MinimumMatchSize:                 c.MinimumMatchSize,
		ThresholdSizeFractionForMatching: c.ThresholdSizeFractionForMatching,
		MinimumAmbiguousMatchSize:        c.MinimumAmbiguousMatchSize,
	}
}

// Load parses a TOML document into a Config, starting from Default() so an
// omitted key keeps its tuned default rather than zeroing out.
func Load(data []byte) (Config, error) {
	cfg := Default()
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile reads and parses a TOML configuration file.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return Load(data)
}
