// Package config loads and saves decoding.Config from/to YAML, the way
// the teacher's pkg/util.ReadConfig reaches for viper, generalized here
// to a per-call loader instead of a package-level viper singleton, per
// spec.md §9's immutable-configuration redesign.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/openlr-go/dereferencer/pkg/decoding"
	"github.com/openlr-go/dereferencer/pkg/openlr"
)

// fileConfig is the on-disk shape of a decoding.Config. TolerateLFRC is
// expressed with plain integer keys/values since YAML map keys can't be
// openlr.FRC directly through mapstructure.
type fileConfig struct {
	SearchRadius       float64     `mapstructure:"search_radius" yaml:"search_radius" validate:"gt=0"`
	GeoWeight          float64     `mapstructure:"geo_weight" yaml:"geo_weight" validate:"gte=0"`
	FRCWeight          float64     `mapstructure:"frc_weight" yaml:"frc_weight" validate:"gte=0"`
	FOWWeight          float64     `mapstructure:"fow_weight" yaml:"fow_weight" validate:"gte=0"`
	BearWeight         float64     `mapstructure:"bear_weight" yaml:"bear_weight" validate:"gte=0"`
	MinScore           float64     `mapstructure:"min_score" yaml:"min_score" validate:"gte=0,lte=1"`
	MaxDNPDeviationRel float64     `mapstructure:"max_dnp_deviation_rel" yaml:"max_dnp_deviation_rel" validate:"gte=0"`
	MaxDNPDeviationAbs float64     `mapstructure:"max_dnp_deviation_abs" yaml:"max_dnp_deviation_abs" validate:"gte=0"`
	BearDist           float64     `mapstructure:"bear_dist" yaml:"bear_dist" validate:"gt=0"`
	CandidateThreshold float64     `mapstructure:"candidate_threshold" yaml:"candidate_threshold" validate:"gte=0"`
	MaxBearDeviation   float64     `mapstructure:"max_bear_deviation" yaml:"max_bear_deviation" validate:"gte=0,lte=180"`
	TolerateLFRC       map[int]int `mapstructure:"tolerated_lfrc" yaml:"tolerated_lfrc"`
}

func fromDecoding(cfg decoding.Config) fileConfig {
	tolerate := make(map[int]int, len(cfg.TolerateLFRC))
	for frc, ceiling := range cfg.TolerateLFRC {
		tolerate[int(frc)] = int(ceiling)
	}
	return fileConfig{
		SearchRadius:       cfg.SearchRadius,
		GeoWeight:          cfg.GeoWeight,
		FRCWeight:          cfg.FRCWeight,
		FOWWeight:          cfg.FOWWeight,
		BearWeight:         cfg.BearWeight,
		MinScore:           cfg.MinScore,
		MaxDNPDeviationRel: cfg.MaxDNPDeviationRel,
		MaxDNPDeviationAbs: cfg.MaxDNPDeviationAbs,
		BearDist:           cfg.BearDist,
		CandidateThreshold: cfg.CandidateThreshold,
		MaxBearDeviation:   cfg.MaxBearDeviation,
		TolerateLFRC:       tolerate,
	}
}

func (fc fileConfig) toDecoding() decoding.Config {
	cfg := decoding.DefaultConfig()
	cfg.SearchRadius = fc.SearchRadius
	cfg.GeoWeight = fc.GeoWeight
	cfg.FRCWeight = fc.FRCWeight
	cfg.FOWWeight = fc.FOWWeight
	cfg.BearWeight = fc.BearWeight
	cfg.MinScore = fc.MinScore
	cfg.MaxDNPDeviationRel = fc.MaxDNPDeviationRel
	cfg.MaxDNPDeviationAbs = fc.MaxDNPDeviationAbs
	cfg.BearDist = fc.BearDist
	cfg.CandidateThreshold = fc.CandidateThreshold
	cfg.MaxBearDeviation = fc.MaxBearDeviation
	if len(fc.TolerateLFRC) > 0 {
		tolerate := make(map[openlr.FRC]openlr.FRC, len(fc.TolerateLFRC))
		for frc, ceiling := range fc.TolerateLFRC {
			tolerate[openlr.FRC(frc)] = openlr.FRC(ceiling)
		}
		cfg.TolerateLFRC = tolerate
	}
	return cfg
}

// Load reads a decoding.Config from a YAML file at path, validating its
// fields with go-playground/validator and falling back to
// decoding.DefaultConfig for anything the file doesn't set.
func Load(path string) (decoding.Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return decoding.Config{}, fmt.Errorf("config: reading %q: %w", path, err)
	}

	fc := fromDecoding(decoding.DefaultConfig())
	if err := v.Unmarshal(&fc); err != nil {
		return decoding.Config{}, fmt.Errorf("config: unmarshalling %q: %w", path, err)
	}

	if err := validator.New().Struct(fc); err != nil {
		return decoding.Config{}, fmt.Errorf("config: validating %q: %w", path, err)
	}

	return fc.toDecoding(), nil
}

// Save writes cfg to path as YAML.
func Save(cfg decoding.Config, path string) error {
	out, err := yaml.Marshal(fromDecoding(cfg))
	if err != nil {
		return fmt.Errorf("config: marshalling: %w", err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("config: writing %q: %w", path, err)
	}
	return nil
}
