package main

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/EndlessParadox1/epbloom/bloomfilter"
)

const (
	defaultProbability = 0.01
	defaultExpected    = 1000
	defaultProbes      = 10000

	hashMurmur2 = "murmur2"
	hashMurmur3 = "murmur3"
)

type config struct {
	Probability float64
	Expected    int
	Probes      int
	Hash        string
	Seed        uint64
	Quiet       bool
}

func loadConfig(v *viper.Viper) (config, error) {
	cfg := config{
		Probability: v.GetFloat64("probability"),
		Expected:    v.GetInt("expected"),
		Probes:      v.GetInt("probes"),
		Hash:        v.GetString("hash"),
		Seed:        v.GetUint64("seed"),
		Quiet:       v.GetBool("quiet"),
	}
	if err := cfg.validate(); err != nil {
		return config{}, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func (c config) validate() error {
	if _, err := bloomfilter.Derive(c.Probability, c.Expected); err != nil {
		return err
	}
	if c.Probes <= 0 {
		return fmt.Errorf("probes must be positive, got %d", c.Probes)
	}
	if _, err := c.hashFunc(); err != nil {
		return err
	}
	return nil
}

func (c config) hashFunc() (bloomfilter.Hash, error) {
	switch c.Hash {
	case hashMurmur2:
		return bloomfilter.Murmur2, nil
	case hashMurmur3:
		return bloomfilter.Murmur3, nil
	}
	return nil, fmt.Errorf("unknown hash %q, want %s or %s", c.Hash, hashMurmur2, hashMurmur3)
}
