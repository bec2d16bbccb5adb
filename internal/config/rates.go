package config

import (
	"time"

	"github.com/spf13/pflag"
)

// RatesConfig holds configuration for the rates command.
type RatesConfig struct {
	In             string
	Out            string
	PgDSN          string
	PoolID         string
	BackstopTake   float64
	Compounding    int64
	StalenessBound time.Duration
	BatchSize      int
	LogLevel       string
}

// LoadRates merges config file, environment variables, and flags into
// RatesConfig.
func LoadRates(cfgFile string, flags *pflag.FlagSet) (RatesConfig, error) {
	v, err := newViper(cfgFile, flags)
	if err != nil {
		return RatesConfig{}, err
	}

	v.SetDefault("out", "./data/rate_snapshots.jsonl")
	v.SetDefault("compounding", int64(52))
	v.SetDefault("staleness", 24*time.Hour)
	v.SetDefault("batch-size", 1000)
	v.SetDefault("log-level", "info")

	cfg := RatesConfig{
		In:             v.GetString("in"),
		Out:            v.GetString("out"),
		PgDSN:          v.GetString("pg-dsn"),
		PoolID:         v.GetString("pool-id"),
		BackstopTake:   v.GetFloat64("backstop-take"),
		Compounding:    v.GetInt64("compounding"),
		StalenessBound: v.GetDuration("staleness"),
		BatchSize:      v.GetInt("batch-size"),
		LogLevel:       v.GetString("log-level"),
	}

	return cfg, nil
}
