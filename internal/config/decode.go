package config

import (
	"github.com/spf13/pflag"

	"blendScope/internal/fixed"
)

// DecodeConfig holds configuration for the decode command.
type DecodeConfig struct {
	In       string
	Out      string
	Errors   string
	Scale    int32
	LogLevel string
}

// LoadDecode merges config file, environment variables, and flags into
// DecodeConfig.
func LoadDecode(cfgFile string, flags *pflag.FlagSet) (DecodeConfig, error) {
	v, err := newViper(cfgFile, flags)
	if err != nil {
		return DecodeConfig{}, err
	}

	v.SetDefault("out", "./data/records.jsonl")
	v.SetDefault("errors", "./data/decode_errors.jsonl")
	v.SetDefault("scale", fixed.DefaultScale)
	v.SetDefault("log-level", "info")

	cfg := DecodeConfig{
		In:       v.GetString("in"),
		Out:      v.GetString("out"),
		Errors:   v.GetString("errors"),
		Scale:    v.GetInt32("scale"),
		LogLevel: v.GetString("log-level"),
	}

	return cfg, nil
}
