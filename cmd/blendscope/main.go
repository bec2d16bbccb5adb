package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	root := &cobra.Command{
		Use:          "blendscope",
		Short:        "Lending protocol response decoder and rate calculator",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	decodeCmd := &cobra.Command{
		Use:   "decode",
		Short: "Decode captured contract responses into typed records",
		RunE:  runDecode,
	}

	decodeCmd.Flags().String("in", "", "input responses JSONL")
	decodeCmd.Flags().String("out", "./data/records.jsonl", "output typed records JSONL")
	decodeCmd.Flags().String("errors", "./data/decode_errors.jsonl", "decode errors JSONL")
	decodeCmd.Flags().Int32("scale", 7, "fixed-point scale (decimal digits)")
	decodeCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(decodeCmd)

	ratesCmd := &cobra.Command{
		Use:   "rates",
		Short: "Compute rate snapshots from decoded reserves",
		RunE:  runRates,
	}

	ratesCmd.Flags().String("in", "", "input typed records JSONL")
	ratesCmd.Flags().String("out", "./data/rate_snapshots.jsonl", "output snapshots JSONL")
	ratesCmd.Flags().String("pg-dsn", "", "Postgres DSN (optional)")
	ratesCmd.Flags().String("pool-id", "", "pool identifier for snapshot keys")
	ratesCmd.Flags().Float64("backstop-take", 0, "backstop take rate fraction")
	ratesCmd.Flags().Int64("compounding", 52, "compounding periods per year")
	ratesCmd.Flags().Duration("staleness", 24*time.Hour, "price staleness bound")
	ratesCmd.Flags().Int("batch-size", 1000, "batch size for DB writes")
	ratesCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(ratesCmd)

	checkModelCmd := &cobra.Command{
		Use:   "check-model",
		Short: "Validate three-slope rate configs and print a report",
		RunE:  runCheckModel,
	}

	checkModelCmd.Flags().String("in", "", "input typed records JSONL")
	checkModelCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(checkModelCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
