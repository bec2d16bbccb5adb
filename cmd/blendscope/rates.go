package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"blendScope/internal/config"
	"blendScope/internal/fixed"
	"blendScope/internal/model"
	"blendScope/internal/rates"
	"blendScope/internal/storage"
	"blendScope/internal/storage/postgres"
	"blendScope/internal/validate"
)

// reserveRecord matches the decode command's reserve output lines.
type reserveRecord struct {
	Type   string        `json:"type"`
	Record model.Reserve `json:"record"`
}

func runRates(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadRates(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.In == "" {
		return fmt.Errorf("input path is required")
	}
	if cfg.Out == "" {
		return fmt.Errorf("output path is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store *postgres.Store
	var sinceTS uint64
	stateName := "rates:" + cfg.PoolID
	if cfg.PgDSN != "" {
		store, err = postgres.NewStore(ctx, cfg.PgDSN)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer store.Close()

		ts, ok, err := store.LoadState(ctx, stateName)
		if err != nil {
			return fmt.Errorf("load state: %w", err)
		}
		if ok {
			sinceTS = ts
			logger.Info("resuming from checkpoint", zap.Uint64("last_processed_ts", ts))
		}
	}

	inputFile, err := os.Open(cfg.In)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer inputFile.Close()

	outWriter, err := storage.NewJsonlStorage(cfg.Out)
	if err != nil {
		return err
	}
	defer outWriter.Close()

	logger.Info("rates start",
		zap.String("in", cfg.In),
		zap.String("out", cfg.Out),
		zap.String("pool_id", cfg.PoolID),
		zap.Float64("backstop_take", cfg.BackstopTake),
		zap.Int64("compounding", cfg.Compounding),
	)

	engine := rates.NewEngine()
	backstopTake := decimal.NewFromFloat(cfg.BackstopTake)
	staleBefore := time.Now().Add(-cfg.StalenessBound)

	scanner := bufio.NewScanner(inputFile)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024)

	batch := make([]model.RateSnapshot, 0, cfg.BatchSize)
	var total, computed, skipped, failed int
	var maxTS uint64

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if store != nil {
			if err := store.UpsertRateSnapshots(ctx, batch); err != nil {
				return fmt.Errorf("upsert snapshots: %w", err)
			}
		}
		batch = batch[:0]
		return nil
	}

	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		total++

		var record reserveRecord
		if err := json.Unmarshal(line, &record); err != nil {
			failed++
			logger.Warn("decode record line", zap.Error(err))
			continue
		}
		if record.Type != "reserve" {
			skipped++
			continue
		}

		reserve := record.Record
		if sinceTS > 0 && reserve.Data.LastUpdate > 0 && reserve.Data.LastUpdate <= sinceTS {
			skipped++
			continue
		}
		if cfg.StalenessBound > 0 && reserve.Data.LastUpdate > 0 &&
			time.Unix(int64(reserve.Data.LastUpdate), 0).Before(staleBefore) {
			skipped++
			logger.Warn("stale reserve",
				zap.String("asset", reserve.Asset),
				zap.Uint64("last_time", reserve.Data.LastUpdate),
			)
			continue
		}
		if err := validate.Reserve(reserve); err != nil {
			failed++
			logger.Warn("invalid reserve",
				zap.String("asset", reserve.Asset),
				zap.Error(err),
			)
			continue
		}

		snapshot := buildSnapshot(engine, reserve, cfg.PoolID, backstopTake, cfg.Compounding)
		if err := outWriter.Put(snapshot); err != nil {
			return err
		}
		batch = append(batch, snapshot)
		computed++
		if reserve.Data.LastUpdate > maxTS {
			maxTS = reserve.Data.LastUpdate
		}

		if len(batch) >= cfg.BatchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan input: %w", err)
	}

	if err := flush(); err != nil {
		return err
	}

	if store != nil && maxTS > sinceTS {
		if err := store.SaveState(ctx, stateName, maxTS); err != nil {
			return fmt.Errorf("save state: %w", err)
		}
	}

	logger.Info("rates complete",
		zap.Int("total", total),
		zap.Int("computed", computed),
		zap.Int("skipped", skipped),
		zap.Int("failed", failed),
	)

	return nil
}

func buildSnapshot(engine *rates.Engine, reserve model.Reserve, poolID string, backstopTake decimal.Decimal, compounding int64) model.RateSnapshot {
	util := reserve.Utilization()
	rateCfg := reserve.RateConfig()

	borrowAPR := rates.BorrowAPR(reserve.Data.BorrowRate)
	supplyAPR := rates.SupplyAPR(reserve.Data.BorrowRate, util, backstopTake)
	curve := engine.ReactiveRate(util, rateCfg, poolID+"/"+reserve.Asset)

	return model.RateSnapshot{
		PoolID:      poolID,
		Asset:       reserve.Asset,
		Utilization: fixed.Round(util),
		BorrowAPR:   fixed.Round(borrowAPR),
		SupplyAPR:   fixed.Round(supplyAPR),
		BorrowAPY:   fixed.Round(rates.APRToAPY(borrowAPR, compounding)),
		SupplyAPY:   fixed.Round(rates.APRToAPY(supplyAPR, compounding)),
		CurveRate:   fixed.Round(curve),
		IRModifier:  fixed.Round(reserve.Data.IRModifier),
		Timestamp:   reserve.Data.LastUpdate,
	}
}
