package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"blendScope/internal/config"
	"blendScope/internal/extract"
	"blendScope/internal/model"
	"blendScope/internal/scval"
	"blendScope/internal/storage"
)

// responseEnvelope is one captured contract response: the wire value plus
// the context describing which call produced it.
type responseEnvelope struct {
	Context scval.ParsingContext `json:"context"`
	Value   scval.Val            `json:"value"`
}

// recordEnvelope is one decoded output line.
type recordEnvelope struct {
	Context scval.ParsingContext `json:"context"`
	Type    string               `json:"type"`
	Record  interface{}          `json:"record"`
}

func runDecode(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadDecode(cfgFile, cmd.Flags())
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
	if cfg.Errors == "" {
		return fmt.Errorf("errors path is required")
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

	errWriter, err := storage.NewJsonlStorage(cfg.Errors)
	if err != nil {
		return err
	}
	defer errWriter.Close()

	logger.Info("decode start",
		zap.String("in", cfg.In),
		zap.String("out", cfg.Out),
		zap.String("errors", cfg.Errors),
		zap.Int32("scale", cfg.Scale),
	)

	scanner := bufio.NewScanner(inputFile)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024)

	var total, decoded, failed int
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		total++

		var envelope responseEnvelope
		if err := json.Unmarshal(line, &envelope); err != nil {
			failed++
			writeDecodeError(errWriter, model.DecodeError{Error: err.Error()})
			continue
		}

		record, err := decodeResponse(envelope, cfg.Scale, logger)
		if err != nil {
			failed++
			writeDecodeError(errWriter, decodeErrorFromEnvelope(envelope, err))
			continue
		}

		if err := outWriter.Put(record); err != nil {
			return err
		}
		decoded++
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan input: %w", err)
	}

	logger.Info("decode complete",
		zap.Int("total", total),
		zap.Int("decoded", decoded),
		zap.Int("failed", failed),
	)

	return nil
}

// decodeResponse routes a response to the extractor matching its contract
// category and function name.
func decodeResponse(envelope responseEnvelope, scale int32, logger *zap.Logger) (recordEnvelope, error) {
	ctx := envelope.Context
	value := envelope.Value

	out := recordEnvelope{Context: ctx}

	switch ctx.Category {
	case scval.CategoryPool:
		if ctx.Function == "get_config" {
			record, err := scval.Decode[model.PoolConfig](value, ctx, extract.PoolConfigDecoder{Scale: scale})
			if err != nil {
				return recordEnvelope{}, err
			}
			out.Type = "pool_config"
			out.Record = record
			return out, nil
		}
		record, err := scval.Decode[model.Reserve](value, ctx, extract.ReserveDecoder{Scale: scale})
		if err != nil {
			return recordEnvelope{}, err
		}
		out.Type = "reserve"
		out.Record = record
		return out, nil

	case scval.CategoryOracle:
		dec := extract.PriceDecoder{AssetID: ctx.Meta}
		if isListFunction(ctx.Function) {
			records, err := extract.Prices(value, ctx, dec, logger)
			if err != nil {
				return recordEnvelope{}, err
			}
			out.Type = "price_records"
			out.Record = records
			return out, nil
		}
		record, ok, err := extract.Price(value, ctx, dec)
		if err != nil {
			return recordEnvelope{}, err
		}
		out.Type = "price_record"
		if !ok {
			out.Record = nil
			return out, nil
		}
		out.Record = record
		return out, nil

	case scval.CategoryBackstop:
		if strings.Contains(ctx.Function, "user") {
			record, err := extract.UserBalance(value, ctx, logger)
			if err != nil {
				return recordEnvelope{}, err
			}
			out.Type = "user_balance"
			out.Record = record
			return out, nil
		}
		record, err := extract.BackstopPoolData(value, ctx)
		if err != nil {
			return recordEnvelope{}, err
		}
		out.Type = "backstop_pool_data"
		out.Record = record
		return out, nil

	case scval.CategoryUserPosition:
		record, err := extract.UserBalance(value, ctx, logger)
		if err != nil {
			return recordEnvelope{}, err
		}
		out.Type = "user_balance"
		out.Record = record
		return out, nil

	case scval.CategoryEmission:
		if strings.Contains(ctx.Function, "user") {
			record, err := scval.Decode[model.UserEmissionData](value, ctx, extract.UserEmissionsDecoder{Scale: scale})
			if err != nil {
				return recordEnvelope{}, err
			}
			out.Type = "user_emissions"
			out.Record = record
			return out, nil
		}
		record, err := scval.Decode[model.BackstopEmissionsData](value, ctx, extract.BackstopEmissionsDecoder{Scale: scale})
		if err != nil {
			return recordEnvelope{}, err
		}
		out.Type = "backstop_emissions"
		out.Record = record
		return out, nil

	default:
		return recordEnvelope{}, &scval.Error{
			Kind:    scval.ErrUnsupportedOperation,
			Detail:  fmt.Sprintf("no decoder for category %q", ctx.Category),
			Context: ctx,
		}
	}
}

func isListFunction(function string) bool {
	switch function {
	case "prices", "last_prices", "price_history":
		return true
	default:
		return false
	}
}

func decodeErrorFromEnvelope(envelope responseEnvelope, err error) model.DecodeError {
	return model.DecodeError{
		Function: envelope.Context.Function,
		Category: string(envelope.Context.Category),
		Meta:     envelope.Context.Meta,
		Kind:     string(scval.KindOf(err)),
		Error:    err.Error(),
	}
}

func writeDecodeError(writer *storage.JsonlStorage, errRecord model.DecodeError) {
	if writer == nil {
		return
	}
	_ = writer.Put(errRecord)
}
