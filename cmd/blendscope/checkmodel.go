package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"blendScope/internal/rates"
)

func runCheckModel(cmd *cobra.Command, _ []string) error {
	in, _ := cmd.Flags().GetString("in")
	level, _ := cmd.Flags().GetString("log-level")

	logger, err := newLogger(level)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if in == "" {
		return fmt.Errorf("input path is required")
	}

	inputFile, err := os.Open(in)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer inputFile.Close()

	scanner := bufio.NewScanner(inputFile)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024)

	var checked, invalid int
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var record reserveRecord
		if err := json.Unmarshal(line, &record); err != nil {
			logger.Warn("decode record line", zap.Error(err))
			continue
		}
		if record.Type != "reserve" {
			continue
		}

		report := rates.ValidateThreeSlopeModel(record.Record.RateConfig())
		checked++
		if !report.Valid {
			invalid++
		}

		fmt.Printf("asset %s\n%s", record.Record.Asset, report.Report())
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan input: %w", err)
	}

	logger.Info("check-model complete",
		zap.Int("checked", checked),
		zap.Int("invalid", invalid),
	)

	return nil
}
