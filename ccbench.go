/*
 * This file is part of CC Bench.
 *
 * CC Bench is free software: you can redistribute it and/or modify it under
 * the terms of the GNU General Public License as published by the Free Software Foundation,
 * either version 2 of the License, or (at your option) any later version.
 * CC Bench is distributed in the hope that it will be useful, but WITHOUT ANY
 * WARRANTY; without even the implied warranty of MERCHANTABILITY or FITNESS FOR A
 * PARTICULAR PURPOSE. See the GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License along
 * with CC Bench. If not, see <https://www.gnu.org/licenses/>.
 */

package main

import (
	"context"
	"flag"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/network-quality/ccbench/aggregate"
	"github.com/network-quality/ccbench/config"
	"github.com/network-quality/ccbench/report"
	"github.com/network-quality/ccbench/runner"
)

var (
	// Variables to hold CLI arguments.
	configFileName = flag.String("config", "", "Path to a YAML experiment configuration; the built-in matrix is used when empty.")
	logFileName    = flag.String("log-file", "", "Mirror console logging into this rotating JSON log file.")
	cellTimeout    = flag.Int("timeout", 0, "Maximum time (seconds) for a single experiment cell; overrides the configuration when nonzero.")
	debugCliFlag   = flag.Bool("debug", false, "Enable debugging.")
)

func setupLogging(debug bool, filename string) {
	zapConfig := zap.NewDevelopmentConfig()
	if !debug {
		zapConfig.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}

	var logger *zap.Logger
	if filename != "" {
		fileCore := zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(&lumberjack.Logger{
				Filename:   filename,
				MaxSize:    64,
				MaxBackups: 7,
				MaxAge:     7,
			}),
			zapConfig.Level,
		)
		consoleCore := zapcore.NewCore(
			zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
			zapcore.AddSync(os.Stdout),
			zapConfig.Level,
		)
		logger = zap.New(zapcore.NewTee(fileCore, consoleCore))
	} else {
		var err error
		if logger, err = zapConfig.Build(); err != nil {
			panic(err)
		}
	}
	zap.ReplaceGlobals(logger)
}

func main() {
	flag.Parse()

	setupLogging(*debugCliFlag, *logFileName)
	defer func() { _ = zap.L().Sync() }()

	cfg := config.Default()
	if *configFileName != "" {
		loaded, err := config.Load(*configFileName)
		if err != nil {
			zap.S().Fatalf("Could not load configuration: %v", err)
		}
		cfg = loaded
	}
	if err := cfg.IsValid(); err != nil {
		zap.S().Fatalf("Invalid configuration: %v", err)
	}
	if *cellTimeout != 0 {
		cfg.RunTimeout = *cellTimeout
	}

	for _, dir := range []string{cfg.ResultsDir, cfg.MetricsDir, cfg.ReportsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			zap.S().Fatalf("Could not create directory %s: %v", dir, err)
		}
	}

	zap.S().Infof("=== Congestion Control Algorithm Test Framework ===")
	zap.S().Infof("Configuration:\n%s", cfg)

	matrix := runner.NewMatrix(cfg, &runner.MahimahiInvoker{DriverCommand: cfg.DriverCommand})
	records := matrix.RunAll(context.Background())

	dataset := aggregate.Normalize(records)
	summary := aggregate.SummarizeRtt(dataset)

	sink := report.NewSink(cfg.ReportsDir)
	if err := sink.WriteAll(dataset, summary); err != nil {
		if errors.Is(err, report.ErrEmptyDataset) {
			zap.S().Error("No valid test results were collected")
			return
		}
		zap.S().Fatalf("Could not write reports: %v", err)
	}

	zap.S().Infof("All tests finished; reports are in %s", cfg.ReportsDir)
}
