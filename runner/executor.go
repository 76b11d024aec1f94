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

package runner

import (
	"context"
	"io"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"

	"github.com/network-quality/ccbench/config"
	"github.com/network-quality/ccbench/locator"
	"github.com/network-quality/ccbench/record"
	"github.com/network-quality/ccbench/rttdist"
)

// Executor drives one experiment cell end to end: invoke the external
// pipeline, find the artifact it produced, copy it into the run's result
// directory, and read it into a RunRecord. A failed cell returns a
// *CellError and leaves no RunRecord; it never blocks later cells.
type Executor struct {
	Invoker    Invoker
	Locator    *locator.ArtifactLocator
	ResultsDir string
	// Timeout bounds a single invocation; zero means wait forever. Expiry
	// is an execution failure for that cell, never a retry.
	Timeout time.Duration
}

func (e *Executor) Execute(
	ctx context.Context,
	algorithm string,
	profileKey string,
	profile config.NetworkProfile,
) (record.RunRecord, error) {
	cellError := func(kind Kind, err error) (record.RunRecord, error) {
		return record.RunRecord{}, &CellError{Kind: kind, Algorithm: algorithm, Profile: profileKey, Err: err}
	}

	runDir := filepath.Join(e.ResultsDir, "profile_"+profileKey, algorithm)
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return cellError(KindExecution, errors.Wrap(err, "could not create run directory"))
	}

	invocationCtx := ctx
	if e.Timeout > 0 {
		var cancel context.CancelFunc
		invocationCtx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	// Only artifacts written after this instant count as this run's output.
	started := time.Now()

	err := e.Invoker.Invoke(invocationCtx, Invocation{
		Algorithm:     algorithm,
		Latency:       profile.Latency,
		DownlinkTrace: profile.DownlinkTrace,
		UplinkTrace:   profile.UplinkTrace,
		LogPath:       filepath.Join(runDir, "log.txt"),
	})
	if err != nil {
		return cellError(KindExecution, err)
	}
	zap.L().Info("test completed",
		zap.String("algorithm", algorithm),
		zap.String("profile", profileKey),
		zap.Duration("elapsed", time.Since(started)))

	artifact, err := e.Locator.Locate(algorithm, started)
	if err != nil {
		return cellError(KindMissingArtifact, err)
	}

	destination := filepath.Join(runDir, algorithm+"_cc_log.csv")
	if err = copyFile(artifact, destination); err != nil {
		return cellError(KindArtifactRead, err)
	}

	data, err := readMetrics(destination)
	if err != nil {
		return cellError(KindArtifactRead, err)
	}

	logRunStatistics(algorithm, profileKey, data)
	return record.New(algorithm, profileKey, data), nil
}

func copyFile(source string, destination string) error {
	in, err := os.Open(source)
	if err != nil {
		return errors.Wrapf(err, "could not open artifact %s", source)
	}
	defer in.Close()

	out, err := os.Create(destination)
	if err != nil {
		return errors.Wrapf(err, "could not create artifact copy %s", destination)
	}
	defer out.Close()

	if _, err = io.Copy(out, in); err != nil {
		return errors.Wrapf(err, "could not copy artifact to %s", destination)
	}
	return nil
}

// readMetrics parses an artifact into an observation table and enforces
// its shape: a header row, at least one data row, and the throughput and
// rtt columns the aggregation depends on.
func readMetrics(path string) (dataframe.DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, errors.Wrapf(err, "could not open metrics artifact %s", path)
	}
	defer f.Close()

	data := dataframe.ReadCSV(f)
	if data.Err != nil {
		return dataframe.DataFrame{}, errors.Wrapf(data.Err, "could not parse metrics artifact %s", path)
	}
	if data.Nrow() == 0 {
		return dataframe.DataFrame{}, errors.Errorf("metrics artifact %s contains no observations", path)
	}
	for _, required := range []string{"throughput", "rtt"} {
		if !slices.Contains(data.Names(), required) {
			return dataframe.DataFrame{}, errors.Errorf("metrics artifact %s lacks a %s column", path, required)
		}
	}
	return data, nil
}

// logRunStatistics gives a quick per-run look at the RTT distribution
// right after the cell finishes, long before the full report exists.
func logRunStatistics(algorithm string, profileKey string, data dataframe.DataFrame) {
	distribution := rttdist.New()
	for _, rtt := range data.Col("rtt").Float() {
		if math.IsNaN(rtt) {
			continue
		}
		if err := distribution.AddSample(rtt); err != nil {
			zap.L().Debug("skipping rtt sample", zap.String("algorithm", algorithm), zap.Error(err))
		}
	}
	if distribution.Samples() == 0 {
		return
	}
	zap.L().Info("run rtt distribution",
		zap.String("algorithm", algorithm),
		zap.String("profile", profileKey),
		zap.Int64("samples", distribution.Samples()),
		zap.Float64("mean_ms", distribution.Mean()),
		zap.Float64("p50_ms", distribution.Median()),
		zap.Float64("p95_ms", distribution.Percentile(95)),
		zap.Float64("min_ms", distribution.Minimum()),
		zap.Float64("max_ms", distribution.Maximum()))
}
