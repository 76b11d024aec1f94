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
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/network-quality/ccbench/config"
	"github.com/network-quality/ccbench/executor"
	"github.com/network-quality/ccbench/locator"
	"github.com/network-quality/ccbench/record"
)

// Matrix runs every (profile, algorithm) cell of the configured experiment
// matrix, in declared order, one cell at a time.
type Matrix struct {
	cfg  *config.Config
	exec *Executor
}

func NewMatrix(cfg *config.Config, invoker Invoker) *Matrix {
	return &Matrix{
		cfg: cfg,
		exec: &Executor{
			Invoker:    invoker,
			Locator:    &locator.ArtifactLocator{Dir: cfg.MetricsDir},
			ResultsDir: cfg.ResultsDir,
			Timeout:    time.Duration(cfg.RunTimeout) * time.Second,
		},
	}
}

// RunAll executes the whole matrix and returns the records of the cells
// that succeeded, in cell order. A failing cell is logged and skipped; it
// never aborts the iteration.
func (m *Matrix) RunAll(ctx context.Context) []record.RunRecord {
	records := make([]record.RunRecord, 0, len(m.cfg.Profiles)*len(m.cfg.Algorithms))

	units := make([]executor.Unit, 0)
	for _, entry := range m.cfg.Profiles {
		entry := entry
		units = append(units, func() {
			zap.S().Infof("--- Running tests for network profile %s (latency = %d ms) ---",
				entry.Key, entry.Latency)
		})
		for _, algorithm := range m.cfg.Algorithms {
			algorithm := algorithm
			units = append(units, func() {
				zap.S().Infof("Testing congestion control algorithm: %s", algorithm)
				rec, err := m.exec.Execute(ctx, algorithm, entry.Key, entry.NetworkProfile)
				if err != nil {
					logCellFailure(algorithm, entry.Key, err)
					return
				}
				records = append(records, rec)
			})
		}
	}

	// Runs share the metrics directory scanned by the locator, so the
	// matrix must never overlap two cells.
	executor.Execute(executor.Serial, units).Wait()

	return records
}

func logCellFailure(algorithm string, profileKey string, err error) {
	var cellErr *CellError
	if errors.As(err, &cellErr) {
		zap.L().Warn("experiment cell skipped",
			zap.String("algorithm", algorithm),
			zap.String("profile", profileKey),
			zap.String("kind", cellErr.Kind.String()),
			zap.Error(cellErr.Err))
		return
	}
	zap.L().Warn("experiment cell skipped",
		zap.String("algorithm", algorithm),
		zap.String("profile", profileKey),
		zap.Error(err))
}
