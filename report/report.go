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

package report

import (
	"math"
	"os"
	"path/filepath"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/gocarina/gocsv"
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"

	"github.com/network-quality/ccbench/aggregate"
	"github.com/network-quality/ccbench/executor"
	"github.com/network-quality/ccbench/utilities"
)

// ErrEmptyDataset means the whole matrix produced nothing to report on.
// Terminal for the reporting stage, not for the process.
var ErrEmptyDataset = errors.New("no data available for reporting")

// TradeoffRow relates an (algorithm, profile) group's average throughput
// to its average RTT, the source table of the rtt-vs-throughput chart.
type TradeoffRow struct {
	Algorithm     string  `csv:"Algorithm"`
	Profile       string  `csv:"Profile"`
	AvgRtt        float64 `csv:"Avg RTT"`
	AvgThroughput float64 `csv:"Avg Throughput"`
}

// Sink writes every tabular file the chart rendering consumes. Rendering
// itself stays outside this program; anything that reads the same columns
// can draw the pictures.
type Sink struct {
	Dir string
}

func NewSink(dir string) *Sink {
	return &Sink{Dir: dir}
}

// WriteAll persists the normalized dataset, the RTT summary table, the
// per-profile time-series slices, and the RTT/throughput trade-off table.
func (s *Sink) WriteAll(dataset dataframe.DataFrame, summary []aggregate.RttSummaryRow) error {
	if dataset.Nrow() == 0 {
		return ErrEmptyDataset
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return errors.Wrapf(err, "could not create report directory %s", s.Dir)
	}

	if err := s.writeDataset(dataset); err != nil {
		return err
	}
	if err := s.writeRttSummary(summary); err != nil {
		return err
	}

	// Per-profile slices touch disjoint files; nothing stops them from
	// being written at the same time.
	profiles := utilities.Uniques(dataset.Col("profile").Records())
	sliceErrors := make([]error, len(profiles))
	units := make([]executor.Unit, 0, len(profiles))
	for i, profile := range profiles {
		i, profile := i, profile
		units = append(units, func() {
			sliceErrors[i] = s.writeProfileSlices(dataset, profile)
		})
	}
	executor.Execute(executor.Parallel, units).Wait()
	for _, err := range sliceErrors {
		if err != nil {
			return err
		}
	}

	return s.writeTradeoff(dataset)
}

func (s *Sink) writeDataset(dataset dataframe.DataFrame) error {
	f, err := os.Create(filepath.Join(s.Dir, "combined_metrics.csv"))
	if err != nil {
		return errors.Wrap(err, "could not create combined metrics file")
	}
	defer f.Close()
	return errors.Wrap(dataset.WriteCSV(f), "could not write combined metrics")
}

func (s *Sink) writeRttSummary(summary []aggregate.RttSummaryRow) error {
	f, err := os.Create(filepath.Join(s.Dir, "rtt_summary.csv"))
	if err != nil {
		return errors.Wrap(err, "could not create rtt summary file")
	}
	defer f.Close()
	return errors.Wrap(gocsv.Marshal(&summary, f), "could not write rtt summary")
}

// writeProfileSlices emits one throughput time series per profile, and a
// loss time series only when any run actually reported loss_rate.
func (s *Sink) writeProfileSlices(dataset dataframe.DataFrame, profile string) error {
	subset := dataset.Filter(dataframe.F{Colname: "profile", Comparator: series.Eq, Comparando: profile})

	name := filepath.Join(s.Dir, "throughput_profile_"+profile+".csv")
	if err := writeColumns(subset, []string{"timestamp", "scheme", "throughput"}, name); err != nil {
		return err
	}

	if !slices.Contains(dataset.Names(), "loss_rate") {
		return nil
	}
	name = filepath.Join(s.Dir, "loss_profile_"+profile+".csv")
	return writeColumns(subset, []string{"timestamp", "scheme", "loss_rate"}, name)
}

func writeColumns(subset dataframe.DataFrame, columns []string, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "could not create report file %s", path)
	}
	defer f.Close()
	return errors.Wrapf(subset.Select(columns).WriteCSV(f), "could not write report file %s", path)
}

func (s *Sink) writeTradeoff(dataset dataframe.DataFrame) error {
	rows := make([]TradeoffRow, 0)
	profiles := utilities.Uniques(dataset.Col("profile").Records())
	schemes := utilities.Uniques(dataset.Col("scheme").Records())
	for _, profile := range profiles {
		for _, scheme := range schemes {
			subset := dataset.
				Filter(dataframe.F{Colname: "profile", Comparator: series.Eq, Comparando: profile}).
				Filter(dataframe.F{Colname: "scheme", Comparator: series.Eq, Comparando: scheme})
			if subset.Nrow() == 0 {
				continue
			}
			dropNaN := func(v float64) bool { return !math.IsNaN(v) }
			rtts := utilities.Filter(subset.Col("rtt").Float(), dropNaN)
			throughputs := utilities.Filter(subset.Col("throughput").Float(), dropNaN)
			if len(rtts) == 0 || len(throughputs) == 0 {
				continue
			}
			avgRtt, err := stats.Mean(rtts)
			if err != nil {
				continue
			}
			avgThroughput, err := stats.Mean(throughputs)
			if err != nil {
				continue
			}
			rows = append(rows, TradeoffRow{
				Algorithm:     scheme,
				Profile:       profile,
				AvgRtt:        avgRtt,
				AvgThroughput: avgThroughput,
			})
		}
	}

	f, err := os.Create(filepath.Join(s.Dir, "rtt_vs_throughput.csv"))
	if err != nil {
		return errors.Wrap(err, "could not create rtt-vs-throughput file")
	}
	defer f.Close()
	return errors.Wrap(gocsv.Marshal(&rows, f), "could not write rtt-vs-throughput table")
}
