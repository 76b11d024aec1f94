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

package aggregate

import (
	"math"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/montanaflynn/stats"

	"github.com/network-quality/ccbench/record"
	"github.com/network-quality/ccbench/utilities"
)

// RttSummaryRow is one row of the RTT summary table: the exact mean and
// interpolated 95th-percentile RTT of one (algorithm, profile) group.
type RttSummaryRow struct {
	Algorithm string  `csv:"Algorithm"`
	Profile   string  `csv:"Profile"`
	AvgRtt    float64 `csv:"Avg RTT"`
	P95Rtt    float64 `csv:"95th RTT"`
}

// Normalize merges the observation tables of all successful runs into one
// dataset. Every row is tagged with its run's scheme and profile, and each
// run's rows are re-indexed with a zero-based ordinal timestamp (row order
// inside an artifact is time order; the artifact's own clock is not
// trusted). The column set is the union of the input columns; a column a
// run never produced is NaN for that run's rows. An empty input yields an
// empty dataset, never an error.
func Normalize(records []record.RunRecord) dataframe.DataFrame {
	frames := make([]dataframe.DataFrame, 0, len(records))
	for _, rec := range records {
		rows := rec.Data.Nrow()
		schemes := make([]string, rows)
		profiles := make([]string, rows)
		for i := 0; i < rows; i++ {
			schemes[i] = rec.Scheme
			profiles[i] = rec.Profile
		}
		tagged := rec.Data.
			Mutate(series.New(schemes, series.String, "scheme")).
			Mutate(series.New(profiles, series.String, "profile")).
			Mutate(series.New(utilities.Iota(0, rows), series.Int, "timestamp"))
		frames = append(frames, tagged)
	}

	if len(frames) == 0 {
		return dataframe.DataFrame{}
	}

	combined := frames[0]
	for _, frame := range frames[1:] {
		combined = combined.Concat(frame)
	}
	return combined
}

// SummarizeRtt computes one RttSummaryRow per (profile, scheme) group
// present in the dataset, groups ordered by first appearance of the profile
// and then of the scheme. Groups that end up with no usable rtt samples are
// skipped. The dataset is not modified; summarizing twice gives identical
// tables.
func SummarizeRtt(dataset dataframe.DataFrame) []RttSummaryRow {
	summary := make([]RttSummaryRow, 0)
	if dataset.Nrow() == 0 {
		return summary
	}

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
			rtts := utilities.Filter(subset.Col("rtt").Float(), func(v float64) bool {
				return !math.IsNaN(v)
			})
			if len(rtts) == 0 {
				continue
			}
			mean, err := stats.Mean(rtts)
			if err != nil {
				continue
			}
			summary = append(summary, RttSummaryRow{
				Algorithm: scheme,
				Profile:   profile,
				AvgRtt:    mean,
				P95Rtt:    utilities.CalculatePercentile(rtts, 95),
			})
		}
	}
	return summary
}
