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

package record

import (
	"fmt"

	"github.com/go-gota/gota/dataframe"
)

// RunRecord is the result of one successful (algorithm, profile) run: the
// observation table read from the run's metrics artifact, tagged with the
// run's identity. A run that failed or produced no readable artifact has no
// RunRecord. Records are not modified after construction.
type RunRecord struct {
	Scheme  string
	Profile string
	Data    dataframe.DataFrame
}

func New(scheme string, profile string, data dataframe.DataFrame) RunRecord {
	return RunRecord{Scheme: scheme, Profile: profile, Data: data}
}

func (r RunRecord) Observations() int {
	return r.Data.Nrow()
}

func (r RunRecord) String() string {
	return fmt.Sprintf("%s under profile %s: %d observations", r.Scheme, r.Profile, r.Observations())
}
