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

package utilities

import (
	"math"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

type Number interface {
	constraints.Float | constraints.Integer
}

// CalculatePercentile computes the pth percentile of elements with linear
// interpolation between the closest ranks: for a sorted sample of size n,
// the result is the value at fractional rank (p/100)*(n-1), interpolated
// between the two bracketing order statistics. The input is not modified.
func CalculatePercentile[T Number](elements []T, p float64) float64 {
	if len(elements) == 0 || p < 0 || p > 100 {
		return 0
	}

	sorted := make([]float64, len(elements))
	for index, element := range elements {
		sorted[index] = float64(element)
	}
	slices.Sort(sorted)

	rank := (p / 100.0) * float64(len(sorted)-1)
	lower := int(math.Floor(rank))
	upper := int(math.Ceil(rank))
	if lower == upper {
		return sorted[lower]
	}
	fraction := rank - float64(lower)
	return sorted[lower] + fraction*(sorted[upper]-sorted[lower])
}
