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
	"reflect"
	"testing"
)

func TestIota(t *testing.T) {
	expected := []int{0, 1, 2, 3, 4}
	if !reflect.DeepEqual(expected, Iota(0, 5)) {
		t.Fatalf("Iota(0, 5) did not generate 0 ... 4.")
	}
	if len(Iota(3, 3)) != 0 {
		t.Fatalf("Iota of an empty range should be empty.")
	}
}

func TestUniquesPreservesFirstAppearanceOrder(t *testing.T) {
	expected := []string{"high", "low", "medium"}
	result := Uniques([]string{"high", "low", "high", "medium", "low"})
	if !reflect.DeepEqual(expected, result) {
		t.Fatalf("Uniques did not preserve first-appearance order: %v", result)
	}
}

func TestFilterAndFmap(t *testing.T) {
	odds := Filter([]int{1, 2, 3, 4, 5}, func(v int) bool { return v%2 == 1 })
	if !reflect.DeepEqual([]int{1, 3, 5}, odds) {
		t.Fatalf("Filter did not keep the odd elements: %v", odds)
	}
	doubled := Fmap(odds, func(v int) int { return v * 2 })
	if !reflect.DeepEqual([]int{2, 6, 10}, doubled) {
		t.Fatalf("Fmap did not double the elements: %v", doubled)
	}
}

func TestPercentileInterpolates(t *testing.T) {
	rtts := []float64{10, 20, 30, 40, 50}
	if result := CalculatePercentile(rtts, 95); result != 48.0 {
		t.Fatalf("95th percentile of %v should be 48.0 but was %v.", rtts, result)
	}
	if result := CalculatePercentile(rtts, 50); result != 30.0 {
		t.Fatalf("50th percentile of %v should be 30.0 but was %v.", rtts, result)
	}
	if result := CalculatePercentile(rtts, 100); result != 50.0 {
		t.Fatalf("100th percentile of %v should be 50.0 but was %v.", rtts, result)
	}
}

func TestPercentileDoesNotReorderInput(t *testing.T) {
	rtts := []int{50, 10, 40, 20, 30}
	_ = CalculatePercentile(rtts, 95)
	if !reflect.DeepEqual([]int{50, 10, 40, 20, 30}, rtts) {
		t.Fatalf("CalculatePercentile reordered its input: %v", rtts)
	}
}

func TestPercentileDegenerateInputs(t *testing.T) {
	if CalculatePercentile([]float64{}, 95) != 0 {
		t.Fatalf("Percentile of an empty sample should be 0.")
	}
	if CalculatePercentile([]float64{1, 2, 3}, 101) != 0 {
		t.Fatalf("Percentile of 101 should be 0.")
	}
	if CalculatePercentile([]float64{1, 2, 3}, -1) != 0 {
		t.Fatalf("Percentile of -1 should be 0.")
	}
	if CalculatePercentile([]float64{42}, 95) != 42.0 {
		t.Fatalf("Percentile of a single-element sample should be that element.")
	}
}
