package executor_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/network-quality/ccbench/executor"
)

func TestSerialRunsInOrder(t *testing.T) {
	order := make([]int, 0, 3)
	units := []executor.Unit{
		func() { order = append(order, 0) },
		func() { order = append(order, 1) },
		func() { order = append(order, 2) },
	}

	executor.Execute(executor.Serial, units).Wait()

	if len(order) != len(units) {
		t.Fatalf("Serial execution skipped units: %v", order)
	}
	for expected, actual := range order {
		if expected != actual {
			t.Fatalf("Serial execution ran out of order: %v", order)
		}
	}
}

func TestSerialNeverOverlaps(t *testing.T) {
	var active int32
	unit := func() {
		if atomic.AddInt32(&active, 1) != 1 {
			t.Errorf("Two serial units were active at once.")
		}
		time.Sleep(10 * time.Millisecond)
		atomic.AddInt32(&active, -1)
	}

	executor.Execute(executor.Serial, []executor.Unit{unit, unit, unit}).Wait()
}

func TestParallelRunsConcurrently(t *testing.T) {
	block := make(chan struct{})
	units := []executor.Unit{
		func() { <-block },
		func() { close(block) },
	}

	// Would deadlock under serial execution: the first unit only returns
	// once the second has run.
	done := make(chan struct{})
	go func() {
		executor.Execute(executor.Parallel, units).Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("Parallel execution did not make progress.")
	}
}

func TestMethodString(t *testing.T) {
	if executor.Serial.String() != "Serial" {
		t.Fatalf("Incorrect result from Method.String; expected Serial but got %v", executor.Serial.String())
	}
	if executor.Parallel.String() != "Parallel" {
		t.Fatalf("Incorrect result from Method.String; expected Parallel but got %v", executor.Parallel.String())
	}
}
