package executor

import (
	"sync"
)

// executor schedules independent units of work either one after another or
// all at once. The experiment matrix always uses Serial: every run scans
// the same shared metrics directory for its artifact, so no two runs may
// overlap. Parallel is safe only for units that share nothing, like the
// report writers.

type Method int

const (
	Serial Method = iota
	Parallel
)

func (m Method) String() string {
	switch m {
	case Serial:
		return "Serial"
	case Parallel:
		return "Parallel"
	}
	return "Unrecognized execution method"
}

type Unit func()

func Execute(method Method, units []Unit) *sync.WaitGroup {
	waiter := &sync.WaitGroup{}

	// Add every unit to the wait group before any of them runs; adding
	// as we go races with an early Wait.
	waiter.Add(len(units))

	for _, unit := range units {
		unit := unit

		invoker := func() {
			unit()
			waiter.Done()
		}
		switch method {
		case Serial:
			invoker()
		case Parallel:
			go invoker()
		default:
			panic("Invalid execution method value given.")
		}
	}

	return waiter
}
