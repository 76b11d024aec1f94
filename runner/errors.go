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

import "fmt"

// Kind classifies why an experiment cell produced no RunRecord. Every kind
// is recoverable at the matrix level: the cell is logged and skipped, the
// matrix keeps going.
type Kind int

const (
	// KindExecution: the external emulation+driver invocation exited
	// abnormally (or ran into its timeout).
	KindExecution Kind = iota
	// KindMissingArtifact: the invocation succeeded but the driver left no
	// fresh metrics artifact behind.
	KindMissingArtifact
	// KindArtifactRead: an artifact exists but could not be copied, parsed,
	// or does not look like a metrics table.
	KindArtifactRead
)

func (k Kind) String() string {
	switch k {
	case KindExecution:
		return "execution failure"
	case KindMissingArtifact:
		return "missing artifact"
	case KindArtifactRead:
		return "artifact read failure"
	}
	return "unrecognized failure kind"
}

// CellError describes the failure of one (algorithm, profile) cell with
// enough context to diagnose it from the log alone.
type CellError struct {
	Kind      Kind
	Algorithm string
	Profile   string
	Err       error
}

func (e *CellError) Error() string {
	return fmt.Sprintf("%s for %s under profile %s: %v", e.Kind, e.Algorithm, e.Profile, e.Err)
}

func (e *CellError) Unwrap() error {
	return e.Err
}
