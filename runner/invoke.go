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
	"os"
	"os/exec"
	"strconv"

	"github.com/pkg/errors"
)

// Invocation is everything one emulation+driver run needs: the link to
// emulate, the algorithm under test, and where to put the driver's combined
// output.
type Invocation struct {
	Algorithm     string
	Latency       int
	DownlinkTrace string
	UplinkTrace   string
	LogPath       string
}

// Invoker runs the external emulation+driver pipeline for one cell and
// blocks until it terminates. Substituting a fake keeps the executor
// testable without any emulation tooling installed.
type Invoker interface {
	Invoke(ctx context.Context, invocation Invocation) error
}

// MahimahiInvoker shells out to mahimahi:
//
//	mm-delay <latency> mm-link <downlink> <uplink> -- <driver...> --schemes <algorithm>
//
// with the driver's stdout and stderr captured into the run's log file.
type MahimahiInvoker struct {
	DriverCommand []string
}

func (m *MahimahiInvoker) Invoke(ctx context.Context, invocation Invocation) error {
	logFile, err := os.Create(invocation.LogPath)
	if err != nil {
		return errors.Wrapf(err, "could not create run log %s", invocation.LogPath)
	}
	defer logFile.Close()

	args := []string{
		strconv.Itoa(invocation.Latency),
		"mm-link",
		invocation.DownlinkTrace,
		invocation.UplinkTrace,
		"--",
	}
	args = append(args, m.DriverCommand...)
	args = append(args, "--schemes", invocation.Algorithm)

	command := exec.CommandContext(ctx, "mm-delay", args...)
	command.Stdout = logFile
	command.Stderr = logFile

	if err = command.Run(); err != nil {
		return errors.Wrapf(err, "emulation pipeline for %s", invocation.Algorithm)
	}
	return nil
}
