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

package locator

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// ErrNotFound means no usable metrics artifact exists for the requested
// algorithm. It is not fatal: the run that asked simply has no result.
var ErrNotFound = errors.New("no matching metrics artifact")

// ArtifactLocator finds the metrics artifact the external test driver wrote
// for a given algorithm. The driver writes metrics_<algorithm>_<suffix>.csv
// files into one shared directory with no per-run namespace, so the locator
// is only correct while runs are serialized.
type ArtifactLocator struct {
	Dir string
}

// Locate returns the path of the most-recently-modified artifact for
// algorithm that was written at or after since, or ErrNotFound. The since
// cutoff keeps a stale artifact from an earlier run from being picked up
// when the driver silently fails to write a new one. Ties on modification
// time are broken arbitrarily (last in directory order wins).
func (l *ArtifactLocator) Locate(algorithm string, since time.Time) (string, error) {
	entries, err := os.ReadDir(l.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNotFound
		}
		return "", errors.Wrapf(err, "could not scan metrics directory %s", l.Dir)
	}

	// The full prefix includes the trailing underscore so that bbr never
	// matches an artifact named metrics_bbrplus_....
	prefix := "metrics_" + algorithm + "_"

	newest := ""
	var newestModTime time.Time
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, ".csv") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if !since.IsZero() && info.ModTime().Before(since) {
			continue
		}
		if newest == "" || !info.ModTime().Before(newestModTime) {
			newest = name
			newestModTime = info.ModTime()
		}
	}

	if newest == "" {
		return "", ErrNotFound
	}
	return filepath.Join(l.Dir, newest), nil
}
