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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeArtifact(t *testing.T, dir string, name string, modTime time.Time) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("throughput,rtt\n1.0,2.0\n"), 0o644))
	require.NoError(t, os.Chtimes(path, modTime, modTime))
	return path
}

func TestLocateEmptyDirectory(t *testing.T) {
	l := &ArtifactLocator{Dir: t.TempDir()}
	_, err := l.Locate("bbr", time.Time{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocateMissingDirectory(t *testing.T) {
	l := &ArtifactLocator{Dir: filepath.Join(t.TempDir(), "does-not-exist")}
	_, err := l.Locate("bbr", time.Time{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocatePicksNewest(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	writeArtifact(t, dir, "metrics_bbr_001.csv", now.Add(-3*time.Hour))
	expected := writeArtifact(t, dir, "metrics_bbr_002.csv", now.Add(-1*time.Hour))
	writeArtifact(t, dir, "metrics_bbr_003.csv", now.Add(-2*time.Hour))

	l := &ArtifactLocator{Dir: dir}
	path, err := l.Locate("bbr", time.Time{})
	require.NoError(t, err)
	assert.Equal(t, expected, path)
}

func TestLocateNeverMatchesAnotherAlgorithm(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	writeArtifact(t, dir, "metrics_bbrplus_001.csv", now)
	writeArtifact(t, dir, "metrics_vegas_001.csv", now)

	l := &ArtifactLocator{Dir: dir}
	_, err := l.Locate("bbr", time.Time{})
	assert.ErrorIs(t, err, ErrNotFound)

	path, err := l.Locate("bbrplus", time.Time{})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "metrics_bbrplus_001.csv"), path)
}

func TestLocateIgnoresStaleArtifacts(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	writeArtifact(t, dir, "metrics_bbr_001.csv", now.Add(-1*time.Hour))

	l := &ArtifactLocator{Dir: dir}
	_, err := l.Locate("bbr", now)
	assert.ErrorIs(t, err, ErrNotFound)

	fresh := writeArtifact(t, dir, "metrics_bbr_002.csv", now.Add(time.Second))
	path, err := l.Locate("bbr", now)
	require.NoError(t, err)
	assert.Equal(t, fresh, path)
}

func TestLocateIgnoresNonArtifactEntries(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "metrics_bbr_dir.csv"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "metrics_bbr_001.txt"), []byte("x"), 0o644))
	expected := writeArtifact(t, dir, "metrics_bbr_001.csv", now)

	l := &ArtifactLocator{Dir: dir}
	path, err := l.Locate("bbr", time.Time{})
	require.NoError(t, err)
	assert.Equal(t, expected, path)
}
