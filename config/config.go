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

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/network-quality/ccbench/utilities"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// NetworkProfile is one emulated link condition: a propagation delay and
// the uplink/downlink trace files handed to the emulation harness. Profiles
// are built once at startup and never mutated.
type NetworkProfile struct {
	Latency       int    `yaml:"latency"`
	DownlinkTrace string `yaml:"downlink_trace"`
	UplinkTrace   string `yaml:"uplink_trace"`
}

// ProfileEntry pairs a profile with its key. Profiles are declared as an
// ordered list (not a map) so that the matrix iterates them in a
// deterministic, reproducible order.
type ProfileEntry struct {
	Key            string `yaml:"key"`
	NetworkProfile `yaml:",inline"`
}

type Config struct {
	Algorithms    []string       `yaml:"algorithms"`
	Profiles      []ProfileEntry `yaml:"profiles"`
	DriverCommand []string       `yaml:"driver_command"`
	MetricsDir    string         `yaml:"metrics_dir"`
	ResultsDir    string         `yaml:"results_dir"`
	ReportsDir    string         `yaml:"reports_dir"`
	RunTimeout    int            `yaml:"run_timeout_seconds"`
}

// Default is the built-in experiment table used when no configuration file
// is given.
func Default() *Config {
	return &Config{
		Algorithms: []string{"bbr", "vivace", "vegas"},
		Profiles: []ProfileEntry{
			{
				Key: "low_latency",
				NetworkProfile: NetworkProfile{
					Latency:       5,
					DownlinkTrace: "mahimahi/traces/TMobile-LTE-driving.down",
					UplinkTrace:   "mahimahi/traces/TMobile-LTE-driving.up",
				},
			},
			{
				Key: "high_latency",
				NetworkProfile: NetworkProfile{
					Latency:       200,
					DownlinkTrace: "mahimahi/traces/TMobile-LTE-short.down",
					UplinkTrace:   "mahimahi/traces/TMobile-LTE-short.up",
				},
			},
		},
		DriverCommand: []string{"python3", "tests/test_schemes.py"},
		MetricsDir:    "logs",
		ResultsDir:    "results",
		ReportsDir:    "graphs",
		RunTimeout:    0,
	}
}

// Load reads a YAML configuration file on top of the built-in defaults.
func Load(path string) (*Config, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read configuration file %s", path)
	}

	loaded := Default()
	if err = yaml.Unmarshal(contents, loaded); err != nil {
		return nil, errors.Wrapf(err, "could not parse configuration file %s", path)
	}
	return loaded, nil
}

func (c *Config) IsValid() error {
	if len(c.Algorithms) == 0 {
		return fmt.Errorf("configuration declares no congestion control algorithms")
	}
	for _, algorithm := range c.Algorithms {
		if algorithm == "" || strings.ContainsAny(algorithm, " \t/") {
			return fmt.Errorf(
				"algorithm name is invalid: %s",
				utilities.Conditional(len(algorithm) != 0, algorithm, "Missing"),
			)
		}
	}
	if len(c.Profiles) == 0 {
		return fmt.Errorf("configuration declares no network profiles")
	}
	seen := make(map[string]struct{})
	for _, entry := range c.Profiles {
		if entry.Key == "" {
			return fmt.Errorf("network profile key is invalid: Missing")
		}
		if _, duplicate := seen[entry.Key]; duplicate {
			return fmt.Errorf("network profile key is duplicated: %s", entry.Key)
		}
		seen[entry.Key] = struct{}{}
		if entry.Latency < 0 {
			return fmt.Errorf("network profile %s has a negative latency: %d", entry.Key, entry.Latency)
		}
		if entry.DownlinkTrace == "" || entry.UplinkTrace == "" {
			return fmt.Errorf(
				"network profile %s is missing its %s trace",
				entry.Key,
				utilities.Conditional(entry.DownlinkTrace == "", "downlink", "uplink"),
			)
		}
	}
	if len(c.DriverCommand) == 0 {
		return fmt.Errorf("configuration declares no test driver command")
	}
	if c.RunTimeout < 0 {
		return fmt.Errorf("per-run timeout is negative: %d", c.RunTimeout)
	}
	return nil
}

func (c *Config) String() string {
	keys := make([]string, len(c.Profiles))
	for i, entry := range c.Profiles {
		keys[i] = entry.Key
	}
	return fmt.Sprintf(
		"Algorithms: %s\nProfiles: %s\nDriver: %s\n",
		strings.Join(c.Algorithms, ", "),
		strings.Join(keys, ", "),
		strings.Join(c.DriverCommand, " "),
	)
}
