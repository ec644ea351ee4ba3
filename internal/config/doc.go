// Package config loads, normalizes, and validates subfuse configuration.
//
// Configuration is TOML with an embedded sample. Every detector and merger
// threshold is surfaced here so engine runs are deterministic and fully
// parameterized; components receive the relevant section by value and never
// read process-wide state.
package config
