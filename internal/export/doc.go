// Package export writes sessions, presets and goals as CSV, JSON or YAML.
//
// CSV columns and number formatting follow the dashboard export: sessions
// carry UTC timestamps with milliseconds and hours to two decimals, presets
// carry whole minutes, goals carry progress to two decimals.
package export
