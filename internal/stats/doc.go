// Package stats aggregates study sessions and goals for the dashboard and
// the stats command. All functions are pure and take the current time.
package stats
