// Package quotes holds the motivational quotes shown under the timer.
package quotes
