// Package chime plays the short tone that marks the end of a timer phase.
//
// On Linux the tone is streamed to PulseAudio; elsewhere it goes through
// oto. Both render the same decaying sine.
package chime
