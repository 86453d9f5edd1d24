// Package ambient plays looping background sounds.
//
// Controller is the only owner of playback. It keeps at most one Media
// alive, tears the previous one down before creating the next, retries
// failed loads with linear backoff and parks in StateBlocked when playback
// needs a user gesture. The selected sound and volume are persisted through
// prefs so the next launch can restore them.
//
// Media is implemented by an external player process (mpv or ffplay) in
// production and by fakes in tests.
package ambient
