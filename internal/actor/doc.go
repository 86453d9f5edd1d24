// Package actor provides an HTTP client for the remote record store that
// keeps Sanctuary's sessions, presets, goals and custom wallpapers.
//
// # Architecture
//
//   - client.go: the Actor interface, the HTTP Client and request handling
//   - types.go: records mirroring the actor's JSON schema
//   - errors.go: the typed *Error and its Kind sentinels
//
// # Client Usage
//
//	client, err := actor.NewClient(cfg.APIBind, cfg.RequestTimeout)
//	if err != nil {
//		return err
//	}
//	sessions, err := client.ExportSessions(ctx)
//
// # Wire Format
//
// Timestamps and durations are int64 nanoseconds since the Unix epoch. Use
// ToWire and FromWire to convert. Optional session fields (label, color,
// tags) are sent as JSON null when empty so the actor applies its defaults.
//
// # Error Handling
//
// Every failed call returns an *Error whose Kind classifies the failure:
//
//   - 400/409/422 and other 4xx: KindValidation (ErrValidation)
//   - 404: KindNotFound (ErrNotFound)
//   - 5xx: KindServer (ErrServer)
//   - transport failures: KindNetwork (ErrNetwork)
//   - malformed JSON: KindDecode (ErrDecode)
//
// Match with errors.Is(err, actor.ErrNotFound) or inspect with KindOf.
// Requests are not retried.
//
// # Request IDs
//
// Each request carries a random X-Request-Id header so actor logs can be
// correlated with Sanctuary's log file.
package actor
