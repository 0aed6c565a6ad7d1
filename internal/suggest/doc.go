// Package suggest implements the debounced suggestion controller behind the
// search box: a Debouncer that waits for typing to pause, a Fetcher that
// numbers lookups and drops stale answers, a Selection over the current
// candidates, and a Controller that wires them together.
//
// Timers and lookups are expressed as bubbletea commands, so the host's event
// loop is the only place state changes. A Controller must be driven from a
// single goroutine; the Fetcher's counters are atomic and may be shared.
package suggest
