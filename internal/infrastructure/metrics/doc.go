// Package metrics exposes expvar-published counters and gauges for the
// trickle runtime (runs, node invocations, the pool scheduler). It
// intentionally avoids external dependencies: this is ambient, optional
// instrumentation, never a load-bearing dependency of internal/core.
package metrics
