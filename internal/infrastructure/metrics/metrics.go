package metrics

import (
	"expvar"
)

// Run metrics.
var (
	runsStarted   = new(expvar.Int)
	runsCompleted = new(expvar.Int)
	runsFailed    = new(expvar.Int)
)

// Node invocation metrics.
var (
	nodeInvocations    = new(expvar.Int)
	fallbacksRecovered = new(expvar.Int)
	wrappedFailures    = new(expvar.Int)
)

// Pool scheduler metrics.
var (
	schedulerWorkers     = new(expvar.Int)
	schedulerQueuedTotal = new(expvar.Int)
	schedulerStolenTotal = new(expvar.Int)
)

func init() {
	expvar.Publish("trickle_runs_started_total", runsStarted)
	expvar.Publish("trickle_runs_completed_total", runsCompleted)
	expvar.Publish("trickle_runs_failed_total", runsFailed)
	expvar.Publish("trickle_node_invocations_total", nodeInvocations)
	expvar.Publish("trickle_fallbacks_recovered_total", fallbacksRecovered)
	expvar.Publish("trickle_wrapped_failures_total", wrappedFailures)
	expvar.Publish("trickle_scheduler_workers", schedulerWorkers)
	expvar.Publish("trickle_scheduler_queued_total", schedulerQueuedTotal)
	expvar.Publish("trickle_scheduler_stolen_total", schedulerStolenTotal)
}

// Run helpers
func RunStarted()   { runsStarted.Add(1) }
func RunCompleted() { runsCompleted.Add(1) }
func RunFailed()    { runsFailed.Add(1) }

// Node invocation helpers
func NodeInvoked()       { nodeInvocations.Add(1) }
func FallbackRecovered() { fallbacksRecovered.Add(1) }
func FailureWrapped()    { wrappedFailures.Add(1) }

// Scheduler helpers
func SetSchedulerWorkers(n int) { schedulerWorkers.Set(int64(n)) }
func AddSchedulerQueued(n int)  { schedulerQueuedTotal.Add(int64(n)) }
func AddSchedulerStolen(n int)  { schedulerStolenTotal.Add(int64(n)) }
