// Package retry implements bounded exponential backoff.
//
// A Policy describes how many times an operation is attempted and how long to wait
// between attempts: InitialInterval * BackoffFactor^n, capped at MaxInterval. Do runs an
// operation under a policy with an injectable Sleeper so tests can observe the waits
// without sleeping.
package retry
