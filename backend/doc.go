// Package backend defines the execution collaborator for assembled
// programs.
//
// A Backend accepts a batch of programs, a shot count and execution
// options, and returns a Job. Jobs are polled until they reach a terminal
// state; the Poller models this as an explicit state machine with an
// injectable clock and an optional submission rate limit, so the loop is
// deterministic under test.
//
// The synthesis core never blocks; all blocking, polling and timeout live
// here, and every failure is reported as an error value, never a panic.
package backend
