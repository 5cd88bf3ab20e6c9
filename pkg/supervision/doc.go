// Package supervision tracks packages whose check could not complete.
//
// When checks continue past failures, each failed package is recorded in a
// FailureTracker together with a human-readable reason. The tracker is
// printed as a summary after the report so failures are never confused with
// up-to-date packages.
//
// # Core Types
//
// FailureTracker is a thread-safe collector:
//
//	tracker := supervision.NewFailureTracker()
//	tracker.Add("black", err)
//	tracker.Messages("") // ["black: pipx exited with status 1: ..."]
//
// The scheduler owns one tracker per run and exposes its lines through
// Summary.FailureMessages. Unparseable pip rows are not tracked.
//
// # Thread Safety
//
// FailureTracker is safe for concurrent use from multiple goroutines.
// All Add operations are serialized, and Failures returns a sorted snapshot.
package supervision
