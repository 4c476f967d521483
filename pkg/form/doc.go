// Package form implements the form state machine: it owns field values, the
// touched flags and derived errors for one form declaration, and orchestrates
// submission through a Submitter.
//
// Transitions are EditField, Submit (with its success and failure branches),
// Reset and DismissNotification. Each produces a new immutable Snapshot which
// is handed to subscribers, so a UI layer renders snapshots instead of reaching
// into engine state. None of the transitions return errors; every outcome is
// expressed in the snapshot or in the returned Outcome.
//
// Only one submission may be in flight per engine. A Submit issued while
// another is pending is ignored and reports OutcomeBusy. A Submit that reaches
// the submitter closes the previous notification first.
package form
