// Package workers runs the background jobs of the server.
//
// A Worker blocks in Run until its context is cancelled. Workers runs a set
// of them side by side and waits until every one has returned.
package workers

import "context"

// Worker is a long-running background job.
//
// Run must return once ctx is cancelled. A non-nil error reports why the
// worker stopped early.
type Worker interface {
	Run(ctx context.Context) error
}
