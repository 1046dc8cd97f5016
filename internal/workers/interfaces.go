// Package workers runs the background jobs of the server next to the
// HTTP and gRPC listeners.
package workers

import "context"

// Worker is a background job. Run starts it and returns immediately; the job
// keeps going until ctx is cancelled or Stop is called. Stop blocks until the
// job has exited and is a no-op for a job that is not running.
type Worker interface {
	Run(ctx context.Context)
	Stop()
}
