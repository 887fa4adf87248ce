// Package retry re-runs operations that fail with transient errors, waiting
// with exponential backoff between attempts.
//
// prepdir uses it around file writes during apply: editors, indexers and
// antivirus scanners briefly hold files open, which surfaces as EBUSY,
// EAGAIN or ETXTBSY and succeeds moments later.
//
//	executor := retry.NewExecutor(retry.NewFileErrorClassifier(), retry.NewExponentialBackoff(3))
//	err := executor.Execute(ctx, func(ctx context.Context) error {
//	    return filelock.LockAndWrite(path, data)
//	})
package retry
