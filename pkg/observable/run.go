package observable

import "context"

// Operation is a single asynchronous unit of work executed under busy/error
// bookkeeping. It runs exactly once per invocation; there is no retry.
type Operation[T any] func(ctx context.Context) (T, error)

// Run executes op for key with busy/error bookkeeping and swallows any
// failure: the error is recorded in the registry, the failure hook fires,
// and the zero value of T is returned. Subscribers are notified when the key
// turns busy (before op starts) and again after it settles.
//
// The busy flag is always cleared after op settles, even if it panics.
func Run[T any](ctx context.Context, t *Tracker, key Key, op Operation[T]) T {
	v, _ := run(ctx, t, key, op)
	return v
}

// RunErr is Run with the failure handed back to the caller after the same
// bookkeeping. On failure the returned value is the zero value of T.
func RunErr[T any](ctx context.Context, t *Tracker, key Key, op Operation[T]) (T, error) {
	return run(ctx, t, key, op)
}

func run[T any](ctx context.Context, t *Tracker, key Key, op Operation[T]) (val T, err error) {
	t.begin(key)
	defer func() { t.settle(key, err) }()

	val, err = op(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	return val, nil
}

// Skeleton returns placeholder while key is busy or when real is absent, and
// *real otherwise. View code calls it per field to substitute loading
// placeholders without branching at every call site.
func Skeleton[T any](t *Tracker, real *T, placeholder T, key Key) T {
	if t.Busy(key) || real == nil {
		return placeholder
	}
	return *real
}
