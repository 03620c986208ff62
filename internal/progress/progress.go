package progress

import "context"

// Func is a callback for reporting progress messages.
type Func func(msg string)

type progressKey struct{}

// WithReporter returns a context carrying the given progress callback.
func WithReporter(ctx context.Context, fn Func) context.Context {
	return context.WithValue(ctx, progressKey{}, fn)
}

// Report calls the progress callback in ctx, if any.
// Safe to call when no callback is set (e.g. MCP mode); it simply returns.
func Report(ctx context.Context, msg string) {
	if fn, ok := ctx.Value(progressKey{}).(Func); ok && fn != nil {
		fn(msg)
	}
}
