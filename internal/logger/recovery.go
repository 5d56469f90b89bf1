package logger

import (
	"context"
	"runtime/debug"
)

// Recover traps panics in background goroutines and logs them with a stack
// trace. FatalError panics have already been logged and are dropped.
// Usage: defer logger.Recover(ctx)
func Recover(ctx context.Context) {
	if r := recover(); r != nil {
		if _, ok := r.(FatalError); ok {
			return
		}
		log(ctx, LevelError, "panic: %v\n%s", r, debug.Stack())
	}
}
