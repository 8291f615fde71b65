package testutil

import (
	"context"
	"errors"
	"testing"
	"time"
)

// ErrSimulated is returned by failing fakes (senders, stores).
var ErrSimulated = errors.New("simulated error for testing")

// ContextWithTimeout возвращает context, отменяемый по таймауту или в конце теста.
func ContextWithTimeout(tb testing.TB, d time.Duration) context.Context {
	tb.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), d)
	tb.Cleanup(cancel)
	return ctx
}

// ContextWithCancel возвращает context и его cancel; в конце теста cancel
// вызывается автоматически.
func ContextWithCancel(tb testing.TB) (context.Context, context.CancelFunc) {
	tb.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	tb.Cleanup(cancel)
	return ctx, cancel
}
