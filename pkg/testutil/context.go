package testutil

import (
	"context"
	"time"

	"warishd/pkg/requestcontext"
)

// FixedTime is the pinned clock used across unit tests so timestamps compare
// deterministically.
var FixedTime = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

// Context returns a background context with a pinned request time.
func Context() context.Context {
	return requestcontext.WithTime(context.Background(), FixedTime)
}

// ContextAt returns a background context pinned to the given time.
func ContextAt(t time.Time) context.Context {
	return requestcontext.WithTime(context.Background(), t)
}
