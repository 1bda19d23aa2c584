// Package trace tags outgoing API calls with request IDs and keeps simple
// call metrics.
package trace

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync/atomic"
	"time"
)

// HeaderRequestID carries the request ID to the API.
const HeaderRequestID = "X-Request-ID"

type ctxKey struct{}

// GenerateRequestID creates a unique request ID for tracing
func GenerateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

// WithRequestID returns a context carrying id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// RequestID extracts the request ID from context
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(ctxKey{}).(string); ok {
		return id
	}
	return ""
}

// Ensure returns ctx and its request ID, adding a fresh one when missing.
func Ensure(ctx context.Context) (context.Context, string) {
	if id := RequestID(ctx); id != "" {
		return ctx, id
	}
	id := GenerateRequestID()
	return WithRequestID(ctx, id), id
}

// Metrics counts API calls. Safe for concurrent use.
type Metrics struct {
	total    atomic.Int64
	failed   atomic.Int64
	lastTime atomic.Int64 // microseconds
}

// Snapshot is a point-in-time copy of Metrics.
type Snapshot struct {
	TotalRequests  int64
	FailedRequests int64
	LastDuration   time.Duration
}

// Record adds one finished call.
func (m *Metrics) Record(d time.Duration, failed bool) {
	m.total.Add(1)
	if failed {
		m.failed.Add(1)
	}
	m.lastTime.Store(d.Microseconds())
}

// Snapshot returns the current counters.
func (m *Metrics) Snapshot() Snapshot {
	return Snapshot{
		TotalRequests:  m.total.Load(),
		FailedRequests: m.failed.Load(),
		LastDuration:   time.Duration(m.lastTime.Load()) * time.Microsecond,
	}
}
