// Package events publishes client-side events to an AMQP broker so other
// services can react to what the user records.
package events

import (
	"context"

	"moneymaven/internal/core"
)

// Publisher announces recorded expenses.
type Publisher interface {
	PublishExpenseRecorded(ctx context.Context, e core.Expense) error
	Close() error
}

// Nop is the Publisher used when no broker is configured.
type Nop struct{}

func (Nop) PublishExpenseRecorded(context.Context, core.Expense) error { return nil }

func (Nop) Close() error { return nil }
