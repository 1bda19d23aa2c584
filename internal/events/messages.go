package events

import (
	"encoding/json"
	"time"

	"moneymaven/internal/core"
)

// ExpenseRecordedMessage announces an expense the user just added.
type ExpenseRecordedMessage struct {
	ItemName   string           `json:"itemName"`
	Price      float64          `json:"price"`
	Type       core.ExpenseType `json:"type"`
	Date       string           `json:"date"`
	RecordedAt time.Time        `json:"recordedAt"`
}

// NewExpenseRecordedMessage builds the message for e, stamped with the current time
func NewExpenseRecordedMessage(e core.Expense) *ExpenseRecordedMessage {
	return &ExpenseRecordedMessage{
		ItemName:   e.ItemName,
		Price:      e.Price,
		Type:       e.Type,
		Date:       e.Date,
		RecordedAt: time.Now().UTC(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *ExpenseRecordedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ExpenseRecordedMessageFromJSON creates a message from JSON bytes
func ExpenseRecordedMessageFromJSON(data []byte) (*ExpenseRecordedMessage, error) {
	var msg ExpenseRecordedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
