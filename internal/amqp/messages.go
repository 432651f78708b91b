package amqp

import (
	"encoding/json"
	"time"
)

// ExpenseEventMessage announces an expense lifecycle change. It carries only
// the expense id and event name; consumers fetch the full expense from
// storage, so a deleted expense simply fails the lookup.
type ExpenseEventMessage struct {
	ExpenseID string    `json:"expense_id"`
	Event     string    `json:"event"`
	Timestamp time.Time `json:"timestamp"`
}

func NewExpenseEventMessage(event, expenseID string) *ExpenseEventMessage {
	return &ExpenseEventMessage{
		ExpenseID: expenseID,
		Event:     event,
		Timestamp: time.Now().UTC(),
	}
}

func (m *ExpenseEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ExpenseEventMessageFromJSON(data []byte) (*ExpenseEventMessage, error) {
	var msg ExpenseEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
