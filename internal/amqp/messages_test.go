package amqp

import (
	"testing"
	"time"
)

func TestExpenseEventMessageRoundTrip(t *testing.T) {
	msg := NewExpenseEventMessage("recorded", "abc-123")
	if msg.Timestamp.IsZero() {
		t.Error("Timestamp should be set")
	}

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	got, err := ExpenseEventMessageFromJSON(body)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if got.ExpenseID != "abc-123" {
		t.Errorf("ExpenseID = %q, want abc-123", got.ExpenseID)
	}
	if got.Event != "recorded" {
		t.Errorf("Event = %q, want recorded", got.Event)
	}
	if !got.Timestamp.Equal(msg.Timestamp.Truncate(time.Nanosecond)) {
		t.Errorf("Timestamp = %v, want %v", got.Timestamp, msg.Timestamp)
	}
}

func TestExpenseEventMessageFromJSONInvalid(t *testing.T) {
	if _, err := ExpenseEventMessageFromJSON([]byte("{not json")); err == nil {
		t.Error("expected error for malformed JSON")
	}
}
