package events

import "testing"

func TestChangeMessageJSON(t *testing.T) {
	msg := NewChangeMessage("expense", "created", "abc-123")
	data, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	got, err := ChangeMessageFromJSON(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Entity != "expense" || got.Action != "created" || got.ID != "abc-123" {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if got.Timestamp.IsZero() {
		t.Fatalf("timestamp lost")
	}

	if _, err := ChangeMessageFromJSON([]byte(`{broken`)); err == nil {
		t.Fatalf("expected error for malformed message")
	}
}
