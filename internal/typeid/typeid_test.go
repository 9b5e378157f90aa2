package typeid

import "testing"

func TestNewIDsValidate(t *testing.T) {
	tests := []struct {
		name   string
		gen    func() string
		prefix string
	}{
		{"stroke", NewStrokeID, PrefixStroke},
		{"history", NewHistoryID, PrefixHistory},
		{"session", NewSessionID, PrefixSession},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := tt.gen()
			if err := Validate(id, tt.prefix); err != nil {
				t.Errorf("Validate(%q) = %v", id, err)
			}
		})
	}
}

func TestValidateRejects(t *testing.T) {
	if err := Validate(NewStrokeID(), PrefixHistory); err == nil {
		t.Error("expected prefix mismatch error")
	}
	if err := Validate("not an id", PrefixStroke); err == nil {
		t.Error("expected parse error")
	}
}

func TestIDsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewStrokeID()
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}
