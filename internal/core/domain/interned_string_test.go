package domain_test

import (
	"encoding/json"
	"testing"

	"go.trai.ch/mk/internal/core/domain"
)

func TestInternedString(t *testing.T) {
	is1 := domain.NewInternedString("clean")
	is2 := domain.NewInternedString("clean")

	// Identical strings intern to the same handle, so values compare equal.
	if is1 != is2 {
		t.Errorf("Expected interned strings to be equal, got %v and %v", is1, is2)
	}

	if is1.String() != "clean" {
		t.Errorf("Expected String() to return %q, got %q", "clean", is1.String())
	}
}

func TestInternedString_Zero(t *testing.T) {
	var zero domain.InternedString
	if zero.String() != "" {
		t.Errorf("Expected zero value to yield empty string, got %q", zero.String())
	}
}

func TestInternedStringJSON(t *testing.T) {
	type record struct {
		Target domain.InternedString `json:"target"`
	}

	original := record{Target: domain.NewInternedString("build")}

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}
	if string(data) != `{"target":"build"}` {
		t.Errorf("Unexpected JSON: %s", data)
	}

	var decoded record
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	if decoded.Target != original.Target {
		t.Errorf("Expected %q after round trip, got %q", original.Target.String(), decoded.Target.String())
	}
}
