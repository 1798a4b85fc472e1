package json

import (
	"strings"
	"testing"
)

type payload struct {
	Action     string  `json:"action"`
	Confidence float64 `json:"confidence"`
}

func TestDecodePureJSON(t *testing.T) {
	response := `{"action": "tone", "confidence": 0.8}`
	result, err := Decode[payload](response)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Action != "tone" {
		t.Errorf("expected action 'tone', got '%s'", result.Action)
	}
	if result.Confidence != 0.8 {
		t.Errorf("expected confidence 0.8, got %v", result.Confidence)
	}
}

func TestDecodeWithSurroundingProse(t *testing.T) {
	cases := []string{
		`Here is the result: {"action": "tone", "confidence": 0.8}`,
		`{"action": "tone", "confidence": 0.8} That's my answer.`,
		`Let me think... {"action": "tone", "confidence": 0.8} Done!`,
	}
	for _, response := range cases {
		result, err := Decode[payload](response)
		if err != nil {
			t.Fatalf("Decode(%q) error: %v", response, err)
		}
		if result.Action != "tone" {
			t.Errorf("Decode(%q) action = %q", response, result.Action)
		}
	}
}

func TestDecodeMarkdownFences(t *testing.T) {
	response := "```json\n{\"action\": \"simplify\", \"confidence\": 0.9}\n```"
	result, err := Decode[payload](response)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Action != "simplify" {
		t.Errorf("expected 'simplify', got %q", result.Action)
	}

	bare := "```\n{\"action\": \"fix\"}\n```"
	result, err = Decode[payload](bare)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Action != "fix" {
		t.Errorf("expected 'fix', got %q", result.Action)
	}
}

func TestDecodeTrailingBracesInProse(t *testing.T) {
	// The decoder must stop at the object's end even with a later brace.
	response := `{"action": "add", "confidence": 0.5} and then a stray }`
	result, err := Decode[payload](response)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Action != "add" {
		t.Errorf("expected 'add', got %q", result.Action)
	}
}

func TestDecodeNestedObject(t *testing.T) {
	type wrapper struct {
		Inner payload `json:"inner"`
	}
	response := `reply: {"inner": {"action": "remove", "confidence": 0.7}}`
	result, err := Decode[wrapper](response)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Inner.Action != "remove" {
		t.Errorf("expected 'remove', got %q", result.Inner.Action)
	}
}

func TestDecodeNoJSON(t *testing.T) {
	_, err := Decode[payload]("just plain prose, no objects here")
	if err == nil {
		t.Fatal("expected error for non-JSON response")
	}
}

func TestErrorPreviewIsTruncated(t *testing.T) {
	long := strings.Repeat("x", 500)
	_, err := Decode[payload](long)
	if err == nil {
		t.Fatal("expected error")
	}
	if len(err.Error()) > 250 {
		t.Errorf("error message too long: %d chars", len(err.Error()))
	}
}

func TestExtractReturnsRawObject(t *testing.T) {
	raw, err := Extract(`noise {"a": 1} noise`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if raw != `{"a": 1}` {
		t.Errorf("raw = %q", raw)
	}
}
