package llm

import (
	"testing"
)

func TestExtractJSON_PlainArray(t *testing.T) {
	input := `[{"source_field": "order_total", "target_field": "value"}]`
	result, err := ExtractJSON(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != input {
		t.Errorf("expected %q, got %q", input, result)
	}
}

func TestExtractJSON_PlainObject(t *testing.T) {
	input := `{"field_map": {"order_total": "value"}}`
	result, err := ExtractJSON(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != input {
		t.Errorf("expected %q, got %q", input, result)
	}
}

func TestExtractJSON_WithThinkTags(t *testing.T) {
	input := `<think>
The order_total column holds currency values, so it maps to value.
</think>
[{"source_field": "order_total", "target_field": "value", "confidence": 0.9}]`

	expected := `[{"source_field": "order_total", "target_field": "value", "confidence": 0.9}]`
	result, err := ExtractJSON(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != expected {
		t.Errorf("expected %q, got %q", expected, result)
	}
}

func TestExtractJSON_WithMarkdownFence(t *testing.T) {
	input := "Here are the mappings:\n```json\n[{\"source_field\": \"txn_id\", \"target_field\": \"transaction_id\"}]\n```"
	expected := `[{"source_field": "txn_id", "target_field": "transaction_id"}]`
	result, err := ExtractJSON(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != expected {
		t.Errorf("expected %q, got %q", expected, result)
	}
}

func TestExtractJSON_ArrayWithSurroundingProse(t *testing.T) {
	input := `Based on the column profiles, here is my analysis: [{"source_field": "email"}] Let me know if you need more.`
	expected := `[{"source_field": "email"}]`
	result, err := ExtractJSON(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != expected {
		t.Errorf("expected %q, got %q", expected, result)
	}
}

func TestExtractJSON_BracketsInsideStrings(t *testing.T) {
	input := `[{"reason": "values look like [bracketed] text with } inside"}]`
	result, err := ExtractJSON(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != input {
		t.Errorf("expected %q, got %q", input, result)
	}
}

func TestExtractJSON_NoJSON(t *testing.T) {
	_, err := ExtractJSON("I am unable to map these columns.")
	if err == nil {
		t.Fatal("expected error for response without JSON")
	}
}

func TestExtractJSON_TruncatedArray(t *testing.T) {
	_, err := ExtractJSON(`[{"source_field": "order_total", "target_fie`)
	if err == nil {
		t.Fatal("expected error for truncated JSON")
	}
}

func TestParseJSONResponse(t *testing.T) {
	type suggestion struct {
		SourceField string  `json:"source_field"`
		Confidence  float64 `json:"confidence"`
	}

	result, err := ParseJSONResponse[[]suggestion](`<think>ok</think>[{"source_field": "email", "confidence": 0.8}]`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result) != 1 || result[0].SourceField != "email" || result[0].Confidence != 0.8 {
		t.Errorf("unexpected result: %+v", result)
	}
}
