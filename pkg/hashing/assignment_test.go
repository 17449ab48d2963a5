package hashing

import "testing"

func TestComputeAssignmentInfoHashKeyOrderInvariant(t *testing.T) {
	a := map[string]any{"b": float64(1), "a": "x "}
	b := map[string]any{"a": "x", "b": float64(1)}

	ha, err := ComputeAssignmentInfoHash(a)
	if err != nil {
		t.Fatal(err)
	}
	hb, err := ComputeAssignmentInfoHash(b)
	if err != nil {
		t.Fatal(err)
	}
	if ha != hb {
		t.Fatalf("expected key-order/whitespace invariance, got %s != %s", ha, hb)
	}
}

func TestComputeAssignmentInfoHashNestedAndArrays(t *testing.T) {
	doc := map[string]any{
		"title": "  Final Submission  ",
		"items": []any{
			map[string]any{"z": 1.0, "a": "first "},
			map[string]any{"a": "second", "z": 2.0},
		},
		"missing": nil,
	}

	hash, err := ComputeAssignmentInfoHash(doc)
	if err != nil {
		t.Fatal(err)
	}
	if !IsValidAssignmentInfoHash(hash) {
		t.Fatalf("expected valid hash, got %q", hash)
	}
	if !VerifyAssignmentInfoHash(doc, hash) {
		t.Fatal("expected round-trip verification to succeed")
	}
}

func TestVerifyEvidenceDetailedMismatch(t *testing.T) {
	doc := map[string]any{"a": 1.0}
	result := VerifyEvidenceDetailed(doc, "0000000000000000000000000000000000000000000000000000000000000000")
	if result.OK {
		t.Fatal("expected mismatch")
	}
	if result.Message == "" {
		t.Fatal("expected a non-empty message")
	}
}

func TestComputeAssignmentInfoHashDeterministic(t *testing.T) {
	doc := map[string]any{"a": "x", "b": []any{1.0, 2.0, 3.0}}
	h1, _ := ComputeAssignmentInfoHash(doc)
	h2, _ := ComputeAssignmentInfoHash(doc)
	if h1 != h2 {
		t.Fatal("expected deterministic output across invocations")
	}
}
