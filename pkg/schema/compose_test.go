package schema

import "testing"

func TestCreateSchemasRejectsDuplicateKeys(t *testing.T) {
	_, err := CreateSchemas(CreateSchemasParams{
		TxParams:         []Field{{Name: "policy", Kind: KindString}},
		SideEffectParams: []Field{{Name: "policy", Kind: KindString}},
	})
	if err == nil {
		t.Fatal("expected ErrDuplicateKey")
	}
}

func TestInputSchemaValidatesDisjointUnion(t *testing.T) {
	schemas, err := CreateSchemas(CreateSchemasParams{
		TxParams:         []Field{{Name: "policy", Kind: KindString, Required: true}},
		SideEffectParams: []Field{{Name: "note", Kind: KindString}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ok := map[string]any{"policy": "p1", "note": "hi"}
	if issues := schemas.InputSchema.Validate(ok); issues != nil {
		t.Fatalf("expected valid input, got issues: %v", issues)
	}

	missing := map[string]any{"note": "hi"}
	if issues := schemas.InputSchema.Validate(missing); issues == nil {
		t.Fatal("expected missing required txParam to fail")
	}
}

func TestObjectValidateStrictRejectsUnknownKeys(t *testing.T) {
	o := Object{Fields: []Field{{Name: "a", Kind: KindString}}, Strict: true}
	issues := o.Validate(map[string]any{"a": "x", "b": 1})
	if len(issues) != 1 || issues[0].Field != "b" {
		t.Fatalf("expected single unknown-key issue for 'b', got %v", issues)
	}
}

func TestObjectValidateNonStrictPreservesUnknownKeys(t *testing.T) {
	o := Object{Fields: []Field{{Name: "a", Kind: KindString}}}
	issues := o.Validate(map[string]any{"a": "x", "extra": 1})
	if issues != nil {
		t.Fatalf("expected no issues, got %v", issues)
	}
}

func TestFieldOneOf(t *testing.T) {
	o := Object{Fields: []Field{{Name: "role", Kind: KindString, OneOf: []any{"student", "teacher"}}}}
	if issues := o.Validate(map[string]any{"role": "admin"}); issues == nil {
		t.Fatal("expected OneOf violation")
	}
	if issues := o.Validate(map[string]any{"role": "student"}); issues != nil {
		t.Fatalf("expected no issues, got %v", issues)
	}
}
