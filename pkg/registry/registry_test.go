package registry

import "testing"

func sampleDefs() []TransactionDefinition {
	return []TransactionDefinition{
		{
			TxType:       "COURSE_MODULE_MINT",
			Role:         "teacher",
			ProtocolSpec: ProtocolSpec{Version: VersionV1, ID: "course-module-mint"},
		},
		{
			TxType:       "COURSE_STUDENT_ASSIGNMENT_COMMIT",
			Role:         "student",
			ProtocolSpec: ProtocolSpec{Version: VersionV1, ID: "assignment-commit"},
		},
		{
			TxType:       "COURSE_TASK_CREATE",
			Role:         "owner",
			ProtocolSpec: ProtocolSpec{Version: VersionV2, ID: "task-create"},
		},
	}
}

func TestGetTransactionDefinitionRoundTrip(t *testing.T) {
	r, err := New(sampleDefs()...)
	if err != nil {
		t.Fatal(err)
	}
	for _, d := range sampleDefs() {
		got, ok := r.GetTransactionDefinition(d.TxType)
		if !ok {
			t.Fatalf("expected %s to be found", d.TxType)
		}
		if got.TxType != d.TxType {
			t.Fatalf("invariant violated: getTransactionDefinition(%s).TxType == %s", d.TxType, got.TxType)
		}
	}
}

func TestGetTransactionDefinitionUnknownNotFound(t *testing.T) {
	r, err := New(sampleDefs()...)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := r.GetTransactionDefinition("DOES_NOT_EXIST"); ok {
		t.Fatal("expected unknown transaction name to report not found")
	}
	if r.HasTransaction("DOES_NOT_EXIST") {
		t.Fatal("expected HasTransaction to report false")
	}
}

func TestNewRejectsDuplicateNames(t *testing.T) {
	defs := sampleDefs()
	defs = append(defs, defs[0])
	if _, err := New(defs...); err == nil {
		t.Fatal("expected ErrDuplicateTransactionName")
	}
}

func TestFilters(t *testing.T) {
	r, err := New(sampleDefs()...)
	if err != nil {
		t.Fatal(err)
	}

	if got := r.GetTransactionsByRole("student"); len(got) != 1 {
		t.Fatalf("expected 1 student transaction, got %d", len(got))
	}
	if got := r.GetTransactionsByVersion(VersionV1); len(got) != 2 {
		t.Fatalf("expected 2 v1 transactions, got %d", len(got))
	}
	if got := r.GetTransactionsByVersionAndRole(VersionV1, "teacher"); len(got) != 1 {
		t.Fatalf("expected 1 v1 teacher transaction, got %d", len(got))
	}

	versions := r.GetAvailableVersions()
	if len(versions) != 2 || versions[0] != VersionV1 || versions[1] != VersionV2 {
		t.Fatalf("unexpected available versions: %+v", versions)
	}

	counts := r.GetTransactionCountByVersion()
	if counts[VersionV1] != 2 || counts[VersionV2] != 1 {
		t.Fatalf("unexpected counts: %+v", counts)
	}
}

func TestGetAllTransactionDefinitionsReturnsACopy(t *testing.T) {
	r, err := New(sampleDefs()...)
	if err != nil {
		t.Fatal(err)
	}
	all := r.GetAllTransactionDefinitions()
	all[0].Role = "mutated"

	got, _ := r.GetTransactionDefinition(sampleDefs()[0].TxType)
	if got.Role == "mutated" {
		t.Fatal("expected GetAllTransactionDefinitions to return a defensive copy")
	}
}
