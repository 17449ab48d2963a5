package v1

import (
	"encoding/json"
	"testing"

	"github.com/andamio-labs/txcore/pkg/schema"
	"github.com/andamio-labs/txcore/pkg/testharness"
)

func decodeBody(t *testing.T, raw []byte) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("decode request body: %v", err)
	}
	return body
}

func TestCourseModuleMintOnSubmitNotifiesCourseService(t *testing.T) {
	def := CourseModuleMint()

	ctx := testharness.CreateMockSubmissionContext(testharness.SubmissionContextOverrides{
		TxHash:     "abc123",
		WalletAddr: "addr_test1abc",
		BuildInputs: map[string]any{
			"courseId": "course-9",
		},
	})

	transport := &testharness.RecordingTransport{}
	result, err := testharness.TestSideEffect(def.OnSubmit[0], ctx.ToMap(), transport)
	if err != nil {
		t.Fatalf("TestSideEffect: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success, got %+v", result)
	}
	if len(transport.Requests) != 1 {
		t.Fatalf("expected 1 request, got %d", len(transport.Requests))
	}

	req := transport.Requests[0]
	if req.URL != "/internal/courses/course-9/modules/submitted" {
		t.Errorf("unexpected resolved endpoint: %q", req.URL)
	}
	body := decodeBody(t, req.Body)
	if body["txHash"] != "abc123" {
		t.Errorf("expected txHash in body, got %+v", body)
	}
	if body["walletAddr"] != "addr_test1abc" {
		t.Errorf("expected walletAddr in body, got %+v", body)
	}
}

func TestCourseModuleMintOnConfirmationReadsMintedAsset(t *testing.T) {
	def := CourseModuleMint()

	ctx := testharness.CreateMockConfirmationContext(testharness.ConfirmationContextOverrides{
		SubmissionContextOverrides: testharness.SubmissionContextOverrides{
			BuildInputs: map[string]any{"courseId": "course-9"},
		},
		BlockHeight: 42,
		OnChainData: &schema.OnChainData{
			Mints: []schema.Mint{{PolicyID: "policy-abc", AssetName: "deadbeef", Quantity: 1}},
		},
	})

	transport := &testharness.RecordingTransport{}
	result, err := testharness.TestSideEffect(def.OnConfirmation[0], ctx.ToMap(), transport)
	if err != nil {
		t.Fatalf("TestSideEffect: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success, got %+v", result)
	}

	body := decodeBody(t, transport.Requests[0].Body)
	if body["moduleHash"] != "deadbeef" {
		t.Errorf("expected moduleHash from mints[0].assetName, got %+v", body)
	}
	if body["policyId"] != "policy-abc" {
		t.Errorf("expected policyId from mints[0].policyId, got %+v", body)
	}
	if body["blockHeight"] != float64(42) {
		t.Errorf("expected blockHeight 42, got %+v", body)
	}
}

func TestCourseModuleMintValidatesAgainstMockContextBeforeSubmission(t *testing.T) {
	def := CourseModuleMint()
	ctx := testharness.CreateMockSubmissionContext(testharness.SubmissionContextOverrides{
		BuildInputs: map[string]any{"courseId": "course-1"},
	})

	for _, se := range def.OnSubmit {
		if err := testharness.ValidateSideEffect(se, ctx.ToMap()); err != nil {
			t.Errorf("side effect %q failed validation: %v", se.Def, err)
		}
	}
}
