// Copyright 2025 Andamio Labs
//
// CourseStudentAssignmentCommit is the v1 transaction a student uses to
// commit assignment evidence: the full evidence document is normalized and
// hashed off-chain (pkg/hashing.ComputeAssignmentInfoHash) and only the
// resulting assignment-info hash goes on-chain.

package v1

import (
	"github.com/andamio-labs/txcore/pkg/registry"
	"github.com/andamio-labs/txcore/pkg/schema"
	"github.com/andamio-labs/txcore/pkg/sideeffect"
)

// CourseStudentAssignmentCommitTx is the registry name for the student
// assignment-commit transaction.
const CourseStudentAssignmentCommitTx registry.TransactionName = "COURSE_STUDENT_ASSIGNMENT_COMMIT"

// CourseStudentAssignmentCommit builds the v1 assignment-commit definition.
func CourseStudentAssignmentCommit() registry.TransactionDefinition {
	schemas, err := schema.CreateSchemas(schema.CreateSchemasParams{
		TxParams: []schema.Field{
			{Name: "courseId", Kind: schema.KindString, Required: true},
			{Name: "taskId", Kind: schema.KindString, Required: true},
			{Name: "evidence", Kind: schema.KindObject, Required: true},
			{Name: "walletAddr", Kind: schema.KindString, Required: true},
		},
		SideEffectParams: []schema.Field{
			{Name: "studentAlias", Kind: schema.KindString, Required: false},
		},
	})
	if err != nil {
		panic(err)
	}

	return registry.TransactionDefinition{
		TxType: CourseStudentAssignmentCommitTx,
		Role:   "student",
		ProtocolSpec: registry.ProtocolSpec{
			Version:        registry.VersionV1,
			ID:             "assignment-commit",
			YamlPath:       "v1/course/student/assignment-commit.yaml",
			RequiredTokens: []string{"STUDENT_ACCESS_TOKEN"},
		},
		BuildTxConfig: registry.BuildTxConfig{
			Schemas:      schemas,
			BuilderPath:  "/api/v1/course/assignment/build",
			InputHelpers: []string{"computeAssignmentInfoHash"},
		},
		OnSubmit: []sideeffect.SideEffect{
			{
				Def:    "notifyAssignmentServiceSubmitted",
				Method: sideeffect.MethodPost,
				Endpoint: "/internal/tasks/{taskId}/assignments/submitted",
				PathParams: map[string]string{
					"taskId": "buildInputs.taskId",
				},
				Body: map[string]schema.FieldSource{
					"txHash":     schema.Context("txHash"),
					"walletAddr": schema.Context("walletAddress"),
					"courseId":   schema.Context("buildInputs.courseId"),
					"evidence":   schema.Context("buildInputs.evidence"),
				},
				Critical: true,
			},
			{
				Def:      "notifyAdvisorMailer",
				Method:   sideeffect.MethodPost,
				Endpoint: sideeffect.NotImplemented,
				Critical: false,
			},
		},
		OnConfirmation: []sideeffect.SideEffect{
			{
				Def:    "recordAssignmentCommitConfirmed",
				Method: sideeffect.MethodPatch,
				Endpoint: "/internal/tasks/{taskId}/assignments/confirmed",
				PathParams: map[string]string{
					"taskId": "buildInputs.taskId",
				},
				Body: map[string]schema.FieldSource{
					"blockHeight":  schema.Context("blockHeight"),
					"assignmentInfoHash": schema.OnChainData("metadata.assignmentInfoHash"),
				},
				Critical: false,
				Retry:    &sideeffect.RetryPolicy{MaxAttempts: 5, BackoffMs: 2000},
			},
		},
		UI: registry.UI{
			ButtonText:  "Submit Assignment",
			Title:       "Commit your evidence",
			Description: []string{"Commits a Blake2b-256 digest of your submission to the chain; the full evidence stays off-chain."},
		},
		Docs: registry.Docs{
			ProtocolDocs: "docs/protocol/assignment-commit.md",
		},
	}
}
