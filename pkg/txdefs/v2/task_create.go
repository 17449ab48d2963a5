// Copyright 2025 Andamio Labs
//
// CourseTaskCreate is the v2 transaction an owner uses to create a task: a
// Plutus Constr-0-encoded record (pkg/hashing.Task) whose Blake2b-256
// digest becomes the on-chain task identifier.

package v2

import (
	"github.com/andamio-labs/txcore/pkg/registry"
	"github.com/andamio-labs/txcore/pkg/schema"
	"github.com/andamio-labs/txcore/pkg/sideeffect"
)

// CourseTaskCreateTx is the registry name for the v2 task-create
// transaction.
const CourseTaskCreateTx registry.TransactionName = "COURSE_TASK_CREATE"

// CourseTaskCreate builds the v2 task-create definition.
func CourseTaskCreate() registry.TransactionDefinition {
	schemas, err := schema.CreateSchemas(schema.CreateSchemasParams{
		TxParams: []schema.Field{
			{Name: "courseId", Kind: schema.KindString, Required: true},
			{Name: "projectContent", Kind: schema.KindString, Required: true},
			{Name: "expirationTime", Kind: schema.KindNumber, Required: true},
			{Name: "lovelaceAmount", Kind: schema.KindNumber, Required: true},
			{Name: "walletAddr", Kind: schema.KindString, Required: true},
		},
		SideEffectParams: []schema.Field{
			{Name: "taskTitle", Kind: schema.KindString, Required: false},
		},
	})
	if err != nil {
		panic(err)
	}

	return registry.TransactionDefinition{
		TxType: CourseTaskCreateTx,
		Role:   "owner",
		ProtocolSpec: registry.ProtocolSpec{
			Version:        registry.VersionV2,
			ID:             "task-create",
			YamlPath:       "v2/course/owner/task-create.yaml",
			RequiredTokens: []string{"COURSE_OWNER_ACCESS_TOKEN"},
		},
		BuildTxConfig: registry.BuildTxConfig{
			Schemas:      schemas,
			BuilderPath:  "/api/v2/course/task/build",
			InputHelpers: []string{"computeTaskHash"},
		},
		OnSubmit: []sideeffect.SideEffect{
			{
				Def:    "notifyCourseServiceTaskSubmitted",
				Method: sideeffect.MethodPost,
				Endpoint: "/internal/courses/{courseId}/tasks/submitted",
				PathParams: map[string]string{
					"courseId": "buildInputs.courseId",
				},
				Body: map[string]schema.FieldSource{
					"txHash":     schema.Context("txHash"),
					"walletAddr": schema.Context("walletAddress"),
					"courseId":   schema.Context("buildInputs.courseId"),
				},
				Critical: true,
			},
		},
		OnConfirmation: []sideeffect.SideEffect{
			{
				Def:    "recordTaskCreateConfirmed",
				Method: sideeffect.MethodPatch,
				Endpoint: "/internal/courses/{courseId}/tasks/confirmed",
				PathParams: map[string]string{
					"courseId": "buildInputs.courseId",
				},
				Body: map[string]schema.FieldSource{
					"blockHeight": schema.Context("blockHeight"),
					"taskHash":    schema.OnChainData("outputs[0].datumHash"),
				},
				Critical: false,
				Retry:    &sideeffect.RetryPolicy{MaxAttempts: 5, BackoffMs: 2000},
			},
		},
		UI: registry.UI{
			ButtonText:  "Create Task",
			Title:       "Publish a new task",
			Description: []string{"Creates an on-chain task record that students can commit assignment evidence against."},
		},
		Docs: registry.Docs{
			ProtocolDocs: "docs/protocol/task-create.md",
		},
	}
}
