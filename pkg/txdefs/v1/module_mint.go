// Copyright 2025 Andamio Labs
//
// CourseModuleMint is the v1 transaction a teacher uses to mint a module
// token: an access-token-gated mint whose on-chain asset name is the
// module hash (Blake2b-256 of the canonical CBOR encoding of the
// module's SLT list, computed by pkg/hashing).

package v1

import (
	"github.com/andamio-labs/txcore/pkg/registry"
	"github.com/andamio-labs/txcore/pkg/schema"
	"github.com/andamio-labs/txcore/pkg/sideeffect"
)

// CourseModuleMintTx is the registry name for the course-module minting
// transaction.
const CourseModuleMintTx registry.TransactionName = "COURSE_MODULE_MINT"

// CourseModuleMint builds the v1 course-module-mint definition.
func CourseModuleMint() registry.TransactionDefinition {
	schemas, err := schema.CreateSchemas(schema.CreateSchemasParams{
		TxParams: []schema.Field{
			{Name: "courseId", Kind: schema.KindString, Required: true},
			{Name: "moduleSlts", Kind: schema.KindArray, Required: true},
			{Name: "walletAddr", Kind: schema.KindString, Required: true},
		},
		SideEffectParams: []schema.Field{
			{Name: "courseTitle", Kind: schema.KindString, Required: false},
		},
	})
	if err != nil {
		panic(err)
	}

	return registry.TransactionDefinition{
		TxType: CourseModuleMintTx,
		Role:   "teacher",
		ProtocolSpec: registry.ProtocolSpec{
			Version:        registry.VersionV1,
			ID:             "course-module-mint",
			YamlPath:       "v1/course/teacher/course-module-mint.yaml",
			RequiredTokens: []string{"COURSE_OWNER_ACCESS_TOKEN"},
		},
		BuildTxConfig: registry.BuildTxConfig{
			Schemas:      schemas,
			BuilderPath:  "/api/v1/course/module/build",
			InputHelpers: []string{"computeModuleHash"},
		},
		OnSubmit: []sideeffect.SideEffect{
			{
				Def:    "notifyCourseServiceModuleSubmitted",
				Method: sideeffect.MethodPost,
				Endpoint: "/internal/courses/{courseId}/modules/submitted",
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
				Def:    "recordModuleTokenMinted",
				Method: sideeffect.MethodPatch,
				Endpoint: "/internal/courses/{courseId}/modules/confirmed",
				PathParams: map[string]string{
					"courseId": "buildInputs.courseId",
				},
				Body: map[string]schema.FieldSource{
					"blockHeight": schema.Context("blockHeight"),
					"moduleHash":  schema.OnChainData("mints[0].assetName"),
					"policyId":    schema.OnChainData("mints[0].policyId"),
				},
				Critical: false,
				Retry:    &sideeffect.RetryPolicy{MaxAttempts: 5, BackoffMs: 2000},
			},
		},
		UI: registry.UI{
			ButtonText:  "Mint Module",
			Title:       "Publish a course module",
			Description: []string{"Mints an on-chain module token identifying this set of learning targets."},
		},
		Docs: registry.Docs{
			ProtocolDocs: "docs/protocol/course-module-mint.md",
		},
	}
}
