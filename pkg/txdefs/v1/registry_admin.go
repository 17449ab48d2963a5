// Copyright 2025 Andamio Labs
//
// CourseModuleRevoke is the v1 transaction an admin uses to burn a module
// token, e.g. after a course is retired.

package v1

import (
	"github.com/andamio-labs/txcore/pkg/registry"
	"github.com/andamio-labs/txcore/pkg/schema"
	"github.com/andamio-labs/txcore/pkg/sideeffect"
)

// CourseModuleRevokeTx is the registry name for the module-revoke
// transaction.
const CourseModuleRevokeTx registry.TransactionName = "COURSE_MODULE_REVOKE"

// CourseModuleRevoke builds the v1 module-revoke definition.
func CourseModuleRevoke() registry.TransactionDefinition {
	schemas, err := schema.CreateSchemas(schema.CreateSchemasParams{
		TxParams: []schema.Field{
			{Name: "courseId", Kind: schema.KindString, Required: true},
			{Name: "moduleHash", Kind: schema.KindString, Required: true},
			{Name: "walletAddr", Kind: schema.KindString, Required: true},
		},
	})
	if err != nil {
		panic(err)
	}

	return registry.TransactionDefinition{
		TxType: CourseModuleRevokeTx,
		Role:   "admin",
		ProtocolSpec: registry.ProtocolSpec{
			Version:        registry.VersionV1,
			ID:             "course-module-revoke",
			YamlPath:       "v1/course/admin/course-module-revoke.yaml",
			RequiredTokens: []string{"ADMIN_ACCESS_TOKEN"},
		},
		BuildTxConfig: registry.BuildTxConfig{
			Schemas:     schemas,
			BuilderPath: "/api/v1/course/module/revoke/build",
		},
		OnSubmit: []sideeffect.SideEffect{
			{
				Def:    "notifyCourseServiceModuleRevokeSubmitted",
				Method: sideeffect.MethodPost,
				Endpoint: "/internal/courses/{courseId}/modules/revoke/submitted",
				PathParams: map[string]string{
					"courseId": "buildInputs.courseId",
				},
				Body: map[string]schema.FieldSource{
					"txHash":     schema.Context("txHash"),
					"moduleHash": schema.Context("buildInputs.moduleHash"),
				},
				Critical: true,
			},
		},
		OnConfirmation: []sideeffect.SideEffect{
			{
				Def:    "recordModuleTokenBurned",
				Method: sideeffect.MethodPatch,
				Endpoint: "/internal/courses/{courseId}/modules/revoke/confirmed",
				PathParams: map[string]string{
					"courseId": "buildInputs.courseId",
				},
				Body: map[string]schema.FieldSource{
					"blockHeight": schema.Context("blockHeight"),
				},
				Critical: false,
			},
		},
		UI: registry.UI{
			ButtonText:  "Revoke Module",
			Title:       "Retire a course module",
			Description: []string{"Burns the module token, removing it from circulation."},
		},
	}
}
