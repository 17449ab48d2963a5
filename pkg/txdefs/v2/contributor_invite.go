// Copyright 2025 Andamio Labs
//
// CourseContributorInvite is the v2 transaction a manager uses to mint a
// non-transferable access token for a new contributor; the asset name is
// the invitee's alias.

package v2

import (
	"github.com/andamio-labs/txcore/pkg/registry"
	"github.com/andamio-labs/txcore/pkg/schema"
	"github.com/andamio-labs/txcore/pkg/sideeffect"
)

// CourseContributorInviteTx is the registry name for the v2
// contributor-invite transaction.
const CourseContributorInviteTx registry.TransactionName = "COURSE_CONTRIBUTOR_INVITE"

// CourseContributorInvite builds the v2 contributor-invite definition.
func CourseContributorInvite() registry.TransactionDefinition {
	schemas, err := schema.CreateSchemas(schema.CreateSchemasParams{
		TxParams: []schema.Field{
			{Name: "courseId", Kind: schema.KindString, Required: true},
			{Name: "inviteeAlias", Kind: schema.KindString, Required: true},
			{Name: "walletAddr", Kind: schema.KindString, Required: true},
		},
	})
	if err != nil {
		panic(err)
	}

	return registry.TransactionDefinition{
		TxType: CourseContributorInviteTx,
		Role:   "manager",
		ProtocolSpec: registry.ProtocolSpec{
			Version:        registry.VersionV2,
			ID:             "contributor-invite",
			YamlPath:       "v2/course/manager/contributor-invite.yaml",
			RequiredTokens: []string{"COURSE_MANAGER_ACCESS_TOKEN"},
		},
		BuildTxConfig: registry.BuildTxConfig{
			Schemas:     schemas,
			BuilderPath: "/api/v2/course/contributor/build",
		},
		OnSubmit: []sideeffect.SideEffect{
			{
				Def:    "notifyCourseServiceContributorInvited",
				Method: sideeffect.MethodPost,
				Endpoint: "/internal/courses/{courseId}/contributors/invited",
				PathParams: map[string]string{
					"courseId": "buildInputs.courseId",
				},
				Body: map[string]schema.FieldSource{
					"txHash":       schema.Context("txHash"),
					"inviteeAlias": schema.Context("buildInputs.inviteeAlias"),
				},
				Critical: true,
			},
		},
		OnConfirmation: []sideeffect.SideEffect{
			{
				Def:    "recordContributorAccessTokenMinted",
				Method: sideeffect.MethodPatch,
				Endpoint: "/internal/courses/{courseId}/contributors/confirmed",
				PathParams: map[string]string{
					"courseId": "buildInputs.courseId",
				},
				Body: map[string]schema.FieldSource{
					"blockHeight": schema.Context("blockHeight"),
					"assetName":   schema.OnChainData("mints[0].assetName"),
				},
				Critical: false,
			},
		},
		UI: registry.UI{
			ButtonText:  "Invite Contributor",
			Title:       "Grant course access",
			Description: []string{"Mints a non-transferable access token naming the invitee as a course contributor."},
		},
	}
}
