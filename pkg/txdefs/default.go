// Copyright 2025 Andamio Labs
//
// Default assembles the registry this module ships: every transaction
// definition across every protocol version, in one flat index.

package txdefs

import (
	"github.com/andamio-labs/txcore/pkg/registry"
	v1 "github.com/andamio-labs/txcore/pkg/txdefs/v1"
	v2 "github.com/andamio-labs/txcore/pkg/txdefs/v2"
)

// Default builds the registry over every definition this module knows
// about. It panics on construction if two definitions collide on name,
// which would indicate a bug in this package rather than bad runtime
// input, hence MustNew.
func Default() *registry.Registry {
	return registry.MustNew(
		v1.CourseModuleMint(),
		v1.CourseStudentAssignmentCommit(),
		v1.CourseModuleRevoke(),
		v2.CourseTaskCreate(),
		v2.CourseContributorInvite(),
	)
}
