package txdefs

import (
	"testing"

	"github.com/andamio-labs/txcore/pkg/registry"
	v1 "github.com/andamio-labs/txcore/pkg/txdefs/v1"
)

func TestDefaultBuildsWithoutCollision(t *testing.T) {
	r := Default()
	if !r.HasTransaction(v1.CourseModuleMintTx) {
		t.Fatal("expected course-module-mint to be registered")
	}
}

func TestDefaultCoversBothProtocolVersions(t *testing.T) {
	r := Default()
	versions := r.GetAvailableVersions()
	if len(versions) != 2 || versions[0] != registry.VersionV1 || versions[1] != registry.VersionV2 {
		t.Fatalf("expected v1 and v2 both present, got %+v", versions)
	}
}

func TestDefaultTeacherDefinitionShape(t *testing.T) {
	r := Default()
	def, ok := r.GetTransactionDefinition(v1.CourseModuleMintTx)
	if !ok {
		t.Fatal("expected course-module-mint to be found")
	}
	if def.Role != "teacher" {
		t.Fatalf("expected teacher role, got %q", def.Role)
	}
	if len(def.OnSubmit) == 0 {
		t.Fatal("expected at least one onSubmit side effect")
	}
	if !def.OnSubmit[0].Critical {
		t.Fatal("expected the course-service notification to be critical")
	}
}
