package version

import (
	"testing"

	"github.com/Masterminds/semver/v3"
)

func mustVersion(t *testing.T, raw string) *semver.Version {
	t.Helper()
	v, err := semver.NewVersion(raw)
	if err != nil {
		t.Fatalf("semver.NewVersion(%q) error = %v", raw, err)
	}
	return v
}
