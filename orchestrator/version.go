package orchestrator

import (
	"github.com/blang/semver/v4"

	"iaicallgrind-go/bmerrors"
)

// CheckVersion verifies the harness-reported library version matches the
// runner's own version exactly, returning a VersionMismatch error
// otherwise. Both versions are parsed as semver so a malformed version
// string is reported distinctly from a real mismatch.
func CheckVersion(harnessVersion, runnerVersion string) error {
	hv, err := semver.Parse(harnessVersion)
	if err != nil {
		return bmerrors.WrapWithDetail(err, bmerrors.KindVersionMismatch, "parse harness version", harnessVersion)
	}

	rv, err := semver.Parse(runnerVersion)
	if err != nil {
		return bmerrors.WrapWithDetail(err, bmerrors.KindVersionMismatch, "parse runner version", runnerVersion)
	}

	if !hv.EQ(rv) {
		return bmerrors.New(bmerrors.KindVersionMismatch, "check version",
			"harness library version "+harnessVersion+" does not match runner version "+runnerVersion)
	}

	return nil
}
