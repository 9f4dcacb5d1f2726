package updater

import (
	"github.com/Masterminds/semver/v3"

	"github.com/updraft-io/updraft/pkg/manifest"
	"github.com/updraft-io/updraft/pkg/vercmp"
)

// NewerApplicationVersion reports whether the manifest advertises an
// application version newer than current, returning that version string.
// Comparison prefers strict semver; versions that do not parse as semver
// fall back to normalized-key ordering so a malformed build string can
// never make the check error out.
func NewerApplicationVersion(current string, m *manifest.Manifest) (string, bool) {
	latest := m.LatestAppVersion()
	if latest == nil {
		return "", false
	}

	cur, curErr := semver.NewVersion(current)
	avail, availErr := semver.NewVersion(latest.Version)
	if curErr == nil && availErr == nil {
		if avail.GreaterThan(cur) {
			return latest.Version, true
		}
		return "", false
	}

	if vercmp.IsNewerThan(latest.Version, current) {
		return latest.Version, true
	}
	return "", false
}
