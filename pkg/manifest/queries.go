package manifest

import (
	"sort"
	"strings"

	"github.com/updraft-io/updraft/pkg/vercmp"
)

// AppVersionsForMajor returns the application versions whose major version
// equals major, sorted ascending. The result is a fresh slice.
func (m *Manifest) AppVersionsForMajor(major int) []AppVersion {
	var out []AppVersion
	for _, av := range m.Versions {
		if av.Major() == major {
			out = append(out, av)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return vercmp.Compare(out[i].Version, out[j].Version) < 0
	})
	return out
}

// Major derives the major version integer from the version string.
func (av AppVersion) Major() int {
	return vercmp.Major(av.Version)
}

// ExtensionNames returns the distinct extension names across all application
// versions, or only those matching the optional major filter. Names are
// de-duplicated case-insensitively (first spelling wins) and sorted
// case-insensitively.
func (m *Manifest) ExtensionNames(major ...int) []string {
	seen := make(map[string]string)
	for _, av := range m.matchingVersions(major) {
		for _, entry := range av.Extensions {
			key := strings.ToLower(entry.Name)
			if _, ok := seen[key]; !ok {
				seen[key] = entry.Name
			}
		}
	}

	names := make([]string, 0, len(seen))
	for _, name := range seen {
		names = append(names, name)
	}
	sort.SliceStable(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})
	return names
}

// HighestVersionForExtension returns the extension version with the highest
// metadata version string among every entry whose name matches name
// case-insensitively, optionally restricted to one application major
// version. Version stubs without usable metadata never win. When two
// candidates normalize to the same key the one encountered last wins.
// Returns nil when no qualifying version exists.
func (m *Manifest) HighestVersionForExtension(name string, major ...int) *ExtensionVersion {
	var highest *ExtensionVersion
	for _, av := range m.matchingVersions(major) {
		for _, entry := range av.Extensions {
			if !strings.EqualFold(entry.Name, name) {
				continue
			}
			for i := range entry.Versions {
				ev := entry.Versions[i]
				if !ev.HasMetadata() {
					continue
				}
				if highest == nil || vercmp.IsAtLeast(ev.Version(), highest.Version()) {
					highest = &ev
				}
			}
		}
	}
	return highest
}

// HighestExtensionVersionsForMajor resolves, for every extension name
// available under the given application major version, its highest version.
// The result holds one entry per name, sorted case-insensitively by the
// metadata name.
func (m *Manifest) HighestExtensionVersionsForMajor(major int) []ExtensionVersion {
	var out []ExtensionVersion
	for _, name := range m.ExtensionNames(major) {
		if ev := m.HighestVersionForExtension(name, major); ev != nil {
			out = append(out, *ev)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Metadata.Name) < strings.ToLower(out[j].Metadata.Name)
	})
	return out
}

// LatestAppVersion returns the highest application version in the manifest,
// or nil when the manifest lists none. Ties resolve to the version
// encountered last.
func (m *Manifest) LatestAppVersion() *AppVersion {
	var latest *AppVersion
	for i := range m.Versions {
		av := m.Versions[i]
		if latest == nil || vercmp.IsAtLeast(av.Version, latest.Version) {
			latest = &av
		}
	}
	return latest
}

// matchingVersions applies the optional major filter used by the variadic
// query operations. Only the first filter value is considered.
func (m *Manifest) matchingVersions(major []int) []AppVersion {
	if len(major) == 0 {
		return m.Versions
	}
	var out []AppVersion
	for _, av := range m.Versions {
		if av.Major() == major[0] {
			out = append(out, av)
		}
	}
	return out
}
