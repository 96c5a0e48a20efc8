package version

import (
	"fmt"
	"os"
	"sort"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

// entry pairs a parsed semantic version with its spec and the original
// version string as written in the file, kept so Extend can match
// versions by their authored form rather than a re-serialized one.
type entry struct {
	Version *semver.Version
	Raw     string
	Spec    VersionSpec
}

// Versions is an ordered map from semver to VersionSpec.
type Versions struct {
	entries []entry
}

// Entry pairs a parsed version with its VersionSpec, the element type
// Asc/Desc/From return.
type Entry struct {
	Version *semver.Version
	Spec    VersionSpec
}

type versionsFile struct {
	Versions map[string]VersionSpec `yaml:"versions"`
}

// Load reads a versions YAML file (the load(path)). The
// top-level document is a single "versions" map keyed by semver string,
// matching the original's serde(transparent) Versions type wrapped in a
// TopLevel struct at the load boundary.
func Load(path string) (*Versions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("version: reading %s: %w", path, err)
	}
	return parse(path, data)
}

func parse(path string, data []byte) (*Versions, error) {
	var file versionsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("version: parsing %s: %w", path, err)
	}

	v := &Versions{}
	for raw, spec := range file.Versions {
		sv, err := semver.NewVersion(raw)
		if err != nil {
			return nil, fmt.Errorf("version: %s: invalid semver %q: %w", path, raw, err)
		}
		v.entries = append(v.entries, entry{Version: sv, Raw: raw, Spec: spec})
	}
	v.sortAsc()
	return v, nil
}

func (v *Versions) sortAsc() {
	sort.Slice(v.entries, func(i, j int) bool {
		return v.entries[i].Version.LessThan(v.entries[j].Version)
	})
}

func toEntries(es []entry) []Entry {
	out := make([]Entry, len(es))
	for i, e := range es {
		out[i] = Entry{Version: e.Version, Spec: e.Spec}
	}
	return out
}

// Asc returns every version in ascending order.
func (v *Versions) Asc() []Entry {
	return toEntries(v.entries)
}

// Desc returns every version in descending order.
func (v *Versions) Desc() []Entry {
	n := len(v.entries)
	rev := make([]entry, n)
	for i, e := range v.entries {
		rev[n-1-i] = e
	}
	return toEntries(rev)
}

// From returns every version >= from, ascending (the original's
// versions_asc_from).
func (v *Versions) From(from *semver.Version) []Entry {
	var out []entry
	for _, e := range v.entries {
		if e.Version.Compare(from) >= 0 {
			out = append(out, e)
		}
	}
	return toEntries(out)
}

// descFrom returns every version <= from, descending (the original's
// versions_desc_from), the iteration order ChangesFor composes over.
func (v *Versions) descFrom(from *semver.Version) []entry {
	var out []entry
	for i := len(v.entries) - 1; i >= 0; i-- {
		if v.entries[i].Version.Compare(from) <= 0 {
			out = append(out, v.entries[i])
		}
	}
	return out
}

// Len reports how many versions are loaded.
func (v *Versions) Len() int { return len(v.entries) }

// IsEmpty reports whether no versions are loaded.
func (v *Versions) IsEmpty() bool { return len(v.entries) == 0 }

// Latest returns the most recent version, or nil if none are loaded.
func (v *Versions) Latest() *semver.Version {
	if len(v.entries) == 0 {
		return nil
	}
	return v.entries[len(v.entries)-1].Version
}

// concreteSignals are the per-telemetry-kind signals a caller queries
// (the resource/metric/log/span accessors). SignalAll is
// not one of them; it is folded into each of these during composition.
var concreteSignals = []Signal{SignalResource, SignalMetric, SignalLog, SignalSpan}

// ChangesFor composes the rename chain visible as of version (spec
// section 4.4): every version <= version contributes, walked most-recent
// first, with the first (most recent) version to rename a given name
// winning that hop. A version's "all" section is folded into every
// concrete signal for that same version, after that signal's own
// renames, so an "all" rename never overrides a signal-specific one
// declared at the same version.
func (v *Versions) ChangesFor(version *semver.Version) *VersionChanges {
	vc := newVersionChanges()
	for _, e := range v.descFrom(version) {
		for _, sig := range concreteSignals {
			sc := e.Spec.signal(sig)
			vc.mergeAttributeRenames(sig, sc.RenameAttributes)
			vc.mergeAttributeRenames(sig, e.Spec.All.RenameAttributes)
			if sig == SignalMetric {
				vc.mergeMetricRenames(sc.RenameMetrics)
			}
		}
	}
	return vc
}
