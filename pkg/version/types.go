// Package version implements the VersionEngine: an
// ordered map from semver to per-signal attribute/metric rename rules,
// composed into a single old-name-to-new-name chain for any queried
// version. Generalized to transitive multi-hop rename composition
// rather than a single lookup, so a two-hop rename resolves correctly
// (see DESIGN.md).
package version

// Signal names one of the per-version rename sections a VersionSpec
// carries. All applies across every other signal in
// addition to whatever that signal declares on its own.
type Signal string

const (
	SignalAll      Signal = "all"
	SignalResource Signal = "resources"
	SignalMetric   Signal = "metrics"
	SignalLog      Signal = "logs"
	SignalSpan     Signal = "spans"
)

// SignalChanges is one signal section of a VersionSpec: the attribute
// and metric renames declared for that signal at that version.
type SignalChanges struct {
	RenameAttributes map[string]string `yaml:"rename_attributes,omitempty"`
	RenameMetrics    map[string]string `yaml:"rename_metrics,omitempty"`
}

// VersionSpec is one version entry's full set of per-signal renames.
type VersionSpec struct {
	All       SignalChanges `yaml:"all,omitempty"`
	Resources SignalChanges `yaml:"resources,omitempty"`
	Metrics   SignalChanges `yaml:"metrics,omitempty"`
	Logs      SignalChanges `yaml:"logs,omitempty"`
	Spans     SignalChanges `yaml:"spans,omitempty"`
}

func (v *VersionSpec) signal(s Signal) *SignalChanges {
	switch s {
	case SignalResource:
		return &v.Resources
	case SignalMetric:
		return &v.Metrics
	case SignalLog:
		return &v.Logs
	case SignalSpan:
		return &v.Spans
	default:
		return &v.All
	}
}
