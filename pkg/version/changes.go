package version

// VersionChanges is the composed rename map for one query
// version: one old-name-to-new-name map per concrete signal, plus a
// metric-name rename map, each already resolved by ChangesFor's
// descending walk over every version <= the query version.
type VersionChanges struct {
	attrRenames   map[Signal]map[string]string
	metricRenames map[string]string
}

func newVersionChanges() *VersionChanges {
	vc := &VersionChanges{
		attrRenames:   make(map[Signal]map[string]string, len(concreteSignals)),
		metricRenames: make(map[string]string),
	}
	for _, sig := range concreteSignals {
		vc.attrRenames[sig] = make(map[string]string)
	}
	return vc
}

func (vc *VersionChanges) mergeAttributeRenames(sig Signal, renames map[string]string) {
	m := vc.attrRenames[sig]
	for old, new := range renames {
		if _, exists := m[old]; !exists {
			m[old] = new
		}
	}
}

func (vc *VersionChanges) mergeMetricRenames(renames map[string]string) {
	for old, new := range renames {
		if _, exists := vc.metricRenames[old]; !exists {
			vc.metricRenames[old] = new
		}
	}
}

// AttributeRenames resolves a (possibly multi-hop) attribute rename
// chain for one signal. Composing hops this way — rather than the
// original's single-lookup get_attribute_name — is what makes spec
// section 8's version rename chain scenario resolve "http.method" all
// the way through to "http.req.method" (see DESIGN.md).
type AttributeRenames struct {
	renames map[string]string
}

// GetAttributeName returns the final name name resolves to after
// following every rename hop recorded for this signal, or name itself if
// it was never renamed.
func (a AttributeRenames) GetAttributeName(name string) string {
	return followRenameChain(a.renames, name)
}

// ResourceAttributeChanges returns the resource attribute rename chain.
func (vc *VersionChanges) ResourceAttributeChanges() AttributeRenames {
	return AttributeRenames{renames: vc.attrRenames[SignalResource]}
}

// MetricAttributeChanges returns the metric attribute rename chain.
func (vc *VersionChanges) MetricAttributeChanges() AttributeRenames {
	return AttributeRenames{renames: vc.attrRenames[SignalMetric]}
}

// LogAttributeChanges returns the log attribute rename chain.
func (vc *VersionChanges) LogAttributeChanges() AttributeRenames {
	return AttributeRenames{renames: vc.attrRenames[SignalLog]}
}

// SpanAttributeChanges returns the span attribute rename chain.
func (vc *VersionChanges) SpanAttributeChanges() AttributeRenames {
	return AttributeRenames{renames: vc.attrRenames[SignalSpan]}
}

// GetMetricName returns the final metric name name resolves to after
// following every rename hop, or name itself if it was never renamed.
func (vc *VersionChanges) GetMetricName(name string) string {
	return followRenameChain(vc.metricRenames, name)
}

// followRenameChain walks name -> m[name] -> m[m[name]] -> ... until it
// reaches a name with no further rename, guarding against a cycle with a
// seen set rather than looping forever.
func followRenameChain(m map[string]string, name string) string {
	current := name
	seen := map[string]bool{current: true}
	for {
		next, ok := m[current]
		if !ok || seen[next] {
			return current
		}
		current = next
		seen[current] = true
	}
}
