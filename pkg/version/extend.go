package version

// Extend merges parent into v (the "Extension"): per
// version and per signal, a renaming already present in v takes
// precedence; renamings missing from v are imported from parent. A
// version that exists only in parent is copied in whole. Calling Extend
// twice with the same parent is a no-op the second time, since every
// import only fires when the key is still absent:
// extend(parent).extend(parent) == extend(parent).
func (v *Versions) Extend(parent *Versions) {
	byRaw := make(map[string]int, len(v.entries))
	for i, e := range v.entries {
		byRaw[e.Raw] = i
	}

	for _, pe := range parent.entries {
		if i, ok := byRaw[pe.Raw]; ok {
			v.entries[i].Spec = mergeVersionSpec(v.entries[i].Spec, pe.Spec)
			continue
		}
		v.entries = append(v.entries, pe)
		byRaw[pe.Raw] = len(v.entries) - 1
	}
	v.sortAsc()
}

// mergeVersionSpec merges parent's per-signal renames into local,
// local's own renames taking precedence signal by signal.
func mergeVersionSpec(local, parent VersionSpec) VersionSpec {
	local.All = mergeSignalChanges(local.All, parent.All)
	local.Resources = mergeSignalChanges(local.Resources, parent.Resources)
	local.Metrics = mergeSignalChanges(local.Metrics, parent.Metrics)
	local.Logs = mergeSignalChanges(local.Logs, parent.Logs)
	local.Spans = mergeSignalChanges(local.Spans, parent.Spans)
	return local
}

func mergeSignalChanges(local, parent SignalChanges) SignalChanges {
	local.RenameAttributes = mergeRenameMap(local.RenameAttributes, parent.RenameAttributes)
	local.RenameMetrics = mergeRenameMap(local.RenameMetrics, parent.RenameMetrics)
	return local
}

// mergeRenameMap imports every parent entry local doesn't already have.
func mergeRenameMap(local, parent map[string]string) map[string]string {
	if len(parent) == 0 {
		return local
	}
	if local == nil {
		local = make(map[string]string, len(parent))
	}
	for old, new := range parent {
		if _, exists := local[old]; !exists {
			local[old] = new
		}
	}
	return local
}
