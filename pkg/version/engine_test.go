package version

import "testing"

const renameChainYAML = `
versions:
  "1.7.0":
    spans:
      rename_attributes:
        http.method: http.request.method
  "1.9.0":
    spans:
      rename_attributes:
        http.request.method: http.req.method
`

// Scenario 7: a version file declares a two-hop rename
// chain across 1.7 and 1.9; querying changes_for(1.10) for the original
// name must resolve the full chain to the final name.
func TestChangesFor_VersionRenameChain(t *testing.T) {
	v, err := parse("test", []byte(renameChainYAML))
	if err != nil {
		t.Fatalf("parse() error = %v", err)
	}

	target := mustVersion(t, "1.10.0")
	changes := v.ChangesFor(target)
	got := changes.SpanAttributeChanges().GetAttributeName("http.method")
	if got != "http.req.method" {
		t.Errorf("GetAttributeName(http.method) = %q, want http.req.method", got)
	}
}

// Querying a version before the second rename was declared should only
// see the first hop.
func TestChangesFor_StopsAtQueryVersion(t *testing.T) {
	v, err := parse("test", []byte(renameChainYAML))
	if err != nil {
		t.Fatalf("parse() error = %v", err)
	}

	target := mustVersion(t, "1.8.0")
	changes := v.ChangesFor(target)
	got := changes.SpanAttributeChanges().GetAttributeName("http.method")
	if got != "http.request.method" {
		t.Errorf("GetAttributeName(http.method) at 1.8.0 = %q, want http.request.method", got)
	}
}

// An unrenamed name resolves to itself.
func TestChangesFor_UnknownNamePassesThrough(t *testing.T) {
	v, err := parse("test", []byte(renameChainYAML))
	if err != nil {
		t.Fatalf("parse() error = %v", err)
	}
	got := v.ChangesFor(mustVersion(t, "1.10.0")).SpanAttributeChanges().GetAttributeName("net.peer.ip")
	if got != "net.peer.ip" {
		t.Errorf("GetAttributeName(net.peer.ip) = %q, want unchanged", got)
	}
}

const metricRenameYAML = `
versions:
  "1.2.0":
    metrics:
      rename_metrics:
        process.runtime.jvm.memory.usage: jvm.memory.used
`

func TestChangesFor_MetricRename(t *testing.T) {
	v, err := parse("test", []byte(metricRenameYAML))
	if err != nil {
		t.Fatalf("parse() error = %v", err)
	}
	got := v.ChangesFor(mustVersion(t, "2.0.0")).GetMetricName("process.runtime.jvm.memory.usage")
	if got != "jvm.memory.used" {
		t.Errorf("GetMetricName() = %q, want jvm.memory.used", got)
	}
}

const allSectionYAML = `
versions:
  "1.0.0":
    all:
      rename_attributes:
        net.peer.ip: network.peer.address
`

func TestChangesFor_AllSectionAppliesToEverySignal(t *testing.T) {
	v, err := parse("test", []byte(allSectionYAML))
	if err != nil {
		t.Fatalf("parse() error = %v", err)
	}
	changes := v.ChangesFor(mustVersion(t, "1.0.0"))
	if got := changes.SpanAttributeChanges().GetAttributeName("net.peer.ip"); got != "network.peer.address" {
		t.Errorf("span: GetAttributeName() = %q, want network.peer.address", got)
	}
	if got := changes.ResourceAttributeChanges().GetAttributeName("net.peer.ip"); got != "network.peer.address" {
		t.Errorf("resource: GetAttributeName() = %q, want network.peer.address", got)
	}
}

func TestExtend_LocalTakesPrecedenceOverParent(t *testing.T) {
	local, err := parse("local", []byte(`
versions:
  "1.0.0":
    spans:
      rename_attributes:
        a: local_a
`))
	if err != nil {
		t.Fatalf("parse(local) error = %v", err)
	}
	parent, err := parse("parent", []byte(`
versions:
  "1.0.0":
    spans:
      rename_attributes:
        a: parent_a
        b: parent_b
  "2.0.0":
    spans:
      rename_attributes:
        c: parent_c
`))
	if err != nil {
		t.Fatalf("parse(parent) error = %v", err)
	}

	local.Extend(parent)

	changes := local.ChangesFor(mustVersion(t, "2.0.0"))
	if got := changes.SpanAttributeChanges().GetAttributeName("a"); got != "local_a" {
		t.Errorf("a = %q, want local_a (local wins)", got)
	}
	if got := changes.SpanAttributeChanges().GetAttributeName("b"); got != "parent_b" {
		t.Errorf("b = %q, want parent_b (imported)", got)
	}
	if got := changes.SpanAttributeChanges().GetAttributeName("c"); got != "parent_c" {
		t.Errorf("c = %q, want parent_c (version only in parent)", got)
	}
	if local.Len() != 2 {
		t.Errorf("Len() = %d, want 2", local.Len())
	}
}

func TestExtend_Idempotent(t *testing.T) {
	local, err := parse("local", []byte(`
versions:
  "1.0.0":
    spans:
      rename_attributes:
        a: local_a
`))
	if err != nil {
		t.Fatalf("parse(local) error = %v", err)
	}
	parent, err := parse("parent", []byte(`
versions:
  "1.0.0":
    spans:
      rename_attributes:
        b: parent_b
`))
	if err != nil {
		t.Fatalf("parse(parent) error = %v", err)
	}

	local.Extend(parent)
	first := local.ChangesFor(mustVersion(t, "1.0.0")).SpanAttributeChanges()

	local.Extend(parent)
	second := local.ChangesFor(mustVersion(t, "1.0.0")).SpanAttributeChanges()

	if first.GetAttributeName("a") != second.GetAttributeName("a") || first.GetAttributeName("b") != second.GetAttributeName("b") {
		t.Errorf("second Extend changed resolved names: got a=%q b=%q, want same as first a=%q b=%q",
			second.GetAttributeName("a"), second.GetAttributeName("b"),
			first.GetAttributeName("a"), first.GetAttributeName("b"))
	}
	if local.Len() != 1 {
		t.Errorf("Len() = %d, want 1 (idempotent extend must not duplicate versions)", local.Len())
	}
}

func TestAsc_Desc_Order(t *testing.T) {
	v, err := parse("test", []byte(`
versions:
  "2.0.0": {}
  "1.0.0": {}
  "1.5.0": {}
`))
	if err != nil {
		t.Fatalf("parse() error = %v", err)
	}
	asc := v.Asc()
	if len(asc) != 3 || asc[0].Version.String() != "1.0.0" || asc[2].Version.String() != "2.0.0" {
		t.Fatalf("Asc() out of order: %v", asc)
	}
	desc := v.Desc()
	if desc[0].Version.String() != "2.0.0" || desc[2].Version.String() != "1.0.0" {
		t.Fatalf("Desc() out of order: %v", desc)
	}
}
