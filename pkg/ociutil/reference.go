package ociutil

import (
	"fmt"
	"strings"
)

// Reference is a parsed OCI artifact reference: the registry host, the
// repository path within it, and either a tag or a digest pinning the
// exact artifact (a resolved semconv registry bundle, typically).
type Reference struct {
	Registry   string
	Repository string
	Tag        string
	Digest     string // e.g. "sha256:abc123..." (without leading @)
}

// String returns the full reference string (registry/repository:tag or
// registry/repository@digest).
func (r *Reference) String() string {
	base := r.Registry + "/" + r.Repository
	if r.Tag != "" {
		base += ":" + r.Tag
	}
	if r.Digest != "" {
		base += "@" + r.Digest
	}
	return base
}

// Ref returns the tag if present, otherwise the digest prefixed with @.
// This is the value ParseReference's caller passes to oras.Copy as the
// source and destination reference string.
func (r *Reference) Ref() string {
	if r.Tag != "" {
		return r.Tag
	}
	if r.Digest != "" {
		return "@" + r.Digest
	}
	return "latest"
}

// ParseReference parses an OCI artifact reference such as
// "ghcr.io/example/semconv:v1.0.0" or
// "ghcr.io/example/semconv@sha256:99b02...". A bare name with no
// registry host, e.g. "semconv", is treated as a docker.io shorthand the
// way every OCI client accepts it, even though the artifacts this
// package pulls are rarely actual container images.
func ParseReference(ref string) (*Reference, error) {
	ref = normalizeRegistryHost(ref)

	digest := ""
	if idx := strings.Index(ref, "@"); idx != -1 {
		digest = ref[idx+1:]
		ref = ref[:idx]
	}

	tag := ""
	if idx := strings.LastIndex(ref, ":"); idx != -1 {
		afterColon := ref[idx+1:]
		if !strings.Contains(afterColon, "/") { // not a port number
			tag = afterColon
			ref = ref[:idx]
		}
	}

	if tag == "" && digest == "" {
		tag = "latest"
	}

	parts := strings.SplitN(ref, "/", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid reference format: %s", ref)
	}

	return &Reference{
		Registry:   parts[0],
		Repository: parts[1],
		Tag:        tag,
		Digest:     digest,
	}, nil
}

// normalizeRegistryHost fills in the implicit docker.io host for a
// reference that names no registry at all, the same shorthand every OCI
// client grammar accepts.
func normalizeRegistryHost(ref string) string {
	if !strings.Contains(ref, "/") {
		return "docker.io/library/" + ref
	}
	firstSegment := strings.Split(ref, "/")[0]
	looksLikeHost := strings.Contains(firstSegment, ".") ||
		strings.Contains(firstSegment, ":") ||
		firstSegment == "localhost"
	if !looksLikeHost {
		return "docker.io/" + ref
	}
	return ref
}
