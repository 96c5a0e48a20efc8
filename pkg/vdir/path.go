// Package vdir presents any source — a local folder, a local or remote
// archive, a git repository, or an OCI artifact — as a local filesystem
// path, managing temporary extraction and its cleanup.
package vdir

import (
	"fmt"
	"regexp"
	"strings"
)

// Kind discriminates the four (plus one supplemental) cases of
// VirtualDirectoryPath.
type Kind string

const (
	KindLocalFolder  Kind = "local_folder"
	KindLocalArchive Kind = "local_archive"
	KindRemote       Kind = "remote_archive"
	KindGitRepo      Kind = "git_repo"
	KindOCIArtifact  Kind = "oci_artifact"
)

// Path is the tagged-union value a source string is parsed into: a source
// string is parsed once into one of the Kind variants, and every field
// outside of the active Kind is the zero value.
type Path struct {
	Kind Kind

	// LocalFolder / LocalArchive
	LocalPath string

	// RemoteArchive
	URL string

	// GitRepo
	GitURL    string
	Refspec   string // optional; see DESIGN.md "Open Questions resolved" #1
	SubFolder string

	// OCIArtifact
	OCIReference string
}

// subFolderPattern matches a trailing "[sub_folder]" suffix. Square
// brackets are literal; a literal '[' inside source is not supported, so
// the first '[' found from the right marks the boundary.
var subFolderPattern = regexp.MustCompile(`^(.*)\[([^\[\]]+)\]$`)

// Parse implements the source-string grammar
//
//	source[@refspec][[sub_folder]]
//
// Dispatch: an "oci://" prefix is an OCIArtifact (pack supplement). An
// "http(s)://" prefix is a RemoteArchive if the path component ends in
// ".zip" or ".tar.gz", otherwise a GitRepo. Anything else is dispatched by
// suffix into LocalArchive or LocalFolder.
func Parse(source string) (Path, error) {
	if source == "" {
		return Path{}, fmt.Errorf("vdir: empty source string")
	}

	rest := source
	subFolder := ""
	if m := subFolderPattern.FindStringSubmatch(rest); m != nil {
		rest = m[1]
		subFolder = m[2]
	}

	refspec := ""
	if idx := strings.LastIndex(rest, "@"); idx != -1 && looksLikeRefspecSplit(rest, idx) {
		refspec = rest[idx+1:]
		rest = rest[:idx]
	}

	switch {
	case strings.HasPrefix(rest, "oci://"):
		ref := strings.TrimPrefix(rest, "oci://")
		if refspec != "" {
			// An "@digest" suffix stays part of the OCI reference.
			ref += "@" + refspec
		}
		return Path{Kind: KindOCIArtifact, OCIReference: ref, SubFolder: subFolder}, nil

	case strings.HasPrefix(rest, "http://") || strings.HasPrefix(rest, "https://"):
		if hasArchiveSuffix(rest) {
			return Path{Kind: KindRemote, URL: rest, SubFolder: subFolder}, nil
		}
		return Path{Kind: KindGitRepo, GitURL: rest, Refspec: refspec, SubFolder: subFolder}, nil

	case hasArchiveSuffix(rest):
		return Path{Kind: KindLocalArchive, LocalPath: rest, SubFolder: subFolder}, nil

	default:
		if refspec != "" {
			// A refspec only makes sense for git/OCI sources; re-attach it,
			// since a bare local folder named "foo@bar" is legal.
			rest = rest + "@" + refspec
			refspec = ""
		}
		return Path{Kind: KindLocalFolder, LocalPath: rest, SubFolder: subFolder}, nil
	}
}

func hasArchiveSuffix(s string) bool {
	return strings.HasSuffix(s, ".zip") || strings.HasSuffix(s, ".tar.gz")
}

// looksLikeRefspecSplit reports whether the '@' at index at (the LAST '@'
// in s) separates a refspec. It does not when the '@' is the first or last
// character of s, or when it sits in a URL's authority part, i.e. is the
// userinfo separator of "https://user@host/...". This is a narrow check,
// not a full URL grammar.
func looksLikeRefspecSplit(s string, at int) bool {
	if at == 0 || at == len(s)-1 {
		return false
	}
	if i := strings.Index(s[:at], "://"); i != -1 && !strings.Contains(s[i+3:at], "/") {
		return false
	}
	return true
}

// String reconstructs the canonical source-string form of p, primarily for
// diagnostics and logging.
func (p Path) String() string {
	var base string
	switch p.Kind {
	case KindLocalFolder, KindLocalArchive:
		base = p.LocalPath
	case KindRemote:
		base = p.URL
	case KindGitRepo:
		base = p.GitURL
		if p.Refspec != "" {
			base += "@" + p.Refspec
		}
	case KindOCIArtifact:
		base = "oci://" + p.OCIReference
	}
	if p.SubFolder != "" {
		base += "[" + p.SubFolder + "]"
	}
	return base
}
