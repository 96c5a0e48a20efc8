package vdir

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-logr/logr"

	"github.com/convreg/semconv-resolver/pkg/config"
	"github.com/convreg/semconv-resolver/pkg/logging"
)

// CacheRoot returns the vdir cache root ($HOME/.weaver/vdir_cache by
// default, overridable via the --cache-dir/$SEMCONV_CACHE_DIR/config-file
// precedence chain), creating it if necessary. HOME (or its platform
// equivalent) must be resolvable for any source that needs temporary
// extraction; LocalFolder never calls this.
func CacheRoot() (string, error) {
	cfg, err := config.Load()
	if err != nil {
		return "", fmt.Errorf("vdir: loading config: %w", err)
	}
	root := cfg.GetCacheDir()
	if root == "" {
		return "", fmt.Errorf("vdir: HOME is not set, required to fetch archives or git repos")
	}
	if err := os.MkdirAll(root, 0o700); err != nil {
		return "", fmt.Errorf("vdir: failed to create cache root %s: %w", root, err)
	}
	return root, nil
}

// VirtualDirectory is the handle returned by Open: a local filesystem path
// faithfully representing the source, plus ownership of any temporary
// storage backing it.
type VirtualDirectory struct {
	path    string
	tempDir string // empty for LocalFolder, which owns no temp storage
	closed  bool
}

// Path returns the local filesystem path backing this handle.
func (v *VirtualDirectory) Path() string {
	return v.path
}

// Close releases any temporary storage acquired for this handle. It is
// safe to call more than once and safe to defer immediately after Open
// returns successfully — the scoped-acquisition contract from spec
// section 4.1 ("guaranteed release on all exit paths").
func (v *VirtualDirectory) Close() error {
	if v.closed || v.tempDir == "" {
		v.closed = true
		return nil
	}
	v.closed = true
	return os.RemoveAll(v.tempDir)
}

// Open dispatches on p.Kind and produces a VirtualDirectory. On any
// failure, partial temporary state is reclaimed before returning — the
// caller never observes a half-extracted directory.
func Open(ctx context.Context, p Path) (*VirtualDirectory, error) {
	log := logging.From(ctx).WithValues("source", p.String(), "kind", string(p.Kind))

	switch p.Kind {
	case KindLocalFolder:
		root := p.LocalPath
		if p.SubFolder != "" {
			root = filepath.Join(root, p.SubFolder)
		}
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("vdir: local folder %s: %w", root, sourceNotFound(err))
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("vdir: %s is not a directory", root)
		}
		return &VirtualDirectory{path: root}, nil

	case KindLocalArchive:
		return openArchiveFromFile(ctx, p, log)

	case KindRemote:
		return openArchiveFromURL(ctx, p, log)

	case KindGitRepo:
		return openGitRepo(ctx, p, log)

	case KindOCIArtifact:
		return openOCIArtifact(ctx, p, log)

	default:
		return nil, fmt.Errorf("vdir: unknown source kind %q", p.Kind)
	}
}

// newScopedTempDir allocates a fresh subdirectory under the vdir cache
// root, unique per call so that concurrent VDir instances never race.
func newScopedTempDir(prefix string) (string, error) {
	root, err := CacheRoot()
	if err != nil {
		return "", err
	}
	dir, err := os.MkdirTemp(root, prefix+".*")
	if err != nil {
		return "", fmt.Errorf("vdir: failed to allocate temp directory under %s: %w", root, err)
	}
	return dir, nil
}

// releaseOnError removes dir if err is non-nil, implementing the "no
// partial extraction state is exposed" failure model.
func releaseOnError(dir string, err *error, log logr.Logger) {
	if *err != nil {
		if rmErr := os.RemoveAll(dir); rmErr != nil {
			log.Error(rmErr, "failed to clean up temp directory after error", "dir", dir)
		}
	}
}

func sourceNotFound(err error) error {
	return fmt.Errorf("source not found: %w", err)
}
