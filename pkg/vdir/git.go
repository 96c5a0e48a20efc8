package vdir

import (
	"context"
	"fmt"
	"os"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-logr/logr"
)

// openGitRepo implements the GitRepo case of a shallow
// (depth 1) clone into a fresh scoped temp directory.
//
// Open question resolved (DESIGN.md "Open Questions resolved" #1): p.Refspec
// is parsed into a plumbing.ReferenceName and passed as the clone's
// ReferenceName so the right branch/tag is checked out, but it is NOT
// threaded into the shallow-depth selection below — CloneOptions.Depth is
// always 1 regardless of refspec. This is a documented limitation, not
// an oversight.
func openGitRepo(ctx context.Context, p Path, log logr.Logger) (_ *VirtualDirectory, err error) {
	dir, err := newScopedTempDir("repo")
	if err != nil {
		return nil, err
	}
	defer releaseOnError(dir, &err, log)

	opts := &git.CloneOptions{
		URL:          p.GitURL,
		Depth:        1,
		SingleBranch: true,
	}
	if p.Refspec != "" {
		opts.ReferenceName = plumbing.ReferenceName(p.Refspec)
		// Go-git requires a well-formed reference name for non-default
		// branches; a bare tag/branch short name is promoted to a branch ref.
		if !opts.ReferenceName.IsBranch() && !opts.ReferenceName.IsTag() {
			opts.ReferenceName = plumbing.NewBranchReferenceName(p.Refspec)
		}
	}

	if _, err = git.PlainCloneContext(ctx, dir, false, opts); err != nil {
		return nil, fmt.Errorf("vdir: git-error: cloning %s: %w", p.GitURL, err)
	}

	if p.SubFolder != "" {
		sub, joinErr := safeJoin(dir, p.SubFolder)
		if joinErr != nil {
			err = joinErr
			return nil, err
		}
		if !dirExists(sub) {
			err = fmt.Errorf("vdir: git-error: sub_folder %q does not exist in %s", p.SubFolder, p.GitURL)
			return nil, err
		}
		return &VirtualDirectory{path: sub, tempDir: dir}, nil
	}

	return &VirtualDirectory{path: dir, tempDir: dir}, nil
}

func dirExists(path string) bool {
	info, statErr := os.Stat(path)
	return statErr == nil && info.IsDir()
}
