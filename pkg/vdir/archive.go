package vdir

import (
	"archive/tar"
	"archive/zip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-logr/logr"
	"github.com/klauspost/compress/gzip"
	"github.com/schollz/progressbar/v3"
)

// openArchiveFromFile implements the LocalArchive case: extract into a
// fresh scoped temp directory and return its path.
func openArchiveFromFile(ctx context.Context, p Path, log logr.Logger) (_ *VirtualDirectory, err error) {
	f, openErr := os.Open(p.LocalPath)
	if openErr != nil {
		return nil, fmt.Errorf("vdir: local archive %s: %w", p.LocalPath, sourceNotFound(openErr))
	}
	defer f.Close()

	dir, err := newScopedTempDir("repo")
	if err != nil {
		return nil, err
	}
	defer releaseOnError(dir, &err, log)

	if err = extractArchive(f, p.LocalPath, p.SubFolder, dir); err != nil {
		return nil, err
	}
	return &VirtualDirectory{path: dir, tempDir: dir}, nil
}

// openArchiveFromURL implements the RemoteArchive case: download over
// HTTP(S) into a temp file, then extract exactly like a LocalArchive (spec
// section 4.1).
func openArchiveFromURL(ctx context.Context, p Path, log logr.Logger) (_ *VirtualDirectory, err error) {
	dir, err := newScopedTempDir("repo")
	if err != nil {
		return nil, err
	}
	// dir only stages the download; the returned handle owns extractDir.
	defer os.RemoveAll(dir)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("vdir: building request for %s: %w", p.URL, err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("vdir: downloading %s: %w", p.URL, sourceNotFound(err))
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("vdir: downloading %s: %w", p.URL, sourceNotFound(fmt.Errorf("unexpected status %s", resp.Status)))
	}

	var body io.Reader = resp.Body
	if resp.ContentLength > 0 {
		bar := progressbar.NewOptions64(resp.ContentLength,
			progressbar.OptionSetDescription(fmt.Sprintf("downloading %s", filepath.Base(p.URL))),
			progressbar.OptionShowBytes(true),
			progressbar.OptionClearOnFinish(),
		)
		body = io.TeeReader(resp.Body, bar)
	}

	tmpFile, err := os.CreateTemp(dir, "download-*")
	if err != nil {
		return nil, fmt.Errorf("vdir: staging download of %s: %w", p.URL, err)
	}
	defer os.Remove(tmpFile.Name())
	if _, err = io.Copy(tmpFile, body); err != nil {
		tmpFile.Close()
		return nil, fmt.Errorf("vdir: downloading %s: %w", p.URL, err)
	}
	if _, err = tmpFile.Seek(0, io.SeekStart); err != nil {
		tmpFile.Close()
		return nil, fmt.Errorf("vdir: rewinding download of %s: %w", p.URL, err)
	}

	extractDir, err := newScopedTempDir("repo")
	if err != nil {
		tmpFile.Close()
		return nil, err
	}
	defer releaseOnError(extractDir, &err, log)

	extractErr := extractArchive(tmpFile, p.URL, p.SubFolder, extractDir)
	tmpFile.Close()
	if extractErr != nil {
		err = extractErr
		return nil, err
	}

	return &VirtualDirectory{path: extractDir, tempDir: extractDir}, nil
}

// extractArchive dispatches on the source name's suffix and extracts into
// dest, applying the "strip the top-level wrapper folder, then optionally
// retain only sub_folder" rule.
func extractArchive(r io.ReaderAt, sourceName, subFolder, dest string) error {
	switch {
	case strings.HasSuffix(sourceName, ".zip"):
		return extractZip(r, sourceName, subFolder, dest)
	case strings.HasSuffix(sourceName, ".tar.gz"):
		rs, ok := r.(io.Reader)
		if !ok {
			return fmt.Errorf("vdir: archive-invalid: %s cannot be streamed", sourceName)
		}
		return extractTarGz(rs, subFolder, dest)
	default:
		return fmt.Errorf("vdir: archive-unsupported: %s is neither .zip nor .tar.gz", sourceName)
	}
}

// extractTarGz reads a gzip-compressed tar stream entry by entry, applying
// the strip-leading-component and optional sub_folder rules.
func extractTarGz(r io.Reader, subFolder, dest string) error {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return fmt.Errorf("vdir: archive-invalid: not a valid gzip stream: %w", err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("vdir: archive-invalid: reading tar entry: %w", err)
		}

		rel, ok := stripEntry(hdr.Name, subFolder)
		if !ok {
			continue
		}
		if rel == "" {
			continue
		}

		target, err := safeJoin(dest, rel)
		if err != nil {
			return err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("vdir: creating directory %s: %w", target, err)
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return fmt.Errorf("vdir: creating parent of %s: %w", target, err)
			}
			out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, os.FileMode(hdr.Mode)&0o777|0o600)
			if err != nil {
				return fmt.Errorf("vdir: writing %s: %w", target, err)
			}
			if _, err := io.Copy(out, tr); err != nil {
				out.Close()
				return fmt.Errorf("vdir: writing %s: %w", target, err)
			}
			out.Close()
		default:
			// Symlinks and other special entries are skipped; semconv
			// registries never need them.
		}
	}
}

// extractZip extracts a zip archive the same way, reusing the shared
// strip/sub_folder logic.
func extractZip(r io.ReaderAt, sourceName, subFolder, dest string) error {
	size, err := sizeOf(r, sourceName)
	if err != nil {
		return err
	}
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return fmt.Errorf("vdir: archive-invalid: not a valid zip archive: %w", err)
	}

	for _, entry := range zr.File {
		rel, ok := stripEntry(entry.Name, subFolder)
		if !ok || rel == "" {
			continue
		}
		target, err := safeJoin(dest, rel)
		if err != nil {
			return err
		}

		if entry.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("vdir: creating directory %s: %w", target, err)
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return fmt.Errorf("vdir: creating parent of %s: %w", target, err)
		}
		src, err := entry.Open()
		if err != nil {
			return fmt.Errorf("vdir: opening zip entry %s: %w", entry.Name, err)
		}
		out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
		if err != nil {
			src.Close()
			return fmt.Errorf("vdir: writing %s: %w", target, err)
		}
		_, copyErr := io.Copy(out, src)
		src.Close()
		out.Close()
		if copyErr != nil {
			return fmt.Errorf("vdir: writing %s: %w", target, copyErr)
		}
	}
	return nil
}

func sizeOf(r io.ReaderAt, name string) (int64, error) {
	if f, ok := r.(*os.File); ok {
		info, err := f.Stat()
		if err != nil {
			return 0, fmt.Errorf("vdir: stat %s: %w", name, err)
		}
		return info.Size(), nil
	}
	return 0, fmt.Errorf("vdir: cannot determine size of %s for zip reading", name)
}

// stripEntry implements step 1 (strip the leading top-level component) and
// step 2 (retain only sub_folder, stripping that component too) of spec
// section 4.1's extraction algorithm. ok is false when the entry should be
// skipped entirely (its first component doesn't match sub_folder).
func stripEntry(name, subFolder string) (rel string, ok bool) {
	clean := filepath.ToSlash(strings.TrimPrefix(name, "/"))
	parts := strings.Split(clean, "/")
	if len(parts) <= 1 {
		// Nothing beyond the top-level wrapper component itself.
		return "", true
	}
	rest := parts[1:]

	if subFolder != "" {
		if rest[0] != subFolder {
			return "", false
		}
		rest = rest[1:]
	}
	return strings.Join(rest, "/"), true
}

// safeJoin joins dest and rel, rejecting any path that would escape dest
// via ".." components — archives are untrusted input.
func safeJoin(dest, rel string) (string, error) {
	target := filepath.Join(dest, rel)
	if !strings.HasPrefix(target, filepath.Clean(dest)+string(os.PathSeparator)) && target != filepath.Clean(dest) {
		return "", fmt.Errorf("vdir: archive-invalid: entry %q escapes extraction root", rel)
	}
	return target, nil
}
