package vdir

import (
	"archive/tar"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-logr/logr"
	"github.com/schollz/progressbar/v3"
	"oras.land/oras-go/v2"
	"oras.land/oras-go/v2/content/oci"
	"oras.land/oras-go/v2/registry/remote"
	"oras.land/oras-go/v2/registry/remote/auth"

	"github.com/convreg/semconv-resolver/pkg/ociutil"
	"github.com/convreg/semconv-resolver/pkg/registry"
)

// openOCIArtifact implements the supplemental OCIArtifact source: the
// resolved registry, or its semconv sources, may themselves be
// distributed as an OCI artifact the way Helm charts and SBOMs are. The
// manifest's layers are pulled into a local OCI layout store and then
// unpacked exactly like an archive's entries (strip the synthetic
// layout wrapper, honor sub_folder).
func openOCIArtifact(ctx context.Context, p Path, log logr.Logger) (_ *VirtualDirectory, err error) {
	ref, parseErr := ociutil.ParseReference(p.OCIReference)
	if parseErr != nil {
		return nil, fmt.Errorf("vdir: source-not-found: %w", parseErr)
	}

	storeDir, err := newScopedTempDir("oci-store")
	if err != nil {
		return nil, err
	}
	defer releaseOnError(storeDir, &err, log)

	store, err := oci.New(storeDir)
	if err != nil {
		return nil, fmt.Errorf("vdir: source-not-found: creating local OCI store: %w", err)
	}

	repo, err := remoteRepository(ref)
	if err != nil {
		return nil, fmt.Errorf("vdir: source-not-found: %w", err)
	}

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(fmt.Sprintf("pulling %s", p.OCIReference)),
		progressbar.OptionClearOnFinish(),
	)
	defer bar.Close()

	reference := ref.Ref()
	desc, err := oras.Copy(ctx, repo, reference, store, reference, oras.DefaultCopyOptions)
	if err != nil {
		return nil, fmt.Errorf("vdir: source-not-found: pulling %s: %w", p.OCIReference, err)
	}
	_ = bar.Add(1)

	unpackDir, err := newScopedTempDir("repo")
	if err != nil {
		return nil, err
	}
	defer releaseOnError(unpackDir, &err, log)

	if err = unpackOCILayout(storeDir, desc.Digest.String(), p.SubFolder, unpackDir); err != nil {
		return nil, err
	}

	return &VirtualDirectory{path: unpackDir, tempDir: unpackDir}, nil
}

// remoteRepository builds an oras remote.Repository for ref, authenticating
// with the first credential store in the chain that has something for this
// registry: a Docker credHelpers routing, then plain ~/.docker/config.json
// auths, falling back to anonymous when nothing is configured.
func remoteRepository(ref *ociutil.Reference) (*remote.Repository, error) {
	dc, _ := registry.LoadDockerConfig()
	chain := registry.NewChainedStore(
		registry.NewDockerCredHelperRoutingStore(credHelperMap(dc)),
		registry.NewDockerConfigStore(dc),
	)

	var credFn auth.CredentialFunc
	if creds, err := chain.Get(ref.Registry); err == nil {
		credFn = auth.StaticCredential(ref.Registry, auth.Credential{
			Username:     creds.Username,
			Password:     creds.Password,
			RefreshToken: creds.RefreshToken,
			AccessToken:  creds.AccessToken,
		})
	}

	repo, err := ociutil.NewRemoteRepository(ref, false, credFn)
	if err != nil {
		return nil, err
	}
	return repo, nil
}

func credHelperMap(dc *registry.DockerConfig) map[string]string {
	if dc == nil {
		return nil
	}
	return dc.CredHelpers
}

// unpackOCILayout reads the pulled manifest blob, by its digest, from the
// OCI layout oras.Copy wrote into storeDir, and extracts the first of its
// layers that unpacks as a tar archive, using the same strip-wrapper/sub_folder rule
// tar/zip archives use — a semconv-over-OCI artifact
// packages its registry folder as a single uncompressed tar layer.
func unpackOCILayout(storeDir, digest, subFolder, dest string) error {
	manifestPath := filepath.Join(storeDir, "blobs", blobSubpath(digest))
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return fmt.Errorf("vdir: archive-invalid: reading pulled manifest: %w", err)
	}

	var manifest ociutil.OCIManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return fmt.Errorf("vdir: archive-invalid: pulled artifact manifest is not valid JSON: %w", err)
	}
	if len(manifest.Layers) == 0 {
		return fmt.Errorf("vdir: archive-invalid: pulled OCI artifact manifest has no layers")
	}

	for _, layer := range manifest.Layers {
		blobPath := filepath.Join(storeDir, "blobs", blobSubpath(layer.Digest))
		f, openErr := os.Open(blobPath)
		if openErr != nil {
			continue
		}
		extractErr := extractOCILayerTar(f, subFolder, dest)
		f.Close()
		if extractErr == nil {
			return nil
		}
	}
	return fmt.Errorf("vdir: archive-invalid: pulled OCI artifact contained no readable tar layer")
}

// extractOCILayerTar reads a plain (non-gzipped) tar layer, applying the
// same strip-leading-component/sub_folder rules as extractTarGz.
func extractOCILayerTar(r io.Reader, subFolder, dest string) error {
	tr := tar.NewReader(r)
	sawEntry := false
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			if !sawEntry {
				return fmt.Errorf("vdir: archive-invalid: empty tar layer")
			}
			return nil
		}
		if err != nil {
			return fmt.Errorf("vdir: archive-invalid: reading tar layer entry: %w", err)
		}
		sawEntry = true

		rel, ok := stripEntry(hdr.Name, subFolder)
		if !ok || rel == "" {
			continue
		}
		target, joinErr := safeJoin(dest, rel)
		if joinErr != nil {
			return joinErr
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
		}
	}
}

// blobSubpath splits a "sha256:abc123..." digest into the OCI layout's
// "sha256/abc123..." blob path.
func blobSubpath(digest string) string {
	for i := 0; i < len(digest); i++ {
		if digest[i] == ':' {
			return filepath.Join(digest[:i], digest[i+1:])
		}
	}
	return digest
}
