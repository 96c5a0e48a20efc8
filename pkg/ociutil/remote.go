package ociutil

import (
	"oras.land/oras-go/v2/registry/remote"
	"oras.land/oras-go/v2/registry/remote/auth"
	"oras.land/oras-go/v2/registry/remote/retry"
)

// NewRemoteRepository builds an oras remote.Repository for ref, the
// client the OCIArtifact vdir source copies a pulled registry bundle
// through. credFn supplies per-registry credentials; when nil, the
// repository authenticates anonymously.
func NewRemoteRepository(ref *Reference, insecure bool, credFn auth.CredentialFunc) (*remote.Repository, error) {
	repo, err := remote.NewRepository(ref.Registry + "/" + ref.Repository)
	if err != nil {
		return nil, err
	}

	if ref.Registry == "docker.io" {
		repo.Reference.Registry = "registry-1.docker.io"
	}

	repo.PlainHTTP = insecure

	if credFn == nil {
		credFn = auth.StaticCredential(repo.Reference.Registry, auth.Credential{})
	}
	repo.Client = &auth.Client{
		Client:     retry.DefaultClient,
		Credential: credFn,
	}

	return repo, nil
}
