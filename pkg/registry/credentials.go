// Package registry supplies the credential material the vdir package's
// OCIArtifact source needs to authenticate against a registry: a
// pluggable CredentialStore chain over the usual Docker config.json /
// credential-helper backends, narrowed to the single need of "can we
// pull this one reference".
package registry

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for credential operations.
var (
	// ErrNotImplemented indicates a credential store backend is stubbed and not yet functional.
	ErrNotImplemented = errors.New("not implemented")

	// ErrCredentialsNotFound indicates no credentials exist for the requested registry.
	ErrCredentialsNotFound = errors.New("credentials not found")
)

// Credentials holds authentication material for an OCI registry.
type Credentials struct {
	Username     string
	Password     string
	RefreshToken string // OAuth2 refresh token (for token-based auth flows)
	AccessToken  string // OAuth2 access token / identity token
}

// CredentialStore is the interface for credential backends.
type CredentialStore interface {
	// Get retrieves credentials for the given registry URL.
	// Returns ErrCredentialsNotFound if no credentials are stored.
	Get(registryURL string) (*Credentials, error)

	// List returns all registry URLs that have stored credentials.
	List() ([]string, error)
}

// ---------------------------------------------------------------------------
// ChainedStore iterates through multiple stores, returning the first match.
// ---------------------------------------------------------------------------

// ChainedStore tries each store in order and returns the first successful result.
type ChainedStore struct {
	stores []CredentialStore
}

// NewChainedStore creates a credential store that queries each provided store
// in order, returning the first successful credential lookup.
func NewChainedStore(stores ...CredentialStore) *ChainedStore {
	return &ChainedStore{stores: stores}
}

// Get returns credentials from the first store that has them.
func (cs *ChainedStore) Get(registryURL string) (*Credentials, error) {
	for _, s := range cs.stores {
		creds, err := s.Get(registryURL)
		if err == nil {
			return creds, nil
		}
		// Skip stores that don't have credentials or aren't implemented yet
		if errors.Is(err, ErrCredentialsNotFound) || errors.Is(err, ErrNotImplemented) {
			continue
		}
		// Propagate unexpected errors
		return nil, fmt.Errorf("credential store error: %w", err)
	}
	return nil, ErrCredentialsNotFound
}

// List returns the union of registry URLs across all stores.
func (cs *ChainedStore) List() ([]string, error) {
	seen := make(map[string]bool)
	var urls []string
	for _, s := range cs.stores {
		storeURLs, err := s.List()
		if err != nil {
			if errors.Is(err, ErrNotImplemented) {
				continue
			}
			return nil, err
		}
		for _, u := range storeURLs {
			if !seen[u] {
				seen[u] = true
				urls = append(urls, u)
			}
		}
	}
	return urls, nil
}

// ---------------------------------------------------------------------------
// DockerConfigStore — reads from ~/.docker/config.json auths (working).
// ---------------------------------------------------------------------------

// DockerConfigStore reads credentials from the Docker config.json auths map.
// It does not invoke Docker credential helpers (see DockerCredHelperRoutingStore).
type DockerConfigStore struct {
	dockerConfig *DockerConfig
}

// NewDockerConfigStore creates a read-only credential store backed by Docker config.json.
func NewDockerConfigStore(dc *DockerConfig) *DockerConfigStore {
	return &DockerConfigStore{dockerConfig: dc}
}

func (s *DockerConfigStore) Get(registryURL string) (*Credentials, error) {
	if s.dockerConfig == nil {
		return nil, ErrCredentialsNotFound
	}
	username, password, found := s.dockerConfig.GetCredentials(registryURL)
	if !found {
		return nil, ErrCredentialsNotFound
	}
	return &Credentials{Username: username, Password: password}, nil
}

func (s *DockerConfigStore) List() ([]string, error) {
	if s.dockerConfig == nil {
		return nil, nil
	}
	var urls []string
	for url := range s.dockerConfig.Auths {
		urls = append(urls, url)
	}
	return urls, nil
}

// ---------------------------------------------------------------------------
// DockerCredHelperRoutingStore — routes per-registry credential helpers.
// ---------------------------------------------------------------------------

// DockerCredHelperRoutingStore routes credential lookups to per-registry
// Docker credential helpers as specified by the "credHelpers" field in
// Docker config.json. Each entry maps a registry URL to a helper name.
type DockerCredHelperRoutingStore struct {
	// helpers maps normalized registry URLs to their credential helper names.
	helpers map[string]string
}

// NewDockerCredHelperRoutingStore creates a routing store from the credHelpers
// map (key = registry URL, value = helper name).
func NewDockerCredHelperRoutingStore(credHelpers map[string]string) *DockerCredHelperRoutingStore {
	return &DockerCredHelperRoutingStore{helpers: credHelpers}
}

func (s *DockerCredHelperRoutingStore) Get(registryURL string) (*Credentials, error) {
	normalized := normalizeRegistryForLookup(registryURL)
	for helperRegistry, helperName := range s.helpers {
		if normalizeRegistryForLookup(helperRegistry) == normalized {
			store := NewDockerCredentialHelperStore(helperName)
			return store.Get(registryURL)
		}
	}
	return nil, ErrCredentialsNotFound
}

func (s *DockerCredHelperRoutingStore) List() ([]string, error) {
	var urls []string
	for url := range s.helpers {
		urls = append(urls, url)
	}
	return urls, nil
}

// normalizeRegistryForLookup strips protocol prefixes for comparison purposes.
func normalizeRegistryForLookup(registry string) string {
	registry = strings.TrimPrefix(registry, "https://")
	registry = strings.TrimPrefix(registry, "http://")
	registry = strings.TrimSuffix(registry, "/")
	return registry
}

// ---------------------------------------------------------------------------
// DockerCredentialHelperStore — invokes docker-credential-* helpers.
// ---------------------------------------------------------------------------

// DockerCredentialHelperStore invokes external Docker credential helpers
// (e.g. docker-credential-osxkeychain, docker-credential-secretservice,
// docker-credential-wincred, docker-credential-pass).
type DockerCredentialHelperStore struct {
	// helperName is the credential helper suffix (e.g. "osxkeychain", "secretservice").
	helperName string
}

// NewDockerCredentialHelperStore creates a store that delegates to the named
// Docker credential helper binary.
func NewDockerCredentialHelperStore(helperName string) *DockerCredentialHelperStore {
	return &DockerCredentialHelperStore{helperName: helperName}
}

func (s *DockerCredentialHelperStore) Get(registryURL string) (*Credentials, error) {
	username, password, err := execCredentialHelper(s.helperName, registryURL)
	if err != nil {
		return nil, err
	}
	return &Credentials{Username: username, Password: password}, nil
}

func (s *DockerCredentialHelperStore) List() ([]string, error) {
	return nil, ErrNotImplemented
}
