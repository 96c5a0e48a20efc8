package main

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/convreg/semconv-resolver/pkg/cache"
	"github.com/convreg/semconv-resolver/pkg/config"
	"github.com/convreg/semconv-resolver/pkg/diag"
	"github.com/convreg/semconv-resolver/pkg/logging"
	"github.com/convreg/semconv-resolver/pkg/resolver"
	"github.com/convreg/semconv-resolver/pkg/semconv"
	"github.com/convreg/semconv-resolver/pkg/vdir"
)

// pipelineOptions controls one VDir->SpecLoader->Resolver run, shared by
// the resolve and check subcommands.
type pipelineOptions struct {
	RegistryURL string
	Sources     []string
	Strict      bool
	NoCache     bool
}

// fetchResult pairs one --registry source with the specs its own
// VDir+SpecLoader pipeline produced, so errgroup's concurrent fetches can
// be joined back into deterministic source order.
type fetchResult struct {
	specs []semconv.SpecWithProvenance
	diags *diag.Compound
}

// runPipeline fetches every configured --registry source concurrently
// (one goroutine per source, confined to I/O), joins the loaded specs in
// source order, and runs the single-threaded Resolver over the combined
// set. A cached ResolvedRegistry is reused when available and
// opts.NoCache is false.
func runPipeline(ctx context.Context, opts pipelineOptions) (*resolver.ResolvedRegistry, *diag.Compound, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	c := cache.New(cfg.GetCacheDir())
	cacheKey := cache.ResolvedRegistryCacheKey(opts.RegistryURL, opts.Sources)

	if !opts.NoCache {
		if data, ok := c.Get(cacheKey); ok {
			var cached resolver.ResolvedRegistry
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, &diag.Compound{}, nil
			}
		}
	}

	results := make([]fetchResult, len(opts.Sources))
	g, gctx := errgroup.WithContext(ctx)
	for i, source := range opts.Sources {
		i, source := i, source
		g.Go(func() error {
			r, err := fetchOne(gctx, source, opts.Strict)
			results[i] = r
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	warnings := &diag.Compound{}
	var specs []semconv.SpecWithProvenance
	for _, r := range results {
		warnings.Merge(r.diags)
		specs = append(specs, r.specs...)
	}

	registry, diags, err := resolver.Resolve(opts.RegistryURL, specs)
	warnings.Merge(diags)
	if err != nil {
		return nil, warnings, err
	}

	if !opts.NoCache {
		if data, err := json.Marshal(registry); err == nil {
			_ = c.Set(cacheKey, data, cache.DefaultTTL)
		}
	}

	return registry, warnings, nil
}

// fetchOne opens one --registry source as a VDir and loads every spec
// file underneath it.
func fetchOne(ctx context.Context, source string, strict bool) (fetchResult, error) {
	logger := logging.From(ctx)

	p, err := vdir.Parse(source)
	if err != nil {
		return fetchResult{}, fmt.Errorf("parsing source %q: %w", source, err)
	}

	logger.V(1).Info("opening source", "source", source, "kind", p.Kind)
	vd, err := vdir.Open(ctx, p)
	if err != nil {
		return fetchResult{}, fmt.Errorf("opening source %q: %w", source, err)
	}
	defer vd.Close()

	specs, diags, err := semconv.Load(vd.Path(), semconv.Options{RegistryID: source, Strict: strict})
	if err != nil {
		return fetchResult{specs: specs, diags: diags}, fmt.Errorf("loading %q: %w", source, err)
	}

	return fetchResult{specs: specs, diags: diags}, nil
}
