package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/rpgmap/pkg/cache"
	"github.com/matzehuels/rpgmap/pkg/catalog"
	"github.com/matzehuels/rpgmap/pkg/graph"
	"github.com/matzehuels/rpgmap/pkg/highlight"
	"github.com/matzehuels/rpgmap/pkg/observability"
)

// cacheKeyType labels artifact entries in cache hooks.
const cacheKeyType = "artifact"

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger. It doesn't store
// pipeline results, so multiple goroutines can use the same Runner with
// different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL is applied to cached artifacts. Zero means entries never expire.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		TTL:    DefaultArtifactTTL,
	}
}

// Execute runs the complete load → build → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	logger := r.logger(opts)
	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	records, err := r.Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Records = records
	result.Stats.Records = len(records)
	result.Stats.LoadTime = time.Since(loadStart)

	// Stage 2: Build
	buildStart := time.Now()
	g, err := r.Build(ctx, records)
	if err != nil {
		return nil, err
	}
	result.Graph = g
	result.Stats.BuildTime = time.Since(buildStart)
	stats := g.Stats()
	result.Stats.Systems = stats.Systems
	result.Stats.Tags = stats.Tags
	result.Stats.NodeCount = g.NodeCount()
	result.Stats.EdgeCount = g.EdgeCount()

	result.State = r.Select(ctx, g, opts.Select)
	if opts.Select != "" && !g.Has(opts.Select) {
		logger.Warn("selection not in catalog", "id", opts.Select)
	}

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, info, hash, err := r.render(ctx, g, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.CacheInfo = info
	result.GraphHash = hash
	result.Stats.RenderTime = time.Since(renderStart)

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", len(info.Hits),
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load reads and validates the records named by opts.Source.
func (r *Runner) Load(ctx context.Context, opts Options) ([]catalog.Record, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, opts.Source)
	start := time.Now()

	records, err := catalog.Load(ctx, opts.Source)
	hooks.OnLoadComplete(ctx, opts.Source, len(records), time.Since(start), err)
	if err != nil {
		return nil, err
	}

	r.logger(opts).Info("loaded catalog",
		"source", opts.Source,
		"systems", len(records),
		"duration", time.Since(start))
	return records, nil
}

// Build constructs the graph for records.
func (r *Runner) Build(ctx context.Context, records []catalog.Record) (*graph.Graph, error) {
	hooks := observability.Pipeline()
	hooks.OnBuildStart(ctx, len(records))
	start := time.Now()

	g, err := graph.Build(records)
	if err != nil {
		hooks.OnBuildComplete(ctx, 0, 0, time.Since(start), err)
		return nil, err
	}
	hooks.OnBuildComplete(ctx, g.NodeCount(), g.EdgeCount(), time.Since(start), nil)

	r.Logger.Info("built graph",
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"duration", time.Since(start))
	return g, nil
}

// Select computes the highlight state for id and reports it to the hooks.
func (r *Runner) Select(ctx context.Context, g *graph.Graph, id string) highlight.State {
	start := time.Now()
	s := highlight.Select(g, id)
	observability.Pipeline().OnSelect(ctx, string(s.Details.Kind), time.Since(start))
	r.Logger.Debug("computed selection", "id", id, "kind", s.Details.Kind)
	return s
}

// RenderWithCacheInfo generates artifacts with caching and reports which
// formats were served from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, g *graph.Graph, opts Options) (map[string][]byte, CacheInfo, error) {
	artifacts, info, _, err := r.render(ctx, g, opts)
	return artifacts, info, err
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, g *graph.Graph, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, g, opts)
	return artifacts, err
}

func (r *Runner) render(ctx context.Context, g *graph.Graph, opts Options) (map[string][]byte, CacheInfo, string, error) {
	var info CacheInfo
	if err := opts.ValidateForRender(); err != nil {
		return nil, info, "", err
	}

	graphData, err := graph.MarshalGraph(g)
	if err != nil {
		return nil, info, "", fmt.Errorf("serialize graph for cache key: %w", err)
	}
	graphHash := cache.Hash(graphData)

	logger := r.logger(opts)
	hooks := observability.Pipeline()
	cacheHooks := observability.Cache()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(graphHash, opts.ArtifactKeyOpts(format))
		logger.Debug("rendering", "format", format, "key", key)

		if !opts.Refresh {
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil {
				logger.Warn("cache read failed", "format", format, "error", err)
			}
			if err == nil && hit {
				cacheHooks.OnCacheHit(ctx, cacheKeyType)
				artifacts[format] = data
				info.Hits = append(info.Hits, format)
				continue
			}
			cacheHooks.OnCacheMiss(ctx, cacheKeyType)
		}

		data, err := RenderFormat(ctx, g, format, opts)
		if err != nil {
			hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
			return nil, info, graphHash, err
		}
		artifacts[format] = data

		if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
			logger.Warn("cache write failed", "format", format, "error", err)
		} else {
			cacheHooks.OnCacheSet(ctx, cacheKeyType, len(data))
		}
	}

	info.RenderHit = len(opts.Formats) > 0 && len(info.Hits) == len(opts.Formats)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
	return artifacts, info, graphHash, nil
}

// logger returns the per-run logger if one is set.
func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
