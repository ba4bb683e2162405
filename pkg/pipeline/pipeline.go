// Package pipeline provides the load → build → render pipeline for rpgmap.
//
// The CLI and the server both drive the catalog through this package, so a
// dataset is read, validated and rendered the same way everywhere.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: read system records from a file or URL and validate them
//  2. Build: construct the system/tag graph
//  3. Render: produce artifacts (graph JSON, DOT, SVG, HTML) for an optional
//     selection
//
// Each stage can be run on its own or as part of [Runner.Execute]. Rendered
// artifacts are cached by graph content hash and render options; records
// and graphs are not cached.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Source:  "rpg_systems.json",
//	    Formats: []string{"html", "svg"},
//	    Select:  "Fate",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	page := result.Artifacts["html"]
//
// Run individual stages:
//
//	records, err := runner.Load(ctx, opts)
//	g, err := runner.Build(ctx, records)
//	artifacts, err := runner.Render(ctx, g, opts)
package pipeline

import (
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/rpgmap/pkg/cache"
	"github.com/matzehuels/rpgmap/pkg/catalog"
	errs "github.com/matzehuels/rpgmap/pkg/errors"
	"github.com/matzehuels/rpgmap/pkg/graph"
	"github.com/matzehuels/rpgmap/pkg/highlight"
	"github.com/matzehuels/rpgmap/pkg/render/nodelink"
)

// =============================================================================
// Default Values
// =============================================================================

// DefaultArtifactTTL is how long rendered artifacts stay cached.
const DefaultArtifactTTL = 7 * 24 * time.Hour

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatHTML = "html"
)

// DefaultFormats is used when no formats are requested.
var DefaultFormats = []string{FormatHTML}

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatHTML: true,
}

// Extension returns the file extension for a format.
func Extension(format string) string {
	return "." + format
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
type Options struct {
	// Load options
	Source string `json:"source"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Select   string   `json:"select,omitempty"`
	Engine   string   `json:"engine,omitempty"`
	Detailed bool     `json:"detailed,omitempty"`
	Title    string   `json:"title,omitempty"`

	// Refresh skips cache reads; fresh artifacts are still written.
	Refresh bool `json:"refresh,omitempty"`

	// Logger overrides the runner's logger for this run.
	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Records are the validated system records in input order.
	Records []catalog.Record

	// Graph is the built system/tag graph.
	Graph *graph.Graph

	// GraphHash is the content hash of the serialized graph.
	GraphHash string

	// State is the highlight state for Options.Select.
	State highlight.State

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which artifacts came from the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Records    int
	Systems    int
	Tags       int
	NodeCount  int
	EdgeCount  int
	LoadTime   time.Duration
	BuildTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for the render stage.
type CacheInfo struct {
	RenderHit bool     // Whether all artifacts came from cache
	Hits      []string // Formats served from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errs.New(errs.ErrCodeInvalidFormat, "invalid format: %q (must be one of: json, dot, svg, html)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated list such as "svg, html".
// Empty input yields [DefaultFormats].
func ParseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		return append([]string(nil), DefaultFormats...)
	}
	return out
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. Calling it more than once has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks that a usable source is set.
func (o *Options) ValidateForLoad() error {
	if strings.TrimSpace(o.Source) == "" {
		return errs.New(errs.ErrCodeInvalidInput, "dataset source is required")
	}
	return errs.ValidateSource(o.Source)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = append([]string(nil), DefaultFormats...)
	}
	if o.Engine == "" {
		o.Engine = string(nodelink.DefaultEngine)
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	engine, err := nodelink.ParseEngine(o.Engine)
	if err != nil {
		return err
	}
	o.Engine = string(engine)
	return nil
}

// ArtifactKeyOpts returns cache key options for one format. Only options
// that change the format's bytes are included, so unrelated flags share
// cache entries.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatDOT, FormatSVG:
		k.Select = o.Select
		k.Engine = o.Engine
		k.Detailed = o.Detailed
	case FormatHTML:
		k.Select = o.Select
		k.Title = o.Title
	}
	return k
}
