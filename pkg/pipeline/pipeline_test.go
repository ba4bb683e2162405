package pipeline

import (
	"reflect"
	"testing"

	"github.com/matzehuels/rpgmap/pkg/cache"
	errs "github.com/matzehuels/rpgmap/pkg/errors"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"json", false},
		{"dot", false},
		{"svg", false},
		{"html", false},
		{"png", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if tt.wantErr && !errs.Is(err, errs.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %v", tt.format, errs.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "html"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"html"}},
		{"svg", []string{"svg"}},
		{"svg, HTML ,json", []string{"svg", "html", "json"}},
		{" , ", []string{"html"}},
	}
	for _, tt := range tests {
		if got := ParseFormats(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestOptionsValidateForLoad(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		wantErr bool
	}{
		{"json file", "rpg_systems.json", false},
		{"yaml file", "catalog.yml", false},
		{"url", "https://example.com/rpg_systems.json", false},
		{"empty", "", true},
		{"blank", "   ", true},
		{"unknown extension", "catalog.csv", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := Options{Source: tt.source}
			err := opts.ValidateForLoad()
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateForLoad(%q) error = %v, wantErr %v", tt.source, err, tt.wantErr)
			}
		})
	}
}

func TestSetRenderDefaults(t *testing.T) {
	opts := Options{}
	opts.SetRenderDefaults()

	if !reflect.DeepEqual(opts.Formats, []string{FormatHTML}) {
		t.Errorf("Formats should be [html], got %v", opts.Formats)
	}
	if opts.Engine != "neato" {
		t.Errorf("Engine should be neato, got %s", opts.Engine)
	}

	opts.Formats[0] = "svg"
	if DefaultFormats[0] != FormatHTML {
		t.Error("defaults must not alias DefaultFormats")
	}
}

func TestValidateForRenderEngine(t *testing.T) {
	opts := Options{Engine: "SFDP"}
	if err := opts.ValidateForRender(); err != nil {
		t.Fatalf("ValidateForRender: %v", err)
	}
	if opts.Engine != "sfdp" {
		t.Errorf("Engine = %q, want normalized sfdp", opts.Engine)
	}

	opts = Options{Engine: "twopi"}
	if err := opts.ValidateForRender(); !errs.Is(err, errs.ErrCodeInvalidEngine) {
		t.Errorf("unknown engine error = %v", err)
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Source: "rpg_systems.json"}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}
	formats := opts.Formats
	engine := opts.Engine

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}
	if !reflect.DeepEqual(opts.Formats, formats) || opts.Engine != engine {
		t.Error("defaults changed on second call")
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{Select: "Fate", Engine: "fdp", Detailed: true, Title: "Catalog"}

	if got := opts.ArtifactKeyOpts(FormatJSON); got != (cache.ArtifactKeyOpts{Format: FormatJSON}) {
		t.Errorf("json key opts = %+v, selection should not matter", got)
	}
	if got := opts.ArtifactKeyOpts(FormatSVG); got.Select != "Fate" || got.Engine != "fdp" || !got.Detailed || got.Title != "" {
		t.Errorf("svg key opts = %+v", got)
	}
	if got := opts.ArtifactKeyOpts(FormatHTML); got.Select != "Fate" || got.Title != "Catalog" || got.Engine != "" {
		t.Errorf("html key opts = %+v", got)
	}
}
