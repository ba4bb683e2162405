package nodelink

import (
	"strings"
	"testing"

	"github.com/matzehuels/rpgmap/pkg/catalog"
	errs "github.com/matzehuels/rpgmap/pkg/errors"
	"github.com/matzehuels/rpgmap/pkg/graph"
	"github.com/matzehuels/rpgmap/pkg/highlight"
	"github.com/matzehuels/rpgmap/pkg/render"
)

func fateAndBlades(t *testing.T) *graph.Graph {
	t.Helper()
	g, err := graph.Build([]catalog.Record{
		{System: "Fate", CoreResolution: catalog.Tags{"d6 pool"}, GenreScope: catalog.Tags{"generic"}},
		{System: "Blades", CoreResolution: catalog.Tags{"d6 pool"}},
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return g
}

func TestToDOTUnselected(t *testing.T) {
	g := fateAndBlades(t)
	dot := ToDOT(g, highlight.Select(g, ""), Options{})

	for _, want := range []string{
		"graph G {",
		"layout=neato;",
		`"Fate" [xlabel="Fate"`,
		`"core_resolution:d6 pool" [xlabel="d6 pool"`,
		`"Fate" -- "core_resolution:d6 pool"`,
		`"Blades" -- "core_resolution:d6 pool"`,
		`fillcolor="` + render.SystemColor + `"`,
		`fillcolor="` + render.TagFill(catalog.GenreScope) + `"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q", want)
		}
	}
	if strings.Contains(dot, "->") {
		t.Error("DOT should be undirected")
	}
	if strings.Contains(dot, "penwidth=3") {
		t.Error("unselected DOT should not highlight nodes")
	}
	if got := strings.Count(dot, " -- "); got != 3 {
		t.Errorf("got %d edges, want 3", got)
	}
}

func TestToDOTSelected(t *testing.T) {
	g := fateAndBlades(t)
	dot := ToDOT(g, highlight.Select(g, "Fate"), Options{Engine: FDP})

	if !strings.Contains(dot, "layout=fdp;") {
		t.Error("engine should be written into the DOT source")
	}
	if got := strings.Count(dot, "penwidth=2.5"); got != 2 {
		t.Errorf("got %d highlighted edges, want 2", got)
	}
	if got := strings.Count(dot, "penwidth=3"); got != 1 {
		t.Errorf("got %d highlighted nodes, want 1", got)
	}

	faded := render.WithAlpha(render.SystemColor, dimAlpha)
	if !strings.Contains(dot, `"Blades" [xlabel="Blades", tooltip="Blades", width=0.50, fillcolor="`+faded+`"`) {
		t.Errorf("Blades should be dimmed:\n%s", dot)
	}
	dimEdge := render.WithAlpha(render.CategoryColor(catalog.CoreResolution), edgeDimAlpha)
	if !strings.Contains(dot, `"Blades" -- "core_resolution:d6 pool" [color="`+dimEdge+`"]`) {
		t.Errorf("Blades edge should be dimmed:\n%s", dot)
	}
}

func TestToDOTDetailed(t *testing.T) {
	g := fateAndBlades(t)
	dot := ToDOT(g, highlight.State{}, Options{Detailed: true})

	if !strings.Contains(dot, `xlabel="d6 pool\nCore Resolution"`) {
		t.Errorf("detailed labels should include the category:\n%s", dot)
	}
	if !strings.Contains(dot, `tooltip="generic (Genre Scope)"`) {
		t.Error("tag tooltip should name the category")
	}
}

func TestParseEngine(t *testing.T) {
	tests := []struct {
		in      string
		want    Engine
		wantErr bool
	}{
		{"", Neato, false},
		{"neato", Neato, false},
		{" SFDP ", SFDP, false},
		{"circo", Circo, false},
		{"twopi", "", true},
	}
	for _, tt := range tests {
		got, err := ParseEngine(tt.in)
		if tt.wantErr {
			if !errs.Is(err, errs.ErrCodeInvalidEngine) {
				t.Errorf("ParseEngine(%q) err = %v, want INVALID_ENGINE", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseEngine(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
	if len(Engines()) != len(layouts) {
		t.Error("Engines and layouts disagree")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `viewBox="0 0 100.00 50.00" width="100" height="50"`) {
		t.Errorf("normalizeViewBox = %s", out)
	}
	if got := normalizeViewBox([]byte("<svg></svg>")); string(got) != "<svg></svg>" {
		t.Errorf("without viewBox the SVG should be unchanged, got %s", got)
	}
}
