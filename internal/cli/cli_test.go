package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/rpgmap/pkg/config"
	errs "github.com/matzehuels/rpgmap/pkg/errors"
	"github.com/matzehuels/rpgmap/pkg/highlight"
)

const testDataset = `[
  {"system": "Fate", "core_resolution": ["d6 pool"], "genre_scope": ["generic"]},
  {"system": "Blades", "core_resolution": ["d6 pool"]}
]`

// isolate points the config and cache directories at temp dirs.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
}

func writeTestDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rpg_systems.json")
	if err := os.WriteFile(path, []byte(testDataset), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestDatasetSource(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)

	if got, err := c.datasetSource([]string{"a.json"}); err != nil || got != "a.json" {
		t.Errorf("datasetSource(arg) = %q, %v", got, err)
	}

	if _, err := c.datasetSource(nil); !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Errorf("missing dataset error = %v", err)
	}

	c.Config.Dataset.Source = "configured.yaml"
	if got, err := c.datasetSource(nil); err != nil || got != "configured.yaml" {
		t.Errorf("datasetSource(config) = %q, %v", got, err)
	}
}

func TestOptionsFromConfig(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)
	c.Config.Render = config.RenderConfig{Engine: "fdp", Formats: []string{"svg", "dot"}, Detailed: true}

	var flags renderFlags
	cmd := &cobra.Command{Use: "test"}
	flags.register(cmd)

	opts := c.options(cmd, &flags)
	if !reflect.DeepEqual(opts.Formats, []string{"svg", "dot"}) || opts.Engine != "fdp" || !opts.Detailed {
		t.Errorf("config defaults not applied: %+v", opts)
	}

	if err := cmd.Flags().Parse([]string{"-f", "json", "-e", "sfdp", "--detailed=false"}); err != nil {
		t.Fatal(err)
	}
	opts = c.options(cmd, &flags)
	if !reflect.DeepEqual(opts.Formats, []string{"json"}) || opts.Engine != "sfdp" || opts.Detailed {
		t.Errorf("flags should override config: %+v", opts)
	}
}

func TestBuildCommand(t *testing.T) {
	isolate(t)
	dataset := writeTestDataset(t)
	base := filepath.Join(t.TempDir(), "out", "map")

	if _, err := execute(t, "build", dataset, "-f", "html,json,dot", "-o", base, "-s", "Fate"); err != nil {
		t.Fatalf("build: %v", err)
	}

	for _, ext := range []string{".html", ".json", ".dot"} {
		data, err := os.ReadFile(base + ext)
		if err != nil {
			t.Fatalf("missing output %s: %v", ext, err)
		}
		if len(data) == 0 {
			t.Errorf("%s output is empty", ext)
		}
	}

	// The json output feeds the render command.
	if _, err := execute(t, "render", base+".json", "-f", "dot", "-o", base+"-again"); err != nil {
		t.Fatalf("render: %v", err)
	}
	if _, err := os.Stat(base + "-again.dot"); err != nil {
		t.Errorf("render output missing: %v", err)
	}
}

func TestBuildUsesConfiguredDataset(t *testing.T) {
	isolate(t)
	cfg := config.Default()
	cfg.Dataset.Source = writeTestDataset(t)
	cfg.Cache.Backend = config.BackendNone
	if err := config.Save(cfg); err != nil {
		t.Fatal(err)
	}

	base := filepath.Join(t.TempDir(), "map")
	if _, err := execute(t, "build", "-f", "json", "-o", base); err != nil {
		t.Fatalf("build: %v", err)
	}
	if _, err := os.Stat(base + ".json"); err != nil {
		t.Errorf("output missing: %v", err)
	}
}

func TestBuildErrors(t *testing.T) {
	isolate(t)

	tests := []struct {
		name string
		args []string
		code errs.Code
	}{
		{"no dataset", []string{"build"}, errs.ErrCodeInvalidInput},
		{"bad format", []string{"build", writeTestDataset(t), "-f", "pdf"}, errs.ErrCodeInvalidFormat},
		{"bad engine", []string{"build", writeTestDataset(t), "-e", "twopi"}, errs.ErrCodeInvalidEngine},
		{"bad extension", []string{"build", "catalog.csv"}, errs.ErrCodeInvalidSource},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			if !errs.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestSelectCommandJSON(t *testing.T) {
	isolate(t)
	out, err := execute(t, "select", "core_resolution:d6 pool", writeTestDataset(t), "--json")
	if err != nil {
		t.Fatalf("select: %v", err)
	}

	var state highlight.State
	if err := json.Unmarshal([]byte(out), &state); err != nil {
		t.Fatalf("decode state: %v\n%s", err, out)
	}
	if state.Details.Kind != highlight.DetailsTag {
		t.Errorf("Kind = %q", state.Details.Kind)
	}
	if !reflect.DeepEqual(state.Details.Systems, []string{"Blades", "Fate"}) {
		t.Errorf("Systems = %v", state.Details.Systems)
	}
	if len(state.HighlightedEdges()) != 2 {
		t.Errorf("highlighted edges = %v", state.HighlightedEdges())
	}
}

func TestSelectCommandText(t *testing.T) {
	isolate(t)
	out, err := execute(t, "select", "Fate", writeTestDataset(t))
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	for _, want := range []string{"Fate", "2 design elements", "Core Resolution", "d6 pool", "Genre Scope"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderDetails(t *testing.T) {
	tests := []struct {
		name    string
		details highlight.Details
		want    []string
	}{
		{
			name:    "placeholder",
			details: highlight.Placeholder(),
			want:    []string{"Select a node"},
		},
		{
			name: "tag",
			details: highlight.Details{
				Kind: highlight.DetailsTag, Title: "d6 pool", Summary: "shared",
				CategoryTitle: "Core Resolution", Systems: []string{"Blades", "Fate"},
			},
			want: []string{"d6 pool", "Core Resolution", "Systems", "Blades", "Fate"},
		},
		{
			name:    "unknown",
			details: highlight.Details{Kind: highlight.DetailsUnknown, Title: "Nope", Summary: "missing"},
			want:    []string{"Nope", "category:value"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := renderDetails(tt.details)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("renderDetails missing %q:\n%s", w, got)
				}
			}
		})
	}
}

func TestConfigCommands(t *testing.T) {
	isolate(t)

	out, err := execute(t, "config", "path")
	if err != nil {
		t.Fatalf("config path: %v", err)
	}
	if strings.TrimSpace(out) != config.Path() {
		t.Errorf("config path = %q, want %q", out, config.Path())
	}

	if _, err := execute(t, "config", "init"); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if _, err := os.Stat(config.Path()); err != nil {
		t.Errorf("config file not created: %v", err)
	}
}

func TestInvalidConfigFails(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[cache]\nbackend = \"tape\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := execute(t, "--config", path, "cache", "path"); !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want INVALID_INPUT", err)
	}
}

func TestCacheCommands(t *testing.T) {
	isolate(t)

	out, err := execute(t, "cache", "path")
	if err != nil {
		t.Fatalf("cache path: %v", err)
	}
	dir, _ := cacheDir()
	if strings.TrimSpace(out) != dir {
		t.Errorf("cache path = %q, want %q", out, dir)
	}

	// Populate the cache, then clear it.
	if _, err := execute(t, "build", writeTestDataset(t), "-f", "json", "-o", filepath.Join(t.TempDir(), "m")); err != nil {
		t.Fatalf("build: %v", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) == 0 {
		t.Fatal("build should populate the cache")
	}

	if _, err := execute(t, "cache", "clear"); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	entries, _ = os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("cache dir still has %d entries", len(entries))
	}
}

func TestCompletionCommand(t *testing.T) {
	isolate(t)
	out, err := execute(t, "completion", "bash")
	if err != nil {
		t.Fatalf("completion: %v", err)
	}
	if !strings.Contains(out, "rpgmap") {
		t.Error("bash completion should mention the program name")
	}
}

func TestBrowseAddr(t *testing.T) {
	tests := map[string]string{
		":8080":          "localhost:8080",
		"127.0.0.1:9000": "127.0.0.1:9000",
	}
	for in, want := range tests {
		if got := browseAddr(in); got != want {
			t.Errorf("browseAddr(%q) = %q, want %q", in, got, want)
		}
	}
}
