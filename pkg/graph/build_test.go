package graph

import (
	"fmt"
	"math/rand"
	"reflect"
	"testing"

	"github.com/matzehuels/rpgmap/pkg/catalog"
	errs "github.com/matzehuels/rpgmap/pkg/errors"
)

func record(name string, tags map[catalog.Category][]string) catalog.Record {
	r := catalog.Record{System: name}
	for c, values := range tags {
		r.SetTags(c, values)
	}
	return r
}

func fateAndBlades() []catalog.Record {
	return []catalog.Record{
		record("Fate", map[catalog.Category][]string{
			catalog.CoreResolution: {"d6 pool"},
			catalog.GenreScope:     {"generic"},
		}),
		record("Blades", map[catalog.Category][]string{
			catalog.CoreResolution: {"d6 pool"},
		}),
	}
}

func TestBuildSharedTag(t *testing.T) {
	g, err := Build(fateAndBlades())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	tagID := TagID(catalog.CoreResolution, "d6 pool")
	if tagID != "core_resolution:d6 pool" {
		t.Fatalf("TagID = %q", tagID)
	}

	count := 0
	for _, n := range g.Nodes() {
		if n.ID == tagID {
			count++
			if !n.IsTag() || n.Label != "d6 pool" || n.Category != catalog.CoreResolution {
				t.Errorf("unexpected tag node: %+v", n)
			}
		}
	}
	if count != 1 {
		t.Errorf("found %d nodes for %s, want 1", count, tagID)
	}

	if got, want := g.Neighbors(tagID), []string{"Blades", "Fate"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Neighbors(%s) = %v, want %v", tagID, got, want)
	}
	if got, want := g.Neighbors("Fate"), []string{"core_resolution:d6 pool", "genre_scope:generic"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Neighbors(Fate) = %v, want %v", got, want)
	}

	if g.NodeCount() != 4 {
		t.Errorf("NodeCount = %d, want 4", g.NodeCount())
	}
	if g.EdgeCount() != 3 {
		t.Errorf("EdgeCount = %d, want 3", g.EdgeCount())
	}
}

func TestBuildOrdering(t *testing.T) {
	records := []catalog.Record{
		record("Zeta", map[catalog.Category][]string{
			catalog.GenreScope:     {"sci-fi", "horror"},
			catalog.CoreResolution: {"d20"},
		}),
		record("Alpha", map[catalog.Category][]string{
			catalog.CoreResolution: {"d20"},
		}),
	}

	g, err := Build(records)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	var ids []string
	for _, n := range g.Nodes() {
		ids = append(ids, n.ID)
	}
	want := []string{"Zeta", "core_resolution:d20", "genre_scope:sci-fi", "genre_scope:horror", "Alpha"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("node order = %v, want %v", ids, want)
	}

	edges := g.Edges()
	if len(edges) != 4 {
		t.Fatalf("got %d edges, want 4", len(edges))
	}
	if edges[0] != (Edge{Source: "Zeta", Target: "core_resolution:d20", Category: catalog.CoreResolution}) {
		t.Errorf("first edge = %+v", edges[0])
	}
	if edges[3] != (Edge{Source: "Alpha", Target: "core_resolution:d20", Category: catalog.CoreResolution}) {
		t.Errorf("last edge = %+v", edges[3])
	}

	again, _ := Build(records)
	if !reflect.DeepEqual(g.Nodes(), again.Nodes()) || !reflect.DeepEqual(g.Edges(), again.Edges()) {
		t.Error("Build should be deterministic")
	}
}

func TestBuildEmptyAndMissingCategories(t *testing.T) {
	g, err := Build([]catalog.Record{
		{System: "Bare"},
		record("Blank", map[catalog.Category][]string{catalog.PlayerFocus: {"", "  "}}),
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if g.NodeCount() != 2 || g.EdgeCount() != 0 {
		t.Errorf("got %d nodes, %d edges; want 2, 0", g.NodeCount(), g.EdgeCount())
	}
	if g.Neighbors("Bare") != nil {
		t.Error("system without tags should have no neighbors")
	}

	empty, err := Build(nil)
	if err != nil || empty.NodeCount() != 0 {
		t.Errorf("Build(nil) = %d nodes, %v", empty.NodeCount(), err)
	}
}

func TestBuildRepeatedValueSingleEdge(t *testing.T) {
	g, err := Build([]catalog.Record{
		record("Fate", map[catalog.Category][]string{catalog.CoreResolution: {"d6 pool", "d6 pool"}}),
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount = %d, want 1", g.EdgeCount())
	}
}

func TestBuildSameValueDifferentCategories(t *testing.T) {
	g, err := Build([]catalog.Record{
		record("Fate", map[catalog.Category][]string{
			catalog.CoreResolution:  {"narrative"},
			catalog.ResolutionFocus: {"narrative"},
		}),
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(g.Tags()) != 2 {
		t.Errorf("got %d tags, want 2 (one per category)", len(g.Tags()))
	}
	if g.Degree("Fate") != 2 {
		t.Errorf("Degree(Fate) = %d, want 2", g.Degree("Fate"))
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name    string
		records []catalog.Record
		code    errs.Code
	}{
		{
			name:    "duplicate system",
			records: []catalog.Record{{System: "Fate"}, {System: "Fate"}},
			code:    errs.ErrCodeInvalidDataset,
		},
		{
			name:    "empty system",
			records: []catalog.Record{{System: ""}},
			code:    errs.ErrCodeInvalidDataset,
		},
		{
			name: "system named like a tag",
			records: []catalog.Record{
				record("Fate", map[catalog.Category][]string{catalog.GenreScope: {"generic"}}),
				{System: "genre_scope:generic"},
			},
			code: errs.ErrCodeIDCollision,
		},
		{
			name: "tag named like a system",
			records: []catalog.Record{
				{System: "genre_scope:generic"},
				record("Fate", map[catalog.Category][]string{catalog.GenreScope: {"generic"}}),
			},
			code: errs.ErrCodeIDCollision,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.records)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errs.Is(err, tt.code) {
				t.Errorf("code = %v, want %v (err: %v)", errs.GetCode(err), tt.code, err)
			}
		})
	}
}

func TestBuildInvariantsRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	values := []string{"a", "b", "c", "d", "e"}
	cats := catalog.Categories()

	for round := 0; round < 50; round++ {
		var records []catalog.Record
		for i := 0; i < 1+rng.Intn(8); i++ {
			tags := make(map[catalog.Category][]string)
			for j := 0; j < rng.Intn(6); j++ {
				c := cats[rng.Intn(len(cats))]
				tags[c] = append(tags[c], values[rng.Intn(len(values))])
			}
			records = append(records, record(fmt.Sprintf("sys-%d", i), tags))
		}

		g, err := Build(records)
		if err != nil {
			t.Fatalf("round %d: Build: %v", round, err)
		}

		seen := make(map[string]bool)
		for _, n := range g.Tags() {
			key := TagID(n.Category, n.Label)
			if seen[key] {
				t.Fatalf("round %d: duplicate tag node %s", round, key)
			}
			seen[key] = true
		}

		for _, n := range g.Nodes() {
			for _, m := range g.Neighbors(n.ID) {
				if !g.IsNeighbor(m, n.ID) {
					t.Fatalf("round %d: asymmetric neighbors %s -> %s", round, n.ID, m)
				}
			}
		}

		pairs := make(map[[2]string]bool)
		for _, e := range g.Edges() {
			key := [2]string{e.Source, e.Target}
			if pairs[key] {
				t.Fatalf("round %d: duplicate edge %v", round, key)
			}
			pairs[key] = true
		}
	}
}

func TestGraphAccessors(t *testing.T) {
	g, err := Build(fateAndBlades())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if n, ok := g.Node("Fate"); !ok || !n.IsSystem() {
		t.Errorf("Node(Fate) = %+v, %v", n, ok)
	}
	if _, ok := g.Node("nope"); ok {
		t.Error("Node(nope) should not exist")
	}
	if g.Has("nope") || !g.Has("Blades") {
		t.Error("Has returned unexpected results")
	}
	if r, ok := g.System("Fate"); !ok || r.Tags(catalog.GenreScope)[0] != "generic" {
		t.Errorf("System(Fate) = %+v, %v", r, ok)
	}
	if _, ok := g.System("core_resolution:d6 pool"); ok {
		t.Error("System should not return records for tag nodes")
	}
	if len(g.Systems()) != 2 || len(g.Tags()) != 2 {
		t.Errorf("Systems=%d Tags=%d, want 2 and 2", len(g.Systems()), len(g.Tags()))
	}

	stats := g.Stats()
	if stats.Systems != 2 || stats.Tags != 2 || stats.Edges != 3 {
		t.Errorf("Stats = %+v", stats)
	}
	if stats.PerCategory[catalog.CoreResolution] != 1 || stats.PerCategory[catalog.GenreScope] != 1 {
		t.Errorf("PerCategory = %v", stats.PerCategory)
	}

	nodes := g.Nodes()
	nodes[0].Label = "mutated"
	if n, _ := g.Node("Fate"); n.Label != "Fate" {
		t.Error("Nodes() should return a copy")
	}
}

func TestEdgeHelpers(t *testing.T) {
	e := Edge{Source: "Fate", Target: "genre_scope:generic"}
	if !e.Touches("Fate") || !e.Touches("genre_scope:generic") || e.Touches("Blades") {
		t.Error("Touches returned unexpected results")
	}
	if e.Other("Fate") != "genre_scope:generic" || e.Other("genre_scope:generic") != "Fate" {
		t.Error("Other returned unexpected results")
	}
}
