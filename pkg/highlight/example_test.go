package highlight_test

import (
	"fmt"

	"github.com/matzehuels/rpgmap/pkg/catalog"
	"github.com/matzehuels/rpgmap/pkg/graph"
	"github.com/matzehuels/rpgmap/pkg/highlight"
)

func ExampleSelect() {
	g, _ := graph.Build([]catalog.Record{
		{System: "Fate", CoreResolution: catalog.Tags{"d6 pool"}, GenreScope: catalog.Tags{"generic"}},
		{System: "Blades", CoreResolution: catalog.Tags{"d6 pool"}},
	})

	s := highlight.Select(g, "core_resolution:d6 pool")
	fmt.Println("Highlighted:", s.Highlighted())
	fmt.Println("Dimmed:", s.Dimmed())
	fmt.Println(s.Details.Summary)
	fmt.Println("Systems:", s.Details.Systems)
	// Output:
	// Highlighted: [core_resolution:d6 pool]
	// Dimmed: [genre_scope:generic]
	// Core Resolution tag shared by 2 systems.
	// Systems: [Blades Fate]
}

func ExampleNext() {
	active := ""
	active = highlight.Next(active, "Fate")
	fmt.Printf("%q\n", active)
	active = highlight.Next(active, "Fate")
	fmt.Printf("%q\n", active)
	// Output:
	// "Fate"
	// ""
}
