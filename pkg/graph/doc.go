// Package graph builds the bipartite system/tag graph rpgmap renders.
//
// # Model
//
// Every catalog record becomes a system node. Every distinct (category, value)
// pair across all records becomes exactly one tag node with ID
// "<category>:<value>":
//
//	Fate ──core_resolution── core_resolution:d6 pool ──── Blades
//	  └────genre_scope────── genre_scope:generic
//
// Edges always run from a system to a tag and carry the tag's category. The
// neighbor index records both directions, so the neighbors of a tag are the
// systems that share it and the neighbors of a system are its tags.
//
// # Building
//
//	g, err := graph.Build(records)
//	g.Neighbors("core_resolution:d6 pool") // [Blades Fate]
//
// Construction is a single deterministic pass: node and edge order follow the
// record order and the canonical category order. The resulting [Graph] is
// immutable; load new records and call [Build] again to change it.
//
// # Serialization
//
// Graphs serialize to a node-link JSON document that also carries the neighbor
// index and the source records:
//
//	{
//	  "nodes": [{"id": "Fate", "label": "Fate", "type": "system"}, ...],
//	  "edges": [{"source": "Fate", "target": "genre_scope:generic", "category": "genre_scope"}],
//	  "neighbors": {"Fate": ["genre_scope:generic"], ...},
//	  "records": [{"system": "Fate", "genre_scope": ["generic"]}]
//	}
//
// [ReadGraph] rebuilds from the records rather than trusting the derived
// arrays.
//
// # Concurrency
//
// A built Graph is safe for concurrent reads.
package graph
