// Package catalog defines the system records rpgmap visualizes and loads them
// from JSON or YAML datasets.
//
// # Dataset Format
//
// A dataset is an array of records. Each record names a system and lists tag
// values under any of the ten fixed categories:
//
//	[
//	  {
//	    "system": "Fate",
//	    "core_resolution": ["d6 pool"],
//	    "genre_scope": ["generic"]
//	  },
//	  {"system": "Blades in the Dark", "core_resolution": ["d6 pool"]}
//	]
//
// Any category may be omitted, null, or malformed; such categories are read
// as empty. YAML datasets use the same keys.
//
// # Loading
//
// [Load] accepts a local path or an http(s) URL, decodes the dataset and runs
// [Validate]. A failed load is returned with code DATASET_UNAVAILABLE and is
// not retried:
//
//	records, err := catalog.Load(ctx, "rpg_systems.json")
//
// # Duplicate Systems
//
// System names are primary keys. [Validate] rejects datasets that repeat a
// name instead of letting a later record shadow an earlier one.
package catalog
