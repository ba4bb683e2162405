package catalog

import (
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"
)

// Tags is an ordered list of tag values within one category.
//
// Decoding is lenient: null, scalars and objects decode as an empty list, and
// blank or non-string elements are dropped. A malformed list never fails the
// whole dataset.
type Tags []string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Tags) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*t = nil
	items, ok := raw.([]any)
	if !ok {
		return nil
	}
	for _, item := range items {
		if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
			*t = append(*t, s)
		}
	}
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler. Unquoted scalars such as 2d6 or
// 100 are kept as their literal text.
func (t *Tags) UnmarshalYAML(value *yaml.Node) error {
	*t = nil
	if value.Kind != yaml.SequenceNode {
		return nil
	}
	for _, n := range value.Content {
		if n.Kind != yaml.ScalarNode || n.Tag == "!!null" {
			continue
		}
		if strings.TrimSpace(n.Value) != "" {
			*t = append(*t, n.Value)
		}
	}
	return nil
}

// Record describes one cataloged game system. System is the unique name; each
// category holds an optional ordered tag list.
type Record struct {
	System               string `json:"system" yaml:"system"`
	CoreResolution       Tags   `json:"core_resolution,omitempty" yaml:"core_resolution,omitempty"`
	NarrativeAuthority   Tags   `json:"narrative_authority,omitempty" yaml:"narrative_authority,omitempty"`
	GameStructure        Tags   `json:"game_structure,omitempty" yaml:"game_structure,omitempty"`
	PlayerFocus          Tags   `json:"player_focus,omitempty" yaml:"player_focus,omitempty"`
	MechanicalPhilosophy Tags   `json:"mechanical_philosophy,omitempty" yaml:"mechanical_philosophy,omitempty"`
	CharacterMechanics   Tags   `json:"character_mechanics,omitempty" yaml:"character_mechanics,omitempty"`
	DicePhilosophy       Tags   `json:"dice_philosophy,omitempty" yaml:"dice_philosophy,omitempty"`
	TemporalScale        Tags   `json:"temporal_scale,omitempty" yaml:"temporal_scale,omitempty"`
	ResolutionFocus      Tags   `json:"resolution_focus,omitempty" yaml:"resolution_focus,omitempty"`
	GenreScope           Tags   `json:"genre_scope,omitempty" yaml:"genre_scope,omitempty"`
}

// Section is a non-empty category of a record.
type Section struct {
	Category Category
	Tags     []string
}

func (r *Record) field(c Category) *Tags {
	switch c {
	case CoreResolution:
		return &r.CoreResolution
	case NarrativeAuthority:
		return &r.NarrativeAuthority
	case GameStructure:
		return &r.GameStructure
	case PlayerFocus:
		return &r.PlayerFocus
	case MechanicalPhilosophy:
		return &r.MechanicalPhilosophy
	case CharacterMechanics:
		return &r.CharacterMechanics
	case DicePhilosophy:
		return &r.DicePhilosophy
	case TemporalScale:
		return &r.TemporalScale
	case ResolutionFocus:
		return &r.ResolutionFocus
	case GenreScope:
		return &r.GenreScope
	}
	return nil
}

// Tags returns the tag list for category c. Missing and unknown categories
// yield an empty list.
func (r Record) Tags(c Category) []string {
	if f := r.field(c); f != nil {
		return *f
	}
	return nil
}

// SetTags replaces the tag list for category c. Unknown categories are ignored.
func (r *Record) SetTags(c Category, tags []string) {
	if f := r.field(c); f != nil {
		*f = append(Tags(nil), tags...)
	}
}

// Sections returns the record's non-empty categories in canonical order.
func (r Record) Sections() []Section {
	var out []Section
	for _, c := range categories {
		if tags := r.Tags(c); len(tags) > 0 {
			out = append(out, Section{Category: c, Tags: tags})
		}
	}
	return out
}

// TagCount returns the total number of tag values across all categories.
func (r Record) TagCount() int {
	n := 0
	for _, c := range categories {
		n += len(r.Tags(c))
	}
	return n
}
