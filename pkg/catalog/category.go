package catalog

// Category is one of the fixed descriptive axes a system is tagged along.
type Category string

// The ten categories, listed in their canonical order.
const (
	CoreResolution       Category = "core_resolution"
	NarrativeAuthority   Category = "narrative_authority"
	GameStructure        Category = "game_structure"
	PlayerFocus          Category = "player_focus"
	MechanicalPhilosophy Category = "mechanical_philosophy"
	CharacterMechanics   Category = "character_mechanics"
	DicePhilosophy       Category = "dice_philosophy"
	TemporalScale        Category = "temporal_scale"
	ResolutionFocus      Category = "resolution_focus"
	GenreScope           Category = "genre_scope"
)

var categories = []Category{
	CoreResolution,
	NarrativeAuthority,
	GameStructure,
	PlayerFocus,
	MechanicalPhilosophy,
	CharacterMechanics,
	DicePhilosophy,
	TemporalScale,
	ResolutionFocus,
	GenreScope,
}

var categoryTitles = map[Category]string{
	CoreResolution:       "Core Resolution",
	NarrativeAuthority:   "Narrative Authority",
	GameStructure:        "Game Structure",
	PlayerFocus:          "Player Focus",
	MechanicalPhilosophy: "Mechanical Philosophy",
	CharacterMechanics:   "Character Mechanics",
	DicePhilosophy:       "Dice Philosophy",
	TemporalScale:        "Temporal Scale",
	ResolutionFocus:      "Resolution Focus",
	GenreScope:           "Genre Scope",
}

// Categories returns the categories in canonical order.
// The returned slice is a copy and may be modified by the caller.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// Title returns the human-readable name of the category, or the raw key for
// unknown categories.
func (c Category) Title() string {
	if t, ok := categoryTitles[c]; ok {
		return t
	}
	return string(c)
}

// Index returns the position of c in canonical order, or -1 if c is unknown.
func (c Category) Index() int {
	for i, k := range categories {
		if k == c {
			return i
		}
	}
	return -1
}

// Valid reports whether c is one of the fixed categories.
func (c Category) Valid() bool { return c.Index() >= 0 }

// ParseCategory converts a key such as "dice_philosophy" into a Category.
func ParseCategory(s string) (Category, bool) {
	c := Category(s)
	return c, c.Valid()
}
