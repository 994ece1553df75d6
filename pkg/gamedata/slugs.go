package gamedata

import "sort"

// RAWG addresses platforms, parent platforms and stores by numeric id, while
// genres, tags, developers and publishers take slugs directly. The tables
// below cover the catalog entries the bot declares to the model; unknown
// slugs are dropped during translation rather than rejected.

var platformSlugToID = map[string]int{
	"pc":               4,
	"macos":            5,
	"linux":            6,
	"playstation5":     187,
	"playstation4":     18,
	"playstation3":     16,
	"playstation2":     15,
	"playstation1":     27,
	"ps-vita":          19,
	"psp":              17,
	"xbox-series-x":    186,
	"xbox-one":         1,
	"xbox360":          14,
	"xbox-old":         80,
	"nintendo-switch":  7,
	"nintendo-3ds":     8,
	"nintendo-ds":      9,
	"wii-u":            10,
	"wii":              11,
	"gamecube":         105,
	"nintendo-64":      83,
	"game-boy-advance": 24,
	"snes":             79,
	"nes":              49,
	"ios":              3,
	"android":          21,
	"dreamcast":        106,
	"genesis":          167,
}

var parentPlatformSlugToID = map[string]int{
	"pc":          1,
	"playstation": 2,
	"xbox":        3,
	"ios":         4,
	"mac":         5,
	"linux":       6,
	"nintendo":    7,
	"android":     8,
	"atari":       9,
	"sega":        11,
	"web":         14,
}

var storeSlugToID = map[string]int{
	"steam":             1,
	"xbox-store":        2,
	"playstation-store": 3,
	"apple-appstore":    4,
	"gog":               5,
	"nintendo":          6,
	"xbox360":           7,
	"google-play":       8,
	"itch":              9,
	"epic-games":        11,
}

// GenreSlugs is the RAWG genre catalog offered to the model.
var GenreSlugs = []string{
	"action", "adventure", "arcade", "board-games", "card", "casual",
	"educational", "family", "fighting", "indie", "massively-multiplayer",
	"platformer", "puzzle", "racing", "role-playing-games-rpg", "shooter",
	"simulation", "sports", "strategy",
}

// Orderings lists the sortable attributes; a "-" prefix sorts descending.
var Orderings = []string{
	"name", "-name", "released", "-released", "added", "-added",
	"created", "-created", "updated", "-updated", "rating", "-rating",
	"metacritic", "-metacritic",
}

// PlatformSlugs returns the known platform slugs in sorted order.
func PlatformSlugs() []string { return sortedKeys(platformSlugToID) }

// ParentPlatformSlugs returns the known parent platform slugs in sorted order.
func ParentPlatformSlugs() []string { return sortedKeys(parentPlatformSlugToID) }

// StoreSlugs returns the known store slugs in sorted order.
func StoreSlugs() []string { return sortedKeys(storeSlugToID) }

// PlatformIDs translates platform slugs into RAWG ids, excluding unknowns.
func PlatformIDs(slugs []string) []int { return translate(slugs, platformSlugToID) }

// ParentPlatformIDs translates parent platform slugs into RAWG ids.
func ParentPlatformIDs(slugs []string) []int { return translate(slugs, parentPlatformSlugToID) }

// StoreIDs translates store slugs into RAWG ids, excluding unknowns.
func StoreIDs(slugs []string) []int { return translate(slugs, storeSlugToID) }

// ValidOrdering reports whether the given ordering is one RAWG accepts.
func ValidOrdering(ordering string) bool {
	for _, o := range Orderings {
		if o == ordering {
			return true
		}
	}
	return false
}

func translate(slugs []string, table map[string]int) []int {
	ids := make([]int, 0, len(slugs))
	for _, slug := range slugs {
		if id, ok := table[slug]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

func sortedKeys(table map[string]int) []string {
	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
