package gamedata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewGameRecord(t *testing.T) {
	score := 88
	payload := gamePayload{
		ID:       3328,
		Name:     "The Witcher 3: Wild Hunt",
		Playtime: 45,
		Platforms: []rawPlatformEntry{
			{Platform: rawNamed{Name: "PC"}},
			{Platform: rawNamed{}}, // nameless entries are dropped
			{Platform: rawNamed{Name: "PlayStation 5"}},
		},
		Stores:     []rawStoreEntry{{Store: rawNamed{Name: "GOG"}}},
		Genres:     []rawNamed{{Name: "RPG"}, {Name: "Action"}},
		Released:   "2015-05-18",
		Metacritic: &score,
		ESRBRating: &rawESRB{Name: "Mature", NameEn: "Mature 17+"},
	}

	rec := newGameRecord(payload)
	assert.Equal(t, "The Witcher 3: Wild Hunt", rec.Name)
	assert.Equal(t, 3328, rec.ID)
	assert.Equal(t, 45, rec.AveragePlaytime)
	assert.Equal(t, []string{"PC", "PlayStation 5"}, rec.Platforms)
	assert.Equal(t, []string{"GOG"}, rec.Stores)
	assert.Equal(t, []string{"RPG", "Action"}, rec.Genres)
	assert.Equal(t, "Mature 17+", rec.ESRBRating, "English rating name wins")
}

func TestNewGameRecord_SparsePayload(t *testing.T) {
	rec := newGameRecord(gamePayload{ID: 1, Name: "Mystery Game"})
	assert.Nil(t, rec.MetacriticScore)
	assert.Empty(t, rec.Platforms)
	assert.Empty(t, rec.ESRBRating)
}

func TestNewGameRecord_ESRBFallback(t *testing.T) {
	rec := newGameRecord(gamePayload{
		ID:         1,
		Name:       "Localized",
		ESRBRating: &rawESRB{Name: "Mature"},
	})
	assert.Equal(t, "Mature", rec.ESRBRating)
}

func TestGameRecordString(t *testing.T) {
	score := 94
	rec := GameRecord{
		Name:            "Hades",
		ID:              274755,
		AveragePlaytime: 22,
		Platforms:       []string{"PC", "Nintendo Switch"},
		Genres:          []string{"Roguelike"},
		Released:        "2020-09-17",
		MetacriticScore: &score,
	}

	got := rec.String()
	assert.Contains(t, got, "Name: Hades")
	assert.Contains(t, got, "Platforms: PC, Nintendo Switch")
	assert.Contains(t, got, "Metacritic Rating: 94/100")
	assert.Contains(t, got, "Stores: N/A")
	assert.Contains(t, got, "Maturity Rating: N/A")
}

func TestGameRecordString_MissingEverything(t *testing.T) {
	got := GameRecord{Name: "Bare", ID: 7}.String()
	assert.Contains(t, got, "Metacritic Rating: N/A/100")
	assert.Contains(t, got, "Release Date: N/A")
}
