package gamedata

import (
	"fmt"
	"strings"
)

// Raw RAWG payload shapes. Platform, store and ESRB data arrive nested one
// level deeper than we want to expose.

type rawNamed struct {
	Name string `json:"name"`
}

type rawPlatformEntry struct {
	Platform rawNamed `json:"platform"`
}

type rawStoreEntry struct {
	Store rawNamed `json:"store"`
}

type rawESRB struct {
	Name   string `json:"name"`
	NameEn string `json:"name_en"`
}

type gamePayload struct {
	ID          int                `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Playtime    int                `json:"playtime"`
	Platforms   []rawPlatformEntry `json:"platforms"`
	Stores      []rawStoreEntry    `json:"stores"`
	Genres      []rawNamed         `json:"genres"`
	Released    string             `json:"released"`
	Metacritic  *int               `json:"metacritic"`
	ESRBRating  *rawESRB           `json:"esrb_rating"`
}

type searchPayload struct {
	Count   int           `json:"count"`
	Results []gamePayload `json:"results"`
}

// GameRecord is the normalized subset of RAWG metadata exposed to tools.
// Fetched fresh per request; never cached or persisted.
type GameRecord struct {
	Name            string   `json:"name"`
	ID              int      `json:"game_id"`
	AveragePlaytime int      `json:"average_playtime"`
	Platforms       []string `json:"platforms"`
	Stores          []string `json:"stores"`
	Genres          []string `json:"genres"`
	Released        string   `json:"released"`
	MetacriticScore *int     `json:"metacritic_score"`
	ESRBRating      string   `json:"esrb_rating,omitempty"`
}

// GameDescription is the detail-by-id response: just the identity fields and
// the long-form description text.
type GameDescription struct {
	Name        string `json:"name"`
	ID          int    `json:"game_id"`
	Description string `json:"description"`
}

// newGameRecord flattens a RAWG payload into a GameRecord, coercing missing
// or null nested fields to safe defaults.
func newGameRecord(p gamePayload) GameRecord {
	rec := GameRecord{
		Name:            p.Name,
		ID:              p.ID,
		AveragePlaytime: p.Playtime,
		Released:        p.Released,
		MetacriticScore: p.Metacritic,
	}

	for _, entry := range p.Platforms {
		if entry.Platform.Name != "" {
			rec.Platforms = append(rec.Platforms, entry.Platform.Name)
		}
	}
	for _, entry := range p.Stores {
		if entry.Store.Name != "" {
			rec.Stores = append(rec.Stores, entry.Store.Name)
		}
	}
	for _, genre := range p.Genres {
		if genre.Name != "" {
			rec.Genres = append(rec.Genres, genre.Name)
		}
	}
	if p.ESRBRating != nil {
		// RAWG localizes the rating name; prefer the English form.
		rec.ESRBRating = p.ESRBRating.NameEn
		if rec.ESRBRating == "" {
			rec.ESRBRating = p.ESRBRating.Name
		}
	}
	return rec
}

func newGameRecords(payloads []gamePayload) []GameRecord {
	records := make([]GameRecord, 0, len(payloads))
	for _, p := range payloads {
		records = append(records, newGameRecord(p))
	}
	return records
}

// String renders the record in the labeled multi-line form shown to users.
func (g GameRecord) String() string {
	metacritic := "N/A"
	if g.MetacriticScore != nil {
		metacritic = fmt.Sprintf("%d", *g.MetacriticScore)
	}
	return fmt.Sprintf(
		"Name: %s\nID: %d\nAverage Playtime (hours): %d\nPlatforms: %s\nStores: %s\nGenres: %s\nRelease Date: %s\nMetacritic Rating: %s/100\nMaturity Rating: %s",
		g.Name,
		g.ID,
		g.AveragePlaytime,
		joinOrNA(g.Platforms),
		joinOrNA(g.Stores),
		joinOrNA(g.Genres),
		orNA(g.Released),
		metacritic,
		orNA(g.ESRBRating),
	)
}

func (d GameDescription) String() string {
	return fmt.Sprintf("Name: %s\nID: %d\nDescription: %q", d.Name, d.ID, d.Description)
}

func joinOrNA(items []string) string {
	if len(items) == 0 {
		return "N/A"
	}
	return strings.Join(items, ", ")
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
