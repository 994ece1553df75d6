package games

import (
	"context"

	"github.com/MJKeo/game-nerd-bot/pkg/gamedata"
	"github.com/MJKeo/game-nerd-bot/pkg/tool"
)

type findGamesArgs struct {
	NumResults            int      `json:"num_results,omitempty"`
	Title                 string   `json:"title,omitempty"`
	ParentPlatforms       []string `json:"parent_platforms,omitempty"`
	Platforms             []string `json:"platforms,omitempty"`
	Stores                []string `json:"stores,omitempty"`
	Developers            []string `json:"developers,omitempty"`
	Publishers            []string `json:"publishers,omitempty"`
	Genres                []string `json:"genres,omitempty"`
	Tags                  []string `json:"tags,omitempty"`
	ReleaseDateLowerBound string   `json:"release_date_lower_bound,omitempty"`
	ReleaseDateUpperBound string   `json:"release_date_upper_bound,omitempty"`
	MetacriticLowerBound  *int     `json:"metacritic_lower_bound,omitempty"`
	MetacriticUpperBound  *int     `json:"metacritic_upper_bound,omitempty"`
	Ordering              string   `json:"ordering,omitempty"`
}

// NewFindGames returns the multi-filter search tool. Filters the model does
// not supply are omitted from the outbound request entirely. The generated
// schema cannot express the slug and ordering enums, so it is overridden
// with a hand-written one.
func NewFindGames(client *gamedata.Client) tool.Tool {
	return tool.NewStruct(
		"find_multiple_games",
		"Search for multiple games using various filters (platform, genre, tags, ratings, release dates, etc.). Use this when the user explicitly asks for game recommendations or lists matching specific criteria (e.g., 'best PS4 games', 'top-rated RPGs', 'indie games from 2023').",
		func(ctx context.Context, args findGamesArgs) (any, error) {
			return client.FindByFilters(ctx, gamedata.Filters{
				PageSize:        args.NumResults,
				Title:           args.Title,
				ParentPlatforms: args.ParentPlatforms,
				Platforms:       args.Platforms,
				Stores:          args.Stores,
				Developers:      args.Developers,
				Publishers:      args.Publishers,
				Genres:          args.Genres,
				Tags:            args.Tags,
				ReleasedAfter:   args.ReleaseDateLowerBound,
				ReleasedBefore:  args.ReleaseDateUpperBound,
				MetacriticMin:   args.MetacriticLowerBound,
				MetacriticMax:   args.MetacriticUpperBound,
				Ordering:        args.Ordering,
			})
		},
	).WithSchema(findGamesSchema())
}

func findGamesSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"num_results": map[string]any{
				"type":        "integer",
				"description": "Maximum number of games to return. Default 5.",
				"minimum":     1,
				"maximum":     25,
			},
			"title": map[string]any{
				"type":        "string",
				"description": "Filters results to games with a title that contain or closely matches this value.",
			},
			"parent_platforms": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string", "enum": gamedata.ParentPlatformSlugs()},
				"description": "Filters results to games that can be played on at least one of the provided parent platforms. ONLY use for broad console families (e.g. 'any PlayStation console'); prefer 'platforms' for specific consoles.",
			},
			"platforms": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string", "enum": gamedata.PlatformSlugs()},
				"description": "Filters results to games that can be played on at least one of the provided platforms.",
			},
			"stores": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string", "enum": gamedata.StoreSlugs()},
				"description": "Filters results to games that are available for purchase from at least one of the provided stores.",
			},
			"developers": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Filters results to games that were developed by at least one of the provided developers (RAWG slugs, e.g. 'fromsoftware').",
			},
			"publishers": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Filters results to games that were published by at least one of the provided publishers (RAWG slugs, e.g. 'nintendo').",
			},
			"genres": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string", "enum": gamedata.GenreSlugs},
				"description": "Filters results to games that fall into at least one of the provided genres.",
			},
			"tags": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Filters results to games that contain at least one of the provided tags (RAWG slugs, e.g. 'co-op', 'atmospheric').",
			},
			"release_date_lower_bound": map[string]any{
				"type":        "string",
				"format":      "date",
				"description": "Filters results to games that were released on or AFTER this date. Only provide if you need games explicitly released AFTER a certain date.",
			},
			"release_date_upper_bound": map[string]any{
				"type":        "string",
				"format":      "date",
				"description": "Filters results to games that were released on or BEFORE this date. Only provide if you need games explicitly released BEFORE a certain date.",
			},
			"metacritic_lower_bound": map[string]any{
				"type":        "integer",
				"description": "Filters results to games with a metacritic score of AT LEAST this value.",
				"minimum":     0,
				"maximum":     100,
			},
			"metacritic_upper_bound": map[string]any{
				"type":        "integer",
				"description": "Filters results to games with a metacritic score of AT MOST this value.",
				"minimum":     0,
				"maximum":     100,
			},
			"ordering": map[string]any{
				"type":        "string",
				"enum":        gamedata.Orderings,
				"description": "What attribute to sort the resulting list of games by. Values prefixed with '-' are sorted in descending order. Otherwise it is ascending order.",
			},
		},
	}
}
