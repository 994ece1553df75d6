package games

import (
	"context"
	"fmt"

	"github.com/MJKeo/game-nerd-bot/pkg/gamedata"
	"github.com/MJKeo/game-nerd-bot/pkg/tool"
)

// maxNameMatches bounds how many search hits the name lookup hands back to
// the model; the first results are the best title matches.
const maxNameMatches = 3

type findGameArgs struct {
	GameName string `json:"game_name" description:"Exact or partial game title to search for. The game returned will be the one whose name/title best matches this value."`
}

// NewFindGame returns the tool that searches the catalog by title and
// returns the closest matches with their metadata.
func NewFindGame(client *gamedata.Client) tool.Tool {
	return tool.NewStruct(
		"find_game_by_name",
		"Search for a specific game by name and fetch its metadata (title, release date, rating, platforms, etc.). Use this when the user asks about a particular game by name and you need current data about it.",
		func(ctx context.Context, args findGameArgs) (any, error) {
			records, err := client.SearchByName(ctx, args.GameName)
			if err != nil {
				return nil, err
			}
			// No match is a failure the model must react to, not an empty
			// success it might paper over.
			if len(records) == 0 {
				return nil, fmt.Errorf("no games found matching %q", args.GameName)
			}
			if len(records) > maxNameMatches {
				records = records[:maxNameMatches]
			}
			return records, nil
		},
	)
}
