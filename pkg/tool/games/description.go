package games

import (
	"context"

	"github.com/MJKeo/game-nerd-bot/pkg/gamedata"
	"github.com/MJKeo/game-nerd-bot/pkg/tool"
)

type gameDescriptionArgs struct {
	GameID int `json:"game_id" description:"The RAWG internal ID of the game, as returned by the search tools."`
}

// NewGameDescription returns the detail-by-id tool. Unknown ids fail with
// gamedata.NotFoundError; a partially populated record is never returned.
func NewGameDescription(client *gamedata.Client) tool.Tool {
	return tool.NewStruct(
		"get_game_description",
		"Fetch the long-form description of a game by its ID. Use this after a search when the user wants to know what a specific game is about.",
		func(ctx context.Context, args gameDescriptionArgs) (any, error) {
			return client.Description(ctx, args.GameID)
		},
	)
}
