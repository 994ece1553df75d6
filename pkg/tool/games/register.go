package games

import (
	"github.com/MJKeo/game-nerd-bot/pkg/gamedata"
	"github.com/MJKeo/game-nerd-bot/pkg/tool"
)

// RegisterAll registers every game tool against the provided registry.
// All lookups go through the shared RAWG client.
func RegisterAll(r *tool.Registry, client *gamedata.Client) {
	r.Register(NewCurrentDate())
	r.Register(NewFindGame(client))
	r.Register(NewGameDescription(client))
	r.Register(NewFindGames(client))
}
