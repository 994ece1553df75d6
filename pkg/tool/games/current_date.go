package games

import (
	"context"
	"time"

	"github.com/MJKeo/game-nerd-bot/pkg/tool"
)

// NewCurrentDate returns the tool that reports today's date. The model uses
// it to resolve relative date ranges ("games from last year") into the
// absolute bounds the filter tool expects.
func NewCurrentDate() tool.Tool {
	return tool.NewFunc(
		"get_current_date",
		"Get the current date in the format YYYY-MM-DD. Use this when you need to calculate date ranges for filtering games by relative dates (e.g., 'games from last year', 'games released in the past 6 months').",
		func(ctx context.Context, input map[string]any) (any, error) {
			return "Today's date is " + time.Now().Format("2006-01-02"), nil
		},
	)
}
