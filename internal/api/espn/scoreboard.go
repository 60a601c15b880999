package espn

import (
	"context"
	"fmt"

	"github.com/omarshaarawi/fantasyfeed/internal/models"
)

const regularSeason = 2

// GetNFLScoreboard returns the live state of every NFL game in a week.
func (a *API) GetNFLScoreboard(ctx context.Context, week int) ([]models.NFLEvent, error) {
	var scoreboard models.NFLScoreboardResponse
	params := map[string]string{
		"seasontype": fmt.Sprintf("%d", regularSeason),
		"week":       fmt.Sprintf("%d", week),
		"dates":      fmt.Sprintf("%d", a.client.Config.Year),
	}

	if err := a.client.GetScoreboard(ctx, "/scoreboard", params, &scoreboard); err != nil {
		return nil, fmt.Errorf("fetching nfl scoreboard: %w", err)
	}

	return scoreboard.Events, nil
}
