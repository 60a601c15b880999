package espn

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/bytedance/sonic"

	"github.com/omarshaarawi/fantasyfeed/internal/models"
)

type API struct {
	client *Client
}

func NewAPI(client *Client) *API {
	return &API{client: client}
}

func (a *API) leagueEndpoint(leagueID int64) string {
	return fmt.Sprintf("/seasons/%d/segments/0/leagues/%d", a.client.Config.Year, leagueID)
}

func (a *API) GetLeagueMetadata(ctx context.Context, leagueID int64) (*models.LeagueMetadata, error) {
	var espnResponse models.LeagueResponse
	params := map[string]string{
		"view": "mSettings",
	}

	if err := a.client.Get(ctx, a.leagueEndpoint(leagueID), params, nil, &espnResponse); err != nil {
		return nil, fmt.Errorf("fetching league metadata: %w", err)
	}

	metadata := &models.LeagueMetadata{
		LeagueID:             espnResponse.ID,
		Name:                 espnResponse.Settings.Name,
		CurrentWeek:          espnResponse.Status.CurrentMatchupPeriod,
		CurrentScoringPeriod: espnResponse.ScoringPeriodID,
		SeasonID:             espnResponse.SeasonID,
		FirstWeek:            espnResponse.Status.FirstScoringPeriod,
		LastWeek:             espnResponse.Status.FinalScoringPeriod,
		IsActive:             espnResponse.Status.IsActive,
		LastUpdated:          time.Now(),
	}

	return metadata, nil
}

func (a *API) GetTeams(ctx context.Context, leagueID int64) ([]models.Team, error) {
	var leagueResponse models.LeagueResponse
	params := map[string]string{
		"view": "mTeam",
	}

	if err := a.client.Get(ctx, a.leagueEndpoint(leagueID), params, nil, &leagueResponse); err != nil {
		return nil, fmt.Errorf("fetching teams: %w", err)
	}

	return leagueResponse.Teams, nil
}

// GetBoxScores returns the schedule entries of one matchup period with both
// rosters populated for the matching scoring period.
func (a *API) GetBoxScores(ctx context.Context, leagueID int64, week int) ([]models.MatchupScore, error) {
	var scoreboardResponse models.ScoreboardResponse

	params := map[string]string{
		"view":            "mMatchupScore,mBoxscore",
		"scoringPeriodId": fmt.Sprintf("%d", week),
	}

	filters := map[string]interface{}{
		"schedule": map[string]interface{}{
			"filterMatchupPeriodIds": map[string]interface{}{
				"value": []int{week},
			},
		},
	}

	filtersJSON, err := sonic.Marshal(filters)
	if err != nil {
		return nil, fmt.Errorf("error marshalling filters: %w", err)
	}

	headers := map[string]string{
		"x-fantasy-filter": string(filtersJSON),
	}

	if err := a.client.Get(ctx, a.leagueEndpoint(leagueID), params, headers, &scoreboardResponse); err != nil {
		return nil, fmt.Errorf("fetching box scores: %w", err)
	}

	matchups := make([]models.MatchupScore, 0, len(scoreboardResponse.Schedule))
	for _, match := range scoreboardResponse.Schedule {
		if match.MatchupPeriodID != 0 && match.MatchupPeriodID != week {
			continue
		}
		matchups = append(matchups, match)
	}
	return matchups, nil
}

func (a *API) GetProSchedule(ctx context.Context) ([]models.ProTeamInfo, error) {
	var scheduleResponse models.ProScheduleResponse

	endpoint := fmt.Sprintf("/seasons/%d", a.client.Config.Year)
	params := map[string]string{
		"view": "proTeamSchedules_wl",
	}

	if err := a.client.Get(ctx, endpoint, params, nil, &scheduleResponse); err != nil {
		return nil, fmt.Errorf("fetching pro schedule: %w", err)
	}

	return scheduleResponse.Settings.ProTeams, nil
}

// TeamScore prefers the live total while games are running.
func TeamScore(teamScore models.TeamScore) float64 {
	score := teamScore.TotalPointsLive
	if score == 0 {
		score = teamScore.TotalPoints
	}
	return math.Round(score*100) / 100
}

// PlayerPoints returns actual and projected points for one scoring period.
func PlayerPoints(player models.Player, week int) (actual, projected float64) {
	for _, stat := range player.Stats {
		if stat.ScoringPeriodID != week {
			continue
		}
		switch stat.StatSourceID {
		case 0:
			actual = stat.AppliedTotal
		case 1:
			projected = stat.AppliedTotal
		}
	}
	return actual, projected
}

// SeasonPoints is the season-to-date actual total, stored under scoring
// period 0.
func SeasonPoints(player models.Player) float64 {
	for _, stat := range player.Stats {
		if stat.ScoringPeriodID == 0 && stat.StatSourceID == 0 {
			return stat.AppliedTotal
		}
	}
	return 0
}
