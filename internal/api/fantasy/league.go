package fantasy

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/omarshaarawi/fantasyfeed/internal/api/espn"
	"github.com/omarshaarawi/fantasyfeed/internal/models"
)

// gameLength is how long after kickoff a game is assumed over when no live
// state is available.
const gameLength = 3 * time.Hour

type API struct {
	espnAPI *espn.API
	clock   clockwork.Clock

	mu       sync.RWMutex
	leagues  map[int64]map[int]models.TeamInfo
	schedule *proSchedule
}

func NewAPI(espnAPI *espn.API, clock clockwork.Clock) *API {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &API{
		espnAPI: espnAPI,
		clock:   clock,
		leagues: make(map[int64]map[int]models.TeamInfo),
	}
}

func (a *API) GetLeagueMetadata(ctx context.Context, leagueID int64) (*models.LeagueMetadata, error) {
	return a.espnAPI.GetLeagueMetadata(ctx, leagueID)
}

// Connect loads the league's teams and the season's pro schedule. It is
// repeated on every sync so team names and standings stay current.
func (a *API) Connect(ctx context.Context, leagueID int64) error {
	teams, err := a.espnAPI.GetTeams(ctx, leagueID)
	if err != nil {
		return err
	}

	proTeams, err := a.espnAPI.GetProSchedule(ctx)
	if err != nil {
		return err
	}

	infos := make(map[int]models.TeamInfo, len(teams))
	for _, team := range teams {
		infos[team.ID] = teamInfo(team)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.leagues[leagueID] = infos
	a.schedule = newProSchedule(proTeams)
	return nil
}

func (a *API) BoxScores(ctx context.Context, leagueID int64, week int) ([]models.BoxScore, error) {
	a.mu.RLock()
	teams, connected := a.leagues[leagueID]
	schedule := a.schedule
	a.mu.RUnlock()

	if !connected || schedule == nil {
		return nil, fmt.Errorf("league %d is not connected", leagueID)
	}

	matchups, err := a.espnAPI.GetBoxScores(ctx, leagueID, week)
	if err != nil {
		return nil, err
	}

	now := a.clock.Now()
	var live map[string]models.NFLEvent
	if schedule.anyRunning(week, now) {
		live = a.liveGames(ctx, week)
	}

	b := builder{week: week, now: now, teams: teams, schedule: schedule, live: live}
	boxScores := make([]models.BoxScore, 0, len(matchups))
	for _, m := range matchups {
		boxScores = append(boxScores, models.BoxScore{
			MatchupID: m.ID,
			Week:      week,
			Home:      b.side(m.Home),
			Away:      b.side(m.Away),
		})
	}
	return boxScores, nil
}

// liveGames is best effort; without it progress falls back to kickoff time.
func (a *API) liveGames(ctx context.Context, week int) map[string]models.NFLEvent {
	events, err := a.espnAPI.GetNFLScoreboard(ctx, week)
	if err != nil {
		slog.Warn("Live game state unavailable", "week", week, "error", err)
		return nil
	}

	byTeam := make(map[string]models.NFLEvent)
	for _, event := range events {
		for _, competition := range event.Competitions {
			for _, competitor := range competition.Competitors {
				byTeam[strings.ToUpper(competitor.Team.Abbreviation)] = event
			}
		}
	}
	return byTeam
}

func teamInfo(team models.Team) models.TeamInfo {
	name := strings.TrimSpace(team.Name)
	if name == "" {
		name = strings.TrimSpace(team.Location + " " + team.Nickname)
	}

	standing := team.RankCalculatedFinal
	if standing == 0 {
		standing = team.PlayoffSeed
	}

	return models.TeamInfo{
		ID:       team.ID,
		Name:     name,
		Standing: standing,
		LogoURL:  team.Logo,
	}
}

type builder struct {
	week     int
	now      time.Time
	teams    map[int]models.TeamInfo
	schedule *proSchedule
	live     map[string]models.NFLEvent
}

func (b builder) side(score models.TeamScore) *models.TeamSide {
	if score.TeamID == 0 {
		return nil
	}

	info, ok := b.teams[score.TeamID]
	if !ok {
		info = models.TeamInfo{ID: score.TeamID, Name: fmt.Sprintf("Team %d", score.TeamID)}
	}

	entries := score.RosterForCurrentScoringPeriod.Entries
	lineup := make([]models.Participant, 0, len(entries))
	for _, entry := range entries {
		lineup = append(lineup, b.participant(entry))
	}

	return &models.TeamSide{
		Team:   info,
		Lineup: lineup,
		Score:  espn.TeamScore(score),
	}
}

func (b builder) participant(entry models.RosterEntry) models.Participant {
	player := entry.PlayerPoolEntry.Player
	actual, projected := espn.PlayerPoints(player, b.week)

	id := player.ID
	if id == 0 {
		id = entry.PlayerID
	}

	p := models.Participant{
		PlayerID:        id,
		Name:            player.FullName,
		Slot:            espn.LineupSlot(entry.LineupSlotID),
		Position:        espn.Position(player.DefaultPositionID),
		ProTeam:         b.schedule.abbrev(player.ProTeamID),
		Points:          actual,
		ProjectedPoints: projected,
		Progress:        100,
		TotalPoints:     espn.SeasonPoints(player),
		PercentOwned:    player.Ownership.PercentOwned,
		PercentStarted:  player.Ownership.PercentStarted,
		InjuryStatus:    player.InjuryStatus,
	}

	if rating, ok := player.Ratings["0"]; ok && rating.PositionalRanking > 0 {
		rank := rating.PositionalRanking
		p.PosRank = &rank
	}

	game, ok := b.schedule.game(player.ProTeamID, b.week)
	if !ok {
		// Bye week or free agent: nothing left to play.
		return p
	}

	p.Opponent = b.schedule.abbrev(game.opponent(player.ProTeamID))
	if !game.StartTimeTBD && game.Date > 0 {
		kickoff := time.UnixMilli(game.Date)
		p.Kickoff = &kickoff
	}

	event, hasLive := b.live[strings.ToUpper(p.ProTeam)]
	p.Progress = gameProgress(game.ProGame, event, hasLive, b.now)
	if hasLive && event.Status.Type.State == "in" {
		quarter := event.Status.Period
		p.Quarter = &quarter
		clock := event.Status.DisplayClock
		if event.Status.Type.Name == "STATUS_HALFTIME" {
			clock = "Halftime"
		}
		p.Clock = &clock
	}
	return p
}

const (
	quarterSeconds    = 15 * 60
	regulationSeconds = 4 * quarterSeconds
)

// gameProgress maps a game to 0 (not started), 1..99 (running) or 100 (over).
func gameProgress(game models.ProGame, event models.NFLEvent, hasLive bool, now time.Time) int {
	if game.StatsOfficial {
		return 100
	}

	if hasLive {
		switch event.Status.Type.State {
		case "post":
			return 100
		case "pre":
			return 0
		case "in":
			elapsed := float64(max(event.Status.Period-1, 0)*quarterSeconds) + (quarterSeconds - event.Status.Clock)
			return clampRunning(int(elapsed * 100 / regulationSeconds))
		}
	}

	if game.Date <= 0 {
		return 0
	}
	kickoff := time.UnixMilli(game.Date)
	switch {
	case now.Before(kickoff):
		return 0
	case now.After(kickoff.Add(gameLength)):
		return 100
	default:
		return clampRunning(int(now.Sub(kickoff) * 100 / gameLength))
	}
}

func clampRunning(pct int) int {
	return min(max(pct, 1), 99)
}

type scheduledGame struct {
	models.ProGame
}

func (g scheduledGame) opponent(proTeamID int) int {
	if g.HomeProTeamID == proTeamID {
		return g.AwayProTeamID
	}
	return g.HomeProTeamID
}

type proSchedule struct {
	abbrevs map[int]string
	games   map[int]map[int]scheduledGame
}

func newProSchedule(teams []models.ProTeamInfo) *proSchedule {
	s := &proSchedule{
		abbrevs: make(map[int]string, len(teams)),
		games:   make(map[int]map[int]scheduledGame, len(teams)),
	}

	for _, team := range teams {
		if team.Abbrev != "" {
			s.abbrevs[team.ID] = strings.ToUpper(team.Abbrev)
		}
		byWeek := make(map[int]scheduledGame)
		for period, games := range team.ProGamesByScoringPeriod {
			week, err := strconv.Atoi(period)
			if err != nil || len(games) == 0 {
				continue
			}
			byWeek[week] = scheduledGame{games[0]}
		}
		s.games[team.ID] = byWeek
	}
	return s
}

func (s *proSchedule) abbrev(proTeamID int) string {
	if abbrev, ok := s.abbrevs[proTeamID]; ok {
		return abbrev
	}
	return espn.ProTeam(proTeamID)
}

func (s *proSchedule) game(proTeamID, week int) (scheduledGame, bool) {
	game, ok := s.games[proTeamID][week]
	return game, ok
}

func (s *proSchedule) anyRunning(week int, now time.Time) bool {
	for _, byWeek := range s.games {
		game, ok := byWeek[week]
		if !ok || game.StatsOfficial || game.Date <= 0 {
			continue
		}
		kickoff := time.UnixMilli(game.Date)
		if !now.Before(kickoff) && now.Before(kickoff.Add(gameLength+time.Hour)) {
			return true
		}
	}
	return false
}
