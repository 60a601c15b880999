// Package transform builds dashboard match documents from box scores.
package transform

import (
	"fmt"

	"github.com/jonboulle/clockwork"

	"github.com/omarshaarawi/fantasyfeed/internal/format"
	"github.com/omarshaarawi/fantasyfeed/internal/models"
)

// DefaultProjectionFactor dampens projections of players whose games are not
// final. It is a product heuristic.
const DefaultProjectionFactor = 0.60

const (
	headshotURL      = "https://a.espncdn.com/i/headshots/nfl/players/full/%d.png"
	emptyHeadshotURL = "https://a.espncdn.com/combiner/i?img=/i/headshots/nfl/players/full/0.png&w=96&h=70"

	benchPadSlot   = "BN"
	starterPadSlot = "FLX"
)

type Options struct {
	ProjectionFactor float64
	// ProjectBench counts bench players in the remaining projection.
	ProjectBench bool
	Formatter    *format.Formatter
	Clock        clockwork.Clock
}

type Transformer struct {
	factor       float64
	projectBench bool
	formatter    *format.Formatter
	clock        clockwork.Clock
}

func NewTransformer(opts Options) *Transformer {
	if opts.Formatter == nil {
		opts.Formatter = format.NewFormatter(nil)
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	return &Transformer{
		factor:       opts.ProjectionFactor,
		projectBench: opts.ProjectBench,
		formatter:    opts.Formatter,
		clock:        opts.Clock,
	}
}

// DocumentID is the idempotency key for a matchup document.
func DocumentID(league string, week, homeTeamID, awayTeamID int) string {
	return fmt.Sprintf("%s-%d-%d-%d", league, week, homeTeamID, awayTeamID)
}

// Transform returns false when either side of the matchup is missing.
func (t *Transformer) Transform(box models.BoxScore, league string, week int) (*models.MatchDocument, bool) {
	if box.Home == nil || box.Away == nil {
		return nil, false
	}

	home := t.buildTeam(*box.Home, league)
	away := t.buildTeam(*box.Away, league)

	benchLen := max(len(home.Bench), len(away.Bench))
	home.Bench = pad(home.Bench, benchLen, benchPadSlot)
	away.Bench = pad(away.Bench, benchLen, benchPadSlot)

	startersLen := max(len(home.Starters), len(away.Starters))
	home.Starters = pad(home.Starters, startersLen, starterPadSlot)
	away.Starters = pad(away.Starters, startersLen, starterPadSlot)

	return &models.MatchDocument{
		ID:        DocumentID(league, week, box.Home.Team.ID, box.Away.Team.ID),
		League:    league,
		Round:     fmt.Sprintf("Week %d", week),
		Week:      week,
		Status:    "Live",
		Team1:     home,
		Team2:     away,
		Timestamp: t.clock.Now().UnixMilli(),
	}, true
}

func (t *Transformer) buildTeam(side models.TeamSide, league string) models.DisplayTeam {
	starters := make([]models.DisplayPlayer, 0, len(side.Lineup))
	bench := make([]models.DisplayPlayer, 0)
	var remaining float64

	for _, p := range side.Lineup {
		player := t.displayPlayer(p)
		onBench := IsBenchSlot(p.Slot)
		if onBench {
			bench = append(bench, player)
		} else {
			starters = append(starters, player)
		}

		if player.Status == models.StatusFinal || (onBench && !t.projectBench) {
			continue
		}
		remaining += p.ProjectedPoints * t.factor
	}

	return models.DisplayTeam{
		ID:             fmt.Sprintf("m-%d", side.Team.ID),
		Name:           side.Team.Name,
		Rank:           side.Team.Standing,
		Avatar:         side.Team.LogoURL,
		TotalScore:     fmt.Sprintf("%.2f", side.Score),
		ProjectedScore: fmt.Sprintf("%.2f", remaining),
		Starters:       starters,
		Bench:          bench,
		League:         league,
	}
}

func IsBenchSlot(slot string) bool {
	return slot == "BE" || slot == "IR"
}

func (t *Transformer) displayPlayer(p models.Participant) models.DisplayPlayer {
	status, clock := t.formatter.GameClock(p)

	injury := p.InjuryStatus
	if injury == "" {
		injury = "Active"
	}

	posRank := "N/A"
	if p.PosRank != nil {
		posRank = fmt.Sprintf("%d", *p.PosRank)
	}

	return models.DisplayPlayer{
		ID:             fmt.Sprintf("p-%d", p.PlayerID),
		Name:           p.Name,
		Position:       p.Slot,
		RealPosition:   orDefault(p.Position, p.Slot),
		Score:          fmt.Sprintf("%.2f", p.Points),
		Projected:      fmt.Sprintf("%.2f", p.ProjectedPoints),
		Status:         status,
		GameClock:      clock,
		Opponent:       orDefault(p.Opponent, "BYE"),
		Headshot:       fmt.Sprintf(headshotURL, p.PlayerID),
		ProTeam:        orDefault(p.ProTeam, "FA"),
		InjuryStatus:   injury,
		InjuryCode:     format.InjuryCode(injury),
		TotalPoints:    fmt.Sprintf("%.2f", p.TotalPoints),
		PercentOwned:   fmt.Sprintf("%.1f", p.PercentOwned),
		PercentStarted: fmt.Sprintf("%.1f", p.PercentStarted),
		PosRank:        posRank,
	}
}

func pad(players []models.DisplayPlayer, target int, slot string) []models.DisplayPlayer {
	for len(players) < target {
		players = append(players, models.DisplayPlayer{
			ID:             fmt.Sprintf("empty-%d", len(players)),
			Name:           "Empty Slot",
			Position:       slot,
			RealPosition:   slot,
			Score:          "0.00",
			Projected:      "0.00",
			Status:         models.StatusPreGame,
			Headshot:       emptyHeadshotURL,
			InjuryStatus:   "Active",
			TotalPoints:    "0",
			PercentOwned:   "0",
			PercentStarted: "0",
		})
	}
	return players
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
