package fantasy

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omarshaarawi/fantasyfeed/internal/api/espn"
	"github.com/omarshaarawi/fantasyfeed/internal/config"
	"github.com/omarshaarawi/fantasyfeed/internal/models"
)

// Sunday 2025-12-14 18:00 UTC (1:00 PM Eastern).
var kickoff = time.Date(2025, time.December, 14, 18, 0, 0, 0, time.UTC)

const teamsFixture = `{"teams": [
  {"id": 3, "name": "Stairway to Evans", "logo": "https://logo/3.png", "playoffSeed": 2},
  {"id": 7, "location": "Beyond", "nickname": "Cursed", "playoffSeed": 5, "rankCalculatedFinal": 4}
]}`

func scheduleFixture() string {
	date := kickoff.UnixMilli()
	return `{"settings": {"proTeams": [
  {"id": 2, "abbrev": "Buf", "proGamesByScoringPeriod": {"15": [{"id": 1, "date": ` + itoa(date) + `, "homeProTeamId": 2, "awayProTeamId": 17}]}},
  {"id": 17, "abbrev": "NE", "proGamesByScoringPeriod": {"15": [{"id": 1, "date": ` + itoa(date) + `, "homeProTeamId": 2, "awayProTeamId": 17}]}},
  {"id": 12, "abbrev": "KC", "proGamesByScoringPeriod": {"15": [{"id": 2, "date": ` + itoa(date-86400000) + `, "homeProTeamId": 12, "awayProTeamId": 13, "statsOfficial": true}]}},
  {"id": 8, "abbrev": "Det", "proGamesByScoringPeriod": {"15": [{"id": 3, "date": ` + itoa(kickoff.Add(27*time.Hour).UnixMilli()) + `, "homeProTeamId": 8, "awayProTeamId": 9}]}},
  {"id": 9, "abbrev": "GB", "proGamesByScoringPeriod": {}}
]}}`
}

const boxFixture = `{"schedule": [
  {"id": 71, "matchupPeriodId": 15,
   "home": {"teamId": 3, "totalPointsLive": 61.2, "rosterForCurrentScoringPeriod": {"entries": [
     {"lineupSlotId": 0, "playerPoolEntry": {"player": {"id": 3918298, "fullName": "Josh Allen", "defaultPositionId": 1, "proTeamId": 2,
        "injuryStatus": "ACTIVE", "ownership": {"percentOwned": 99.9, "percentStarted": 98.7},
        "ratings": {"0": {"positionalRanking": 2}},
        "stats": [{"scoringPeriodId": 15, "statSourceId": 1, "appliedTotal": 21.3}, {"scoringPeriodId": 15, "statSourceId": 0, "appliedTotal": 14.1}]}}},
     {"lineupSlotId": 20, "playerPoolEntry": {"player": {"id": 3139477, "fullName": "Patrick Mahomes", "defaultPositionId": 1, "proTeamId": 12,
        "stats": [{"scoringPeriodId": 15, "statSourceId": 0, "appliedTotal": 19.0}]}}},
     {"lineupSlotId": 23, "playerPoolEntry": {"player": {"id": 4427366, "fullName": "Jahmyr Gibbs", "defaultPositionId": 2, "proTeamId": 8,
        "injuryStatus": "QUESTIONABLE"}}},
     {"lineupSlotId": 21, "playerPoolEntry": {"player": {"id": 4035687, "fullName": "Jordan Love", "defaultPositionId": 1, "proTeamId": 9}}}
   ]}},
   "away": {"teamId": 7, "totalPoints": 55.5, "rosterForCurrentScoringPeriod": {"entries": []}}},
  {"id": 72, "matchupPeriodId": 15, "home": {"teamId": 3}}
]}`

const liveFixture = `{"events": [{"id": "1", "status": {"clock": 312, "displayClock": "5:12", "period": 3,
  "type": {"name": "STATUS_IN_PROGRESS", "state": "in"}},
  "competitions": [{"competitors": [{"homeAway": "home", "team": {"abbreviation": "BUF"}}, {"homeAway": "away", "team": {"abbreviation": "NE"}}]}]}]}`

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}

type fixtureServer struct {
	liveStatus int
	liveHits   atomic.Int32
}

func (f *fixtureServer) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/site/scoreboard":
			f.liveHits.Add(1)
			if f.liveStatus != 0 {
				w.WriteHeader(f.liveStatus)
				return
			}
			_, _ = w.Write([]byte(liveFixture))
		case r.URL.Path == "/seasons/2025":
			_, _ = w.Write([]byte(scheduleFixture()))
		case r.URL.Query().Get("view") == "mTeam":
			_, _ = w.Write([]byte(teamsFixture))
		case strings.HasPrefix(r.URL.Path, "/seasons/2025/segments/0/leagues/"):
			_, _ = w.Write([]byte(boxFixture))
		default:
			t.Errorf("unexpected request %s", r.URL.String())
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func newTestAPI(t *testing.T, f *fixtureServer, now time.Time) *API {
	t.Helper()
	srv := httptest.NewServer(f.handler(t))
	t.Cleanup(srv.Close)

	client := espn.NewClient(config.ESPNAPI{Year: 2025}, espn.WithBaseURL(srv.URL), espn.WithScoreboardURL(srv.URL+"/site"))
	return NewAPI(espn.NewAPI(client), clockwork.NewFakeClockAt(now))
}

func TestBoxScoresRequiresConnect(t *testing.T) {
	api := newTestAPI(t, &fixtureServer{}, kickoff)

	_, err := api.BoxScores(context.Background(), 1450464291, 15)
	assert.Error(t, err)
}

func TestBoxScoresDuringLiveGame(t *testing.T) {
	f := &fixtureServer{}
	api := newTestAPI(t, f, kickoff.Add(100*time.Minute))
	ctx := context.Background()

	require.NoError(t, api.Connect(ctx, 1450464291))
	boxes, err := api.BoxScores(ctx, 1450464291, 15)
	require.NoError(t, err)
	require.Len(t, boxes, 2)
	assert.Equal(t, int32(1), f.liveHits.Load())

	box := boxes[0]
	require.NotNil(t, box.Home)
	require.NotNil(t, box.Away)
	assert.Nil(t, boxes[1].Away)

	assert.Equal(t, models.TeamInfo{ID: 3, Name: "Stairway to Evans", Standing: 2, LogoURL: "https://logo/3.png"}, box.Home.Team)
	assert.Equal(t, models.TeamInfo{ID: 7, Name: "Beyond Cursed", Standing: 4}, box.Away.Team)
	assert.InDelta(t, 61.2, box.Home.Score, 1e-9)
	assert.InDelta(t, 55.5, box.Away.Score, 1e-9)
	require.Len(t, box.Home.Lineup, 4)

	allen := box.Home.Lineup[0]
	assert.Equal(t, 3918298, allen.PlayerID)
	assert.Equal(t, "QB", allen.Slot)
	assert.Equal(t, "QB", allen.Position)
	assert.Equal(t, "BUF", allen.ProTeam)
	assert.Equal(t, "NE", allen.Opponent)
	assert.InDelta(t, 14.1, allen.Points, 1e-9)
	assert.InDelta(t, 21.3, allen.ProjectedPoints, 1e-9)
	require.NotNil(t, allen.Quarter)
	assert.Equal(t, 3, *allen.Quarter)
	require.NotNil(t, allen.Clock)
	assert.Equal(t, "5:12", *allen.Clock)
	// Two full quarters plus 9:48 of the third.
	assert.Equal(t, 66, allen.Progress)
	require.NotNil(t, allen.PosRank)
	assert.Equal(t, 2, *allen.PosRank)
	require.NotNil(t, allen.Kickoff)
	assert.True(t, kickoff.Equal(*allen.Kickoff))

	mahomes := box.Home.Lineup[1]
	assert.Equal(t, "BE", mahomes.Slot)
	assert.Equal(t, 100, mahomes.Progress)
	assert.Equal(t, "LV", mahomes.Opponent)
	assert.Nil(t, mahomes.Quarter)

	gibbs := box.Home.Lineup[2]
	assert.Equal(t, "RB/WR/TE", gibbs.Slot)
	assert.Equal(t, 0, gibbs.Progress)
	assert.Equal(t, "GB", gibbs.Opponent)
	assert.Equal(t, "QUESTIONABLE", gibbs.InjuryStatus)

	love := box.Home.Lineup[3]
	assert.Equal(t, "IR", love.Slot)
	assert.Equal(t, 100, love.Progress, "bye week counts as played")
	assert.Empty(t, love.Opponent)
	assert.Nil(t, love.Kickoff)
}

func TestBoxScoresLiveFallback(t *testing.T) {
	f := &fixtureServer{liveStatus: http.StatusBadGateway}
	api := newTestAPI(t, f, kickoff.Add(90*time.Minute))
	ctx := context.Background()

	require.NoError(t, api.Connect(ctx, 1450464291))
	boxes, err := api.BoxScores(ctx, 1450464291, 15)
	require.NoError(t, err)

	allen := boxes[0].Home.Lineup[0]
	assert.Equal(t, 50, allen.Progress)
	assert.Nil(t, allen.Quarter)
	assert.Nil(t, allen.Clock)
}

func TestBoxScoresSkipsLiveFeedBeforeKickoff(t *testing.T) {
	f := &fixtureServer{}
	api := newTestAPI(t, f, kickoff.Add(-2*time.Hour))
	ctx := context.Background()

	require.NoError(t, api.Connect(ctx, 1450464291))
	boxes, err := api.BoxScores(ctx, 1450464291, 15)
	require.NoError(t, err)
	assert.Equal(t, int32(0), f.liveHits.Load())
	assert.Equal(t, 0, boxes[0].Home.Lineup[0].Progress)
}

func TestGameProgress(t *testing.T) {
	game := models.ProGame{Date: kickoff.UnixMilli()}

	assert.Equal(t, 0, gameProgress(game, models.NFLEvent{}, false, kickoff.Add(-time.Minute)))
	assert.Equal(t, 1, gameProgress(game, models.NFLEvent{}, false, kickoff))
	assert.Equal(t, 100, gameProgress(game, models.NFLEvent{}, false, kickoff.Add(3*time.Hour+time.Second)))
	assert.Equal(t, 100, gameProgress(models.ProGame{StatsOfficial: true}, models.NFLEvent{}, false, kickoff))
	assert.Equal(t, 0, gameProgress(models.ProGame{}, models.NFLEvent{}, false, kickoff))

	post := models.NFLEvent{Status: models.NFLStatus{Type: models.NFLStatusType{State: "post"}}}
	assert.Equal(t, 100, gameProgress(game, post, true, kickoff))

	overtime := models.NFLEvent{Status: models.NFLStatus{Period: 5, Clock: 300, Type: models.NFLStatusType{State: "in"}}}
	assert.Equal(t, 99, gameProgress(game, overtime, true, kickoff))
}
