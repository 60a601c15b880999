package models

type LeagueResponse struct {
	ID              int      `json:"id"`
	ScoringPeriodID int      `json:"scoringPeriodId"`
	SeasonID        int      `json:"seasonId"`
	SegmentID       int      `json:"segmentId"`
	Status          Status   `json:"status"`
	Teams           []Team   `json:"teams"`
	Settings        Settings `json:"settings"`
}

type Settings struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

type Status struct {
	CurrentMatchupPeriod int  `json:"currentMatchupPeriod"`
	FinalScoringPeriod   int  `json:"finalScoringPeriod"`
	FirstScoringPeriod   int  `json:"firstScoringPeriod"`
	IsActive             bool `json:"isActive"`
}

type Team struct {
	ID                  int     `json:"id"`
	Abbreviation        string  `json:"abbrev"`
	Name                string  `json:"name"`
	Location            string  `json:"location"`
	Nickname            string  `json:"nickname"`
	Logo                string  `json:"logo"`
	PlayoffSeed         int     `json:"playoffSeed"`
	RankCalculatedFinal int     `json:"rankCalculatedFinal"`
	Points              float64 `json:"points"`
}

type ScoreboardResponse struct {
	Schedule []MatchupScore `json:"schedule"`
}

type MatchupScore struct {
	ID              int       `json:"id"`
	MatchupPeriodID int       `json:"matchupPeriodId"`
	Away            TeamScore `json:"away"`
	Home            TeamScore `json:"home"`
	Winner          string    `json:"winner"`
}

type TeamScore struct {
	TeamID                        int             `json:"teamId"`
	TotalPoints                   float64         `json:"totalPoints"`
	TotalPointsLive               float64         `json:"totalPointsLive"`
	TotalProjectedPointsLive      float64         `json:"totalProjectedPointsLive"`
	RosterForCurrentScoringPeriod RosterForPeriod `json:"rosterForCurrentScoringPeriod"`
}

type RosterForPeriod struct {
	Entries []RosterEntry `json:"entries"`
}

type RosterEntry struct {
	PlayerID        int             `json:"playerId"`
	PlayerPoolEntry PlayerPoolEntry `json:"playerPoolEntry"`
	LineupSlotID    int             `json:"lineupSlotId"`
}

type PlayerPoolEntry struct {
	ID               int     `json:"id"`
	OnTeamID         int     `json:"onTeamId"`
	Player           Player  `json:"player"`
	AppliedStatTotal float64 `json:"appliedStatTotal"`
}

type Player struct {
	ID                int               `json:"id"`
	FullName          string            `json:"fullName"`
	DefaultPositionID int               `json:"defaultPositionId"`
	ProTeamID         int               `json:"proTeamId"`
	Ownership         Ownership         `json:"ownership"`
	Stats             []Stat            `json:"stats"`
	InjuryStatus      string            `json:"injuryStatus"`
	Ratings           map[string]Rating `json:"ratings"`
}

type Ownership struct {
	PercentOwned   float64 `json:"percentOwned"`
	PercentStarted float64 `json:"percentStarted"`
}

type Rating struct {
	PositionalRanking int     `json:"positionalRanking"`
	TotalRanking      int     `json:"totalRanking"`
	TotalRating       float64 `json:"totalRating"`
}

type Stat struct {
	StatSourceID    int                `json:"statSourceId"`
	ScoringPeriodID int                `json:"scoringPeriodId"`
	StatSplitTypeID int                `json:"statSplitTypeId"`
	AppliedTotal    float64            `json:"appliedTotal"`
	AppliedStats    map[string]float64 `json:"appliedStats"`
}

type ProScheduleResponse struct {
	Settings struct {
		ProTeams []ProTeamInfo `json:"proTeams"`
	} `json:"settings"`
}

type ProTeamInfo struct {
	ID                      int                  `json:"id"`
	Abbrev                  string               `json:"abbrev"`
	ByeWeek                 int                  `json:"byeWeek"`
	Name                    string               `json:"name"`
	ProGamesByScoringPeriod map[string][]ProGame `json:"proGamesByScoringPeriod"`
}

type ProGame struct {
	ID              int   `json:"id"`
	Date            int64 `json:"date"`
	HomeProTeamID   int   `json:"homeProTeamId"`
	AwayProTeamID   int   `json:"awayProTeamId"`
	ScoringPeriodID int   `json:"scoringPeriodId"`
	StartTimeTBD    bool  `json:"startTimeTBD"`
	StatsOfficial   bool  `json:"statsOfficial"`
}

// NFLScoreboardResponse is the public site scoreboard, the only source of live
// quarter and clock values.
type NFLScoreboardResponse struct {
	Events []NFLEvent `json:"events"`
}

type NFLEvent struct {
	ID           string           `json:"id"`
	Date         string           `json:"date"`
	Status       NFLStatus        `json:"status"`
	Competitions []NFLCompetition `json:"competitions"`
}

type NFLStatus struct {
	Clock        float64       `json:"clock"`
	DisplayClock string        `json:"displayClock"`
	Period       int           `json:"period"`
	Type         NFLStatusType `json:"type"`
}

type NFLStatusType struct {
	Name        string `json:"name"`
	State       string `json:"state"`
	Completed   bool   `json:"completed"`
	Detail      string `json:"detail"`
	ShortDetail string `json:"shortDetail"`
}

type NFLCompetition struct {
	Competitors []NFLCompetitor `json:"competitors"`
}

type NFLCompetitor struct {
	HomeAway string `json:"homeAway"`
	Team     struct {
		Abbreviation string `json:"abbreviation"`
	} `json:"team"`
}
