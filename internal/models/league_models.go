package models

import "time"

type LeagueMetadata struct {
	LeagueID             int
	Name                 string
	CurrentWeek          int
	CurrentScoringPeriod int
	SeasonID             int
	FirstWeek            int
	LastWeek             int
	IsActive             bool
	LastUpdated          time.Time
}

type GameStatus string

const (
	StatusPreGame GameStatus = "Pre-Game"
	StatusInPlay  GameStatus = "In Play"
	StatusFinal   GameStatus = "Final"
)

// Participant is one rostered player for one scoring period, validated at the
// data-source boundary. Quarter, Clock and Kickoff are only set when the
// upstream feed carries them.
type Participant struct {
	PlayerID        int
	Name            string
	Slot            string
	Position        string
	ProTeam         string
	Opponent        string
	Points          float64
	ProjectedPoints float64
	Progress        int
	Quarter         *int
	Clock           *string
	Kickoff         *time.Time
	TotalPoints     float64
	PercentOwned    float64
	PercentStarted  float64
	InjuryStatus    string
	PosRank         *int
}

type TeamInfo struct {
	ID       int
	Name     string
	Standing int
	LogoURL  string
}

type TeamSide struct {
	Team   TeamInfo
	Lineup []Participant
	Score  float64
}

// BoxScore is one matchup. Home or Away is nil when the period has no
// opponent for that side (playoff byes).
type BoxScore struct {
	MatchupID int
	Week      int
	Home      *TeamSide
	Away      *TeamSide
}

type SyncPhase string

const (
	PhaseBackfill SyncPhase = "backfill"
	PhaseLive     SyncPhase = "live"
)

type SyncStatus struct {
	RunID         string    `json:"runId"`
	Phase         SyncPhase `json:"phase"`
	Weeks         []int     `json:"weeks"`
	Matchups      int       `json:"matchups"`
	FailedLeagues []string  `json:"failedLeagues,omitempty"`
	CommitError   string    `json:"commitError,omitempty"`
	Error         string    `json:"error,omitempty"`
	StartedAt     time.Time `json:"startedAt"`
	FinishedAt    time.Time `json:"finishedAt"`
}

func (s SyncStatus) OK() bool {
	return s.Error == "" && s.CommitError == "" && len(s.FailedLeagues) == 0
}
