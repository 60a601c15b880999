package models

// MatchDocument is the dashboard's view of one matchup. Field names are the
// dashboard's wire names.
type MatchDocument struct {
	ID        string      `json:"id" firestore:"id"`
	League    string      `json:"league" firestore:"league"`
	Round     string      `json:"round" firestore:"round"`
	Week      int         `json:"week" firestore:"week"`
	Status    string      `json:"status" firestore:"status"`
	Winner    *string     `json:"winner" firestore:"winner"`
	Team1     DisplayTeam `json:"team1" firestore:"team1"`
	Team2     DisplayTeam `json:"team2" firestore:"team2"`
	Timestamp int64       `json:"timestamp" firestore:"timestamp"`
}

type DisplayTeam struct {
	ID             string          `json:"id" firestore:"id"`
	Name           string          `json:"name" firestore:"name"`
	Rank           int             `json:"rank" firestore:"rank"`
	Avatar         string          `json:"avatar" firestore:"avatar"`
	TotalScore     string          `json:"totalScore" firestore:"totalScore"`
	ProjectedScore string          `json:"projectedScore" firestore:"projectedScore"`
	Starters       []DisplayPlayer `json:"starters" firestore:"starters"`
	Bench          []DisplayPlayer `json:"bench" firestore:"bench"`
	League         string          `json:"league" firestore:"league"`
}

type DisplayPlayer struct {
	ID             string     `json:"id" firestore:"id"`
	Name           string     `json:"name" firestore:"name"`
	Position       string     `json:"position" firestore:"position"`
	RealPosition   string     `json:"realPosition" firestore:"realPosition"`
	Score          string     `json:"score" firestore:"score"`
	Projected      string     `json:"projected" firestore:"projected"`
	Status         GameStatus `json:"status" firestore:"status"`
	GameClock      string     `json:"gameClock" firestore:"gameClock"`
	Opponent       string     `json:"opponent" firestore:"opponent"`
	Headshot       string     `json:"headshot" firestore:"headshot"`
	ProTeam        string     `json:"proTeam" firestore:"proTeam"`
	InjuryStatus   string     `json:"injuryStatus" firestore:"injuryStatus"`
	InjuryCode     *string    `json:"injuryCode" firestore:"injuryCode"`
	TotalPoints    string     `json:"totalPoints" firestore:"totalPoints"`
	PercentOwned   string     `json:"percentOwned" firestore:"percentOwned"`
	PercentStarted string     `json:"percentStarted" firestore:"percentStarted"`
	PosRank        string     `json:"posRank" firestore:"posRank"`
}
