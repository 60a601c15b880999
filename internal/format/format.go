// Package format turns one participant record into its dashboard display
// values.
package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/omarshaarawi/fantasyfeed/internal/models"
)

const (
	kickoffLayout = "Mon 3:04 PM"
	clockLive     = "Live"
	clockTBD      = "TBD"
	clockHalftime = "Halftime"
	quarterInPlay = "In Play"
)

type Formatter struct {
	location *time.Location
}

// NewFormatter renders kickoff times in loc. A nil loc means UTC.
func NewFormatter(loc *time.Location) *Formatter {
	if loc == nil {
		loc = time.UTC
	}
	return &Formatter{location: loc}
}

func Status(progress int) models.GameStatus {
	switch {
	case progress >= 100:
		return models.StatusFinal
	case progress > 0:
		return models.StatusInPlay
	default:
		return models.StatusPreGame
	}
}

func (f *Formatter) GameClock(p models.Participant) (models.GameStatus, string) {
	status := Status(p.Progress)

	switch status {
	case models.StatusFinal:
		return status, string(models.StatusFinal)
	case models.StatusInPlay:
		return status, liveClock(p.Quarter, p.Clock)
	}

	if p.Kickoff == nil || p.Kickoff.IsZero() {
		return status, clockTBD
	}
	return status, p.Kickoff.In(f.location).Format(kickoffLayout)
}

func quarterLabel(quarter *int) string {
	if quarter == nil {
		return quarterInPlay
	}

	switch q := *quarter; {
	case q >= 1 && q <= 4:
		return fmt.Sprintf("Q%d", q)
	case q == 5:
		return "OT"
	case q > 5:
		return fmt.Sprintf("Q%d", q)
	default:
		return quarterInPlay
	}
}

func liveClock(quarter *int, clock *string) string {
	qtr := quarterLabel(quarter)

	display := ""
	if clock != nil && *clock != "" {
		if strings.EqualFold(*clock, "halftime") {
			display = clockHalftime
		} else if remaining := strings.TrimSpace(strings.TrimSuffix(*clock, " Left")); remaining != "" {
			if qtr != quarterInPlay {
				display = fmt.Sprintf("%s - %s Left", qtr, remaining)
			} else {
				display = fmt.Sprintf("%s Left", remaining)
			}
		} else {
			display = qtr
		}
	} else {
		display = qtr
	}

	if strings.TrimSpace(display) == "" || strings.TrimSpace(display) == quarterInPlay {
		return clockLive
	}
	return display
}

var injuryCodes = map[string]string{
	"QUESTIONABLE":    "Q",
	"DOUBTFUL":        "D",
	"OUT":             "O",
	"IR":              "IR",
	"INJURED RESERVE": "IR",
	"INJURY_RESERVE":  "IR",
	"PUP":             "PUP",
	"SUSPENDED":       "SUS",
}

// InjuryCode returns nil for healthy or unknown statuses.
func InjuryCode(status string) *string {
	code, ok := injuryCodes[strings.ToUpper(strings.TrimSpace(status))]
	if !ok {
		return nil
	}
	return &code
}
