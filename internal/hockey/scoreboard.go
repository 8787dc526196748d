package hockey

import (
	"strings"
	"time"
)

// ScoreboardResult holds the score of a completed or in-progress game.
type ScoreboardResult struct {
	HomeScore int `json:"homeScore"`
	AwayScore int `json:"awayScore"`
}

// LiveData carries the in-progress state of a live game.
type LiveData struct {
	Period        string `json:"period"`
	TimeRemaining string `json:"timeRemaining"`
	Intermission  bool   `json:"intermission,omitempty"`
}

// ScoreboardGame is one game on a day's slate.
type ScoreboardGame struct {
	ID         string            `json:"id"`
	Date       time.Time         `json:"date"`
	HomeTeam   string            `json:"homeTeam"`
	AwayTeam   string            `json:"awayTeam"`
	Time       string            `json:"time,omitempty"`
	Conference string            `json:"conference"`
	Exhibition bool              `json:"exhibition"`
	Status     GameStatus        `json:"status"`
	Result     *ScoreboardResult `json:"result,omitempty"`
	LiveData   *LiveData         `json:"liveData,omitempty"`
}

// Scoreboard is the slate of games for one date and gender.
type Scoreboard struct {
	Date        time.Time        `json:"date"`
	Gender      Gender           `json:"gender"`
	Games       []ScoreboardGame `json:"games"`
	LastUpdated time.Time        `json:"lastUpdated"`
}

// ScoreboardGameID synthesizes a game identity from the two team names and
// the date. Used where the source page carries no stable identifiers.
func ScoreboardGameID(awayTeam, homeTeam string, date time.Time) string {
	id := awayTeam + "-at-" + homeTeam + "-" + date.Format("2006-01-02")
	return strings.Join(strings.Fields(id), "-")
}
