package hockey

import (
	"crypto/sha1"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Gender selects between the men's and women's team universe.
type Gender string

const (
	GenderMen   Gender = "men"
	GenderWomen Gender = "women"
)

// ParseGender validates a gender query parameter. The empty string defaults
// to men, matching the behavior of the public endpoints.
func ParseGender(s string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "men":
		return GenderMen, nil
	case "women":
		return GenderWomen, nil
	}
	return "", fmt.Errorf("invalid gender %q: must be \"men\" or \"women\"", s)
}

// GameStatus describes where a game is in its lifecycle.
type GameStatus string

const (
	StatusScheduled  GameStatus = "scheduled"
	StatusCompleted  GameStatus = "completed"
	StatusPostponed  GameStatus = "postponed"
	StatusCancelled  GameStatus = "cancelled"
	StatusInProgress GameStatus = "in-progress"
)

// GameResult holds the outcome of a completed schedule game from the
// subject team's perspective.
type GameResult struct {
	Score string `json:"score"`
	Won   bool   `json:"won"`
}

// BroadcastInfo carries optional broadcast and ticketing links for a game.
type BroadcastInfo struct {
	Network     string `json:"network,omitempty"`
	WatchLink   string `json:"watchLink,omitempty"`
	StatsLink   string `json:"statsLink,omitempty"`
	TicketsLink string `json:"ticketsLink,omitempty"`
}

// ScheduleGame is one entry on a team's schedule. Neutral-site games are
// modeled as away games with Venue set to "Neutral Site".
type ScheduleGame struct {
	ID             string         `json:"id"`
	Date           time.Time      `json:"date"`
	Opponent       string         `json:"opponent"`
	IsHome         bool           `json:"isHome"`
	Venue          string         `json:"venue,omitempty"`
	City           string         `json:"city,omitempty"`
	State          string         `json:"state,omitempty"`
	Time           string         `json:"time,omitempty"`
	Conference     bool           `json:"conference"`
	Exhibition     bool           `json:"exhibition"`
	Status         GameStatus     `json:"status"`
	Result         *GameResult    `json:"result,omitempty"`
	BroadcastInfo  *BroadcastInfo `json:"broadcastInfo,omitempty"`
	TournamentInfo string         `json:"tournamentInfo,omitempty"`
}

// Record holds win-loss-tie triples per split. Missing splits default to
// "0-0-0" rather than an empty string.
type Record struct {
	Overall    string `json:"overall"`
	Conference string `json:"conference"`
	Home       string `json:"home"`
	Away       string `json:"away"`
	Neutral    string `json:"neutral"`
}

// DefaultRecord returns a Record with every split zeroed.
func DefaultRecord() Record {
	return Record{
		Overall:    "0-0-0",
		Conference: "0-0-0",
		Home:       "0-0-0",
		Away:       "0-0-0",
		Neutral:    "0-0-0",
	}
}

// TeamSchedule is a team's full scraped schedule for one season.
type TeamSchedule struct {
	TeamName    string         `json:"teamName"`
	Gender      Gender         `json:"gender"`
	Season      string         `json:"season"`
	Record      Record         `json:"record"`
	Games       []ScheduleGame `json:"games"`
	LastUpdated time.Time      `json:"lastUpdated"`
}

// GameID derives a deterministic ID from team, date, and opponent. IDs are
// collision-prone on purpose: they exist for list rendering, not as durable
// keys.
func GameID(team string, date time.Time, opponent string) string {
	h := sha1.New()
	fmt.Fprintf(h, "%s|%s|%s", team, date.Format("2006-01-02"), opponent)
	return fmt.Sprintf("%x", h.Sum(nil))[:12]
}

// SortGames orders games by date ascending, in place.
func SortGames(games []ScheduleGame) {
	sort.SliceStable(games, func(i, j int) bool {
		return games[i].Date.Before(games[j].Date)
	})
}
