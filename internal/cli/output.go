package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/stefanlut/jacha/internal/directory"
	"github.com/stefanlut/jacha/internal/hockey"
)

// OutputFormat specifies the output format.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// WriteSchedule writes a team schedule in the given format.
func WriteSchedule(w io.Writer, schedule *hockey.TeamSchedule, format OutputFormat) error {
	if format == FormatJSON {
		return writeJSON(w, schedule)
	}

	fmt.Fprintf(w, "%s - %s season (%s overall, %s conference)\n",
		schedule.TeamName, schedule.Season, schedule.Record.Overall, schedule.Record.Conference)

	if len(schedule.Games) == 0 {
		fmt.Fprintln(w, "No games scheduled.")
		return nil
	}

	for _, game := range schedule.Games {
		marker := "vs"
		if !game.IsHome && game.Venue != "Neutral Site" {
			marker = "at"
		}
		line := fmt.Sprintf("%s  %s %s", game.Date.Format("Jan 02"), marker, game.Opponent)
		if game.Exhibition {
			line += " (exhibition)"
		}
		if game.Result != nil {
			outcome := "L"
			if game.Result.Won {
				outcome = "W"
			}
			line += fmt.Sprintf("  %s %s", outcome, game.Result.Score)
		} else if game.Time != "" {
			line += "  " + game.Time
		}
		if game.TournamentInfo != "" {
			line += "  [" + game.TournamentInfo + "]"
		}
		fmt.Fprintln(w, line)
	}

	fmt.Fprintf(w, "\nTotal: %d games\n", len(schedule.Games))
	return nil
}

// WriteScoreboard writes a day's slate in the given format.
func WriteScoreboard(w io.Writer, scoreboard *hockey.Scoreboard, format OutputFormat) error {
	if format == FormatJSON {
		return writeJSON(w, scoreboard)
	}

	if len(scoreboard.Games) == 0 {
		fmt.Fprintln(w, "No games found.")
		return nil
	}

	for _, game := range scoreboard.Games {
		switch {
		case game.Result != nil && game.Status == hockey.StatusInProgress:
			state := ""
			if game.LiveData != nil {
				state = fmt.Sprintf("  (%s, %s)", game.LiveData.Period, game.LiveData.TimeRemaining)
				if game.LiveData.Intermission {
					state = "  (Intermission)"
				}
			}
			fmt.Fprintf(w, "%s %d at %s %d%s\n",
				game.AwayTeam, game.Result.AwayScore, game.HomeTeam, game.Result.HomeScore, state)
		case game.Result != nil:
			fmt.Fprintf(w, "%s %d at %s %d  Final\n",
				game.AwayTeam, game.Result.AwayScore, game.HomeTeam, game.Result.HomeScore)
		default:
			line := fmt.Sprintf("%s at %s", game.AwayTeam, game.HomeTeam)
			if game.Time != "" {
				line += "  " + game.Time
			}
			if game.Exhibition {
				line += "  (exhibition)"
			}
			fmt.Fprintln(w, line)
		}
	}

	fmt.Fprintf(w, "\nTotal: %d games\n", len(scoreboard.Games))
	return nil
}

// WritePoll writes the poll in the given format.
func WritePoll(w io.Writer, poll *hockey.Poll, format OutputFormat) error {
	if format == FormatJSON {
		return writeJSON(w, poll)
	}

	fmt.Fprintf(w, "Poll - %s\n", poll.Date)
	for _, team := range poll.Teams {
		line := fmt.Sprintf("%2d. %s (%s) %d pts", team.Rank, team.Team, team.Record, team.Points)
		if team.FirstPlaceVotes > 0 {
			line += fmt.Sprintf(", %d first-place", team.FirstPlaceVotes)
		}
		if team.LastWeekRank == nil {
			line += "  [NR last week]"
		}
		fmt.Fprintln(w, line)
	}
	if poll.OthersReceivingVotes != "" {
		fmt.Fprintf(w, "\nOthers receiving votes: %s\n", poll.OthersReceivingVotes)
	}
	return nil
}

// WriteTeams writes the directory listing in the given format.
func WriteTeams(w io.Writer, teams []directory.TeamInfo, format OutputFormat) error {
	if format == FormatJSON {
		return writeJSON(w, teams)
	}

	byConference := make(map[string][]directory.TeamInfo)
	var conferences []string
	for _, team := range teams {
		if _, ok := byConference[team.Conference]; !ok {
			conferences = append(conferences, team.Conference)
		}
		byConference[team.Conference] = append(byConference[team.Conference], team)
	}

	for _, conference := range conferences {
		fmt.Fprintf(w, "\n%s:\n", conference)
		for _, team := range byConference[conference] {
			fmt.Fprintf(w, "  %s\n", team.Name)
		}
	}

	fmt.Fprintf(w, "\nTotal: %d teams\n", len(teams))
	return nil
}
