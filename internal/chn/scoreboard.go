package chn

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/stefanlut/jacha/internal/hockey"
)

// The composite schedule page lists every date's games under a header row
// holding a single cell like "Friday, October 3, 2025". Rows are bucketed
// under the most recent header and only the section whose header matches
// the requested date exactly is parsed.
var scoreboardDatePattern = regexp.MustCompile(`^\w+, \w+ \d+, \d{4}$`)

// Scoreboard scrapes the slate of games for one date. A date with no
// matching section returns an empty scoreboard, not an error.
func (c *Client) Scoreboard(ctx context.Context, date time.Time, gender hockey.Gender) (*hockey.Scoreboard, error) {
	html, err := c.fetcher.Get(ctx, scoreboardURL(gender))
	if err != nil {
		return nil, fmt.Errorf("fetching %s scoreboard: %w", gender, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing %s scoreboard page: %w", gender, err)
	}

	type section struct {
		header string
		rows   []*goquery.Selection
	}
	var sections []*section
	var current *section

	doc.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() == 1 {
			header := strings.Join(strings.Fields(cells.First().Text()), " ")
			if scoreboardDatePattern.MatchString(header) {
				current = &section{header: header}
				sections = append(sections, current)
			}
			return
		}
		if current != nil {
			current.rows = append(current.rows, row)
		}
	})

	target := date.Format("Monday, January 2, 2006")

	games := []hockey.ScoreboardGame{}
	for _, sec := range sections {
		if sec.header != target {
			continue
		}
		for _, row := range sec.rows {
			cells := row.Find("td")
			if cells.Length() < 8 {
				continue
			}
			if game, ok := parseScoreboardRow(cells, date); ok {
				games = append(games, game)
			}
		}
		break
	}

	return &hockey.Scoreboard{
		Date:        date,
		Gender:      gender,
		Games:       games,
		LastUpdated: c.now(),
	}, nil
}

// parseScoreboardRow reads one game row: away team, away score, "at"/"vs.",
// home team, home score, then the time or status two cells later. Scores in
// both score cells mean the game is final.
func parseScoreboardRow(cells *goquery.Selection, date time.Time) (hockey.ScoreboardGame, bool) {
	awayTeam := strings.TrimSpace(cells.Eq(0).Text())
	awayScoreText := strings.TrimSpace(cells.Eq(1).Text())
	homeTeam := strings.TrimSpace(cells.Eq(3).Text())
	homeScoreText := strings.TrimSpace(cells.Eq(4).Text())
	timeText := strings.TrimSpace(cells.Eq(6).Text())

	if awayTeam == "" || homeTeam == "" {
		return hockey.ScoreboardGame{}, false
	}

	awayScore, awayErr := strconv.Atoi(awayScoreText)
	homeScore, homeErr := strconv.Atoi(homeScoreText)
	completed := awayScoreText != "" && homeScoreText != "" && awayErr == nil && homeErr == nil

	game := hockey.ScoreboardGame{
		ID:         hockey.ScoreboardGameID(awayTeam, homeTeam, date),
		Date:       date,
		AwayTeam:   awayTeam,
		HomeTeam:   homeTeam,
		Conference: "Non-Conference",
		Exhibition: containsExhibition(timeText, awayTeam, homeTeam),
		Status:     hockey.StatusScheduled,
	}

	if completed {
		game.Status = hockey.StatusCompleted
		game.Result = &hockey.ScoreboardResult{
			AwayScore: awayScore,
			HomeScore: homeScore,
		}
	} else {
		game.Time = timeText
	}

	return game, true
}

func containsExhibition(parts ...string) bool {
	for _, p := range parts {
		if strings.Contains(p, "Exhibition") {
			return true
		}
	}
	return false
}
