package chn

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/stefanlut/jacha/internal/directory"
	"github.com/stefanlut/jacha/internal/hockey"
)

// CHN schedule tables group game rows under month header rows ("October
// 2025" in a single cell), so the walk carries the current month and year
// forward while it reads day cells like "4 Sat".
var (
	monthHeaderPattern   = regexp.MustCompile(`^(January|February|March|April|May|June|July|August|September|October|November|December)\s+(\d{4})$`)
	dayCellPattern       = regexp.MustCompile(`^(\d{1,2})\s+\w+`)
	opponentScorePattern = regexp.MustCompile(`^-\s*(\d+)$`)
	recordPattern        = regexp.MustCompile(`Record: ([\d-]+).*?\(([\d\-\s]+)\s+([A-Z]+)\)`)
	footnoteRefPattern   = regexp.MustCompile(`(\d+)`)
)

// TeamSchedule scrapes a team's CHN schedule page. The team name must
// resolve through the directory for the given gender.
func (c *Client) TeamSchedule(ctx context.Context, teamName string, gender hockey.Gender) (*hockey.TeamSchedule, error) {
	info, err := directory.Lookup(teamName, gender)
	if err != nil {
		return nil, err
	}

	html, err := c.fetcher.Get(ctx, info.URL)
	if err != nil {
		return nil, fmt.Errorf("fetching %s schedule: %w", teamName, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing %s schedule page: %w", teamName, err)
	}

	displayName := strings.TrimSpace(doc.Find("h1").First().Text())
	if displayName == "" {
		displayName = teamName
	}

	record := hockey.DefaultRecord()
	header := doc.Find("h2").First().Text()
	if m := recordPattern.FindStringSubmatch(header); m != nil {
		record.Overall = m[1]
		record.Conference = strings.TrimSpace(m[2])
	}

	var games []hockey.ScheduleGame
	var currentMonth time.Month
	var currentYear int

	doc.Find("table tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() == 0 {
			return
		}

		rowText := strings.TrimSpace(row.Text())
		if m := monthHeaderPattern.FindStringSubmatch(rowText); m != nil {
			month, _ := time.Parse("January", m[1])
			currentMonth = month.Month()
			currentYear, _ = strconv.Atoi(m[2])
			return
		}

		if cells.Length() < 9 || currentMonth == 0 || currentYear == 0 {
			return
		}

		dm := dayCellPattern.FindStringSubmatch(strings.TrimSpace(cells.Eq(0).Text()))
		if dm == nil {
			return
		}
		day, _ := strconv.Atoi(dm[1])
		date := time.Date(currentYear, currentMonth, day, 0, 0, 0, 0, time.UTC)

		// Completed games carry W/L in one cell, the team's score in the
		// next, and "- N" with the opponent's score after that.
		var result *hockey.GameResult
		status := hockey.StatusScheduled
		resultCell := strings.TrimSpace(cells.Eq(2).Text())
		teamScoreCell := strings.TrimSpace(cells.Eq(3).Text())
		if (resultCell == "W" || resultCell == "L") && teamScoreCell != "" {
			if m := opponentScorePattern.FindStringSubmatch(strings.TrimSpace(cells.Eq(4).Text())); m != nil {
				teamScore, err1 := strconv.Atoi(teamScoreCell)
				oppScore, err2 := strconv.Atoi(m[1])
				if err1 == nil && err2 == nil {
					status = hockey.StatusCompleted
					result = &hockey.GameResult{
						Score: fmt.Sprintf("%d-%d", teamScore, oppScore),
						Won:   resultCell == "W",
					}
				}
			}
		}

		location := strings.TrimSpace(cells.Eq(6).Text())
		isHome := true
		venue := ""
		switch location {
		case "at":
			isHome = false
		case "vs.":
			// CHN marks neutral-site games "vs."; neither team hosts.
			isHome = false
			venue = "Neutral Site"
		}

		opponent := strings.TrimSpace(cells.Eq(7).Text())
		conference := !strings.Contains(opponent, "(nc)")
		exhibition := strings.Contains(opponent, "(ex)")
		opponent = strings.ReplaceAll(opponent, "(nc)", "")
		opponent = strings.ReplaceAll(opponent, "(ex)", "")
		opponent = strings.TrimSpace(opponent)
		if opponent == "" {
			return
		}

		game := hockey.ScheduleGame{
			ID:         hockey.GameID(displayName, date, opponent),
			Date:       date,
			Opponent:   opponent,
			IsHome:     isHome,
			Venue:      venue,
			Time:       strings.TrimSpace(cells.Eq(10).Text()),
			Conference: conference,
			Exhibition: exhibition,
			Status:     status,
			Result:     result,
		}

		// Footnote references in the second cell point at tournament
		// names listed under the table.
		if m := footnoteRefPattern.FindStringSubmatch(cells.Eq(1).Text()); m != nil {
			game.TournamentInfo = findFootnote(doc, m[1])
		}

		games = append(games, game)
	})

	hockey.SortGames(games)

	return &hockey.TeamSchedule{
		TeamName:    displayName,
		Gender:      gender,
		Season:      c.season.Label(),
		Record:      record,
		Games:       games,
		LastUpdated: c.now(),
	}, nil
}

// findFootnote locates the tournament footnote for a reference number: a
// short element whose text starts with the number followed by a space.
func findFootnote(doc *goquery.Document, num string) string {
	prefix := num + " "
	var footnote string
	doc.Find("div, p, span, li").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := strings.TrimSpace(sel.Text())
		if strings.HasPrefix(text, prefix) && len(text) < 100 {
			footnote = text
			return false
		}
		return true
	})
	return footnote
}
