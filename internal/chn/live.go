package chn

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/stefanlut/jacha/internal/hockey"
)

// The live scoreboard renders each game as a pair of rows anchored by team
// logo images: the away row holds the game clock, the home row follows it.
// Men's and women's pages use different cell layouts, detected per row.
var (
	livePeriodPattern    = regexp.MustCompile(`(\d+)\s*Per\.\s*(\d+)\s*(\d+):(\d+)`)
	scheduledTimePattern = regexp.MustCompile(`\d+:\d+\s*(ET|CT|MT|PT|AT)`)
)

// LiveScoreboard scrapes today's games with in-progress scores and clocks.
func (c *Client) LiveScoreboard(ctx context.Context, gender hockey.Gender) (*hockey.Scoreboard, error) {
	html, err := c.fetcher.Get(ctx, liveScoreboardURL(gender))
	if err != nil {
		return nil, fmt.Errorf("fetching %s live scoreboard: %w", gender, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing %s live scoreboard page: %w", gender, err)
	}

	today := c.now()
	games := []hockey.ScoreboardGame{}

	doc.Find(`img[alt*="away logo"]`).Each(func(_ int, awayImg *goquery.Selection) {
		awayRow := awayImg.Closest("tr")
		homeRow := awayRow.NextFiltered("tr")

		awayCells := awayRow.Find("td")
		homeCells := homeRow.Find("td")

		// Women's rows are logo | team | score; men's are
		// logo | empty | team | score.
		womens := awayCells.Length() >= 3 &&
			strings.TrimSpace(awayCells.Eq(1).Text()) != "" &&
			isInt(awayCells.Eq(2).Text())

		var awayTeam, homeTeam, awayScoreText, homeScoreText string
		if womens {
			awayTeam = strings.TrimSpace(awayCells.Eq(1).Text())
			homeTeam = strings.TrimSpace(homeCells.Eq(1).Text())
			awayScoreText = strings.TrimSpace(awayCells.Eq(2).Text())
			homeScoreText = strings.TrimSpace(homeCells.Eq(2).Text())
		} else {
			awayTeam = strings.TrimSpace(awayCells.Eq(2).Text())
			homeTeam = strings.TrimSpace(homeCells.Eq(2).Text())
			awayScoreText = strings.TrimSpace(awayCells.Eq(3).Text())
			homeScoreText = strings.TrimSpace(homeCells.Eq(3).Text())
		}

		if awayTeam == "" || homeTeam == "" {
			return
		}

		gameTime := strings.TrimSpace(awayRow.Find(".gamestatus").Text())

		game := hockey.ScoreboardGame{
			ID:         hockey.ScoreboardGameID(awayTeam, homeTeam, today),
			Date:       today,
			AwayTeam:   awayTeam,
			HomeTeam:   homeTeam,
			Conference: "Non-Conference",
			Status:     hockey.StatusScheduled,
		}

		awayScore, awayErr := strconv.Atoi(awayScoreText)
		homeScore, homeErr := strconv.Atoi(homeScoreText)
		if awayScoreText != "" && homeScoreText != "" && awayErr == nil && homeErr == nil {
			game.Result = &hockey.ScoreboardResult{
				AwayScore: awayScore,
				HomeScore: homeScore,
			}
			if strings.Contains(gameTime, "Per.") || strings.Contains(gameTime, "Period") {
				game.Status = hockey.StatusInProgress
				if m := livePeriodPattern.FindStringSubmatch(gameTime); m != nil {
					game.LiveData = &hockey.LiveData{
						Period:        "Period " + m[1],
						TimeRemaining: m[3] + ":" + m[4],
					}
				}
				if strings.Contains(gameTime, "Intermission") {
					if game.LiveData == nil {
						game.LiveData = &hockey.LiveData{}
					}
					game.LiveData.Intermission = true
				}
			} else {
				game.Status = hockey.StatusCompleted
			}
		} else if scheduledTimePattern.MatchString(gameTime) {
			game.Time = gameTime
		}

		// Games are grouped into conference sections with an h2 header;
		// the header also flags exhibition slates.
		confGroup := awayRow.Closest(".confGroup")
		if confGroup.Length() > 0 {
			header := strings.TrimSpace(confGroup.Find("h2").Text())
			if strings.Contains(strings.ToLower(header), "exhibition") {
				game.Exhibition = true
			}
			for _, conf := range []string{"Hockey East", "NCHC", "Big Ten", "CCHA", "ECAC", "Atlantic Hockey", "WCHA", "AHA", "NEWHA"} {
				if strings.Contains(header, conf) {
					game.Conference = conf
					break
				}
			}
		}

		games = append(games, game)
	})

	return &hockey.Scoreboard{
		Date:        today,
		Gender:      gender,
		Games:       games,
		LastUpdated: c.now(),
	}, nil
}

func isInt(s string) bool {
	_, err := strconv.Atoi(strings.TrimSpace(s))
	return err == nil
}
