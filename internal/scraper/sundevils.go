package scraper

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/stefanlut/jacha/internal/hockey"
)

// Arizona State's site compresses everything: dates render as "Oct3(Fri)"
// with no spaces, and the games live inside a "Schedule Events" section.
// Date tokens and vs/at tokens are matched separately and paired by
// position.
var (
	sunDevilsVsAtPattern = regexp.MustCompile(`(vs\.|at)\s+(.+?)(?:Event details|Show Event Info|Season opener|\s+[A-Z][a-z]{2}\d|\s*$)`)
	sunDevilsDatePattern = regexp.MustCompile(`([A-Z][a-z]{2})(\d{1,2})\(([A-Z][a-z]{2})\)`)
	sunDevilsNamePattern = regexp.MustCompile(`(vs\.|at)\s+([A-Za-z\s&().'-]+?)(?:Event|Show|Season|$)`)
)

// Trailing content the opponent capture picks up before the next token.
var sunDevilsTrimPatterns = []*regexp.Regexp{
	regexp.MustCompile(`Event details.*$`),
	regexp.MustCompile(`Show Event Info.*$`),
	regexp.MustCompile(`Season opener.*$`),
	regexp.MustCompile(`(NCHC|HEA|ECAC|CCHA|Big Ten|Atlantic Hockey)$`),
}

const sunDevilsWindow = 3000

func (s *Scraper) parseSunDevils(doc *goquery.Document, teamName string) *hockey.TeamSchedule {
	season := extractSeason(doc, s.season)
	if season == "" {
		return s.offseasonSchedule(doc, teamName)
	}

	text := doc.Text()
	relevant := text
	if idx := strings.Index(text, "Schedule Events"); idx != -1 {
		end := idx + sunDevilsWindow
		if end > len(text) {
			end = len(text)
		}
		relevant = text[idx:end]
	}

	var games []hockey.ScheduleGame

	vsAtMatches := sunDevilsVsAtPattern.FindAllString(relevant, -1)
	dateMatches := sunDevilsDatePattern.FindAllStringSubmatch(relevant, -1)

	// More vs/at tokens than dates means the capture drifted outside the
	// schedule section; pairing by position would misattribute dates.
	if len(vsAtMatches) > 0 && len(vsAtMatches) <= len(dateMatches) {
		for i, vsAt := range vsAtMatches {
			nm := sunDevilsNamePattern.FindStringSubmatch(vsAt)
			if nm == nil {
				continue
			}
			homeAway, rawOpponent := nm[1], nm[2]

			month, ok := monthByAbbr[dateMatches[i][1]]
			if !ok {
				continue
			}
			day, _ := strconv.Atoi(dateMatches[i][2])

			opponent := strings.TrimSpace(rawOpponent)
			for _, pattern := range sunDevilsTrimPatterns {
				opponent = pattern.ReplaceAllString(opponent, "")
			}
			opponent = collapseWhitespace(opponent)
			if len(opponent) < 2 {
				continue
			}

			date := s.season.GameDate(month, day)
			isHome := strings.Contains(homeAway, "vs")

			if sunDevilsDuplicate(games, opponent, date, isHome) {
				continue
			}

			games = append(games, hockey.ScheduleGame{
				ID:       hockey.GameID(teamName, date, opponent),
				Date:     date,
				Opponent: opponent,
				IsHome:   isHome,
				Status:   hockey.StatusScheduled,
			})
		}
	}

	hockey.SortGames(games)

	return &hockey.TeamSchedule{
		TeamName:    teamName,
		Season:      season,
		Record:      extractRecord(text),
		Games:       games,
		LastUpdated: s.now(),
	}
}

func sunDevilsDuplicate(games []hockey.ScheduleGame, opponent string, date time.Time, isHome bool) bool {
	for _, g := range games {
		if g.Opponent == opponent && g.Date.Equal(date) && g.IsHome == isHome {
			return true
		}
	}
	return false
}
