package scraper

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/stefanlut/jacha/internal/directory"
	"github.com/stefanlut/jacha/internal/hockey"
)

// Big Ten schools render schedules as plain text runs. The parser windows
// the page text around a schedule keyword, then matches date-plus-vs/at
// prefixes and reads the opponent as the text up to the next match. Three
// prefix shapes cover the layouts seen in the wild; the first shape that
// yields games wins.
var bigTenPrefixPatterns = []*regexp.Regexp{
	// "Oct 4 vs Michigan State"
	regexp.MustCompile(`([A-Z][a-z]{2})\s+(\d{1,2})\s+(vs\.?|at|@)\s+`),
	// "Oct4 vs Michigan State"
	regexp.MustCompile(`([A-Z][a-z]{2})(\d{1,2})\s+(vs\.?|at|@)\s+`),
	// "Sat, Oct 4 vs Michigan State"
	regexp.MustCompile(`[A-Z][a-z]{2},?\s+([A-Z][a-z]{2})\s+(\d{1,2})\s+(vs\.?|at|@)\s+`),
}

var (
	bigTenNextDatePattern = regexp.MustCompile(`\s+[A-Z][a-z]{2},?\s*\d.*$`)
	bigTenJunkPattern     = regexp.MustCompile(`[^\w\s&().'-]`)
)

const bigTenWindow = 2000

func (s *Scraper) parseBigTen(doc *goquery.Document, teamName string) *hockey.TeamSchedule {
	season := extractSeason(doc, s.season)
	if season == "" {
		return s.offseasonSchedule(doc, teamName)
	}

	text := collapseWhitespace(doc.Text())
	relevant := text
	lower := strings.ToLower(text)
	for _, keyword := range []string{"schedule", "games", "opponents"} {
		idx := strings.Index(lower, keyword)
		if idx == -1 {
			continue
		}
		end := idx + bigTenWindow
		if end > len(text) {
			end = len(text)
		}
		relevant = text[idx:end]
		break
	}

	var games []hockey.ScheduleGame

	for _, pattern := range bigTenPrefixPatterns {
		matches := pattern.FindAllStringSubmatchIndex(relevant, -1)
		for i, m := range matches {
			month, ok := monthByAbbr[relevant[m[2]:m[3]]]
			if !ok {
				continue
			}
			day, _ := strconv.Atoi(relevant[m[4]:m[5]])
			homeAway := relevant[m[6]:m[7]]

			end := len(relevant)
			if i+1 < len(matches) {
				end = matches[i+1][0]
			}
			rawOpponent := relevant[m[1]:end]
			rawOpponent = bigTenNextDatePattern.ReplaceAllString(rawOpponent, "")
			opponent := collapseWhitespace(bigTenJunkPattern.ReplaceAllString(rawOpponent, ""))
			if len(opponent) < 2 {
				continue
			}

			date := s.season.GameDate(month, day)

			games = append(games, hockey.ScheduleGame{
				ID:         hockey.GameID(teamName, date, opponent),
				Date:       date,
				Opponent:   opponent,
				IsHome:     strings.Contains(strings.ToLower(homeAway), "vs"),
				Conference: directory.SameConference(teamName, opponent, hockey.GenderMen),
				Status:     hockey.StatusScheduled,
			})
		}

		if len(games) > 0 {
			break
		}
	}

	games = hockey.Dedupe(games)
	hockey.SortGames(games)

	return &hockey.TeamSchedule{
		TeamName:    teamName,
		Season:      season,
		Record:      extractRecord(doc.Text()),
		Games:       games,
		LastUpdated: s.now(),
	}
}
