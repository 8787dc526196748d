package scraper

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/stefanlut/jacha/internal/hockey"
)

// Sidearm pages render each game as a run of text anchored by a date like
// "Oct 4 (Sat)". Splitting the page text on those anchors keeps each game's
// content isolated, so an opponent regex can't reach across into the next
// game's block.
var (
	sidearmDatePattern = regexp.MustCompile(`[A-Z][a-z]{2}\s+\d{1,2}\s+\([A-Z][a-z]{2}\)`)
	sidearmDayPattern  = regexp.MustCompile(`([A-Z][a-z]{2})\s+(\d{1,2})`)
	sidearmStarVsAt    = regexp.MustCompile(`(?i)\*\s+(vs|at)\s+(.+?)(?:\s*(?:ESPN|Watch|Listen|Tickets|Game)|\s*$)`)
	sidearmPlainVsAt   = regexp.MustCompile(`(?i)\s+(vs|at)\s+(.+?)(?:\s*(?:ESPN|Watch|Listen|Tickets|Game)|\s*$)`)
)

func (s *Scraper) parseSidearm(doc *goquery.Document, teamName string) *hockey.TeamSchedule {
	season := extractSeason(doc, s.season)
	if season == "" {
		return s.offseasonSchedule(doc, teamName)
	}

	text := collapseWhitespace(doc.Text())

	var games []hockey.ScheduleGame
	anchors := sidearmDatePattern.FindAllStringIndex(text, -1)
	for i, anchor := range anchors {
		datePart := text[anchor[0]:anchor[1]]
		end := len(text)
		if i+1 < len(anchors) {
			end = anchors[i+1][0]
		}
		section := text[anchor[1]:end]

		// Conference markers like "ESPN+HEA *" put a star before the
		// vs/at token; try that shape first.
		m := sidearmStarVsAt.FindStringSubmatch(section)
		if m == nil {
			m = sidearmPlainVsAt.FindStringSubmatch(section)
		}
		if m == nil {
			continue
		}

		if game, ok := s.buildSidearmGame(teamName, datePart, m[1], m[2], section); ok {
			games = append(games, game)
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

func (s *Scraper) buildSidearmGame(teamName, datePart, homeAway, rawOpponent, section string) (hockey.ScheduleGame, bool) {
	dm := sidearmDayPattern.FindStringSubmatch(datePart)
	if dm == nil {
		return hockey.ScheduleGame{}, false
	}
	month, ok := monthByAbbr[dm[1]]
	if !ok {
		return hockey.ScheduleGame{}, false
	}
	day, _ := strconv.Atoi(dm[2])
	date := s.season.GameDate(month, day)

	opponent, ok := NormalizeOpponent(rawOpponent)
	if !ok {
		return hockey.ScheduleGame{}, false
	}

	isHome := strings.EqualFold(homeAway, "vs")

	game := hockey.ScheduleGame{
		ID:         hockey.GameID(teamName, date, opponent),
		Date:       date,
		Opponent:   opponent,
		IsHome:     isHome,
		Conference: hasConferenceMarker(section),
		Exhibition: strings.Contains(rawOpponent, "(exh.)"),
		Status:     hockey.StatusScheduled,
	}

	if strings.Contains(section, "ESPN+") {
		game.BroadcastInfo = &hockey.BroadcastInfo{Network: "ESPN+"}
	}

	// Agganis is the one venue the page text identifies reliably.
	if isHome && strings.Contains(section, "Agganis") {
		game.Venue = "Agganis Arena"
		game.City = "Boston"
		game.State = "MA"
	}

	return game, true
}
