package scraper

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/stefanlut/jacha/internal/hockey"
)

// Ferris State's schedule puts each field in its own element: a date like
// "Oct 03 (Fri)", then a time like "6:07 PM EDT", then an opponent like
// "AT Miami (Ohio)". The parser walks candidate elements carrying date and
// time state forward until an opponent element closes out a game.
var (
	ferrisDatePattern     = regexp.MustCompile(`^([A-Z][a-z]{2})\s+(\d{1,2})\s+\([A-Z][a-z]{2}\)$`)
	ferrisTimePattern     = regexp.MustCompile(`^\d{1,2}:\d{2}\s+(?:AM|PM)\s+(?:EDT|EST)$`)
	ferrisOpponentPattern = regexp.MustCompile(`^(AT|VS)\s+(.+?)(?:\s*[#*%].*)?$`)
	ferrisClockPattern    = regexp.MustCompile(`^(\d{1,2}):(\d{2})\s+(AM|PM)`)
)

func (s *Scraper) parseFerris(doc *goquery.Document, teamName string) *hockey.TeamSchedule {
	season := extractSeason(doc, s.season)
	if season == "" {
		return s.offseasonSchedule(doc, teamName)
	}

	var games []hockey.ScheduleGame
	var currentDate, currentTime string

	doc.Find("div, li, article").Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		lower := strings.ToLower(text)
		if !containsAny(lower, "vs", "at", "@") {
			return
		}

		if ferrisDatePattern.MatchString(text) {
			currentDate = text
			return
		}
		if ferrisTimePattern.MatchString(text) {
			currentTime = text
			return
		}

		m := ferrisOpponentPattern.FindStringSubmatch(text)
		if m == nil || currentDate == "" {
			return
		}

		date, ok := s.parseFerrisDate(currentDate, currentTime)
		if !ok {
			return
		}
		opponent := strings.TrimSpace(m[2])

		games = append(games, hockey.ScheduleGame{
			ID:         hockey.GameID(teamName, date, opponent),
			Date:       date,
			Opponent:   opponent,
			IsHome:     m[1] == "VS",
			Conference: strings.Contains(text, "*") || strings.Contains(text, "CCHA"),
			Exhibition: strings.Contains(text, "#"),
			Status:     hockey.StatusScheduled,
		})

		currentDate = ""
		currentTime = ""
	})

	return &hockey.TeamSchedule{
		TeamName:    teamName,
		Season:      season,
		Record:      extractRecord(doc.Text()),
		Games:       games,
		LastUpdated: s.now(),
	}
}

// parseFerrisDate combines a date element and an optional time element into
// a game timestamp. Games without a time default to 7 PM.
func (s *Scraper) parseFerrisDate(dateStr, timeStr string) (time.Time, bool) {
	m := ferrisDatePattern.FindStringSubmatch(dateStr)
	if m == nil {
		return time.Time{}, false
	}
	month, ok := monthByAbbr[m[1]]
	if !ok {
		return time.Time{}, false
	}
	day, _ := strconv.Atoi(m[2])

	hour, minute := 19, 0
	if tm := ferrisClockPattern.FindStringSubmatch(timeStr); tm != nil {
		hour, _ = strconv.Atoi(tm[1])
		minute, _ = strconv.Atoi(tm[2])
		if tm[3] == "PM" && hour != 12 {
			hour += 12
		} else if tm[3] == "AM" && hour == 12 {
			hour = 0
		}
	}

	return time.Date(s.season.GameYear(month), month, day, hour, minute, 0, 0, time.UTC), true
}
