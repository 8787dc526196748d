package scraper

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/stefanlut/jacha/internal/hockey"
)

var monthByAbbr = map[string]time.Month{
	"Jan": time.January, "Feb": time.February, "Mar": time.March,
	"Apr": time.April, "May": time.May, "Jun": time.June,
	"Jul": time.July, "Aug": time.August, "Sep": time.September,
	"Oct": time.October, "Nov": time.November, "Dec": time.December,
}

// Season references adjacent to the words "season" or "schedule" are the
// strongest signal; bare "YYYY-YY" runs in titles and headings are a
// fallback because they also show up in dates and scores.
var (
	seasonLabeledPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d{4}[-/]\d{2})\s*(?:season|schedule)`),
		regexp.MustCompile(`(?i)(?:season|schedule)\s*(\d{4}[-/]\d{2})`),
	}
	seasonStandalonePattern = regexp.MustCompile(`(?:^|\s)(\d{4}-\d{2})(?:\s|$)`)
)

// extractSeason determines which season a schedule page is showing. It
// returns the empty string when the page looks stale or carries no season
// evidence at all; callers translate that into the offseason sentinel.
func extractSeason(doc *goquery.Document, target hockey.Season) string {
	title := doc.Find("title").Text()
	headings := doc.Find("h1, h2, h3").Text()

	var found []string
	for _, pattern := range seasonLabeledPatterns {
		for _, m := range pattern.FindAllStringSubmatch(title, -1) {
			found = append(found, strings.Replace(m[1], "/", "-", 1))
		}
		for _, m := range pattern.FindAllStringSubmatch(headings, -1) {
			found = append(found, strings.Replace(m[1], "/", "-", 1))
		}
	}

	if len(found) == 0 {
		for _, m := range seasonStandalonePattern.FindAllStringSubmatch(title+" "+headings, -1) {
			if _, ok := hockey.ParseSeasonLabel(m[1]); ok {
				found = append(found, m[1])
			}
		}
	}

	seen := make(map[string]bool)
	var valid []string
	for _, label := range found {
		if seen[label] {
			continue
		}
		seen[label] = true
		if target.ValidLabel(label) {
			valid = append(valid, label)
		}
	}

	targetLabel := target.Label()
	for _, label := range valid {
		if label == targetLabel {
			return targetLabel
		}
	}
	if len(valid) > 0 {
		sort.Strings(valid)
		return valid[0]
	}

	// Seasons were mentioned but all stale or malformed: the page is
	// showing last year's schedule.
	if len(found) > 0 {
		return ""
	}

	// No season evidence at all. Trust the page as current only if it at
	// least mentions one of the target season's calendar years.
	text := doc.Text()
	if strings.Contains(text, strconv.Itoa(target.StartYear)) ||
		strings.Contains(text, strconv.Itoa(target.StartYear+1)) {
		return targetLabel
	}
	return ""
}

var (
	recordOverallPattern = regexp.MustCompile(`Overall(\d+-\d+-\d+)`)
	recordConfPattern    = regexp.MustCompile(`Conf(\d+-\d+-\d+)`)
	recordHomePattern    = regexp.MustCompile(`Home(\d+-\d+-\d+)`)
	recordAwayPattern    = regexp.MustCompile(`Away(\d+-\d+-\d+)`)
)

// extractRecord pulls the labeled win-loss-tie splits Sidearm pages render
// as "Overall6-3-1 Conf4-2-0 ...". Splits that don't appear stay "0-0-0".
func extractRecord(text string) hockey.Record {
	record := hockey.DefaultRecord()
	if m := recordOverallPattern.FindStringSubmatch(text); m != nil {
		record.Overall = m[1]
	}
	if m := recordConfPattern.FindStringSubmatch(text); m != nil {
		record.Conference = m[1]
	}
	if m := recordHomePattern.FindStringSubmatch(text); m != nil {
		record.Home = m[1]
	}
	if m := recordAwayPattern.FindStringSubmatch(text); m != nil {
		record.Away = m[1]
	}
	return record
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// conferenceAbbrevs are the markers schedule pages attach to league games.
var conferenceAbbrevs = []string{"HEA", "NCHC", "B1G", "ECAC", "CCHA"}

func hasConferenceMarker(s string) bool {
	return containsAny(s, conferenceAbbrevs...)
}
