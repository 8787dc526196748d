package directory

import (
	"fmt"
	"os"
	"strings"
	"sync"
)

// Schedule-site URLs for the generic schools scraper come from a CSV of
// "Team Name,https://..." pairs. The file is loaded once on first use and
// treated as read-only for the life of the process.

var (
	scheduleURLsOnce sync.Once
	scheduleURLs     map[string]string
	scheduleURLsErr  error
	scheduleURLsPath = "configs/program_schedule_sites.csv"
)

// SetScheduleURLsPath overrides the CSV location. Must be called before the
// first lookup; later calls have no effect.
func SetScheduleURLsPath(path string) {
	scheduleURLsPath = path
}

// ParseScheduleURLs parses team→URL pairs from CSV text. Blank lines and
// lines starting with "//" or "#" are ignored; fields are trimmed. A line
// without a comma is skipped rather than treated as an error, since the
// source file is hand-maintained.
func ParseScheduleURLs(text string) map[string]string {
	urls := make(map[string]string)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "//") || strings.HasPrefix(line, "#") {
			continue
		}
		name, url, ok := strings.Cut(line, ",")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		url = strings.TrimSpace(url)
		if name != "" && url != "" {
			urls[name] = url
		}
	}
	return urls
}

func loadScheduleURLs() {
	data, err := os.ReadFile(scheduleURLsPath)
	if err != nil {
		scheduleURLsErr = fmt.Errorf("reading schedule URL mapping: %w", err)
		scheduleURLs = map[string]string{}
		return
	}
	scheduleURLs = ParseScheduleURLs(string(data))
}

// ScheduleURL returns the athletics-site schedule URL for a team, or ""
// when the team has no mapping.
func ScheduleURL(teamName string) (string, error) {
	scheduleURLsOnce.Do(loadScheduleURLs)
	if scheduleURLsErr != nil {
		return "", scheduleURLsErr
	}
	return scheduleURLs[teamName], nil
}

// ScheduleURLTeams returns the sorted team names that have a schedule URL
// mapping, for use in not-found hints.
func ScheduleURLTeams() ([]string, error) {
	scheduleURLsOnce.Do(loadScheduleURLs)
	if scheduleURLsErr != nil {
		return nil, scheduleURLsErr
	}
	names := make([]string, 0, len(scheduleURLs))
	for name := range scheduleURLs {
		names = append(names, name)
	}
	c := collator()
	c.SortStrings(names)
	return names, nil
}
