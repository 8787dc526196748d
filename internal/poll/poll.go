// Package poll scrapes the USCHO.com weekly Division I polls. The rankings
// page embeds its data as an HTML-entity-escaped JSON array inside a script
// blob, so extraction is regex-bounded entity decoding followed by a balanced
// brace scan rather than DOM parsing.
package poll

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/stefanlut/jacha/internal/hockey"
	"github.com/stefanlut/jacha/internal/logger"
)

const (
	menPollURL   = "https://www.uscho.com/rankings/d-i-mens-poll"
	womenPollURL = "https://www.uscho.com/rankings/d-i-womens-poll"
)

// ErrPollDataMissing is returned when the escaped data array cannot be found
// in the page, or when no team object inside it survives parsing.
var ErrPollDataMissing = errors.New("poll data not found in page")

var (
	// The team array appears as &quot;data&quot;:[{&quot;...&quot;...}].
	dataArrayPattern = regexp.MustCompile(`&quot;data&quot;:\[(\{&quot;[^&]*&quot;[^\]]+)\]`)
	othersPattern    = regexp.MustCompile(`&quot;other&quot;:&quot;([^&]+)&quot;`)
)

// Fetcher retrieves raw HTML for a poll page.
type Fetcher interface {
	Get(ctx context.Context, url string) (string, error)
}

// Client scrapes USCHO poll pages.
type Client struct {
	fetcher Fetcher
	now     func() time.Time
}

// NewClient builds a Client around the given fetcher.
func NewClient(fetcher Fetcher) *Client {
	return &Client{fetcher: fetcher, now: time.Now}
}

func pollURL(gender hockey.Gender) string {
	if gender == hockey.GenderWomen {
		return womenPollURL
	}
	return menPollURL
}

// Scrape fetches and parses the current poll for the given gender.
func (c *Client) Scrape(ctx context.Context, gender hockey.Gender) (*hockey.Poll, error) {
	html, err := c.fetcher.Get(ctx, pollURL(gender))
	if err != nil {
		return nil, fmt.Errorf("fetching %s poll: %w", gender, err)
	}

	teams, err := parseTeams(html)
	if err != nil {
		return nil, err
	}

	return &hockey.Poll{
		Date:                 c.now().Format("January 2, 2006"),
		Teams:                teams,
		OthersReceivingVotes: parseOthersReceivingVotes(html),
	}, nil
}

// pollEntry mirrors the field names USCHO embeds. prev_rnk is absent or zero
// for teams unranked the previous week.
type pollEntry struct {
	Rank      int    `json:"rnk"`
	ShortName string `json:"shortname"`
	Record    string `json:"record"`
	Points    int    `json:"pts"`
	FirstPV   int    `json:"first_pv"`
	PrevRank  *int   `json:"prev_rnk"`
}

// parseTeams extracts the escaped data array and scans it object by object.
// A malformed object is skipped so one bad entry cannot take down the whole
// poll.
func parseTeams(html string) ([]hockey.PollTeam, error) {
	m := dataArrayPattern.FindStringSubmatch(html)
	if m == nil {
		return nil, ErrPollDataMissing
	}

	decoded := decodeEntities(m[1])

	var teams []hockey.PollTeam
	depth := 0
	var current strings.Builder
	for _, ch := range decoded {
		if ch == '{' {
			depth++
		}
		if ch == '}' {
			depth--
			current.WriteRune(ch)
			if depth == 0 && strings.TrimSpace(current.String()) != "" {
				if team, ok := parseTeamObject(current.String()); ok {
					teams = append(teams, team)
				}
				current.Reset()
			}
			continue
		}
		if depth > 0 {
			current.WriteRune(ch)
		}
	}

	if len(teams) == 0 {
		return nil, fmt.Errorf("%w: no team objects recovered", ErrPollDataMissing)
	}
	return teams, nil
}

func parseTeamObject(raw string) (hockey.PollTeam, bool) {
	var entry pollEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		logger.Warn("skipping malformed poll team object", logger.Fields{
			"error": err.Error(),
		})
		logger.IncrCounter("poll.team_parse_failures")
		return hockey.PollTeam{}, false
	}

	team := hockey.PollTeam{
		Rank:            entry.Rank,
		Team:            entry.ShortName,
		FirstPlaceVotes: entry.FirstPV,
		Record:          entry.Record,
		Points:          entry.Points,
	}
	if entry.PrevRank != nil && *entry.PrevRank > 0 {
		team.LastWeekRank = entry.PrevRank
	}
	return team, true
}

// parseOthersReceivingVotes pulls the free-text "others receiving votes"
// line. Absence is not an error; early-season polls sometimes omit it.
func parseOthersReceivingVotes(html string) string {
	if m := othersPattern.FindStringSubmatch(html); m != nil {
		return decodeEntities(m[1])
	}
	return ""
}

func decodeEntities(s string) string {
	s = strings.ReplaceAll(s, "&quot;", `"`)
	s = strings.ReplaceAll(s, "&#039;", "'")
	return s
}
