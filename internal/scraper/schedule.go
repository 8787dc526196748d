// Package scraper turns athletics-site schedule pages into normalized team
// schedules. College programs publish schedules on a handful of website
// platforms with wildly different markup, so the engine detects the likely
// format first and falls back through every parser when detection is
// uncertain. A parse only counts as a success when it yields a
// current-or-future season with at least one game; anything else is treated
// as stale or offseason content.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/stefanlut/jacha/internal/hockey"
	"github.com/stefanlut/jacha/internal/logger"
)

// ErrNoCurrentSchedule means the page was fetched and parsed but no parser
// produced a current-season schedule with games. Callers usually surface this
// as an offseason condition rather than a failure.
var ErrNoCurrentSchedule = errors.New("no current-season schedule found")

// Fetcher retrieves the raw HTML for a schedule page.
type Fetcher interface {
	Get(ctx context.Context, url string) (string, error)
}

// Scraper parses schedule pages against a target season.
type Scraper struct {
	fetcher Fetcher
	season  hockey.Season
	now     func() time.Time
}

// New builds a Scraper validating against the given season.
func New(fetcher Fetcher, season hockey.Season) *Scraper {
	return &Scraper{
		fetcher: fetcher,
		season:  season,
		now:     time.Now,
	}
}

// ScrapeSchedule fetches url and extracts teamName's schedule. It returns
// ErrNoCurrentSchedule when every parser comes up empty or stale.
func (s *Scraper) ScrapeSchedule(ctx context.Context, url, teamName string) (*hockey.TeamSchedule, error) {
	html, err := s.fetcher.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("scraping %s schedule: %w", teamName, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing %s schedule page: %w", teamName, err)
	}

	det := detectFormat(url, teamName, doc)
	logger.Debug("detected schedule format", logger.Fields{
		"team":       teamName,
		"format":     string(det.format),
		"confidence": det.confidence,
	})

	schedule := s.runParser(det.format, doc, teamName)
	if s.accepted(schedule) {
		schedule.Gender = hockey.GenderMen
		return schedule, nil
	}

	// Detection was a guess; let every parser have a shot at the page.
	if det.confidence < 0.8 {
		if schedule = s.tryAllParsers(doc, teamName); schedule != nil {
			schedule.Gender = hockey.GenderMen
			return schedule, nil
		}
	}

	logger.IncrCounter("scrape.no_schedule")
	return nil, fmt.Errorf("%s: %w", teamName, ErrNoCurrentSchedule)
}

func (s *Scraper) runParser(format Format, doc *goquery.Document, teamName string) *hockey.TeamSchedule {
	switch format {
	case FormatSunDevils:
		return s.parseSunDevils(doc, teamName)
	case FormatFerris:
		return s.parseFerris(doc, teamName)
	case FormatSidearm:
		return s.parseSidearm(doc, teamName)
	case FormatBigTen:
		return s.parseBigTen(doc, teamName)
	default:
		return s.parseGeneric(doc, teamName)
	}
}

// accepted is the single acceptance rule for parser output: a schedule counts
// only when its season is current or future and it actually has games. A
// valid season with zero games is indistinguishable from a platform page
// whose games the parser failed to see, so it is rejected and the caller
// falls back.
func (s *Scraper) accepted(schedule *hockey.TeamSchedule) bool {
	if schedule == nil {
		return false
	}
	if !s.season.ValidLabel(schedule.Season) {
		return false
	}
	return len(schedule.Games) > 0
}

var fallbackOrder = []Format{
	FormatSidearm,
	FormatFerris,
	FormatSunDevils,
	FormatBigTen,
	FormatGeneric,
}

func (s *Scraper) tryAllParsers(doc *goquery.Document, teamName string) *hockey.TeamSchedule {
	for _, format := range fallbackOrder {
		schedule := s.runParser(format, doc, teamName)
		if s.accepted(schedule) {
			logger.Info("fallback parser succeeded", logger.Fields{
				"team":   teamName,
				"format": string(format),
				"games":  len(schedule.Games),
			})
			logger.IncrCounter("scrape.fallback_success")
			return schedule
		}
	}
	return nil
}

// offseasonSchedule is what a parser returns when it cannot confirm the page
// shows the target season. Zero games plus the sentinel season keeps it from
// ever passing acceptance.
func (s *Scraper) offseasonSchedule(doc *goquery.Document, teamName string) *hockey.TeamSchedule {
	return &hockey.TeamSchedule{
		TeamName:    teamName,
		Season:      hockey.SeasonOffseason,
		Record:      extractRecord(doc.Text()),
		Games:       []hockey.ScheduleGame{},
		LastUpdated: s.now(),
	}
}
