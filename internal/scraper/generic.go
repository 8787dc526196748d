package scraper

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/stefanlut/jacha/internal/hockey"
)

// parseGeneric is the last-resort parser for platforms with no dedicated
// handler. It claims the target season but never any games, so acceptance
// always rejects it; its job is to terminate the fallback chain with a
// schedule shape rather than a panic or a guess.
func (s *Scraper) parseGeneric(doc *goquery.Document, teamName string) *hockey.TeamSchedule {
	if teamName == "" {
		teamName = "Unknown Team"
	}
	return &hockey.TeamSchedule{
		TeamName:    teamName,
		Season:      s.season.Label(),
		Record:      hockey.DefaultRecord(),
		Games:       []hockey.ScheduleGame{},
		LastUpdated: s.now(),
	}
}
