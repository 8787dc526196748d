// Package chn scrapes College Hockey News, the canonical source for team
// schedules, daily scoreboards, and live scores. CHN covers every program in
// both the men's and women's game behind one consistent table layout, which
// makes it the primary backend; the per-school athletics-site scrapers exist
// for the detail CHN doesn't carry.
package chn

import (
	"context"
	"time"

	"github.com/stefanlut/jacha/internal/hockey"
)

const (
	menScheduleBase     = "https://www.collegehockeynews.com/schedules/"
	womenScheduleBase   = "https://www.collegehockeynews.com/women/schedule.php"
	menLiveScoreboard   = "https://www.collegehockeynews.com/schedules/scoreboard.php"
	womenLiveScoreboard = "https://www.collegehockeynews.com/women/scoreboard.php"
)

// Fetcher retrieves raw HTML for a CHN page.
type Fetcher interface {
	Get(ctx context.Context, url string) (string, error)
}

// Client scrapes CHN pages into the canonical model.
type Client struct {
	fetcher Fetcher
	season  hockey.Season
	now     func() time.Time
}

// NewClient builds a Client reading against the given season.
func NewClient(fetcher Fetcher, season hockey.Season) *Client {
	return &Client{
		fetcher: fetcher,
		season:  season,
		now:     time.Now,
	}
}

func scoreboardURL(gender hockey.Gender) string {
	if gender == hockey.GenderWomen {
		return womenScheduleBase
	}
	return menScheduleBase
}

func liveScoreboardURL(gender hockey.Gender) string {
	if gender == hockey.GenderWomen {
		return womenLiveScoreboard
	}
	return menLiveScoreboard
}
