// Package server exposes the scrape pipelines over HTTP: JSON routes for
// schedules, scoreboards, polls, the team directory, and the vendor API
// pass-through, each fronted by a per-endpoint TTL cache.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/stefanlut/jacha/internal/cache"
	"github.com/stefanlut/jacha/internal/chn"
	"github.com/stefanlut/jacha/internal/fetch"
	"github.com/stefanlut/jacha/internal/hockey"
	"github.com/stefanlut/jacha/internal/poll"
	"github.com/stefanlut/jacha/internal/scraper"
	"github.com/stefanlut/jacha/internal/vendorapi"
)

// Cache horizons per endpoint. Scoreboards go stale in a minute during play;
// the team directory barely changes.
const (
	scheduleTTL   = 10 * time.Minute
	teamsTTL      = time.Hour
	scoreboardTTL = time.Minute
	pollTTL       = 30 * time.Minute
	profileTTL    = 10 * time.Minute
)

type chnService interface {
	TeamSchedule(ctx context.Context, teamName string, gender hockey.Gender) (*hockey.TeamSchedule, error)
	Scoreboard(ctx context.Context, date time.Time, gender hockey.Gender) (*hockey.Scoreboard, error)
	LiveScoreboard(ctx context.Context, gender hockey.Gender) (*hockey.Scoreboard, error)
}

type pollService interface {
	Scrape(ctx context.Context, gender hockey.Gender) (*hockey.Poll, error)
}

type schoolsService interface {
	ScrapeSchedule(ctx context.Context, url, teamName string) (*hockey.TeamSchedule, error)
}

type vendorService interface {
	LeagueTeams(ctx context.Context) ([]vendorapi.Team, error)
	TeamProfile(ctx context.Context, teamID string) (json.RawMessage, error)
}

// Server wires the scrape pipelines to HTTP handlers.
type Server struct {
	chn     chnService
	poll    pollService
	schools schoolsService
	vendor  vendorService
	cache   *cache.Cache
	season  hockey.Season
}

// New assembles a Server from the shared fetch client and config.
func New(cfg Config) *Server {
	fetcher := fetch.New()
	season := hockey.CurrentSeason(time.Now())

	return &Server{
		chn:     chn.NewClient(fetcher, season),
		poll:    poll.NewClient(fetcher),
		schools: scraper.New(fetcher, season),
		vendor:  vendorapi.New(cfg.APIKey),
		cache:   cache.New(),
		season:  season,
	}
}

// Handler builds the chi router with every route mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/schedule", s.handleSchedule)
		r.Get("/schedule/ics", s.handleScheduleICS)
		r.Get("/scrape-schedule", s.handleScrapeSchedule)
		r.Post("/scrape-schedule", s.handleScrapeSchedulePost)
		r.Get("/scoreboard", s.handleScoreboard)
		r.Get("/poll", s.handlePoll)
		r.Get("/teams/list", s.handleTeamsList)
		r.Get("/teams", s.handleVendorTeams)
		r.Get("/teams/{teamID}/profile", s.handleVendorProfile)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
