package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/stefanlut/jacha/internal/calendar"
	"github.com/stefanlut/jacha/internal/directory"
	"github.com/stefanlut/jacha/internal/hockey"
	"github.com/stefanlut/jacha/internal/logger"
	"github.com/stefanlut/jacha/internal/poll"
	"github.com/stefanlut/jacha/internal/scraper"
	"github.com/stefanlut/jacha/internal/vendorapi"
)

func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	teamName := r.URL.Query().Get("team")
	if teamName == "" {
		errorResponse(w, http.StatusBadRequest, "Team name is required")
		return
	}
	gender, err := hockey.ParseGender(r.URL.Query().Get("gender"))
	if err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	cacheKey := fmt.Sprintf("schedule:%s:%s", strings.ToLower(teamName), gender)
	if cached, ok := s.cache.Get(cacheKey); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	schedule, err := s.chn.TeamSchedule(r.Context(), teamName, gender)
	if errors.Is(err, directory.ErrNotFound) {
		errorResponse(w, http.StatusNotFound,
			fmt.Sprintf("Team %q not found. Available teams can be retrieved from /api/teams/list", teamName))
		return
	}
	if err != nil {
		logger.Error("schedule scrape failed", logger.Fields{"team": teamName}, err)
		errorResponse(w, http.StatusInternalServerError, "Failed to scrape team schedule")
		return
	}

	s.cache.Set(cacheKey, schedule, scheduleTTL)
	writeJSON(w, http.StatusOK, schedule)
}

func (s *Server) handleScheduleICS(w http.ResponseWriter, r *http.Request) {
	teamName := r.URL.Query().Get("team")
	if teamName == "" {
		errorResponse(w, http.StatusBadRequest, "Team name is required")
		return
	}
	gender, err := hockey.ParseGender(r.URL.Query().Get("gender"))
	if err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	schedule, err := s.chn.TeamSchedule(r.Context(), teamName, gender)
	if errors.Is(err, directory.ErrNotFound) {
		errorResponse(w, http.StatusNotFound,
			fmt.Sprintf("Team %q not found. Available teams can be retrieved from /api/teams/list", teamName))
		return
	}
	if err != nil {
		logger.Error("schedule scrape failed", logger.Fields{"team": teamName}, err)
		errorResponse(w, http.StatusInternalServerError, "Failed to scrape team schedule")
		return
	}

	filename := strings.Join(strings.Fields(strings.ToLower(teamName)), "-") + ".ics"
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, calendar.GenerateICS(schedule))
}

func (s *Server) handleScrapeSchedule(w http.ResponseWriter, r *http.Request) {
	teamName := r.URL.Query().Get("team")
	if teamName == "" {
		errorResponse(w, http.StatusBadRequest, "Team name is required")
		return
	}

	url, err := directory.ScheduleURL(teamName)
	if err != nil {
		logger.Error("schedule URL mapping unavailable", logger.Fields{}, err)
		errorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if url == "" {
		errorResponse(w, http.StatusNotFound,
			fmt.Sprintf("Schedule not available for %s. The %s season schedule may not be published yet, or the team may not be supported.",
				teamName, s.season.Label()))
		return
	}

	s.scrapeAndRespond(w, r, url, teamName, true)
}

func (s *Server) handleScrapeSchedulePost(w http.ResponseWriter, r *http.Request) {
	var body struct {
		URL      string `json:"url"`
		TeamName string `json:"teamName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if body.URL == "" {
		errorResponse(w, http.StatusBadRequest, "URL is required")
		return
	}

	s.scrapeAndRespond(w, r, body.URL, body.TeamName, false)
}

// scrapeAndRespond runs the schools engine. Known teams report a no-schedule
// result as an offseason 404; ad-hoc URL scrapes report it as a plain 500,
// since the caller chose the page.
func (s *Server) scrapeAndRespond(w http.ResponseWriter, r *http.Request, url, teamName string, knownTeam bool) {
	cacheKey := "scrape-schedule:" + url
	if cached, ok := s.cache.Get(cacheKey); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	schedule, err := s.schools.ScrapeSchedule(r.Context(), url, teamName)
	if errors.Is(err, scraper.ErrNoCurrentSchedule) {
		if knownTeam {
			writeJSON(w, http.StatusNotFound, map[string]any{
				"error": fmt.Sprintf("No %s schedule found for %s. The website may only show last season's schedule.",
					s.season.Label(), teamName),
				"isOffseason":    true,
				"expectedSeason": s.season.Label(),
			})
			return
		}
		errorResponse(w, http.StatusInternalServerError, "Failed to scrape schedule data")
		return
	}
	if err != nil {
		logger.Error("schools scrape failed", logger.Fields{"url": url, "team": teamName}, err)
		errorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	s.cache.Set(cacheKey, schedule, scheduleTTL)
	writeJSON(w, http.StatusOK, schedule)
}

func (s *Server) handleScoreboard(w http.ResponseWriter, r *http.Request) {
	gender, err := hockey.ParseGender(r.URL.Query().Get("gender"))
	if err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	dateParam := r.URL.Query().Get("date")
	cacheKey := fmt.Sprintf("scoreboard:%s:%s", dateParam, gender)
	if cached, ok := s.cache.Get(cacheKey); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	var scoreboard *hockey.Scoreboard
	if dateParam == "" {
		scoreboard, err = s.chn.LiveScoreboard(r.Context(), gender)
	} else {
		var date time.Time
		date, err = time.Parse("2006-01-02", dateParam)
		if err != nil {
			errorResponse(w, http.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD")
			return
		}
		scoreboard, err = s.chn.Scoreboard(r.Context(), date, gender)
	}
	if err != nil {
		logger.Error("scoreboard scrape failed", logger.Fields{"date": dateParam, "gender": string(gender)}, err)
		errorResponse(w, http.StatusInternalServerError, "Failed to fetch scoreboard data")
		return
	}

	s.cache.Set(cacheKey, scoreboard, scoreboardTTL)
	writeJSON(w, http.StatusOK, scoreboard)
}

func (s *Server) handlePoll(w http.ResponseWriter, r *http.Request) {
	genderParam := r.URL.Query().Get("gender")
	gender, err := hockey.ParseGender(genderParam)
	if genderParam == "" || err != nil {
		errorResponse(w, http.StatusBadRequest, `Invalid gender parameter. Must be "men" or "women"`)
		return
	}

	cacheKey := "poll:" + string(gender)
	if cached, ok := s.cache.Get(cacheKey); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	result, err := s.poll.Scrape(r.Context(), gender)
	if err != nil {
		logger.Error("poll scrape failed", logger.Fields{"gender": string(gender)}, err)
		if errors.Is(err, poll.ErrPollDataMissing) {
			errorResponse(w, http.StatusInternalServerError, "Could not find poll data in page")
			return
		}
		errorResponse(w, http.StatusInternalServerError, "Failed to fetch poll data")
		return
	}

	s.cache.Set(cacheKey, result, pollTTL)
	writeJSON(w, http.StatusOK, result)
}

// teamsList is the directory-derived listing: no network involved.
type teamsList struct {
	TotalTeams        int                 `json:"totalTeams"`
	Conferences       []string            `json:"conferences"`
	TeamsByConference map[string][]string `json:"teamsByConference"`
	AllTeams          []string            `json:"allTeams"`
	Gender            hockey.Gender       `json:"gender"`
}

func (s *Server) handleTeamsList(w http.ResponseWriter, r *http.Request) {
	gender, err := hockey.ParseGender(r.URL.Query().Get("gender"))
	if err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	cacheKey := "teams-list:" + string(gender)
	if cached, ok := s.cache.Get(cacheKey); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	teams := directory.ListAll(gender)
	byConference := make(map[string][]string)
	allTeams := make([]string, 0, len(teams))
	for _, team := range teams {
		byConference[team.Conference] = append(byConference[team.Conference], team.Name)
		allTeams = append(allTeams, team.Name)
	}
	conferences := make([]string, 0, len(byConference))
	for conf := range byConference {
		conferences = append(conferences, conf)
	}
	sort.Strings(conferences)

	result := teamsList{
		TotalTeams:        len(teams),
		Conferences:       conferences,
		TeamsByConference: byConference,
		AllTeams:          allTeams,
		Gender:            gender,
	}

	s.cache.Set(cacheKey, result, teamsTTL)
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleVendorTeams(w http.ResponseWriter, r *http.Request) {
	cacheKey := "vendor-teams"
	if cached, ok := s.cache.Get(cacheKey); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	teams, err := s.vendor.LeagueTeams(r.Context())
	if err != nil {
		s.vendorError(w, err, "Failed to fetch teams")
		return
	}

	active, err := vendorapi.FilterActive(teams)
	if err != nil {
		logger.Error("program list unavailable", logger.Fields{}, err)
		errorResponse(w, http.StatusInternalServerError, "Failed to fetch teams")
		return
	}

	raw := make([]json.RawMessage, 0, len(active))
	for _, team := range active {
		raw = append(raw, team.Raw)
	}
	result := map[string]any{
		"season": s.season.Label(),
		"teams":  raw,
	}

	s.cache.Set(cacheKey, result, teamsTTL)
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleVendorProfile(w http.ResponseWriter, r *http.Request) {
	teamID := chi.URLParam(r, "teamID")

	cacheKey := "vendor-profile:" + teamID
	if cached, ok := s.cache.Get(cacheKey); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	profile, err := s.vendor.TeamProfile(r.Context(), teamID)
	if err != nil {
		s.vendorError(w, err, "Failed to fetch team profile")
		return
	}

	s.cache.Set(cacheKey, profile, profileTTL)
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) vendorError(w http.ResponseWriter, err error, fallback string) {
	if errors.Is(err, vendorapi.ErrNoAPIKey) {
		errorResponse(w, http.StatusInternalServerError, "API key not configured")
		return
	}
	var apiErr *vendorapi.APIError
	if errors.As(err, &apiErr) {
		if apiErr.RateLimited() {
			errorResponse(w, http.StatusTooManyRequests, "Rate limit exceeded. Please try again in a few minutes.")
			return
		}
		errorResponse(w, apiErr.StatusCode, fallback)
		return
	}
	logger.Error("vendor API call failed", logger.Fields{}, err)
	errorResponse(w, http.StatusInternalServerError, fallback)
}
