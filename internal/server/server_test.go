package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stefanlut/jacha/internal/cache"
	"github.com/stefanlut/jacha/internal/directory"
	"github.com/stefanlut/jacha/internal/hockey"
	"github.com/stefanlut/jacha/internal/scraper"
	"github.com/stefanlut/jacha/internal/vendorapi"
)

func init() {
	directory.SetScheduleURLsPath("../../configs/program_schedule_sites.csv")
	vendorapi.SetProgramListPath("../../configs/list_of_programs.txt")
}

type stubCHN struct {
	teamSchedules map[string]*hockey.TeamSchedule
	scheduleErr   error
	scoreboards   *hockey.Scoreboard
	live          *hockey.Scoreboard
	scheduleCalls int
	liveCalls     int
}

func (s *stubCHN) TeamSchedule(ctx context.Context, teamName string, gender hockey.Gender) (*hockey.TeamSchedule, error) {
	s.scheduleCalls++
	if s.scheduleErr != nil {
		return nil, s.scheduleErr
	}
	if sched, ok := s.teamSchedules[teamName]; ok {
		return sched, nil
	}
	return nil, directory.ErrNotFound
}

func (s *stubCHN) Scoreboard(ctx context.Context, date time.Time, gender hockey.Gender) (*hockey.Scoreboard, error) {
	return s.scoreboards, nil
}

func (s *stubCHN) LiveScoreboard(ctx context.Context, gender hockey.Gender) (*hockey.Scoreboard, error) {
	s.liveCalls++
	return s.live, nil
}

type stubPoll struct {
	poll *hockey.Poll
	err  error
}

func (s *stubPoll) Scrape(ctx context.Context, gender hockey.Gender) (*hockey.Poll, error) {
	return s.poll, s.err
}

type stubSchools struct {
	schedule *hockey.TeamSchedule
	err      error
	urls     []string
}

func (s *stubSchools) ScrapeSchedule(ctx context.Context, url, teamName string) (*hockey.TeamSchedule, error) {
	s.urls = append(s.urls, url)
	return s.schedule, s.err
}

type stubVendor struct {
	teams   []vendorapi.Team
	profile json.RawMessage
	err     error
}

func (s *stubVendor) LeagueTeams(ctx context.Context) ([]vendorapi.Team, error) {
	return s.teams, s.err
}

func (s *stubVendor) TeamProfile(ctx context.Context, teamID string) (json.RawMessage, error) {
	return s.profile, s.err
}

func testSchedule(teamName string) *hockey.TeamSchedule {
	return &hockey.TeamSchedule{
		TeamName: teamName,
		Gender:   hockey.GenderMen,
		Season:   "2025-26",
		Record:   hockey.DefaultRecord(),
		Games: []hockey.ScheduleGame{
			{
				ID:       "abc123def456",
				Date:     time.Date(2025, 10, 4, 0, 0, 0, 0, time.UTC),
				Opponent: "Providence",
				IsHome:   true,
				Status:   hockey.StatusScheduled,
			},
		},
		LastUpdated: time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC),
	}
}

func newTestServer() (*Server, *stubCHN, *stubPoll, *stubSchools, *stubVendor) {
	chnStub := &stubCHN{
		teamSchedules: map[string]*hockey.TeamSchedule{
			"Boston University": testSchedule("Boston University"),
		},
		scoreboards: &hockey.Scoreboard{Gender: hockey.GenderMen, Games: []hockey.ScoreboardGame{}},
		live:        &hockey.Scoreboard{Gender: hockey.GenderMen, Games: []hockey.ScoreboardGame{{AwayTeam: "Maine", HomeTeam: "UMass Lowell"}}},
	}
	pollStub := &stubPoll{poll: &hockey.Poll{Date: "November 10, 2025", Teams: []hockey.PollTeam{{Rank: 1, Team: "Boston College"}}}}
	schoolsStub := &stubSchools{schedule: testSchedule("Boston University")}
	vendorStub := &stubVendor{
		teams: []vendorapi.Team{
			{ID: "t1", Market: "Boston University", Raw: json.RawMessage(`{"id":"t1","market":"Boston University"}`)},
			{ID: "t2", Market: "Narnia Tech", Raw: json.RawMessage(`{"id":"t2","market":"Narnia Tech"}`)},
		},
		profile: json.RawMessage(`{"id":"t1"}`),
	}

	srv := &Server{
		chn:     chnStub,
		poll:    pollStub,
		schools: schoolsStub,
		vendor:  vendorStub,
		cache:   cache.New(),
		season:  hockey.Season{StartYear: 2025},
	}
	return srv, chnStub, pollStub, schoolsStub, vendorStub
}

func doRequest(t *testing.T, srv *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response body does not parse as JSON: %v\n%s", err, rec.Body.String())
	}
	return body
}

func TestHandleSchedule(t *testing.T) {
	srv, chnStub, _, _, _ := newTestServer()

	rec := doRequest(t, srv, http.MethodGet, "/api/schedule?team=Boston+University", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["teamName"] != "Boston University" {
		t.Errorf("teamName = %v", body["teamName"])
	}

	// Second request must come from cache.
	doRequest(t, srv, http.MethodGet, "/api/schedule?team=Boston+University", "")
	if chnStub.scheduleCalls != 1 {
		t.Errorf("scrape calls = %d, want 1 (second hit should be cached)", chnStub.scheduleCalls)
	}
}

func TestHandleSchedule_MissingTeam(t *testing.T) {
	srv, _, _, _, _ := newTestServer()

	rec := doRequest(t, srv, http.MethodGet, "/api/schedule", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandleSchedule_UnknownTeam(t *testing.T) {
	srv, _, _, _, _ := newTestServer()

	rec := doRequest(t, srv, http.MethodGet, "/api/schedule?team=Narnia+Tech", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	body := decodeBody(t, rec)
	msg, _ := body["error"].(string)
	if !strings.Contains(msg, "/api/teams/list") {
		t.Errorf("404 message should point at /api/teams/list, got %q", msg)
	}
}

func TestHandleSchedule_InvalidGender(t *testing.T) {
	srv, _, _, _, _ := newTestServer()

	rec := doRequest(t, srv, http.MethodGet, "/api/schedule?team=Boston+University&gender=coed", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandleScheduleICS(t *testing.T) {
	srv, _, _, _, _ := newTestServer()

	rec := doRequest(t, srv, http.MethodGet, "/api/schedule/ics?team=Boston+University", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/calendar") {
		t.Errorf("content type = %q, want text/calendar", ct)
	}
	if !strings.Contains(rec.Body.String(), "BEGIN:VCALENDAR") {
		t.Error("body should be an iCalendar document")
	}
	if !strings.Contains(rec.Header().Get("Content-Disposition"), "boston-university.ics") {
		t.Errorf("content disposition = %q", rec.Header().Get("Content-Disposition"))
	}
}

func TestHandleScrapeSchedule(t *testing.T) {
	srv, _, _, schoolsStub, _ := newTestServer()

	rec := doRequest(t, srv, http.MethodGet, "/api/scrape-schedule?team=Boston+University", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if len(schoolsStub.urls) != 1 || !strings.Contains(schoolsStub.urls[0], "goterriers.com") {
		t.Errorf("scraped URLs = %v, want the mapped goterriers URL", schoolsStub.urls)
	}
}

func TestHandleScrapeSchedule_UnmappedTeam(t *testing.T) {
	srv, _, _, _, _ := newTestServer()

	rec := doRequest(t, srv, http.MethodGet, "/api/scrape-schedule?team=Narnia+Tech", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	body := decodeBody(t, rec)
	msg, _ := body["error"].(string)
	if !strings.Contains(msg, "Schedule not available") {
		t.Errorf("message = %q", msg)
	}
}

func TestHandleScrapeSchedule_Offseason(t *testing.T) {
	srv, _, _, schoolsStub, _ := newTestServer()
	schoolsStub.schedule = nil
	schoolsStub.err = scraper.ErrNoCurrentSchedule

	rec := doRequest(t, srv, http.MethodGet, "/api/scrape-schedule?team=Boston+University", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["isOffseason"] != true {
		t.Error("offseason response should carry isOffseason: true")
	}
	if body["expectedSeason"] != "2025-26" {
		t.Errorf("expectedSeason = %v, want 2025-26", body["expectedSeason"])
	}
}

func TestHandleScrapeSchedulePost(t *testing.T) {
	srv, _, _, schoolsStub, _ := newTestServer()

	rec := doRequest(t, srv, http.MethodPost, "/api/scrape-schedule",
		`{"url":"https://example.edu/schedule","teamName":"Example"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if len(schoolsStub.urls) != 1 || schoolsStub.urls[0] != "https://example.edu/schedule" {
		t.Errorf("scraped URLs = %v", schoolsStub.urls)
	}
}

func TestHandleScrapeSchedulePost_MissingURL(t *testing.T) {
	srv, _, _, _, _ := newTestServer()

	rec := doRequest(t, srv, http.MethodPost, "/api/scrape-schedule", `{"teamName":"Example"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandleScoreboard_InvalidDate(t *testing.T) {
	srv, _, _, _, _ := newTestServer()

	rec := doRequest(t, srv, http.MethodGet, "/api/scoreboard?date=10-03-2025", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	body := decodeBody(t, rec)
	if msg, _ := body["error"].(string); !strings.Contains(msg, "YYYY-MM-DD") {
		t.Errorf("message = %q", msg)
	}
}

func TestHandleScoreboard_DatedAndLive(t *testing.T) {
	srv, chnStub, _, _, _ := newTestServer()

	rec := doRequest(t, srv, http.MethodGet, "/api/scoreboard?date=2025-10-03", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if chnStub.liveCalls != 0 {
		t.Error("dated request should not hit the live scoreboard")
	}

	rec = doRequest(t, srv, http.MethodGet, "/api/scoreboard", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("live status = %d, want 200", rec.Code)
	}
	if chnStub.liveCalls != 1 {
		t.Errorf("live calls = %d, want 1", chnStub.liveCalls)
	}
}

func TestHandleScoreboard_EmptySlateIsOK(t *testing.T) {
	srv, _, _, _, _ := newTestServer()

	rec := doRequest(t, srv, http.MethodGet, "/api/scoreboard?date=2025-10-05", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 for a date with no games", rec.Code)
	}
	body := decodeBody(t, rec)
	games, ok := body["games"].([]any)
	if !ok {
		t.Fatalf("games field = %T, want array", body["games"])
	}
	if len(games) != 0 {
		t.Errorf("games = %d, want 0", len(games))
	}
}

func TestHandlePoll(t *testing.T) {
	srv, _, _, _, _ := newTestServer()

	rec := doRequest(t, srv, http.MethodGet, "/api/poll?gender=men", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := decodeBody(t, rec)
	teams, _ := body["teams"].([]any)
	if len(teams) != 1 {
		t.Errorf("teams = %d, want 1", len(teams))
	}
}

func TestHandlePoll_MissingGender(t *testing.T) {
	srv, _, _, _, _ := newTestServer()

	rec := doRequest(t, srv, http.MethodGet, "/api/poll", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 (poll requires explicit gender)", rec.Code)
	}
}

func TestHandleTeamsList(t *testing.T) {
	srv, _, _, _, _ := newTestServer()

	rec := doRequest(t, srv, http.MethodGet, "/api/teams/list", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := decodeBody(t, rec)

	total, _ := body["totalTeams"].(float64)
	if total < 60 {
		t.Errorf("totalTeams = %v, want the full Division I men's directory", body["totalTeams"])
	}
	conferences, _ := body["conferences"].([]any)
	found := false
	for _, c := range conferences {
		if c == "Hockey East" {
			found = true
		}
	}
	if !found {
		t.Errorf("conferences = %v, want Hockey East present", conferences)
	}
}

func TestHandleVendorTeams(t *testing.T) {
	srv, _, _, _, _ := newTestServer()

	rec := doRequest(t, srv, http.MethodGet, "/api/teams", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["season"] != "2025-26" {
		t.Errorf("season = %v, want 2025-26", body["season"])
	}
	teams, _ := body["teams"].([]any)
	if len(teams) != 1 {
		t.Fatalf("teams = %d, want 1 (inactive programs filtered out)", len(teams))
	}
}

func TestHandleVendorTeams_NoAPIKey(t *testing.T) {
	srv, _, _, _, vendorStub := newTestServer()
	vendorStub.teams = nil
	vendorStub.err = vendorapi.ErrNoAPIKey

	rec := doRequest(t, srv, http.MethodGet, "/api/teams", "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["error"] != "API key not configured" {
		t.Errorf("message = %v", body["error"])
	}
}

func TestHandleVendorTeams_RateLimited(t *testing.T) {
	srv, _, _, _, vendorStub := newTestServer()
	vendorStub.teams = nil
	vendorStub.err = &vendorapi.APIError{StatusCode: http.StatusTooManyRequests}

	rec := doRequest(t, srv, http.MethodGet, "/api/teams", "")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
}

func TestHandleVendorProfile(t *testing.T) {
	srv, _, _, _, _ := newTestServer()

	rec := doRequest(t, srv, http.MethodGet, "/api/teams/t1/profile", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["id"] != "t1" {
		t.Errorf("profile id = %v, want t1", body["id"])
	}
}

func TestHandleHealth(t *testing.T) {
	srv, _, _, _, _ := newTestServer()

	rec := doRequest(t, srv, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
