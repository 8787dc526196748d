package chn

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stefanlut/jacha/internal/directory"
	"github.com/stefanlut/jacha/internal/hockey"
)

type stubFetcher struct {
	html string
	err  error
	urls []string
}

func (f *stubFetcher) Get(ctx context.Context, url string) (string, error) {
	f.urls = append(f.urls, url)
	return f.html, f.err
}

func loadFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "..", "testdata", "fixtures", name))
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}
	return string(data)
}

func newTestClient(fetcher Fetcher) *Client {
	c := NewClient(fetcher, hockey.Season{StartYear: 2025})
	c.now = func() time.Time { return time.Date(2025, time.October, 3, 12, 0, 0, 0, time.UTC) }
	return c
}

func TestTeamSchedule(t *testing.T) {
	fetcher := &stubFetcher{html: loadFixture(t, "chn_schedule.html")}
	c := newTestClient(fetcher)

	schedule, err := c.TeamSchedule(context.Background(), "Boston University", hockey.GenderMen)
	if err != nil {
		t.Fatalf("TeamSchedule error = %v", err)
	}

	if schedule.TeamName != "Boston University" {
		t.Errorf("team name = %q, want Boston University", schedule.TeamName)
	}
	if schedule.Season != "2025-26" {
		t.Errorf("season = %q, want 2025-26", schedule.Season)
	}
	if schedule.Record.Overall != "6-3-1" {
		t.Errorf("overall record = %q, want 6-3-1", schedule.Record.Overall)
	}
	if schedule.Record.Conference != "4-2-0" {
		t.Errorf("conference record = %q, want 4-2-0", schedule.Record.Conference)
	}

	if len(schedule.Games) != 5 {
		t.Fatalf("games = %d, want 5", len(schedule.Games))
	}

	exh := schedule.Games[0]
	if exh.Opponent != "Stonehill" {
		t.Errorf("game 0 opponent = %q, want Stonehill", exh.Opponent)
	}
	if !exh.Exhibition {
		t.Error("game 0 should be an exhibition")
	}

	home := schedule.Games[1]
	if home.Opponent != "Providence" || !home.IsHome {
		t.Errorf("game 1 = %q home=%v, want home vs Providence", home.Opponent, home.IsHome)
	}
	if !home.Conference {
		t.Error("game 1 should be a conference game")
	}
	if home.Time != "7:00 pm ET" {
		t.Errorf("game 1 time = %q, want 7:00 pm ET", home.Time)
	}

	completed := schedule.Games[2]
	if completed.Opponent != "Michigan" {
		t.Errorf("game 2 opponent = %q, want Michigan", completed.Opponent)
	}
	if completed.Status != hockey.StatusCompleted {
		t.Errorf("game 2 status = %q, want completed", completed.Status)
	}
	if completed.Result == nil || completed.Result.Score != "4-2" || !completed.Result.Won {
		t.Errorf("game 2 result = %+v, want won 4-2", completed.Result)
	}
	if completed.Conference {
		t.Error("game 2 marked (nc) should not be a conference game")
	}
	if completed.IsHome {
		t.Error("game 2 should be away")
	}

	neutral := schedule.Games[3]
	if neutral.IsHome || neutral.Venue != "Neutral Site" {
		t.Errorf("game 3 home=%v venue=%q, want neutral site", neutral.IsHome, neutral.Venue)
	}
	if neutral.TournamentInfo != "1 Red Hot Hockey, Madison Square Garden" {
		t.Errorf("game 3 tournament = %q", neutral.TournamentInfo)
	}

	jan := schedule.Games[4]
	if jan.Date.Year() != 2026 || jan.Date.Month() != time.January || jan.Date.Day() != 9 {
		t.Errorf("game 4 date = %v, want 2026-01-09", jan.Date)
	}
}

func TestTeamSchedule_UnknownTeam(t *testing.T) {
	c := newTestClient(&stubFetcher{})

	_, err := c.TeamSchedule(context.Background(), "Narnia Tech", hockey.GenderMen)
	if !errors.Is(err, directory.ErrNotFound) {
		t.Errorf("error = %v, want directory.ErrNotFound", err)
	}
}

func TestTeamSchedule_WomenUsesWomenURL(t *testing.T) {
	fetcher := &stubFetcher{html: loadFixture(t, "chn_schedule.html")}
	c := newTestClient(fetcher)

	_, err := c.TeamSchedule(context.Background(), "Northeastern", hockey.GenderWomen)
	if err != nil {
		t.Fatalf("TeamSchedule error = %v", err)
	}
	if len(fetcher.urls) != 1 {
		t.Fatalf("fetch count = %d, want 1", len(fetcher.urls))
	}
	if want := "https://www.collegehockeynews.com/women/schedules/team/Northeastern/41"; fetcher.urls[0] != want {
		t.Errorf("fetched URL = %q, want %q", fetcher.urls[0], want)
	}
}

func TestScoreboard(t *testing.T) {
	fetcher := &stubFetcher{html: loadFixture(t, "chn_scoreboard.html")}
	c := newTestClient(fetcher)

	date := time.Date(2025, time.October, 3, 0, 0, 0, 0, time.UTC)
	sb, err := c.Scoreboard(context.Background(), date, hockey.GenderMen)
	if err != nil {
		t.Fatalf("Scoreboard error = %v", err)
	}

	if len(sb.Games) != 2 {
		t.Fatalf("games = %d, want 2", len(sb.Games))
	}

	scheduled := sb.Games[0]
	if scheduled.AwayTeam != "Boston University" || scheduled.HomeTeam != "Providence" {
		t.Errorf("game 0 = %s at %s, want Boston University at Providence", scheduled.AwayTeam, scheduled.HomeTeam)
	}
	if scheduled.Status != hockey.StatusScheduled {
		t.Errorf("game 0 status = %q, want scheduled", scheduled.Status)
	}
	if scheduled.Time != "7:00 ET" {
		t.Errorf("game 0 time = %q, want 7:00 ET", scheduled.Time)
	}
	if scheduled.ID != "Boston-University-at-Providence-2025-10-03" {
		t.Errorf("game 0 id = %q", scheduled.ID)
	}

	final := sb.Games[1]
	if final.Status != hockey.StatusCompleted {
		t.Errorf("game 1 status = %q, want completed", final.Status)
	}
	if final.Result == nil || final.Result.AwayScore != 5 || final.Result.HomeScore != 2 {
		t.Errorf("game 1 result = %+v, want 5-2", final.Result)
	}
	if final.Time != "" {
		t.Errorf("game 1 time = %q, want empty for completed game", final.Time)
	}
}

func TestScoreboard_OtherSection(t *testing.T) {
	fetcher := &stubFetcher{html: loadFixture(t, "chn_scoreboard.html")}
	c := newTestClient(fetcher)

	date := time.Date(2025, time.October, 4, 0, 0, 0, 0, time.UTC)
	sb, err := c.Scoreboard(context.Background(), date, hockey.GenderMen)
	if err != nil {
		t.Fatalf("Scoreboard error = %v", err)
	}
	if len(sb.Games) != 1 {
		t.Fatalf("games = %d, want 1", len(sb.Games))
	}
	if sb.Games[0].AwayTeam != "Minnesota" {
		t.Errorf("away = %q, want Minnesota", sb.Games[0].AwayTeam)
	}
}

func TestScoreboard_NoSectionForDate(t *testing.T) {
	fetcher := &stubFetcher{html: loadFixture(t, "chn_scoreboard.html")}
	c := newTestClient(fetcher)

	date := time.Date(2025, time.October, 5, 0, 0, 0, 0, time.UTC)
	sb, err := c.Scoreboard(context.Background(), date, hockey.GenderMen)
	if err != nil {
		t.Fatalf("Scoreboard error = %v", err)
	}
	if len(sb.Games) != 0 {
		t.Errorf("games = %d, want 0 for date with no section", len(sb.Games))
	}
	if sb.Games == nil {
		t.Error("games should be an empty slice, not nil")
	}
}

func TestLiveScoreboard(t *testing.T) {
	fetcher := &stubFetcher{html: loadFixture(t, "chn_live.html")}
	c := newTestClient(fetcher)

	sb, err := c.LiveScoreboard(context.Background(), hockey.GenderMen)
	if err != nil {
		t.Fatalf("LiveScoreboard error = %v", err)
	}

	if len(sb.Games) != 4 {
		t.Fatalf("games = %d, want 4", len(sb.Games))
	}

	live := sb.Games[0]
	if live.Status != hockey.StatusInProgress {
		t.Errorf("game 0 status = %q, want in-progress", live.Status)
	}
	if live.Result == nil || live.Result.AwayScore != 2 || live.Result.HomeScore != 1 {
		t.Errorf("game 0 result = %+v, want 2-1", live.Result)
	}
	if live.LiveData == nil || live.LiveData.Period != "Period 2" || live.LiveData.TimeRemaining != "12:34" {
		t.Errorf("game 0 live data = %+v, want Period 2 at 12:34", live.LiveData)
	}
	if live.Conference != "Hockey East" {
		t.Errorf("game 0 conference = %q, want Hockey East", live.Conference)
	}

	scheduled := sb.Games[1]
	if scheduled.Status != hockey.StatusScheduled || scheduled.Time != "7:00 ET" {
		t.Errorf("game 1 = %q %q, want scheduled at 7:00 ET", scheduled.Status, scheduled.Time)
	}

	final := sb.Games[2]
	if final.Status != hockey.StatusCompleted {
		t.Errorf("game 2 status = %q, want completed", final.Status)
	}
	if final.Conference != "NCHC" {
		t.Errorf("game 2 conference = %q, want NCHC", final.Conference)
	}

	exh := sb.Games[3]
	if !exh.Exhibition {
		t.Error("game 3 should be an exhibition")
	}
	if exh.Conference != "Non-Conference" {
		t.Errorf("game 3 conference = %q, want Non-Conference", exh.Conference)
	}
}

func TestLiveScoreboard_WomensLayout(t *testing.T) {
	fetcher := &stubFetcher{html: loadFixture(t, "chn_live_women.html")}
	c := newTestClient(fetcher)

	sb, err := c.LiveScoreboard(context.Background(), hockey.GenderWomen)
	if err != nil {
		t.Fatalf("LiveScoreboard error = %v", err)
	}
	if len(fetcher.urls) != 1 || fetcher.urls[0] != "https://www.collegehockeynews.com/women/scoreboard.php" {
		t.Errorf("fetched URLs = %v, want women's scoreboard", fetcher.urls)
	}

	if len(sb.Games) != 1 {
		t.Fatalf("games = %d, want 1", len(sb.Games))
	}
	game := sb.Games[0]
	if game.AwayTeam != "Wisconsin" || game.HomeTeam != "Ohio State" {
		t.Errorf("game = %s at %s, want Wisconsin at Ohio State", game.AwayTeam, game.HomeTeam)
	}
	if game.Result == nil || game.Result.AwayScore != 3 || game.Result.HomeScore != 1 {
		t.Errorf("result = %+v, want 3-1", game.Result)
	}
	if game.Conference != "WCHA" {
		t.Errorf("conference = %q, want WCHA", game.Conference)
	}
}

func TestScoreboard_FetchError(t *testing.T) {
	c := newTestClient(&stubFetcher{err: errors.New("timeout")})

	_, err := c.Scoreboard(context.Background(), time.Now(), hockey.GenderMen)
	if err == nil {
		t.Fatal("expected fetch error")
	}
}
