package calendar

import (
	"strings"
	"testing"
	"time"

	"github.com/stefanlut/jacha/internal/hockey"
)

func testSchedule() *hockey.TeamSchedule {
	return &hockey.TeamSchedule{
		TeamName: "Boston University",
		Gender:   hockey.GenderMen,
		Season:   "2025-26",
		Record:   hockey.DefaultRecord(),
		Games: []hockey.ScheduleGame{
			{
				ID:       "abc123def456",
				Date:     time.Date(2025, 10, 4, 0, 0, 0, 0, time.UTC),
				Opponent: "Providence",
				IsHome:   true,
				Venue:    "Agganis Arena",
				City:     "Boston",
				State:    "MA",
				Time:     "7:00 pm ET",
				Status:   hockey.StatusScheduled,
			},
			{
				ID:       "fed654cba321",
				Date:     time.Date(2025, 10, 10, 0, 0, 0, 0, time.UTC),
				Opponent: "Michigan",
				IsHome:   false,
				Status:   hockey.StatusCompleted,
				Result:   &hockey.GameResult{Score: "4-2", Won: true},
			},
		},
		LastUpdated: time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestGenerateICS(t *testing.T) {
	ics := GenerateICS(testSchedule())

	requiredFields := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//jacha//college hockey//EN",
		"X-WR-CALNAME:Boston University 2025-26",
		"BEGIN:VEVENT",
		"UID:abc123def456@jacha",
		"DTSTAMP:20251001T120000Z",
		"SUMMARY:Boston University vs Providence",
		"SUMMARY:Boston University at Michigan",
		"LOCATION:Agganis Arena\\, Boston\\, MA",
		"DESCRIPTION:Final: W 4-2",
		"STATUS:CONFIRMED",
		"END:VEVENT",
		"END:VCALENDAR",
	}

	for _, field := range requiredFields {
		if !strings.Contains(ics, field) {
			t.Errorf("ICS missing required field: %s", field)
		}
	}

	if !strings.Contains(ics, "\r\n") {
		t.Error("ICS should use \\r\\n line endings")
	}

	if got := strings.Count(ics, "BEGIN:VEVENT"); got != 2 {
		t.Errorf("VEVENT count = %d, want 2", got)
	}
}

func TestGenerateICS_StartTimes(t *testing.T) {
	ics := GenerateICS(testSchedule())

	// "7:00 pm ET" → 19:00 start, 21:30 end.
	if !strings.Contains(ics, "DTSTART:20251004T190000Z") {
		t.Error("listed start time should drive DTSTART")
	}
	if !strings.Contains(ics, "DTEND:20251004T213000Z") {
		t.Error("DTEND should be 2.5 hours after DTSTART")
	}

	// The completed game has no listed time and falls back to 7 PM.
	if !strings.Contains(ics, "DTSTART:20251010T190000Z") {
		t.Error("games without a listed time should default to 7 PM")
	}
}

func TestGenerateICS_ExhibitionAndNeutral(t *testing.T) {
	schedule := testSchedule()
	schedule.Games = []hockey.ScheduleGame{
		{
			ID:         "exh000000001",
			Date:       time.Date(2025, 10, 3, 0, 0, 0, 0, time.UTC),
			Opponent:   "Stonehill",
			IsHome:     true,
			Exhibition: true,
			Status:     hockey.StatusScheduled,
		},
		{
			ID:       "neu000000001",
			Date:     time.Date(2025, 11, 29, 0, 0, 0, 0, time.UTC),
			Opponent: "Cornell",
			IsHome:   false,
			Venue:    "Neutral Site",
			Status:   hockey.StatusScheduled,
		},
	}

	ics := GenerateICS(schedule)

	if !strings.Contains(ics, "SUMMARY:Boston University vs Stonehill (Exhibition)") {
		t.Error("exhibition games should be tagged in the summary")
	}
	// Neutral-site games read "vs", not "at", even though IsHome is false.
	if !strings.Contains(ics, "SUMMARY:Boston University vs Cornell") {
		t.Error("neutral-site games should read as vs")
	}
}

func TestGenerateICS_CancelledStatus(t *testing.T) {
	schedule := testSchedule()
	schedule.Games[0].Status = hockey.StatusCancelled

	ics := GenerateICS(schedule)
	if !strings.Contains(ics, "STATUS:CANCELLED") {
		t.Error("cancelled games should carry STATUS:CANCELLED")
	}
}

func TestGenerateICS_NoGames(t *testing.T) {
	schedule := testSchedule()
	schedule.Games = nil

	ics := GenerateICS(schedule)
	if !strings.Contains(ics, "BEGIN:VCALENDAR") || !strings.Contains(ics, "END:VCALENDAR") {
		t.Error("empty schedule should still produce a calendar wrapper")
	}
	if strings.Contains(ics, "BEGIN:VEVENT") {
		t.Error("empty schedule should contain no events")
	}
}

func TestFormatICSTime(t *testing.T) {
	testTime := time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)
	if got := formatICSTime(testTime); got != "20260315T143000Z" {
		t.Errorf("formatICSTime() = %q, want 20260315T143000Z", got)
	}
}

func TestEscapeICS(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Simple text", "Simple text"},
		{"Text with, comma", "Text with\\, comma"},
		{"Text with; semicolon", "Text with\\; semicolon"},
		{"Text with\\backslash", "Text with\\\\backslash"},
		{"Text with\nnewline", "Text with\\nnewline"},
		{"All, special; chars\\\n", "All\\, special\\; chars\\\\\\n"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := escapeICS(tt.input); got != tt.expected {
				t.Errorf("escapeICS(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestStartTime(t *testing.T) {
	date := time.Date(2025, 10, 4, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		timeText string
		hour     int
		minute   int
	}{
		{"7:00 pm ET", 19, 0},
		{"7:00 ET", 7, 0},
		{"12:30 pm", 12, 30},
		{"12:05 am", 0, 5},
		{"TBD", 19, 0},
		{"", 19, 0},
	}

	for _, tt := range tests {
		t.Run(tt.timeText, func(t *testing.T) {
			got := startTime(hockey.ScheduleGame{Date: date, Time: tt.timeText})
			if got.Hour() != tt.hour || got.Minute() != tt.minute {
				t.Errorf("startTime(%q) = %02d:%02d, want %02d:%02d",
					tt.timeText, got.Hour(), got.Minute(), tt.hour, tt.minute)
			}
		})
	}
}
