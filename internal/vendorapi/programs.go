package vendorapi

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// The vendor's market names don't always match the program names our list
// uses, so markets are reconciled through this map before filtering.
var programNameMap = map[string]string{
	"Massachusetts":          "UMass",
	"Connecticut":            "UConn",
	"UMass-Lowell":           "UMass Lowell",
	"Massachusetts-Lowell":   "UMass Lowell",
	"Long Island University": "LIU",
	"Minnesota-Duluth":       "Minnesota Duluth",
	"Miami":                  "Miami (OH)",
	"Miami (Ohio)":           "Miami (OH)",
	"Saint Cloud State":      "St. Cloud State",
	"St Cloud State":         "St. Cloud State",
	"Saint Lawrence":         "St. Lawrence",
	"Saint Thomas":           "St. Thomas",
	"St Thomas":              "St. Thomas",
	"Army":                   "Army West Point",
}

var (
	programsOnce sync.Once
	programs     map[string]bool
	programsErr  error
	programsPath = "configs/list_of_programs.txt"
)

// SetProgramListPath overrides the program list location. Must be called
// before the first filter; later calls have no effect.
func SetProgramListPath(path string) {
	programsPath = path
}

// ParseProgramList reads one program name per line, skipping blanks and
// "//" comments.
func ParseProgramList(text string) map[string]bool {
	set := make(map[string]bool)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		set[line] = true
	}
	return set
}

func loadPrograms() {
	data, err := os.ReadFile(programsPath)
	if err != nil {
		programsErr = fmt.Errorf("reading program list: %w", err)
		programs = map[string]bool{}
		return
	}
	programs = ParseProgramList(string(data))
}

// ProgramName maps a vendor market name to the program name used in the
// active-program list. Markets without a mapping pass through unchanged.
func ProgramName(market string) string {
	if name, ok := programNameMap[market]; ok {
		return name
	}
	return market
}

// FilterActive keeps only teams whose reconciled program name appears in the
// active-program list, sorted by market name, case-insensitively.
func FilterActive(teams []Team) ([]Team, error) {
	programsOnce.Do(loadPrograms)
	if programsErr != nil {
		return nil, programsErr
	}

	active := make([]Team, 0, len(teams))
	for _, team := range teams {
		if programs[ProgramName(team.Market)] {
			active = append(active, team)
		}
	}

	c := collate.New(language.English, collate.IgnoreCase)
	sort.SliceStable(active, func(i, j int) bool {
		return c.CompareString(active[i].Market, active[j].Market) < 0
	})
	return active, nil
}
