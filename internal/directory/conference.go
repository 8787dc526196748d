package directory

import (
	"strings"

	"github.com/stefanlut/jacha/internal/hockey"
)

// Conference returns the conference a team belongs to, or "" when the team
// is unknown.
func Conference(teamName string, gender hockey.Gender) string {
	e, ok := table(gender)[teamName]
	if !ok {
		return ""
	}
	return e.conference
}

// nameVariants reconciles spellings that differ between athletics sites and
// the directory before conference comparison: "UMass" vs "Massachusetts",
// "St." vs "Saint", hyphenated vs spaced compounds.
func normalizeTeamName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.ReplaceAll(n, "-", " ")
	fields := strings.Fields(n)
	for i, f := range fields {
		if f == "saint" || f == "st" {
			fields[i] = "st."
		}
	}
	n = strings.Join(fields, " ")
	replacements := map[string]string{
		"umass lowell":         "mass. lowell",
		"massachusetts lowell": "mass. lowell",
		"mass. lowell":         "mass. lowell",
		"umass":                "massachusetts",
		"uconn":                "connecticut",
		"liu":                  "long island",
		"miami (oh)":           "miami",
		"miami (ohio)":         "miami",
		"army west point":      "army",
		"union (ny)":           "union",
		"alaska fairbanks":     "alaska",
		"alaska anchorage":     "alaska anchorage",
	}
	if r, ok := replacements[n]; ok {
		return r
	}
	return strings.Join(strings.Fields(n), " ")
}

// SameConference reports whether two team names resolve to the same named
// conference for the given gender. Either name may be an alias or a variant
// spelling; unknown teams never match.
func SameConference(teamName, opponent string, gender hockey.Gender) bool {
	teamConf := conferenceByVariant(teamName, gender)
	oppConf := conferenceByVariant(opponent, gender)
	if teamConf == "" || oppConf == "" {
		return false
	}
	if normalizeTeamName(teamName) == normalizeTeamName(opponent) {
		return false
	}
	return teamConf == oppConf
}

// conferenceByVariant tries the exact alias table first, then falls back to
// matching on normalized names so "Saint Cloud State" still resolves.
func conferenceByVariant(name string, gender hockey.Gender) string {
	if conf := Conference(name, gender); conf != "" {
		return conf
	}
	want := normalizeTeamName(name)
	for alias, e := range table(gender) {
		if normalizeTeamName(alias) == want {
			return e.conference
		}
	}
	return ""
}
