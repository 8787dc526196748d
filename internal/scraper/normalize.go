package scraper

import (
	"regexp"
	"strings"
)

// Schedule pages run the opponent name straight into whatever content
// follows it, so a raw capture like "Providence Box Score Recap" needs its
// tail stripped. Each pattern removes one family of trailing junk; order
// matters only for the UMass Lowell special case below.
var opponentTrimPatterns = []*regexp.Regexp{
	// Links and widgets rendered after the opponent name.
	regexp.MustCompile(`(?i)\s+(Box\s+Score|Recap|Gallery|Int|Gameday\s+Information|Watch|Live|Stats|Tickets|Magnet\s+Giveaway|Schedule\s+Magnet\s+Giveaway|Exhibition).*$`),
	// Venue cities that trail the opponent on Sidearm pages.
	regexp.MustCompile(`\s+(Boston|Storrs|Orono|Cambridge|Durham|Providence|Amherst|North Andover|Hamden|Chestnut Hill|New York).*$`),
	// Media-rail content bleeding in from elsewhere on the page.
	regexp.MustCompile(`(?i)(?:^|\s+)(Ice\s+Hockey\s+Highlights|All\s+Videos|Related\s+News|Skip\s+Ad|All\s+News|Highlights|Videos).*$`),
	// Date references like "(Feb. 28)" from recap links.
	regexp.MustCompile(`\([A-Z][a-z]{2}\.\s+\d{1,2}\).*$`),
	// Day-of-week references.
	regexp.MustCompile(`(?i)\s+(Friday|Saturday|Sunday|Monday|Tuesday|Wednesday|Thursday),.*$`),
}

var (
	umassLowellDupPattern = regexp.MustCompile(`^(.*UMass Lowell)\s+Lowell.*$`)
	trailingLowellPattern = regexp.MustCompile(`\s+Lowell.*$`)
	exhibitionTagPattern  = regexp.MustCompile(`\s*\(exh\.\)`)
	redHotHockeyPattern   = regexp.MustCompile(`\s*Red Hot Hockey.*$`)
	bracketPattern        = regexp.MustCompile(`^\s*\[|\]\s*$`)
	trailingParenPattern  = regexp.MustCompile(`\s*\([^)]*\)\s*$`)
)

// NormalizeOpponent cleans a raw opponent capture and reports whether the
// result is usable. Captures that still look like mixed page content after
// cleanup (slashes, media-rail words, placeholder opponents, implausible
// length) are rejected rather than half-fixed.
func NormalizeOpponent(raw string) (string, bool) {
	opponent := strings.TrimSpace(raw)

	for _, pattern := range opponentTrimPatterns {
		opponent = pattern.ReplaceAllString(opponent, "")
	}

	// "UMass Lowell Lowell" is the team name followed by its city; plain
	// trailing "Lowell" on any other opponent is just the city.
	if m := umassLowellDupPattern.FindStringSubmatch(opponent); m != nil {
		opponent = m[1]
	} else if !strings.Contains(opponent, "UMass Lowell") {
		opponent = trailingLowellPattern.ReplaceAllString(opponent, "")
	}

	opponent = exhibitionTagPattern.ReplaceAllString(opponent, "")
	opponent = redHotHockeyPattern.ReplaceAllString(opponent, "")
	opponent = bracketPattern.ReplaceAllString(opponent, "")
	opponent = trailingParenPattern.ReplaceAllString(opponent, "")
	opponent = strings.TrimSpace(opponent)

	if len(opponent) < 2 || len(opponent) > 100 {
		return "", false
	}
	if strings.Contains(opponent, "/") ||
		strings.Contains(opponent, "TBD") ||
		strings.Contains(opponent, "Men's Ice Hockey") ||
		strings.Contains(opponent, "Highlights") ||
		strings.Contains(opponent, "Videos") ||
		strings.Contains(opponent, "News") {
		return "", false
	}

	return opponent, true
}

var whitespaceRunPattern = regexp.MustCompile(`\s+`)

// collapseWhitespace folds newline-heavy extracted text into single spaces
// so positional regexes can work across element boundaries.
func collapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRunPattern.ReplaceAllString(s, " "))
}
