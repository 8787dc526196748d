package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Format names a schedule page layout with a dedicated parser.
type Format string

const (
	// FormatSidearm covers the Sidearm Sports platform most athletics
	// departments use, with "Oct 4 (Sat)" date blocks.
	FormatSidearm Format = "sidearm-sports"
	// FormatSunDevils covers Arizona State's site, which compresses dates
	// ("Oct3(Fri)") inside a Schedule Events section.
	FormatSunDevils Format = "sun-devils"
	// FormatFerris covers Ferris State's element-per-field layout.
	FormatFerris Format = "ferris-state"
	// FormatBigTen covers the text-run layouts common to Big Ten schools.
	FormatBigTen Format = "big-ten"
	// FormatGeneric is the last-resort parser.
	FormatGeneric Format = "generic"
)

type detection struct {
	format     Format
	confidence float64
}

// URL fragments that identify a site outright.
var urlFormats = []struct {
	fragment string
	det      detection
}{
	{"thesundevils.com", detection{FormatSunDevils, 1.0}},
	{"goterriers.com", detection{FormatSidearm, 1.0}},
	{"ferrisstatebulldogs.com", detection{FormatFerris, 1.0}},
}

// Known team-to-format pairings, used when the URL doesn't give the
// platform away.
var teamFormats = map[string]detection{
	"Arizona State":     {FormatSunDevils, 0.9},
	"Boston University": {FormatSidearm, 0.9},
	"Boston College":    {FormatSidearm, 0.8},
	"Ferris State":      {FormatFerris, 0.9},
	"Michigan":          {FormatBigTen, 0.7},
	"Michigan State":    {FormatBigTen, 0.7},
	"Ohio State":        {FormatBigTen, 0.7},
	"Penn State":        {FormatBigTen, 0.7},
	"Wisconsin":         {FormatBigTen, 0.7},
	"Minnesota":         {FormatBigTen, 0.7},
	"Notre Dame":        {FormatBigTen, 0.7},
}

// detectFormat guesses the page layout from the URL, the team, and finally
// the page content. Confidence below 0.8 tells the caller to fall back
// through the other parsers if the guess doesn't pan out.
func detectFormat(url, teamName string, doc *goquery.Document) detection {
	for _, uf := range urlFormats {
		if strings.Contains(url, uf.fragment) {
			return uf.det
		}
	}

	if det, ok := teamFormats[teamName]; ok {
		return det
	}

	pageContent := strings.ToLower(doc.Text())
	titleContent := strings.ToLower(doc.Find("title").Text())

	if strings.Contains(pageContent, "sidearm") || strings.Contains(pageContent, "schedule events") {
		return detection{FormatSidearm, 0.6}
	}
	if strings.Contains(titleContent, "sun devil") {
		return detection{FormatSunDevils, 0.8}
	}

	return detection{FormatGeneric, 0.3}
}
