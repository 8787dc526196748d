package directory

import (
	"errors"
	"sort"

	"github.com/stefanlut/jacha/internal/hockey"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// ErrNotFound is returned when a team name has no directory entry. A missing
// team is an expected outcome, not a failure: handlers map it to 404 with a
// pointer at the discovery endpoint.
var ErrNotFound = errors.New("team not found in directory")

// TeamInfo is one resolved directory entry.
type TeamInfo struct {
	Name       string        `json:"name"`
	URL        string        `json:"url"`
	Conference string        `json:"conference"`
	Gender     hockey.Gender `json:"gender"`
}

type entry struct {
	url        string
	conference string
}

const chnBase = "https://www.collegehockeynews.com"

// menTeams maps every accepted men's team alias to its schedule page.
// Multiple aliases may share one URL; uniqueness is by URL, not name.
var menTeams = map[string]entry{
	// Atlantic Hockey
	"Air Force":                         {chnBase + "/schedules/team/Air-Force/1", "Atlantic Hockey"},
	"Army":                              {chnBase + "/schedules/team/Army/6", "Atlantic Hockey"},
	"Army West Point":                   {chnBase + "/schedules/team/Army/6", "Atlantic Hockey"},
	"Bentley":                           {chnBase + "/schedules/team/Bentley/8", "Atlantic Hockey"},
	"Canisius":                          {chnBase + "/schedules/team/Canisius/13", "Atlantic Hockey"},
	"Holy Cross":                        {chnBase + "/schedules/team/Holy-Cross/23", "Atlantic Hockey"},
	"Mercyhurst":                        {chnBase + "/schedules/team/Mercyhurst/28", "Atlantic Hockey"},
	"Niagara":                           {chnBase + "/schedules/team/Niagara/39", "Atlantic Hockey"},
	"RIT":                               {chnBase + "/schedules/team/RIT/49", "Atlantic Hockey"},
	"Rochester Institute of Technology": {chnBase + "/schedules/team/RIT/49", "Atlantic Hockey"},
	"Robert Morris":                     {chnBase + "/schedules/team/Robert-Morris/50", "Atlantic Hockey"},
	"Sacred Heart":                      {chnBase + "/schedules/team/Sacred-Heart/51", "Atlantic Hockey"},

	// Big Ten
	"Michigan":       {chnBase + "/schedules/team/Michigan/31", "Big Ten"},
	"Michigan State": {chnBase + "/schedules/team/Michigan-State/32", "Big Ten"},
	"Minnesota":      {chnBase + "/schedules/team/Minnesota/34", "Big Ten"},
	"Notre Dame":     {chnBase + "/schedules/team/Notre-Dame/43", "Big Ten"},
	"Ohio State":     {chnBase + "/schedules/team/Ohio-State/44", "Big Ten"},
	"Penn State":     {chnBase + "/schedules/team/Penn-State/60", "Big Ten"},
	"Wisconsin":      {chnBase + "/schedules/team/Wisconsin/58", "Big Ten"},

	// CCHA
	"Augustana":           {chnBase + "/schedules/team/Augustana/64", "CCHA"},
	"Bemidji State":       {chnBase + "/schedules/team/Bemidji-State/7", "CCHA"},
	"Bowling Green":       {chnBase + "/schedules/team/Bowling-Green/11", "CCHA"},
	"Ferris State":        {chnBase + "/schedules/team/Ferris-State/21", "CCHA"},
	"Lake Superior State": {chnBase + "/schedules/team/Lake-Superior/24", "CCHA"},
	"Michigan Tech":       {chnBase + "/schedules/team/Michigan-Tech/33", "CCHA"},
	"Minnesota State":     {chnBase + "/schedules/team/Minnesota-State/35", "CCHA"},
	"Northern Michigan":   {chnBase + "/schedules/team/Northern-Michigan/42", "CCHA"},
	"St. Thomas":          {chnBase + "/schedules/team/St-Thomas/63", "CCHA"},

	// ECAC
	"Brown":        {chnBase + "/schedules/team/Brown/12", "ECAC"},
	"Clarkson":     {chnBase + "/schedules/team/Clarkson/14", "ECAC"},
	"Colgate":      {chnBase + "/schedules/team/Colgate/15", "ECAC"},
	"Cornell":      {chnBase + "/schedules/team/Cornell/18", "ECAC"},
	"Dartmouth":    {chnBase + "/schedules/team/Dartmouth/19", "ECAC"},
	"Harvard":      {chnBase + "/schedules/team/Harvard/22", "ECAC"},
	"Princeton":    {chnBase + "/schedules/team/Princeton/45", "ECAC"},
	"Quinnipiac":   {chnBase + "/schedules/team/Quinnipiac/47", "ECAC"},
	"Rensselaer":   {chnBase + "/schedules/team/Rensselaer/48", "ECAC"},
	"St. Lawrence": {chnBase + "/schedules/team/St-Lawrence/53", "ECAC"},
	"Union":        {chnBase + "/schedules/team/Union/54", "ECAC"},
	"Union (NY)":   {chnBase + "/schedules/team/Union/54", "ECAC"},
	"Yale":         {chnBase + "/schedules/team/Yale/59", "ECAC"},

	// Hockey East
	"Boston College":    {chnBase + "/schedules/team/Boston-College/9", "Hockey East"},
	"Boston University": {chnBase + "/schedules/team/Boston-University/10", "Hockey East"},
	"Connecticut":       {chnBase + "/schedules/team/Connecticut/17", "Hockey East"},
	"UConn":             {chnBase + "/schedules/team/Connecticut/17", "Hockey East"},
	"Maine":             {chnBase + "/schedules/team/Maine/25", "Hockey East"},
	"Mass.-Lowell":      {chnBase + "/schedules/team/Mass-Lowell/26", "Hockey East"},
	"UMass Lowell":      {chnBase + "/schedules/team/Mass-Lowell/26", "Hockey East"},
	"Massachusetts":     {chnBase + "/schedules/team/Massachusetts/27", "Hockey East"},
	"UMass":             {chnBase + "/schedules/team/Massachusetts/27", "Hockey East"},
	"Merrimack":         {chnBase + "/schedules/team/Merrimack/29", "Hockey East"},
	"New Hampshire":     {chnBase + "/schedules/team/New-Hampshire/38", "Hockey East"},
	"Northeastern":      {chnBase + "/schedules/team/Northeastern/41", "Hockey East"},
	"Providence":        {chnBase + "/schedules/team/Providence/46", "Hockey East"},
	"Vermont":           {chnBase + "/schedules/team/Vermont/55", "Hockey East"},

	// NCHC
	"Arizona State":    {chnBase + "/schedules/team/Arizona-State/61", "NCHC"},
	"Colorado College": {chnBase + "/schedules/team/Colorado-College/16", "NCHC"},
	"Denver":           {chnBase + "/schedules/team/Denver/20", "NCHC"},
	"Miami":            {chnBase + "/schedules/team/Miami/30", "NCHC"},
	"Miami (OH)":       {chnBase + "/schedules/team/Miami/30", "NCHC"},
	"Minnesota-Duluth": {chnBase + "/schedules/team/Minnesota-Duluth/36", "NCHC"},
	"Minnesota Duluth": {chnBase + "/schedules/team/Minnesota-Duluth/36", "NCHC"},
	"Omaha":            {chnBase + "/schedules/team/Omaha/37", "NCHC"},
	"North Dakota":     {chnBase + "/schedules/team/North-Dakota/40", "NCHC"},
	"St. Cloud State":  {chnBase + "/schedules/team/St-Cloud-State/52", "NCHC"},
	"Western Michigan": {chnBase + "/schedules/team/Western-Michigan/57", "NCHC"},

	// Independents
	"Alaska-Anchorage": {chnBase + "/schedules/team/Alaska-Anchorage/3", "Independent"},
	"Alaska Anchorage": {chnBase + "/schedules/team/Alaska-Anchorage/3", "Independent"},
	"Alaska":           {chnBase + "/schedules/team/Alaska/4", "Independent"},
	"Alaska Fairbanks": {chnBase + "/schedules/team/Alaska/4", "Independent"},
	"Lindenwood":       {chnBase + "/schedules/team/Lindenwood/433", "Independent"},
	"Long Island":      {chnBase + "/schedules/team/Long-Island/62", "Independent"},
	"LIU":              {chnBase + "/schedules/team/Long-Island/62", "Independent"},
	"Stonehill":        {chnBase + "/schedules/team/Stonehill/422", "Independent"},
}

const chnWomenBase = chnBase + "/women"

// womenTeams is the women's alias table. Conference membership differs from
// the men's side for several programs.
var womenTeams = map[string]entry{
	// ECAC
	"Brown":        {chnWomenBase + "/schedules/team/Brown/12", "ECAC"},
	"Clarkson":     {chnWomenBase + "/schedules/team/Clarkson/14", "ECAC"},
	"Colgate":      {chnWomenBase + "/schedules/team/Colgate/15", "ECAC"},
	"Cornell":      {chnWomenBase + "/schedules/team/Cornell/18", "ECAC"},
	"Dartmouth":    {chnWomenBase + "/schedules/team/Dartmouth/19", "ECAC"},
	"Harvard":      {chnWomenBase + "/schedules/team/Harvard/22", "ECAC"},
	"Princeton":    {chnWomenBase + "/schedules/team/Princeton/45", "ECAC"},
	"Quinnipiac":   {chnWomenBase + "/schedules/team/Quinnipiac/47", "ECAC"},
	"Rensselaer":   {chnWomenBase + "/schedules/team/Rensselaer/48", "ECAC"},
	"St. Lawrence": {chnWomenBase + "/schedules/team/St-Lawrence/53", "ECAC"},
	"Union":        {chnWomenBase + "/schedules/team/Union/54", "ECAC"},
	"Union (NY)":   {chnWomenBase + "/schedules/team/Union/54", "ECAC"},
	"Yale":         {chnWomenBase + "/schedules/team/Yale/59", "ECAC"},

	// Hockey East
	"Boston College":    {chnWomenBase + "/schedules/team/Boston-College/9", "Hockey East"},
	"Boston University": {chnWomenBase + "/schedules/team/Boston-University/10", "Hockey East"},
	"Connecticut":       {chnWomenBase + "/schedules/team/Connecticut/17", "Hockey East"},
	"UConn":             {chnWomenBase + "/schedules/team/Connecticut/17", "Hockey East"},
	"Maine":             {chnWomenBase + "/schedules/team/Maine/25", "Hockey East"},
	"Holy Cross":        {chnWomenBase + "/schedules/team/Holy-Cross/23", "Hockey East"},
	"Merrimack":         {chnWomenBase + "/schedules/team/Merrimack/29", "Hockey East"},
	"New Hampshire":     {chnWomenBase + "/schedules/team/New-Hampshire/38", "Hockey East"},
	"Northeastern":      {chnWomenBase + "/schedules/team/Northeastern/41", "Hockey East"},
	"Providence":        {chnWomenBase + "/schedules/team/Providence/46", "Hockey East"},
	"Vermont":           {chnWomenBase + "/schedules/team/Vermont/55", "Hockey East"},

	// WCHA
	"Bemidji State":   {chnWomenBase + "/schedules/team/Bemidji-State/7", "WCHA"},
	"Minnesota":       {chnWomenBase + "/schedules/team/Minnesota/34", "WCHA"},
	"Minnesota State": {chnWomenBase + "/schedules/team/Minnesota-State/35", "WCHA"},
	"Ohio State":      {chnWomenBase + "/schedules/team/Ohio-State/44", "WCHA"},
	"St. Cloud State": {chnWomenBase + "/schedules/team/St-Cloud-State/52", "WCHA"},
	"St. Thomas":      {chnWomenBase + "/schedules/team/St-Thomas/63", "WCHA"},
	"Wisconsin":       {chnWomenBase + "/schedules/team/Wisconsin/58", "WCHA"},

	// Atlantic Hockey America
	"Delaware":                          {chnWomenBase + "/schedules/team/Delaware/447", "AHA"},
	"Lindenwood":                        {chnWomenBase + "/schedules/team/Lindenwood/433", "AHA"},
	"Mercyhurst":                        {chnWomenBase + "/schedules/team/Mercyhurst/28", "AHA"},
	"Penn State":                        {chnWomenBase + "/schedules/team/Penn-State/60", "AHA"},
	"RIT":                               {chnWomenBase + "/schedules/team/RIT/49", "AHA"},
	"Rochester Institute of Technology": {chnWomenBase + "/schedules/team/RIT/49", "AHA"},
	"Robert Morris":                     {chnWomenBase + "/schedules/team/Robert-Morris/50", "AHA"},
	"Syracuse":                          {chnWomenBase + "/schedules/team/Syracuse/423", "AHA"},

	// NEWHA
	"Assumption":      {chnWomenBase + "/schedules/team/Assumption/401", "NEWHA"},
	"Franklin Pierce": {chnWomenBase + "/schedules/team/Franklin-Pierce/406", "NEWHA"},
	"Long Island":     {chnWomenBase + "/schedules/team/Long-Island/62", "NEWHA"},
	"LIU":             {chnWomenBase + "/schedules/team/Long-Island/62", "NEWHA"},
	"Post":            {chnWomenBase + "/schedules/team/Post/434", "NEWHA"},
	"Sacred Heart":    {chnWomenBase + "/schedules/team/Sacred-Heart/51", "NEWHA"},
	"Saint Anselm":    {chnWomenBase + "/schedules/team/Saint-Anselm/419", "NEWHA"},
	"Saint Michael's": {chnWomenBase + "/schedules/team/Saint-Michaels/421", "NEWHA"},
	"Stonehill":       {chnWomenBase + "/schedules/team/Stonehill/422", "NEWHA"},
}

// collator builds the locale-aware case-insensitive ordering used for every
// user-facing team listing.
func collator() *collate.Collator {
	return collate.New(language.English, collate.IgnoreCase)
}

func table(gender hockey.Gender) map[string]entry {
	if gender == hockey.GenderWomen {
		return womenTeams
	}
	return menTeams
}

// Lookup resolves a team display name (any known alias) to its schedule URL
// and conference. Returns ErrNotFound when the name is unknown.
func Lookup(teamName string, gender hockey.Gender) (TeamInfo, error) {
	e, ok := table(gender)[teamName]
	if !ok {
		return TeamInfo{}, ErrNotFound
	}
	return TeamInfo{Name: teamName, URL: e.url, Conference: e.conference, Gender: gender}, nil
}

// ListAll returns one entry per program, sorted alphabetically. Uniqueness is
// by source URL since multiple aliases map to one program; the alias that
// sorts first is surfaced as the canonical name so the choice is stable.
func ListAll(gender hockey.Gender) []TeamInfo {
	tbl := table(gender)

	names := make([]string, 0, len(tbl))
	for name := range tbl {
		names = append(names, name)
	}

	c := collator()
	c.SortStrings(names)

	seen := make(map[string]bool, len(names))
	teams := make([]TeamInfo, 0, len(names))
	for _, name := range names {
		e := tbl[name]
		if seen[e.url] {
			continue
		}
		seen[e.url] = true
		teams = append(teams, TeamInfo{Name: name, URL: e.url, Conference: e.conference, Gender: gender})
	}

	sort.SliceStable(teams, func(i, j int) bool {
		return c.CompareString(teams[i].Name, teams[j].Name) < 0
	})
	return teams
}
