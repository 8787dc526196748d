// Package directory is the static team directory: display-name aliases to
// schedule source URLs and conference assignments for every Division I
// program, split by gender. It also loads the CSV mapping of team names to
// athletics-site schedule URLs used by the generic schools scraper.
//
// The alias tables are deliberately redundant ("Army" and "Army West Point"
// both resolve to the same URL) because callers arrive with names from many
// sources: polls, vendor APIs, and user input all spell programs differently.
package directory
