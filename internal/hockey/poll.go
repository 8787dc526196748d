package hockey

// PollTeam is one ranked team in a weekly poll. LastWeekRank is nil for
// teams unranked the previous week.
type PollTeam struct {
	Rank            int    `json:"rank"`
	Team            string `json:"team"`
	FirstPlaceVotes int    `json:"firstPlaceVotes"`
	Record          string `json:"record"`
	Points          int    `json:"points"`
	LastWeekRank    *int   `json:"lastWeekRank"`
}

// Poll is a weekly ranking: the ranked list plus the free-text "others
// receiving votes" line.
type Poll struct {
	Date                 string     `json:"date"`
	Teams                []PollTeam `json:"teams"`
	OthersReceivingVotes string     `json:"othersReceivingVotes"`
}
