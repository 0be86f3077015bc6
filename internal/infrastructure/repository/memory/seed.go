package memory

import (
	"github.com/courtdata/gamelines/internal/domain/bookmaker"
	"github.com/courtdata/gamelines/internal/domain/team"
)

// SeedTeams returns the 30 NBA franchises. Team master data changes only on
// relocation or rebrand, so it ships with the binary instead of an admin API.
func SeedTeams() []team.Team {
	return []team.Team{
		{ID: 1, Name: "Atlanta Hawks", Abbreviation: "ATL", Location: "Atlanta"},
		{ID: 2, Name: "Boston Celtics", Abbreviation: "BOS", Location: "Boston"},
		{ID: 3, Name: "Brooklyn Nets", Abbreviation: "BKN", Location: "Brooklyn"},
		{ID: 4, Name: "Charlotte Hornets", Abbreviation: "CHA", Location: "Charlotte"},
		{ID: 5, Name: "Chicago Bulls", Abbreviation: "CHI", Location: "Chicago"},
		{ID: 6, Name: "Cleveland Cavaliers", Abbreviation: "CLE", Location: "Cleveland"},
		{ID: 7, Name: "Dallas Mavericks", Abbreviation: "DAL", Location: "Dallas"},
		{ID: 8, Name: "Denver Nuggets", Abbreviation: "DEN", Location: "Denver"},
		{ID: 9, Name: "Detroit Pistons", Abbreviation: "DET", Location: "Detroit"},
		{ID: 10, Name: "Golden State Warriors", Abbreviation: "GSW", Location: "Golden State"},
		{ID: 11, Name: "Houston Rockets", Abbreviation: "HOU", Location: "Houston"},
		{ID: 12, Name: "Indiana Pacers", Abbreviation: "IND", Location: "Indiana"},
		{ID: 13, Name: "Los Angeles Clippers", Abbreviation: "LAC", Location: "Los Angeles"},
		{ID: 14, Name: "Los Angeles Lakers", Abbreviation: "LAL", Location: "Los Angeles"},
		{ID: 15, Name: "Memphis Grizzlies", Abbreviation: "MEM", Location: "Memphis"},
		{ID: 16, Name: "Miami Heat", Abbreviation: "MIA", Location: "Miami"},
		{ID: 17, Name: "Milwaukee Bucks", Abbreviation: "MIL", Location: "Milwaukee"},
		{ID: 18, Name: "Minnesota Timberwolves", Abbreviation: "MIN", Location: "Minnesota"},
		{ID: 19, Name: "New Orleans Pelicans", Abbreviation: "NOP", Location: "New Orleans"},
		{ID: 20, Name: "New York Knicks", Abbreviation: "NYK", Location: "New York"},
		{ID: 21, Name: "Oklahoma City Thunder", Abbreviation: "OKC", Location: "Oklahoma City"},
		{ID: 22, Name: "Orlando Magic", Abbreviation: "ORL", Location: "Orlando"},
		{ID: 23, Name: "Philadelphia 76ers", Abbreviation: "PHI", Location: "Philadelphia"},
		{ID: 24, Name: "Phoenix Suns", Abbreviation: "PHX", Location: "Phoenix"},
		{ID: 25, Name: "Portland Trail Blazers", Abbreviation: "POR", Location: "Portland"},
		{ID: 26, Name: "Sacramento Kings", Abbreviation: "SAC", Location: "Sacramento"},
		{ID: 27, Name: "San Antonio Spurs", Abbreviation: "SAS", Location: "San Antonio"},
		{ID: 28, Name: "Toronto Raptors", Abbreviation: "TOR", Location: "Toronto"},
		{ID: 29, Name: "Utah Jazz", Abbreviation: "UTA", Location: "Utah"},
		{ID: 30, Name: "Washington Wizards", Abbreviation: "WAS", Location: "Washington"},
	}
}

// SeedBookmakers returns the US sportsbooks tracked by ingestion, keyed by
// the provider's bookmaker keys. Snapshots from books outside this list are
// skipped, not failed.
func SeedBookmakers() []bookmaker.Bookmaker {
	return []bookmaker.Bookmaker{
		{ID: 1, Key: "draftkings", Name: "DraftKings", IsActive: true},
		{ID: 2, Key: "fanduel", Name: "FanDuel", IsActive: true},
		{ID: 3, Key: "betmgm", Name: "BetMGM", IsActive: true},
		{ID: 4, Key: "williamhill_us", Name: "Caesars", IsActive: true},
		{ID: 5, Key: "pointsbetus", Name: "PointsBet (US)", IsActive: true},
		{ID: 6, Key: "bovada", Name: "Bovada", IsActive: true},
	}
}
