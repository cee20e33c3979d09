package prediction

import "fmt"

// SentinelGoals is the reserved per-side score meaning "no prediction
// submitted". The pair (9, 9) never occurs as a real football prediction in
// this league, so it doubles as the missing-submission placeholder.
const SentinelGoals = 9

type Result string

const (
	ResultHome Result = "H"
	ResultDraw Result = "D"
	ResultAway Result = "A"
)

// Prediction is one player's score call for one fixture. HomeTeam/AwayTeam
// are canonical names in the fixture's physical order, so HomeGoals always
// belongs to the side actually playing at home.
type Prediction struct {
	Season    string
	Gameweek  int
	Player    string
	FixtureID string
	HomeTeam  string
	AwayTeam  string
	HomeGoals int
	AwayGoals int
	Result    Result
}

func (p Prediction) IsSentinel() bool {
	return p.HomeGoals == SentinelGoals && p.AwayGoals == SentinelGoals
}

func (p Prediction) ScoreString() string {
	return fmt.Sprintf("%d-%d", p.HomeGoals, p.AwayGoals)
}

func (p Prediction) Validate() error {
	if p.Player == "" {
		return fmt.Errorf("prediction player is required")
	}
	if p.FixtureID == "" {
		return fmt.Errorf("prediction fixture id is required")
	}
	if p.Gameweek <= 0 {
		return fmt.Errorf("prediction gameweek must be greater than zero")
	}
	if p.HomeGoals < 0 || p.AwayGoals < 0 {
		return fmt.Errorf("prediction goals cannot be negative")
	}

	return nil
}

// DeriveResult labels a goal pair H, D or A. Sentinel pairs compare equal
// and come out as D; consumers needing to exclude them check IsSentinel.
func DeriveResult(homeGoals, awayGoals int) Result {
	switch {
	case homeGoals > awayGoals:
		return ResultHome
	case homeGoals < awayGoals:
		return ResultAway
	default:
		return ResultDraw
	}
}

// DuplicatePair records two players whose entire gameweek submissions were
// identical: same fixture set, same score on every fixture.
type DuplicatePair struct {
	Season              string `json:"season"`
	Gameweek            int    `json:"gameweek"`
	PlayerA             string `json:"player_a"`
	PlayerB             string `json:"player_b"`
	MatchedFixtureCount int    `json:"matched_fixture_count"`
	AllSentinel         bool   `json:"all_sentinel"`
}
