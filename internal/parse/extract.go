package parse

import (
	"regexp"
	"strings"

	"github.com/hjwoodall/prediction-league/internal/domain/prediction"
)

// RawPrediction is one extracted prediction line, teams in the order they
// appeared in the text. The left team is treated as home until the fixture
// resolver says otherwise.
type RawPrediction struct {
	Player    string
	HomeTeam  string
	AwayTeam  string
	HomeGoals int
	AwayGoals int
	Line      string
}

// SkippedLine records a line the extractor could not turn into a prediction.
type SkippedLine struct {
	Line   string
	Reason string
}

const (
	SkipNoActivePlayer = "no active player context"
	SkipTeamExtraction = "could not extract exactly two teams"
	SkipNoScores       = "no score digits found"
)

var wordGroupRe = regexp.MustCompile(`[a-zA-Z][a-zA-Z'.]*(?:\s+[a-zA-Z][a-zA-Z'.]*){0,2}`)

// maxScoreDigits bounds a digit run. No football score needs more, and an
// unbounded run would overflow int on adversarial input.
const maxScoreDigits = 4

// ScanScores collects every contiguous digit run in the line as one integer.
// The separator between runs (space, hyphen, "v") is irrelevant by
// construction. Runs longer than maxScoreDigits are discarded, so a line
// carrying one falls back to the sentinel path instead of producing garbage.
func ScanScores(line string) []int {
	var out []int
	value := 0
	digits := 0

	flush := func() {
		if digits > 0 && digits <= maxScoreDigits {
			out = append(out, value)
		}
		value = 0
		digits = 0
	}

	for _, r := range line {
		if r >= '0' && r <= '9' {
			if digits < maxScoreDigits {
				value = value*10 + int(r-'0')
			}
			digits++
			continue
		}
		flush()
	}
	flush()

	return out
}

type teamMatch struct {
	index int
	team  string
}

// ScanTeams finds canonical team names in the line, preserving the
// left-to-right order of first appearance. A containment pass runs first;
// when it does not yield exactly two distinct teams, a word-group regex
// fallback re-tests each short token group against the team list.
func (c *Context) ScanTeams(line string) []string {
	lower := strings.ToLower(line)

	var matches []teamMatch
	consumed := make([]bool, len(lower))

	for _, name := range c.teams {
		idx := indexOutsideConsumed(lower, name, consumed)
		if idx < 0 {
			continue
		}
		matches = append(matches, teamMatch{index: idx, team: name})
		for i := idx; i < idx+len(name) && i < len(consumed); i++ {
			consumed[i] = true
		}
	}

	ordered := orderDistinct(matches)
	if len(ordered) == 2 {
		return ordered
	}

	return c.scanTeamsFallback(line)
}

func indexOutsideConsumed(lower, name string, consumed []bool) int {
	from := 0
	for from < len(lower) {
		idx := strings.Index(lower[from:], name)
		if idx < 0 {
			return -1
		}
		idx += from
		if !consumed[idx] {
			return idx
		}
		from = idx + 1
	}
	return -1
}

func (c *Context) scanTeamsFallback(line string) []string {
	var matches []teamMatch

	for _, loc := range wordGroupRe.FindAllStringIndex(line, -1) {
		group := line[loc[0]:loc[1]]
		re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(group) + `\b`)
		if err != nil {
			continue
		}
		for _, name := range c.teams {
			if re.MatchString(name) {
				matches = append(matches, teamMatch{index: loc[0], team: name})
				break
			}
		}
	}

	ordered := orderDistinct(matches)
	if len(ordered) == 2 {
		return ordered
	}
	return nil
}

func orderDistinct(matches []teamMatch) []string {
	// insertion sort by index, inputs are tiny
	for i := 1; i < len(matches); i++ {
		for j := i; j > 0 && matches[j].index < matches[j-1].index; j-- {
			matches[j], matches[j-1] = matches[j-1], matches[j]
		}
	}

	seen := make(map[string]struct{}, len(matches))
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		if _, ok := seen[m.team]; ok {
			continue
		}
		seen[m.team] = struct{}{}
		out = append(out, m.team)
	}
	return out
}

// Extract walks normalized lines and produces prediction candidates. A line
// that exactly matches an active player's name switches the attribution
// context and yields no prediction itself; every other line is attributed to
// the current player. Two teams plus at least one score integer make a
// prediction; a single score integer means "intended but unparseable" and
// both goals become the sentinel.
func (c *Context) Extract(lines []string) ([]RawPrediction, []SkippedLine) {
	var (
		out          []RawPrediction
		skipped      []SkippedLine
		activePlayer string
	)

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if name, ok := c.MatchPlayer(trimmed); ok {
			activePlayer = name
			continue
		}

		if activePlayer == "" {
			skipped = append(skipped, SkippedLine{Line: trimmed, Reason: SkipNoActivePlayer})
			continue
		}

		teams := c.ScanTeams(trimmed)
		if len(teams) != 2 {
			skipped = append(skipped, SkippedLine{Line: trimmed, Reason: SkipTeamExtraction})
			continue
		}

		scores := ScanScores(trimmed)
		if len(scores) == 0 {
			skipped = append(skipped, SkippedLine{Line: trimmed, Reason: SkipNoScores})
			continue
		}

		homeGoals, awayGoals := prediction.SentinelGoals, prediction.SentinelGoals
		if len(scores) >= 2 {
			homeGoals, awayGoals = scores[0], scores[1]
		}

		out = append(out, RawPrediction{
			Player:    activePlayer,
			HomeTeam:  teams[0],
			AwayTeam:  teams[1],
			HomeGoals: homeGoals,
			AwayGoals: awayGoals,
			Line:      trimmed,
		})
	}

	return out, skipped
}
