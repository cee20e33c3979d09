package parse

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	scoreOnlyRe = regexp.MustCompile(`^[\d\s\-–]+$`)
	teamVsRe    = regexp.MustCompile(`(?i)\b[a-z][a-z'.]*\s+vs?\.?\s+[a-z]`)
	teamScoreRe = regexp.MustCompile(`^([a-zA-Z][a-zA-Z'. ]*?)\s+(\d+(?:\s*[-–]\s*\d+)*)$`)
	scoreTeamRe = regexp.MustCompile(`^(\d+(?:\s*[-–]\s*\d+)*)\s+vs?\.?\s+(.+)$`)
	bareTokenRe = regexp.MustCompile(`^[a-zA-Z][a-zA-Z'. ]*$`)
)

const shortLineMax = 30

// IsLikelyPlayerName reports whether a line looks like a participant name
// rather than part of a prediction: exactly two words, both capitalized, no
// literal "v" token and no digits. A two-word, initial-capped team token can
// be misread as a player name, so the heuristic lives in one named predicate
// where that risk stays visible and tested.
func IsLikelyPlayerName(line string) bool {
	words := strings.Fields(strings.TrimSpace(line))
	if len(words) != 2 {
		return false
	}
	for _, word := range words {
		lower := strings.ToLower(word)
		if lower == "v" || lower == "vs" {
			return false
		}
		runes := []rune(word)
		if !unicode.IsUpper(runes[0]) {
			return false
		}
		for _, r := range runes {
			if unicode.IsDigit(r) {
				return false
			}
		}
	}
	return true
}

func isScoreOnly(line string) bool {
	line = strings.TrimSpace(line)
	return line != "" && scoreOnlyRe.MatchString(line) && strings.ContainsAny(line, "0123456789")
}

func isBareTeamToken(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" || !bareTokenRe.MatchString(line) {
		return false
	}
	return len(strings.Fields(line)) <= 3
}

// MergeSplitLines rejoins predictions that arrived split across two lines
// (paste and network artifacts). Four conservative patterns are tried in
// order; anything else passes through untouched. Returns the normalized
// lines and the number of merges performed, for diagnostics.
func MergeSplitLines(lines []string) ([]string, int) {
	out := make([]string, 0, len(lines))
	merged := 0

	for i := 0; i < len(lines); i++ {
		cur := strings.TrimSpace(lines[i])
		if cur == "" {
			continue
		}
		if i+1 >= len(lines) {
			out = append(out, cur)
			continue
		}
		next := strings.TrimSpace(lines[i+1])

		if joined, ok := mergePair(cur, next); ok {
			out = append(out, joined)
			merged++
			i++
			continue
		}

		out = append(out, cur)
	}

	return out, merged
}

func mergePair(cur, next string) (string, bool) {
	if next == "" {
		return "", false
	}

	// Team-vs-team line followed by its score.
	if teamVsRe.MatchString(cur) && isScoreOnly(next) {
		return cur + " " + next, true
	}

	// Short line followed by a score-only line. Guarded so a participant
	// name directly above a stray score is not absorbed.
	if len(cur) < shortLineMax && isScoreOnly(next) && !IsLikelyPlayerName(cur) {
		return cur + " " + next, true
	}

	// "<team> <score>" followed by a bare team token.
	if m := teamScoreRe.FindStringSubmatch(cur); m != nil {
		if isBareTeamToken(next) && !IsLikelyPlayerName(next) {
			return strings.TrimSpace(m[1]) + " v " + next + " " + strings.TrimSpace(m[2]), true
		}
	}

	// Bare team token followed by "<score> v <team>".
	if isBareTeamToken(cur) && !IsLikelyPlayerName(cur) && scoreTeamRe.MatchString(next) {
		return cur + " " + next, true
	}

	return "", false
}

// AliasHit records one alias substitution for audit logging.
type AliasHit struct {
	Line      string
	Alias     string
	Canonical string
}

// RewriteAliases replaces known team aliases in a line with their canonical
// names. Aliases are tried longest first, and an alias is skipped when its
// canonical form is already present in the line. That keeps "Aston Villa"
// intact even though "villa" is a registered alias.
func (c *Context) RewriteAliases(line string) (string, []AliasHit) {
	var hits []AliasHit
	lower := strings.ToLower(line)

	for _, ap := range c.aliases {
		if strings.Contains(lower, ap.canonical) {
			continue
		}
		if !ap.pattern.MatchString(line) {
			continue
		}
		line = ap.pattern.ReplaceAllString(line, ap.canonical)
		lower = strings.ToLower(line)
		hits = append(hits, AliasHit{
			Line:      line,
			Alias:     ap.alias,
			Canonical: ap.canonical,
		})
	}

	return line, hits
}
