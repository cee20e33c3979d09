package parse

import (
	"regexp"
	"strings"
)

// chatLineRe matches chat-export lines shaped
// "[DD/MM/YYYY, HH:MM:SS] Name: message".
var chatLineRe = regexp.MustCompile(`^\[(\d{2}/\d{2}/\d{4}), (\d{2}:\d{2}:\d{2})\] ([^:]+): (.*)$`)

// IsChatExport reports whether the submission looks like a chat transcript
// rather than a plain prediction list.
func IsChatExport(lines []string) bool {
	matched := 0
	for _, line := range lines {
		if chatLineRe.MatchString(strings.TrimSpace(line)) {
			matched++
			if matched >= 2 {
				return true
			}
		}
	}
	return matched == 1 && len(lines) <= 2
}

// FlattenChatExport rewrites a chat transcript into the standard list
// format: a roster-name line whenever the (resolved) sender changes,
// followed by the message body. Messages from senders that cannot be matched
// to the roster are dropped and returned for logging; lines that do not look
// like chat lines pass through unchanged.
func (c *Context) FlattenChatExport(lines []string) ([]string, []SkippedLine) {
	var (
		out     []string
		skipped []SkippedLine
		current string
	)

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		m := chatLineRe.FindStringSubmatch(trimmed)
		if m == nil {
			out = append(out, trimmed)
			continue
		}

		sender, message := strings.TrimSpace(m[3]), strings.TrimSpace(m[4])
		if message == "" {
			continue
		}

		name, ok := c.MatchSender(sender)
		if !ok {
			skipped = append(skipped, SkippedLine{Line: trimmed, Reason: "unknown chat sender " + sender})
			continue
		}

		if name != current {
			out = append(out, name)
			current = name
		}
		out = append(out, message)
	}

	return out, skipped
}
