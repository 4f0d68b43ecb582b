package timeline

import "strings"

// ParseScript splits raw script text into caption lines. Blank and
// whitespace-only lines are dropped and the rest are trimmed.
func ParseScript(raw string) []string {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
